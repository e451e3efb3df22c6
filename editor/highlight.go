package editor

import (
	"github.com/iw2rmb/mention/annotation"
	graphemeutil "github.com/iw2rmb/mention/internal/grapheme"
)

// searchSpans returns the non-overlapping literal occurrences of term in
// line, in grapheme columns. Matching is case-sensitive.
func searchSpans(line, term string) []annotation.Span {
	if term == "" {
		return nil
	}
	needle := graphemeutil.Split(term)
	hay := graphemeutil.Split(line)
	if len(needle) == 0 || len(needle) > len(hay) {
		return nil
	}

	var out []annotation.Span
	for i := 0; i+len(needle) <= len(hay); {
		if clustersEqual(hay[i:i+len(needle)], needle) {
			out = append(out, annotation.Span{Start: i, End: i + len(needle)})
			i += len(needle)
			continue
		}
		i++
	}
	return out
}

func clustersEqual(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func spanAt(spans []annotation.Span, col int) bool {
	for _, sp := range spans {
		if col >= sp.Start && col < sp.End {
			return true
		}
	}
	return false
}
