// Package match finds the unfinished trigger token behind the caret and
// resolves it against the vocabulary of its class.
package match

import (
	"github.com/iw2rmb/mention/annotation"
	"github.com/iw2rmb/mention/internal/grapheme"
	"github.com/iw2rmb/mention/internal/log"
	"github.com/iw2rmb/mention/vocab"
)

// EmptyQueryPolicy decides what a bare delimiter yields.
type EmptyQueryPolicy uint8

const (
	// EmptyQueryShowAll lists the whole vocabulary of the class.
	EmptyQueryShowAll EmptyQueryPolicy = iota
	// EmptyQueryHidden yields NoTrigger until something is typed.
	EmptyQueryHidden
)

func (p EmptyQueryPolicy) String() string {
	if p == EmptyQueryHidden {
		return "hidden"
	}
	return "show-all"
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithEmptyQuery sets the bare delimiter policy.
func WithEmptyQuery(p EmptyQueryPolicy) Option {
	return func(m *Matcher) { m.emptyQuery = p }
}

// WithIgnoreInnerSpace compares query and candidates with every whitespace
// rune removed, so "@JimA" suggests "Jim Avery".
func WithIgnoreInnerSpace(on bool) Option {
	return func(m *Matcher) {
		if on {
			m.mode = vocab.MatchIgnoreSpace
		} else {
			m.mode = vocab.MatchFolded
		}
	}
}

// Matcher scans block text for triggers. Scanning has no side effects; the
// same text and caret always produce the same Result.
type Matcher struct {
	vocab      *vocab.Vocabulary
	emptyQuery EmptyQueryPolicy
	mode       vocab.MatchMode
}

// New returns a matcher over v.
func New(v *vocab.Vocabulary, opts ...Option) *Matcher {
	m := &Matcher{vocab: v}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetVocabulary swaps the candidate lists.
func (m *Matcher) SetVocabulary(v *vocab.Vocabulary) { m.vocab = v }

// Vocabulary returns the current candidate lists.
func (m *Matcher) Vocabulary() *vocab.Vocabulary { return m.vocab }

// Scan looks for a trigger ending at caret in blockText.
func (m *Matcher) Scan(blockText string, caret int) Result {
	return m.ScanClipped(blockText, caret, nil)
}

// ScanClipped is Scan with the backward search bounded by finalized spans:
// it never crosses the end of one, and a caret strictly inside one yields
// NoTrigger.
func (m *Matcher) ScanClipped(blockText string, caret int, finalized []annotation.Span) Result {
	clusters := grapheme.Split(blockText)
	caret = clamp(caret, 0, len(clusters))

	floor := 0
	for _, s := range finalized {
		if s.Contains(caret) {
			return Result{}
		}
		if s.End <= caret && s.End > floor {
			floor = s.End
		}
	}

	for _, class := range vocab.Classes {
		d, ok := findDelimiter(clusters, floor, caret, class)
		if !ok {
			continue
		}
		if r := m.resolve(clusters, d, caret, class); r.Triggered() {
			log.Debug(log.CatMatch, "trigger", "class", class, "span", r.Span, "kind", r.Kind, "query", r.Query)
			return r
		}
	}
	return Result{}
}

func (m *Matcher) resolve(clusters []string, d, caret int, class vocab.Class) Result {
	span := annotation.Span{Start: d, End: caret}
	query := grapheme.Join(grapheme.TrimSpace(clusters[d+class.RawOffset() : caret]))

	if query == "" {
		if m.emptyQuery == EmptyQueryHidden {
			return Result{}
		}
		all := m.vocab.Candidates(class)
		if len(all) == 0 {
			return Result{}
		}
		return Result{Kind: Suggestions, Class: class, Span: span, Candidates: all}
	}

	if exact, ok := m.vocab.Exact(class, query, m.mode); ok {
		return Result{Kind: ExactMatch, Class: class, Span: span, Query: query, Candidates: []string{exact}}
	}
	if list := m.vocab.Prefix(class, query, m.mode); len(list) > 0 {
		return Result{Kind: Suggestions, Class: class, Span: span, Query: query, Candidates: list}
	}
	return Result{}
}

// findDelimiter scans backward from caret for the delimiter of class. The
// search stops at floor or at the first delimiter of another class.
func findDelimiter(clusters []string, floor, caret int, class vocab.Class) (int, bool) {
	for i := caret - 1; i >= floor; i-- {
		if delimiterAt(clusters, i, caret, class) {
			return i, true
		}
		for _, other := range vocab.Classes {
			if other != class && delimiterAt(clusters, i, caret, other) {
				return 0, false
			}
		}
	}
	return 0, false
}

func delimiterAt(clusters []string, i, limit int, class vocab.Class) bool {
	d := class.Delimiter()
	if i+len(d) > limit {
		return false
	}
	for j := 0; j < len(d); j++ {
		if clusters[i+j] != d[j:j+1] {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
