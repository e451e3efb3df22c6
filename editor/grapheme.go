package editor

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	graphemeutil "github.com/iw2rmb/mention/internal/grapheme"
)

type graphemeStep struct {
	GraphemeCol int
	Text        string
	CellWidth   int
}

// iterateGraphemeSteps provides (doc grapheme index) -> (cluster, cell width)
// for a single logical line. Widths are terminal-cell widths.
func iterateGraphemeSteps(text string, tabWidth int, startCell int) []graphemeStep {
	clusters := graphemeutil.Split(text)
	if len(clusters) == 0 {
		return nil
	}

	out := make([]graphemeStep, 0, len(clusters))
	visualCol := maxInt(startCell, 0)
	for i, c := range clusters {
		w := graphemeCellWidth(c, visualCol, tabWidth)
		out = append(out, graphemeStep{GraphemeCol: i, Text: c, CellWidth: w})
		visualCol += w
	}
	return out
}

func graphemeCellWidth(text string, visualCol, tabWidth int) int {
	if text == "\t" {
		return tabAdvance(visualCol, tabWidth)
	}

	w := runewidth.StringWidth(text)
	if w < 0 {
		w = 0
	}
	if w == 0 {
		fallback := uniseg.StringWidth(text)
		if fallback > w {
			w = fallback
		}
	}
	return w
}

func tabAdvance(visualCol, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = defaultTabWidth
	}
	adv := tabWidth - visualCol%tabWidth
	if adv < 1 {
		return 1
	}
	return adv
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
