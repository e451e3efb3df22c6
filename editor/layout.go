package editor

import (
	"fmt"

	"github.com/iw2rmb/mention/annotation"
	graphemeutil "github.com/iw2rmb/mention/internal/grapheme"
)

// layoutCell is one rendered element of a line: a document grapheme, or the
// delete affordance drawn after a finalized annotation.
type layoutCell struct {
	// Col is the document grapheme column. Affordances carry the end of the
	// annotation they follow.
	Col       int
	Text      string
	StartCell int
	CellWidth int

	// Delete is set on affordance cells.
	Delete annotation.ID
}

func (c layoutCell) isAffordance() bool { return c.Delete != "" }

// lineLayout is the cell map of a single logical row, gutter excluded.
type lineLayout struct {
	Row    int
	Cells  []layoutCell
	DocLen int
	Width  int
}

const deleteAffordance = "×"

func (m *Model) layoutRow(row int) lineLayout {
	text := m.buf.Line(row)
	steps := iterateGraphemeSteps(text, m.cfg.TabWidth, 0)
	finalized := m.ctrl.Store().Finalized(row)

	out := lineLayout{Row: row, DocLen: graphemeutil.Count(text)}
	out.Cells = make([]layoutCell, 0, len(steps)+len(finalized))

	cell := 0
	next := 0
	emitAffordances := func(col int) {
		for next < len(finalized) && finalized[next].Span.End == col {
			out.Cells = append(out.Cells, layoutCell{
				Col:       col,
				Text:      deleteAffordance,
				StartCell: cell,
				CellWidth: 1,
				Delete:    finalized[next].ID,
			})
			cell++
			next++
		}
	}

	for _, st := range steps {
		emitAffordances(st.GraphemeCol)
		w := graphemeCellWidth(st.Text, cell, m.cfg.TabWidth)
		out.Cells = append(out.Cells, layoutCell{
			Col:       st.GraphemeCol,
			Text:      st.Text,
			StartCell: cell,
			CellWidth: w,
		})
		cell += w
	}
	emitAffordances(out.DocLen)

	out.Width = cell
	return out
}

// docColAtCell maps a content cell to a document column. Clicks on the right
// half of a grapheme land after it; clicks past the end land at EOL.
func (l lineLayout) docColAtCell(x int) int {
	if x < 0 {
		return 0
	}
	for _, c := range l.Cells {
		if x >= c.StartCell+c.CellWidth {
			continue
		}
		if c.isAffordance() {
			return c.Col
		}
		if c.CellWidth > 1 && x-c.StartCell >= (c.CellWidth+1)/2 {
			return c.Col + 1
		}
		return c.Col
	}
	return l.DocLen
}

func gutterDigits(lineCount int) int {
	if lineCount < 1 {
		lineCount = 1
	}
	return len(fmt.Sprintf("%d", lineCount))
}

// gutterWidth is the number of cells drawn before the text, the separating
// blank included.
func (m *Model) gutterWidth() int {
	if !m.cfg.ShowLineNums {
		return 0
	}
	return gutterDigits(m.buf.LineCount()) + 1
}
