package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/mention/annotation"
	graphemeutil "github.com/iw2rmb/mention/internal/grapheme"
)

func (m *Model) renderContent() string {
	if m.buf == nil {
		return ""
	}

	n := m.buf.LineCount()
	cursor := m.buf.Cursor()
	digitCount := gutterDigits(n)

	out := make([]string, 0, n)
	for row := 0; row < n; row++ {
		var sb strings.Builder

		if m.cfg.ShowLineNums {
			numStyle := m.cfg.Style.LineNum
			if m.focused && row == cursor.Row {
				numStyle = m.cfg.Style.LineNumActive
			}
			sb.WriteString(numStyle.Render(fmt.Sprintf("%*d", digitCount, row+1)))
			sb.WriteString(m.cfg.Style.Gutter.Render(" "))
		}

		sb.WriteString(m.renderLine(row))
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

// renderLine draws one row. Style precedence is cursor, search match,
// annotation, then plain text.
func (m *Model) renderLine(row int) string {
	st := m.cfg.Style
	layout := m.layoutRow(row)
	spans := m.ctrl.Spans(row)
	matches := searchSpans(m.buf.Line(row), m.search)

	cursor := m.buf.Cursor()
	hasCursor := m.focused && cursor.Row == row
	cursorCol := -1
	if hasCursor {
		cursorCol = clampInt(cursor.GraphemeCol, 0, layout.DocLen)
	}

	var sb strings.Builder
	for i, c := range layout.Cells {
		if c.isAffordance() {
			sb.WriteString(markZone(m.deleteZoneID(c.Delete), st.Delete.Render(c.Text)))
			continue
		}

		text := c.Text
		if text == "\t" {
			text = strings.Repeat(" ", c.CellWidth)
		}

		switch {
		case c.Col == cursorCol:
			if graphemeutil.IsSpace(c.Text) && trailingSpace(layout.Cells[i:]) {
				// Trailing spaces can be elided by terminals at line end.
				// NBSP keeps the cursor visible.
				text = strings.ReplaceAll(text, " ", "\u00a0")
			}
			sb.WriteString(st.Cursor.Render(text))
		case spanAt(matches, c.Col):
			sb.WriteString(st.Search.Inherit(st.Text).Render(text))
		default:
			sb.WriteString(m.annotationStyle(spans, c.Col).Render(text))
		}
	}

	// Cursor at EOL is rendered as a 1-cell placeholder space.
	if cursorCol == layout.DocLen {
		sb.WriteString(st.Cursor.Render(" "))
	}
	return sb.String()
}

func (m *Model) annotationStyle(spans []annotation.Annotation, col int) lipgloss.Style {
	for _, a := range spans {
		if col >= a.Span.Start && col < a.Span.End {
			return m.cfg.Style.StyleFor(a.Class, a.State).Inherit(m.cfg.Style.Text)
		}
	}
	return m.cfg.Style.Text
}

func trailingSpace(cells []layoutCell) bool {
	for _, c := range cells {
		if c.isAffordance() || !graphemeutil.IsSpace(c.Text) {
			return false
		}
	}
	return true
}
