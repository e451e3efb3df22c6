package editor

import (
	"strings"

	"github.com/muesli/reflow/truncate"

	"github.com/iw2rmb/mention/session"
)

// suggestionWindow returns the [start,end) candidate indices visible in the
// list, keeping the highlighted row in view.
func (m *Model) suggestionWindow(st session.State) (start, end int) {
	n := len(st.Candidates)
	limit := m.cfg.MaxSuggestions
	if n <= limit {
		return 0, n
	}
	if st.Highlighted >= limit {
		start = st.Highlighted - limit + 1
	}
	return start, start + limit
}

func (m *Model) renderSuggestions() string {
	st := m.ctrl.Session()
	if !st.IsOpen() || !m.focused || len(st.Candidates) == 0 {
		return ""
	}

	style := m.cfg.Style
	width := m.viewport.Width
	start, end := m.suggestionWindow(st)

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		prefix := "  "
		rowStyle := style.ListItem
		if i == st.Highlighted {
			prefix = "› "
			rowStyle = style.ListSelected
		}
		line := prefix + st.Class.Delimiter() + st.Candidates[i]
		if width > 0 {
			line = truncate.StringWithTail(line, uint(width), "…")
		}
		rows = append(rows, markZone(m.candidateZoneID(i), rowStyle.Render(line)))
	}
	return style.List.Render(strings.Join(rows, "\n"))
}
