package editor

import (
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/iw2rmb/mention/annotation"
	"github.com/iw2rmb/mention/buffer"
)

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if isWheelMouse(msg) {
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if !m.focused || m.buf == nil {
		return m, nil
	}

	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if i, ok := m.candidateAt(msg); ok {
			if !m.cfg.ReadOnly {
				m.ctrl.CommitCandidate(m.ctrl.Session().Candidates[i])
			}
			return m.afterKey(), nil
		}
		if id, ok := m.affordanceAt(msg); ok {
			if !m.cfg.ReadOnly {
				m.ctrl.Delete(id)
			}
			return m.afterKey(), nil
		}
		if !m.mouseInBounds(msg.X, msg.Y) {
			return m, nil
		}
		m.buf.SetCursor(m.screenToDocPos(msg.X, msg.Y))
		return m.afterKey(), nil

	case tea.MouseActionMotion:
		if i, ok := m.candidateAt(msg); ok && m.ctrl.Select(i) {
			m.rebuildContent()
		}
	}
	return m, nil
}

func isWheelMouse(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonWheelUp ||
			msg.Button == tea.MouseButtonWheelDown ||
			msg.Button == tea.MouseButtonWheelLeft ||
			msg.Button == tea.MouseButtonWheelRight)
}

// candidateAt reports the suggestion row under the pointer. Zones are used
// when a manager is running; otherwise the row is derived from the list's
// position directly below the viewport.
func (m Model) candidateAt(msg tea.MouseMsg) (int, bool) {
	st := m.ctrl.Session()
	if !st.IsOpen() {
		return 0, false
	}
	start, end := m.suggestionWindow(st)
	if zone.DefaultManager != nil {
		for i := start; i < end; i++ {
			if inZone(m.candidateZoneID(i), msg) {
				return i, true
			}
		}
		return 0, false
	}

	i := start + msg.Y - m.viewport.Height
	if msg.Y < m.viewport.Height || i >= end || msg.X < 0 {
		return 0, false
	}
	return i, true
}

// affordanceAt reports the finalized annotation whose delete affordance is
// under the pointer.
func (m Model) affordanceAt(msg tea.MouseMsg) (annotation.ID, bool) {
	if zone.DefaultManager != nil {
		for _, a := range m.ctrl.Store().All() {
			if a.State == annotation.Finalized && inZone(m.deleteZoneID(a.ID), msg) {
				return a.ID, true
			}
		}
		return "", false
	}

	if !m.mouseInBounds(msg.X, msg.Y) {
		return "", false
	}
	row := m.viewport.YOffset + msg.Y
	if row < 0 || row >= m.buf.LineCount() {
		return "", false
	}
	x := msg.X - m.gutterWidth()
	for _, c := range m.layoutRow(row).Cells {
		if c.isAffordance() && x >= c.StartCell && x < c.StartCell+c.CellWidth {
			return c.Delete, true
		}
	}
	return "", false
}

func (m Model) screenToDocPos(x, y int) buffer.Pos {
	row := clampInt(m.viewport.YOffset+y, 0, m.buf.LineCount()-1)
	col := m.layoutRow(row).docColAtCell(x - m.gutterWidth())
	return buffer.Pos{Row: row, GraphemeCol: col}
}

func (m Model) mouseInBounds(x, y int) bool {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return false
	}
	return x >= 0 && x < m.viewport.Width && y >= 0 && y < m.viewport.Height
}
