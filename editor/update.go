package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/mention/buffer"
	"github.com/iw2rmb/mention/session"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused || m.buf == nil {
		return m, nil
	}

	// Paste events should always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		if !m.cfg.ReadOnly {
			m.buf.InsertText(normalizeNewlines(string(msg.Runes)))
		}
		return m.afterKey(), nil
	}

	if m.updateListKey(msg) {
		return m.afterKey(), nil
	}

	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Left):
		m.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirLeft})
	case key.Matches(msg, km.Right):
		m.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirRight})
	case key.Matches(msg, km.Up):
		m.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirUp})
	case key.Matches(msg, km.Down):
		m.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirDown})

	case key.Matches(msg, km.WordLeft):
		m.buf.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirLeft})
	case key.Matches(msg, km.WordRight):
		m.buf.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirRight})

	case key.Matches(msg, km.Home):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirHome})
	case key.Matches(msg, km.End):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirEnd})

	case key.Matches(msg, km.Backspace):
		if !m.cfg.ReadOnly {
			// Finalized tokens are immutable: backspace right after one
			// removes it whole.
			if !m.ctrl.DeleteBefore(m.shell.Caret()) {
				m.buf.DeleteBackward()
			}
		}
	case key.Matches(msg, km.Delete):
		if !m.cfg.ReadOnly {
			m.buf.DeleteForward()
		}
	case key.Matches(msg, km.Enter):
		if !m.cfg.ReadOnly {
			m.buf.InsertNewline()
		}

	default:
		if msg.Type == tea.KeyTab {
			if !m.cfg.ReadOnly {
				m.buf.InsertText("\t")
			}
			break
		}

		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt {
			if !m.cfg.ReadOnly {
				m.buf.InsertText(string(msg.Runes))
			}
		}
	}

	return m.afterKey(), nil
}

// updateListKey handles keys owned by the suggestion list. It reports
// whether the key was consumed.
func (m Model) updateListKey(msg tea.KeyMsg) bool {
	st := m.ctrl.Session()
	if !st.IsOpen() {
		return false
	}

	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Up):
		return m.ctrl.Navigate(session.Up)
	case key.Matches(msg, km.Down):
		return m.ctrl.Navigate(session.Down)
	case key.Matches(msg, km.Dismiss):
		m.ctrl.Dismiss()
		return true
	case key.Matches(msg, km.Enter), key.Matches(msg, km.Accept):
		if st.Kind != session.Browsing || m.cfg.ReadOnly {
			return false
		}
		return m.ctrl.CommitHighlighted()
	}
	return false
}

func (m Model) afterKey() Model {
	if m.syncFromBuffer() {
		m.followCursorWithForce(true)
	}
	return m
}

// normalizeNewlines folds pasted CRLF and CR line ends into LF.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
