package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/iw2rmb/mention/buffer"
	"github.com/iw2rmb/mention/commit"
	"github.com/iw2rmb/mention/editor"
	"github.com/iw2rmb/mention/internal/config"
	"github.com/iw2rmb/mention/internal/log"
	"github.com/iw2rmb/mention/vocab"
)

const introText = "Type @ for people, # for tags and <> for relations.\n"

// vocabChangedMsg is delivered when the watched vocabulary file changes.
type vocabChangedMsg struct{}

type keyMap struct {
	editor.KeyMap
	Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return append(k.KeyMap.ShortHelp(), k.Quit)
}

// status collects hook output. It is shared by pointer because the editor
// hooks outlive any single copy of the model.
type status struct {
	text string
}

type model struct {
	cfg     config.Config
	editor  editor.Model
	help    help.Model
	keys    keyMap
	status  *status
	changes <-chan struct{}
}

func newModel(cfg config.Config, v *vocab.Vocabulary, changes <-chan struct{}) model {
	st := &status{text: fmt.Sprintf("%d people, %d tags, %d relations",
		v.Len(vocab.Person), v.Len(vocab.Hashtag), v.Len(vocab.Relation))}

	km := editor.DefaultKeyMap()
	ed := editor.New(editor.Config{
		Text:              introText,
		Vocabulary:        v,
		EmptyQuery:        cfg.EmptyQueryPolicy(),
		IgnoreInnerSpace:  cfg.Matching.IgnoreInnerSpace,
		DisableAutoCommit: !cfg.Matching.AutoCommit,
		ShowLineNums:      cfg.UI.ShowLineNumbers,
		Style:             editor.DefaultStyle(),
		TabWidth:          cfg.UI.TabWidth,
		MaxSuggestions:    cfg.UI.MaxSuggestions,
		KeyMap:            km,
		OnCommit: func(o commit.Outcome) {
			if o.Err != nil {
				st.text = "commit failed: " + o.Err.Error()
				return
			}
			st.text = fmt.Sprintf("annotated %s", o.Span)
		},
	})
	ed.Buffer().Move(buffer.Move{Unit: buffer.MoveDoc, Dir: buffer.DirEnd})

	return model{
		cfg:    cfg,
		editor: ed,
		help:   help.New(),
		keys: keyMap{
			KeyMap: km,
			Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		},
		status:  st,
		changes: changes,
	}
}

func (m model) Init() tea.Cmd {
	return waitForVocabChange(m.changes)
}

func waitForVocabChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return vocabChangedMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.editor = m.editor.SetSize(msg.Width, m.editorHeight(msg.Height))
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
	case vocabChangedMsg:
		m.reloadVocabulary()
		return m, waitForVocabChange(m.changes)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// editorHeight leaves room for the suggestion list, status and help lines.
func (m model) editorHeight(total int) int {
	return max(total-m.cfg.UI.MaxSuggestions-2, 1)
}

func (m *model) reloadVocabulary() {
	v, err := m.cfg.LoadVocabulary()
	if err != nil {
		log.ErrorErr(log.CatVocab, "reload failed", err, "path", m.cfg.Vocabulary.File)
		m.status.text = "vocabulary reload failed: " + err.Error()
		return
	}
	m.editor = m.editor.SetVocabulary(v)
	m.status.text = "vocabulary reloaded"
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

func (m model) View() string {
	var sb strings.Builder
	sb.WriteString(m.editor.View())
	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render(m.status.text))
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))

	// Zones are scanned once, on the full frame.
	if zone.DefaultManager == nil {
		return sb.String()
	}
	return zone.Scan(sb.String())
}
