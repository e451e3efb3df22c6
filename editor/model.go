package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/mention/annotation"
	"github.com/iw2rmb/mention/annotator"
	"github.com/iw2rmb/mention/buffer"
	"github.com/iw2rmb/mention/match"
	"github.com/iw2rmb/mention/session"
	"github.com/iw2rmb/mention/vocab"
)

// Model is a Bubble Tea component that renders and interacts with a buffer
// and runs trigger recognition over it.
type Model struct {
	cfg   Config
	buf   *buffer.Buffer
	shell *bufferShell
	ctrl  *annotator.Controller

	focused bool
	search  string

	viewport viewport.Model

	lastBufVersion uint64
	lastCursor     buffer.Pos
}

func New(cfg Config) Model {
	cfg = cfg.withDefaults()
	buf := buffer.New(cfg.Text)
	shell := newBufferShell(buf)

	opts := []annotator.Option{
		annotator.WithAutoCommit(!cfg.DisableAutoCommit),
		annotator.WithMatchOptions(
			match.WithEmptyQuery(cfg.EmptyQuery),
			match.WithIgnoreInnerSpace(cfg.IgnoreInnerSpace),
		),
	}
	if cfg.AnnotationIDs != nil {
		opts = append(opts, annotator.WithStoreOptions(annotation.WithIDGenerator(cfg.AnnotationIDs)))
	}
	if cfg.OnSessionChanged != nil {
		opts = append(opts, annotator.OnSessionChanged(cfg.OnSessionChanged))
	}
	if cfg.OnCommit != nil {
		opts = append(opts, annotator.OnCommit(cfg.OnCommit))
	}

	m := Model{
		cfg:      cfg,
		buf:      buf,
		shell:    shell,
		ctrl:     annotator.New(shell, cfg.Vocabulary, opts...),
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	m.lastBufVersion = m.buf.Version()
	m.lastCursor = m.buf.Cursor()
	m.rebuildContent()
	return m
}

func (m Model) Buffer() *buffer.Buffer { return m.buf }

// Controller exposes the annotation controller for hosts that drive
// suggestions from their own UI.
func (m Model) Controller() *annotator.Controller { return m.ctrl }

// Session returns the suggestion list state.
func (m Model) Session() session.State { return m.ctrl.Session() }

// Annotations returns every annotation in document order.
func (m Model) Annotations() []annotation.Annotation { return m.ctrl.Store().All() }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height

	m.rebuildContent()
	m.followCursorWithForce(true)
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursorWithForce(true)
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.ctrl.Dismiss()
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

// SetVocabulary swaps the candidate lists, re-scanning the trigger under the
// cursor.
func (m Model) SetVocabulary(v *vocab.Vocabulary) Model {
	if v == nil {
		return m
	}
	m.ctrl.SetVocabulary(v)
	m.rebuildContent()
	return m
}

// SetSearch highlights every occurrence of term. An empty term clears it.
func (m Model) SetSearch(term string) Model {
	m.search = term
	m.rebuildContent()
	return m
}

func (m Model) Search() string { return m.search }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		m.forwardChanges()
		return m.updateKey(msg)
	case tea.MouseMsg:
		m.forwardChanges()
		return m.updateMouse(msg)
	default:
		// Hosts may drive edits by mutating the buffer directly.
		if m.syncFromBuffer() {
			m.followCursorWithForce(true)
		}
		return m, nil
	}
}

func (m Model) View() string {
	list := m.renderSuggestions()
	if list == "" {
		return m.viewport.View()
	}
	return m.viewport.View() + "\n" + list
}

// ApplyEdits runs edits against the buffer as one host change and lets the
// annotator follow them.
func (m Model) ApplyEdits(edits ...buffer.TextEdit) Model {
	if m.buf.Apply(edits...) {
		return m.afterKey()
	}
	return m
}

// forwardChanges hands the controller every buffer edit it has not seen, in
// the order they were made. When only the cursor moved it re-scans there.
func (m *Model) forwardChanges() {
	s := m.shell
	if m.buf.Version() == s.synced && m.buf.Cursor() == s.caret {
		return
	}
	caret := s.Caret()
	if edits := s.pending(); len(edits) > 0 {
		m.ctrl.HandleEdits(edits, caret)
	} else if m.buf.Cursor() != s.caret {
		m.ctrl.HandleCaretMove(caret)
	}
	s.markSynced()
}

// syncFromBuffer forwards pending buffer activity to the controller and
// re-renders, notifying OnChange when the version or cursor moved.
func (m *Model) syncFromBuffer() (cursorChanged bool) {
	m.forwardChanges()

	ver, cur := m.buf.Version(), m.buf.Cursor()
	if ver == m.lastBufVersion && cur == m.lastCursor {
		m.rebuildContent()
		return false
	}

	cursorChanged = cur != m.lastCursor
	m.lastBufVersion = ver
	m.lastCursor = cur
	m.rebuildContent()

	if m.cfg.OnChange != nil {
		m.cfg.OnChange(m.buildChangeEvent())
	}
	return cursorChanged
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) followCursorWithForce(force bool) {
	if m.buf == nil {
		return
	}
	cur := m.buf.Cursor()
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}

	y := m.viewport.YOffset
	if cur.Row < y {
		m.viewport.SetYOffset(cur.Row)
		return
	}
	if force && cur.Row >= y+h {
		m.viewport.SetYOffset(cur.Row - h + 1)
	}
}
