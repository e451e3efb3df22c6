// Package annotator wires trigger matching, the suggestion session and the
// commit engine behind a host text surface.
//
// The host reports every user edit through HandleEdit (exact geometry) or
// HandleTextChange (new block text only), and every caret move through
// HandleCaretMove. Edits the controller itself makes through the shell are
// accounted for internally and must not be reported back.
package annotator

import (
	"slices"
	"strings"

	"github.com/iw2rmb/mention/annotation"
	"github.com/iw2rmb/mention/commit"
	"github.com/iw2rmb/mention/internal/grapheme"
	"github.com/iw2rmb/mention/internal/log"
	"github.com/iw2rmb/mention/match"
	"github.com/iw2rmb/mention/session"
	"github.com/iw2rmb/mention/vocab"
)

// Shell is the host text surface.
type Shell = commit.Shell

// Caret is the host insertion point.
type Caret = commit.Caret

// trigger is the live match the session was opened for.
type trigger struct {
	block  int
	result match.Result
}

// Controller owns the annotation state of one document. It is driven from a
// single goroutine.
type Controller struct {
	shell   Shell
	store   *annotation.Store
	matcher *match.Matcher
	session *session.Session
	engine  *commit.Engine

	active     *trigger
	snapshots  map[int]string
	autoCommit bool

	matchOpts []match.Option
	storeOpts []annotation.Option
	onSession []func(session.State)
	onCommit  []func(commit.Outcome)
}

// New returns a controller over shell using v for candidates.
func New(shell Shell, v *vocab.Vocabulary, opts ...Option) *Controller {
	c := &Controller{
		shell:      shell,
		snapshots:  make(map[int]string),
		autoCommit: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.store = annotation.NewStore(c.storeOpts...)
	c.matcher = match.New(v, c.matchOpts...)
	c.session = session.New()
	for _, fn := range c.onSession {
		c.session.OnChange(fn)
	}
	c.engine = commit.NewEngine(shell, c.store)
	return c
}

// Store exposes the annotation store for rendering.
func (c *Controller) Store() *annotation.Store { return c.store }

// Session returns the current suggestion list state.
func (c *Controller) Session() session.State { return c.session.State() }

// Vocabulary returns the candidate lists in use.
func (c *Controller) Vocabulary() *vocab.Vocabulary { return c.matcher.Vocabulary() }

// HandleEdit maps stored spans through a user edit and re-scans at caret.
func (c *Controller) HandleEdit(edit annotation.Edit, caret Caret) {
	c.applyEdits([]annotation.Edit{edit})
	c.track(edit)
	c.rescan(caret, true)
}

// HandleEdits is HandleEdit for a batch of edits applied in order.
func (c *Controller) HandleEdits(edits []annotation.Edit, caret Caret) {
	c.applyEdits(edits)
	for _, e := range edits {
		c.track(e)
	}
	c.rescan(caret, true)
}

// HandleTextChange derives the edits from the last text seen for block and
// proceeds as HandleEdit. The first report for a block only records it.
func (c *Controller) HandleTextChange(block int, newText string, caret Caret) {
	if before, ok := c.snapshots[block]; ok {
		c.applyEdits(deriveEdits(block, before, newText))
	}
	c.snapshots[block] = newText
	c.rescan(caret, true)
}

// HandleCaretMove re-scans at caret. Moving off the live trigger closes the
// list; it never auto-commits.
func (c *Controller) HandleCaretMove(caret Caret) {
	c.rescan(caret, false)
}

// Navigate moves the highlight in the open list.
func (c *Controller) Navigate(dir session.Direction) bool {
	return c.session.Navigate(dir)
}

// Select highlights the candidate at index.
func (c *Controller) Select(index int) bool {
	return c.session.Select(index)
}

// CommitHighlighted commits the highlighted candidate, if browsing.
func (c *Controller) CommitHighlighted() bool {
	candidate, ok := c.session.Highlighted()
	if !ok {
		return false
	}
	return c.commit(candidate)
}

// CommitCandidate commits text when it is one of the listed candidates.
func (c *Controller) CommitCandidate(text string) bool {
	st := c.session.State()
	if !st.IsOpen() {
		return false
	}
	key := vocab.Fold(text)
	for _, candidate := range st.Candidates {
		if vocab.Fold(candidate) == key {
			return c.commit(candidate)
		}
	}
	return false
}

// Dismiss closes the list and drops the in-progress highlight. The next
// edit at the trigger opens it again.
func (c *Controller) Dismiss() {
	c.session.Close()
	c.store.ClearInProgress()
	c.active = nil
}

// Delete removes a finalized annotation together with its text and one
// trailing separator.
func (c *Controller) Delete(id annotation.ID) bool {
	a, err := c.store.Get(id)
	if err != nil || a.State != annotation.Finalized {
		log.Warn(log.CatEditor, "delete ignored", "id", id)
		return false
	}

	clusters := grapheme.Split(c.shell.Text(a.Block))
	start, end := a.Span.Start, a.Span.End
	if end < len(clusters) && clusters[end] == commit.Separator {
		end++
	}

	caret := c.shell.Caret()
	c.shell.ReplaceRange(a.Block, start, end, "", func(err error) {
		if err != nil {
			log.ErrorErr(log.CatEditor, "delete failed", err, "id", id)
			return
		}
		c.store.Remove(id)
		c.store.ShiftAfterEdit(a.Block, start, start-end)
		c.snapshot(a.Block)

		if caret.Block == a.Block {
			switch {
			case caret.Offset >= end:
				caret.Offset -= end - start
			case caret.Offset > start:
				caret.Offset = start
			}
			c.shell.SetCaret(caret.Block, caret.Offset)
		}
		log.Info(log.CatEditor, "annotation deleted", "id", id, "block", a.Block)
		c.rescan(c.shell.Caret(), false)
	})
	return true
}

// DeleteBefore deletes the finalized annotation ending at caret, or whose
// separator ends at caret. Backspace uses it so tokens go away whole.
func (c *Controller) DeleteBefore(caret Caret) bool {
	id, ok := c.annotationBefore(caret)
	if !ok {
		return false
	}
	return c.Delete(id)
}

// annotationBefore returns the annotation DeleteBefore would remove.
func (c *Controller) annotationBefore(caret Caret) (annotation.ID, bool) {
	list := c.store.Finalized(caret.Block)
	if len(list) == 0 {
		return "", false
	}
	clusters := grapheme.Split(c.shell.Text(caret.Block))
	for _, a := range list {
		if a.Span.End == caret.Offset {
			return a.ID, true
		}
		if a.Span.End+1 == caret.Offset && a.Span.End < len(clusters) && clusters[a.Span.End] == commit.Separator {
			return a.ID, true
		}
	}
	return "", false
}

// SetVocabulary swaps the candidate lists and re-scans.
func (c *Controller) SetVocabulary(v *vocab.Vocabulary) {
	c.matcher.SetVocabulary(v)
	log.Info(log.CatVocab, "vocabulary replaced")
	c.rescan(c.shell.Caret(), false)
}

// Spans returns the annotations of block in start order, the in-progress
// trigger included.
func (c *Controller) Spans(block int) []annotation.Annotation {
	list := c.store.Finalized(block)
	if ip, ok := c.store.InProgress(); ok && ip.Block == block {
		list = append(list, ip)
		slices.SortFunc(list, func(a, b annotation.Annotation) int { return a.Span.Start - b.Span.Start })
	}
	return list
}

func (c *Controller) applyEdits(edits []annotation.Edit) {
	for _, e := range edits {
		if detached := c.store.ApplyEdit(e); len(detached) > 0 {
			log.Debug(log.CatStore, "edit detached annotations", "count", len(detached), "block", e.Start.Block)
		}
	}
}

// track keeps text snapshots in step with an exact edit. Edits that move
// blocks invalidate every snapshot.
func (c *Controller) track(e annotation.Edit) {
	if e.Start.Block != e.End.Block || strings.Contains(e.Text, "\n") {
		clear(c.snapshots)
		return
	}
	c.snapshot(e.Start.Block)
}

func (c *Controller) snapshot(block int) {
	if _, ok := c.snapshots[block]; ok {
		c.snapshots[block] = c.shell.Text(block)
	}
}

func (c *Controller) rescan(caret Caret, allowAutoCommit bool) {
	text := c.shell.Text(caret.Block)
	r := c.matcher.ScanClipped(text, caret.Offset, c.store.FinalizedSpans(caret.Block))

	if r.Triggered() {
		c.store.UpsertInProgress(caret.Block, r.Span, r.Class)
		c.active = &trigger{block: caret.Block, result: r}
	} else {
		c.store.ClearInProgress()
		c.active = nil
	}

	action := c.session.Apply(r)
	if action == session.ActionAutoCommit && allowAutoCommit && c.autoCommit {
		if exact, ok := r.Exact(); ok {
			c.commit(exact)
		}
	}
}

func (c *Controller) commit(candidate string) bool {
	if c.active == nil {
		return false
	}
	t := *c.active
	req := commit.Request{
		Block:       t.block,
		Caret:       t.result.Span.End,
		RawSpan:     t.result.Span,
		Replacement: candidate,
		Class:       t.result.Class,
	}
	c.engine.Commit(req, func(o commit.Outcome) {
		c.session.Close()
		c.active = nil
		if o.Err != nil {
			c.store.ClearInProgress()
		} else {
			c.snapshot(o.Block)
		}
		for _, fn := range c.onCommit {
			fn(o)
		}
	})
	return true
}
