package annotator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/mention/annotation"
	"github.com/iw2rmb/mention/commit"
	"github.com/iw2rmb/mention/internal/grapheme"
	"github.com/iw2rmb/mention/match"
	"github.com/iw2rmb/mention/session"
	"github.com/iw2rmb/mention/vocab"
)

type fakeShell struct {
	lines []string
	caret Caret
	marks []annotation.ID
}

func newShell(text string) *fakeShell {
	return &fakeShell{lines: []string{text}, caret: Caret{Offset: grapheme.Count(text)}}
}

func (f *fakeShell) Text(block int) string {
	if block < 0 || block >= len(f.lines) {
		return ""
	}
	return f.lines[block]
}

func (f *fakeShell) Caret() Caret { return f.caret }

func (f *fakeShell) ReplaceRange(block, start, end int, text string, done func(error)) {
	clusters := grapheme.Split(f.lines[block])
	f.lines[block] = grapheme.Join(clusters[:start]) + text + grapheme.Join(clusters[end:])
	done(nil)
}

func (f *fakeShell) ApplyAnnotation(_ int, _ annotation.Span, id annotation.ID) {
	f.marks = append(f.marks, id)
}

func (f *fakeShell) SetCaret(block, offset int) { f.caret = Caret{Block: block, Offset: offset} }

// typeText inserts s at the caret one grapheme at a time, reporting each
// keystroke the way an editor does.
func typeText(c *Controller, f *fakeShell, s string) {
	for _, g := range grapheme.Split(s) {
		at := f.caret
		clusters := grapheme.Split(f.lines[at.Block])
		f.lines[at.Block] = grapheme.Join(clusters[:at.Offset]) + g + grapheme.Join(clusters[at.Offset:])
		f.caret.Offset++
		c.HandleEdit(annotation.Insert(annotation.Position{Block: at.Block, Offset: at.Offset}, g), f.caret)
	}
}

func sequentialIDs() Option {
	n := 0
	return WithStoreOptions(annotation.WithIDGenerator(func() annotation.ID {
		n++
		return annotation.ID(fmt.Sprintf("a%d", n))
	}))
}

func demoVocab() *vocab.Vocabulary {
	return vocab.New(map[vocab.Class][]string{
		vocab.Person:   {"Jim Avery", "Jonas Salk"},
		vocab.Hashtag:  {"history", "medicine"},
		vocab.Relation: {"History", "Archaeology"},
	})
}

func TestController_TypeBrowseCommit(t *testing.T) {
	shell := newShell("")
	c := New(shell, demoVocab(), sequentialIDs())

	typeText(c, shell, "Hello @Jim")

	st := c.Session()
	require.Equal(t, session.Open, st.Kind)
	assert.Equal(t, []string{"Jim Avery"}, st.Candidates)
	ip, ok := c.Store().InProgress()
	require.True(t, ok)
	assert.Equal(t, annotation.Span{Start: 6, End: 10}, ip.Span)

	require.True(t, c.Navigate(session.Down))
	require.True(t, c.CommitHighlighted())

	assert.Equal(t, "Hello Jim Avery ", shell.lines[0])
	assert.Equal(t, Caret{Offset: 16}, shell.caret)
	assert.Equal(t, session.Closed, c.Session().Kind)

	spans := c.Spans(0)
	require.Len(t, spans, 1)
	assert.Equal(t, annotation.Finalized, spans[0].State)
	assert.Equal(t, annotation.Span{Start: 6, End: 15}, spans[0].Span)
	assert.Equal(t, vocab.Person, spans[0].Class)
	assert.Equal(t, []annotation.ID{spans[0].ID}, shell.marks)
}

func TestController_ExactMatchAutoCommits(t *testing.T) {
	shell := newShell("")
	var outcomes []commit.Outcome
	c := New(shell, demoVocab(), OnCommit(func(o commit.Outcome) { outcomes = append(outcomes, o) }))

	typeText(c, shell, "#hiSTORY")

	assert.Equal(t, "history ", shell.lines[0])
	require.Len(t, outcomes, 1)
	require.NoError(t, outcomes[0].Err)
	assert.Equal(t, annotation.Span{Start: 0, End: 7}, outcomes[0].Span)
}

func TestController_AutoCommitDisabled(t *testing.T) {
	shell := newShell("")
	c := New(shell, demoVocab(), WithAutoCommit(false))

	typeText(c, shell, "#history")

	assert.Equal(t, "#history", shell.lines[0])
	assert.Zero(t, c.Store().Len())
	ip, ok := c.Store().InProgress()
	require.True(t, ok, "exact text stays highlighted as in progress")
	assert.Equal(t, annotation.Span{Start: 0, End: 8}, ip.Span)
}

func TestController_CaretMoveCancels(t *testing.T) {
	shell := newShell("")
	c := New(shell, demoVocab())
	typeText(c, shell, "text @J")
	require.True(t, c.Session().IsOpen())

	shell.caret = Caret{Offset: 2}
	c.HandleCaretMove(shell.caret)

	assert.Equal(t, session.Closed, c.Session().Kind)
	_, ok := c.Store().InProgress()
	assert.False(t, ok)
	assert.False(t, c.CommitHighlighted())
}

func TestController_CommitCandidate(t *testing.T) {
	shell := newShell("")
	c := New(shell, demoVocab())
	typeText(c, shell, "@J")

	assert.False(t, c.CommitCandidate("Ada Lovelace"), "only listed candidates commit")
	require.True(t, c.CommitCandidate("jonas salk"))

	assert.Equal(t, "Jonas Salk ", shell.lines[0])
}

func TestController_RelationCommit(t *testing.T) {
	shell := newShell("")
	c := New(shell, demoVocab())
	typeText(c, shell, "see <>Arc")

	require.True(t, c.Navigate(session.Up))
	require.True(t, c.CommitHighlighted())

	assert.Equal(t, "see Archaeology ", shell.lines[0])
	spans := c.Spans(0)
	require.Len(t, spans, 1)
	assert.Equal(t, annotation.Span{Start: 4, End: 15}, spans[0].Span)
	assert.Equal(t, vocab.Relation, spans[0].Class)
}

func TestController_DeleteBeforeRemovesWholeToken(t *testing.T) {
	shell := newShell("")
	c := New(shell, demoVocab())
	typeText(c, shell, "Hello @Jim Avery")
	require.Equal(t, "Hello Jim Avery ", shell.lines[0])

	require.True(t, c.DeleteBefore(shell.caret))

	assert.Equal(t, "Hello ", shell.lines[0])
	assert.Zero(t, c.Store().Len())
	assert.Equal(t, Caret{Offset: 6}, shell.caret)
	assert.False(t, c.DeleteBefore(shell.caret))
}

func TestController_DeleteShiftsLaterTokens(t *testing.T) {
	shell := newShell("")
	c := New(shell, demoVocab(), sequentialIDs())
	typeText(c, shell, "@Jim Avery#medicine")
	require.Equal(t, "Jim Avery medicine ", shell.lines[0])

	spans := c.Spans(0)
	require.Len(t, spans, 2)

	require.True(t, c.Delete(spans[0].ID))

	assert.Equal(t, "medicine ", shell.lines[0])
	rest := c.Spans(0)
	require.Len(t, rest, 1)
	assert.Equal(t, annotation.Span{Start: 0, End: 8}, rest[0].Span)
	assert.Equal(t, Caret{Offset: 9}, shell.caret)

	// A subsequent scan does not see the stale span.
	typeText(c, shell, "@Jo")
	assert.Equal(t, annotation.Span{Start: 9, End: 12}, c.Session().Span)

	assert.False(t, c.Delete("missing"))
}

func TestController_EditInsideTokenDetaches(t *testing.T) {
	shell := newShell("")
	c := New(shell, demoVocab())
	typeText(c, shell, "@Jim Avery")
	require.Equal(t, 1, c.Store().Len())

	shell.caret = Caret{Offset: 3}
	typeText(c, shell, "x")

	assert.Equal(t, "Jimx Avery ", shell.lines[0])
	assert.Zero(t, c.Store().Len())
}

func TestController_TypingBeforeTokenShiftsIt(t *testing.T) {
	shell := newShell("")
	c := New(shell, demoVocab())
	typeText(c, shell, "@Jim Avery")

	shell.caret = Caret{Offset: 0}
	typeText(c, shell, "Hi ")

	spans := c.Spans(0)
	require.Len(t, spans, 1)
	assert.Equal(t, annotation.Span{Start: 3, End: 12}, spans[0].Span)
}

func TestController_HandleTextChangeMatchesHandleEdit(t *testing.T) {
	steps := []struct {
		edit  annotation.Edit
		after string
		caret int
	}{
		{annotation.Insert(annotation.Position{Offset: 0}, ">> "), ">> Jim Avery tail", 3},
		{annotation.Delete(annotation.Position{Offset: 16}, annotation.Position{Offset: 17}), ">> Jim Avery tai", 16},
		{annotation.Insert(annotation.Position{Offset: 13}, "#me"), ">> Jim Avery #metai", 16},
	}

	run := func(exact bool) []annotation.Annotation {
		shell := newShell("")
		c := New(shell, demoVocab(), sequentialIDs())
		typeText(c, shell, "@Jim Avery")
		typeText(c, shell, "tail")
		require.Equal(t, "Jim Avery tail", shell.lines[0])
		c.HandleTextChange(0, shell.lines[0], shell.caret)

		for _, s := range steps {
			shell.lines[0] = s.after
			shell.caret = Caret{Offset: s.caret}
			if exact {
				c.HandleEdit(s.edit, shell.caret)
			} else {
				c.HandleTextChange(0, s.after, shell.caret)
			}
		}
		return c.Store().All()
	}

	viaEdit := run(true)
	viaDiff := run(false)
	require.Equal(t, viaEdit, viaDiff)
	require.Len(t, viaEdit, 2)
	assert.Equal(t, annotation.Span{Start: 3, End: 12}, viaEdit[0].Span)
	assert.Equal(t, annotation.InProgress, viaEdit[1].State)
	assert.Equal(t, annotation.Span{Start: 13, End: 16}, viaEdit[1].Span)
}

func TestController_NewlineMovesTokenToNextBlock(t *testing.T) {
	shell := newShell("")
	c := New(shell, demoVocab())
	typeText(c, shell, "ab @Jim Avery")

	shell.lines = []string{"a", "b Jim Avery "}
	shell.caret = Caret{Block: 1, Offset: 0}
	c.HandleEdit(annotation.Insert(annotation.Position{Offset: 1}, "\n"), shell.caret)

	assert.Empty(t, c.Spans(0))
	spans := c.Spans(1)
	require.Len(t, spans, 1)
	assert.Equal(t, annotation.Span{Start: 2, End: 11}, spans[0].Span)
}

func TestController_Dismiss(t *testing.T) {
	shell := newShell("")
	c := New(shell, demoVocab())
	typeText(c, shell, "@J")

	c.Dismiss()

	assert.Equal(t, session.Closed, c.Session().Kind)
	assert.Empty(t, c.Spans(0))

	typeText(c, shell, "i")
	assert.Equal(t, session.Open, c.Session().Kind)
}

func TestController_SetVocabularyRescans(t *testing.T) {
	shell := newShell("")
	c := New(shell, demoVocab())
	typeText(c, shell, "@A")
	require.Equal(t, session.Closed, c.Session().Kind)

	c.SetVocabulary(vocab.New(map[vocab.Class][]string{vocab.Person: {"Ada Lovelace"}}))

	st := c.Session()
	assert.Equal(t, session.Open, st.Kind)
	assert.Equal(t, []string{"Ada Lovelace"}, st.Candidates)
}

func TestController_OnSessionChanged(t *testing.T) {
	shell := newShell("")
	var kinds []session.Kind
	c := New(shell, demoVocab(), OnSessionChanged(func(st session.State) { kinds = append(kinds, st.Kind) }))

	typeText(c, shell, "@J")
	c.Navigate(session.Down)
	c.Navigate(session.Down)
	c.Navigate(session.Down)
	c.Dismiss()

	// Each keystroke moves the trigger span, so "@" and "@J" both report Open.
	assert.Equal(t, []session.Kind{
		session.Open, session.Open,
		session.Browsing, session.Browsing,
		session.Open, session.Closed,
	}, kinds)
}

func TestController_IgnoreInnerSpace(t *testing.T) {
	shell := newShell("")
	c := New(shell, demoVocab())
	typeText(c, shell, "@JimA")
	assert.Equal(t, session.Closed, c.Session().Kind)

	shell = newShell("")
	c = New(shell, demoVocab(), WithMatchOptions(match.WithIgnoreInnerSpace(true)))
	typeText(c, shell, "@JimA")
	assert.Equal(t, []string{"Jim Avery"}, c.Session().Candidates)
}
