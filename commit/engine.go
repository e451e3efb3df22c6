package commit

import (
	"errors"
	"fmt"

	"github.com/iw2rmb/mention/annotation"
	"github.com/iw2rmb/mention/internal/grapheme"
	"github.com/iw2rmb/mention/internal/log"
	"github.com/iw2rmb/mention/vocab"
)

// Separator follows every committed token.
const Separator = " "

var (
	// ErrAmbiguousAnchor is reported when the trigger delimiter is no longer
	// in the text behind the caret. The commit does nothing.
	ErrAmbiguousAnchor = errors.New("trigger anchor not found")
	// ErrEmptyReplacement is reported for a commit without candidate text.
	ErrEmptyReplacement = errors.New("empty replacement")
)

// Request describes one commit. RawSpan is the trigger span reported by the
// matcher. Its start is the anchor while the delimiter is still there;
// otherwise the engine looks for the anchor in the current text.
type Request struct {
	Block       int
	Caret       int
	RawSpan     annotation.Span
	Replacement string
	Class       vocab.Class
}

// Outcome reports a finished or rejected commit.
type Outcome struct {
	ID    annotation.ID
	Block int
	Span  annotation.Span
	Caret int
	Err   error
}

// Engine executes commits against a shell and a store.
type Engine struct {
	shell Shell
	store *annotation.Store
}

// NewEngine returns an engine bound to shell and store.
func NewEngine(shell Shell, store *annotation.Store) *Engine {
	return &Engine{shell: shell, store: store}
}

// Commit replaces [anchor, caret) with the replacement and a separator, marks
// the replacement finalized, and moves the caret past the separator. done,
// if non-nil, receives exactly one Outcome. Failures leave text and store
// untouched.
func (e *Engine) Commit(req Request, done func(Outcome)) {
	report := func(o Outcome) {
		if o.Err != nil {
			log.ErrorErr(log.CatCommit, "commit rejected", o.Err, "block", req.Block, "caret", req.Caret, "class", req.Class)
		}
		if done != nil {
			done(o)
		}
	}

	if req.Replacement == "" || !req.Class.Valid() {
		report(Outcome{Block: req.Block, Err: fmt.Errorf("commit %s: %w", req.Class, ErrEmptyReplacement)})
		return
	}

	text := e.shell.Text(req.Block)
	clusters := grapheme.Split(text)
	caret := req.Caret
	if caret < 0 || caret > len(clusters) {
		caret = len(clusters)
	}

	floor := 0
	for _, s := range e.store.FinalizedSpans(req.Block) {
		if s.End <= caret && s.End > floor {
			floor = s.End
		}
	}

	anchor, ok := anchorAtSpan(clusters, req.RawSpan, floor, caret, req.Class)
	if !ok {
		anchor, ok = findAnchor(clusters, floor, caret, req.Class)
	}
	if !ok {
		report(Outcome{Block: req.Block, Err: fmt.Errorf("commit %q at %d: %w", req.Replacement, caret, ErrAmbiguousAnchor)})
		return
	}

	replaced := annotation.Span{Start: anchor, End: caret}
	for _, s := range e.store.FinalizedSpans(req.Block) {
		if s.Overlaps(replaced) {
			report(Outcome{Block: req.Block, Err: fmt.Errorf("commit %s: %w", replaced, annotation.ErrOverlappingFinalizedSpan)})
			return
		}
	}

	length := grapheme.Count(req.Replacement)
	inserted := req.Replacement + Separator
	delta := grapheme.Count(inserted) - replaced.Len()

	log.Debug(log.CatCommit, "splice", "block", req.Block, "range", replaced, "replacement", req.Replacement)
	e.shell.ReplaceRange(req.Block, anchor, caret, inserted, func(err error) {
		if err != nil {
			report(Outcome{Block: req.Block, Err: fmt.Errorf("commit replace %s: %w", replaced, err)})
			return
		}

		e.store.ShiftAfterEdit(req.Block, anchor, delta)
		span := annotation.Span{Start: anchor, End: anchor + length}
		id, err := e.store.Finalize(req.Block, span, req.Class)
		if err != nil {
			report(Outcome{Block: req.Block, Err: fmt.Errorf("commit finalize: %w", err)})
			return
		}
		e.shell.ApplyAnnotation(req.Block, span, id)

		next := anchor + grapheme.Count(inserted)
		e.shell.SetCaret(req.Block, next)

		log.Info(log.CatCommit, "committed", "id", id, "block", req.Block, "span", span, "class", req.Class)
		report(Outcome{ID: id, Block: req.Block, Span: span, Caret: next})
	})
}

// anchorAtSpan reports raw.Start when the class delimiter still begins there
// and lies between floor and caret.
func anchorAtSpan(clusters []string, raw annotation.Span, floor, caret int, class vocab.Class) (int, bool) {
	delim := grapheme.Split(class.Delimiter())
	if raw.IsEmpty() || raw.Start < floor || raw.Start+len(delim) > caret {
		return 0, false
	}
	for i, d := range delim {
		if clusters[raw.Start+i] != d {
			return 0, false
		}
	}
	return raw.Start, true
}

// findAnchor scans back from caret for the class anchor character. A
// Relation anchor preceded by its opener moves back onto the opener.
func findAnchor(clusters []string, floor, caret int, class vocab.Class) (int, bool) {
	anchor := class.Anchor()
	for i := caret - 1; i >= floor; i-- {
		if clusters[i] != anchor {
			continue
		}
		if opener, ok := class.Opener(); ok && i-1 >= floor && clusters[i-1] == opener {
			return i - 1, true
		}
		return i, true
	}
	return 0, false
}
