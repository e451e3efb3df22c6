// Package commit turns a matched trigger into a finalized annotation.
//
// A commit is two-phase: the text splice is handed to the Shell, and the
// annotation is only recorded once the Shell reports the splice applied.
// Offsets read before that point would be stale.
package commit

import "github.com/iw2rmb/mention/annotation"

// Caret is the insertion point of the host surface.
type Caret struct {
	Block  int
	Offset int
}

// Shell is the narrow view of the host text surface a commit needs.
type Shell interface {
	Text(block int) string
	Caret() Caret
	// ReplaceRange replaces graphemes [start, end) of block with text and
	// calls applied, possibly later, once the change is visible through Text.
	ReplaceRange(block, start, end int, text string, applied func(error))
	ApplyAnnotation(block int, span annotation.Span, id annotation.ID)
	SetCaret(block, offset int)
}
