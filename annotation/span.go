// Package annotation owns the ranges of text recognised as trigger tokens.
//
// Offsets are grapheme-cluster indexes within a single block (one logical
// line). A Store holds at most one InProgress annotation, the live trigger
// under the caret, and any number of non-overlapping Finalized annotations.
package annotation

import "fmt"

// Span is a half-open grapheme range [Start, End) within one block.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int { return s.End - s.Start }

func (s Span) IsEmpty() bool { return s.End <= s.Start }

// Valid reports whether 0 <= Start <= End.
func (s Span) Valid() bool { return s.Start >= 0 && s.End >= s.Start }

// Contains reports whether p lies strictly inside the span, so that neither
// boundary counts.
func (s Span) Contains(p int) bool { return p > s.Start && p < s.End }

// Overlaps reports whether the spans share at least one grapheme.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

func (s Span) String() string { return fmt.Sprintf("{%d,%d}", s.Start, s.End) }
