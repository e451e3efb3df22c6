package match

import (
	"fmt"

	"github.com/iw2rmb/mention/annotation"
	"github.com/iw2rmb/mention/vocab"
)

// Kind classifies a scan result.
type Kind uint8

const (
	// NoTrigger means no unfinished trigger matched anything. It is the
	// normal outcome, not an error.
	NoTrigger Kind = iota
	// Suggestions carries the prefix matches of the trigger text.
	Suggestions
	// ExactMatch carries the one candidate equal to the trigger text.
	ExactMatch
)

func (k Kind) String() string {
	switch k {
	case NoTrigger:
		return "no-trigger"
	case Suggestions:
		return "suggestions"
	case ExactMatch:
		return "exact-match"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Result is the outcome of one scan.
//
// Span is the raw trigger span [delimiter, caret), delimiter included. Query
// is the trimmed text after the delimiter. Candidates holds the canonical
// vocabulary entries in vocabulary order; for ExactMatch it holds exactly one.
type Result struct {
	Kind       Kind
	Class      vocab.Class
	Span       annotation.Span
	Query      string
	Candidates []string
}

// Triggered reports whether the result carries a live trigger.
func (r Result) Triggered() bool { return r.Kind != NoTrigger }

// Exact returns the matched candidate of an ExactMatch result.
func (r Result) Exact() (string, bool) {
	if r.Kind != ExactMatch || len(r.Candidates) == 0 {
		return "", false
	}
	return r.Candidates[0], true
}
