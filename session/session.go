// Package session coordinates the suggestion list shown for a live trigger.
//
// The list is Closed, Open (shown, nothing highlighted) or Browsing (one
// candidate highlighted). Arrow navigation runs off either end back to Open
// instead of wrapping, which hands focus back to the text.
package session

import (
	"fmt"
	"slices"

	"github.com/iw2rmb/mention/annotation"
	"github.com/iw2rmb/mention/internal/log"
	"github.com/iw2rmb/mention/match"
	"github.com/iw2rmb/mention/vocab"
)

// Kind is the session state.
type Kind uint8

const (
	Closed Kind = iota
	Open
	Browsing
)

func (k Kind) String() string {
	switch k {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case Browsing:
		return "browsing"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Direction is an arrow key.
type Direction uint8

const (
	Up Direction = iota
	Down
)

// Action tells the caller what to do after Apply.
type Action uint8

const (
	ActionNone Action = iota
	// ActionAutoCommit asks the caller to commit the exact match at once.
	ActionAutoCommit
)

// State is a snapshot of the session. A non-Closed state always has
// candidates; Highlighted is -1 when Open and a valid index when Browsing.
type State struct {
	Kind        Kind
	Class       vocab.Class
	Span        annotation.Span
	Candidates  []string
	Highlighted int
}

func closedState() State { return State{Highlighted: -1} }

// IsOpen reports whether a list is shown.
func (s State) IsOpen() bool { return s.Kind != Closed }

func (s State) equal(o State) bool {
	return s.Kind == o.Kind &&
		s.Class == o.Class &&
		s.Span == o.Span &&
		s.Highlighted == o.Highlighted &&
		slices.Equal(s.Candidates, o.Candidates)
}

// Session is the suggestion list state machine for one editor.
type Session struct {
	state     State
	listeners []func(State)
}

// New returns a closed session.
func New() *Session {
	return &Session{state: closedState()}
}

// OnChange registers fn to run after every actual state change.
func (s *Session) OnChange(fn func(State)) {
	if fn != nil {
		s.listeners = append(s.listeners, fn)
	}
}

// State returns a copy of the current state.
func (s *Session) State() State {
	st := s.state
	st.Candidates = slices.Clone(st.Candidates)
	return st
}

// Apply feeds a scan result into the session.
//
// Suggestions open the list or refresh it, keeping the highlight when the
// highlighted candidate survives. NoTrigger closes it. ExactMatch closes it
// and asks for an immediate commit.
func (s *Session) Apply(r match.Result) Action {
	switch r.Kind {
	case match.Suggestions:
		candidates := dedup(r.Candidates)
		if len(candidates) == 0 {
			s.set(closedState())
			return ActionNone
		}
		next := State{Kind: Open, Class: r.Class, Span: r.Span, Candidates: candidates, Highlighted: -1}
		if s.state.Kind == Browsing && s.state.Class == r.Class {
			if i := slices.Index(candidates, s.state.Candidates[s.state.Highlighted]); i >= 0 {
				next.Kind = Browsing
				next.Highlighted = i
			}
		}
		s.set(next)
		return ActionNone
	case match.ExactMatch:
		s.set(closedState())
		return ActionAutoCommit
	default:
		s.set(closedState())
		return ActionNone
	}
}

// Navigate moves the highlight and reports whether the state changed.
func (s *Session) Navigate(dir Direction) bool {
	st := s.state
	n := len(st.Candidates)
	switch st.Kind {
	case Closed:
		return false
	case Open:
		if n == 0 {
			return false
		}
		st.Kind = Browsing
		if dir == Down {
			st.Highlighted = 0
		} else {
			st.Highlighted = n - 1
		}
	case Browsing:
		if dir == Down {
			st.Highlighted++
		} else {
			st.Highlighted--
		}
		if st.Highlighted < 0 || st.Highlighted >= n {
			st.Kind = Open
			st.Highlighted = -1
		}
	}
	return s.set(st)
}

// Select highlights the candidate at index, as a pointer hover or click
// does. It reports false when the index is out of range or the list is
// closed.
func (s *Session) Select(index int) bool {
	st := s.state
	if st.Kind == Closed || index < 0 || index >= len(st.Candidates) {
		return false
	}
	st.Kind = Browsing
	st.Highlighted = index
	s.set(st)
	return true
}

// Highlighted returns the highlighted candidate while browsing.
func (s *Session) Highlighted() (string, bool) {
	if s.state.Kind != Browsing {
		return "", false
	}
	return s.state.Candidates[s.state.Highlighted], true
}

// Close discards the list.
func (s *Session) Close() {
	s.set(closedState())
}

func (s *Session) set(next State) bool {
	if s.state.equal(next) {
		return false
	}
	prev := s.state.Kind
	s.state = next
	log.Debug(log.CatSession, "transition", "from", prev, "to", next.Kind, "class", next.Class, "highlighted", next.Highlighted, "candidates", len(next.Candidates))
	for _, fn := range s.listeners {
		fn(s.State())
	}
	return true
}

func dedup(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, c := range in {
		key := vocab.Fold(c)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}
