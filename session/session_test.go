package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/iw2rmb/mention/annotation"
	"github.com/iw2rmb/mention/match"
	"github.com/iw2rmb/mention/vocab"
)

func suggestions(candidates ...string) match.Result {
	return match.Result{
		Kind:       match.Suggestions,
		Class:      vocab.Person,
		Span:       annotation.Span{Start: 0, End: 2},
		Candidates: candidates,
	}
}

func TestApply_SuggestionsOpen(t *testing.T) {
	s := New()

	action := s.Apply(suggestions("Jim Avery", "Jonas Salk"))

	assert.Equal(t, ActionNone, action)
	st := s.State()
	assert.Equal(t, Open, st.Kind)
	assert.Equal(t, -1, st.Highlighted)
	assert.Equal(t, []string{"Jim Avery", "Jonas Salk"}, st.Candidates)
	_, ok := s.Highlighted()
	assert.False(t, ok)
}

func TestApply_DeduplicatesKeepingOrder(t *testing.T) {
	s := New()

	s.Apply(suggestions("b", "a", "B", "a"))

	assert.Equal(t, []string{"b", "a"}, s.State().Candidates)
}

func TestApply_EmptySuggestionsClose(t *testing.T) {
	s := New()
	s.Apply(suggestions("a"))

	s.Apply(suggestions())

	assert.Equal(t, Closed, s.State().Kind)
}

func TestApply_NoTriggerCloses(t *testing.T) {
	s := New()
	s.Apply(suggestions("a", "b"))
	s.Navigate(Down)

	s.Apply(match.Result{})

	st := s.State()
	assert.Equal(t, Closed, st.Kind)
	assert.Empty(t, st.Candidates)
	assert.Equal(t, -1, st.Highlighted)
}

func TestApply_ExactMatchAutoCommits(t *testing.T) {
	s := New()
	s.Apply(suggestions("Jonas Salk"))

	action := s.Apply(match.Result{Kind: match.ExactMatch, Class: vocab.Person, Candidates: []string{"Jonas Salk"}})

	assert.Equal(t, ActionAutoCommit, action)
	assert.Equal(t, Closed, s.State().Kind)
}

func TestApply_RefreshKeepsHighlightedCandidate(t *testing.T) {
	s := New()
	s.Apply(suggestions("Jim Avery", "Jonas Salk", "John Smith"))
	s.Navigate(Up)
	got, _ := s.Highlighted()
	require.Equal(t, "John Smith", got)

	s.Apply(suggestions("Jonas Salk", "John Smith"))

	got, ok := s.Highlighted()
	require.True(t, ok)
	assert.Equal(t, "John Smith", got)
	assert.Equal(t, 1, s.State().Highlighted)

	s.Apply(suggestions("Jonas Salk"))
	assert.Equal(t, Open, s.State().Kind, "highlight dropped when its candidate disappears")
}

func TestNavigate_DownFromOpenStartsAtFirst(t *testing.T) {
	s := New()
	s.Apply(suggestions("a", "b", "c"))

	require.True(t, s.Navigate(Down))

	assert.Equal(t, Browsing, s.State().Kind)
	assert.Equal(t, 0, s.State().Highlighted)
}

func TestNavigate_UpFromOpenStartsAtLast(t *testing.T) {
	s := New()
	s.Apply(suggestions("a", "b", "c"))

	s.Navigate(Up)

	assert.Equal(t, 2, s.State().Highlighted)
}

func TestNavigate_FallsOffTheEnd(t *testing.T) {
	s := New()
	s.Apply(suggestions("a", "b"))

	s.Navigate(Down)
	s.Navigate(Down)
	require.Equal(t, 1, s.State().Highlighted)

	s.Navigate(Down)
	st := s.State()
	assert.Equal(t, Open, st.Kind, "down at the last index returns to Open, not to index 0")
	assert.Equal(t, -1, st.Highlighted)

	s.Navigate(Down)
	s.Navigate(Up)
	assert.Equal(t, Open, s.State().Kind)
}

func TestNavigate_ClosedIsNoop(t *testing.T) {
	s := New()
	assert.False(t, s.Navigate(Down))
	assert.Equal(t, Closed, s.State().Kind)
}

func TestSelect(t *testing.T) {
	s := New()
	assert.False(t, s.Select(0))

	s.Apply(suggestions("a", "b"))
	assert.False(t, s.Select(2))
	require.True(t, s.Select(1))

	got, ok := s.Highlighted()
	require.True(t, ok)
	assert.Equal(t, "b", got)
}

func TestOnChange_FiresOnlyOnChange(t *testing.T) {
	s := New()
	var seen []Kind
	s.OnChange(func(st State) { seen = append(seen, st.Kind) })

	s.Close()
	s.Apply(suggestions("a"))
	s.Apply(suggestions("a"))
	s.Navigate(Down)
	s.Close()
	s.Close()

	assert.Equal(t, []Kind{Open, Browsing, Closed}, seen)
}

func TestState_IsACopy(t *testing.T) {
	s := New()
	s.Apply(suggestions("a", "b"))

	st := s.State()
	st.Candidates[0] = "mutated"

	assert.Equal(t, "a", s.State().Candidates[0])
}

func TestNavigate_NeverOutOfRangeProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(rt, "n")
		candidates := make([]string, n)
		for i := range candidates {
			candidates[i] = string(rune('a' + i))
		}

		s := New()
		s.Apply(suggestions(candidates...))

		for _, down := range rapid.SliceOf(rapid.Bool()).Draw(rt, "keys") {
			dir := Up
			if down {
				dir = Down
			}
			s.Navigate(dir)

			st := s.State()
			switch st.Kind {
			case Open:
				require.Equal(rt, -1, st.Highlighted)
			case Browsing:
				require.GreaterOrEqual(rt, st.Highlighted, 0)
				require.Less(rt, st.Highlighted, n)
			default:
				rt.Fatalf("navigation closed the session")
			}
		}
	})
}
