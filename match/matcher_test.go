package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/iw2rmb/mention/annotation"
	"github.com/iw2rmb/mention/vocab"
)

func testVocab() *vocab.Vocabulary {
	return vocab.New(map[vocab.Class][]string{
		vocab.Person:   {"Jim Avery", "Jonas Salk"},
		vocab.Hashtag:  {"history", "medicine", "histology"},
		vocab.Relation: {"History", "Archaeology"},
	})
}

func TestScan_PrefixIsCaseInsensitive(t *testing.T) {
	m := New(vocab.New(map[vocab.Class][]string{vocab.Person: {"Jonas Salk"}}))

	got := m.Scan("@jo", 3)

	assert.Equal(t, Result{
		Kind:       Suggestions,
		Class:      vocab.Person,
		Span:       annotation.Span{Start: 0, End: 3},
		Query:      "jo",
		Candidates: []string{"Jonas Salk"},
	}, got)
}

func TestScan_ExactMatchShortCircuits(t *testing.T) {
	m := New(vocab.New(map[vocab.Class][]string{vocab.Person: {"Jonas Salk"}}))

	got := m.Scan("@Jonas Salk", 11)

	require.Equal(t, ExactMatch, got.Kind)
	assert.Equal(t, annotation.Span{Start: 0, End: 11}, got.Span)
	exact, ok := got.Exact()
	require.True(t, ok)
	assert.Equal(t, "Jonas Salk", exact)
}

func TestScan_ExactMatchUsesCanonicalCasing(t *testing.T) {
	m := New(testVocab())

	got := m.Scan("@jim avery ", 11)

	require.Equal(t, ExactMatch, got.Kind)
	assert.Equal(t, []string{"Jim Avery"}, got.Candidates)
	assert.Equal(t, annotation.Span{Start: 0, End: 11}, got.Span)
}

func TestScan_MidSentence(t *testing.T) {
	m := New(testVocab())

	got := m.Scan("Hello @Jim", 10)

	assert.Equal(t, Suggestions, got.Kind)
	assert.Equal(t, vocab.Person, got.Class)
	assert.Equal(t, annotation.Span{Start: 6, End: 10}, got.Span)
	assert.Equal(t, []string{"Jim Avery"}, got.Candidates)
}

func TestScan_RelationOffsetAppliesToQueryOnly(t *testing.T) {
	m := New(testVocab())

	got := m.Scan("<>Hist", 6)

	assert.Equal(t, Suggestions, got.Kind)
	assert.Equal(t, vocab.Relation, got.Class)
	assert.Equal(t, annotation.Span{Start: 0, End: 6}, got.Span)
	assert.Equal(t, "Hist", got.Query)
	assert.Equal(t, []string{"History"}, got.Candidates)
}

func TestScan_DelimitersAreIsolated(t *testing.T) {
	m := New(testVocab())

	got := m.Scan("@Bob #hi", 8)

	require.Equal(t, Suggestions, got.Kind)
	assert.Equal(t, vocab.Hashtag, got.Class)
	assert.Equal(t, 5, got.Span.Start, "hashtag span never precedes its #")
	assert.Equal(t, []string{"history", "histology"}, got.Candidates)

	got = m.Scan("@Bob #tag", 9)
	assert.Equal(t, NoTrigger, got.Kind)
}

func TestScan_PersonSearchStopsAtRelation(t *testing.T) {
	m := New(testVocab())

	got := m.Scan("@Jim <>Arch", 11)

	assert.Equal(t, vocab.Relation, got.Class)
	assert.Equal(t, annotation.Span{Start: 5, End: 11}, got.Span)
}

func TestScan_EmptyQueryPolicy(t *testing.T) {
	showAll := New(testVocab())
	got := showAll.Scan("say #", 5)
	require.Equal(t, Suggestions, got.Kind)
	assert.Equal(t, []string{"history", "medicine", "histology"}, got.Candidates)
	assert.Equal(t, annotation.Span{Start: 4, End: 5}, got.Span)

	hidden := New(testVocab(), WithEmptyQuery(EmptyQueryHidden))
	assert.Equal(t, NoTrigger, hidden.Scan("say #", 5).Kind)
	assert.Equal(t, NoTrigger, hidden.Scan("say # ", 6).Kind)
}

func TestScan_NoMatch(t *testing.T) {
	m := New(testVocab())

	assert.Equal(t, Result{}, m.Scan("@zzz", 4))
	assert.Equal(t, Result{}, m.Scan("plain text", 10))
	assert.Equal(t, Result{}, m.Scan("", 0))
}

func TestScan_CaretIsClamped(t *testing.T) {
	m := New(testVocab())

	assert.Equal(t, m.Scan("@Jim", 4), m.Scan("@Jim", 99))
	assert.Equal(t, NoTrigger, m.Scan("@Jim", -3).Kind)
}

func TestScan_CaretBeforeEndOfToken(t *testing.T) {
	m := New(testVocab())

	got := m.Scan("@Jimxyz", 3)

	assert.Equal(t, annotation.Span{Start: 0, End: 3}, got.Span)
	assert.Equal(t, "Ji", got.Query)
}

func TestScan_GraphemeOffsets(t *testing.T) {
	m := New(testVocab())

	// The family emoji is one grapheme made of five runes.
	got := m.Scan("\U0001F468\u200d\U0001F469\u200d\U0001F467 @Jo", 5)

	assert.Equal(t, annotation.Span{Start: 2, End: 5}, got.Span)
	assert.Equal(t, []string{"Jonas Salk"}, got.Candidates)
}

func TestScan_IgnoreInnerSpace(t *testing.T) {
	strict := New(testVocab())
	assert.Equal(t, NoTrigger, strict.Scan("@JimA", 5).Kind)

	loose := New(testVocab(), WithIgnoreInnerSpace(true))
	got := loose.Scan("@JimA", 5)
	assert.Equal(t, Suggestions, got.Kind)
	assert.Equal(t, []string{"Jim Avery"}, got.Candidates)

	got = loose.Scan("@JimAvery", 9)
	assert.Equal(t, ExactMatch, got.Kind)
}

func TestScanClipped_StopsAtFinalizedEnd(t *testing.T) {
	m := New(testVocab())
	text := "@x Jim Avery Jo"
	finalized := []annotation.Span{{Start: 3, End: 12}}

	got := m.ScanClipped(text, 15, finalized)
	assert.Equal(t, NoTrigger, got.Kind, "the @ before the finalized token is unreachable")

	unclipped := m.Scan(text, 15)
	assert.Equal(t, NoTrigger, unclipped.Kind)

	got = m.ScanClipped("Jim Avery @Jo", 13, []annotation.Span{{Start: 0, End: 9}})
	assert.Equal(t, annotation.Span{Start: 10, End: 13}, got.Span)
}

func TestScanClipped_CaretInsideFinalized(t *testing.T) {
	m := New(testVocab())

	got := m.ScanClipped("@Jim Avery", 4, []annotation.Span{{Start: 0, End: 10}})

	assert.Equal(t, NoTrigger, got.Kind)
}

func TestSetVocabulary(t *testing.T) {
	m := New(testVocab())
	m.SetVocabulary(vocab.New(map[vocab.Class][]string{vocab.Person: {"Ada Lovelace"}}))

	assert.Equal(t, []string{"Ada Lovelace"}, m.Scan("@a", 2).Candidates)
	assert.Equal(t, NoTrigger, m.Scan("#hi", 3).Kind)
}

func TestScan_DeterministicProperty(t *testing.T) {
	m := New(testVocab())
	alphabet := []rune("@#<> JjimAvrysoHht")

	rapid.Check(t, func(rt *rapid.T) {
		runes := rapid.SliceOfN(rapid.SampledFrom(alphabet), 0, 24).Draw(rt, "text")
		text := string(runes)
		caret := rapid.IntRange(-2, len(runes)+2).Draw(rt, "caret")

		first := m.Scan(text, caret)
		second := m.Scan(text, caret)
		require.Equal(rt, first, second)

		if first.Triggered() {
			require.GreaterOrEqual(rt, first.Span.Start, 0)
			require.LessOrEqual(rt, first.Span.End, len(runes))
			require.NotEmpty(rt, first.Candidates)
			delim := first.Class.Delimiter()
			require.Equal(rt, delim, string(runes[first.Span.Start:first.Span.Start+len(delim)]))
		}
	})
}
