package editor

import (
	"github.com/iw2rmb/mention/annotation"
	"github.com/iw2rmb/mention/commit"
	"github.com/iw2rmb/mention/match"
	"github.com/iw2rmb/mention/session"
	"github.com/iw2rmb/mention/vocab"
)

const (
	defaultMaxSuggestions = 6
	defaultTabWidth       = 4
	defaultZonePrefix     = "mention"
)

// Config configures the editor Model.
type Config struct {
	// Initial text for the internal buffer.
	Text string

	// Candidate lists. Nil uses vocab.Default().
	Vocabulary *vocab.Vocabulary

	// Matching behaviour.
	EmptyQuery        match.EmptyQueryPolicy
	IgnoreInnerSpace  bool
	DisableAutoCommit bool

	// Rendering options.
	ShowLineNums   bool
	Style          Style
	TabWidth       int
	MaxSuggestions int

	// ZonePrefix namespaces bubblezone IDs when several editors share a
	// screen.
	ZonePrefix string

	KeyMap   KeyMap
	ReadOnly bool

	// Hooks.
	OnChange         func(ChangeEvent)
	OnSessionChanged func(session.State)
	OnCommit         func(commit.Outcome)

	// AnnotationIDs replaces the UUID generator, mostly for tests.
	AnnotationIDs func() annotation.ID
}

func (c Config) withDefaults() Config {
	if c.Vocabulary == nil {
		c.Vocabulary = vocab.Default()
	}
	if c.TabWidth <= 0 {
		c.TabWidth = defaultTabWidth
	}
	if c.MaxSuggestions <= 0 {
		c.MaxSuggestions = defaultMaxSuggestions
	}
	if c.ZonePrefix == "" {
		c.ZonePrefix = defaultZonePrefix
	}
	if len(c.KeyMap.Left.Keys()) == 0 {
		c.KeyMap = DefaultKeyMap()
	}
	return c
}
