// Package config provides configuration types, defaults and loading for the
// mention demo.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/iw2rmb/mention/internal/log"
	"github.com/iw2rmb/mention/match"
	"github.com/iw2rmb/mention/vocab"
)

// DefaultPath is the project-local config looked up when no path is given.
const DefaultPath = ".mention/config.yaml"

// Empty query policy values.
const (
	EmptyQueryShowAll = "show_all"
	EmptyQueryHidden  = "hidden"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all configuration options.
type Config struct {
	Vocabulary VocabularyConfig `mapstructure:"vocabulary"`
	Matching   MatchingConfig   `mapstructure:"matching"`
	UI         UIConfig         `mapstructure:"ui"`
	Debug      bool             `mapstructure:"debug"`
}

// VocabularyConfig selects the candidate lists: a YAML file, inline lists,
// or the built-in demo vocabulary when both are empty.
type VocabularyConfig struct {
	File      string   `mapstructure:"file"`
	Watch     bool     `mapstructure:"watch"` // reload File when it changes
	Persons   []string `mapstructure:"persons"`
	Hashtags  []string `mapstructure:"hashtags"`
	Relations []string `mapstructure:"relations"`
}

// MatchingConfig holds trigger recognition options.
type MatchingConfig struct {
	EmptyQuery       string `mapstructure:"empty_query"` // "show_all" (default) or "hidden"
	IgnoreInnerSpace bool   `mapstructure:"ignore_inner_space"`
	AutoCommit       bool   `mapstructure:"auto_commit"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowLineNumbers bool `mapstructure:"show_line_numbers"`
	MaxSuggestions  int  `mapstructure:"max_suggestions"`
	TabWidth        int  `mapstructure:"tab_width"`
}

// Defaults returns the configuration used when no file sets a value.
func Defaults() Config {
	return Config{
		Vocabulary: VocabularyConfig{Watch: true},
		Matching: MatchingConfig{
			EmptyQuery: EmptyQueryShowAll,
			AutoCommit: true,
		},
		UI: UIConfig{
			ShowLineNumbers: true,
			MaxSuggestions:  6,
			TabWidth:        4,
		},
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	switch c.Matching.EmptyQuery {
	case "", EmptyQueryShowAll, EmptyQueryHidden:
	default:
		return fmt.Errorf("%w: matching.empty_query %q (must be %q or %q)",
			ErrInvalidConfig, c.Matching.EmptyQuery, EmptyQueryShowAll, EmptyQueryHidden)
	}
	if c.UI.MaxSuggestions < 0 {
		return fmt.Errorf("%w: ui.max_suggestions must not be negative", ErrInvalidConfig)
	}
	if c.UI.TabWidth < 0 {
		return fmt.Errorf("%w: ui.tab_width must not be negative", ErrInvalidConfig)
	}
	return nil
}

// EmptyQueryPolicy maps Matching.EmptyQuery onto the matcher policy.
func (c Config) EmptyQueryPolicy() match.EmptyQueryPolicy {
	if c.Matching.EmptyQuery == EmptyQueryHidden {
		return match.EmptyQueryHidden
	}
	return match.EmptyQueryShowAll
}

// LoadVocabulary builds the vocabulary the config selects.
func (c Config) LoadVocabulary() (*vocab.Vocabulary, error) {
	vc := c.Vocabulary
	if vc.File != "" {
		return vocab.LoadFile(vc.File)
	}
	if len(vc.Persons)+len(vc.Hashtags)+len(vc.Relations) == 0 {
		return vocab.Default(), nil
	}
	return vocab.New(map[vocab.Class][]string{
		vocab.Person:   vc.Persons,
		vocab.Hashtag:  vc.Hashtags,
		vocab.Relation: vc.Relations,
	}), nil
}

// Load reads configuration from path. An empty path falls back to
// DefaultPath when it exists and to Defaults otherwise. Environment
// variables prefixed MENTION_ override file values, so MENTION_DEBUG=1
// enables debug logging. The returned string is the file actually read.
func Load(path string) (Config, string, error) {
	v := viper.New()
	setDefaults(v, Defaults())

	v.SetEnvPrefix("MENTION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		if _, err := os.Stat(DefaultPath); err == nil {
			path = DefaultPath
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, "", fmt.Errorf("reading config %s: %w", path, err)
		}
		log.Info(log.CatConfig, "config loaded", "path", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("decoding config: %w", err)
	}

	// A vocabulary file is relative to the config that names it.
	if cfg.Vocabulary.File != "" && path != "" && !filepath.IsAbs(cfg.Vocabulary.File) {
		cfg.Vocabulary.File = filepath.Join(filepath.Dir(path), cfg.Vocabulary.File)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, "", err
	}
	return cfg, path, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("debug", d.Debug)
	v.SetDefault("vocabulary.file", d.Vocabulary.File)
	v.SetDefault("vocabulary.watch", d.Vocabulary.Watch)
	v.SetDefault("vocabulary.persons", d.Vocabulary.Persons)
	v.SetDefault("vocabulary.hashtags", d.Vocabulary.Hashtags)
	v.SetDefault("vocabulary.relations", d.Vocabulary.Relations)
	v.SetDefault("matching.empty_query", d.Matching.EmptyQuery)
	v.SetDefault("matching.ignore_inner_space", d.Matching.IgnoreInnerSpace)
	v.SetDefault("matching.auto_commit", d.Matching.AutoCommit)
	v.SetDefault("ui.show_line_numbers", d.UI.ShowLineNumbers)
	v.SetDefault("ui.max_suggestions", d.UI.MaxSuggestions)
	v.SetDefault("ui.tab_width", d.UI.TabWidth)
}
