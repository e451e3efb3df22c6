// Package vocab holds the trigger classes and their fixed candidate lists.
//
// A Vocabulary is immutable once built. Comparisons use Unicode case folding,
// so "jo" prefixes "Jonas Salk" and "JIM AVERY" equals "Jim Avery".
package vocab

import (
	"strings"
	"time"
	"unicode"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/text/cases"
)

// MatchMode selects how query and candidate text are normalised before
// comparison.
type MatchMode uint8

const (
	// MatchFolded compares case-folded text as typed.
	MatchFolded MatchMode = iota
	// MatchIgnoreSpace additionally drops every whitespace rune, so "JimA"
	// prefixes "Jim Avery".
	MatchIgnoreSpace
)

const modeCount = 2

// Prefix results are memoised per query. Entries expire so a long session of
// distinct queries does not grow the memo without bound.
const (
	prefixTTL     = 5 * time.Minute
	prefixCleanup = 10 * time.Minute
)

// Vocabulary is the ordered, de-duplicated candidate list of each class.
type Vocabulary struct {
	lists [classCount][]string
	keys  [modeCount][classCount][]string

	prefixes *gocache.Cache
}

// New builds a vocabulary. Entries are trimmed, empty entries are dropped, and
// case-insensitive duplicates keep their first occurrence.
func New(lists map[Class][]string) *Vocabulary {
	v := &Vocabulary{
		prefixes: gocache.New(prefixTTL, prefixCleanup),
	}
	for _, c := range Classes {
		seen := make(map[string]struct{}, len(lists[c]))
		for _, raw := range lists[c] {
			entry := strings.TrimSpace(raw)
			if entry == "" {
				continue
			}
			folded := Fold(entry)
			if _, dup := seen[folded]; dup {
				continue
			}
			seen[folded] = struct{}{}
			v.lists[c] = append(v.lists[c], entry)
			v.keys[MatchFolded][c] = append(v.keys[MatchFolded][c], folded)
			v.keys[MatchIgnoreSpace][c] = append(v.keys[MatchIgnoreSpace][c], stripSpace(folded))
		}
	}
	return v
}

// Default returns the demo vocabulary.
func Default() *Vocabulary {
	return New(map[Class][]string{
		Person:   {"John Smith", "Jim Avery", "Jonas Salk"},
		Hashtag:  {"history", "medicine", "vaccines", "science"},
		Relation: {"History", "Archaeology", "Colleague", "Mentor"},
	})
}

// Candidates returns a copy of the ordered list for c.
func (v *Vocabulary) Candidates(c Class) []string {
	if v == nil || !c.Valid() {
		return nil
	}
	return append([]string(nil), v.lists[c]...)
}

// Len returns the number of candidates of c.
func (v *Vocabulary) Len(c Class) int {
	if v == nil || !c.Valid() {
		return 0
	}
	return len(v.lists[c])
}

// Exact returns the canonical candidate equal to query under mode.
func (v *Vocabulary) Exact(c Class, query string, mode MatchMode) (string, bool) {
	if v == nil || !c.Valid() || query == "" {
		return "", false
	}
	key := normalize(query, mode)
	for i, k := range v.keys[normalizeMode(mode)][c] {
		if k == key {
			return v.lists[c][i], true
		}
	}
	return "", false
}

// Prefix returns, in vocabulary order, every candidate that starts with query
// under mode. An empty query yields every candidate.
func (v *Vocabulary) Prefix(c Class, query string, mode MatchMode) []string {
	if v == nil || !c.Valid() {
		return nil
	}
	mode = normalizeMode(mode)
	key := normalize(query, mode)

	cacheKey := c.String() + "\x00" + string(rune('0'+mode)) + "\x00" + key
	if hit, ok := v.prefixes.Get(cacheKey); ok {
		return append([]string(nil), hit.([]string)...)
	}

	var out []string
	for i, k := range v.keys[mode][c] {
		if strings.HasPrefix(k, key) {
			out = append(out, v.lists[c][i])
		}
	}
	v.prefixes.Set(cacheKey, out, gocache.DefaultExpiration)
	return append([]string(nil), out...)
}

// Fold case-folds s for case-insensitive comparison.
func Fold(s string) string {
	return cases.Fold().String(s)
}

func normalize(s string, mode MatchMode) string {
	folded := Fold(s)
	if mode == MatchIgnoreSpace {
		return stripSpace(folded)
	}
	return folded
}

func normalizeMode(mode MatchMode) MatchMode {
	switch mode {
	case MatchFolded, MatchIgnoreSpace:
		return mode
	default:
		return MatchFolded
	}
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
