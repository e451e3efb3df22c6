package vocab

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownClass is returned when a class name does not name one of the
// three trigger classes.
var ErrUnknownClass = errors.New("unknown vocabulary class")

// Class identifies one trigger vocabulary.
type Class uint8

const (
	Person Class = iota
	Hashtag
	Relation
)

// Classes lists every class in scan priority order.
var Classes = [...]Class{Person, Hashtag, Relation}

const classCount = len(Classes)

func (c Class) String() string {
	switch c {
	case Person:
		return "person"
	case Hashtag:
		return "hashtag"
	case Relation:
		return "relation"
	default:
		return fmt.Sprintf("class(%d)", uint8(c))
	}
}

func (c Class) Valid() bool { return int(c) < classCount }

// Delimiter returns the trigger sequence that opens a token of this class.
func (c Class) Delimiter() string {
	switch c {
	case Person:
		return "@"
	case Hashtag:
		return "#"
	case Relation:
		return "<>"
	default:
		return ""
	}
}

// RawOffset is the number of leading delimiter graphemes skipped when
// slicing match text out of a raw trigger span.
func (c Class) RawOffset() int { return len(c.Delimiter()) }

// Anchor is the final delimiter character; commit scans back for it.
func (c Class) Anchor() string {
	d := c.Delimiter()
	if d == "" {
		return ""
	}
	return d[len(d)-1:]
}

// Opener returns the secondary opening character that precedes Anchor in a
// multi-character delimiter.
func (c Class) Opener() (string, bool) {
	d := c.Delimiter()
	if len(d) < 2 {
		return "", false
	}
	return d[:len(d)-1], true
}

// ParseClass accepts the lower-case class names used in configuration.
func ParseClass(s string) (Class, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "person", "people", "name", "names":
		return Person, nil
	case "hashtag", "hashtags", "tag", "tags":
		return Hashtag, nil
	case "relation", "relations":
		return Relation, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownClass, s)
	}
}
