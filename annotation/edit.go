package annotation

import (
	"strings"

	"github.com/iw2rmb/mention/internal/grapheme"
)

// Position addresses a grapheme boundary in the document.
type Position struct {
	Block  int
	Offset int
}

func comparePosition(a, b Position) int {
	switch {
	case a.Block < b.Block:
		return -1
	case a.Block > b.Block:
		return 1
	case a.Offset < b.Offset:
		return -1
	case a.Offset > b.Offset:
		return 1
	default:
		return 0
	}
}

// Edit describes one applied replacement: the text between Start and End (in
// pre-edit coordinates) was replaced by Text. Text may contain newlines.
type Edit struct {
	Start Position
	End   Position
	Text  string
}

// Insert is an edit that inserts text at p.
func Insert(p Position, text string) Edit {
	return Edit{Start: p, End: p, Text: text}
}

// Delete is an edit that removes the range [start, end).
func Delete(start, end Position) Edit {
	return Edit{Start: start, End: end}
}

// mapping is the geometry of an edit reduced to what position mapping needs.
type mapping struct {
	start, end Position
	// rows is the number of newlines in the inserted text.
	rows int
	// tail is the grapheme length of the inserted text after its last newline.
	tail int
}

func mappingFor(e Edit) mapping {
	start, end := e.Start, e.End
	if comparePosition(end, start) < 0 {
		start, end = end, start
	}
	lines := strings.Split(e.Text, "\n")
	return mapping{
		start: start,
		end:   end,
		rows:  len(lines) - 1,
		tail:  grapheme.Count(lines[len(lines)-1]),
	}
}

func (m mapping) isInsertion() bool { return comparePosition(m.start, m.end) == 0 }

// after maps a position at or beyond the end of the replaced range.
func (m mapping) after(p Position) Position {
	if p.Block == m.end.Block {
		offset := p.Offset - m.end.Offset + m.tail
		if m.rows == 0 {
			offset += m.start.Offset
		}
		return Position{Block: m.start.Block + m.rows, Offset: offset}
	}
	return Position{Block: p.Block + m.rows - (m.end.Block - m.start.Block), Offset: p.Offset}
}

// mapStart maps a span's start boundary. Text inserted exactly at a start
// pushes the span right.
func (m mapping) mapStart(p Position) Position {
	switch {
	case comparePosition(p, m.start) < 0:
		return p
	case comparePosition(p, m.end) >= 0:
		return m.after(p)
	default:
		return m.start
	}
}

// mapEnd maps a span's end boundary. Text inserted exactly at an end is
// left outside the span.
func (m mapping) mapEnd(p Position) Position {
	switch {
	case comparePosition(p, m.start) <= 0:
		return p
	case comparePosition(p, m.end) > 0:
		return m.after(p)
	default:
		return m.start
	}
}

// touchesInterior reports whether the edit modifies text strictly inside the
// span at block.
func (m mapping) touchesInterior(block int, s Span) bool {
	from := Position{Block: block, Offset: s.Start}
	to := Position{Block: block, Offset: s.End}
	if m.isInsertion() {
		return comparePosition(m.start, from) > 0 && comparePosition(m.start, to) < 0
	}
	return comparePosition(m.start, to) < 0 && comparePosition(m.end, from) > 0
}
