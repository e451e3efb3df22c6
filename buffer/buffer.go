package buffer

import (
	"strings"

	"github.com/iw2rmb/mention/internal/grapheme"
)

// Buffer is the pure document state: grapheme lines and a cursor.
type Buffer struct {
	lines   [][]string
	version uint64

	cursor Pos

	lastChange    Change
	hasLastChange bool

	// changes is the log read by ChangesSince; droppedThrough is the newest
	// version whose change is no longer in it.
	changes        []Change
	droppedThrough uint64
}

func New(text string) *Buffer {
	return &Buffer{
		lines:  splitLines(text),
		cursor: Pos{Row: 0, GraphemeCol: 0},
	}
}

func (b *Buffer) Text() string {
	if len(b.lines) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(grapheme.Join(line))
	}
	return sb.String()
}

// Line returns the text of row, or "" when row is out of bounds.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return grapheme.Join(b.lines[row])
}

func (b *Buffer) LineCount() int { return len(b.lines) }

// LineLen returns the grapheme length of row.
func (b *Buffer) LineLen(row int) int { return b.lineLen(row) }

func (b *Buffer) Version() uint64 { return b.version }

func (b *Buffer) Cursor() Pos { return b.cursor }

func (b *Buffer) SetCursor(p Pos) {
	next := b.clampPos(p)
	if next == b.cursor {
		return
	}
	b.cursor = next
	b.version++
}

// ClampPos clamps p into the current document bounds.
func (b *Buffer) ClampPos(p Pos) Pos { return b.clampPos(p) }

func (b *Buffer) lineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row])
}

func (b *Buffer) clampPos(p Pos) Pos {
	return ClampPos(p, len(b.lines), b.lineLen)
}

func splitLines(text string) [][]string {
	parts := strings.Split(text, "\n")
	lines := make([][]string, 0, len(parts))
	for _, s := range parts {
		lines = append(lines, grapheme.Split(s))
	}
	if len(lines) == 0 {
		lines = append(lines, nil)
	}
	return lines
}
