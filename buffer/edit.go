package buffer

import (
	"strings"

	"github.com/iw2rmb/mention/internal/grapheme"
)

// InsertText inserts text at the cursor.
func (b *Buffer) InsertText(s string) {
	if s == "" {
		return
	}
	b.editLocal(Range{Start: b.cursor, End: b.cursor}, s)
}

// InsertNewline inserts a line break at the cursor.
func (b *Buffer) InsertNewline() {
	b.InsertText("\n")
}

// DeleteBackward applies backspace semantics.
func (b *Buffer) DeleteBackward() {
	row, col := b.cursor.Row, b.cursor.GraphemeCol
	if row == 0 && col == 0 {
		return
	}

	if col > 0 {
		b.editLocal(Range{
			Start: Pos{Row: row, GraphemeCol: col - 1},
			End:   Pos{Row: row, GraphemeCol: col},
		}, "")
		return
	}

	// Join with previous line (delete the newline).
	prevRow := row - 1
	b.editLocal(Range{
		Start: Pos{Row: prevRow, GraphemeCol: len(b.lines[prevRow])},
		End:   Pos{Row: row, GraphemeCol: 0},
	}, "")
}

// DeleteForward applies delete-key semantics.
func (b *Buffer) DeleteForward() {
	row, col := b.cursor.Row, b.cursor.GraphemeCol
	lastRow := len(b.lines) - 1
	if row == lastRow && col == len(b.lines[lastRow]) {
		return
	}

	if col < len(b.lines[row]) {
		b.editLocal(Range{
			Start: Pos{Row: row, GraphemeCol: col},
			End:   Pos{Row: row, GraphemeCol: col + 1},
		}, "")
		return
	}

	// Join with next line (delete the newline).
	b.editLocal(Range{
		Start: Pos{Row: row, GraphemeCol: col},
		End:   Pos{Row: row + 1, GraphemeCol: 0},
	}, "")
}

// ReplaceRange replaces r with text on behalf of the host program rather than
// the user. The recorded change carries ChangeSourceProgram and the cursor is
// left for the caller to position. It reports whether the document changed.
func (b *Buffer) ReplaceRange(r Range, text string) bool {
	return b.transact(ChangeSourceProgram, false, []TextEdit{{Range: r, Text: text}})
}

func (b *Buffer) editLocal(r Range, text string) {
	b.transact(ChangeSourceLocal, true, []TextEdit{{Range: r, Text: text}})
}

func (b *Buffer) replaceRange(r Range, text string) (nextCursor Pos, applied AppliedEdit, changed bool) {
	r = NormalizeRange(ClampRange(r, len(b.lines), b.lineLen))
	if r.IsEmpty() && text == "" {
		return b.cursor, AppliedEdit{}, false
	}

	startRow, startCol := r.Start.Row, r.Start.GraphemeCol
	endRow, endCol := r.End.Row, r.End.GraphemeCol
	deletedText := textForLinesRange(b.lines, r)
	if deletedText == text {
		return b.cursor, AppliedEdit{}, false
	}

	prefix := append([]string(nil), b.lines[startRow][:startCol]...)
	suffix := append([]string(nil), b.lines[endRow][endCol:]...)

	parts := strings.Split(text, "\n")
	ins := make([][]string, 0, len(parts))
	for _, p := range parts {
		ins = append(ins, grapheme.Split(p))
	}

	repl := make([][]string, 0, len(ins))
	if len(ins) == 1 {
		line := make([]string, 0, len(prefix)+len(ins[0])+len(suffix))
		line = append(line, prefix...)
		line = append(line, ins[0]...)
		line = append(line, suffix...)
		repl = append(repl, line)
		nextCursor = Pos{Row: startRow, GraphemeCol: len(prefix) + len(ins[0])}
	} else {
		first := make([]string, 0, len(prefix)+len(ins[0]))
		first = append(first, prefix...)
		first = append(first, ins[0]...)
		repl = append(repl, first)

		for i := 1; i < len(ins)-1; i++ {
			repl = append(repl, append([]string(nil), ins[i]...))
		}

		lastPart := ins[len(ins)-1]
		last := make([]string, 0, len(lastPart)+len(suffix))
		last = append(last, lastPart...)
		last = append(last, suffix...)
		repl = append(repl, last)

		nextCursor = Pos{Row: startRow + len(ins) - 1, GraphemeCol: len(lastPart)}
	}

	out := make([][]string, 0, len(b.lines)-(endRow-startRow)+len(repl))
	out = append(out, b.lines[:startRow]...)
	out = append(out, repl...)
	out = append(out, b.lines[endRow+1:]...)

	b.lines = out
	applied = AppliedEdit{
		RangeBefore: r,
		RangeAfter:  Range{Start: r.Start, End: nextCursor},
		InsertText:  text,
		DeletedText: deletedText,
	}
	return nextCursor, applied, true
}

func textForLinesRange(lines [][]string, r Range) string {
	r = NormalizeRange(r)
	if r.IsEmpty() {
		return ""
	}

	startRow := r.Start.Row
	endRow := r.End.Row
	startCol := r.Start.GraphemeCol
	endCol := r.End.GraphemeCol

	if startRow == endRow {
		return grapheme.Join(lines[startRow][startCol:endCol])
	}

	var sb strings.Builder
	for row := startRow; row <= endRow; row++ {
		if row > startRow {
			sb.WriteByte('\n')
		}
		partStart := 0
		partEnd := len(lines[row])
		if row == startRow {
			partStart = startCol
		}
		if row == endRow {
			partEnd = endCol
		}
		sb.WriteString(grapheme.Join(lines[row][partStart:partEnd]))
	}
	return sb.String()
}
