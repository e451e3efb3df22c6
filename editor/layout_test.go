package editor

import (
	"testing"

	"github.com/iw2rmb/mention/buffer"
)

func TestLayoutRow_AffordanceFollowsFinalizedToken(t *testing.T) {
	m := New(Config{})
	m = typeText(m, "#history x")

	l := m.layoutRow(0)
	if got, want := l.DocLen, 10; got != want {
		t.Fatalf("doc len: got %d, want %d", got, want)
	}
	if got, want := len(l.Cells), 11; got != want {
		t.Fatalf("cells: got %d, want %d", got, want)
	}
	aff := l.Cells[7]
	if !aff.isAffordance() || aff.Col != 7 || aff.StartCell != 7 {
		t.Fatalf("affordance cell: got %+v", aff)
	}
	if got, want := l.Cells[8].StartCell, 8; got != want {
		t.Fatalf("cell after affordance: StartCell %d, want %d", got, want)
	}
	if got, want := l.Width, 11; got != want {
		t.Fatalf("width: got %d, want %d", got, want)
	}
}

func TestLineLayout_DocColAtCell(t *testing.T) {
	m := New(Config{})
	m = typeText(m, "#history x")
	l := m.layoutRow(0)

	cases := []struct {
		x    int
		want int
	}{
		{x: -1, want: 0},
		{x: 0, want: 0},
		{x: 6, want: 6},
		{x: 7, want: 7}, // affordance lands at the token end
		{x: 8, want: 7}, // separator space
		{x: 9, want: 8},
		{x: 50, want: 10},
	}
	for _, tc := range cases {
		if got := l.docColAtCell(tc.x); got != tc.want {
			t.Fatalf("docColAtCell(%d): got %d, want %d", tc.x, got, tc.want)
		}
	}
}

func TestLineLayout_WideGraphemeHalves(t *testing.T) {
	m := New(Config{Text: "界x"})
	l := m.layoutRow(0)

	if got := l.docColAtCell(0); got != 0 {
		t.Fatalf("left half: got %d, want 0", got)
	}
	if got := l.docColAtCell(1); got != 1 {
		t.Fatalf("right half: got %d, want 1", got)
	}
	if got := l.docColAtCell(2); got != 1 {
		t.Fatalf("after wide: got %d, want 1", got)
	}
}

func TestScreenToDocPos_ClampsRowAndSkipsGutter(t *testing.T) {
	m := New(Config{Text: "ab\ncd", ShowLineNums: true})
	m = m.SetSize(10, 5)

	if got, want := m.gutterWidth(), 2; got != want {
		t.Fatalf("gutter width: got %d, want %d", got, want)
	}
	if got, want := m.screenToDocPos(3, 4), (buffer.Pos{Row: 1, GraphemeCol: 1}); got != want {
		t.Fatalf("screenToDocPos: got %v, want %v", got, want)
	}
	if got, want := m.screenToDocPos(0, 0), (buffer.Pos{Row: 0, GraphemeCol: 0}); got != want {
		t.Fatalf("gutter click: got %v, want %v", got, want)
	}
}

func TestGutterDigits(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 9: 1, 10: 2, 999: 3}
	for n, want := range cases {
		if got := gutterDigits(n); got != want {
			t.Fatalf("gutterDigits(%d): got %d, want %d", n, got, want)
		}
	}
}
