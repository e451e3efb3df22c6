package buffer

import "testing"

func TestBuffer_LastChange_InitialAndNoOp(t *testing.T) {
	b := New("a")

	if _, ok := b.LastChange(); ok {
		t.Fatalf("expected no initial change")
	}

	b.Move(Move{Unit: MoveGrapheme, Dir: DirLeft}) // no-op at BOF
	if _, ok := b.LastChange(); ok {
		t.Fatalf("expected no change after no-op mutation")
	}

	b.Move(Move{Unit: MoveGrapheme, Dir: DirRight})
	if _, ok := b.LastChange(); ok {
		t.Fatalf("cursor moves must not record a text change")
	}
}

func TestBuffer_Change_InsertTextShape(t *testing.T) {
	b := New("ab")
	b.SetCursor(Pos{Row: 0, GraphemeCol: 1})
	v := b.Version()

	b.InsertText("X")

	ch, ok := b.LastChange()
	if !ok {
		t.Fatalf("expected last change")
	}
	if got, want := ch.Source, ChangeSourceLocal; got != want {
		t.Fatalf("source=%v, want %v", got, want)
	}
	if got, want := ch.VersionBefore, v; got != want {
		t.Fatalf("version before=%d, want %d", got, want)
	}
	if got, want := ch.VersionAfter, v+1; got != want {
		t.Fatalf("version after=%d, want %d", got, want)
	}
	if got, want := ch.CursorBefore, (Pos{Row: 0, GraphemeCol: 1}); got != want {
		t.Fatalf("cursor before=%v, want %v", got, want)
	}
	if got, want := ch.CursorAfter, (Pos{Row: 0, GraphemeCol: 2}); got != want {
		t.Fatalf("cursor after=%v, want %v", got, want)
	}
	if got, want := len(ch.AppliedEdits), 1; got != want {
		t.Fatalf("applied edits=%d, want %d", got, want)
	}
	edit := ch.AppliedEdits[0]
	if got, want := edit.RangeBefore, (Range{Start: Pos{Row: 0, GraphemeCol: 1}, End: Pos{Row: 0, GraphemeCol: 1}}); got != want {
		t.Fatalf("range before=%v, want %v", got, want)
	}
	if got, want := edit.RangeAfter, (Range{Start: Pos{Row: 0, GraphemeCol: 1}, End: Pos{Row: 0, GraphemeCol: 2}}); got != want {
		t.Fatalf("range after=%v, want %v", got, want)
	}
	if got, want := edit.InsertText, "X"; got != want {
		t.Fatalf("insert text=%q, want %q", got, want)
	}
	if got, want := edit.DeletedText, ""; got != want {
		t.Fatalf("deleted text=%q, want %q", got, want)
	}
}

func TestBuffer_Change_DeleteBackwardAcrossNewline(t *testing.T) {
	b := New("ab\ncd")
	b.SetCursor(Pos{Row: 1, GraphemeCol: 0})

	b.DeleteBackward()

	ch, ok := b.LastChange()
	if !ok {
		t.Fatalf("expected last change")
	}
	edit := ch.AppliedEdits[0]
	if got, want := edit.RangeBefore, (Range{Start: Pos{Row: 0, GraphemeCol: 2}, End: Pos{Row: 1, GraphemeCol: 0}}); got != want {
		t.Fatalf("range before=%v, want %v", got, want)
	}
	if got, want := edit.DeletedText, "\n"; got != want {
		t.Fatalf("deleted text=%q, want %q", got, want)
	}
}

func TestBuffer_Change_ApplyKeepsEditOrder(t *testing.T) {
	b := New("hello")

	b.Apply(
		TextEdit{Range: Range{Start: Pos{Row: 0, GraphemeCol: 0}, End: Pos{Row: 0, GraphemeCol: 0}}, Text: "X"},
		TextEdit{Range: Range{Start: Pos{Row: 0, GraphemeCol: 1}, End: Pos{Row: 0, GraphemeCol: 2}}, Text: ""},
	)

	ch, ok := b.LastChange()
	if !ok {
		t.Fatalf("expected last change")
	}
	if got, want := len(ch.AppliedEdits), 2; got != want {
		t.Fatalf("applied edits=%d, want %d", got, want)
	}
	if got, want := ch.AppliedEdits[0].InsertText, "X"; got != want {
		t.Fatalf("first edit insert=%q, want %q", got, want)
	}
	if got, want := ch.AppliedEdits[1].DeletedText, "h"; got != want {
		t.Fatalf("second edit deleted=%q, want %q", got, want)
	}
}

func TestBuffer_LastChange_ReturnsCopy(t *testing.T) {
	b := New("a")
	b.InsertText("b")

	ch, _ := b.LastChange()
	ch.AppliedEdits[0].InsertText = "mutated"

	again, _ := b.LastChange()
	if got, want := again.AppliedEdits[0].InsertText, "b"; got != want {
		t.Fatalf("insert text=%q, want %q", got, want)
	}
}
