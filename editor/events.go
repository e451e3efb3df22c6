package editor

import (
	"github.com/iw2rmb/mention/annotation"
	"github.com/iw2rmb/mention/buffer"
)

// ChangeEvent is delivered to Config.OnChange after the buffer version moves.
type ChangeEvent struct {
	Version uint64
	Cursor  buffer.Pos

	// v0: simplest payload; host can diff if needed.
	Text        string
	Annotations []annotation.Annotation
}

func (m *Model) buildChangeEvent() ChangeEvent {
	return ChangeEvent{
		Version:     m.buf.Version(),
		Cursor:      m.buf.Cursor(),
		Text:        m.buf.Text(),
		Annotations: m.ctrl.Store().All(),
	}
}

// editsFromChange converts buffer applied edits into annotation edits.
func editsFromChange(ch buffer.Change) []annotation.Edit {
	edits := make([]annotation.Edit, 0, len(ch.AppliedEdits))
	for _, ae := range ch.AppliedEdits {
		edits = append(edits, annotation.Edit{
			Start: annotation.Position{Block: ae.RangeBefore.Start.Row, Offset: ae.RangeBefore.Start.GraphemeCol},
			End:   annotation.Position{Block: ae.RangeBefore.End.Row, Offset: ae.RangeBefore.End.GraphemeCol},
			Text:  ae.InsertText,
		})
	}
	return edits
}
