package editor

import (
	"fmt"

	"github.com/iw2rmb/mention/annotation"
	"github.com/iw2rmb/mention/buffer"
	"github.com/iw2rmb/mention/commit"
	"github.com/iw2rmb/mention/internal/log"
)

// bufferShell exposes a buffer through the narrow surface the annotator
// drives. Replacements are applied synchronously, so the completion callback
// runs before ReplaceRange returns.
//
// The shell also tracks what the controller has seen: synced is the buffer
// version last forwarded, caret the cursor at that point, and issued the
// versions produced by the controller's own splices, which must not be fed
// back to it.
type bufferShell struct {
	buf *buffer.Buffer

	synced uint64
	caret  buffer.Pos
	issued map[uint64]struct{}
}

func newBufferShell(buf *buffer.Buffer) *bufferShell {
	return &bufferShell{
		buf:    buf,
		synced: buf.Version(),
		caret:  buf.Cursor(),
		issued: make(map[uint64]struct{}),
	}
}

var _ commit.Shell = (*bufferShell)(nil)

func (s *bufferShell) Text(block int) string { return s.buf.Line(block) }

func (s *bufferShell) Caret() commit.Caret {
	c := s.buf.Cursor()
	return commit.Caret{Block: c.Row, Offset: c.GraphemeCol}
}

func (s *bufferShell) ReplaceRange(block, start, end int, text string, applied func(error)) {
	if block < 0 || block >= s.buf.LineCount() {
		applied(fmt.Errorf("replace in block %d: out of range (%d blocks)", block, s.buf.LineCount()))
		return
	}
	if s.buf.ReplaceRange(buffer.Range{
		Start: buffer.Pos{Row: block, GraphemeCol: start},
		End:   buffer.Pos{Row: block, GraphemeCol: end},
	}, text) {
		s.issued[s.buf.Version()] = struct{}{}
	}
	applied(nil)
}

// ApplyAnnotation is a no-op beyond logging: rendering reads annotation
// state from the store on every frame.
func (s *bufferShell) ApplyAnnotation(block int, span annotation.Span, id annotation.ID) {
	log.Debug(log.CatEditor, "annotation applied", "id", id, "block", block, "span", span)
}

// pending collects the edits made since the last sync by anyone other than
// the controller, oldest first.
func (s *bufferShell) pending() []annotation.Edit {
	changes, complete := s.buf.ChangesSince(s.synced)
	if !complete {
		log.Warn(log.CatEditor, "buffer change log has gaps", "since", s.synced, "version", s.buf.Version())
	}
	var edits []annotation.Edit
	for _, ch := range changes {
		if _, mine := s.issued[ch.VersionAfter]; mine {
			continue
		}
		edits = append(edits, editsFromChange(ch)...)
	}
	return edits
}

// markSynced records the current buffer state as seen by the controller.
func (s *bufferShell) markSynced() {
	s.synced = s.buf.Version()
	s.caret = s.buf.Cursor()
	s.buf.DiscardChangesThrough(s.synced)
	clear(s.issued)
}

func (s *bufferShell) SetCaret(block, offset int) {
	s.buf.SetCursor(buffer.Pos{Row: block, GraphemeCol: offset})
}
