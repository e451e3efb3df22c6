package buffer

// ChangeSource identifies where a change originated.
type ChangeSource uint8

const (
	// ChangeSourceLocal marks edits typed by the user.
	ChangeSourceLocal ChangeSource = iota
	// ChangeSourceProgram marks edits issued through ReplaceRange or Apply.
	ChangeSourceProgram
)

// AppliedEdit describes one effective edit in a change transaction.
type AppliedEdit struct {
	RangeBefore Range
	RangeAfter  Range
	InsertText  string
	DeletedText string
}

// Change is a normalized, versioned mutation payload.
type Change struct {
	Source        ChangeSource
	VersionBefore uint64
	VersionAfter  uint64
	CursorBefore  Pos
	CursorAfter   Pos
	AppliedEdits  []AppliedEdit
}

type changeBuilder struct {
	source        ChangeSource
	versionBefore uint64
	cursorBefore  Pos
	appliedEdits  []AppliedEdit
}

// maxChangeLog bounds the changes kept for ChangesSince when nobody discards
// them.
const maxChangeLog = 512

// LastChange returns the most recent text change.
func (b *Buffer) LastChange() (Change, bool) {
	if !b.hasLastChange {
		return Change{}, false
	}
	return cloneChange(b.lastChange), true
}

func cloneChange(in Change) Change {
	out := in
	out.AppliedEdits = append([]AppliedEdit(nil), in.AppliedEdits...)
	return out
}

func (b *Buffer) beginChange(source ChangeSource) changeBuilder {
	return changeBuilder{
		source:        source,
		versionBefore: b.version,
		cursorBefore:  b.cursor,
	}
}

func (cb *changeBuilder) addAppliedEdit(edit AppliedEdit) {
	edit.RangeBefore = NormalizeRange(edit.RangeBefore)
	edit.RangeAfter = NormalizeRange(edit.RangeAfter)
	cb.appliedEdits = append(cb.appliedEdits, edit)
}

func (b *Buffer) commitChange(cb changeBuilder) {
	if b.version == cb.versionBefore {
		return
	}
	b.lastChange = Change{
		Source:        cb.source,
		VersionBefore: cb.versionBefore,
		VersionAfter:  b.version,
		CursorBefore:  cb.cursorBefore,
		CursorAfter:   b.cursor,
		AppliedEdits:  append([]AppliedEdit(nil), cb.appliedEdits...),
	}
	b.hasLastChange = true

	if len(b.changes) == maxChangeLog {
		b.droppedThrough = b.changes[0].VersionAfter
		b.changes = append(b.changes[:0], b.changes[1:]...)
	}
	b.changes = append(b.changes, b.lastChange)
}

// ChangesSince returns, oldest first, every text change that produced a
// version after v. complete is false when changes after v were already
// dropped from the log, so the result has gaps.
func (b *Buffer) ChangesSince(v uint64) (changes []Change, complete bool) {
	complete = b.droppedThrough <= v
	for _, ch := range b.changes {
		if ch.VersionAfter > v {
			changes = append(changes, cloneChange(ch))
		}
	}
	return changes, complete
}

// DiscardChangesThrough forgets logged changes up to and including version v.
// LastChange is unaffected.
func (b *Buffer) DiscardChangesThrough(v uint64) {
	keep := b.changes[:0]
	for _, ch := range b.changes {
		if ch.VersionAfter > v {
			keep = append(keep, ch)
		}
	}
	clear(b.changes[len(keep):])
	b.changes = keep
	if b.droppedThrough < v {
		b.droppedThrough = v
	}
}
