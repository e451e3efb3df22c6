package buffer

// Apply runs edits in order as one change attributed to the host program.
// Each range is read against the document as left by the edits before it,
// and is clamped into bounds. The cursor ends after the last edit that
// changed the text. It reports whether the document changed.
func (b *Buffer) Apply(edits ...TextEdit) bool {
	return b.transact(ChangeSourceProgram, true, edits)
}

// transact applies edits as a single versioned change. With follow set the
// cursor lands after the last effective edit; otherwise it keeps its
// position, clamped to the new document.
func (b *Buffer) transact(source ChangeSource, follow bool, edits []TextEdit) bool {
	change := b.beginChange(source)
	cursor := b.cursor
	effective := 0

	for _, e := range edits {
		next, applied, changed := b.replaceRange(e.Range, e.Text)
		if !changed {
			continue
		}
		effective++
		if follow {
			cursor = next
		}
		change.addAppliedEdit(applied)
	}
	if effective == 0 {
		return false
	}

	b.cursor = b.clampPos(cursor)
	b.version++
	b.commitChange(change)
	return true
}
