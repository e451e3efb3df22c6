package annotator

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/iw2rmb/mention/annotation"
	"github.com/iw2rmb/mention/internal/grapheme"
)

// deriveEdits diffs two versions of one block and returns the edits that
// turn before into after. Each edit is expressed in the coordinates of the
// text with all previous edits already applied, so they can be fed to the
// store in order.
//
// The diff runs over grapheme clusters: every distinct cluster is mapped to
// one private-use rune, so a combining mark is never split from its base.
func deriveEdits(block int, before, after string) []annotation.Edit {
	if before == after {
		return nil
	}
	clusters := map[string]rune{}
	var table []string
	encode := func(text string) []rune {
		parts := grapheme.Split(text)
		out := make([]rune, len(parts))
		for i, p := range parts {
			r, ok := clusters[p]
			if !ok {
				r = codepoint(len(table))
				clusters[p] = r
				table = append(table, p)
			}
			out[i] = r
		}
		return out
	}
	decode := func(runes []rune) string {
		var b strings.Builder
		for _, r := range runes {
			b.WriteString(table[index(r)])
		}
		return b.String()
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMainRunes(encode(before), encode(after), false)

	var edits []annotation.Edit
	pos := 0
	for _, d := range diffs {
		runes := []rune(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			pos += len(runes)
		case diffmatchpatch.DiffDelete:
			edits = append(edits, annotation.Delete(
				annotation.Position{Block: block, Offset: pos},
				annotation.Position{Block: block, Offset: pos + len(runes)},
			))
		case diffmatchpatch.DiffInsert:
			edits = append(edits, annotation.Insert(annotation.Position{Block: block, Offset: pos}, decode(runes)))
			pos += len(runes)
		}
	}
	return edits
}

const (
	bmpPrivateUse   = 0xE000
	bmpPrivateCount = 0x1900
	supPrivateUse   = 0xF0000
)

func codepoint(i int) rune {
	if i < bmpPrivateCount {
		return rune(bmpPrivateUse + i)
	}
	return rune(supPrivateUse + i - bmpPrivateCount)
}

func index(r rune) int {
	if r >= supPrivateUse {
		return int(r-supPrivateUse) + bmpPrivateCount
	}
	return int(r - bmpPrivateUse)
}
