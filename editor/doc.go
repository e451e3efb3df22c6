// Package editor provides a Bubble Tea text editor component that recognises
// @person, #hashtag and <>relation triggers as the user types.
//
// The package is responsible for input handling, viewport behavior,
// grapheme-aware rendering of in-progress and finalized annotations, the
// suggestion list shown below the text, and host integration hooks (session
// and commit listeners, search highlighting, change events). Recognition
// itself lives in the annotator package; the editor is the host surface it
// drives.
package editor
