package editor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/mention/annotation"
	"github.com/iw2rmb/mention/vocab"
)

// TokenStyle styles one annotation class in both of its states.
type TokenStyle struct {
	InProgress lipgloss.Style
	Finalized  lipgloss.Style
}

// Style controls the editor's rendering.
type Style struct {
	Gutter        lipgloss.Style
	LineNum       lipgloss.Style
	LineNumActive lipgloss.Style

	Text   lipgloss.Style
	Cursor lipgloss.Style
	Search lipgloss.Style

	Person   TokenStyle
	Hashtag  TokenStyle
	Relation TokenStyle

	// Delete styles the × affordance drawn after each finalized token.
	Delete lipgloss.Style

	List         lipgloss.Style
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style
}

// StyleFor returns the style of an annotation of class c in state st.
func (s Style) StyleFor(c vocab.Class, st annotation.State) lipgloss.Style {
	var ts TokenStyle
	switch c {
	case vocab.Person:
		ts = s.Person
	case vocab.Hashtag:
		ts = s.Hashtag
	case vocab.Relation:
		ts = s.Relation
	default:
		return s.Text
	}
	if st == annotation.Finalized {
		return ts.Finalized
	}
	return ts.InProgress
}

func tokenStyle(color lipgloss.Color) TokenStyle {
	return TokenStyle{
		InProgress: lipgloss.NewStyle().Foreground(color).Underline(true),
		Finalized:  lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(color).Bold(true),
	}
}

func DefaultStyle() Style {
	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Gutter:        gutter,
		LineNum:       gutter,
		LineNumActive: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
		Text:          lipgloss.NewStyle(),
		Cursor:        lipgloss.NewStyle().Reverse(true),
		Search:        lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220")),

		Person:   tokenStyle(lipgloss.Color("39")),
		Hashtag:  tokenStyle(lipgloss.Color("42")),
		Relation: tokenStyle(lipgloss.Color("170")),

		Delete: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),

		List:         lipgloss.NewStyle(),
		ListItem:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ListSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("39")),
	}
}
