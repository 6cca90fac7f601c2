package editor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/draftmark/document"
)

// Style controls the editor's rendering.
type Style struct {
	Text        lipgloss.Style
	Selection   lipgloss.Style
	Cursor      lipgloss.Style
	Placeholder lipgloss.Style

	// Headings holds header-one through header-six.
	Headings   [6]lipgloss.Style
	Blockquote lipgloss.Style
	Code       lipgloss.Style
	// Marker styles list bullets, list numbers and quote bars.
	Marker lipgloss.Style
}

func DefaultStyle() Style {
	heading := lipgloss.NewStyle().Bold(true)
	marker := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Text:        lipgloss.NewStyle(),
		Selection:   lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:      lipgloss.NewStyle().Reverse(true),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Headings: [6]lipgloss.Style{
			heading.Foreground(lipgloss.Color("212")),
			heading.Foreground(lipgloss.Color("213")),
			heading,
			heading,
			heading.Faint(true),
			heading.Faint(true),
		},
		Blockquote: lipgloss.NewStyle().Italic(true),
		Code:       lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		Marker:     marker,
	}
}

// blockStyle returns the base style for text in a block of type t.
func (st Style) blockStyle(t document.BlockType) lipgloss.Style {
	if lvl := headingLevel(t); lvl > 0 {
		return st.Headings[lvl-1].Inherit(st.Text)
	}
	switch t {
	case document.BlockBlockquote:
		return st.Blockquote.Inherit(st.Text)
	case document.BlockCodeBlock:
		return st.Code.Inherit(st.Text)
	default:
		return st.Text
	}
}

func headingLevel(t document.BlockType) int {
	switch t {
	case document.BlockHeaderOne:
		return 1
	case document.BlockHeaderTwo:
		return 2
	case document.BlockHeaderThree:
		return 3
	case document.BlockHeaderFour:
		return 4
	case document.BlockHeaderFive:
		return 5
	case document.BlockHeaderSix:
		return 6
	default:
		return 0
	}
}

// StyleMap is the visual effect of each inline style the editor knows.
// Styles without an entry render with the block's base style.
type StyleMap struct {
	Bold      lipgloss.Style
	Red       lipgloss.Style
	Underline lipgloss.Style
}

func DefaultStyleMap() StyleMap {
	return StyleMap{
		Bold:      lipgloss.NewStyle().Bold(true),
		Red:       lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")),
		Underline: lipgloss.NewStyle().Underline(true),
	}
}

// Effect returns the style for an inline style name.
func (sm StyleMap) Effect(name string) (lipgloss.Style, bool) {
	switch name {
	case document.StyleBold:
		return sm.Bold, true
	case document.StyleRed:
		return sm.Red, true
	case document.StyleUnderline:
		return sm.Underline, true
	default:
		return lipgloss.Style{}, false
	}
}

// Apply layers the effects of every style in set over base.
func (sm StyleMap) Apply(base lipgloss.Style, set document.StyleSet) lipgloss.Style {
	if set.IsEmpty() {
		return base
	}
	out := base
	for _, name := range set.Names() {
		if eff, ok := sm.Effect(name); ok {
			out = eff.Inherit(out)
		}
	}
	return out
}
