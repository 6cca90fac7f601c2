package editor

import (
	"regexp"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/draftmark/document"
	"github.com/iw2rmb/draftmark/editorstate"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)

func stripANSI(s string) string { return ansiRe.ReplaceAllString(s, "") }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func space() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}} }

// typeString sends s one key at a time, using KeySpace for spaces like a
// terminal does.
func typeString(m Model, s string) Model {
	for _, r := range s {
		msg := runes(string(r))
		if r == ' ' {
			msg = space()
		}
		m, _ = m.Update(msg)
	}
	return m
}

func viewLines(m Model) []string {
	got := strings.Split(m.View(), "\n")
	for i := range got {
		got[i] = strings.TrimRight(stripANSI(got[i]), " ")
	}
	return got
}

func ctrlEnd() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyCtrlEnd} }

func stateFor(c *document.ContentState) *editorstate.EditorState {
	return editorstate.CreateWithContent(c, editorstate.Options{})
}
