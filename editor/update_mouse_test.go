package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/draftmark/document"
)

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestMouse_ClickPlacesCaret(t *testing.T) {
	m := New(Config{Text: "hello\nworld"})
	m = m.SetSize(20, 5)
	k0 := m.Content().BlockAt(0).Key()
	k1 := m.Content().BlockAt(1).Key()

	m, _ = m.Update(press(2, 1))
	if got, want := caretOf(m), document.Collapsed(k1, 2); got != want {
		t.Fatalf("caret after click: got %v, want %v", got, want)
	}

	m, _ = m.Update(tea.MouseMsg{X: 4, Y: 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	want := m.Content().Select(k1, 2, k1, 4)
	if got := caretOf(m); got != want {
		t.Fatalf("selection after drag: got %v, want %v", got, want)
	}
	m, _ = m.Update(tea.MouseMsg{X: 4, Y: 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	m, _ = m.Update(press(12, 0))
	if got, want := caretOf(m), document.Collapsed(k0, 5); got != want {
		t.Fatalf("caret after click past end: got %v, want %v", got, want)
	}

	m, _ = m.Update(press(3, 9))
	if got, want := caretOf(m), document.Collapsed(k1, 3); got != want {
		t.Fatalf("caret after click below content: got %v, want %v", got, want)
	}
}

func TestMouse_ClickOnListMarker(t *testing.T) {
	content := document.NewContent(
		document.NewBlock("a", document.BlockUnorderedListItem, "item", document.StyleSet{}),
	)
	m := New(Config{State: stateFor(content)})
	m = m.SetSize(20, 2)

	m, _ = m.Update(press(0, 0))
	if got, want := caretOf(m), document.Collapsed("a", 0); got != want {
		t.Fatalf("caret after marker click: got %v, want %v", got, want)
	}
	m, _ = m.Update(press(3, 0))
	if got, want := caretOf(m), document.Collapsed("a", 1); got != want {
		t.Fatalf("caret after text click: got %v, want %v", got, want)
	}
}
