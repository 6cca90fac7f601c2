package app

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/iw2rmb/draftmark/editor"
)

// KeyMap holds the application-level bindings. They are checked before the
// editor sees a key.
type KeyMap struct {
	Quit  key.Binding
	Help  key.Binding
	Diff  key.Binding
	Close key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:  key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
		Help:  key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Diff:  key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "changes since save")),
		Close: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

// helpKeys merges the editor and application bindings for bubbles/help.
type helpKeys struct {
	editor editor.KeyMap
	app    KeyMap
}

func (k helpKeys) ShortHelp() []key.Binding {
	return append(k.editor.ShortHelp(), k.app.Help, k.app.Diff, k.app.Quit)
}

func (k helpKeys) FullHelp() [][]key.Binding {
	return append(k.editor.FullHelp(), []key.Binding{k.app.Help, k.app.Diff, k.app.Close, k.app.Quit})
}
