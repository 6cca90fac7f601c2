package editor

import (
	"github.com/iw2rmb/draftmark/editorstate"
	"github.com/iw2rmb/draftmark/shortcut"
)

// Config configures the editor Model.
type Config struct {
	// Initial state. When nil the editor starts from Text.
	State *editorstate.EditorState
	// Initial plain text, one block per line. Ignored when State is set.
	Text string

	// Interceptor runs on typed input before insertion. Nil means the
	// default trigger table.
	Interceptor *shortcut.Interceptor

	// KeyMap defaults to DefaultKeyMap when left empty.
	KeyMap   KeyMap
	Style    Style
	StyleMap StyleMap

	// Placeholder is shown while the document is empty.
	Placeholder string

	Clipboard Clipboard
	ReadOnly  bool

	// OnChange is called after every update that replaces the editor state.
	OnChange func(ChangeEvent)

	// Forwarded to editorstate.Options when State is nil.
	HistoryLimit int
}
