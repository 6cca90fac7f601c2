package editor

import (
	"github.com/iw2rmb/draftmark/document"
	"github.com/iw2rmb/draftmark/editorstate"
)

type ChangeEvent struct {
	Version    uint64
	Selection  document.Selection
	ChangeType editorstate.ChangeType

	// Plain text with one line per block; hosts can diff if needed.
	Text string
}

func buildChangeEvent(es *editorstate.EditorState) ChangeEvent {
	return ChangeEvent{
		Version:    es.Version(),
		Selection:  es.Selection(),
		ChangeType: es.LastChangeType(),
		Text:       es.Content().PlainText(),
	}
}

// SaveRequestMsg is emitted when the user asks to save. Content is the
// document at the time of the request.
type SaveRequestMsg struct {
	Content *document.ContentState
}
