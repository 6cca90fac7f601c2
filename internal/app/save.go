package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/draftmark/document"
	"github.com/iw2rmb/draftmark/editorstate"
	"github.com/iw2rmb/draftmark/persist"
)

// SavedMsg reports the outcome of a save started by the editor.
type SavedMsg struct {
	Content *document.ContentState
	Err     error
	At      time.Time
}

func saveCmd(bridge *persist.Bridge, content *document.ContentState, timeout time.Duration, now func() time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		err := bridge.Save(ctx, content)
		return SavedMsg{Content: content, Err: err, At: now()}
	}
}

// LoadState reads the initial editor state through bridge. Stored data that
// is not a valid document is logged and replaced by an empty document,
// unless strict is set, in which case the error is returned.
func LoadState(ctx context.Context, bridge *persist.Bridge, opt editorstate.Options, strict bool) (*editorstate.EditorState, error) {
	es, err := bridge.LoadState(ctx, opt)
	switch {
	case err == nil:
		log.Printf("loaded %q (%d blocks)", bridge.Key(), es.Content().Len())
		return es, nil
	case errors.Is(err, persist.ErrMalformedDocument) && !strict:
		log.Printf("warning: ignoring stored %q: %v", bridge.Key(), err)
		return editorstate.CreateEmpty(opt), nil
	default:
		return nil, fmt.Errorf("load %q: %w", bridge.Key(), err)
	}
}
