// Package editorstate holds the editor's unit of change: an immutable
// EditorState combining content, selection, a pending inline style override
// and undo/redo history.
//
// Every operation returns a new *EditorState and never modifies its input.
package editorstate

import "github.com/iw2rmb/draftmark/document"

// ChangeType tags a content transition for the history mechanism.
type ChangeType string

const (
	ChangeAdjustDepth        ChangeType = "adjust-depth"
	ChangeBackspaceCharacter ChangeType = "backspace-character"
	ChangeBlockType          ChangeType = "change-block-type"
	ChangeInlineStyle        ChangeType = "change-inline-style"
	ChangeDeleteCharacter    ChangeType = "delete-character"
	ChangeInsertCharacters   ChangeType = "insert-characters"
	ChangeInsertFragment     ChangeType = "insert-fragment"
	ChangeRedo               ChangeType = "redo"
	ChangeRemoveRange        ChangeType = "remove-range"
	ChangeSplitBlock         ChangeType = "split-block"
	ChangeUndo               ChangeType = "undo"
)

const defaultHistoryLimit = 1000

type Options struct {
	// HistoryLimit caps the undo stack. 0 means 1000; negative disables
	// undo entirely.
	HistoryLimit int
}

// EditorState is a full snapshot of the editor at a point in time.
type EditorState struct {
	content   *document.ContentState
	selection document.Selection
	override  *document.StyleSet

	undo []*document.ContentState
	redo []*document.ContentState

	lastChange ChangeType
	opt        Options
	version    uint64
}

// CreateEmpty returns a state over a single empty block.
func CreateEmpty(opt Options) *EditorState {
	return CreateWithContent(document.Empty(), opt)
}

// CreateWithContent returns a state over content with the caret at the
// start of the first block and empty history.
func CreateWithContent(content *document.ContentState, opt Options) *EditorState {
	if content == nil {
		content = document.Empty()
	}
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = defaultHistoryLimit
	}
	start := document.Collapsed(content.FirstBlock().Key(), 0)
	content = content.WithSelectionBefore(start).WithSelectionAfter(start)
	return &EditorState{
		content:   content,
		selection: start,
		opt:       opt,
	}
}

func (es *EditorState) Content() *document.ContentState { return es.content }

func (es *EditorState) Selection() document.Selection { return es.selection }

// InlineStyleOverride returns the pending style override, if any.
func (es *EditorState) InlineStyleOverride() (document.StyleSet, bool) {
	if es.override == nil {
		return document.StyleSet{}, false
	}
	return *es.override, true
}

func (es *EditorState) LastChangeType() ChangeType { return es.lastChange }

// Version increases with every derived state.
func (es *EditorState) Version() uint64 { return es.version }

func (es *EditorState) CanUndo() bool { return len(es.undo) > 0 }

func (es *EditorState) CanRedo() bool { return len(es.redo) > 0 }

func (es *EditorState) allowUndo() bool { return es.opt.HistoryLimit > 0 }

func (es *EditorState) derive() *EditorState {
	next := *es
	next.version = es.version + 1
	return &next
}

// AcceptSelection returns es with sel (clamped to the content) as the
// current selection. The inline style override is dropped.
func AcceptSelection(es *EditorState, sel document.Selection) *EditorState {
	sel = es.content.Clamp(sel)
	if sel == es.selection && es.override == nil {
		return es
	}
	next := es.derive()
	next.selection = sel
	next.override = nil
	return next
}

// SetInlineStyleOverride sets the style applied to the next typed text.
func SetInlineStyleOverride(es *EditorState, style document.StyleSet) *EditorState {
	next := es.derive()
	next.override = &style
	return next
}
