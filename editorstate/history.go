package editorstate

import "github.com/iw2rmb/draftmark/document"

// Push makes content the current content, recording history.
//
// The previous content becomes an undo boundary unless the selection still
// sits where the previous change left it and change repeats a coalescing
// kind (insert-characters, backspace-character, delete-character). Redo
// history is cleared. The inline style override survives only
// adjust-depth, change-block-type and split-block.
func Push(es *EditorState, content *document.ContentState, change ChangeType) *EditorState {
	if content == nil || content == es.content {
		return es
	}

	next := es.derive()
	next.lastChange = change
	next.redo = nil
	if !keepsOverride(change) {
		next.override = nil
	}

	if !es.allowUndo() {
		next.content = content
		next.selection = content.SelectionAfter()
		return next
	}

	switch {
	case es.selection != es.content.SelectionAfter() || mustBecomeBoundary(es, change):
		next.undo = pushLimited(es.undo, es.content, es.opt.HistoryLimit)
		content = content.WithSelectionBefore(es.selection)
	case coalesces(change):
		content = content.WithSelectionBefore(es.content.SelectionBefore())
	}

	next.content = content
	next.selection = content.SelectionAfter()
	return next
}

// Undo restores the content before the last boundary. It returns es when
// there is nothing to undo.
func Undo(es *EditorState) *EditorState {
	if !es.allowUndo() || len(es.undo) == 0 {
		return es
	}
	i := len(es.undo) - 1
	prev := es.undo[i]

	next := es.derive()
	next.content = prev
	next.undo = es.undo[:i:i]
	next.redo = pushLimited(es.redo, es.content, es.opt.HistoryLimit)
	next.override = nil
	next.lastChange = ChangeUndo
	next.selection = prev.Clamp(es.content.SelectionBefore())
	return next
}

// Redo reapplies the last undone content.
func Redo(es *EditorState) *EditorState {
	if !es.allowUndo() || len(es.redo) == 0 {
		return es
	}
	i := len(es.redo) - 1
	content := es.redo[i]

	next := es.derive()
	next.content = content
	next.redo = es.redo[:i:i]
	next.undo = pushLimited(es.undo, es.content, es.opt.HistoryLimit)
	next.override = nil
	next.lastChange = ChangeRedo
	next.selection = content.SelectionAfter()
	return next
}

func mustBecomeBoundary(es *EditorState, change ChangeType) bool {
	return change != es.lastChange || !coalesces(change)
}

func coalesces(change ChangeType) bool {
	switch change {
	case ChangeInsertCharacters, ChangeBackspaceCharacter, ChangeDeleteCharacter:
		return true
	default:
		return false
	}
}

func keepsOverride(change ChangeType) bool {
	switch change {
	case ChangeAdjustDepth, ChangeBlockType, ChangeSplitBlock:
		return true
	default:
		return false
	}
}

// pushLimited appends c to stack without sharing backing arrays with other
// states, trimming the oldest entries beyond limit.
func pushLimited(stack []*document.ContentState, c *document.ContentState, limit int) []*document.ContentState {
	out := append(stack[:len(stack):len(stack)], c)
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}
