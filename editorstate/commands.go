package editorstate

import (
	"strings"

	"github.com/iw2rmb/draftmark/document"
)

// InsertCharacters replaces the selection with chars using the current
// inline style. This is the default path for typed input.
func InsertCharacters(es *EditorState, chars string) *EditorState {
	if chars == "" {
		return es
	}
	next := document.ReplaceText(es.content, es.selection, chars, es.CurrentInlineStyle(), "")
	return Push(es, next, ChangeInsertCharacters)
}

// InsertText replaces the selection with text that may span lines; each
// newline starts a new block. Used for pasted input.
func InsertText(es *EditorState, text string) *EditorState {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if !strings.Contains(text, "\n") {
		if text == "" {
			return DeleteSelection(es)
		}
		next := document.ReplaceText(es.content, es.selection, text, es.CurrentInlineStyle(), "")
		return Push(es, next, ChangeInsertFragment)
	}

	style := es.CurrentInlineStyle()
	c := document.RemoveRange(es.content, es.selection)
	at := es.selection.Start()
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			c = document.SplitBlock(c, at)
			at = c.SelectionAfter()
		}
		if line != "" {
			c = document.InsertText(c, at, line, style, "")
			at = c.SelectionAfter()
		}
	}
	return Push(es, c, ChangeInsertFragment)
}

// DeleteSelection removes the selected range.
func DeleteSelection(es *EditorState) *EditorState {
	if es.selection.IsCollapsed() {
		return es
	}
	return Push(es, document.RemoveRange(es.content, es.selection), ChangeRemoveRange)
}

// Backspace removes the selection, or the cluster before the caret, or
// joins the caret's block onto the previous one.
func Backspace(es *EditorState) *EditorState {
	if !es.selection.IsCollapsed() {
		return DeleteSelection(es)
	}
	c := es.content
	key, off := es.selection.AnchorKey, es.selection.AnchorOffset

	var target document.Selection
	switch {
	case off > 0:
		target = c.Select(key, off, key, off-1)
	default:
		before := c.BlockBefore(key)
		if before == nil {
			return es
		}
		target = c.Select(key, 0, before.Key(), before.Len())
	}
	return Push(es, document.RemoveRange(c, target), ChangeBackspaceCharacter)
}

// DeleteForward removes the selection, or the cluster after the caret, or
// joins the next block onto the caret's block.
func DeleteForward(es *EditorState) *EditorState {
	if !es.selection.IsCollapsed() {
		return DeleteSelection(es)
	}
	c := es.content
	key, off := es.selection.AnchorKey, es.selection.AnchorOffset
	b := c.Block(key)
	if b == nil {
		return es
	}

	var target document.Selection
	switch {
	case off < b.Len():
		target = c.Select(key, off, key, off+1)
	default:
		after := c.BlockAfter(key)
		if after == nil {
			return es
		}
		target = c.Select(key, off, after.Key(), 0)
	}
	return Push(es, document.RemoveRange(c, target), ChangeDeleteCharacter)
}

// SplitBlock removes the selection and starts a new block at the caret.
func SplitBlock(es *EditorState) *EditorState {
	return Push(es, document.SplitBlock(es.content, es.selection), ChangeSplitBlock)
}
