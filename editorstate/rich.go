package editorstate

import "github.com/iw2rmb/draftmark/document"

// CurrentInlineStyle returns the style the next typed text would receive:
// the override when set, otherwise the style found around the selection.
func (es *EditorState) CurrentInlineStyle() document.StyleSet {
	if es.override != nil {
		return *es.override
	}
	c, sel := es.content, es.selection
	b := c.Block(sel.StartKey())
	if b == nil {
		return document.StyleSet{}
	}
	off := sel.StartOffset()

	if sel.IsCollapsed() {
		switch {
		case off > 0:
			return b.StyleAt(off - 1)
		case b.Len() > 0:
			return b.StyleAt(0)
		}
		return styleAbove(c, b.Key())
	}

	switch {
	case off < b.Len():
		return b.StyleAt(off)
	case off > 0:
		return b.StyleAt(off - 1)
	}
	return styleAbove(c, b.Key())
}

// styleAbove returns the style of the last character of the nearest
// non-empty block above key.
func styleAbove(c *document.ContentState, key string) document.StyleSet {
	for i := c.IndexOf(key) - 1; i >= 0; i-- {
		if b := c.BlockAt(i); b.Len() > 0 {
			return b.StyleAt(b.Len() - 1)
		}
	}
	return document.StyleSet{}
}

// ToggleBlockType sets typ on the selected blocks, or resets them to
// unstyled when the start block already has typ. Selections containing an
// atomic block are left alone. A range ending at offset 0 of a later block
// does not include that block.
func ToggleBlockType(es *EditorState, typ document.BlockType) *EditorState {
	c, sel := es.content, es.selection
	start := c.Block(sel.StartKey())
	if start == nil {
		return es
	}

	target := sel
	if sel.StartKey() != sel.EndKey() && sel.EndOffset() == 0 {
		if before := c.BlockBefore(sel.EndKey()); before != nil {
			target = c.Select(sel.StartKey(), sel.StartOffset(), before.Key(), before.Len())
		}
	}
	for _, b := range c.BlocksInRange(target) {
		if b.Type() == document.BlockAtomic {
			return es
		}
	}

	set := typ
	if start.Type() == typ {
		set = document.BlockUnstyled
	}
	return Push(es, document.SetBlockType(c, target, set), ChangeBlockType)
}

// ToggleInlineStyle toggles style. With a caret it only changes the
// override for upcoming text; with a range it applies or removes the style
// depending on whether the current style already has it.
func ToggleInlineStyle(es *EditorState, style string) *EditorState {
	current := es.CurrentInlineStyle()
	if es.selection.IsCollapsed() {
		return SetInlineStyleOverride(es, current.Toggle(style))
	}

	var next *document.ContentState
	if current.Has(style) {
		next = document.RemoveInlineStyle(es.content, es.selection, style)
	} else {
		next = document.ApplyInlineStyle(es.content, es.selection, style)
	}
	return Push(es, next, ChangeInlineStyle)
}
