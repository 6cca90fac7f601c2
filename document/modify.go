package document

// RemoveRange deletes the text covered by sel. When sel spans blocks, the
// tail of the end block is joined onto the start block and the blocks in
// between are dropped. A collapsed or unresolvable selection returns c.
func RemoveRange(c *ContentState, sel Selection) *ContentState {
	r, ok := c.resolve(sel)
	if !ok || r.empty() {
		return c
	}
	start := c.blocks[r.startIdx]
	end := c.blocks[r.endIdx]
	chars := concatChars(start.chars[:r.startOff], end.chars[r.endOff:])
	chars, _ = joinAt(chars, r.startOff)

	next := c.splice(r.startIdx, r.endIdx+1, start.withChars(chars))
	return next.withSelections(sel, Collapsed(start.key, r.startOff))
}

// InsertText inserts text at the start of at with the given style and
// entity. The caret lands after the inserted text. text is taken literally:
// callers split lines into blocks themselves.
func InsertText(c *ContentState, at Selection, text string, style StyleSet, entity string) *ContentState {
	i := c.IndexOf(at.StartKey())
	if i < 0 || text == "" {
		return c
	}
	b := c.blocks[i]
	off := clampInt(at.StartOffset(), 0, b.Len())
	ins := charsFromText(text, style, entity)
	chars := concatChars(b.chars[:off], ins, b.chars[off:])
	caret := off + len(ins)
	chars, _ = joinAt(chars, caret)
	var merged bool
	if chars, merged = joinAt(chars, off); merged {
		caret--
	}

	next := c.splice(i, i+1, b.withChars(chars))
	return next.withSelections(at, Collapsed(b.key, caret))
}

// ReplaceText replaces the text covered by sel with text. An empty text
// behaves as RemoveRange.
func ReplaceText(c *ContentState, sel Selection, text string, style StyleSet, entity string) *ContentState {
	r, ok := c.resolve(sel)
	if !ok {
		return c
	}
	if text == "" {
		return RemoveRange(c, sel)
	}
	key := c.blocks[r.startIdx].key
	removed := RemoveRange(c, sel)
	next := InsertText(removed, Collapsed(key, r.startOff), text, style, entity)
	return next.withSelections(sel, next.selectionAfter)
}

// SplitBlock removes the selected text and splits the block at the caret.
// The lower half gets a fresh key, keeps the block type and depth, and
// drops block data.
func SplitBlock(c *ContentState, sel Selection) *ContentState {
	r, ok := c.resolve(sel)
	if !ok {
		return c
	}
	base := RemoveRange(c, sel)
	i := r.startIdx
	b := base.blocks[i]
	off := r.startOff

	above := b.withChars(concatChars(b.chars[:off]))
	below := &Block{
		key:   generateKey(base.hasKey),
		typ:   b.typ,
		depth: b.depth,
		chars: concatChars(b.chars[off:]),
	}
	next := base.splice(i, i+1, above, below)
	return next.withSelections(sel, Collapsed(below.key, 0))
}

// SetBlockType sets typ on every block touched by sel.
func SetBlockType(c *ContentState, sel Selection, typ BlockType) *ContentState {
	r, ok := c.resolve(sel)
	if !ok {
		return c
	}
	if typ == "" {
		typ = BlockUnstyled
	}
	repl := make([]*Block, 0, r.endIdx-r.startIdx+1)
	for _, b := range c.blocks[r.startIdx : r.endIdx+1] {
		repl = append(repl, b.withType(typ))
	}
	next := c.splice(r.startIdx, r.endIdx+1, repl...)
	return next.withSelections(sel, sel)
}

// ApplyInlineStyle adds style to every character covered by sel.
func ApplyInlineStyle(c *ContentState, sel Selection, style string) *ContentState {
	return modifyInlineStyle(c, sel, func(s StyleSet) StyleSet { return s.Add(style) })
}

// RemoveInlineStyle removes style from every character covered by sel.
func RemoveInlineStyle(c *ContentState, sel Selection, style string) *ContentState {
	return modifyInlineStyle(c, sel, func(s StyleSet) StyleSet { return s.Remove(style) })
}

func modifyInlineStyle(c *ContentState, sel Selection, fn func(StyleSet) StyleSet) *ContentState {
	r, ok := c.resolve(sel)
	if !ok || r.empty() {
		return c
	}
	repl := make([]*Block, 0, r.endIdx-r.startIdx+1)
	for i := r.startIdx; i <= r.endIdx; i++ {
		b := c.blocks[i]
		from, to := 0, b.Len()
		if i == r.startIdx {
			from = r.startOff
		}
		if i == r.endIdx {
			to = r.endOff
		}
		if from >= to {
			repl = append(repl, b)
			continue
		}
		chars := b.Chars()
		for j := from; j < to; j++ {
			chars[j].Style = fn(chars[j].Style)
		}
		repl = append(repl, b.withChars(chars))
	}
	next := c.splice(r.startIdx, r.endIdx+1, repl...)
	return next.withSelections(sel, sel)
}
