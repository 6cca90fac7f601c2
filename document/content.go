package document

import (
	"strings"
)

// Mutability describes how an entity reacts to edits of its text.
type Mutability string

const (
	Mutable   Mutability = "MUTABLE"
	Immutable Mutability = "IMMUTABLE"
	Segmented Mutability = "SEGMENTED"
)

// Entity is metadata attached to a run of characters (for example a link).
type Entity struct {
	Type       string
	Mutability Mutability
	Data       map[string]any
}

// ContentState is an immutable snapshot of document content.
type ContentState struct {
	blocks   []*Block
	index    map[string]int
	entities map[string]Entity

	selectionBefore Selection
	selectionAfter  Selection
}

// Empty returns content with a single empty unstyled block.
func Empty() *ContentState {
	return NewContent()
}

// NewContent builds content from blocks. Blocks with an empty or duplicate
// key get a fresh one. With no blocks the content holds one empty unstyled
// block. Both edge selections are a caret at the start of the first block.
func NewContent(blocks ...*Block) *ContentState {
	c := &ContentState{index: make(map[string]int, len(blocks))}
	if len(blocks) == 0 {
		blocks = []*Block{{typ: BlockUnstyled}}
	}
	c.blocks = make([]*Block, 0, len(blocks))
	for _, b := range blocks {
		if b == nil {
			continue
		}
		if _, taken := c.index[b.key]; b.key == "" || taken {
			b = b.withKey(generateKey(c.hasKey))
		}
		c.index[b.key] = len(c.blocks)
		c.blocks = append(c.blocks, b)
	}
	if len(c.blocks) == 0 {
		b := &Block{key: generateKey(nil), typ: BlockUnstyled}
		c.index[b.key] = 0
		c.blocks = append(c.blocks, b)
	}
	start := Collapsed(c.blocks[0].key, 0)
	c.selectionBefore = start
	c.selectionAfter = start
	return c
}

// FromText builds unstyled content with one block per line of text.
func FromText(text string) *ContentState {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	blocks := make([]*Block, 0, len(lines))
	for _, line := range lines {
		blocks = append(blocks, NewBlock("", BlockUnstyled, line, StyleSet{}))
	}
	return NewContent(blocks...)
}

func (c *ContentState) hasKey(key string) bool {
	_, ok := c.index[key]
	return ok
}

// Len returns the number of blocks.
func (c *ContentState) Len() int { return len(c.blocks) }

// Blocks returns the blocks in document order.
func (c *ContentState) Blocks() []*Block {
	return append([]*Block(nil), c.blocks...)
}

// Block returns the block for key, or nil.
func (c *ContentState) Block(key string) *Block {
	i, ok := c.index[key]
	if !ok {
		return nil
	}
	return c.blocks[i]
}

// BlockAt returns the block at index i, or nil.
func (c *ContentState) BlockAt(i int) *Block {
	if i < 0 || i >= len(c.blocks) {
		return nil
	}
	return c.blocks[i]
}

// IndexOf returns the position of key in document order, or -1.
func (c *ContentState) IndexOf(key string) int {
	i, ok := c.index[key]
	if !ok {
		return -1
	}
	return i
}

func (c *ContentState) FirstBlock() *Block { return c.blocks[0] }

func (c *ContentState) LastBlock() *Block { return c.blocks[len(c.blocks)-1] }

// BlockBefore returns the block preceding key, or nil.
func (c *ContentState) BlockBefore(key string) *Block {
	return c.BlockAt(c.IndexOf(key) - 1)
}

// BlockAfter returns the block following key, or nil.
func (c *ContentState) BlockAfter(key string) *Block {
	i := c.IndexOf(key)
	if i < 0 {
		return nil
	}
	return c.BlockAt(i + 1)
}

// BlocksInRange returns the blocks from the selection's start block to its
// end block inclusive.
func (c *ContentState) BlocksInRange(sel Selection) []*Block {
	si, ei := c.IndexOf(sel.StartKey()), c.IndexOf(sel.EndKey())
	if si < 0 || ei < 0 {
		return nil
	}
	if ei < si {
		si, ei = ei, si
	}
	return append([]*Block(nil), c.blocks[si:ei+1]...)
}

// PlainText joins block texts with newlines.
func (c *ContentState) PlainText() string {
	var sb strings.Builder
	for i, b := range c.blocks {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(b.Text())
	}
	return sb.String()
}

// HasText reports whether any block has text.
func (c *ContentState) HasText() bool {
	for _, b := range c.blocks {
		if b.Len() > 0 {
			return true
		}
	}
	return false
}

// Entity returns the entity stored under key.
func (c *ContentState) Entity(key string) (Entity, bool) {
	e, ok := c.entities[key]
	return e, ok
}

// WithEntity returns content where key maps to e. Characters reference the
// entity by key through Char.Entity.
func (c *ContentState) WithEntity(key string, e Entity) *ContentState {
	next := *c
	next.entities = make(map[string]Entity, len(c.entities)+1)
	for k, v := range c.entities {
		next.entities[k] = v
	}
	next.entities[key] = e
	return &next
}

func (c *ContentState) SelectionBefore() Selection { return c.selectionBefore }

func (c *ContentState) SelectionAfter() Selection { return c.selectionAfter }

// WithSelectionBefore returns a copy of c carrying sel as SelectionBefore.
func (c *ContentState) WithSelectionBefore(sel Selection) *ContentState {
	next := *c
	next.selectionBefore = sel
	return &next
}

// WithSelectionAfter returns a copy of c carrying sel as SelectionAfter.
func (c *ContentState) WithSelectionAfter(sel Selection) *ContentState {
	next := *c
	next.selectionAfter = sel
	return &next
}

// Select builds a selection from anchor to focus. Offsets are clamped to
// their blocks and IsBackward is derived from document order. Unknown keys
// fall back to the start of the first block.
func (c *ContentState) Select(anchorKey string, anchorOffset int, focusKey string, focusOffset int) Selection {
	ai, fi := c.IndexOf(anchorKey), c.IndexOf(focusKey)
	if ai < 0 {
		ai, anchorKey, anchorOffset = 0, c.blocks[0].key, 0
	}
	if fi < 0 {
		fi, focusKey, focusOffset = 0, c.blocks[0].key, 0
	}
	anchorOffset = clampInt(anchorOffset, 0, c.blocks[ai].Len())
	focusOffset = clampInt(focusOffset, 0, c.blocks[fi].Len())
	return Selection{
		AnchorKey:    anchorKey,
		AnchorOffset: anchorOffset,
		FocusKey:     focusKey,
		FocusOffset:  focusOffset,
		IsBackward:   fi < ai || (fi == ai && focusOffset < anchorOffset),
	}
}

// Clamp returns sel rebuilt against c through Select.
func (c *ContentState) Clamp(sel Selection) Selection {
	return c.Select(sel.AnchorKey, sel.AnchorOffset, sel.FocusKey, sel.FocusOffset)
}

// TextInRange returns the text covered by sel, with newlines between
// blocks.
func (c *ContentState) TextInRange(sel Selection) string {
	r, ok := c.resolve(sel)
	if !ok || r.empty() {
		return ""
	}
	var sb strings.Builder
	for i := r.startIdx; i <= r.endIdx; i++ {
		b := c.blocks[i]
		from, to := 0, b.Len()
		if i == r.startIdx {
			from = r.startOff
		}
		if i == r.endIdx {
			to = r.endOff
		}
		if i > r.startIdx {
			sb.WriteByte('\n')
		}
		for _, ch := range b.chars[from:to] {
			sb.WriteString(ch.Text)
		}
	}
	return sb.String()
}

// span is a selection resolved to block indices with clamped, ordered
// offsets.
type span struct {
	startIdx, startOff int
	endIdx, endOff     int
}

func (r span) empty() bool {
	return r.startIdx == r.endIdx && r.startOff == r.endOff
}

func (c *ContentState) resolve(sel Selection) (span, bool) {
	ai, fi := c.IndexOf(sel.AnchorKey), c.IndexOf(sel.FocusKey)
	if ai < 0 || fi < 0 {
		return span{}, false
	}
	ao := clampInt(sel.AnchorOffset, 0, c.blocks[ai].Len())
	fo := clampInt(sel.FocusOffset, 0, c.blocks[fi].Len())
	if fi < ai || (fi == ai && fo < ao) {
		ai, ao, fi, fo = fi, fo, ai, ao
	}
	return span{startIdx: ai, startOff: ao, endIdx: fi, endOff: fo}, true
}

// splice replaces blocks [from, to) with repl and rebuilds the key index.
func (c *ContentState) splice(from, to int, repl ...*Block) *ContentState {
	blocks := make([]*Block, 0, len(c.blocks)-(to-from)+len(repl))
	blocks = append(blocks, c.blocks[:from]...)
	blocks = append(blocks, repl...)
	blocks = append(blocks, c.blocks[to:]...)

	next := &ContentState{
		blocks:          blocks,
		index:           make(map[string]int, len(blocks)),
		entities:        c.entities,
		selectionBefore: c.selectionBefore,
		selectionAfter:  c.selectionAfter,
	}
	for i, b := range blocks {
		next.index[b.key] = i
	}
	return next
}

func (c *ContentState) withSelections(before, after Selection) *ContentState {
	next := *c
	next.selectionBefore = before
	next.selectionAfter = after
	return &next
}
