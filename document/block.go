package document

import (
	"strings"

	"github.com/iw2rmb/draftmark/internal/grapheme"
)

// BlockType names the paragraph-level kind of a block.
type BlockType string

const (
	BlockUnstyled          BlockType = "unstyled"
	BlockParagraph         BlockType = "paragraph"
	BlockHeaderOne         BlockType = "header-one"
	BlockHeaderTwo         BlockType = "header-two"
	BlockHeaderThree       BlockType = "header-three"
	BlockHeaderFour        BlockType = "header-four"
	BlockHeaderFive        BlockType = "header-five"
	BlockHeaderSix         BlockType = "header-six"
	BlockUnorderedListItem BlockType = "unordered-list-item"
	BlockOrderedListItem   BlockType = "ordered-list-item"
	BlockBlockquote        BlockType = "blockquote"
	BlockCodeBlock         BlockType = "code-block"
	BlockAtomic            BlockType = "atomic"
)

// IsHeader reports whether t is one of the header-* types.
func (t BlockType) IsHeader() bool {
	return strings.HasPrefix(string(t), "header-")
}

// Char is one grapheme cluster of block text with its inline metadata.
type Char struct {
	Text   string
	Style  StyleSet
	Entity string
}

// Block is a paragraph-level unit of content.
type Block struct {
	key   string
	typ   BlockType
	depth int
	chars []Char
	data  map[string]any
}

// NewBlock builds a block whose text carries style on every cluster. An
// empty typ means BlockUnstyled.
func NewBlock(key string, typ BlockType, text string, style StyleSet) *Block {
	if typ == "" {
		typ = BlockUnstyled
	}
	return &Block{
		key:   key,
		typ:   typ,
		chars: charsFromText(text, style, ""),
	}
}

func (b *Block) Key() string { return b.key }

func (b *Block) Type() BlockType { return b.typ }

func (b *Block) Depth() int { return b.depth }

// Len returns the block length in grapheme clusters.
func (b *Block) Len() int { return len(b.chars) }

func (b *Block) Text() string {
	var sb strings.Builder
	for _, c := range b.chars {
		sb.WriteString(c.Text)
	}
	return sb.String()
}

// TextUntil returns the text of clusters [0, offset). offset is clamped.
func (b *Block) TextUntil(offset int) string {
	offset = clampInt(offset, 0, len(b.chars))
	var sb strings.Builder
	for _, c := range b.chars[:offset] {
		sb.WriteString(c.Text)
	}
	return sb.String()
}

// Chars returns a copy of the block's clusters.
func (b *Block) Chars() []Char {
	return append([]Char(nil), b.chars...)
}

// StyleAt returns the inline style of the cluster at offset, or the empty
// set when offset is out of range.
func (b *Block) StyleAt(offset int) StyleSet {
	if offset < 0 || offset >= len(b.chars) {
		return StyleSet{}
	}
	return b.chars[offset].Style
}

// EntityAt returns the entity key at offset, or "".
func (b *Block) EntityAt(offset int) string {
	if offset < 0 || offset >= len(b.chars) {
		return ""
	}
	return b.chars[offset].Entity
}

// Data returns a shallow copy of the block's data map.
func (b *Block) Data() map[string]any {
	if len(b.data) == 0 {
		return nil
	}
	out := make(map[string]any, len(b.data))
	for k, v := range b.data {
		out[k] = v
	}
	return out
}

func (b *Block) withChars(chars []Char) *Block {
	nb := *b
	nb.chars = chars
	return &nb
}

func (b *Block) withType(typ BlockType) *Block {
	nb := *b
	nb.typ = typ
	return &nb
}

func (b *Block) withKey(key string) *Block {
	nb := *b
	nb.key = key
	return &nb
}

func charsFromText(text string, style StyleSet, entity string) []Char {
	clusters := grapheme.Split(text)
	if len(clusters) == 0 {
		return nil
	}
	out := make([]Char, len(clusters))
	for i, c := range clusters {
		out[i] = Char{Text: c, Style: style, Entity: entity}
	}
	return out
}

func concatChars(parts ...[]Char) []Char {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	if n == 0 {
		return nil
	}
	out := make([]Char, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// joinAt merges chars[at-1] and chars[at] in place when together they form
// a single grapheme cluster, so that stored clusters match what Split
// produces for the block text. It returns the possibly shortened slice and
// whether a merge happened.
func joinAt(chars []Char, at int) ([]Char, bool) {
	if at <= 0 || at >= len(chars) {
		return chars, false
	}
	joined := chars[at-1].Text + chars[at].Text
	if grapheme.Count(joined) != 1 {
		return chars, false
	}
	chars[at-1].Text = joined
	return append(chars[:at], chars[at+1:]...), true
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
