package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidRaw is wrapped by every error returned while decoding raw
// content.
var ErrInvalidRaw = errors.New("invalid raw content")

// RawContent is the plain serializable tree of a ContentState. Offsets and
// lengths count grapheme clusters.
type RawContent struct {
	Blocks    []RawBlock           `json:"blocks"`
	EntityMap map[string]RawEntity `json:"entityMap"`
}

type RawBlock struct {
	Key               string                `json:"key"`
	Text              string                `json:"text"`
	Type              string                `json:"type"`
	Depth             int                   `json:"depth"`
	InlineStyleRanges []RawInlineStyleRange `json:"inlineStyleRanges"`
	EntityRanges      []RawEntityRange      `json:"entityRanges"`
	Data              map[string]any        `json:"data"`
}

type RawInlineStyleRange struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Style  string `json:"style"`
}

type RawEntityRange struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
	Key    int `json:"key"`
}

type RawEntity struct {
	Type       string         `json:"type"`
	Mutability string         `json:"mutability"`
	Data       map[string]any `json:"data"`
}

// ToRaw converts content into its raw tree. Inline style ranges are listed
// per style in order of first appearance, each as maximal runs. Entity keys
// are renumbered from 0 in order of first appearance; entities no character
// references are dropped.
func ToRaw(c *ContentState) RawContent {
	out := RawContent{
		Blocks:    make([]RawBlock, 0, len(c.blocks)),
		EntityMap: map[string]RawEntity{},
	}
	entityIDs := map[string]int{}

	for _, b := range c.blocks {
		rb := RawBlock{
			Key:               b.key,
			Text:              b.Text(),
			Type:              string(b.typ),
			Depth:             b.depth,
			InlineStyleRanges: encodeStyleRanges(b.chars),
			EntityRanges:      []RawEntityRange{},
			Data:              b.Data(),
		}
		if rb.Data == nil {
			rb.Data = map[string]any{}
		}

		for _, run := range entityRuns(b.chars) {
			id, seen := entityIDs[run.key]
			if !seen {
				id = len(entityIDs)
				entityIDs[run.key] = id
				e := c.entities[run.key]
				data := e.Data
				if data == nil {
					data = map[string]any{}
				}
				out.EntityMap[strconv.Itoa(id)] = RawEntity{
					Type:       e.Type,
					Mutability: string(e.Mutability),
					Data:       data,
				}
			}
			rb.EntityRanges = append(rb.EntityRanges, RawEntityRange{
				Offset: run.offset,
				Length: run.length,
				Key:    id,
			})
		}

		out.Blocks = append(out.Blocks, rb)
	}
	return out
}

// FromRaw validates raw and builds a ContentState from it.
func FromRaw(raw RawContent) (*ContentState, error) {
	if len(raw.Blocks) == 0 {
		return nil, fmt.Errorf("%w: no blocks", ErrInvalidRaw)
	}

	entities := make(map[string]Entity, len(raw.EntityMap))
	for k, e := range raw.EntityMap {
		if _, err := strconv.Atoi(k); err != nil {
			return nil, fmt.Errorf("%w: entity key %q is not numeric", ErrInvalidRaw, k)
		}
		entities[k] = Entity{Type: e.Type, Mutability: Mutability(e.Mutability), Data: e.Data}
	}

	seen := make(map[string]bool, len(raw.Blocks))
	blocks := make([]*Block, 0, len(raw.Blocks))
	for i, rb := range raw.Blocks {
		if rb.Key == "" {
			return nil, fmt.Errorf("%w: block %d has no key", ErrInvalidRaw, i)
		}
		if seen[rb.Key] {
			return nil, fmt.Errorf("%w: duplicate block key %q", ErrInvalidRaw, rb.Key)
		}
		seen[rb.Key] = true
		if rb.Depth < 0 {
			return nil, fmt.Errorf("%w: block %q has negative depth", ErrInvalidRaw, rb.Key)
		}

		b := NewBlock(rb.Key, BlockType(rb.Type), rb.Text, StyleSet{})
		b.depth = rb.Depth
		if len(rb.Data) > 0 {
			b.data = rb.Data
		}

		for _, sr := range rb.InlineStyleRanges {
			if err := checkRange(sr.Offset, sr.Length, b.Len()); err != nil {
				return nil, fmt.Errorf("%w: block %q style %q: %v", ErrInvalidRaw, rb.Key, sr.Style, err)
			}
			if sr.Style == "" {
				return nil, fmt.Errorf("%w: block %q has an unnamed style range", ErrInvalidRaw, rb.Key)
			}
			for j := sr.Offset; j < sr.Offset+sr.Length; j++ {
				b.chars[j].Style = b.chars[j].Style.Add(sr.Style)
			}
		}

		for _, er := range rb.EntityRanges {
			key := strconv.Itoa(er.Key)
			if _, ok := entities[key]; !ok {
				return nil, fmt.Errorf("%w: block %q references unknown entity %d", ErrInvalidRaw, rb.Key, er.Key)
			}
			if err := checkRange(er.Offset, er.Length, b.Len()); err != nil {
				return nil, fmt.Errorf("%w: block %q entity %d: %v", ErrInvalidRaw, rb.Key, er.Key, err)
			}
			for j := er.Offset; j < er.Offset+er.Length; j++ {
				b.chars[j].Entity = key
			}
		}

		blocks = append(blocks, b)
	}

	c := NewContent(blocks...)
	if len(entities) > 0 {
		c.entities = entities
	}
	return c, nil
}

// MarshalRaw serializes content to raw JSON.
func MarshalRaw(c *ContentState) ([]byte, error) {
	return json.Marshal(ToRaw(c))
}

// UnmarshalRaw parses raw JSON into content.
func UnmarshalRaw(data []byte) (*ContentState, error) {
	var raw RawContent
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRaw, err)
	}
	return FromRaw(raw)
}

func checkRange(offset, length, n int) error {
	if offset < 0 || length < 0 || offset+length > n {
		return fmt.Errorf("range [%d,+%d) outside text of length %d", offset, length, n)
	}
	return nil
}

func encodeStyleRanges(chars []Char) []RawInlineStyleRange {
	out := []RawInlineStyleRange{}

	var order []string
	seen := map[string]bool{}
	for _, ch := range chars {
		for _, name := range ch.Style.names {
			if !seen[name] {
				seen[name] = true
				order = append(order, name)
			}
		}
	}

	for _, name := range order {
		start := -1
		for i := 0; i <= len(chars); i++ {
			has := i < len(chars) && chars[i].Style.Has(name)
			switch {
			case has && start < 0:
				start = i
			case !has && start >= 0:
				out = append(out, RawInlineStyleRange{Offset: start, Length: i - start, Style: name})
				start = -1
			}
		}
	}
	return out
}

type entityRun struct {
	key            string
	offset, length int
}

func entityRuns(chars []Char) []entityRun {
	var out []entityRun
	for i := 0; i < len(chars); {
		key := chars[i].Entity
		j := i + 1
		for j < len(chars) && chars[j].Entity == key {
			j++
		}
		if key != "" {
			out = append(out, entityRun{key: key, offset: i, length: j - i})
		}
		i = j
	}
	return out
}
