// Package document implements the immutable rich-text content model used by
// draftmark.
//
// A ContentState is an ordered list of blocks. Each block holds its text as
// grapheme clusters (Char), and every Char carries its inline style set and
// optional entity key. Offsets are 0-based grapheme offsets within a block.
// Selections are (key, offset) anchor/focus pairs.
//
// Content values are never mutated: every modifier returns a new
// ContentState that shares unchanged blocks with its input.
package document
