package editorstate

import (
	"github.com/iw2rmb/draftmark/document"
	"github.com/iw2rmb/draftmark/internal/grapheme"
)

type MoveUnit int

const (
	MoveGrapheme MoveUnit = iota
	MoveWord
	MoveBlock
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // block start (or doc start for MoveDoc)
	DirEnd  // block end (or doc end for MoveDoc)
)

type Move struct {
	Unit   MoveUnit
	Dir    MoveDir
	Extend bool // keep the anchor and move only the focus
}

type caret struct {
	idx int
	off int
}

// MoveSelection moves the focus by m. Without Extend the selection
// collapses at the new focus; collapsing a range with a plain left/right
// move lands on the corresponding edge instead of stepping past it.
func MoveSelection(es *EditorState, m Move) *EditorState {
	c := es.content
	sel := c.Clamp(es.selection)

	if !m.Extend && !sel.IsCollapsed() && m.Unit == MoveGrapheme {
		switch m.Dir {
		case DirLeft:
			return AcceptSelection(es, sel.Start())
		case DirRight:
			return AcceptSelection(es, sel.End())
		}
	}

	focus := caret{idx: c.IndexOf(sel.FocusKey), off: sel.FocusOffset}
	next := moveCaret(c, focus, m)
	nextKey := c.BlockAt(next.idx).Key()

	if m.Extend {
		return AcceptSelection(es, c.Select(sel.AnchorKey, sel.AnchorOffset, nextKey, next.off))
	}
	return AcceptSelection(es, document.Collapsed(nextKey, next.off))
}

// SelectAll selects from the start of the first block to the end of the
// last block.
func SelectAll(es *EditorState) *EditorState {
	c := es.content
	last := c.LastBlock()
	return AcceptSelection(es, c.Select(c.FirstBlock().Key(), 0, last.Key(), last.Len()))
}

func moveCaret(c *document.ContentState, p caret, m Move) caret {
	switch m.Unit {
	case MoveGrapheme:
		return moveGrapheme(c, p, m.Dir)
	case MoveWord:
		return moveWord(c, p, m.Dir)
	case MoveBlock:
		return moveBlock(c, p, m.Dir)
	case MoveDoc:
		return moveDoc(c, p, m.Dir)
	default:
		return p
	}
}

func moveGrapheme(c *document.ContentState, p caret, dir MoveDir) caret {
	last := c.Len() - 1
	switch dir {
	case DirLeft:
		if p.off > 0 {
			return caret{idx: p.idx, off: p.off - 1}
		}
		if p.idx == 0 {
			return p
		}
		return caret{idx: p.idx - 1, off: c.BlockAt(p.idx - 1).Len()}
	case DirRight:
		if p.off < c.BlockAt(p.idx).Len() {
			return caret{idx: p.idx, off: p.off + 1}
		}
		if p.idx == last {
			return p
		}
		return caret{idx: p.idx + 1}
	default:
		return moveBlock(c, p, dir)
	}
}

func moveBlock(c *document.ContentState, p caret, dir MoveDir) caret {
	last := c.Len() - 1
	switch dir {
	case DirHome:
		return caret{idx: p.idx}
	case DirEnd:
		return caret{idx: p.idx, off: c.BlockAt(p.idx).Len()}
	case DirUp:
		if p.idx == 0 {
			return caret{}
		}
		return caret{idx: p.idx - 1, off: minInt(p.off, c.BlockAt(p.idx-1).Len())}
	case DirDown:
		if p.idx == last {
			return caret{idx: last, off: c.BlockAt(last).Len()}
		}
		return caret{idx: p.idx + 1, off: minInt(p.off, c.BlockAt(p.idx+1).Len())}
	default:
		return p
	}
}

func moveDoc(c *document.ContentState, p caret, dir MoveDir) caret {
	switch dir {
	case DirHome, DirUp:
		return caret{}
	case DirEnd, DirDown:
		last := c.Len() - 1
		return caret{idx: last, off: c.BlockAt(last).Len()}
	default:
		return p
	}
}

// Word motion skips spaces, then a run of clusters of one class. Block
// edges are hard boundaries except when the caret already sits on one.
func moveWord(c *document.ContentState, p caret, dir MoveDir) caret {
	chars := c.BlockAt(p.idx).Chars()
	switch dir {
	case DirLeft:
		if p.off == 0 {
			return moveGrapheme(c, p, DirLeft)
		}
		i := p.off
		for i > 0 && grapheme.ClassOf(chars[i-1].Text) == grapheme.ClassSpace {
			i--
		}
		if i > 0 {
			cls := grapheme.ClassOf(chars[i-1].Text)
			for i > 0 && grapheme.ClassOf(chars[i-1].Text) == cls {
				i--
			}
		}
		return caret{idx: p.idx, off: i}
	case DirRight:
		if p.off == len(chars) {
			return moveGrapheme(c, p, DirRight)
		}
		i := p.off
		for i < len(chars) && grapheme.ClassOf(chars[i].Text) == grapheme.ClassSpace {
			i++
		}
		if i < len(chars) {
			cls := grapheme.ClassOf(chars[i].Text)
			for i < len(chars) && grapheme.ClassOf(chars[i].Text) == cls {
				i++
			}
		}
		return caret{idx: p.idx, off: i}
	default:
		return moveBlock(c, p, dir)
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
