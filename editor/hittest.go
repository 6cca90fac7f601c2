package editor

import "github.com/iw2rmb/draftmark/document"

type caretPos struct {
	key string
	off int
}

// screenToCaret maps viewport-local mouse coordinates to a caret position.
//
// Coordinates are in terminal cells relative to the viewport: (0,0) is the
// top-left of the visible content. Coordinates outside the document clamp
// to its bounds; clicks on a list marker land at the block start.
func (m *Model) screenToCaret(x, y int) (caretPos, bool) {
	if len(m.rows) == 0 {
		return caretPos{}, false
	}
	row := clampInt(m.viewport.YOffset+y, 0, len(m.rows)-1)
	ref := m.rows[row]

	x -= ref.prefixW
	if x < 0 {
		return caretPos{key: ref.key, off: firstDocIdx(ref)}, true
	}
	used := 0
	for _, cl := range ref.cells {
		if cl.docIdx < 0 {
			continue
		}
		if x < used+cl.width {
			return caretPos{key: ref.key, off: cl.docIdx}, true
		}
		used += cl.width
	}
	return caretPos{key: ref.key, off: ref.endOff}, true
}

func firstDocIdx(ref rowRef) int {
	for _, cl := range ref.cells {
		if cl.docIdx >= 0 {
			return cl.docIdx
		}
	}
	return ref.endOff
}

func (p caretPos) selection() document.Selection {
	return document.Collapsed(p.key, p.off)
}
