package editor

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/draftmark/document"
	graphemeutil "github.com/iw2rmb/draftmark/internal/grapheme"
)

// cell is one rendered grapheme cluster.
type cell struct {
	text  string
	style lipgloss.Style
	width int
	caret bool
	// Grapheme offset in the block, -1 for cells not backed by text.
	docIdx int
}

// rowRef maps a rendered row back to the block it shows.
type rowRef struct {
	key     string
	prefixW int
	cells   []cell
	// Offset a click past the last cell resolves to.
	endOff int
}

func (m *Model) renderContent() string {
	m.cursorRow = 0
	m.rows = nil
	if m.state == nil {
		return ""
	}
	c := m.state.Content()
	sel := m.state.Selection()
	st := m.cfg.Style

	placeholder := m.cfg.Placeholder != "" && c.Len() == 1 && !c.HasText()

	var out []string
	ordinal := 0
	var prev *document.Block
	for idx, b := range c.Blocks() {
		ordinal = nextOrdinal(prev, b, ordinal)
		prev = b

		prefix := blockPrefix(b, ordinal)
		base := st.blockStyle(b.Type())

		cursorCol := -1
		if m.focused && b.Key() == sel.FocusKey {
			cursorCol = clampInt(sel.FocusOffset, 0, b.Len())
		}
		selFrom, selTo, hasSel := selectionCols(c, sel, idx, b.Len())

		chars := b.Chars()
		cells := make([]cell, 0, len(chars)+1)
		for j, ch := range chars {
			s := m.cfg.StyleMap.Apply(base, ch.Style)
			if hasSel && j >= selFrom && j < selTo {
				s = st.Selection.Inherit(s)
			}
			if j == cursorCol {
				s = st.Cursor.Inherit(s)
			}
			cells = append(cells, cell{
				text:   displayText(ch.Text),
				style:  s,
				width:  graphemeutil.Width(displayText(ch.Text)),
				caret:  j == cursorCol,
				docIdx: j,
			})
		}
		if cursorCol == len(chars) {
			cells = append(cells, cell{text: " ", style: st.Cursor.Inherit(base), width: 1, caret: true, docIdx: -1})
		}
		if placeholder {
			cells = append(cells, cell{
				text:   m.cfg.Placeholder,
				style:  st.Placeholder,
				width:  lipgloss.Width(m.cfg.Placeholder),
				docIdx: -1,
			})
		}

		rows, caretRow := wrapCells(cells, m.viewport.Width-lipgloss.Width(prefix))
		if caretRow >= 0 {
			m.cursorRow = len(out) + caretRow
		}
		prefixW := lipgloss.Width(prefix)
		cont := strings.Repeat(" ", prefixW)
		for r, row := range rows {
			m.rows = append(m.rows, rowRef{
				key:     b.Key(),
				prefixW: prefixW,
				cells:   row,
				endOff:  rowEndOffset(rows, r, b.Len()),
			})
			var sb strings.Builder
			switch {
			case prefix == "":
			case r == 0:
				sb.WriteString(st.Marker.Render(prefix))
			default:
				sb.WriteString(cont)
			}
			for _, cl := range row {
				sb.WriteString(cl.style.Render(cl.text))
			}
			out = append(out, sb.String())
		}
	}
	return strings.Join(out, "\n")
}

// wrapCells breaks cells into rows no wider than width. A width <= 0
// disables wrapping. It returns the row holding the caret cell, or -1.
func wrapCells(cells []cell, width int) ([][]cell, int) {
	caretRow := -1
	if width <= 0 {
		for _, cl := range cells {
			if cl.caret {
				caretRow = 0
			}
		}
		return [][]cell{cells}, caretRow
	}

	rows := [][]cell{nil}
	used := 0
	for _, cl := range cells {
		if used > 0 && used+cl.width > width {
			rows = append(rows, nil)
			used = 0
		}
		last := len(rows) - 1
		rows[last] = append(rows[last], cl)
		used += cl.width
		if cl.caret {
			caretRow = last
		}
	}
	return rows, caretRow
}

// rowEndOffset is the offset just after the last text cell of rows[r]; the
// last row ends at the block end.
func rowEndOffset(rows [][]cell, r, blockLen int) int {
	if r == len(rows)-1 {
		return blockLen
	}
	for i := len(rows[r]) - 1; i >= 0; i-- {
		if rows[r][i].docIdx >= 0 {
			return rows[r][i].docIdx + 1
		}
	}
	return blockLen
}

// blockPrefix returns the marker drawn before the first row of a block.
func blockPrefix(b *document.Block, ordinal int) string {
	indent := strings.Repeat("  ", b.Depth())
	switch b.Type() {
	case document.BlockUnorderedListItem:
		return indent + "• "
	case document.BlockOrderedListItem:
		return indent + strconv.Itoa(ordinal) + ". "
	case document.BlockBlockquote:
		return "│ "
	default:
		return ""
	}
}

// nextOrdinal numbers consecutive ordered-list items of the same depth.
func nextOrdinal(prev, b *document.Block, ordinal int) int {
	if b.Type() != document.BlockOrderedListItem {
		return 0
	}
	if prev != nil && prev.Type() == document.BlockOrderedListItem && prev.Depth() == b.Depth() {
		return ordinal + 1
	}
	return 1
}

// selectionCols returns the selected grapheme range of the block at idx.
func selectionCols(c *document.ContentState, sel document.Selection, idx, n int) (from, to int, ok bool) {
	if sel.IsCollapsed() {
		return 0, 0, false
	}
	si, ei := c.IndexOf(sel.StartKey()), c.IndexOf(sel.EndKey())
	if si < 0 || ei < 0 || idx < si || idx > ei {
		return 0, 0, false
	}
	from, to = 0, n
	if idx == si {
		from = clampInt(sel.StartOffset(), 0, n)
	}
	if idx == ei {
		to = clampInt(sel.EndOffset(), 0, n)
	}
	return from, to, from < to
}

func displayText(s string) string {
	if s == "\t" {
		return " "
	}
	return s
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
