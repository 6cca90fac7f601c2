package editor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/draftmark/document"
	"github.com/iw2rmb/draftmark/editorstate"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused || m.state == nil {
		return m, nil
	}

	// Paste events should always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		if !m.cfg.ReadOnly {
			m.state = editorstate.InsertText(m.state, string(msg.Runes))
		}
		return m, nil
	}

	km := m.cfg.KeyMap

	switch {
	case key.Matches(msg, km.Left):
		m.move(editorstate.MoveGrapheme, editorstate.DirLeft, false)
	case key.Matches(msg, km.Right):
		m.move(editorstate.MoveGrapheme, editorstate.DirRight, false)
	case key.Matches(msg, km.Up):
		m.move(editorstate.MoveBlock, editorstate.DirUp, false)
	case key.Matches(msg, km.Down):
		m.move(editorstate.MoveBlock, editorstate.DirDown, false)

	case key.Matches(msg, km.ShiftLeft):
		m.move(editorstate.MoveGrapheme, editorstate.DirLeft, true)
	case key.Matches(msg, km.ShiftRight):
		m.move(editorstate.MoveGrapheme, editorstate.DirRight, true)
	case key.Matches(msg, km.ShiftUp):
		m.move(editorstate.MoveBlock, editorstate.DirUp, true)
	case key.Matches(msg, km.ShiftDown):
		m.move(editorstate.MoveBlock, editorstate.DirDown, true)

	case key.Matches(msg, km.WordLeft):
		m.move(editorstate.MoveWord, editorstate.DirLeft, false)
	case key.Matches(msg, km.WordRight):
		m.move(editorstate.MoveWord, editorstate.DirRight, false)

	case key.Matches(msg, km.Home):
		m.move(editorstate.MoveBlock, editorstate.DirHome, false)
	case key.Matches(msg, km.End):
		m.move(editorstate.MoveBlock, editorstate.DirEnd, false)
	case key.Matches(msg, km.DocStart):
		m.move(editorstate.MoveDoc, editorstate.DirHome, false)
	case key.Matches(msg, km.DocEnd):
		m.move(editorstate.MoveDoc, editorstate.DirEnd, false)

	case key.Matches(msg, km.Backspace):
		m.edit(editorstate.Backspace)
	case key.Matches(msg, km.Delete):
		m.edit(editorstate.DeleteForward)
	case key.Matches(msg, km.Enter):
		m.edit(editorstate.SplitBlock)

	case key.Matches(msg, km.Undo):
		m.edit(editorstate.Undo)
	case key.Matches(msg, km.Redo):
		m.edit(editorstate.Redo)

	case key.Matches(msg, km.Bold):
		m.toggleStyle(document.StyleBold)
	case key.Matches(msg, km.Red):
		m.toggleStyle(document.StyleRed)
	case key.Matches(msg, km.Underline):
		m.toggleStyle(document.StyleUnderline)

	case key.Matches(msg, km.Copy):
		m.copySelection()
	case key.Matches(msg, km.Cut):
		if !m.cfg.ReadOnly {
			m.cutSelection()
		} else {
			m.copySelection()
		}
	case key.Matches(msg, km.Paste):
		if !m.cfg.ReadOnly {
			m.pasteClipboard()
		}

	case key.Matches(msg, km.Save):
		content := m.state.Content()
		return m, func() tea.Msg { return SaveRequestMsg{Content: content} }

	default:
		if m.cfg.ReadOnly || msg.Alt {
			return m, nil
		}
		switch {
		case msg.Type == tea.KeySpace:
			m.typeChars(" ")
		case msg.Type == tea.KeyRunes && len(msg.Runes) > 0:
			m.typeChars(string(msg.Runes))
		}
	}

	return m, nil
}

func (m *Model) move(unit editorstate.MoveUnit, dir editorstate.MoveDir, extend bool) {
	m.state = editorstate.MoveSelection(m.state, editorstate.Move{Unit: unit, Dir: dir, Extend: extend})
}

func (m *Model) edit(fn func(*editorstate.EditorState) *editorstate.EditorState) {
	if m.cfg.ReadOnly {
		return
	}
	m.state = fn(m.state)
}

func (m *Model) toggleStyle(style string) {
	if m.cfg.ReadOnly {
		return
	}
	m.state = editorstate.ToggleInlineStyle(m.state, style)
}

// typeChars inserts typed input, giving the interceptor the first look.
func (m *Model) typeChars(chars string) {
	if next, ok := m.interceptor.Intercept(m.state, chars); ok {
		m.state = next
		return
	}
	m.state = editorstate.InsertCharacters(m.state, chars)
}

func (m Model) selectedText() string {
	sel := m.state.Selection()
	if sel.IsCollapsed() {
		return ""
	}
	return m.state.Content().TextInRange(sel)
}

func (m Model) copySelection() {
	if m.cfg.Clipboard == nil {
		return
	}
	s := m.selectedText()
	if s == "" {
		return
	}
	_ = m.cfg.Clipboard.WriteText(s)
}

func (m *Model) cutSelection() {
	if m.cfg.Clipboard == nil {
		return
	}
	s := m.selectedText()
	if s == "" {
		return
	}
	_ = m.cfg.Clipboard.WriteText(s)
	m.state = editorstate.DeleteSelection(m.state)
}

func (m *Model) pasteClipboard() {
	if m.cfg.Clipboard == nil {
		return
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil || s == "" {
		return
	}
	m.state = editorstate.InsertText(m.state, s)
}
