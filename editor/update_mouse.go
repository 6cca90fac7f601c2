package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/draftmark/editorstate"
)

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	// Wheel scrolling is left to the viewport and never moves the caret.
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)

	if !m.focused || m.state == nil {
		return m, cmd
	}

	// Only handle selection/cursor changes for left button interactions.
	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, cmd
		}
		p, ok := m.screenToCaret(msg.X, msg.Y)
		if !ok {
			return m, cmd
		}
		if msg.Shift {
			sel := m.state.Selection()
			m.mouseAnchor = caretPos{key: sel.AnchorKey, off: sel.AnchorOffset}
		} else {
			m.mouseAnchor = p
		}
		m.selectTo(p)
		m.mouseDragging = true

	case tea.MouseActionMotion:
		if !m.mouseDragging {
			return m, cmd
		}
		if p, ok := m.screenToCaret(msg.X, msg.Y); ok {
			m.selectTo(p)
		}

	case tea.MouseActionRelease:
		m.mouseDragging = false
	}
	return m, cmd
}

func (m *Model) selectTo(p caretPos) {
	a := m.mouseAnchor
	if a == p {
		m.state = editorstate.AcceptSelection(m.state, p.selection())
		return
	}
	m.state = editorstate.AcceptSelection(m.state, m.state.Content().Select(a.key, a.off, p.key, p.off))
}
