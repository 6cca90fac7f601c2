package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/draftmark/document"
	"github.com/iw2rmb/draftmark/editorstate"
	"github.com/iw2rmb/draftmark/shortcut"
)

// Model is a Bubble Tea component that renders and edits an EditorState.
type Model struct {
	cfg         Config
	state       *editorstate.EditorState
	interceptor *shortcut.Interceptor

	focused bool

	viewport viewport.Model

	// Visual row holding the caret and the row map for hit testing, both
	// updated by renderContent.
	cursorRow int
	rows      []rowRef

	mouseDragging bool
	mouseAnchor   caretPos
}

func New(cfg Config) Model {
	if cfg.KeyMap.isEmpty() {
		cfg.KeyMap = DefaultKeyMap()
	}
	state := cfg.State
	if state == nil {
		opt := editorstate.Options{HistoryLimit: cfg.HistoryLimit}
		if cfg.Text != "" {
			state = editorstate.CreateWithContent(document.FromText(cfg.Text), opt)
		} else {
			state = editorstate.CreateEmpty(opt)
		}
	}
	in := cfg.Interceptor
	if in == nil {
		in = shortcut.New()
	}
	m := Model{
		cfg:         cfg,
		state:       state,
		interceptor: in,
		focused:     true,
		viewport:    viewport.New(0, 0),
	}
	m.rebuildContent()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// State returns the current editor state.
func (m Model) State() *editorstate.EditorState { return m.state }

// Content is shorthand for State().Content().
func (m Model) Content() *document.ContentState { return m.state.Content() }

// SetState replaces the editor state, e.g. after loading a document. It does
// not report a ChangeEvent. A nil state is ignored.
func (m Model) SetState(es *editorstate.EditorState) Model {
	if es == nil {
		return m
	}
	m.state = es
	m.rebuildContent()
	m.followCursor()
	return m
}

// RawJSON returns the current content in raw JSON form.
func (m Model) RawJSON() ([]byte, error) {
	return document.MarshalRaw(m.state.Content())
}

func (m Model) KeyMap() KeyMap { return m.cfg.KeyMap }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height

	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.MouseMsg:
		prev := m.state
		var cmd tea.Cmd
		m, cmd = m.updateMouse(msg)
		m.afterUpdate(prev, false)
		return m, cmd
	case tea.KeyMsg:
		prev := m.state
		var cmd tea.Cmd
		m, cmd = m.updateKey(msg)
		m.afterUpdate(prev, true)
		return m, cmd
	default:
		return m, nil
	}
}

func (m Model) View() string { return m.viewport.View() }

func (m *Model) afterUpdate(prev *editorstate.EditorState, follow bool) {
	if m.state == prev {
		return
	}
	m.rebuildContent()
	if follow {
		m.followCursor()
	}
	if m.cfg.OnChange != nil {
		m.cfg.OnChange(buildChangeEvent(m.state))
	}
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) followCursor() {
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}

	y := m.viewport.YOffset
	if m.cursorRow < y {
		m.viewport.SetYOffset(m.cursorRow)
		return
	}
	if m.cursorRow >= y+h {
		m.viewport.SetYOffset(m.cursorRow - h + 1)
	}
}
