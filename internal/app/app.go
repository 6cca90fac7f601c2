// Package app wires the editor component to persistence and adds the
// surrounding chrome: a status header, the raw-content debug readout, and
// the help and diff overlays.
package app

import (
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	overlay "github.com/rmhubbert/bubbletea-overlay"
	"github.com/tidwall/pretty"

	"github.com/iw2rmb/draftmark/document"
	"github.com/iw2rmb/draftmark/editor"
	"github.com/iw2rmb/draftmark/persist"
)

const (
	headerHeight = 1
	footerHeight = 1
)

type Options struct {
	Title  string
	Bridge *persist.Bridge
	Editor editor.Config

	// Debug shows the serialized document below the editor.
	Debug       bool
	PrettyDebug bool

	SaveTimeout time.Duration
	KeyMap      KeyMap

	// Now defaults to time.Now.
	Now func() time.Time
}

type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayHelp
	overlayDiff
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	statusStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	debugStyle   = lipgloss.NewStyle().Faint(true)
	overlayStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type Model struct {
	opts   Options
	keys   KeyMap
	editor editor.Model
	help   help.Model

	width, height int

	// Content as of the last successful save (or load).
	saved   *document.ContentState
	savedAt time.Time
	saving  bool
	saveErr error

	overlay overlayKind
}

func New(opts Options) Model {
	if opts.KeyMap.Quit.Keys() == nil {
		opts.KeyMap = DefaultKeyMap()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Title == "" {
		opts.Title = "draftmark"
	}
	ed := editor.New(opts.Editor)
	return Model{
		opts:   opts,
		keys:   opts.KeyMap,
		editor: ed,
		help:   help.New(),
		saved:  ed.Content(),
	}
}

func (m Model) Init() tea.Cmd { return m.editor.Init() }

// Editor returns the wrapped editor component.
func (m Model) Editor() editor.Model { return m.editor }

// Dirty reports whether the document differs from the last saved content.
// Undoing back to the saved snapshot makes the document clean again.
func (m Model) Dirty() bool { return m.editor.Content() != m.saved }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.overlay != overlayNone {
			return m.updateOverlayKey(msg), nil
		}
		switch {
		case key.Matches(msg, m.keys.Help):
			return m.openOverlay(overlayHelp), nil
		case key.Matches(msg, m.keys.Diff):
			return m.openOverlay(overlayDiff), nil
		}

	case tea.MouseMsg:
		if m.overlay != overlayNone {
			return m, nil
		}
		msg.Y -= headerHeight
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd

	case editor.SaveRequestMsg:
		if m.opts.Bridge == nil {
			return m, nil
		}
		m.saving = true
		m.saveErr = nil
		return m, saveCmd(m.opts.Bridge, msg.Content, m.opts.SaveTimeout, m.opts.Now)

	case SavedMsg:
		m.saving = false
		if msg.Err != nil {
			m.saveErr = msg.Err
			log.Printf("save %q failed: %v", m.storeKey(), msg.Err)
			return m, nil
		}
		m.saved = msg.Content
		m.savedAt = msg.At
		log.Printf("saved %q (%d blocks)", m.storeKey(), msg.Content.Len())
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) storeKey() string {
	if m.opts.Bridge == nil {
		return ""
	}
	return m.opts.Bridge.Key()
}

func (m Model) updateOverlayKey(msg tea.KeyMsg) Model {
	switch {
	case key.Matches(msg, m.keys.Close),
		m.overlay == overlayHelp && key.Matches(msg, m.keys.Help),
		m.overlay == overlayDiff && key.Matches(msg, m.keys.Diff):
		m.overlay = overlayNone
		m.editor = m.editor.Focus()
	case key.Matches(msg, m.keys.Help):
		m.overlay = overlayHelp
	case key.Matches(msg, m.keys.Diff):
		m.overlay = overlayDiff
	}
	return m
}

func (m Model) openOverlay(k overlayKind) Model {
	m.overlay = k
	m.editor = m.editor.Blur()
	return m
}

func (m *Model) layout() {
	h := m.height - headerHeight - footerHeight - m.debugHeight()
	if h < 1 {
		h = 1
	}
	m.editor = m.editor.SetSize(m.width, h)
}

func (m Model) debugHeight() int {
	if !m.opts.Debug || m.height <= 0 {
		return 0
	}
	h := m.height / 3
	if h < 2 {
		h = 2
	}
	return h
}

func (m Model) View() string {
	parts := []string{m.headerView(), m.editor.View()}
	if m.opts.Debug {
		parts = append(parts, m.debugView())
	}
	parts = append(parts, m.help.ShortHelpView(m.helpKeys().ShortHelp()))
	base := strings.Join(parts, "\n")

	var box string
	switch m.overlay {
	case overlayHelp:
		box = m.overlayBox("Keys", m.fullHelpView())
	case overlayDiff:
		box = m.overlayBox("Changes since last save", m.diffView())
	default:
		return base
	}
	return overlay.Composite(box, base, overlay.Center, overlay.Center, 0, 0)
}

func (m Model) helpKeys() helpKeys {
	return helpKeys{editor: m.editor.KeyMap(), app: m.keys}
}

// fullHelpView lays the binding groups out three columns per row so the
// overlay fits a standard terminal.
func (m Model) fullHelpView() string {
	const perRow = 3
	h := m.help
	h.Width = 0
	groups := m.helpKeys().FullHelp()
	var rows []string
	for i := 0; i < len(groups); i += perRow {
		end := min(i+perRow, len(groups))
		rows = append(rows, h.FullHelpView(groups[i:end]))
	}
	return strings.Join(rows, "\n\n")
}

func (m Model) headerView() string {
	return titleStyle.Render(m.opts.Title) + "  " + m.statusView()
}

func (m Model) statusView() string {
	switch {
	case m.saving:
		return statusStyle.Render("saving…")
	case m.saveErr != nil:
		return errorStyle.Render("save failed: " + m.saveErr.Error())
	case m.Dirty():
		return statusStyle.Render("modified")
	case !m.savedAt.IsZero():
		return statusStyle.Render("saved " + m.savedAt.Format("15:04:05"))
	default:
		return ""
	}
}

// debugView renders the raw JSON of the current content, cut to the debug
// pane.
func (m Model) debugView() string {
	data, err := m.editor.RawJSON()
	if err != nil {
		return errorStyle.Render("raw: " + err.Error())
	}
	if m.opts.PrettyDebug {
		data = pretty.Pretty(data)
		if lipgloss.ColorProfile() != termenv.Ascii {
			data = pretty.Color(data, nil)
		}
	}
	text := strings.TrimRight(string(data), "\n")

	st := debugStyle
	if h := m.debugHeight(); h > 0 {
		st = st.MaxHeight(h)
	}
	if m.width > 0 {
		st = st.MaxWidth(m.width)
	}
	return st.Render(text)
}

func (m Model) diffView() string {
	return renderDiff(m.saved.PlainText(), m.editor.Content().PlainText())
}

func (m Model) overlayBox(title, body string) string {
	st := overlayStyle
	if m.width > 8 {
		st = st.MaxWidth(m.width - 2)
	}
	return st.Render(titleStyle.Render(title) + "\n\n" + body)
}
