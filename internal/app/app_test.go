package app

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/draftmark/document"
	"github.com/iw2rmb/draftmark/editor"
	"github.com/iw2rmb/draftmark/persist"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)

func stripANSI(s string) string { return ansiRe.ReplaceAllString(s, "") }

var fixedNow = time.Date(2026, 10, 17, 10, 30, 0, 0, time.UTC)

type failStore struct{ err error }

func (s failStore) Get(context.Context, string) (string, bool, error) { return "", false, s.err }
func (s failStore) Set(context.Context, string, string) error         { return s.err }

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	m := New(opts)
	return update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func typeRunes(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		if r == ' ' {
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		}
		m = update(t, m, msg)
	}
	return m
}

func headerLine(m Model) string {
	return stripANSI(strings.SplitN(m.View(), "\n", 2)[0])
}

// save drives ctrl+s through the editor request and the store round trip.
func save(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatalf("ctrl+s returned no command")
	}
	msg := cmd()
	req, ok := msg.(editor.SaveRequestMsg)
	if !ok {
		t.Fatalf("ctrl+s produced %T, want editor.SaveRequestMsg", msg)
	}
	m, cmd = updateCmd(t, m, req)
	if cmd == nil {
		t.Fatalf("save request returned no command")
	}
	if got := headerLine(m); !strings.Contains(got, "saving") {
		t.Fatalf("header=%q, want saving status", got)
	}
	return update(t, m, cmd())
}

func TestSave_WritesRawContent(t *testing.T) {
	store := persist.NewMemoryStore()
	m := newTestModel(t, Options{Bridge: persist.NewBridge(store, ""), Title: "notes"})

	m = typeRunes(t, m, "# Hello")
	if !m.Dirty() {
		t.Fatalf("typing must mark the document dirty")
	}
	if got := headerLine(m); !strings.Contains(got, "notes") || !strings.Contains(got, "modified") {
		t.Fatalf("header=%q, want title and modified status", got)
	}

	m = save(t, m)
	if m.Dirty() {
		t.Fatalf("document must be clean after save")
	}
	if got, want := headerLine(m), "saved 10:30:00"; !strings.Contains(got, want) {
		t.Fatalf("header=%q, want %q", got, want)
	}

	raw, ok, err := store.Get(context.Background(), persist.DefaultKey)
	if err != nil || !ok {
		t.Fatalf("store.Get: ok=%v err=%v", ok, err)
	}
	want, err := document.MarshalRaw(m.Editor().Content())
	if err != nil {
		t.Fatalf("MarshalRaw: %v", err)
	}
	if raw != string(want) {
		t.Fatalf("stored=%s, want %s", raw, want)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	if !m.Dirty() {
		t.Fatalf("undo after save must mark the document dirty")
	}
}

func TestSave_Failure(t *testing.T) {
	bridge := persist.NewBridge(failStore{err: errors.New("disk full")}, "")
	m := newTestModel(t, Options{Bridge: bridge})
	m = typeRunes(t, m, "x")
	m = save(t, m)

	if got := headerLine(m); !strings.Contains(got, "save failed: disk full") {
		t.Fatalf("header=%q, want failure status", got)
	}
	if !m.Dirty() {
		t.Fatalf("failed save must keep the document dirty")
	}
}

func TestSaveCmd_Timeout(t *testing.T) {
	store := persist.NewMemoryStore()
	content := document.FromText("abc")
	msg := saveCmd(persist.NewBridge(store, "k"), content, time.Second, func() time.Time { return fixedNow })()
	saved, ok := msg.(SavedMsg)
	if !ok {
		t.Fatalf("got %T, want SavedMsg", msg)
	}
	if saved.Err != nil || saved.Content != content || !saved.At.Equal(fixedNow) {
		t.Fatalf("got %+v, want success at %v", saved, fixedNow)
	}
}

func TestSaveRequest_WithoutBridge(t *testing.T) {
	m := newTestModel(t, Options{})
	_, cmd := updateCmd(t, m, editor.SaveRequestMsg{Content: m.Editor().Content()})
	if cmd != nil {
		t.Fatalf("save without a bridge must be ignored")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, Options{})
	_, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlQ})
	if cmd == nil {
		t.Fatalf("ctrl+q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("ctrl+q must quit")
	}
}

func TestOverlay_Diff(t *testing.T) {
	m := newTestModel(t, Options{Editor: editor.Config{Text: "alpha\nbeta"}})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlEnd})
	m = typeRunes(t, m, "x")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyF2})
	view := stripANSI(m.View())
	for _, want := range []string{"Changes since last save", "- beta", "+ betax"} {
		if !strings.Contains(view, want) {
			t.Fatalf("diff overlay missing %q:\n%s", want, view)
		}
	}
	if m.Editor().Focused() {
		t.Fatalf("editor must lose focus under an overlay")
	}

	// Keys do not reach the editor while the overlay is open.
	m = typeRunes(t, m, "y")
	if got := m.Editor().Content().PlainText(); got != "alpha\nbetax" {
		t.Fatalf("text=%q, want %q", got, "alpha\nbetax")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if strings.Contains(stripANSI(m.View()), "Changes since last save") {
		t.Fatalf("esc must close the overlay")
	}
	if !m.Editor().Focused() {
		t.Fatalf("editor must regain focus")
	}
}

func TestOverlay_HelpToggle(t *testing.T) {
	m := newTestModel(t, Options{})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyF1})
	view := stripANSI(m.View())
	for _, want := range []string{"Keys", "ctrl+s", "save", "ctrl+q", "quit"} {
		if !strings.Contains(view, want) {
			t.Fatalf("help overlay missing %q:\n%s", want, view)
		}
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyF2})
	if !strings.Contains(stripANSI(m.View()), "No changes") {
		t.Fatalf("f2 must switch to the diff overlay")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyF2})
	if strings.Contains(stripANSI(m.View()), "No changes") {
		t.Fatalf("f2 must close the diff overlay")
	}
}

func TestDebugReadout(t *testing.T) {
	m := newTestModel(t, Options{Debug: true, Editor: editor.Config{Text: "hi"}})
	if view := stripANSI(m.View()); !strings.Contains(view, `"blocks":[`) {
		t.Fatalf("compact readout missing blocks:\n%s", view)
	}

	m = newTestModel(t, Options{Debug: true, PrettyDebug: true, Editor: editor.Config{Text: "hi"}})
	found := false
	for _, line := range strings.Split(stripANSI(m.View()), "\n") {
		if strings.TrimSpace(line) == "{" {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("pretty readout must open the object on its own line:\n%s", stripANSI(m.View()))
	}
}

func TestLayout_Height(t *testing.T) {
	m := newTestModel(t, Options{})
	if got := len(strings.Split(m.View(), "\n")); got != 24 {
		t.Fatalf("view height=%d, want 24", got)
	}
}

func TestMouse_OffsetByHeader(t *testing.T) {
	m := newTestModel(t, Options{Editor: editor.Config{Text: "hello\nworld"}})
	k1 := m.Editor().Content().BlockAt(1).Key()

	m = update(t, m, tea.MouseMsg{X: 2, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got, want := m.Editor().State().Selection(), document.Collapsed(k1, 2); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
}
