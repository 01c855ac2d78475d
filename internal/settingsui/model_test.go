package settingsui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	"github.com/porticus-lab/vaultprint/internal/settings"
)

type fakeStore struct {
	s       settings.Settings
	saves   int
	saveErr error
}

func (f *fakeStore) Load() (settings.Settings, error) { return f.s, nil }

func (f *fakeStore) Save(s settings.Settings) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.s = s
	return nil
}

type fakeSnippets struct {
	exists, enabled bool
}

func (f *fakeSnippets) HasSnippet(string) bool { return f.exists }

func (f *fakeSnippets) SnippetEnabled(string) (bool, error) { return f.enabled, nil }

func (f *fakeSnippets) SetSnippetEnabled(_ string, on bool) error {
	f.enabled = on
	return nil
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

func newTestModel(t *testing.T, store *fakeStore, snippets *fakeSnippets, themeColors ThemeColorsFunc) model {
	t.Helper()
	m, err := newModel(context.Background(), store, snippets, themeColors, nil)
	if err != nil {
		t.Fatalf("newModel: %v", err)
	}
	return m
}

func TestToggleSavesImmediately(t *testing.T) {
	store := &fakeStore{s: settings.Defaults()}
	m := newTestModel(t, store, &fakeSnippets{}, nil)

	m, _ = update(t, m, key("enter"))
	if store.saves != 1 {
		t.Fatalf("saves = %d, want 1", store.saves)
	}
	if store.s.PrintTitle {
		t.Error("printTitle not toggled off")
	}
	if m.s.PrintTitle {
		t.Error("model not updated")
	}
}

func TestEditTextField(t *testing.T) {
	store := &fakeStore{s: settings.Defaults()}
	m := newTestModel(t, store, &fakeSnippets{}, nil)

	m, _ = update(t, m, key("j"))
	if m.fields[m.cursor].Key != "fontSize" {
		t.Fatalf("cursor on %s, want fontSize", m.fields[m.cursor].Key)
	}
	m, _ = update(t, m, key("enter"))
	if !m.editing {
		t.Fatal("not editing after enter")
	}
	if m.input.Value() != "14px" {
		t.Errorf("input starts at %q, want current value", m.input.Value())
	}

	m.input.SetValue("16px")
	m, _ = update(t, m, key("enter"))
	if m.editing {
		t.Error("still editing after enter")
	}
	if store.s.FontSize != "16px" || store.saves != 1 {
		t.Errorf("fontSize = %q after %d saves", store.s.FontSize, store.saves)
	}
}

func TestEditCancel(t *testing.T) {
	store := &fakeStore{s: settings.Defaults()}
	m := newTestModel(t, store, &fakeSnippets{}, nil)

	m, _ = update(t, m, key("j"))
	m, _ = update(t, m, key("enter"))
	m.input.SetValue("99px")
	m, _ = update(t, m, key("esc"))
	if m.editing || store.saves != 0 || m.s.FontSize != "14px" {
		t.Errorf("cancel changed state: editing=%v saves=%d size=%q", m.editing, store.saves, m.s.FontSize)
	}
}

func TestSaveFailureKeepsOldValue(t *testing.T) {
	store := &fakeStore{s: settings.Defaults(), saveErr: errors.New("disk full")}
	m := newTestModel(t, store, &fakeSnippets{}, nil)

	m, _ = update(t, m, key("enter"))
	if !m.s.PrintTitle {
		t.Error("model changed although save failed")
	}
	if m.err == nil || !strings.Contains(m.View(), "disk full") {
		t.Error("save error not shown")
	}
}

func TestCursorBounds(t *testing.T) {
	m := newTestModel(t, &fakeStore{s: settings.Defaults()}, &fakeSnippets{}, nil)

	m, _ = update(t, m, key("k"))
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
	for range len(m.fields) + 3 {
		m, _ = update(t, m, key("j"))
	}
	if m.cursor != len(m.fields)-1 {
		t.Errorf("cursor = %d, want last", m.cursor)
	}
}

func TestThemeColorsCommand(t *testing.T) {
	store := &fakeStore{s: settings.Defaults()}
	var calls int
	fetch := func(context.Context) (settings.Settings, error) {
		calls++
		s := settings.Defaults()
		s.ApplyThemeColors(map[int]string{1: "#ff0000"})
		return s, nil
	}
	m := newTestModel(t, store, &fakeSnippets{}, fetch)

	m, cmd := update(t, m, key("t"))
	if cmd == nil || !m.busy {
		t.Fatal("t did not start fetching")
	}
	if _, again := update(t, m, key("t")); again != nil {
		t.Error("second fetch started while busy")
	}

	m, _ = update(t, m, cmd())
	if calls != 1 {
		t.Errorf("fetch called %d times", calls)
	}
	if m.busy {
		t.Error("still busy")
	}
	if m.s.H1Color != "#ff0000" || m.s.H2Color != settings.FallbackColor {
		t.Errorf("colors not refreshed: h1=%q h2=%q", m.s.H1Color, m.s.H2Color)
	}
}

func TestThemeColorsKeepEditsMadeWhileFetching(t *testing.T) {
	store := &fakeStore{s: settings.Defaults()}
	// The fetch loaded the store before the toggle below was saved.
	stale := store.s
	fetch := func(context.Context) (settings.Settings, error) {
		s := stale
		s.ApplyThemeColors(map[int]string{2: "#00aa00"})
		return s, nil
	}
	m := newTestModel(t, store, &fakeSnippets{}, fetch)

	m, cmd := update(t, m, key("t"))
	m, _ = update(t, m, key("enter"))
	if m.s.PrintTitle {
		t.Fatal("printTitle not toggled off")
	}

	m, _ = update(t, m, cmd())
	if m.s.PrintTitle || store.s.PrintTitle {
		t.Errorf("theme colors reverted printTitle: model=%v store=%v", m.s.PrintTitle, store.s.PrintTitle)
	}
	if m.s.H2Color != "#00aa00" || m.s.H1Color != settings.FallbackColor || !m.s.HasInitializedColors {
		t.Errorf("colors not merged: %+v", m.s)
	}
	if store.s.H2Color != "#00aa00" {
		t.Errorf("merged colors not saved: h2=%q", store.s.H2Color)
	}
}

func TestThemeColorsFailure(t *testing.T) {
	fetch := func(context.Context) (settings.Settings, error) {
		return settings.Settings{}, errors.New("no browser")
	}
	m := newTestModel(t, &fakeStore{s: settings.Defaults()}, &fakeSnippets{}, fetch)

	m, cmd := update(t, m, key("t"))
	m, _ = update(t, m, cmd())
	if m.err == nil {
		t.Error("failure not reported")
	}
	if m.s.H1Color != "black" {
		t.Errorf("settings replaced on failure: %q", m.s.H1Color)
	}
}

func TestSnippetToggle(t *testing.T) {
	snippets := &fakeSnippets{}
	m := newTestModel(t, &fakeStore{s: settings.Defaults()}, snippets, nil)

	m, _ = update(t, m, key("s"))
	if snippets.enabled {
		t.Error("missing snippet enabled")
	}
	if !strings.Contains(m.status, "print.css") {
		t.Errorf("status = %q", m.status)
	}

	snippets.exists = true
	m, _ = update(t, m, snippetChangedMsg{})
	if !m.snippet.exists {
		t.Fatal("snippet change not picked up")
	}
	m, _ = update(t, m, key("s"))
	if !snippets.enabled || !m.snippet.enabled {
		t.Error("snippet not enabled")
	}
	if !strings.Contains(m.View(), "enabled") {
		t.Error("view does not show enabled snippet")
	}
}

func TestViewShowsFields(t *testing.T) {
	s := settings.Defaults()
	s.H1Color = "#336699"
	m := newTestModel(t, &fakeStore{s: s}, &fakeSnippets{}, nil)

	out := m.View()
	for _, want := range []string{"Print note title", "[x]", "Heading 1 color", "#336699", "Treat horizontal lines as page breaks"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestWatchSnippets(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snippets")
	changes, stop, err := watchSnippets(dir, hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("watchSnippets: %v", err)
	}
	defer stop()

	if err := os.WriteFile(filepath.Join(dir, "other.css"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "print.css"), []byte(".obsidian-print {}"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported for print.css")
	}
}
