// Package settingsui is the interactive settings form.
package settingsui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/porticus-lab/vaultprint/internal/settings"
	"github.com/porticus-lab/vaultprint/internal/vault"
)

// Store loads and persists settings.
type Store interface {
	Load() (settings.Settings, error)
	Save(settings.Settings) error
}

// Snippets reports and switches the print snippet.
type Snippets interface {
	HasSnippet(name string) bool
	SnippetEnabled(name string) (bool, error)
	SetSnippetEnabled(name string, on bool) error
}

// ThemeColorsFunc takes heading colors from the theme and returns the
// saved result.
type ThemeColorsFunc func(ctx context.Context) (settings.Settings, error)

type themeColorsMsg struct {
	s   settings.Settings
	err error
}

type snippetChangedMsg struct{}

type snippetState struct {
	exists  bool
	enabled bool
}

type model struct {
	ctx         context.Context
	store       Store
	snippets    Snippets
	themeColors ThemeColorsFunc
	changes     <-chan struct{}

	s       settings.Settings
	fields  []settings.Field
	cursor  int
	editing bool
	input   textinput.Model
	snippet snippetState
	busy    bool
	status  string
	err     error
	width   int
}

func newModel(ctx context.Context, store Store, snippets Snippets, themeColors ThemeColorsFunc, changes <-chan struct{}) (model, error) {
	s, err := store.Load()
	if err != nil {
		return model{}, err
	}
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 24

	m := model{
		ctx:         ctx,
		store:       store,
		snippets:    snippets,
		themeColors: themeColors,
		changes:     changes,
		s:           s,
		fields:      settings.Fields(),
		input:       ti,
	}
	m.refreshSnippet()
	return m, nil
}

func (m model) Init() tea.Cmd {
	return waitForChange(m.changes)
}

// waitForChange turns the next snippet folder event into a message.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return snippetChangedMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case snippetChangedMsg:
		m.refreshSnippet()
		return m, waitForChange(m.changes)
	case themeColorsMsg:
		m.busy = false
		if msg.err != nil {
			m.fail(msg.err)
			return m, nil
		}
		m.mergeThemeColors(msg.s)
		return m, nil
	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.fields) - 1
	case "enter", " ":
		f := m.fields[m.cursor]
		if f.Kind == settings.Toggle {
			on := f.Get(&m.s) == "true"
			m.apply(f, fmt.Sprint(!on))
			return m, nil
		}
		m.editing = true
		m.input.SetValue(f.Get(&m.s))
		m.input.Placeholder = f.Placeholder
		m.input.CursorEnd()
		return m, m.input.Focus()
	case "t":
		if m.busy || m.themeColors == nil {
			return m, nil
		}
		m.busy = true
		m.notify("Reading theme colors...")
		return m, m.fetchThemeColors()
	case "s":
		m.toggleSnippet()
	}
	return m, nil
}

func (m model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil
	case "enter":
		m.editing = false
		m.input.Blur()
		m.apply(m.fields[m.cursor], m.input.Value())
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// apply sets a field and saves straight away.
func (m *model) apply(f settings.Field, raw string) {
	next := m.s
	if err := f.Set(&next, raw); err != nil {
		m.fail(err)
		return
	}
	if err := m.store.Save(next); err != nil {
		m.fail(err)
		return
	}
	m.s = next
	m.notify(f.Name + " saved.")
}

// mergeThemeColors takes only the heading colors from loaded, which may
// predate edits made while the theme was being read.
func (m *model) mergeThemeColors(loaded settings.Settings) {
	if !loaded.HasInitializedColors {
		return
	}
	next := m.s
	next.ApplyThemeColors(loaded.HeadingColors())
	if err := m.store.Save(next); err != nil {
		m.fail(err)
		return
	}
	m.s = next
	m.notify("Heading colors taken from the theme.")
}

func (m model) fetchThemeColors() tea.Cmd {
	ctx, fn := m.ctx, m.themeColors
	return func() tea.Msg {
		s, err := fn(ctx)
		return themeColorsMsg{s: s, err: err}
	}
}

func (m *model) toggleSnippet() {
	if !m.snippet.exists {
		m.notify("Create " + vault.PrintSnippet + ".css in the snippets folder first (vaultprint init).")
		return
	}
	on := !m.snippet.enabled
	if err := m.snippets.SetSnippetEnabled(vault.PrintSnippet, on); err != nil {
		m.fail(err)
		return
	}
	m.refreshSnippet()
	if on {
		m.notify("Custom print styles enabled.")
	} else {
		m.notify("Custom print styles disabled.")
	}
}

func (m *model) refreshSnippet() {
	m.snippet = snippetState{exists: m.snippets.HasSnippet(vault.PrintSnippet)}
	if !m.snippet.exists {
		return
	}
	on, err := m.snippets.SnippetEnabled(vault.PrintSnippet)
	if err != nil {
		m.fail(err)
		return
	}
	m.snippet.enabled = on
}

func (m *model) notify(msg string) {
	m.status = msg
	m.err = nil
}

func (m *model) fail(err error) {
	m.status = ""
	m.err = err
}
