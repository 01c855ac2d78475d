package vault

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestVault(t *testing.T) *Vault {
	t.Helper()
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ConfigDir), 0o755); err != nil {
		t.Fatal(err)
	}
	v, err := Open(root)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return v
}

func TestOpenNotVault(t *testing.T) {
	_, err := Open(t.TempDir())
	if !errors.Is(err, ErrNotVault) {
		t.Fatalf("Open error = %v, want ErrNotVault", err)
	}
}

func TestFindWalksUp(t *testing.T) {
	v := newTestVault(t)
	sub := filepath.Join(v.Root(), "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	found, err := Find(sub)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if found.Root() != v.Root() {
		t.Errorf("Find root = %s, want %s", found.Root(), v.Root())
	}
}

func TestAppearanceDefaults(t *testing.T) {
	v := newTestVault(t)
	a, err := v.Appearance()
	if err != nil {
		t.Fatalf("Appearance: %v", err)
	}
	if !a.Dark() {
		t.Error("missing appearance should be dark")
	}
	css, err := v.ThemeCSS()
	if err != nil || css != "" {
		t.Errorf("ThemeCSS = %q, %v; want empty", css, err)
	}
}

func TestThemeAndSnippets(t *testing.T) {
	v := newTestVault(t)
	writeFile(t, filepath.Join(v.Root(), ConfigDir, "appearance.json"),
		`{"cssTheme":"Minimal","theme":"moonstone","enabledCssSnippets":["wide"],"accentColor":"#ff0000"}`)
	writeFile(t, filepath.Join(v.Root(), ConfigDir, "themes", "Minimal", "theme.css"), `body{--h1-color:red}`)
	writeFile(t, v.SnippetPath(PrintSnippet), `.obsidian-print a { color: black }`)

	dark, err := v.Dark()
	if err != nil || dark {
		t.Errorf("Dark = %v, %v; want false", dark, err)
	}
	css, err := v.ThemeCSS()
	if err != nil || css != `body{--h1-color:red}` {
		t.Errorf("ThemeCSS = %q, %v", css, err)
	}
	if !v.HasSnippet(PrintSnippet) {
		t.Error("HasSnippet(print) = false")
	}
	if v.HasSnippet("missing") {
		t.Error("HasSnippet(missing) = true")
	}

	on, err := v.SnippetEnabled(PrintSnippet)
	if err != nil || on {
		t.Fatalf("SnippetEnabled = %v, %v; want false", on, err)
	}
	if err := v.SetSnippetEnabled(PrintSnippet, true); err != nil {
		t.Fatalf("SetSnippetEnabled: %v", err)
	}
	on, err = v.SnippetEnabled(PrintSnippet)
	if err != nil || !on {
		t.Fatalf("SnippetEnabled after enable = %v, %v", on, err)
	}

	data, err := os.ReadFile(filepath.Join(v.Root(), ConfigDir, "appearance.json"))
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if raw["accentColor"] != "#ff0000" || raw["cssTheme"] != "Minimal" {
		t.Errorf("unknown keys lost on save: %v", raw)
	}

	if err := v.SetSnippetEnabled(PrintSnippet, false); err != nil {
		t.Fatal(err)
	}
	a, err := v.Appearance()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.EnabledCSSSnippets, []string{"wide"}) {
		t.Errorf("EnabledCSSSnippets = %v, want [wide]", a.EnabledCSSSnippets)
	}

	snippet, err := v.SnippetCSS(PrintSnippet)
	if err != nil || snippet != `.obsidian-print a { color: black }` {
		t.Errorf("SnippetCSS = %q, %v", snippet, err)
	}
}

func TestPluginFiles(t *testing.T) {
	v := newTestVault(t)
	if _, err := v.ReadPluginFile("styles.css"); err == nil {
		t.Error("ReadPluginFile of missing file succeeded")
	}
	if err := v.WritePluginFile("styles.css", "h1{}"); err != nil {
		t.Fatalf("WritePluginFile: %v", err)
	}
	got, err := v.ReadPluginFile("styles.css")
	if err != nil || got != "h1{}" {
		t.Errorf("ReadPluginFile = %q, %v", got, err)
	}
}

func TestCollectNotesFile(t *testing.T) {
	v := newTestVault(t)
	writeFile(t, filepath.Join(v.Root(), "Daily", "Today.md"), "# hi")

	notes, err := v.CollectNotes("Daily/Today.md")
	if err != nil {
		t.Fatalf("CollectNotes: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("got %d notes, want 1", len(notes))
	}
	if notes[0].Title != "Today" || notes[0].Path != "Daily/Today.md" || string(notes[0].Body) != "# hi" {
		t.Errorf("note = %+v", notes[0])
	}
}

func TestCollectNotesFolder(t *testing.T) {
	v := newTestVault(t)
	writeFile(t, filepath.Join(v.Root(), "Project", "b.md"), "b")
	writeFile(t, filepath.Join(v.Root(), "Project", "a.md"), "a")
	writeFile(t, filepath.Join(v.Root(), "Project", "sub", "c.MD"), "c")
	writeFile(t, filepath.Join(v.Root(), "Project", "image.png"), "png")
	writeFile(t, filepath.Join(v.Root(), "Project", ".trash", "d.md"), "d")

	notes, err := v.CollectNotes(filepath.Join(v.Root(), "Project"))
	if err != nil {
		t.Fatalf("CollectNotes: %v", err)
	}
	var got []string
	for _, n := range notes {
		got = append(got, n.Path)
	}
	want := []string{"Project/a.md", "Project/b.md", "Project/sub/c.MD"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("paths = %v, want %v", got, want)
	}
}

func TestCollectNotesErrors(t *testing.T) {
	v := newTestVault(t)
	writeFile(t, filepath.Join(v.Root(), "pic.png"), "x")
	if _, err := v.CollectNotes("pic.png"); err == nil {
		t.Error("CollectNotes(pic.png) succeeded")
	}
	if _, err := v.CollectNotes("missing.md"); err == nil {
		t.Error("CollectNotes(missing.md) succeeded")
	}
}
