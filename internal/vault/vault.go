// Package vault reads the host artefacts vaultprint depends on: the active
// theme, CSS snippets, the appearance settings and the notes themselves.
package vault

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const (
	// ConfigDir is the vault configuration folder.
	ConfigDir = ".obsidian"
	// PluginID names the plugin folder under ConfigDir/plugins.
	PluginID = "vaultprint"
	// PrintSnippet is the snippet users can enable for print-only styles.
	PrintSnippet = "print"
)

// ErrNotVault is returned by [Open] for a directory without a ConfigDir.
var ErrNotVault = errors.New("vault: not a vault (missing " + ConfigDir + " folder)")

// Appearance mirrors the parts of appearance.json vaultprint reads.
type Appearance struct {
	CSSTheme           string   `json:"cssTheme,omitempty"`
	Theme              string   `json:"theme,omitempty"`
	EnabledCSSSnippets []string `json:"enabledCssSnippets,omitempty"`

	// rest keeps keys vaultprint does not understand so that writing the
	// file back does not drop them.
	rest map[string]json.RawMessage
}

// Dark reports whether the base theme is the dark variant. The host names
// its dark base theme "obsidian" and its light one "moonstone"; an unset
// theme is dark.
func (a Appearance) Dark() bool {
	return a.Theme == "" || a.Theme == "obsidian"
}

// Vault is a note vault rooted at a directory.
type Vault struct {
	root string
}

// Open returns the vault at root.
func Open(root string) (*Vault, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("vault: resolving %s: %w", root, err)
	}
	info, err := os.Stat(filepath.Join(abs, ConfigDir))
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotVault, abs)
	}
	return &Vault{root: abs}, nil
}

// Find walks up from dir until it finds a vault.
func Find(dir string) (*Vault, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("vault: resolving %s: %w", dir, err)
	}
	for d := abs; ; d = filepath.Dir(d) {
		if v, err := Open(d); err == nil {
			return v, nil
		}
		if parent := filepath.Dir(d); parent == d {
			return nil, fmt.Errorf("%w: no vault above %s", ErrNotVault, abs)
		}
	}
}

// Root returns the vault directory.
func (v *Vault) Root() string {
	return v.root
}

func (v *Vault) configPath(elem ...string) string {
	return filepath.Join(append([]string{v.root, ConfigDir}, elem...)...)
}

// PluginDir returns the folder holding vaultprint's settings and base
// stylesheet.
func (v *Vault) PluginDir() string {
	return v.configPath("plugins", PluginID)
}

// SettingsPath returns the settings file location.
func (v *Vault) SettingsPath(name string) string {
	return filepath.Join(v.PluginDir(), name)
}

// ReadPluginFile reads a file from the plugin folder.
func (v *Vault) ReadPluginFile(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(v.PluginDir(), name))
	if err != nil {
		return "", fmt.Errorf("vault: %w", err)
	}
	return string(data), nil
}

// WritePluginFile writes a file into the plugin folder, creating it.
func (v *Vault) WritePluginFile(name, content string) error {
	if err := os.MkdirAll(v.PluginDir(), 0o755); err != nil {
		return fmt.Errorf("vault: %w", err)
	}
	if err := os.WriteFile(filepath.Join(v.PluginDir(), name), []byte(content), 0o644); err != nil {
		return fmt.Errorf("vault: %w", err)
	}
	return nil
}

// Appearance reads appearance.json. A missing file yields the zero value.
func (v *Vault) Appearance() (Appearance, error) {
	var a Appearance
	data, err := os.ReadFile(v.configPath("appearance.json"))
	if errors.Is(err, fs.ErrNotExist) {
		return a, nil
	}
	if err != nil {
		return a, fmt.Errorf("vault: reading appearance: %w", err)
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return a, fmt.Errorf("vault: parsing appearance: %w", err)
	}
	if err := json.Unmarshal(data, &a.rest); err != nil {
		return a, fmt.Errorf("vault: parsing appearance: %w", err)
	}
	return a, nil
}

func (v *Vault) saveAppearance(a Appearance) error {
	out := make(map[string]any, len(a.rest)+3)
	for k, raw := range a.rest {
		out[k] = raw
	}
	out["enabledCssSnippets"] = a.EnabledCSSSnippets
	if a.CSSTheme != "" {
		out["cssTheme"] = a.CSSTheme
	}
	if a.Theme != "" {
		out["theme"] = a.Theme
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("vault: encoding appearance: %w", err)
	}
	if err := os.WriteFile(v.configPath("appearance.json"), data, 0o644); err != nil {
		return fmt.Errorf("vault: writing appearance: %w", err)
	}
	return nil
}

// Dark reports whether the vault is displayed in dark mode.
func (v *Vault) Dark() (bool, error) {
	a, err := v.Appearance()
	if err != nil {
		return false, err
	}
	return a.Dark(), nil
}

// ThemeCSS returns the stylesheet of the active community theme, or "" when
// the default theme is in use or the theme file is missing.
func (v *Vault) ThemeCSS() (string, error) {
	a, err := v.Appearance()
	if err != nil {
		return "", err
	}
	if a.CSSTheme == "" {
		return "", nil
	}
	data, err := os.ReadFile(v.configPath("themes", a.CSSTheme, "theme.css"))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("vault: reading theme %q: %w", a.CSSTheme, err)
	}
	return string(data), nil
}

// SnippetsDir returns the folder holding CSS snippets.
func (v *Vault) SnippetsDir() string {
	return v.configPath("snippets")
}

// SnippetPath returns the file for the named snippet.
func (v *Vault) SnippetPath(name string) string {
	return filepath.Join(v.SnippetsDir(), name+".css")
}

// HasSnippet reports whether the named snippet file exists.
func (v *Vault) HasSnippet(name string) bool {
	info, err := os.Stat(v.SnippetPath(name))
	return err == nil && !info.IsDir()
}

// SnippetEnabled reports whether the named snippet is switched on.
func (v *Vault) SnippetEnabled(name string) (bool, error) {
	a, err := v.Appearance()
	if err != nil {
		return false, err
	}
	return slices.Contains(a.EnabledCSSSnippets, name), nil
}

// SetSnippetEnabled switches the named snippet on or off.
func (v *Vault) SetSnippetEnabled(name string, on bool) error {
	a, err := v.Appearance()
	if err != nil {
		return err
	}
	idx := slices.Index(a.EnabledCSSSnippets, name)
	switch {
	case on && idx < 0:
		a.EnabledCSSSnippets = append(a.EnabledCSSSnippets, name)
	case !on && idx >= 0:
		a.EnabledCSSSnippets = slices.Delete(a.EnabledCSSSnippets, idx, idx+1)
	default:
		return nil
	}
	return v.saveAppearance(a)
}

// SnippetCSS returns the contents of the named snippet.
func (v *Vault) SnippetCSS(name string) (string, error) {
	data, err := os.ReadFile(v.SnippetPath(name))
	if err != nil {
		return "", fmt.Errorf("vault: reading snippet %q: %w", name, err)
	}
	return string(data), nil
}

// Rel returns path relative to the vault root, using forward slashes.
func (v *Vault) Rel(path string) string {
	rel, err := filepath.Rel(v.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
