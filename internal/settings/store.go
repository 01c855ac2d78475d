package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the name of the settings file inside the plugin directory.
const FileName = "settings.toml"

// Store persists Settings as TOML.
type Store struct {
	path string
}

// NewStore returns a Store backed by the file at path. The file does not
// need to exist yet.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (st *Store) Path() string {
	return st.path
}

// Load reads the settings file. A missing file yields [Defaults]; keys
// missing from the file keep their default values.
func (st *Store) Load() (Settings, error) {
	s := Defaults()
	data, err := os.ReadFile(st.path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("settings: reading %s: %w", st.path, err)
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return Defaults(), fmt.Errorf("settings: parsing %s: %w", st.path, err)
	}
	return s, nil
}

// Save writes s to disk, replacing the previous file atomically.
func (st *Store) Save(s Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("settings: encoding: %w", err)
	}
	dir := filepath.Dir(st.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("settings: creating %s: %w", dir, err)
	}

	f, err := os.CreateTemp(dir, ".settings-*.toml")
	if err != nil {
		return fmt.Errorf("settings: creating temp file: %w", err)
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("settings: writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("settings: closing temp file: %w", err)
	}
	if err := os.Rename(tmp, st.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("settings: replacing %s: %w", st.path, err)
	}
	return nil
}

// Update loads the settings, applies fn and saves the result if fn
// succeeds.
func (st *Store) Update(fn func(*Settings) error) (Settings, error) {
	s, err := st.Load()
	if err != nil {
		return s, err
	}
	if err := fn(&s); err != nil {
		return s, err
	}
	return s, st.Save(s)
}
