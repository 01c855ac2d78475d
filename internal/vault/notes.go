package vault

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Note is a markdown file read from the vault.
type Note struct {
	// Path is the file location relative to the vault root.
	Path string
	// Title is the file name without its extension.
	Title string
	Body  []byte
}

// IsNote reports whether path names a markdown note.
func IsNote(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".md")
}

// CollectNotes returns the note at path, or every note below path when it
// is a folder. Folder contents are sorted by path; hidden files and folders
// are skipped. Relative paths are resolved against the vault root.
func (v *Vault) CollectNotes(path string) ([]Note, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(v.root, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("vault: %w", err)
	}
	if !info.IsDir() {
		if !IsNote(path) {
			return nil, fmt.Errorf("vault: %s is not a markdown note", v.Rel(path))
		}
		n, err := v.readNote(path)
		if err != nil {
			return nil, err
		}
		return []Note{n}, nil
	}

	var paths []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != path && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && IsNote(p) {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("vault: walking %s: %w", v.Rel(path), err)
	}
	sort.Strings(paths)

	notes := make([]Note, 0, len(paths))
	for _, p := range paths {
		n, err := v.readNote(p)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, nil
}

func (v *Vault) readNote(path string) (Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Note{}, fmt.Errorf("vault: %w", err)
	}
	base := filepath.Base(path)
	return Note{
		Path:  v.Rel(path),
		Title: strings.TrimSuffix(base, filepath.Ext(base)),
		Body:  data,
	}, nil
}
