package vaultprint

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Result is a printed PDF.
type Result struct {
	data []byte
}

// Bytes returns the PDF content.
func (r *Result) Bytes() []byte {
	return r.data
}

// Len returns the size of the PDF in bytes.
func (r *Result) Len() int {
	return len(r.data)
}

// WriteTo writes the PDF to w. It implements [io.WriterTo].
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.data)
	return int64(n), err
}

// WriteToFile writes the PDF to path, creating parent directories.
func (r *Result) WriteToFile(path string, perm os.FileMode) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("vaultprint: %w", err)
		}
	}
	if err := os.WriteFile(path, r.data, perm); err != nil {
		return fmt.Errorf("vaultprint: %w", err)
	}
	return nil
}
