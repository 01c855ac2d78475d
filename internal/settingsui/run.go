package settingsui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"

	"github.com/porticus-lab/vaultprint/internal/vault"
)

// Run shows the settings form until the user quits. snippetsDir is watched
// so the print snippet status follows files created outside the form.
func Run(ctx context.Context, store Store, snippets Snippets, themeColors ThemeColorsFunc, snippetsDir string, logger hclog.Logger) error {
	changes, stop, err := watchSnippets(snippetsDir, logger)
	if err != nil {
		logger.Warn("snippet folder not watched", "dir", snippetsDir, "error", err)
	} else {
		defer stop()
	}

	m, err := newModel(ctx, store, snippets, themeColors, changes)
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// watchSnippets reports changes to the print snippet file. The returned
// channel holds at most one pending change.
func watchSnippets(dir string, logger hclog.Logger) (<-chan struct{}, func() error, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("settingsui: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("settingsui: creating watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, nil, fmt.Errorf("settingsui: watching %s: %w", dir, err)
	}

	want := vault.PrintSnippet + ".css"
	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != want {
					continue
				}
				logger.Debug("snippet changed", "op", event.Op.String())
				select {
				case changes <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watcher error", "error", err)
			}
		}
	}()
	return changes, watcher.Close, nil
}
