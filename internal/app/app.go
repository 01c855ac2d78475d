// Package app ties a vault, its plugin settings and the browser together
// into the operations the command line exposes.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/hashicorp/go-hclog"

	"github.com/porticus-lab/vaultprint"
	"github.com/porticus-lab/vaultprint/internal/logging"
	"github.com/porticus-lab/vaultprint/internal/preview"
	"github.com/porticus-lab/vaultprint/internal/render"
	"github.com/porticus-lab/vaultprint/internal/settings"
	"github.com/porticus-lab/vaultprint/internal/styles"
	"github.com/porticus-lab/vaultprint/internal/themecolor"
	"github.com/porticus-lab/vaultprint/internal/vault"
)

// App is a vault opened for printing.
type App struct {
	vault      *vault.Vault
	store      *settings.Store
	renderer   *render.Renderer
	notifier   logging.Notifier
	log        hclog.Logger
	newBrowser BrowserFactory

	mu      sync.Mutex
	browser Browser
	preview *preview.Manager
}

// Option configures an [App].
type Option func(*App)

// WithLogger sets the logger.
func WithLogger(l hclog.Logger) Option {
	return func(a *App) { a.log = l }
}

// WithNotifier sets where user-facing notices go.
func WithNotifier(n logging.Notifier) Option {
	return func(a *App) { a.notifier = n }
}

// WithBrowser sets how the browser is started. Defaults to
// [ChromeBrowser] with no options.
func WithBrowser(f BrowserFactory) Option {
	return func(a *App) { a.newBrowser = f }
}

// WithRenderer replaces the markdown renderer.
func WithRenderer(r *render.Renderer) Option {
	return func(a *App) { a.renderer = r }
}

// New returns an App for v. Settings live in the plugin folder.
func New(v *vault.Vault, opts ...Option) *App {
	a := &App{
		vault:      v,
		store:      settings.NewStore(v.SettingsPath(settings.FileName)),
		renderer:   render.New(),
		log:        logging.Discard(),
		newBrowser: ChromeBrowser(),
	}
	for _, o := range opts {
		o(a)
	}
	if a.notifier == nil {
		a.notifier = logging.LogNotifier{Logger: a.log, Out: os.Stderr}
	}
	return a
}

// Vault returns the opened vault.
func (a *App) Vault() *vault.Vault { return a.vault }

// Store returns the settings store.
func (a *App) Store() *settings.Store { return a.store }

// Close stops the browser if one was started and dismisses any preview.
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.preview != nil {
		a.preview.Close()
	}
	if a.browser == nil {
		return nil
	}
	err := a.browser.Close()
	a.browser = nil
	return err
}

func (a *App) ensureBrowser() (Browser, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.browser != nil {
		return a.browser, nil
	}
	a.log.Debug("starting browser")
	b, err := a.newBrowser()
	if err != nil {
		return nil, err
	}
	a.browser = b
	return b, nil
}

// Styles returns the print stylesheet for the current settings.
func (a *App) Styles() (string, error) {
	s, err := a.store.Load()
	if err != nil {
		return "", err
	}
	return a.styles(s)
}

func (a *App) styles(s settings.Settings) (string, error) {
	highlight, err := a.renderer.HighlightCSS()
	if err != nil {
		return "", err
	}
	g := styles.NewGenerator(a.vault, a.notifier,
		styles.WithLogger(a.log.Named("styles")),
		styles.WithHighlight(highlight),
	)
	return g.Generate(s), nil
}

// Printable is rendered content ready for the preview or the printer.
type Printable struct {
	Notes    []vault.Note
	Settings settings.Settings
	// Content carries the print scope class.
	Content *goquery.Selection
	CSS     string
}

// Document returns the standalone page for p.
func (p Printable) Document() (string, error) {
	return preview.Document(p.Content, p.CSS)
}

// RenderContent renders the note or folder at path. Heading colors are
// taken from the theme first if that has never been done for this vault.
func (a *App) RenderContent(ctx context.Context, path string) (Printable, error) {
	s, err := a.EnsureThemeColors(ctx)
	if err != nil {
		a.log.Warn("theme colors unavailable, using saved settings", "error", err)
	}

	notes, err := a.vault.CollectNotes(path)
	if err != nil {
		return Printable{}, err
	}
	if len(notes) == 0 {
		return Printable{}, fmt.Errorf("app: no notes under %s", a.vault.Rel(path))
	}
	a.log.Debug("rendering", "path", a.vault.Rel(path), "notes", len(notes))

	html, err := a.renderer.Notes(notes, render.Options{
		PrintTitle: s.PrintTitle,
		Combine:    s.CombineFolderNotes,
	})
	if err != nil {
		return Printable{}, err
	}
	content, err := preview.ParseContent(html)
	if err != nil {
		return Printable{}, err
	}
	css, err := a.styles(s)
	if err != nil {
		return Printable{}, err
	}
	return Printable{
		Notes:    notes,
		Settings: s,
		Content:  preview.PrepareForPrint(content),
		CSS:      css,
	}, nil
}

// Print renders path and prints it to PDF.
func (a *App) Print(ctx context.Context, path string, pg *vaultprint.PageConfig) (*vaultprint.Result, error) {
	p, err := a.RenderContent(ctx, path)
	if err != nil {
		return nil, err
	}
	return a.printDocument(ctx, p.Content, p.CSS, pg)
}

func (a *App) printDocument(ctx context.Context, content *goquery.Selection, css string, pg *vaultprint.PageConfig) (*vaultprint.Result, error) {
	doc, err := preview.Document(content, css)
	if err != nil {
		return nil, err
	}
	b, err := a.ensureBrowser()
	if err != nil {
		return nil, err
	}
	return b.Print(ctx, doc, pg)
}

// Preview opens the print preview for path over a workspace in the vault's
// theme mode. Printing from the preview hands the result to deliver.
// Opening a preview closes the one opened before it.
func (a *App) Preview(ctx context.Context, path string, opts preview.Options, pg *vaultprint.PageConfig, deliver func(*vaultprint.Result) error) (*preview.Preview, error) {
	p, err := a.RenderContent(ctx, path)
	if err != nil {
		return nil, err
	}
	m, err := a.previewManager(pg, deliver)
	if err != nil {
		return nil, err
	}
	return m.Open(p.Content, p.CSS, opts), nil
}

func (a *App) previewManager(pg *vaultprint.PageConfig, deliver func(*vaultprint.Result) error) (*preview.Manager, error) {
	dark, err := a.vault.Dark()
	if err != nil {
		return nil, err
	}
	printer := preview.PrinterFunc(func(ctx context.Context, content *goquery.Selection, css string) error {
		res, err := a.printDocument(ctx, content, css, pg)
		if err != nil {
			return err
		}
		if deliver == nil {
			return nil
		}
		return deliver(res)
	})

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.preview != nil {
		a.preview.Close()
	}
	a.preview = preview.NewManager(preview.NewWorkspace(dark), printer)
	return a.preview, nil
}

// ThemeColors returns the heading colors of the active theme as hex
// values, read in light mode. Levels the theme does not color are absent.
func (a *App) ThemeColors(ctx context.Context) (map[int]string, error) {
	css, err := a.vault.ThemeCSS()
	if err != nil {
		return nil, err
	}
	raw := themecolor.Extract(css)
	if len(raw) == 0 {
		a.log.Debug("theme declares no heading colors")
		return map[int]string{}, nil
	}
	dark, err := a.vault.Dark()
	if err != nil {
		return nil, err
	}

	if !needsDocument(raw) {
		return themecolor.NewResolver(nil).ResolveAll(ctx, raw, dark)
	}

	b, err := a.ensureBrowser()
	if err != nil {
		return nil, err
	}
	doc, closeDoc, err := b.ThemeDocument(ctx, css, dark)
	if err != nil {
		return nil, err
	}
	defer closeDoc()

	colors, err := themecolor.NewResolver(doc).ResolveAll(ctx, raw, dark)
	if err != nil {
		a.log.Warn("some heading colors could not be resolved", "error", err)
	}
	return colors, err
}

// needsDocument reports whether any token has to be evaluated by a browser.
func needsDocument(raw themecolor.HeaderColorMap) bool {
	for _, token := range raw {
		if !themecolor.IsHex(token) && !themecolor.IsRGB(token) {
			return true
		}
	}
	return false
}

// InitializeThemeColors stores the theme's heading colors in the settings.
// Levels without a color, or whose color failed to resolve, get black.
func (a *App) InitializeThemeColors(ctx context.Context) (settings.Settings, error) {
	colors, resolveErr := a.ThemeColors(ctx)
	if colors == nil {
		return settings.Settings{}, resolveErr
	}
	s, err := a.store.Update(func(s *settings.Settings) error {
		s.ApplyThemeColors(colors)
		return nil
	})
	if err != nil {
		return settings.Settings{}, errors.Join(resolveErr, err)
	}
	a.log.Info("heading colors taken from theme", "resolved", len(colors))
	return s, resolveErr
}

// EnsureThemeColors runs [App.InitializeThemeColors] once per vault and
// otherwise returns the saved settings.
func (a *App) EnsureThemeColors(ctx context.Context) (settings.Settings, error) {
	s, err := a.store.Load()
	if err != nil {
		return settings.Defaults(), err
	}
	if s.HasInitializedColors {
		return s, nil
	}
	updated, err := a.InitializeThemeColors(ctx)
	if updated.HasInitializedColors {
		return updated, err
	}
	return s, err
}
