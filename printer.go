package vaultprint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/hashicorp/go-hclog"
)

// Printer renders print-ready HTML to PDF with a headless browser.
//
// The browser process is started once and shared by every print and theme
// lookup, each of which runs in its own tab. A Printer is safe for
// concurrent use. Call [Printer.Close] to stop the browser.
type Printer struct {
	cfg        printerConfig
	logger     hclog.Logger
	browserCtx context.Context
	cancel     context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// NewPrinter starts a headless browser configured by opts.
func NewPrinter(opts ...Option) (*Printer, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	allocOpts, err := allocatorOptions(&cfg)
	if err != nil {
		return nil, err
	}
	browserCtx, cancel, err := startBrowser(allocOpts, cfg.logger)
	if err != nil {
		return nil, err
	}
	cfg.logger.Debug("browser started")

	return &Printer{
		cfg:        cfg,
		logger:     cfg.logger,
		browserCtx: browserCtx,
		cancel:     cancel,
	}, nil
}

// Close stops the browser. It is safe to call more than once.
func (p *Printer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	p.cancel()
	p.logger.Debug("browser stopped")
	return nil
}

// PrintHTML prints an HTML document. A nil pg uses [DefaultPageConfig].
func (p *Printer) PrintHTML(ctx context.Context, html string, pg *PageConfig) (*Result, error) {
	if err := p.checkClosed(); err != nil {
		return nil, err
	}

	target, cleanup, err := writeTempHTML(html)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	return p.print(ctx, target, pg)
}

// PrintFile prints a local HTML file. Relative resources resolve against
// the file's directory.
func (p *Printer) PrintFile(ctx context.Context, path string, pg *PageConfig) (*Result, error) {
	if err := p.checkClosed(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("vaultprint: resolving path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("vaultprint: %w", err)
	}
	return p.print(ctx, "file://"+filepath.ToSlash(abs), pg)
}

func (p *Printer) print(ctx context.Context, targetURL string, pg *PageConfig) (*Result, error) {
	resolved := pg.resolved()

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	tabCtx, tabCancel := p.newTab(ctx)
	defer tabCancel()

	width, height := resolved.paperDimensions()
	top, right, bottom, left := resolved.marginInches()

	var buf []byte
	if err := chromedp.Run(tabCtx,
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPaperWidth(width).
				WithPaperHeight(height).
				WithMarginTop(top).
				WithMarginRight(right).
				WithMarginBottom(bottom).
				WithMarginLeft(left).
				WithScale(resolved.Scale).
				WithPrintBackground(resolved.PrintBackground).
				WithLandscape(resolved.Orientation == Landscape).
				WithPreferCSSPageSize(resolved.PreferCSSPageSize).
				Do(ctx)
			return err
		}),
	); err != nil {
		return nil, fmt.Errorf("vaultprint: printing: %w", err)
	}

	p.logger.Debug("printed", "url", targetURL, "bytes", len(buf))
	return &Result{data: buf}, nil
}

// newTab opens a tab that is closed when ctx is done or the returned
// cancel is called.
func (p *Printer) newTab(ctx context.Context) (context.Context, context.CancelFunc) {
	tabCtx, tabCancel := chromedp.NewContext(p.browserCtx)
	stop := context.AfterFunc(ctx, tabCancel)
	return tabCtx, func() {
		stop()
		tabCancel()
	}
}

func (p *Printer) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return withTimeout(ctx, p.cfg.timeout)
}

// withTimeout bounds ctx by d; zero or negative d leaves it unbounded.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}

func (p *Printer) checkClosed() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	return nil
}

// writeTempHTML stores html in a temporary file and returns its file:// URL.
func writeTempHTML(html string) (string, func(), error) {
	f, err := os.CreateTemp("", "vaultprint-*.html")
	if err != nil {
		return "", nil, fmt.Errorf("vaultprint: creating temp file: %w", err)
	}
	name := f.Name()
	cleanup := func() { os.Remove(name) }

	if _, err := f.WriteString(html); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("vaultprint: writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("vaultprint: closing temp file: %w", err)
	}

	abs, err := filepath.Abs(name)
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("vaultprint: resolving path: %w", err)
	}
	return "file://" + filepath.ToSlash(abs), cleanup, nil
}

// PrintHTML prints html with a temporary [Printer]. For repeated prints,
// keep a Printer from [NewPrinter] to reuse the browser.
func PrintHTML(ctx context.Context, html string, pg *PageConfig, opts ...Option) (*Result, error) {
	p, err := NewPrinter(opts...)
	if err != nil {
		return nil, err
	}
	defer p.Close()
	return p.PrintHTML(ctx, html, pg)
}
