package vaultprint

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/porticus-lab/vaultprint/internal/themecolor"
)

// ThemeDocument is a browser tab with a theme stylesheet loaded, used to
// evaluate color tokens the way the theme resolves them. It implements
// [themecolor.Document]. Close it when done.
//
// The tab is closed when the context passed to [Printer.OpenThemeDocument]
// ends. Every call on the document is bounded by the printer timeout.
type ThemeDocument struct {
	tabCtx  context.Context
	cancel  context.CancelFunc
	cleanup func()
	timeout time.Duration
}

var _ themecolor.Document = (*ThemeDocument)(nil)

// OpenThemeDocument loads themeCSS into a new tab whose body starts in dark
// or light mode. Loading is bounded by ctx and the printer timeout.
func (p *Printer) OpenThemeDocument(ctx context.Context, themeCSS string, dark bool) (*ThemeDocument, error) {
	if err := p.checkClosed(); err != nil {
		return nil, err
	}

	mode := themecolor.Light
	if dark {
		mode = themecolor.Dark
	}
	target, cleanup, err := writeTempHTML(themeShell(themeCSS, mode))
	if err != nil {
		return nil, err
	}

	loadCtx, loadCancel := p.withTimeout(ctx)
	defer loadCancel()
	tabCtx, cancel := p.newTab(ctx)
	d := &ThemeDocument{tabCtx: tabCtx, cancel: cancel, cleanup: cleanup, timeout: p.cfg.timeout}

	// The first Run allocates the tab and must use the tab context itself,
	// so a stalled load is aborted by closing the tab.
	stop := context.AfterFunc(loadCtx, cancel)
	err = chromedp.Run(tabCtx,
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if !stop() && err == nil {
		err = loadCtx.Err()
	}
	if err != nil {
		if ctxErr := loadCtx.Err(); ctxErr != nil {
			err = ctxErr
		}
		d.Close()
		return nil, fmt.Errorf("vaultprint: loading theme: %w", err)
	}
	p.logger.Debug("theme document loaded", "mode", mode.String(), "css_bytes", len(themeCSS))
	return d, nil
}

// Close closes the tab.
func (d *ThemeDocument) Close() error {
	d.cancel()
	d.cleanup()
	return nil
}

// Mode reports the body's theme class.
func (d *ThemeDocument) Mode(ctx context.Context) (themecolor.Mode, error) {
	var dark bool
	if err := d.run(ctx, chromedp.Evaluate(`document.body.classList.contains("theme-dark")`, &dark)); err != nil {
		return themecolor.Light, fmt.Errorf("vaultprint: reading theme mode: %w", err)
	}
	if dark {
		return themecolor.Dark, nil
	}
	return themecolor.Light, nil
}

// SetMode replaces the body's theme class.
func (d *ThemeDocument) SetMode(ctx context.Context, m themecolor.Mode) error {
	script := fmt.Sprintf(`(function () {
  document.body.classList.remove("theme-dark", "theme-light");
  document.body.classList.add(%s);
  return true;
})()`, jsString(m.String()))
	var ok bool
	if err := d.run(ctx, chromedp.Evaluate(script, &ok)); err != nil {
		return fmt.Errorf("vaultprint: setting %s: %w", m, err)
	}
	return nil
}

// ComputedColor sets token as the color of a temporary element in the body
// and returns the browser's computed value.
func (d *ThemeDocument) ComputedColor(ctx context.Context, token string) (string, error) {
	script := fmt.Sprintf(`(function (token) {
  var el = document.createElement("div");
  document.body.appendChild(el);
  try {
    el.style.color = token;
    return window.getComputedStyle(el).color;
  } finally {
    document.body.removeChild(el);
  }
})(%s)`, jsString(token))
	var color string
	if err := d.run(ctx, chromedp.Evaluate(script, &color)); err != nil {
		return "", fmt.Errorf("vaultprint: computing %q: %w", token, err)
	}
	return color, nil
}

// run executes actions in the tab, giving up when ctx ends or the timeout
// passes. Giving up aborts the actions but leaves the tab open.
func (d *ThemeDocument) run(ctx context.Context, actions ...chromedp.Action) error {
	ctx, cancelTimeout := withTimeout(ctx, d.timeout)
	defer cancelTimeout()
	runCtx, cancel := context.WithCancel(d.tabCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}

func themeShell(css string, mode themecolor.Mode) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<style>\n")
	b.WriteString(strings.ReplaceAll(css, "</style", `<\/style`))
	b.WriteString("\n</style>\n</head>\n<body class=\"")
	b.WriteString(html.EscapeString(mode.String()))
	b.WriteString("\"></body>\n</html>\n")
	return b.String()
}

func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
