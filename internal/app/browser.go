package app

import (
	"context"

	"github.com/porticus-lab/vaultprint"
	"github.com/porticus-lab/vaultprint/internal/themecolor"
)

// Browser is the part of the print pipeline that needs a live browser.
type Browser interface {
	Print(ctx context.Context, html string, pg *vaultprint.PageConfig) (*vaultprint.Result, error)
	// ThemeDocument loads themeCSS for color probing. close releases it.
	ThemeDocument(ctx context.Context, themeCSS string, dark bool) (doc themecolor.Document, close func() error, err error)
	Close() error
}

// BrowserFactory starts a Browser on first use.
type BrowserFactory func() (Browser, error)

// ChromeBrowser returns a factory that starts a headless Chrome with opts.
func ChromeBrowser(opts ...vaultprint.Option) BrowserFactory {
	return func() (Browser, error) {
		p, err := vaultprint.NewPrinter(opts...)
		if err != nil {
			return nil, err
		}
		return chromeBrowser{p: p}, nil
	}
}

type chromeBrowser struct {
	p *vaultprint.Printer
}

func (b chromeBrowser) Print(ctx context.Context, html string, pg *vaultprint.PageConfig) (*vaultprint.Result, error) {
	return b.p.PrintHTML(ctx, html, pg)
}

func (b chromeBrowser) ThemeDocument(ctx context.Context, themeCSS string, dark bool) (themecolor.Document, func() error, error) {
	doc, err := b.p.OpenThemeDocument(ctx, themeCSS, dark)
	if err != nil {
		return nil, nil, err
	}
	return doc, doc.Close, nil
}

func (b chromeBrowser) Close() error {
	return b.p.Close()
}
