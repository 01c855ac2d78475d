// Package preview builds the on-screen print preview: a styled copy of the
// content shown in an overlay on top of the host window, with controls to
// print or dismiss it.
package preview

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/porticus-lab/vaultprint/internal/styles"
)

const (
	darkClass  = "theme-dark"
	lightClass = "theme-light"
)

const workspaceShell = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>vaultprint</title></head>
<body><div class="app-container"></div></body>
</html>`

// Workspace is the host window the preview is layered over.
type Workspace struct {
	doc *goquery.Document
}

// NewWorkspace returns an empty window in dark or light mode.
func NewWorkspace(dark bool) *Workspace {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(workspaceShell))
	if err != nil {
		// The shell is a constant; parsing it cannot fail.
		panic(err)
	}
	w := &Workspace{doc: doc}
	w.setDark(dark)
	return w
}

// Dark reports whether the window body carries the dark theme class.
func (w *Workspace) Dark() bool {
	return w.body().HasClass(darkClass)
}

func (w *Workspace) setDark(dark bool) {
	if dark {
		w.body().RemoveClass(lightClass).AddClass(darkClass)
	} else {
		w.body().RemoveClass(darkClass).AddClass(lightClass)
	}
}

func (w *Workspace) body() *goquery.Selection {
	return w.doc.Find("body")
}

// Find runs a CSS selector against the window.
func (w *Workspace) Find(selector string) *goquery.Selection {
	return w.doc.Find(selector)
}

// HTML serialises the window.
func (w *Workspace) HTML() (string, error) {
	out, err := w.doc.Html()
	if err != nil {
		return "", fmt.Errorf("preview: serialising workspace: %w", err)
	}
	return out, nil
}

// ParseContent parses an HTML fragment into a single root element. Several
// top-level nodes are wrapped in a div.
func ParseContent(fragment string) (*goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("preview: parsing content: %w", err)
	}
	body := doc.Find("body")
	roots := 0
	body.Contents().Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "#text" && strings.TrimSpace(s.Text()) == "" {
			return
		}
		roots++
	})
	if roots != 1 || body.Children().Length() != 1 {
		body.WrapInnerHtml("<div></div>")
	}
	return body.Children().First(), nil
}

// PrepareForPrint returns a copy of content carrying the print scope class.
func PrepareForPrint(content *goquery.Selection) *goquery.Selection {
	return content.Clone().AddClass(styles.ScopeClass)
}

// Document wraps prepared content and its stylesheet in a standalone page,
// the form handed to the print pipeline.
func Document(content *goquery.Selection, css string) (string, error) {
	body, err := goquery.OuterHtml(content)
	if err != nil {
		return "", fmt.Errorf("preview: serialising content: %w", err)
	}
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<style>\n")
	b.WriteString(escapeStyle(css))
	b.WriteString("\n</style>\n</head>\n<body>\n")
	b.WriteString(body)
	b.WriteString("\n</body>\n</html>\n")
	return b.String(), nil
}

// escapeStyle keeps a stylesheet from closing its <style> element early.
func escapeStyle(css string) string {
	return strings.ReplaceAll(css, "</style", `<\/style`)
}
