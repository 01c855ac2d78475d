// Package render converts vault notes to the HTML that gets printed.
package render

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
	"gopkg.in/yaml.v3"

	"github.com/porticus-lab/vaultprint/internal/vault"
)

// Class names used in rendered output.
const (
	ContentClass   = "markdown-preview-view"
	NoteClass      = "print-note"
	TitleClass     = "print-title"
	PageBreakClass = "print-page-break"
)

const pageBreakStyle = "break-before: page; page-break-before: always"

// Options controls how several notes are laid out.
type Options struct {
	// PrintTitle adds each note's title as a leading heading.
	PrintTitle bool
	// Combine keeps notes flowing in one document; otherwise every note
	// after the first starts on a new page.
	Combine bool
}

// Renderer turns markdown notes into HTML.
type Renderer struct {
	md   goldmark.Markdown
	code *codeBlockRenderer
}

// Option configures a [Renderer].
type Option func(*rendererConfig)

type rendererConfig struct {
	codeStyle string
}

// WithCodeStyle selects the chroma style for code blocks.
func WithCodeStyle(name string) Option {
	return func(c *rendererConfig) { c.codeStyle = name }
}

// New returns a Renderer with GitHub-flavoured markdown, footnotes and
// highlighted code blocks.
func New(opts ...Option) *Renderer {
	cfg := rendererConfig{codeStyle: DefaultCodeStyle}
	for _, o := range opts {
		o(&cfg)
	}
	code := newCodeBlockRenderer(cfg.codeStyle)
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
			renderer.WithNodeRenderers(util.Prioritized(code, 100)),
		),
	)
	return &Renderer{md: md, code: code}
}

// HighlightCSS returns the stylesheet for highlighted code blocks.
func (r *Renderer) HighlightCSS() (string, error) {
	css, err := r.code.css()
	if err != nil {
		return "", fmt.Errorf("render: highlight stylesheet: %w", err)
	}
	return css, nil
}

// Rendered is a single converted note.
type Rendered struct {
	Path  string
	Title string
	HTML  string
}

// Note converts one note. A frontmatter "title" overrides the file name.
func (r *Renderer) Note(n vault.Note) (Rendered, error) {
	meta, body := SplitFrontmatter(n.Body)
	title := n.Title
	if t, ok := meta["title"].(string); ok && strings.TrimSpace(t) != "" {
		title = strings.TrimSpace(t)
	}

	var buf bytes.Buffer
	if err := r.md.Convert(ReplaceWikiLinks(body), &buf); err != nil {
		return Rendered{}, fmt.Errorf("render: %s: %w", n.Path, err)
	}
	return Rendered{Path: n.Path, Title: title, HTML: buf.String()}, nil
}

// Notes converts notes and lays them out in one content element.
func (r *Renderer) Notes(notes []vault.Note, o Options) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "<div class=%q>\n", ContentClass)
	for i, n := range notes {
		out, err := r.Note(n)
		if err != nil {
			return "", err
		}
		class, style := NoteClass, ""
		if i > 0 && !o.Combine {
			// Inline so the break holds without the plugin base stylesheet.
			class += " " + PageBreakClass
			style = ` style="` + pageBreakStyle + `"`
		}
		fmt.Fprintf(&b, "<div class=%q%s data-path=\"%s\">\n", class, style, html.EscapeString(out.Path))
		if o.PrintTitle {
			fmt.Fprintf(&b, "<h1 class=%q>%s</h1>\n", TitleClass, html.EscapeString(out.Title))
		}
		b.WriteString(out.HTML)
		b.WriteString("</div>\n")
	}
	b.WriteString("</div>\n")
	return b.String(), nil
}

// SplitFrontmatter separates a leading YAML frontmatter block from the note
// body. Invalid YAML is dropped from the body but yields no metadata.
func SplitFrontmatter(src []byte) (map[string]any, []byte) {
	text := string(src)
	text = strings.TrimPrefix(text, "\ufeff")
	if !strings.HasPrefix(text, "---\n") && !strings.HasPrefix(text, "---\r\n") {
		return nil, src
	}
	rest := text[strings.IndexByte(text, '\n')+1:]
	for offset := 0; offset < len(rest); {
		end := strings.IndexByte(rest[offset:], '\n')
		line := rest[offset:]
		next := len(rest)
		if end >= 0 {
			line = rest[offset : offset+end]
			next = offset + end + 1
		}
		if trimmed := strings.TrimRight(line, "\r"); trimmed == "---" || trimmed == "..." {
			var meta map[string]any
			if err := yaml.Unmarshal([]byte(rest[:offset]), &meta); err != nil {
				meta = nil
			}
			return meta, []byte(rest[next:])
		}
		offset = next
	}
	return nil, src
}

var (
	wikiLinkRe = regexp.MustCompile(`!?\[\[([^\]|#]*)(#[^\]|]*)?(?:\|([^\]]*))?\]\]`)
	fenceRe    = regexp.MustCompile("^\\s*(```|~~~)")
)

// ReplaceWikiLinks rewrites [[target#heading|alias]] links and ![[embeds]]
// as plain labelled spans. Fenced code is left alone.
func ReplaceWikiLinks(src []byte) []byte {
	if !bytes.Contains(src, []byte("[[")) {
		return src
	}
	lines := strings.SplitAfter(string(src), "\n")
	inFence := false
	for i, line := range lines {
		if fenceRe.MatchString(line) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		lines[i] = wikiLinkRe.ReplaceAllStringFunc(line, wikiLinkLabel)
	}
	return []byte(strings.Join(lines, ""))
}

func wikiLinkLabel(link string) string {
	m := wikiLinkRe.FindStringSubmatch(link)
	target := strings.TrimSpace(m[1])
	heading := strings.TrimSpace(strings.TrimPrefix(m[2], "#"))
	label := strings.TrimSpace(m[3])
	if label == "" {
		label = target
		if heading != "" {
			if label != "" {
				label += " > "
			}
			label += heading
		}
	}
	return `<span class="internal-link">` + html.EscapeString(label) + `</span>`
}
