package render

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/porticus-lab/vaultprint/internal/styles"
)

// DefaultCodeStyle is a light chroma style suited to paper.
const DefaultCodeStyle = "github"

// CodeStyleNames lists the styles accepted by [WithCodeStyle].
func CodeStyleNames() []string {
	return chromastyles.Names()
}

// codeBlockRenderer renders fenced code blocks with chroma using CSS
// classes, so the colors live in the print stylesheet.
type codeBlockRenderer struct {
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

func newCodeBlockRenderer(styleName string) *codeBlockRenderer {
	return &codeBlockRenderer{
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
		style:     chromastyles.Get(styleName),
	}
}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)

	var code bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(source))
	}

	lexer := lexers.Get(strings.TrimSpace(string(n.Language(source))))
	if lexer == nil {
		lexer = lexers.Fallback
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code.String())
	if err != nil {
		return ast.WalkStop, err
	}
	if err := r.formatter.Format(w, r.style, iterator); err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkSkipChildren, nil
}

// css returns the stylesheet for the highlighted blocks, scoped to printed
// content.
func (r *codeBlockRenderer) css() (string, error) {
	var buf bytes.Buffer
	if err := r.formatter.WriteCSS(&buf, r.style); err != nil {
		return "", err
	}
	return scopeCSS(buf.String()), nil
}

// scopeCSS prefixes chroma's ".chroma" selectors with the print scope.
func scopeCSS(css string) string {
	return strings.ReplaceAll(css, ".chroma", "."+styles.ScopeClass+" .chroma")
}
