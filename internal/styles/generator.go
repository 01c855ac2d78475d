package styles

import (
	"github.com/hashicorp/go-hclog"

	"github.com/porticus-lab/vaultprint/internal/logging"
	"github.com/porticus-lab/vaultprint/internal/settings"
)

// Notices raised while gathering inputs.
const (
	NoticeNoBase       = "Default styling could not be located."
	NoticeNoPluginPath = "Could not find the plugin path. No default print styles will be added."
)

// Source provides the host files the generator reads.
type Source interface {
	PluginDir() string
	ReadPluginFile(name string) (string, error)
	HasSnippet(name string) bool
	SnippetEnabled(name string) (bool, error)
	SnippetCSS(name string) (string, error)
}

// snippetName is the vault snippet read as user print styles.
const snippetName = "print"

// Generator gathers stylesheet inputs from a vault.
type Generator struct {
	src       Source
	notifier  logging.Notifier
	log       hclog.Logger
	highlight string
}

// GeneratorOption configures a [Generator].
type GeneratorOption func(*Generator)

// WithLogger sets the logger used for debug output.
func WithLogger(l hclog.Logger) GeneratorOption {
	return func(g *Generator) { g.log = l }
}

// WithHighlight sets the stylesheet for highlighted code blocks.
func WithHighlight(css string) GeneratorOption {
	return func(g *Generator) { g.highlight = css }
}

// NewGenerator returns a Generator reading from src and reporting problems
// to notifier.
func NewGenerator(src Source, notifier logging.Notifier, opts ...GeneratorOption) *Generator {
	g := &Generator{
		src:      src,
		notifier: notifier,
		log:      logging.Discard(),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate builds the stylesheet for s. It never fails: a missing base
// stylesheet raises a notice and generation continues without it.
func (g *Generator) Generate(s settings.Settings) string {
	return Generate(s, Inputs{
		Base:      g.base(),
		Highlight: g.highlight,
		Snippet:   g.userSnippet(),
	})
}

func (g *Generator) base() string {
	if g.src.PluginDir() == "" {
		g.notifier.Notice(NoticeNoPluginPath)
		return ""
	}
	css, err := g.src.ReadPluginFile(BaseFileName)
	if err != nil {
		g.log.Debug("base stylesheet unavailable", "error", err)
		g.notifier.Notice(NoticeNoBase)
		return ""
	}
	return css
}

func (g *Generator) userSnippet() string {
	if !g.src.HasSnippet(snippetName) {
		return ""
	}
	on, err := g.src.SnippetEnabled(snippetName)
	if err != nil {
		g.log.Warn("cannot read snippet state", "snippet", snippetName, "error", err)
		return ""
	}
	if !on {
		g.log.Debug("snippet present but disabled", "snippet", snippetName)
		return ""
	}
	css, err := g.src.SnippetCSS(snippetName)
	if err != nil {
		g.log.Warn("cannot read snippet", "snippet", snippetName, "error", err)
		return ""
	}
	return css
}
