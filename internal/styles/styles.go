// Package styles builds the print stylesheet from settings, the plugin
// base stylesheet and the user's print snippet.
package styles

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/porticus-lab/vaultprint/internal/settings"
)

// ScopeClass prefixes every generated selector. Printed content must carry
// this class for the stylesheet to apply.
const ScopeClass = "obsidian-print"

// BaseFileName is the base stylesheet inside the plugin folder.
const BaseFileName = "styles.css"

// DefaultBase is the stylesheet installed into the plugin folder by
// "vaultprint init".
//
//go:embed default.css
var DefaultBase string

// StarterSnippet seeds a new print snippet.
//
//go:embed snippet.css
var StarterSnippet string

// Inputs are the stylesheet fragments combined by [Generate].
type Inputs struct {
	// Base is the plugin base stylesheet.
	Base string
	// Highlight styles syntax-highlighted code blocks.
	Highlight string
	// Snippet is the user's print snippet, if enabled.
	Snippet string
}

// Generate returns the print stylesheet: the body font size, a size and
// color rule per heading level, the optional page break on horizontal
// rules, then the base, highlight and snippet stylesheets. Values are
// copied verbatim.
func Generate(s settings.Settings, in Inputs) string {
	var b strings.Builder
	fmt.Fprintf(&b, ".%s { font-size: %s; }\n", ScopeClass, s.FontSize)
	for level := 1; level <= settings.Levels; level++ {
		fmt.Fprintf(&b, ".%s h%d { font-size: %s; color: %s; }\n",
			ScopeClass, level, s.HeadingSize(level), s.HeadingColor(level))
	}
	if s.HRPageBreaks {
		fmt.Fprintf(&b, ".%s hr { page-break-before: always; border: none; }\n", ScopeClass)
	}
	for _, part := range []string{in.Base, in.Highlight, in.Snippet} {
		if part == "" {
			continue
		}
		b.WriteString(part)
		if !strings.HasSuffix(part, "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
