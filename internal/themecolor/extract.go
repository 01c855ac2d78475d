// Package themecolor pulls heading colors out of a theme stylesheet and
// resolves them to hex values against a live document.
package themecolor

import (
	"regexp"
	"strconv"

	"github.com/porticus-lab/vaultprint/internal/cssparse"
)

// MaxMatches bounds how many heading color declarations are collected.
const MaxMatches = 6

// HeaderColorMap maps a heading level (1..6) to an unresolved color token:
// a literal, a var() reference or a keyword.
type HeaderColorMap map[int]string

var (
	customPropRe  = regexp.MustCompile(`^--h(\d)-color$`)
	headingSelRes = []*regexp.Regexp{
		regexp.MustCompile(`\.cm-header-(\d)$`),
		regexp.MustCompile(`(?:^|\s)\.markdown-preview-view\s+h(\d)$`),
	}
)

// Extract scans theme CSS for heading colors. Custom properties of the
// form --hN-color are preferred; selector rules for .cm-header-N or
// .markdown-preview-view hN are only consulted when no custom property
// matched. Levels the theme does not mention are absent from the result.
func Extract(css string) HeaderColorMap {
	rules := cssparse.Parse(css)
	if colors := extractCustomProperties(rules); len(colors) > 0 {
		return colors
	}
	return extractHeadingRules(rules)
}

func extractCustomProperties(rules []cssparse.Rule) HeaderColorMap {
	colors := make(HeaderColorMap)
	found := 0
	for _, r := range rules {
		for _, d := range r.Declarations {
			if found >= MaxMatches {
				return colors
			}
			m := customPropRe.FindStringSubmatch(d.Property)
			if m == nil || d.Value == "" {
				continue
			}
			if level := parseLevel(m[1]); level > 0 {
				colors[level] = d.Value
				found++
			}
		}
	}
	return colors
}

func extractHeadingRules(rules []cssparse.Rule) HeaderColorMap {
	colors := make(HeaderColorMap)
	found := 0
	for _, r := range rules {
		if found >= MaxMatches {
			break
		}
		level := headingLevel(r.Selectors)
		if level == 0 {
			continue
		}
		color, ok := r.Get("color")
		if !ok || color == "" {
			continue
		}
		colors[level] = color
		found++
	}
	return colors
}

// headingLevel returns the level named by the first selector in the list
// that targets a heading, or 0. Selectors reaching past the heading, such
// as ".markdown-preview-view h2 a", do not count.
func headingLevel(selectors []string) int {
	for _, sel := range selectors {
		for _, re := range headingSelRes {
			if m := re.FindStringSubmatch(sel); m != nil {
				return parseLevel(m[1])
			}
		}
	}
	return 0
}

func parseLevel(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > MaxMatches {
		return 0
	}
	return n
}
