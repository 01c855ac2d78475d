// Package cssparse turns a stylesheet into a flat list of style rules,
// each a set of selectors with their declarations.
//
// It is a tolerant tokenizer, not a validating parser: malformed input is
// recovered from on a best-effort basis and never causes a panic.
package cssparse

import (
	"regexp"
	"strings"
)

// Declaration is a single "property: value" pair. Property names are
// lower-cased except for custom properties, which are case-sensitive.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Rule is a style rule. Rules nested in conditional at-rules (@media,
// @supports, ...) are flattened into the top-level list, and nested style
// rules carry their fully expanded selectors.
type Rule struct {
	Selectors    []string
	Declarations []Declaration
}

// Get returns the value of the last declaration of property in the rule.
func (r Rule) Get(property string) (string, bool) {
	for i := len(r.Declarations) - 1; i >= 0; i-- {
		if r.Declarations[i].Property == property {
			return r.Declarations[i].Value, true
		}
	}
	return "", false
}

// Parse returns the style rules of css in document order.
func Parse(css string) []Rule {
	return parseRules(stripComments(css), nil)
}

// item is either a statement ending in ';' or a block with a prelude.
type item struct {
	prelude string
	body    string
	block   bool
}

func parseRules(src string, parents []string) []Rule {
	var rules []Rule
	for _, it := range scan(src) {
		if !it.block {
			continue
		}
		if strings.HasPrefix(it.prelude, "@") {
			// Only at-rules that wrap other rules are descended into;
			// @font-face, @page and friends hold plain declarations.
			if hasBlock(it.body) {
				rules = append(rules, parseRules(it.body, parents)...)
			}
			continue
		}
		rules = append(rules, parseStyleRule(it.prelude, it.body, parents)...)
	}
	return rules
}

func parseStyleRule(prelude, body string, parents []string) []Rule {
	selectors := combineSelectors(parents, splitSelectors(prelude))
	if len(selectors) == 0 {
		return nil
	}

	rule := Rule{Selectors: selectors}
	var nested []item
	for _, it := range scan(body) {
		if it.block {
			nested = append(nested, it)
			continue
		}
		if d, ok := parseDeclaration(it.prelude); ok {
			rule.Declarations = append(rule.Declarations, d)
		}
	}

	var rules []Rule
	if len(rule.Declarations) > 0 {
		rules = append(rules, rule)
	}
	for _, it := range nested {
		if strings.HasPrefix(it.prelude, "@") {
			// Conditional group inside a style rule applies to the parent
			// selectors; its body is parsed as if it were the rule body.
			rules = append(rules, parseStyleRule("&", it.body, selectors)...)
			continue
		}
		rules = append(rules, parseStyleRule(it.prelude, it.body, selectors)...)
	}
	return rules
}

var importantRe = regexp.MustCompile(`(?i)\s*!\s*important\s*$`)

func parseDeclaration(stmt string) (Declaration, bool) {
	stmt = strings.TrimSpace(stmt)
	idx := strings.IndexByte(stmt, ':')
	if idx <= 0 {
		return Declaration{}, false
	}
	prop := strings.TrimSpace(stmt[:idx])
	if prop == "" || strings.ContainsAny(prop, " \t\n") {
		return Declaration{}, false
	}
	if !strings.HasPrefix(prop, "--") {
		prop = strings.ToLower(prop)
	}

	d := Declaration{Property: prop, Value: strings.TrimSpace(stmt[idx+1:])}
	if loc := importantRe.FindStringIndex(d.Value); loc != nil {
		d.Value = strings.TrimSpace(d.Value[:loc[0]])
		d.Important = true
	}
	return d, true
}

// splitSelectors splits a selector list on top-level commas and normalises
// whitespace inside each selector.
func splitSelectors(prelude string) []string {
	var out []string
	depth, start := 0, 0
	add := func(s string) {
		if s = strings.Join(strings.Fields(s), " "); s != "" {
			out = append(out, s)
		}
	}
	for i := 0; i < len(prelude); i++ {
		switch prelude[i] {
		case '"', '\'':
			i = skipString(prelude, i)
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				add(prelude[start:i])
				start = i + 1
			}
		}
	}
	add(prelude[start:])
	return out
}

func combineSelectors(parents, children []string) []string {
	if len(parents) == 0 {
		return children
	}
	out := make([]string, 0, len(parents)*len(children))
	for _, p := range parents {
		for _, c := range children {
			if strings.Contains(c, "&") {
				out = append(out, strings.ReplaceAll(c, "&", p))
			} else {
				out = append(out, p+" "+c)
			}
		}
	}
	return out
}

// scan splits src into top-level statements and blocks.
func scan(src string) []item {
	var items []item
	start, parens := 0, 0
	statement := func(end int) {
		if s := strings.TrimSpace(src[start:end]); s != "" {
			items = append(items, item{prelude: s})
		}
	}
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '"', '\'':
			i = skipString(src, i)
		case '(':
			parens++
		case ')':
			if parens > 0 {
				parens--
			}
		case ';':
			if parens == 0 {
				statement(i)
				start = i + 1
			}
		case '{':
			end := matchBrace(src, i)
			body := src[i+1:]
			if end < len(src) {
				body = src[i+1 : end]
			}
			items = append(items, item{
				prelude: strings.TrimSpace(src[start:i]),
				body:    body,
				block:   true,
			})
			i, start, parens = end, end+1, 0
		case '}':
			// Stray closing brace: drop whatever preceded it.
			start = i + 1
			parens = 0
		}
	}
	if start < len(src) {
		statement(len(src))
	}
	return items
}

// matchBrace returns the index of the '}' matching the '{' at open, or
// len(src) if the block is never closed.
func matchBrace(src string, open int) int {
	depth := 0
	for i := open; i < len(src); i++ {
		switch src[i] {
		case '"', '\'':
			i = skipString(src, i)
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(src)
}

func hasBlock(src string) bool {
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '"', '\'':
			i = skipString(src, i)
		case '{':
			return true
		}
	}
	return false
}

// skipString returns the index of the quote closing the string that opens
// at i, or the last index of src if it is unterminated.
func skipString(src string, i int) int {
	quote := src[i]
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case quote, '\n':
			return j
		}
	}
	return len(src) - 1
}

func stripComments(src string) string {
	if !strings.Contains(src, "/*") {
		return src
	}
	var b strings.Builder
	b.Grow(len(src))
	for i := 0; i < len(src); i++ {
		switch {
		case src[i] == '"' || src[i] == '\'':
			end := skipString(src, i)
			b.WriteString(src[i : end+1])
			i = end
		case src[i] == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return b.String()
			}
			b.WriteByte(' ')
			i += end + 3
		default:
			b.WriteByte(src[i])
		}
	}
	return b.String()
}
