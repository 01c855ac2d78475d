package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/porticus-lab/vaultprint/internal/vault"
)

// Terminal renders notes for a quick look in a terminal. Titles are added
// as level-one headings when printTitle is set and notes are separated by
// horizontal rules.
func Terminal(notes []vault.Note, width int, printTitle bool) (string, error) {
	if width < 40 {
		width = 40
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return "", fmt.Errorf("render: terminal renderer: %w", err)
	}

	var md strings.Builder
	for i, n := range notes {
		meta, body := SplitFrontmatter(n.Body)
		title := n.Title
		if t, ok := meta["title"].(string); ok && t != "" {
			title = t
		}
		if i > 0 {
			md.WriteString("\n\n---\n\n")
		}
		if printTitle {
			fmt.Fprintf(&md, "# %s\n\n", title)
		}
		md.Write(body)
	}

	out, err := r.Render(md.String())
	if err != nil {
		return "", fmt.Errorf("render: terminal: %w", err)
	}
	return out, nil
}
