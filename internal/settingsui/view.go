package settingsui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/porticus-lab/vaultprint/internal/settings"
	"github.com/porticus-lab/vaultprint/internal/vault"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

const nameWidth = 38

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("vaultprint settings"))
	b.WriteString("\n\n")

	for i, f := range m.fields {
		cursor := "  "
		name := f.Name
		if i == m.cursor {
			cursor = "> "
			name = selectedStyle.Render(name)
		}
		b.WriteString(cursor)
		b.WriteString(name)
		b.WriteString(strings.Repeat(" ", max(1, nameWidth-lipgloss.Width(f.Name))))
		if m.editing && i == m.cursor {
			b.WriteString(m.input.View())
		} else {
			b.WriteString(m.renderValue(f))
		}
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(boxStyle.Render(m.fields[m.cursor].Description + "\n" + m.snippetLine()))
	b.WriteByte('\n')

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
	case m.status != "":
		b.WriteString(okStyle.Render(m.status))
	}
	b.WriteByte('\n')

	help := "↑/↓ move • enter edit/toggle • t theme colors • s toggle print.css • q quit"
	if m.editing {
		help = "enter save • esc cancel"
	}
	b.WriteString(mutedStyle.Render(help))
	return b.String()
}

func (m model) renderValue(f settings.Field) string {
	v := f.Get(&m.s)
	switch f.Kind {
	case settings.Toggle:
		if v == "true" {
			return "[x]"
		}
		return "[ ]"
	case settings.Color:
		return swatch(v) + " " + v
	}
	if v == "" {
		return mutedStyle.Render(f.Placeholder)
	}
	return v
}

// swatch renders a small block in color, or a blank when the value is not
// something the terminal can show.
func swatch(color string) string {
	if !strings.HasPrefix(color, "#") {
		return "  "
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(color)).Render("  ")
}

func (m model) snippetLine() string {
	name := vault.PrintSnippet + ".css"
	switch {
	case !m.snippet.exists:
		return mutedStyle.Render(fmt.Sprintf("Custom CSS: no %s snippet. Prefix selectors with .obsidian-print.", name))
	case m.snippet.enabled:
		return fmt.Sprintf("Custom CSS: %s %s", name, okStyle.Render("enabled"))
	default:
		return fmt.Sprintf("Custom CSS: %s %s", name, mutedStyle.Render("disabled"))
	}
}
