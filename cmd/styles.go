package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/conneroisu/branddna/internal/color"
	"github.com/conneroisu/branddna/internal/errors"
)

// Terminal styles for human readable output.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8B5CF6"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#14B8A6")).
		Bold(true)

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E11D48")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717A"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#52525B")).
			Padding(0, 1)
)

// swatch renders a two cell block filled with an HSL color. Invalid
// colors render as a placeholder.
func swatch(hsl string) string {
	hex, err := color.ToHex(hsl)
	if err != nil {
		return dimStyle.Render("??")
	}

	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}

// passFail renders a WCAG verdict.
func passFail(ok bool) string {
	if ok {
		return okStyle.Render("pass")
	}

	return failStyle.Render("fail")
}

// renderFieldErrors lists diagnostics under a heading, one per line.
func renderFieldErrors(heading string, style lipgloss.Style, fe errors.FieldErrors) string {
	if len(fe) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(style.Render(fmt.Sprintf("%s (%d)", heading, len(fe))))
	b.WriteString("\n")
	for _, e := range fe {
		field := e.Field
		if field == "" {
			field = "(document)"
		}
		fmt.Fprintf(&b, "  %s %s %s\n", style.Render("•"), field, dimStyle.Render("["+string(e.Code)+"]"))
		fmt.Fprintf(&b, "    %s\n", e.Message)
	}

	return b.String()
}
