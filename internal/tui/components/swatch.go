package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Swatch renders one colored cell per key, in order. Keys missing from colors
// are skipped.
func Swatch(keys []string, colors map[string]string) string {
	var b strings.Builder
	for _, k := range keys {
		c, ok := colors[k]
		if !ok || c == "" {
			continue
		}
		b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(c)).Render("  "))
	}
	return b.String()
}
