// Package components holds small render helpers shared by the editor views.
package components

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// HistoryMeter shows how much of the undo budget is in use.
type HistoryMeter struct {
	bar   progress.Model
	limit int
}

// NewHistoryMeter creates a meter for the given history limit.
func NewHistoryMeter(limit int) HistoryMeter {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 16
	return HistoryMeter{bar: bar, limit: limit}
}

// View renders the meter for the current undo depth.
func (h HistoryMeter) View(depth int) string {
	ratio := 0.0
	if h.limit > 0 {
		ratio = math.Min(1.0, float64(depth)/float64(h.limit))
	}
	label := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("undo %d/%d", depth, h.limit))
	return lipgloss.JoinHorizontal(lipgloss.Left, label, " ", h.bar.ViewAs(ratio))
}
