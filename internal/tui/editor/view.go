package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/pagesmith/internal/dnd"
	"github.com/alexisbeaulieu97/pagesmith/internal/domain/page"
	"github.com/alexisbeaulieu97/pagesmith/internal/registry"
	"github.com/alexisbeaulieu97/pagesmith/internal/theme"
	"github.com/alexisbeaulieu97/pagesmith/internal/tui/components"
)

const libraryWidth = 30

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(errorBannerStyle.Render("✗ " + m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderLibrary(), " ", m.renderCanvas()))
	b.WriteString("\n")

	if m.mode == ModeEdit {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	state := m.builder.State()

	status := cleanStyle.Render("saved")
	if state.IsDirty {
		status = dirtyStyle.Render("● unsaved")
	}
	if state.LastSaved != nil && !state.IsDirty {
		status = cleanStyle.Render("saved " + state.LastSaved.Format("15:04"))
	}
	if m.saving {
		status = m.spinner.View() + " saving"
	}

	line := lipgloss.JoinHorizontal(lipgloss.Left,
		titleStyle.Render("pagesmith"),
		status,
		mutedStyle.Render(fmt.Sprintf("  %d blocks  redo %d  ", len(state.Components), state.RedoDepth)),
		m.meter.View(state.UndoDepth),
	)
	return headerStyle.Render(line)
}

func (m Model) renderLibrary() string {
	lines := []string{paneTitleStyle.Render("Library")}
	var last registry.Category
	for i, def := range m.library {
		if def.Category != last {
			last = def.Category
			lines = append(lines, lipgloss.NewStyle().Foreground(def.Category.Color()).Bold(true).Render(strings.ToUpper(def.Category.String())))
		}
		icon := def.Icon
		if !m.useUnicode {
			icon = def.IconFallback
		}
		entry := fmt.Sprintf("%s %s", icon, def.Name)
		if m.focus == PaneLibrary && i == m.libCursor {
			lines = append(lines, cursorStyle.Render("› "+entry))
			continue
		}
		lines = append(lines, "  "+entry)
	}

	style := paneStyle
	if m.focus == PaneLibrary {
		style = focusedPaneStyle
	}
	return style.Width(libraryWidth).Render(strings.Join(lines, "\n"))
}

func (m Model) renderCanvas() string {
	state := m.builder.State()
	lines := []string{paneTitleStyle.Render("Canvas")}

	item, dragging := m.dnd.Active()
	if len(state.Components) == 0 {
		msg := "Empty page. Tab to the library and press enter on a block."
		if dragging {
			msg = dropStyle.Render("▼ drop here")
		}
		lines = append(lines, emptyStateStyle.Render(msg))
	}

	for i, c := range state.Components {
		if dragging && item.Origin == dnd.OriginCanvas && i == m.cursor && c.ID != item.ID {
			lines = append(lines, dropStyle.Render("▶ move here"))
		}
		lines = append(lines, m.renderBlock(i, c, c.ID == state.SelectedID))
	}
	if dragging && item.Origin == dnd.OriginLibrary && len(state.Components) > 0 {
		lines = append(lines, dropStyle.Render("▼ drop at end"))
	}

	width := m.width - libraryWidth - 8
	if width < 30 {
		width = 30
	}
	style := paneStyle
	if m.focus == PaneCanvas {
		style = focusedPaneStyle
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

// renderBlock draws one outline row. Unknown types or missing props degrade
// to a placeholder row.
func (m Model) renderBlock(i int, c page.PlacedComponent, selected bool) string {
	def, known := registry.Lookup(c.Type)
	var text string
	switch {
	case !known:
		text = placeholderStyle.Render(fmt.Sprintf("Unknown component type: %s", c.Type))
	case c.Props == nil || c.Props.Type() != c.Type:
		text = placeholderStyle.Render("Missing properties for " + c.Type.Label())
	default:
		icon := def.Icon
		if !m.useUnicode {
			icon = def.IconFallback
		}
		badge := lipgloss.NewStyle().Foreground(def.Category.Color()).Render(icon + " " + c.Type.Label())
		text = badge
		if summary := c.Summary(); summary != "" {
			text += mutedStyle.Render(" · " + summary)
		}
	}
	if !c.IsVisible {
		text = hiddenStyle.Render("(hidden) ") + text
	}

	marker := " "
	if selected {
		marker = "●"
	}
	row := fmt.Sprintf("%s %2d. %s", marker, i+1, text)
	if m.focus == PaneCanvas && i == m.cursor {
		return cursorStyle.Render("›") + row
	}
	return " " + row
}

func (m Model) renderFooter() string {
	themeLine := fmt.Sprintf("theme %s %s", m.theme.CurrentTheme(),
		components.Swatch(theme.Keys[:5], m.theme.CurrentColors()))
	lines := []string{themeLine}
	if m.notice != "" {
		lines = append(lines, noticeStyle.Render(m.notice))
	}
	lines = append(lines, m.help.View(m.keys))
	return footerStyle.Render(strings.Join(lines, "\n"))
}
