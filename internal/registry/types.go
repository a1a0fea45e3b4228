package registry

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/pagesmith/internal/domain/page"
)

// Category groups blocks in the component library.
type Category string

const (
	CategoryLayout      Category = "layout"
	CategoryContent     Category = "content"
	CategoryInteraction Category = "interaction"
	CategoryMarketing   Category = "marketing"
	CategoryNavigation  Category = "navigation"
)

// Color returns the Lipgloss color used for the category badge.
func (c Category) Color() lipgloss.Color {
	switch c {
	case CategoryLayout:
		return lipgloss.Color("63") // indigo
	case CategoryContent:
		return lipgloss.Color("42") // green
	case CategoryInteraction:
		return lipgloss.Color("39") // blue
	case CategoryMarketing:
		return lipgloss.Color("214") // orange
	case CategoryNavigation:
		return lipgloss.Color("245") // gray
	default:
		return lipgloss.Color("250")
	}
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory converts user input into a known Category.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Definition is the static metadata of one block type.
type Definition struct {
	Type         page.ComponentType `json:"type"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Category     Category           `json:"category"`
	Icon         string             `json:"icon"`
	IconFallback string             `json:"-"`

	defaults func() page.Props
}

// Defaults returns a fresh copy of the type's default props.
func (d Definition) Defaults() page.Props {
	return d.defaults()
}
