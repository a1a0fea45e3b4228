// Package templates holds the starter pages offered by `pagesmith templates`.
package templates

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/pagesmith/internal/domain/page"
	"github.com/alexisbeaulieu97/pagesmith/internal/registry"
)

// ErrUnknownTemplate is returned for ids not in the gallery.
var ErrUnknownTemplate = errors.New("unknown template")

// Difficulty grades how much editing a template needs.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// Block is one component of a template: a type plus overrides merged onto
// the registry defaults.
type Block struct {
	Type  page.ComponentType
	Props map[string]any
}

// Template is a named starter page.
type Template struct {
	ID          string
	Name        string
	Description string
	Category    string
	Tags        []string
	Difficulty  Difficulty
	Blocks      []Block
}

// Types lists the block types in page order.
func (t Template) Types() []page.ComponentType {
	out := make([]page.ComponentType, len(t.Blocks))
	for i, b := range t.Blocks {
		out[i] = b.Type
	}
	return out
}

// Matches reports whether query appears in the name, description or a tag.
// An empty query matches everything.
func (t Template) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(t.Name), q) || strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// All returns the gallery in display order.
func All() []Template {
	out := make([]Template, len(gallery))
	copy(out, gallery)
	return out
}

// Lookup finds a template by id.
func Lookup(id string) (Template, bool) {
	for _, t := range gallery {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// Search filters the gallery by category ("" or "all" for any) and query.
func Search(category, query string) []Template {
	var out []Template
	for _, t := range gallery {
		if category != "" && category != "all" && t.Category != category {
			continue
		}
		if t.Matches(query) {
			out = append(out, t)
		}
	}
	return out
}

// Build materialises the template with fresh ids from newID. Every block is
// visible, ordered by position and carries the default animation.
func Build(id string, newID func() string) ([]page.PlacedComponent, error) {
	tpl, ok := Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}

	out := make([]page.PlacedComponent, 0, len(tpl.Blocks))
	for i, block := range tpl.Blocks {
		defaults, err := registry.DefaultProps(block.Type)
		if err != nil {
			return nil, fmt.Errorf("template %s block %d: %w", id, i, err)
		}
		props := defaults
		if len(block.Props) > 0 {
			props, err = registry.MergeProps(defaults, block.Props)
			if err != nil {
				return nil, fmt.Errorf("template %s block %d: %w", id, i, err)
			}
		}
		anim := page.DefaultAnimation()
		out = append(out, page.PlacedComponent{
			ID:        newID(),
			Type:      block.Type,
			Props:     props,
			Order:     i,
			IsVisible: true,
			Animation: &anim,
		})
	}
	return out, nil
}
