package registry

import (
	"errors"
	"fmt"

	"github.com/alexisbeaulieu97/pagesmith/internal/domain/page"
)

// ErrUnknownType is returned for a block type the registry does not define.
var ErrUnknownType = errors.New("unknown component type")

// Lookup returns the definition for t.
func Lookup(t page.ComponentType) (Definition, bool) {
	for _, def := range definitions {
		if def.Type == t {
			return def, true
		}
	}
	return Definition{}, false
}

// All returns every definition in library order.
func All() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// ByCategory returns the definitions belonging to category.
func ByCategory(category Category) []Definition {
	var out []Definition
	for _, def := range definitions {
		if def.Category == category {
			out = append(out, def)
		}
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func Categories() []Category {
	seen := make(map[Category]struct{}, len(definitions))
	var out []Category
	for _, def := range definitions {
		if _, ok := seen[def.Category]; ok {
			continue
		}
		seen[def.Category] = struct{}{}
		out = append(out, def.Category)
	}
	return out
}

// DefaultProps returns a fresh default property record for t. Callers may
// mutate the result freely.
func DefaultProps(t page.ComponentType) (page.Props, error) {
	def, ok := Lookup(t)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	return def.Defaults(), nil
}

// MustDefaultProps is DefaultProps for types known at compile time.
func MustDefaultProps(t page.ComponentType) page.Props {
	props, err := DefaultProps(t)
	if err != nil {
		panic(err)
	}
	return props
}
