package page

import (
	"fmt"
	"reflect"
	"strings"
)

// ComponentType tags a block variant. The set is closed.
type ComponentType string

const (
	TypeHero        ComponentType = "hero"
	TypeAbout       ComponentType = "about"
	TypePortfolio   ComponentType = "portfolio"
	TypeContact     ComponentType = "contact"
	TypeTestimonial ComponentType = "testimonial"
	TypePricing     ComponentType = "pricing"
	TypeBlog        ComponentType = "blog"
	TypeFooter      ComponentType = "footer"
)

var allTypes = []ComponentType{
	TypeHero,
	TypeAbout,
	TypePortfolio,
	TypeContact,
	TypeTestimonial,
	TypePricing,
	TypeBlog,
	TypeFooter,
}

// Types returns every block type in library order.
func Types() []ComponentType {
	out := make([]ComponentType, len(allTypes))
	copy(out, allTypes)
	return out
}

// Valid reports whether t belongs to the closed set.
func (t ComponentType) Valid() bool {
	for _, known := range allTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (t ComponentType) String() string {
	return string(t)
}

// Label returns the capitalised tag used by drag previews.
func (t ComponentType) Label() string {
	if t == "" {
		return ""
	}
	s := string(t)
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseType converts user input into a ComponentType.
func ParseType(s string) (ComponentType, error) {
	t := ComponentType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", &UnknownTypeError{Type: s}
	}
	return t, nil
}

// UnknownTypeError reports a tag outside the closed set.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown component type %q", e.Type)
}

// Animation describes the entrance effect applied by renderers.
type Animation struct {
	Type     string  `json:"type" validate:"oneof=fadeIn slideIn bounce none"`
	Duration float64 `json:"duration" validate:"gte=0,lte=5"`
	Delay    float64 `json:"delay" validate:"gte=0,lte=2"`
}

// DefaultAnimation is applied to newly added blocks.
func DefaultAnimation() Animation {
	return Animation{Type: "fadeIn", Duration: 0.5, Delay: 0}
}

// PlacedComponent is one block instance on the page.
type PlacedComponent struct {
	ID        string
	Type      ComponentType
	Props     Props
	Order     int
	IsVisible bool
	Animation *Animation
}

// Summary returns a one-line description for outlines and logs.
func (c PlacedComponent) Summary() string {
	if c.Props == nil {
		return ""
	}
	return c.Props.Summary()
}

// Clone returns a deep copy.
func (c PlacedComponent) Clone() PlacedComponent {
	out := c
	if c.Props != nil {
		out.Props = c.Props.Clone()
	}
	if c.Animation != nil {
		anim := *c.Animation
		out.Animation = &anim
	}
	return out
}

// CloneList deep-copies a component list. A nil input yields an empty list.
func CloneList(in []PlacedComponent) []PlacedComponent {
	out := make([]PlacedComponent, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}

// Renumber rewrites Order so it matches list position.
func Renumber(list []PlacedComponent) {
	for i := range list {
		list[i].Order = i
	}
}

// Equal reports structural equality of two component lists.
func Equal(a, b []PlacedComponent) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Draft describes a block to add; the store assigns ID and Order.
type Draft struct {
	Type      ComponentType
	Props     Props
	Hidden    bool
	Animation *Animation
}

// Update lists the fields to merge into an existing block. Nil fields are left
// untouched. Props replaces the whole property record.
type Update struct {
	Props     Props
	IsVisible *bool
	Animation *Animation
}

// Empty reports whether the update carries no change.
func (u Update) Empty() bool {
	return u.Props == nil && u.IsVisible == nil && u.Animation == nil
}

// Visible is a convenience for building Update.IsVisible.
func Visible(v bool) *bool {
	return &v
}
