package theme

import (
	"sort"
	"strings"
)

// Keys lists the palette slots in display order.
var Keys = []string{
	"primary",
	"secondary",
	"accent",
	"background",
	"foreground",
	"muted",
	"mutedForeground",
	"border",
	"input",
	"ring",
	"destructive",
	"success",
	"warning",
}

// DefaultTheme is active until the user picks another palette.
const DefaultTheme = "modern"

// Palette maps slot names to hex colors.
type Palette map[string]string

// Clone returns an independent copy.
func (p Palette) Clone() Palette {
	out := make(Palette, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge returns p overlaid with override.
func (p Palette) Merge(override Palette) Palette {
	out := p.Clone()
	for k, v := range override {
		out[k] = v
	}
	return out
}

// IsKey reports whether key names a palette slot.
func IsKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// CSSName converts a slot name to its custom property, e.g. mutedForeground
// becomes --muted-foreground.
func CSSName(key string) string {
	var b strings.Builder
	b.WriteString("--")
	for _, r := range key {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var builtins = map[string]Palette{
	"modern": {
		"primary":         "#6366F1",
		"secondary":       "#EC4899",
		"accent":          "#8B5CF6",
		"background":      "#FFFFFF",
		"foreground":      "#1F2937",
		"muted":           "#F9FAFB",
		"mutedForeground": "#6B7280",
		"border":          "#E5E7EB",
		"input":           "#FFFFFF",
		"ring":            "#6366F1",
		"destructive":     "#EF4444",
		"success":         "#10B981",
		"warning":         "#F59E0B",
	},
	"classic": {
		"primary":         "#1F2937",
		"secondary":       "#6B7280",
		"accent":          "#3B82F6",
		"background":      "#FFFFFF",
		"foreground":      "#111827",
		"muted":           "#F3F4F6",
		"mutedForeground": "#6B7280",
		"border":          "#D1D5DB",
		"input":           "#FFFFFF",
		"ring":            "#1F2937",
		"destructive":     "#DC2626",
		"success":         "#059669",
		"warning":         "#D97706",
	},
	"vibrant": {
		"primary":         "#F59E0B",
		"secondary":       "#EC4899",
		"accent":          "#8B5CF6",
		"background":      "#FFFFFF",
		"foreground":      "#1F2937",
		"muted":           "#FEF3C7",
		"mutedForeground": "#92400E",
		"border":          "#FDE68A",
		"input":           "#FFFFFF",
		"ring":            "#F59E0B",
		"destructive":     "#EF4444",
		"success":         "#10B981",
		"warning":         "#F59E0B",
	},
	"minimal": {
		"primary":         "#000000",
		"secondary":       "#6B7280",
		"accent":          "#3B82F6",
		"background":      "#FFFFFF",
		"foreground":      "#000000",
		"muted":           "#F9FAFB",
		"mutedForeground": "#6B7280",
		"border":          "#E5E7EB",
		"input":           "#FFFFFF",
		"ring":            "#000000",
		"destructive":     "#EF4444",
		"success":         "#10B981",
		"warning":         "#F59E0B",
	},
	"dark": {
		"primary":         "#6366F1",
		"secondary":       "#EC4899",
		"accent":          "#8B5CF6",
		"background":      "#0F172A",
		"foreground":      "#F8FAFC",
		"muted":           "#1E293B",
		"mutedForeground": "#64748B",
		"border":          "#334155",
		"input":           "#1E293B",
		"ring":            "#6366F1",
		"destructive":     "#EF4444",
		"success":         "#10B981",
		"warning":         "#F59E0B",
	},
}

// BuiltinNames returns the protected palette names in display order.
func BuiltinNames() []string {
	return []string{"modern", "classic", "vibrant", "minimal", "dark"}
}

// IsBuiltin reports whether name is a protected palette.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

// Builtin returns a copy of a built-in palette.
func Builtin(name string) (Palette, bool) {
	p, ok := builtins[name]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

func sortedNames(themes map[string]Palette) []string {
	names := BuiltinNames()
	var custom []string
	for name := range themes {
		if !IsBuiltin(name) {
			custom = append(custom, name)
		}
	}
	sort.Strings(custom)
	return append(names, custom...)
}
