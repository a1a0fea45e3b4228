// Package export renders a page as one self-contained HTML document.
package export

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alexisbeaulieu97/pagesmith/internal/domain/page"
	"github.com/alexisbeaulieu97/pagesmith/internal/theme"
)

const (
	DefaultTitle       = "My Personal Brand"
	DefaultDescription = "Built with pagesmith"
	DefaultLang        = "en"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var (
	parseOnce sync.Once
	parsed    *template.Template
	parseErr  error

	cssNamePattern  = regexp.MustCompile(`^--[a-z][a-z-]*$`)
	cssValuePattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
)

// Metadata is the document head.
type Metadata struct {
	Title       string
	Description string
	Lang        string
}

// Options tunes a render.
type Options struct {
	// IncludeHidden renders blocks whose IsVisible is false.
	IncludeHidden bool
	// Theme is emitted as custom properties on :root. Empty means the
	// built-in default palette.
	Theme []theme.Variable
}

type section struct {
	ID       string
	Type     string
	Anim     string
	Duration float64
	Delay    float64
	Body     template.HTML
}

type document struct {
	Meta     Metadata
	RootCSS  template.CSS
	Sections []section
}

// Render writes the document for components to w, in list order.
func Render(w io.Writer, components []page.PlacedComponent, meta Metadata, opts Options) error {
	tmpl, err := templates()
	if err != nil {
		return err
	}

	doc := document{
		Meta:    withDefaults(meta),
		RootCSS: rootCSS(opts.Theme),
	}

	for _, c := range components {
		if !c.IsVisible && !opts.IncludeHidden {
			continue
		}
		body, err := renderBlock(tmpl, c)
		if err != nil {
			return fmt.Errorf("render %s (%s): %w", c.ID, c.Type, err)
		}
		s := section{ID: c.ID, Type: string(c.Type), Body: body}
		if a := c.Animation; a != nil && a.Type != "" && a.Type != "none" {
			s.Anim = animationClass(a.Type)
			s.Duration = a.Duration
			s.Delay = a.Delay
		}
		doc.Sections = append(doc.Sections, s)
	}

	return tmpl.ExecuteTemplate(w, "document.gohtml", doc)
}

// RenderString is Render into a string.
func RenderString(components []page.PlacedComponent, meta Metadata, opts Options) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, components, meta, opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderBlock(tmpl *template.Template, c page.PlacedComponent) (template.HTML, error) {
	var buf bytes.Buffer
	switch {
	case !c.Type.Valid():
		if err := tmpl.ExecuteTemplate(&buf, "placeholder", "Unknown component type: "+string(c.Type)); err != nil {
			return "", err
		}
	case c.Props == nil || c.Props.Type() != c.Type:
		if err := tmpl.ExecuteTemplate(&buf, "placeholder", "Missing properties for "+c.Type.Label()); err != nil {
			return "", err
		}
	default:
		if err := tmpl.ExecuteTemplate(&buf, string(c.Type), c.Props); err != nil {
			return "", err
		}
	}
	// Output of an html/template execution is already escaped.
	return template.HTML(buf.String()), nil
}

func templates() (*template.Template, error) {
	parseOnce.Do(func() {
		parsed, parseErr = template.New("export").Funcs(funcMap()).ParseFS(templateFS, "templates/*.gohtml")
	})
	return parsed, parseErr
}

func withDefaults(meta Metadata) Metadata {
	if strings.TrimSpace(meta.Title) == "" {
		meta.Title = DefaultTitle
	}
	if strings.TrimSpace(meta.Description) == "" {
		meta.Description = DefaultDescription
	}
	if meta.Lang == "" {
		meta.Lang = DefaultLang
	}
	return meta
}

// rootCSS renders the palette declarations. Entries that are not a custom
// property name with a hex color are skipped.
func rootCSS(vars []theme.Variable) template.CSS {
	if len(vars) == 0 {
		vars = theme.NewStore().Variables()
	}
	var b strings.Builder
	for _, v := range vars {
		if !cssNamePattern.MatchString(v.Name) || !cssValuePattern.MatchString(v.Value) {
			continue
		}
		fmt.Fprintf(&b, "  %s: %s;\n", v.Name, v.Value)
	}
	return template.CSS(b.String())
}

func animationClass(kind string) string {
	switch kind {
	case "fadeIn":
		return "fade-in"
	case "slideIn":
		return "slide-in"
	case "bounce":
		return "bounce"
	default:
		return ""
	}
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"href": func(s string) any {
			// tel: is not on html/template's scheme allow-list.
			if strings.HasPrefix(s, "tel:") {
				return template.URL(s)
			}
			return s
		},
		"mailto": func(s string) string { return "mailto:" + s },
		"social": func(entry [2]string) string {
			if entry[0] == "email" {
				return "mailto:" + entry[1]
			}
			return entry[1]
		},
		"label": func(s string) string {
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
		"inputType": func(field string) string {
			switch field {
			case "email":
				return "email"
			case "phone":
				return "tel"
			default:
				return "text"
			}
		},
		"stars": func(n int) string {
			if n < 0 {
				n = 0
			}
			if n > 5 {
				n = 5
			}
			return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
		},
		"price": func(p float64) string { return strconv.FormatFloat(p, 'f', -1, 64) },
		"currency": func(code string) string {
			switch strings.ToUpper(code) {
			case "", "USD", "CAD", "AUD":
				return "$"
			case "EUR":
				return "€"
			case "GBP":
				return "£"
			case "JPY":
				return "¥"
			default:
				return strings.ToUpper(code) + " "
			}
		},
		"date": func(s string) string {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				return t.Format("Jan 2, 2006")
			}
			return s
		},
		"limit": func(posts []page.Post, n int) []page.Post {
			if n > 0 && len(posts) > n {
				return posts[:n]
			}
			return posts
		},
	}
}
