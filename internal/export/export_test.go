package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/pagesmith/internal/domain/page"
	"github.com/alexisbeaulieu97/pagesmith/internal/registry"
	"github.com/alexisbeaulieu97/pagesmith/internal/theme"
)

func block(id string, t page.ComponentType, visible bool) page.PlacedComponent {
	anim := page.DefaultAnimation()
	return page.PlacedComponent{
		ID:        id,
		Type:      t,
		Props:     registry.MustDefaultProps(t),
		IsVisible: visible,
		Animation: &anim,
	}
}

func TestRenderKeepsListOrder(t *testing.T) {
	components := []page.PlacedComponent{
		block("c1", page.TypeFooter, true),
		block("c2", page.TypeHero, true),
		block("c3", page.TypeAbout, true),
	}

	html, err := RenderString(components, Metadata{}, Options{})
	require.NoError(t, err)

	footer := strings.Index(html, `id="c1"`)
	hero := strings.Index(html, `id="c2"`)
	about := strings.Index(html, `id="c3"`)
	require.True(t, footer >= 0 && hero >= 0 && about >= 0)
	assert.Less(t, footer, hero)
	assert.Less(t, hero, about)
}

func TestRenderEveryType(t *testing.T) {
	var components []page.PlacedComponent
	for i, typ := range page.Types() {
		components = append(components, block("b"+string(rune('a'+i)), typ, true))
	}

	html, err := RenderString(components, Metadata{}, Options{})
	require.NoError(t, err)
	for _, typ := range page.Types() {
		assert.Contains(t, html, "block-"+string(typ))
	}
	assert.NotContains(t, html, "ZgotmplZ")
}

func TestRenderHiddenBlocks(t *testing.T) {
	components := []page.PlacedComponent{
		block("shown", page.TypeHero, true),
		block("hidden", page.TypePricing, false),
	}

	html, err := RenderString(components, Metadata{}, Options{})
	require.NoError(t, err)
	assert.Contains(t, html, `id="shown"`)
	assert.NotContains(t, html, `id="hidden"`)

	html, err = RenderString(components, Metadata{}, Options{IncludeHidden: true})
	require.NoError(t, err)
	assert.Contains(t, html, `id="hidden"`)
}

func TestRenderUnknownTypePlaceholder(t *testing.T) {
	components := []page.PlacedComponent{{ID: "x", Type: "carousel", IsVisible: true}}

	html, err := RenderString(components, Metadata{}, Options{})
	require.NoError(t, err)
	assert.Contains(t, html, "Unknown component type: carousel")
}

func TestRenderMismatchedPropsPlaceholder(t *testing.T) {
	components := []page.PlacedComponent{{ID: "x", Type: page.TypeBlog, Props: &page.HeroProps{}, IsVisible: true}}

	html, err := RenderString(components, Metadata{}, Options{})
	require.NoError(t, err)
	assert.Contains(t, html, "Missing properties for")
}

func TestRenderEscapesContent(t *testing.T) {
	c := block("x", page.TypeHero, true)
	c.Props.(*page.HeroProps).Title = `<script>alert("x")</script>`

	html, err := RenderString([]page.PlacedComponent{c}, Metadata{Title: "A & B"}, Options{})
	require.NoError(t, err)
	assert.NotContains(t, html, `<script>alert`)
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "<title>A &amp; B</title>")
}

func TestRenderMetadataDefaults(t *testing.T) {
	html, err := RenderString(nil, Metadata{}, Options{})
	require.NoError(t, err)
	assert.Contains(t, html, "<title>"+DefaultTitle+"</title>")
	assert.Contains(t, html, `<html lang="en">`)
	assert.Contains(t, html, `content="`+DefaultDescription+`"`)
}

func TestRenderThemeVariables(t *testing.T) {
	vars := []theme.Variable{
		{Name: "--primary", Value: "#112233"},
		{Name: "--accent", Value: "red; } body { display:none"},
	}

	html, err := RenderString(nil, Metadata{}, Options{Theme: vars})
	require.NoError(t, err)
	assert.Contains(t, html, "--primary: #112233;")
	assert.NotContains(t, html, "display:none")

	html, err = RenderString(nil, Metadata{}, Options{})
	require.NoError(t, err)
	assert.Contains(t, html, "--primary: #6366F1;")
}

func TestRenderAnimation(t *testing.T) {
	c := block("x", page.TypeAbout, true)
	c.Animation = &page.Animation{Type: "slideIn", Duration: 1.5, Delay: 0.2}
	none := block("y", page.TypeAbout, true)
	none.Animation = &page.Animation{Type: "none"}

	html, err := RenderString([]page.PlacedComponent{c, none}, Metadata{}, Options{})
	require.NoError(t, err)
	assert.Contains(t, html, `class="block block-about slide-in"`)
	assert.Contains(t, html, "animation-duration: 1.5s")
	assert.Contains(t, html, `id="y" class="block block-about">`)
}
