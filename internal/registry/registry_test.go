package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/pagesmith/internal/domain/page"
	pserrors "github.com/alexisbeaulieu97/pagesmith/pkg/errors"
)

func TestEveryTypeHasDefinition(t *testing.T) {
	for _, typ := range page.Types() {
		def, ok := Lookup(typ)
		require.True(t, ok, typ)
		assert.NotEmpty(t, def.Name)
		assert.NotEmpty(t, def.Icon)
		assert.Equal(t, typ, def.Defaults().Type())
	}
	assert.Len(t, All(), len(page.Types()))
}

func TestDefaultsPassValidation(t *testing.T) {
	for _, def := range All() {
		require.NoError(t, ValidateProps(def.Type, def.Defaults()), def.Type)
	}
}

func TestDefaultPropsReturnsFreshCopies(t *testing.T) {
	first, err := DefaultProps(page.TypeAbout)
	require.NoError(t, err)
	first.(*page.AboutProps).Skills[0].Name = "COBOL"
	first.(*page.AboutProps).Title = "Mutated"

	second, err := DefaultProps(page.TypeAbout)
	require.NoError(t, err)
	assert.Equal(t, "JavaScript", second.(*page.AboutProps).Skills[0].Name)
	assert.Equal(t, "About Me", second.(*page.AboutProps).Title)
}

func TestDefaultPropsUnknownType(t *testing.T) {
	_, err := DefaultProps("banner")
	require.ErrorIs(t, err, ErrUnknownType)
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []Category{
		CategoryLayout,
		CategoryContent,
		CategoryInteraction,
		CategoryMarketing,
		CategoryNavigation,
	}, Categories())

	content := ByCategory(CategoryContent)
	var types []page.ComponentType
	for _, def := range content {
		types = append(types, def.Type)
	}
	assert.Equal(t, []page.ComponentType{page.TypeAbout, page.TypePortfolio, page.TypeBlog}, types)
	assert.Empty(t, ByCategory("unknown"))

	cat, ok := ParseCategory("marketing")
	assert.True(t, ok)
	assert.Equal(t, CategoryMarketing, cat)
	_, ok = ParseCategory("sidebar")
	assert.False(t, ok)
}

func TestValidatePropsEnumeratesFields(t *testing.T) {
	props := &page.HeroProps{
		Title:          "",
		BackgroundType: "plaid",
		Alignment:      "center",
		CTAText:        "this call to action text is far too long to fit inside a button",
		SocialLinks:    page.SocialLinks{GitHub: "not a url"},
	}

	err := ValidateProps(page.TypeHero, props)
	var validationErr *pserrors.ValidationError
	require.ErrorAs(t, err, &validationErr)

	byField := map[string]pserrors.FieldError{}
	for _, f := range validationErr.Fields {
		byField[f.Field] = f
	}
	require.Len(t, byField, 4)
	assert.Equal(t, "required", byField["title"].Tag)
	assert.Equal(t, "is required", byField["title"].Message)
	assert.Contains(t, byField["backgroundType"].Message, "solid, gradient, image, video")
	assert.Equal(t, "must be at most 50 characters", byField["ctaText"].Message)
	assert.Equal(t, "url", byField["socialLinks.github"].Tag)
}

func TestValidatePropsNestedListPaths(t *testing.T) {
	props := MustDefaultProps(page.TypeAbout).(*page.AboutProps)
	props.Skills = append(props.Skills, page.Skill{Name: "Go", Level: 120})

	err := ValidateProps(page.TypeAbout, props)
	var validationErr *pserrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Fields, 1)
	assert.Equal(t, "skills[3].level", validationErr.Fields[0].Field)
	assert.Equal(t, "must be at most 100", validationErr.Fields[0].Message)
}

func TestValidatePropsTypeMismatch(t *testing.T) {
	err := ValidateProps(page.TypeHero, MustDefaultProps(page.TypeFooter))
	var validationErr *pserrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "type", validationErr.Field)

	err = ValidateProps(page.TypeHero, nil)
	require.ErrorAs(t, err, &validationErr)
}

func TestHrefAndAssetRules(t *testing.T) {
	tests := []struct {
		value string
		href  bool
		asset bool
	}{
		{"", true, true},
		{"#contact", true, false},
		{"/uploads/1_a.png", true, true},
		{"/uploads/../secret", true, false},
		{"https://example.com/a.png", true, true},
		{"mailto:me@example.com", true, false},
		{"ftp://example.com", false, false},
		{"javascript:alert(1)", false, false},
		{" #pad", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.href, isHref(tt.value))
			assert.Equal(t, tt.asset, isAssetRef(tt.value))
		})
	}
}
