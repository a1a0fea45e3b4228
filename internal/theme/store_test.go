package theme

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/pagesmith/internal/infrastructure/storage"
	pserrors "github.com/alexisbeaulieu97/pagesmith/pkg/errors"
)

type recordingSink map[string]string

func (r recordingSink) SetVariable(name, value string) { r[name] = value }

func TestBuiltinsAreComplete(t *testing.T) {
	for _, name := range BuiltinNames() {
		p, ok := Builtin(name)
		require.True(t, ok, name)
		assert.Len(t, p, len(Keys), name)
		for _, key := range Keys {
			assert.NotEmpty(t, p[key], "%s.%s", name, key)
		}
	}
}

func TestCSSName(t *testing.T) {
	assert.Equal(t, "--primary", CSSName("primary"))
	assert.Equal(t, "--muted-foreground", CSSName("mutedForeground"))
}

func TestSetTheme(t *testing.T) {
	s := NewStore()
	assert.Equal(t, "modern", s.CurrentTheme())

	require.NoError(t, s.SetTheme("dark"))
	assert.Equal(t, "#0F172A", s.CurrentColors()["background"])

	require.ErrorIs(t, s.SetTheme("neon"), ErrUnknownTheme)
	assert.Equal(t, "dark", s.CurrentTheme())
}

func TestCustomColorsOverlayActivePalette(t *testing.T) {
	sink := recordingSink{}
	s := NewStore(WithSink(sink))

	require.NoError(t, s.UpdateCustomColor("primary", "#112233"))
	assert.Equal(t, "#112233", s.CurrentColors()["primary"])
	assert.Equal(t, "#EC4899", s.CurrentColors()["secondary"])
	assert.Equal(t, "#112233", sink["--primary"])

	// overrides survive a palette switch
	require.NoError(t, s.SetTheme("classic"))
	assert.Equal(t, "#112233", s.CurrentColors()["primary"])
	assert.Equal(t, "#111827", sink["--foreground"])

	s.ResetCustomColors()
	assert.Equal(t, "#1F2937", s.CurrentColors()["primary"])
	assert.Empty(t, s.CustomColors())
}

func TestUpdateCustomColorValidates(t *testing.T) {
	s := NewStore()

	require.ErrorIs(t, s.UpdateCustomColor("sparkle", "#fff"), ErrUnknownColorKey)

	err := s.UpdateCustomColor("primary", "blue")
	var validationErr *pserrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "primary", validationErr.Field)
	assert.Empty(t, s.CustomColors())
}

func TestSaveAndDeleteCustomTheme(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.UpdateCustomColor("accent", "#abcdef"))
	require.NoError(t, s.SaveCustomTheme("mine"))

	p, ok := s.Palette("mine")
	require.True(t, ok)
	assert.Equal(t, "#abcdef", p["accent"])
	assert.Equal(t, "#6366F1", p["primary"])
	assert.Equal(t, []string{"modern", "classic", "vibrant", "minimal", "dark", "mine"}, s.Names())

	require.ErrorIs(t, s.SaveCustomTheme("dark"), ErrProtectedTheme)
	require.Error(t, s.SaveCustomTheme("  "))

	require.NoError(t, s.SetTheme("mine"))
	assert.False(t, s.DeleteCustomTheme("modern"))
	assert.True(t, s.DeleteCustomTheme("mine"))
	assert.False(t, s.DeleteCustomTheme("mine"))
	assert.Equal(t, DefaultTheme, s.CurrentTheme())
}

func TestCSSVariablesOrdered(t *testing.T) {
	s := NewStore()
	css := s.CSSVariables()
	lines := strings.Split(strings.TrimSpace(css), "\n")
	require.Len(t, lines, len(Keys))
	assert.Equal(t, "--primary: #6366F1;", lines[0])
	assert.Equal(t, "--muted-foreground: #6B7280;", lines[6])
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()

	s := NewStore(WithStorage(kv))
	ok, err := s.Restore(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.UpdateCustomColor("ring", "#010203"))
	require.NoError(t, s.SaveCustomTheme("brand"))
	require.NoError(t, s.SetTheme("brand"))
	require.NoError(t, s.Save(ctx))

	restored := NewStore(WithStorage(kv))
	ok, err = restored.Restore(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "brand", restored.CurrentTheme())
	assert.Equal(t, s.CurrentColors(), restored.CurrentColors())
	assert.Equal(t, "#010203", restored.CustomColors()["ring"])
}

func TestRestoreDropsInvalidEntries(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Put(ctx, StorageKey, []byte(`{
		"currentTheme": "ghost",
		"customColors": {"primary": "red", "accent": "#123456", "glow": "#ffffff"},
		"themes": {"modern": {"primary": "#000000"}}
	}`)))

	s := NewStore(WithStorage(kv))
	ok, err := s.Restore(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, DefaultTheme, s.CurrentTheme())
	assert.Equal(t, Palette{"accent": "#123456"}, s.CustomColors())
	p, _ := s.Palette("modern")
	assert.Equal(t, "#6366F1", p["primary"])
}

func TestRestoreRejectsMalformedJSON(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Put(ctx, StorageKey, []byte(`{`)))

	_, err := NewStore(WithStorage(kv)).Restore(ctx)
	var parseErr *pserrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}
