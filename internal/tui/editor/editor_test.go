package editor

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/pagesmith/internal/app/session"
	"github.com/alexisbeaulieu97/pagesmith/internal/config"
	"github.com/alexisbeaulieu97/pagesmith/internal/domain/page"
	"github.com/alexisbeaulieu97/pagesmith/internal/infrastructure/storage"
	"github.com/alexisbeaulieu97/pagesmith/internal/logger"
)

func newTestModel(t *testing.T) (Model, *session.Session) {
	t.Helper()
	cfg := config.Default(t.TempDir())
	cfg.Storage.Driver = storage.DriverMemory
	cfg.Storage.Path = ""

	var n int
	s, err := session.Open(context.Background(), session.Options{
		Config:  cfg,
		Logger:  logger.NewNoOp(),
		Storage: storage.NewMemoryStore(),
		IDGenerator: func() string {
			n++
			return fmt.Sprintf("component_%d", n)
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	clock := func() time.Time { return time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC) }
	return NewModel(context.Background(), s, WithClock(clock)), s
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "ctrl+r":
			msg = tea.KeyMsg{Type: tea.KeyCtrlR}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func TestLibraryDragInsertsBlock(t *testing.T) {
	t.Parallel()

	m, s := newTestModel(t)
	m = press(t, m, "tab")
	require.Equal(t, PaneLibrary, m.Focus())

	m = press(t, m, "enter")
	require.Equal(t, PaneCanvas, m.Focus())
	_, dragging := s.DnD.Active()
	require.True(t, dragging)

	m = press(t, m, "enter")
	_, dragging = s.DnD.Active()
	require.False(t, dragging)
	require.Equal(t, 1, s.Builder.Len())
	require.Equal(t, page.TypeHero, s.Builder.Components()[0].Type)
	require.Equal(t, 0, m.Cursor())
}

func TestEscCancelsDrag(t *testing.T) {
	t.Parallel()

	m, s := newTestModel(t)
	m = press(t, m, "tab", "enter", "esc")
	_, dragging := s.DnD.Active()
	require.False(t, dragging)
	require.Zero(t, s.Builder.Len())
	require.Equal(t, "Drag cancelled", m.Notice())
}

func TestCanvasGrabAndDropReorders(t *testing.T) {
	t.Parallel()

	m, s := newTestModel(t)
	require.NoError(t, s.LoadTemplate("business-card"))
	before := s.Builder.Components()
	require.GreaterOrEqual(t, len(before), 2)

	m = press(t, m, "m", "down", "enter")
	after := s.Builder.Components()
	require.Equal(t, before[0].ID, after[1].ID)
	require.Equal(t, before[1].ID, after[0].ID)
	require.Equal(t, 1, m.Cursor())
}

func TestTrashAndDuplicateZones(t *testing.T) {
	t.Parallel()

	m, s := newTestModel(t)
	require.NoError(t, s.LoadTemplate("business-card"))
	n := s.Builder.Len()

	m = press(t, m, "c")
	require.Equal(t, n+1, s.Builder.Len())

	m = press(t, m, "x")
	require.Equal(t, n, s.Builder.Len())
	require.Contains(t, m.Notice(), "trash")
}

func TestToggleMoveUndoRedo(t *testing.T) {
	t.Parallel()

	m, s := newTestModel(t)
	require.NoError(t, s.LoadTemplate("business-card"))
	first := s.Builder.Components()[0]

	m = press(t, m, "h")
	c, _ := s.Builder.Component(first.ID)
	require.False(t, c.IsVisible)

	m = press(t, m, "J")
	require.Equal(t, 1, s.Builder.IndexOf(first.ID))
	require.Equal(t, 1, m.Cursor())

	m = press(t, m, "u", "u")
	c, _ = s.Builder.Component(first.ID)
	require.True(t, c.IsVisible)
	require.Equal(t, 0, s.Builder.IndexOf(first.ID))

	press(t, m, "ctrl+r")
	c, _ = s.Builder.Component(first.ID)
	require.False(t, c.IsVisible)
}

func TestEditField(t *testing.T) {
	t.Parallel()

	m, s := newTestModel(t)
	s.Builder.AddComponent(page.Draft{Type: page.TypeHero, Props: mustProps(t, page.TypeHero)})

	m = press(t, m, "e")
	require.Equal(t, ModeEdit, m.Mode())
	m = typeText(t, m, "title=Hello there")
	m = press(t, m, "enter")
	require.Equal(t, ModeNormal, m.Mode())
	require.Empty(t, m.Err())
	require.Equal(t, "Hello there", s.Builder.Components()[0].Props.(*page.HeroProps).Title)

	m = press(t, m, "e")
	m = typeText(t, m, "ctaLink=nope")
	m = press(t, m, "enter")
	require.NotEmpty(t, m.Err())
	require.Equal(t, "#contact", s.Builder.Components()[0].Props.(*page.HeroProps).CTALink)
}

func TestQuitRequiresConfirmationWhenDirty(t *testing.T) {
	t.Parallel()

	m, s := newTestModel(t)
	s.Builder.AddComponent(page.Draft{Type: page.TypeFooter, Props: mustProps(t, page.TypeFooter)})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(Model)
	require.Contains(t, m.Notice(), "Unsaved changes")
	require.NotNil(t, cmd)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())
}

func TestSaveCommand(t *testing.T) {
	t.Parallel()

	m, s := newTestModel(t)
	s.Builder.AddComponent(page.Draft{Type: page.TypeFooter, Props: mustProps(t, page.TypeFooter)})

	msg := saveCmd(context.Background(), s, m.now)()
	saved, ok := msg.(SavedMsg)
	require.True(t, ok)
	require.False(t, s.Builder.State().IsDirty)

	m.saving = true
	next, _ := m.Update(saved)
	m = next.(Model)
	require.False(t, m.Saving())
	require.Equal(t, "Saved at 09:30:00", m.Notice())
}

func TestSpinnerTicksOnlyWhileSaving(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	tick := m.spinner.Tick()

	_, cmd := m.Update(tick)
	require.Nil(t, cmd)

	m.saving = true
	_, cmd = m.Update(tick)
	require.NotNil(t, cmd)
}

type failingSaver struct{}

func (failingSaver) Save(context.Context) error { return errors.New("disk full") }

func TestSaveFailureShowsBanner(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	msg := saveCmd(context.Background(), failingSaver{}, time.Now)()
	next, _ := m.Update(msg)
	m = next.(Model)
	require.Contains(t, m.Err(), "disk full")
	require.Contains(t, m.View(), "disk full")
}

func TestThemeCycle(t *testing.T) {
	t.Parallel()

	m, s := newTestModel(t)
	start := s.Theme.CurrentTheme()
	m = press(t, m, "t")
	require.NotEqual(t, start, s.Theme.CurrentTheme())
	require.Contains(t, m.Notice(), s.Theme.CurrentTheme())
}

func TestViewRendersOutline(t *testing.T) {
	t.Parallel()

	m, s := newTestModel(t)
	require.Contains(t, m.View(), "Empty page")

	require.NoError(t, s.LoadTemplate("business-card"))
	s.Builder.AddComponent(page.Draft{Type: page.ComponentType("carousel")})

	view := m.View()
	require.Contains(t, view, "Library")
	require.Contains(t, view, "Canvas")
	require.Contains(t, view, "Hero")
	require.Contains(t, view, "Unknown component type: carousel")
	require.Contains(t, view, "unsaved")
}

func mustProps(t *testing.T, typ page.ComponentType) page.Props {
	t.Helper()
	props, err := session.BuildProps(typ, nil, nil)
	require.NoError(t, err)
	return props
}
