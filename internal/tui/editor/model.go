// Package editor is the terminal canvas: a component library on the left, the
// page outline on the right, driven by keyboard drag gestures.
package editor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/pagesmith/internal/app/session"
	"github.com/alexisbeaulieu97/pagesmith/internal/builder"
	"github.com/alexisbeaulieu97/pagesmith/internal/dnd"
	"github.com/alexisbeaulieu97/pagesmith/internal/domain/page"
	"github.com/alexisbeaulieu97/pagesmith/internal/registry"
	"github.com/alexisbeaulieu97/pagesmith/internal/theme"
	"github.com/alexisbeaulieu97/pagesmith/internal/tui/components"
)

// Pane is the focused column.
type Pane int

const (
	PaneCanvas Pane = iota
	PaneLibrary
)

// Mode determines how keys are interpreted.
type Mode int

const (
	ModeNormal Mode = iota
	ModeEdit
)

// Model is the editor state.
type Model struct {
	ctx     context.Context
	builder *builder.Store
	dnd     *dnd.Coordinator
	theme   *theme.Store
	saver   Saver
	now     func() time.Time

	library []registry.Definition

	focus     Pane
	mode      Mode
	cursor    int
	libCursor int

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	input   textinput.Model
	meter   components.HistoryMeter

	saving    bool
	quitArmed bool
	notice    string
	noticeSeq int
	errMsg    string

	width      int
	height     int
	useUnicode bool
}

// Option customises a Model.
type Option func(*Model)

// WithASCII swaps library icons for plain-text fallbacks.
func WithASCII() Option {
	return func(m *Model) { m.useUnicode = false }
}

// WithClock overrides the clock used for save timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

// NewModel builds an editor bound to an open session.
func NewModel(ctx context.Context, s *session.Session, opts ...Option) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	in := textinput.New()
	in.Placeholder = "field=value, e.g. title=Hello or plans.0.price=49"
	in.CharLimit = 500
	in.Width = 50

	m := Model{
		ctx:        ctx,
		builder:    s.Builder,
		dnd:        s.DnD,
		theme:      s.Theme,
		saver:      s,
		now:        time.Now,
		library:    registry.All(),
		keys:       defaultKeyMap(),
		help:       help.New(),
		spinner:    sp,
		input:      in,
		meter:      components.NewHistoryMeter(s.Config().History.Limit),
		width:      100,
		height:     30,
		useUnicode: true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	if c, ok := m.builder.Selected(); ok {
		m.cursor = m.builder.IndexOf(c.ID)
	}
	return m
}

// Init implements tea.Model. The spinner only ticks while a save runs.
func (m Model) Init() tea.Cmd {
	return nil
}

// Focus returns the focused pane.
func (m Model) Focus() Pane { return m.focus }

// Mode returns the input mode.
func (m Model) Mode() Mode { return m.mode }

// Cursor returns the canvas cursor position.
func (m Model) Cursor() int { return m.cursor }

// Notice returns the transient status line.
func (m Model) Notice() string { return m.notice }

// Err returns the current error banner text.
func (m Model) Err() string { return m.errMsg }

// Saving reports whether a save is in flight.
func (m Model) Saving() bool { return m.saving }

func (m Model) current() (page.PlacedComponent, bool) {
	list := m.builder.Components()
	if m.cursor < 0 || m.cursor >= len(list) {
		return page.PlacedComponent{}, false
	}
	return list[m.cursor], true
}

func (m *Model) clampCursor() {
	n := m.builder.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setNotice(msg string) tea.Cmd {
	m.noticeSeq++
	m.notice = msg
	return clearNoticeCmd(m.noticeSeq)
}

func (m *Model) setError(err error) {
	if err == nil {
		m.errMsg = ""
		return
	}
	m.errMsg = err.Error()
}
