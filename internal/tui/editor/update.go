package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/pagesmith/internal/app/session"
	"github.com/alexisbeaulieu97/pagesmith/internal/dnd"
	"github.com/alexisbeaulieu97/pagesmith/internal/domain/page"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.saving {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case SavedMsg:
		m.saving = false
		m.quitArmed = false
		m.errMsg = ""
		return m, m.setNotice("Saved at " + msg.At.Format("15:04:05"))

	case SaveFailedMsg:
		m.saving = false
		m.setError(fmt.Errorf("save failed: %w", msg.Err))
		return m, nil

	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode == ModeEdit {
			return m.handleEditKeys(msg)
		}
		return m.handleKeys(msg)
	}
	return m, nil
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Quit) {
		m.quitArmed = false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.builder.State().IsDirty && !m.quitArmed {
			m.quitArmed = true
			return m, m.setNotice("Unsaved changes: press q again to quit, s to save")
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Save):
		if m.saving {
			return m, nil
		}
		m.saving = true
		return m, tea.Batch(m.spinner.Tick, saveCmd(m.ctx, m.saver, m.now))

	case key.Matches(msg, m.keys.Cancel):
		if m.dnd.State() == dnd.StateDragging {
			m.dnd.Cancel()
			return m, m.setNotice("Drag cancelled")
		}
		m.errMsg = ""
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		if m.focus == PaneCanvas {
			m.focus = PaneLibrary
		} else {
			m.focus = PaneCanvas
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		return m.enter()

	case key.Matches(msg, m.keys.Undo):
		if m.builder.Undo() {
			m.clampCursor()
			return m, m.setNotice("Undone")
		}
		return m, m.setNotice("Nothing to undo")

	case key.Matches(msg, m.keys.Redo):
		if m.builder.Redo() {
			m.clampCursor()
			return m, m.setNotice("Redone")
		}
		return m, m.setNotice("Nothing to redo")

	case key.Matches(msg, m.keys.Theme):
		return m, m.nextTheme()
	}

	if m.focus != PaneCanvas {
		return m, nil
	}
	c, ok := m.current()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Grab):
		if err := m.dnd.Start(dnd.CanvasItem(c.ID)); err != nil {
			m.setError(err)
			return m, nil
		}
		m.dnd.Over(dnd.ComponentTarget(c.ID))
		return m, m.setNotice(fmt.Sprintf("Moving %s: pick a spot and press enter, x to trash, esc to cancel", c.Type.Label()))

	case key.Matches(msg, m.keys.Trash):
		return m.dropOnZone(c, session.ZoneTrash)

	case key.Matches(msg, m.keys.Copy):
		return m.dropOnZone(c, session.ZoneDuplicate)

	case key.Matches(msg, m.keys.Toggle):
		if _, err := m.builder.UpdateComponent(c.ID, page.Update{IsVisible: page.Visible(!c.IsVisible)}); err != nil {
			m.setError(err)
			return m, nil
		}
		if c.IsVisible {
			return m, m.setNotice(c.Type.Label() + " hidden")
		}
		return m, m.setNotice(c.Type.Label() + " shown")

	case key.Matches(msg, m.keys.MoveUp):
		return m.shift(-1)

	case key.Matches(msg, m.keys.MoveDown):
		return m.shift(1)

	case key.Matches(msg, m.keys.Edit):
		m.mode = ModeEdit
		m.input.SetValue("")
		m.input.Prompt = c.Type.Label() + " › "
		return m, m.input.Focus()
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	if m.focus == PaneLibrary {
		n := len(m.library)
		if n == 0 {
			return
		}
		m.libCursor = (m.libCursor + delta + n) % n
		return
	}

	n := m.builder.Len()
	if n == 0 {
		return
	}
	m.cursor = (m.cursor + delta + n) % n
	if item, ok := m.dnd.Active(); ok && item.Origin == dnd.OriginCanvas {
		if c, ok := m.current(); ok {
			m.dnd.Over(dnd.ComponentTarget(c.ID))
		}
	}
}

// enter picks a library item, drops the active drag, or selects a block.
func (m Model) enter() (tea.Model, tea.Cmd) {
	if m.focus == PaneLibrary {
		def := m.library[m.libCursor]
		if err := m.dnd.Start(dnd.LibraryItem(def.Type)); err != nil {
			m.setError(err)
			return m, nil
		}
		m.dnd.Over(dnd.CanvasTarget())
		m.focus = PaneCanvas
		return m, m.setNotice(fmt.Sprintf("Dragging %s: press enter to drop on the canvas, esc to cancel", def.Name))
	}

	item, dragging := m.dnd.Active()
	if !dragging {
		c, ok := m.current()
		if !ok {
			return m, nil
		}
		m.builder.SelectComponent(c.ID)
		return m, nil
	}

	target := dnd.CanvasTarget()
	if item.Origin == dnd.OriginCanvas {
		c, ok := m.current()
		if !ok {
			m.dnd.Cancel()
			return m, nil
		}
		target = dnd.ComponentTarget(c.ID)
	}
	return m.drop(target)
}

func (m Model) dropOnZone(c page.PlacedComponent, zone string) (tea.Model, tea.Cmd) {
	if item, ok := m.dnd.Active(); !ok || item.Origin != dnd.OriginCanvas {
		if err := m.dnd.Start(dnd.CanvasItem(c.ID)); err != nil {
			m.setError(err)
			return m, nil
		}
	}
	return m.drop(dnd.ZoneTarget(zone))
}

func (m Model) drop(target dnd.Target) (tea.Model, tea.Cmd) {
	m.dnd.Over(target)
	res, err := m.dnd.End(m.ctx, target)
	if err != nil {
		m.setError(err)
		return m, nil
	}

	switch res.Action {
	case dnd.ActionInsert:
		m.cursor = res.To
		return m, m.setNotice("Added block")
	case dnd.ActionReorder:
		m.cursor = res.To
		return m, m.setNotice(fmt.Sprintf("Moved block to position %d", res.To+1))
	case dnd.ActionZoneAccept:
		m.clampCursor()
		return m, m.setNotice("Dropped on " + res.ZoneID)
	case dnd.ActionRejected:
		return m, m.setNotice(res.ZoneID + " does not accept this block")
	}
	return m, nil
}

func (m Model) shift(delta int) (tea.Model, tea.Cmd) {
	to := m.cursor + delta
	if to < 0 || to >= m.builder.Len() {
		return m, nil
	}
	if err := m.builder.ReorderComponents(m.cursor, to); err != nil {
		m.setError(err)
		return m, nil
	}
	m.cursor = to
	return m, nil
}

func (m *Model) nextTheme() tea.Cmd {
	names := m.theme.Names()
	if len(names) == 0 {
		return nil
	}
	next := names[0]
	for i, n := range names {
		if n == m.theme.CurrentTheme() {
			next = names[(i+1)%len(names)]
			break
		}
	}
	if err := m.theme.SetTheme(next); err != nil {
		m.setError(err)
		return nil
	}
	// theme changes are saved with the page
	m.builder.MarkDirty()
	return m.setNotice("Theme: " + next)
}

func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		m.mode = ModeNormal
		m.input.Blur()
		return m.applyEdit(m.input.Value())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// applyEdit sets one dotted field on the block under the cursor.
func (m Model) applyEdit(entry string) (tea.Model, tea.Cmd) {
	field, value, ok := strings.Cut(entry, "=")
	field = strings.TrimSpace(field)
	if !ok || field == "" {
		m.setError(fmt.Errorf("expected field=value, got %q", entry))
		return m, nil
	}
	c, found := m.current()
	if !found {
		return m, nil
	}

	props, err := session.EditProps(c.Props, nil, map[string]string{field: value})
	if err != nil {
		m.setError(err)
		return m, nil
	}
	if _, err := m.builder.UpdateComponent(c.ID, page.Update{Props: props}); err != nil {
		m.setError(err)
		return m, nil
	}
	m.errMsg = ""
	return m, m.setNotice(fmt.Sprintf("Updated %s.%s", c.Type, field))
}
