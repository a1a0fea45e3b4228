package editor

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Focus    key.Binding
	Enter    key.Binding
	Grab     key.Binding
	Trash    key.Binding
	Copy     key.Binding
	Cancel   key.Binding
	Toggle   key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Edit     key.Binding
	Undo     key.Binding
	Redo     key.Binding
	Save     key.Binding
	Theme    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "library/canvas")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "pick/drop/select")),
		Grab:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "grab block")),
		Trash:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "drop on trash")),
		Copy:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "drop on duplicate")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Toggle:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hide/show")),
		MoveUp:   key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		MoveDown: key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit field")),
		Undo:     key.NewBinding(key.WithKeys("u", "ctrl+z"), key.WithHelp("u", "undo")),
		Redo:     key.NewBinding(key.WithKeys("ctrl+r", "ctrl+y"), key.WithHelp("ctrl+r", "redo")),
		Save:     key.NewBinding(key.WithKeys("s", "ctrl+s"), key.WithHelp("s", "save")),
		Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "next theme")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Enter, k.Grab, k.Edit, k.Undo, k.Save, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Focus, k.Enter},
		{k.Grab, k.Trash, k.Copy, k.Cancel},
		{k.Toggle, k.MoveUp, k.MoveDown, k.Edit},
		{k.Undo, k.Redo, k.Save, k.Theme},
		{k.Help, k.Quit},
	}
}
