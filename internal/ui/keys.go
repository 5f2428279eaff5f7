package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	Add       key.Binding
	Orient    key.Binding
	Source    key.Binding
	Help      key.Binding
	Quit      key.Binding
	Confirm   key.Binding
	CancelAdd key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "left", "h"),
			key.WithHelp("↑/k", "focus previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "right", "l"),
			key.WithHelp("↓/j", "focus next"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "H", "shift+up"),
			key.WithHelp("K", "move item back"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "L", "shift+down"),
			key.WithHelp("J", "move item forward"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add item"),
		),
		Orient: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "toggle orientation"),
		),
		Source: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "view html"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
		),
		CancelAdd: key.NewBinding(
			key.WithKeys("esc"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.MoveUp, k.MoveDown, k.Add, k.Orient, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.MoveUp, k.MoveDown},
		{k.Add, k.Orient, k.Source},
		{k.Help, k.Quit},
	}
}
