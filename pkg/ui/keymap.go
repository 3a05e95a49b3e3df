package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Analyze    key.Binding
	ToggleCase key.Binding
	Clear      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Analyze: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("ctrl+e", "tokenize"),
	),
	ToggleCase: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "toggle keyword case"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear editor"),
	),
	Help: key.NewBinding(
		key.WithKeys("ctrl+h"),
		key.WithHelp("ctrl+h", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "ctrl+q"),
		key.WithHelp("ctrl+c", "quit"),
	),
}
