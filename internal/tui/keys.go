package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	// Primary runs the one control on screen: reveal, advance or reset.
	Primary key.Binding
	Reset   key.Binding
	Quit    key.Binding
}

var DefaultKeyMap = KeyMap{
	Primary: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter/space", "next"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}
