package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the control surface bindings
type keyMap struct {
	GoAway   key.Binding
	YallOkay key.Binding
	Notify   key.Binding
	Help     key.Binding
	Quit     key.Binding

	Up       key.Binding
	Down     key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() keyMap {
	return keyMap{
		GoAway: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "Go away"),
		),
		YallOkay: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Y'all okay"),
		),
		Notify: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Notify"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Scroll down"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Follow"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdown", "Page down"),
		),
	}
}

// ShortHelp returns key bindings for the short help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.GoAway, k.YallOkay, k.Notify, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.GoAway, k.YallOkay, k.Notify},
		{k.Up, k.Down, k.Bottom, k.PageUp, k.PageDown},
		{k.Help, k.Quit},
	}
}
