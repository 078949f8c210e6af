package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// Overlays
	Logs  key.Binding
	About key.Binding

	// Gallery focus
	Tab      key.Binding
	ShiftTab key.Binding
	Up       key.Binding
	Down     key.Binding

	// Carousel
	Prev     key.Binding
	Next     key.Binding
	First    key.Binding
	Last     key.Binding
	Jump     key.Binding
	Autoplay key.Binding

	// Log overlay
	PageUp   key.Binding
	PageDown key.Binding
	Bottom   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q", "e"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close overlay / clear focus"),
		),

		Logs: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Log viewer"),
		),
		About: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "About gallery"),
		),

		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Focus next gallery"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Focus previous gallery"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Gallery above"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Gallery below"),
		),

		Prev: key.NewBinding(
			key.WithKeys("left", "p"),
			key.WithHelp("←/p", "Previous image"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "n"),
			key.WithHelp("→/n", "Next image"),
		),
		First: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "First image"),
		),
		Last: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Last image"),
		),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "Jump to image"),
		),
		Autoplay: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "Toggle autoplay"),
		),

		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdown", "Page down"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Jump to newest"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Autoplay, k.Tab, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay, one group per section.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.First, k.Last, k.Jump, k.Autoplay},
		{k.Tab, k.ShiftTab, k.Up, k.Down, k.Escape},
		{k.Logs, k.PageUp, k.PageDown, k.Bottom},
		{k.About, k.CycleTheme, k.Help, k.Quit},
	}
}
