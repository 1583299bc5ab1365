package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the TUI.
type KeyMap struct {
	// Banner
	Tap     key.Binding
	Swipe   key.Binding
	Button  key.Binding
	Dismiss key.Binding

	// Demo
	Message key.Binding
	Warning key.Binding
	Error   key.Binding
	Success key.Binding
	Up      key.Binding
	Down    key.Binding

	// Global
	Back key.Binding
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tap, k.Swipe, k.Button, k.Dismiss},
		{k.Message, k.Warning, k.Error, k.Success},
		{k.Up, k.Down, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tap: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "tap banner"),
		),
		Swipe: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "swipe banner away"),
		),
		Button: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "press banner button"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("d", "esc"),
			key.WithHelp("d", "dismiss banner"),
		),
		Message: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "show message"),
		),
		Warning: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "show warning"),
		),
		Error: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "show error"),
		),
		Success: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "show success"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
