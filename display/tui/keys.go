package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings for the TUI application.
// It implements the help.KeyMap interface for bubbles/help integration.
type keyMap struct {
	Quit    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Tab1    key.Binding
	Tab2    key.Binding
	Tab3    key.Binding
	Tab4    key.Binding
	Tab5    key.Binding
	Theme   key.Binding
	Refresh key.Binding
	Help    key.Binding
}

// ShortHelp returns the compact set of keybindings shown by default in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.NextTab, k.Theme, k.Quit}
}

// FullHelp returns the expanded keybinding groups shown when help is toggled.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Tab1, k.Tab2, k.Tab3, k.Tab4, k.Tab5},
		{k.Theme, k.Refresh, k.Help, k.Quit},
	}
}

// keys holds the default key bindings used by the application.
var keys = keyMap{
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	NextTab: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next section")),
	PrevTab: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev section")),
	Tab1:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "overview")),
	Tab2:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "cpu")),
	Tab3:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "memory")),
	Tab4:    key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "virtual memory")),
	Tab5:    key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "disk")),
	Theme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "dark/light")),
	Refresh: key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "refresh/retry")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}
