package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Left    key.Binding
	Right   key.Binding
	Submit  key.Binding
	Compare key.Binding
	Back    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Next:    key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:    key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	Left:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous option")),
	Right:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next option")),
	Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "calculate")),
	Compare: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compare rules")),
	Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}
