package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	quit     key.Binding
	login    key.Binding
	register key.Binding
	logout   key.Binding
	profile  key.Binding
	theme    key.Binding
	sidebar  key.Binding
	home     key.Binding
	up       key.Binding
	down     key.Binding
	open     key.Binding
	search   key.Binding
	create   key.Binding
	edit     key.Binding
	remove   key.Binding

	next    key.Binding
	submit  key.Binding
	save    key.Binding
	cancel  key.Binding
	confirm key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		login:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "login")),
		register: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "register")),
		logout:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "logout")),
		profile:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "profile")),
		theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		sidebar:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "sidebar")),
		home:     key.NewBinding(key.WithKeys("h", "home"), key.WithHelp("h", "home")),
		up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		create:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new note")),
		edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		remove:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),

		next:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		save:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		confirm: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes, delete")),
	}
}

func helpLine(bindings ...key.Binding) string {
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += " • "
		}
		h := b.Help()
		out += h.Key + " " + h.Desc
	}
	return out
}
