package app

import (
	"github.com/aretw0/introspection"

	"github.com/aretw0/notely/pkg/notes"
	"github.com/aretw0/notely/pkg/session"
)

// State is a snapshot of the controller and the stores it composes.
type State struct {
	Main    string        `json:"main"`
	Theme   Theme         `json:"theme"`
	Sidebar bool          `json:"sidebar"`
	Open    []string      `json:"open_modals,omitempty"`
	Session session.State `json:"session"`
	Notes   notes.State   `json:"notes"`
}

// State implements introspection.Introspectable.
func (a *App) State() any {
	vm := a.View()
	st := State{
		Main:    vm.Main.String(),
		Theme:   vm.Theme,
		Sidebar: vm.Sidebar,
		Session: a.session.State().(session.State),
		Notes:   a.notes.State().(notes.State),
	}
	for m := Modal(0); m < modalCount; m++ {
		if vm.Modals[m] {
			st.Open = append(st.Open, m.String())
		}
	}
	return st
}

// ComponentType implements introspection.Component.
func (a *App) ComponentType() string {
	return "app"
}

var _ introspection.Introspectable = (*App)(nil)
var _ introspection.Component = (*App)(nil)
