package app

import (
	"github.com/aretw0/notely/pkg/core"
	"github.com/aretw0/notely/pkg/forms"
)

// MainView is what the main area shows. Exactly one applies at a time.
type MainView int

const (
	// ViewLanding is the signed-out welcome.
	ViewLanding MainView = iota
	// ViewPlaceholder asks a signed-in user to select or create a note.
	ViewPlaceholder
	// ViewDetail shows the selected note.
	ViewDetail
)

func (v MainView) String() string {
	switch v {
	case ViewLanding:
		return "landing"
	case ViewPlaceholder:
		return "placeholder"
	case ViewDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// ListItem is one row of the note list.
type ListItem struct {
	ID       core.ID
	Title    string
	Snippet  string
	Selected bool
}

// Detail is the rendered form of the selected note.
type Detail struct {
	Note    core.Note
	Created string
	Updated string
	Lines   []string
}

// ViewModel is a snapshot of everything a renderer needs.
type ViewModel struct {
	Theme      Theme
	ThemeLabel string

	SignedIn bool
	Username string
	Email    string

	// Sidebar is false whenever signed out, regardless of the toggle.
	Sidebar    bool
	Search     string
	Loading    bool
	Items      []ListItem
	NotesError string

	Main   MainView
	Detail *Detail

	Modals  map[Modal]bool
	Pending map[Modal]bool

	AuthError    string
	EditorError  string
	ProfileError string

	Editor  forms.NoteEditor
	Profile forms.Profile
}

// View builds the current ViewModel.
func (a *App) View() ViewModel {
	signedIn := a.session.SignedIn()
	vm := ViewModel{
		SignedIn: signedIn,
		Search:   a.notes.Search(),
		Loading:  a.notes.Loading(),
		Modals:   make(map[Modal]bool, modalCount),
		Pending:  make(map[Modal]bool, modalCount),
	}
	if p, ok := a.session.Profile(); ok {
		vm.Username = p.Username
		vm.Email = p.Email
	}
	if err := a.notes.Err(); err != nil && signedIn {
		vm.NotesError = err.Error()
	}

	selected := a.notes.SelectedID()
	for _, n := range a.notes.Notes() {
		vm.Items = append(vm.Items, ListItem{
			ID:       n.ID,
			Title:    n.Title,
			Snippet:  forms.Snippet(n.Content),
			Selected: n.ID == selected,
		})
	}

	switch n, ok := a.notes.Selected(); {
	case !signedIn:
		vm.Main = ViewLanding
	case !ok:
		vm.Main = ViewPlaceholder
	default:
		vm.Main = ViewDetail
		vm.Detail = &Detail{
			Note:    n,
			Created: forms.FormatTimestamp(n.CreatedAt),
			Updated: forms.FormatTimestamp(n.UpdatedAt),
			Lines:   forms.Lines(n.Content),
		}
	}

	a.mu.RLock()
	defer a.mu.RUnlock()
	vm.Theme = a.theme
	vm.ThemeLabel = "Dark"
	if a.theme == ThemeDark {
		vm.ThemeLabel = "Light"
	}
	vm.Sidebar = signedIn && a.sidebarOpen
	for m := Modal(0); m < modalCount; m++ {
		vm.Modals[m] = a.modals[m]
		vm.Pending[m] = a.pending[m]
	}
	vm.AuthError = a.authErr
	vm.EditorError = a.editorErr
	vm.ProfileError = a.profileErr
	vm.Editor = a.editor
	vm.Profile = a.profileForm
	return vm
}
