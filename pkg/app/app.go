// Package app is the view controller of the notes client. It owns no
// business data: it composes the session and notes stores, keeps the
// dialog flags, theme and per-form error banners, and routes user actions
// to the stores. Renderers (the TUI, the CLI) read an immutable ViewModel
// from View and call the handlers below.
package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/notely/pkg/core"
	"github.com/aretw0/notely/pkg/forms"
	"github.com/aretw0/notely/pkg/notes"
	"github.com/aretw0/notely/pkg/session"
)

// Modal identifies a dialog. Dialog flags are independent: opening one
// never closes another.
type Modal int

const (
	ModalLogin Modal = iota
	ModalRegister
	ModalProfile
	ModalEditor
	ModalDelete
	modalCount
)

func (m Modal) String() string {
	switch m {
	case ModalLogin:
		return "login"
	case ModalRegister:
		return "register"
	case ModalProfile:
		return "profile"
	case ModalEditor:
		return "editor"
	case ModalDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Theme is the colour scheme. It lives for the process only.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// App is the view controller.
type App struct {
	session *session.Store
	notes   *notes.Store
	logger  *slog.Logger

	mu          sync.RWMutex
	modals      [modalCount]bool
	pending     [modalCount]bool
	theme       Theme
	sidebarOpen bool
	editor      forms.NoteEditor
	profileForm forms.Profile
	authErr     string
	editorErr   string
	profileErr  string
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger for the controller.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithTheme sets the initial theme.
func WithTheme(theme Theme) Option {
	return func(a *App) {
		if theme == ThemeDark || theme == ThemeLight {
			a.theme = theme
		}
	}
}

// New creates the controller. It subscribes to token changes so dialogs
// that need a session close when the user is signed out.
func New(sess *session.Store, ns *notes.Store, broker *core.Broker, opts ...Option) *App {
	a := &App{
		session:     sess,
		notes:       ns,
		logger:      slog.New(slog.DiscardHandler),
		theme:       ThemeLight,
		sidebarOpen: true,
	}
	for _, opt := range opts {
		opt(a)
	}
	broker.Subscribe(a.onTokenChanged)
	return a
}

func (a *App) onTokenChanged(_ context.Context, e core.Event) {
	if e.Type != core.EventTokenChanged || e.Token != "" {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, m := range []Modal{ModalProfile, ModalEditor, ModalDelete} {
		a.modals[m] = false
		a.pending[m] = false
	}
	a.editorErr = ""
	a.profileErr = ""
}

// Session returns the session store.
func (a *App) Session() *session.Store { return a.session }

// Notes returns the notes store.
func (a *App) Notes() *notes.Store { return a.notes }

// Start restores a persisted session, if any.
func (a *App) Start(ctx context.Context) error {
	return a.session.Restore(ctx)
}

// Login signs in. On success the login dialog closes; on failure it stays
// open with the auth banner set.
func (a *App) Login(ctx context.Context, username, password string) error {
	return a.authenticate(ctx, forms.Auth{Mode: forms.ModeLogin, Username: username, Password: password})
}

// Register creates an account and signs in with it.
func (a *App) Register(ctx context.Context, username, password string) error {
	return a.authenticate(ctx, forms.Auth{Mode: forms.ModeRegister, Username: username, Password: password})
}

func (a *App) authenticate(ctx context.Context, f forms.Auth) error {
	modal := ModalLogin
	submit := a.session.Login
	if f.Mode == forms.ModeRegister {
		modal = ModalRegister
		submit = a.session.Register
	}

	if err := f.Validate(); err != nil {
		a.setAuthErr(err)
		return err
	}

	a.begin(modal, func() { a.authErr = "" })
	c := f.Credentials()
	err := submit(ctx, c.Username, c.Password)
	a.end(modal, func() {
		if err != nil {
			a.authErr = err.Error()
			return
		}
		a.modals[modal] = false
	})
	return err
}

func (a *App) setAuthErr(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.authErr = err.Error()
}

// Logout signs out. It always succeeds locally.
func (a *App) Logout(ctx context.Context) {
	a.session.Logout(ctx)
}

// Search changes the note filter.
func (a *App) Search(ctx context.Context, term string) {
	a.notes.SetSearch(ctx, term)
}

// SelectNote focuses a note in the main area.
func (a *App) SelectNote(id core.ID) {
	a.notes.Select(id)
}

// GoHome clears the selection, returning the main area to the placeholder.
func (a *App) GoHome() {
	a.notes.ClearSelection()
}

// StartCreate opens an empty editor.
func (a *App) StartCreate() {
	a.openEditor(forms.NewNoteEditor(nil))
}

// StartEdit opens the editor prefilled with the selected note.
func (a *App) StartEdit() error {
	n, ok := a.notes.Selected()
	if !ok {
		return core.ErrNoSelection
	}
	a.openEditor(forms.NewNoteEditor(&n))
	return nil
}

func (a *App) openEditor(f forms.NoteEditor) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.editor = f
	a.editorErr = ""
	a.modals[ModalEditor] = true
}

// SaveNote creates or updates the note described by f. On success the
// editor closes, the saved note is selected and the list is refreshed. On
// failure the editor stays open with its banner set.
func (a *App) SaveNote(ctx context.Context, f forms.NoteEditor) (core.Note, error) {
	a.mu.Lock()
	a.editor = f
	a.mu.Unlock()

	if err := f.Validate(); err != nil {
		a.end(ModalEditor, func() { a.editorErr = err.Error() })
		return core.Note{}, err
	}

	a.begin(ModalEditor, func() { a.editorErr = "" })
	var (
		n   core.Note
		err error
	)
	if f.Editing() {
		n, err = a.notes.Update(ctx, f.ID, f.Title, f.Content)
	} else {
		n, err = a.notes.Create(ctx, f.Title, f.Content)
	}
	a.end(ModalEditor, func() {
		if err != nil {
			a.editorErr = err.Error()
			return
		}
		a.modals[ModalEditor] = false
		a.editor = forms.NoteEditor{}
	})
	if err != nil {
		a.logger.Debug("save note failed", "id", f.ID, "error", err)
		return core.Note{}, err
	}

	a.notes.Select(n.ID)
	a.notes.Refresh(ctx)
	return n, nil
}

// RequestDelete opens the confirmation dialog for the selected note.
func (a *App) RequestDelete() error {
	if a.notes.SelectedID() == "" {
		return core.ErrNoSelection
	}
	a.OpenModal(ModalDelete)
	return nil
}

// ConfirmDelete deletes the selected note. The dialog closes on success and
// stays open on failure, with the notes banner carrying the error.
func (a *App) ConfirmDelete(ctx context.Context) error {
	id := a.notes.SelectedID()
	if id == "" {
		return core.ErrNoSelection
	}
	a.begin(ModalDelete, nil)
	err := a.notes.Delete(ctx, id)
	a.end(ModalDelete, func() {
		if err == nil {
			a.modals[ModalDelete] = false
		}
	})
	return err
}

// OpenProfile opens the profile dialog prefilled from the current profile.
func (a *App) OpenProfile() {
	f := forms.Profile{}
	if p, ok := a.session.Profile(); ok {
		f = forms.NewProfile(&p)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.profileForm = f
	a.profileErr = ""
	a.modals[ModalProfile] = true
}

// UpdateProfile submits the full profile form. On success the dialog closes;
// on failure the banner is set and the form shows the unchanged profile.
func (a *App) UpdateProfile(ctx context.Context, f forms.Profile) error {
	if err := f.Validate(); err != nil {
		a.end(ModalProfile, func() {
			a.profileForm = f
			a.profileErr = err.Error()
		})
		return err
	}

	a.begin(ModalProfile, func() {
		a.profileForm = f
		a.profileErr = ""
	})
	p, err := a.session.UpdateProfile(ctx, f.Input())
	if err != nil {
		current := forms.Profile{}
		if prev, ok := a.session.Profile(); ok {
			current = forms.NewProfile(&prev)
		}
		a.end(ModalProfile, func() {
			a.profileForm = current
			a.profileErr = err.Error()
		})
		return err
	}
	a.end(ModalProfile, func() {
		a.profileForm = forms.NewProfile(&p)
		a.modals[ModalProfile] = false
	})
	return nil
}

// OpenModal shows a dialog. Opening the login or register dialog clears the
// auth banner.
func (a *App) OpenModal(m Modal) {
	if m < 0 || m >= modalCount {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.modals[m] = true
	if m == ModalLogin || m == ModalRegister {
		a.authErr = ""
	}
}

// CloseModal hides a dialog.
func (a *App) CloseModal(m Modal) {
	if m < 0 || m >= modalCount {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.modals[m] = false
	switch m {
	case ModalEditor:
		a.editorErr = ""
	case ModalProfile:
		a.profileErr = ""
	}
}

// IsOpen reports whether a dialog is visible.
func (a *App) IsOpen(m Modal) bool {
	if m < 0 || m >= modalCount {
		return false
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.modals[m]
}

// ToggleTheme flips between light and dark.
func (a *App) ToggleTheme() Theme {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.theme == ThemeLight {
		a.theme = ThemeDark
	} else {
		a.theme = ThemeLight
	}
	return a.theme
}

// ToggleSidebar shows or hides the note list while signed in.
func (a *App) ToggleSidebar() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sidebarOpen = !a.sidebarOpen
}

// begin marks a dialog's call as in flight.
func (a *App) begin(m Modal, fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending[m] = true
	if fn != nil {
		fn()
	}
}

// end clears the in-flight mark and applies the outcome.
func (a *App) end(m Modal, fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending[m] = false
	if fn != nil {
		fn()
	}
}
