// Package tui renders the notes client in the terminal with bubbletea.
// The model holds only widget state; everything else is read from the
// view controller on each render.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/notely/pkg/app"
	"github.com/aretw0/notely/pkg/forms"
)

// doneMsg reports that a backend call dispatched by the model has settled.
// form is set when the call submitted the form of modal.
type doneMsg struct {
	modal app.Modal
	form  bool
	err   error
}

// ChangedMsg asks the model to re-render after state changed outside of it,
// e.g. the session file was rewritten by another process.
type ChangedMsg struct{}

// Text inputs, indexed into Model.inputs.
const (
	inUsername = iota
	inPassword
	inName
	inEmail
	inTitle
	inputCount
)

// formFields lists the inputs of each dialog in tab order. The editor's
// second field is the content textarea.
var formFields = map[app.Modal][]int{
	app.ModalLogin:    {inUsername, inPassword},
	app.ModalRegister: {inUsername, inPassword},
	app.ModalProfile:  {inName, inEmail},
	app.ModalEditor:   {inTitle},
}

// Model is the bubbletea model.
type Model struct {
	app  *app.App
	ctx  context.Context
	keys keyMap

	width, height int
	cursor        int
	searching     bool
	field         int

	search  textinput.Model
	inputs  [inputCount]textinput.Model
	content textarea.Model
}

// New creates a model driving a. Backend calls run with ctx.
func New(ctx context.Context, a *app.App) Model {
	m := Model{
		app:    a,
		ctx:    ctx,
		keys:   newKeyMap(),
		search: newInput("search notes", 100),
	}
	m.inputs[inUsername] = newInput("username", 150)
	m.inputs[inPassword] = newInput("password", 128)
	m.inputs[inPassword].EchoMode = textinput.EchoPassword
	m.inputs[inPassword].EchoCharacter = '•'
	m.inputs[inName] = newInput("username", 150)
	m.inputs[inEmail] = newInput("email", 254)
	m.inputs[inTitle] = newInput("title", 255)

	m.content = textarea.New()
	m.content.Placeholder = "content"
	m.content.SetHeight(7)
	m.content.ShowLineNumbers = false
	m.content.Cursor.SetMode(cursor.CursorStatic)
	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// Run starts the interface in the alternate screen and blocks until it quits.
// follow, if not nil, runs alongside with a callback that triggers a re-render.
func Run(ctx context.Context, a *app.App, follow func(ctx context.Context, onChange func()) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(New(ctx, a), tea.WithAltScreen(), tea.WithContext(ctx))
	if follow != nil {
		go func() {
			_ = follow(ctx, func() { p.Send(ChangedMsg{}) })
		}()
	}
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.dispatch(m.app.Start)
}

// dispatch runs fn off the update loop and reports back with a doneMsg.
func (m Model) dispatch(fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return doneMsg{err: fn(ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case doneMsg:
		if msg.form && msg.modal == app.ModalProfile && m.app.IsOpen(app.ModalProfile) {
			m.syncProfile()
		}
		m.clampCursor()
		return m, nil
	case ChangedMsg:
		m.clampCursor()
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if modal, ok := activeModal(m.app.View()); ok {
			return m.updateModal(modal, msg)
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateMain(msg)
	}
	return m, nil
}

// activeModal picks the dialog that receives input when several are open.
func activeModal(vm app.ViewModel) (app.Modal, bool) {
	for _, modal := range []app.Modal{app.ModalDelete, app.ModalEditor, app.ModalProfile, app.ModalRegister, app.ModalLogin} {
		if vm.Modals[modal] {
			return modal, true
		}
	}
	return 0, false
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	vm := m.app.View()
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.theme):
		m.app.ToggleTheme()
		return m, nil
	}

	if !vm.SignedIn {
		switch {
		case key.Matches(msg, m.keys.login):
			m.openAuth(app.ModalLogin)
		case key.Matches(msg, m.keys.register):
			m.openAuth(app.ModalRegister)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.logout):
		return m, m.dispatch(func(ctx context.Context) error {
			m.app.Logout(ctx)
			return nil
		})
	case key.Matches(msg, m.keys.profile):
		m.app.OpenProfile()
		m.syncProfile()
		m.focus(app.ModalProfile, 0)
	case key.Matches(msg, m.keys.sidebar):
		m.app.ToggleSidebar()
	case key.Matches(msg, m.keys.home):
		m.app.GoHome()
	case key.Matches(msg, m.keys.search):
		m.searching = true
		m.search.Focus()
	case key.Matches(msg, m.keys.up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.down):
		if m.cursor < len(vm.Items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.open):
		if m.cursor < len(vm.Items) {
			m.app.SelectNote(vm.Items[m.cursor].ID)
		}
	case key.Matches(msg, m.keys.create):
		m.app.StartCreate()
		m.loadEditor()
	case key.Matches(msg, m.keys.edit):
		if m.app.StartEdit() == nil {
			m.loadEditor()
		}
	case key.Matches(msg, m.keys.remove):
		_ = m.app.RequestDelete()
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.cancel) || key.Matches(msg, m.keys.submit) {
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	before := m.search.Value()
	m.search, _ = m.search.Update(msg)
	term := m.search.Value()
	if term == before {
		return m, nil
	}
	m.cursor = 0
	return m, m.dispatch(func(ctx context.Context) error {
		m.app.Search(ctx, term)
		return nil
	})
}

func (m *Model) openAuth(modal app.Modal) {
	m.app.OpenModal(modal)
	m.inputs[inUsername].Reset()
	m.inputs[inPassword].Reset()
	m.focus(modal, 0)
}

// syncProfile copies the view controller's profile form into the inputs.
func (m *Model) syncProfile() {
	p := m.app.View().Profile
	m.inputs[inName].SetValue(p.Username)
	m.inputs[inEmail].SetValue(p.Email)
}

func (m *Model) loadEditor() {
	e := m.app.View().Editor
	m.inputs[inTitle].SetValue(e.Title)
	m.content.SetValue(e.Content)
	m.focus(app.ModalEditor, 0)
}

// focus moves input focus to field i of modal's form.
func (m *Model) focus(modal app.Modal, i int) {
	m.field = i
	for n := range m.inputs {
		m.inputs[n].Blur()
	}
	m.content.Blur()

	fields := formFields[modal]
	switch {
	case i < len(fields):
		m.inputs[fields[i]].Focus()
	case modal == app.ModalEditor:
		m.content.Focus()
	}
}

func (m Model) updateModal(modal app.Modal, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.cancel) {
		m.app.CloseModal(modal)
		return m, nil
	}
	if m.app.View().Pending[modal] {
		return m, nil
	}

	if modal == app.ModalDelete {
		switch {
		case key.Matches(msg, m.keys.confirm):
			return m, m.dispatch(m.app.ConfirmDelete)
		case msg.String() == "n":
			m.app.CloseModal(modal)
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.next) {
		m.focus(modal, 1-m.field)
		return m, nil
	}

	inContent := modal == app.ModalEditor && m.field == 1
	if key.Matches(msg, m.keys.save) || (!inContent && key.Matches(msg, m.keys.submit)) {
		return m, m.submit(modal)
	}

	if inContent {
		m.content, _ = m.content.Update(msg)
		return m, nil
	}
	fields := formFields[modal]
	if m.field >= len(fields) {
		m.focus(modal, 0)
	}
	in := fields[m.field]
	m.inputs[in], _ = m.inputs[in].Update(msg)
	return m, nil
}

// submit dispatches the form of modal with the current input values.
func (m Model) submit(modal app.Modal) tea.Cmd {
	switch modal {
	case app.ModalLogin, app.ModalRegister:
		username, password := m.inputs[inUsername].Value(), m.inputs[inPassword].Value()
		auth := m.app.Login
		if modal == app.ModalRegister {
			auth = m.app.Register
		}
		return m.dispatch(func(ctx context.Context) error {
			return auth(ctx, username, password)
		})
	case app.ModalProfile:
		f := forms.Profile{Username: m.inputs[inName].Value(), Email: m.inputs[inEmail].Value()}
		ctx := m.ctx
		return func() tea.Msg {
			return doneMsg{modal: app.ModalProfile, form: true, err: m.app.UpdateProfile(ctx, f)}
		}
	case app.ModalEditor:
		f := forms.NoteEditor{ID: m.app.View().Editor.ID, Title: m.inputs[inTitle].Value(), Content: m.content.Value()}
		return m.dispatch(func(ctx context.Context) error {
			_, err := m.app.SaveNote(ctx, f)
			return err
		})
	}
	return nil
}

// clampCursor keeps the list cursor on the selected note, or in range.
func (m *Model) clampCursor() {
	vm := m.app.View()
	for i, item := range vm.Items {
		if item.Selected {
			m.cursor = i
			return
		}
	}
	if m.cursor >= len(vm.Items) {
		m.cursor = max(len(vm.Items)-1, 0)
	}
}
