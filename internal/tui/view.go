package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/notely/pkg/app"
)

// Brand is the title shown in the header.
const Brand = "NotesApp"

func (m Model) View() string {
	vm := m.app.View()
	st := NewStyles(vm.Theme)

	header := m.renderHeader(vm, st)

	var main string
	if modal, ok := activeModal(vm); ok {
		main = m.renderModal(modal, vm, st)
	} else {
		main = m.renderMain(vm, st)
	}
	main = st.Main.Render(main)

	body := main
	if vm.Sidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(vm, st), main)
	}

	out := lipgloss.JoinVertical(lipgloss.Left, header, body, st.Help.Render(m.help(vm)))
	if m.width > 0 {
		out = lipgloss.NewStyle().Width(m.width).Render(out)
	}
	return st.App.Render(out)
}

func (m Model) renderHeader(vm app.ViewModel, st Styles) string {
	var nav []string
	if vm.SignedIn {
		nav = []string{"Logout", "Profile"}
		if vm.Username != "" {
			nav = append([]string{"@" + vm.Username}, nav...)
		}
	} else {
		nav = []string{"Login", "Register"}
	}
	theme := "🌙 " + vm.ThemeLabel
	if vm.Theme == app.ThemeDark {
		theme = "☀️ " + vm.ThemeLabel
	}
	nav = append(nav, theme)
	return st.Header.Render(st.Brand.Render(Brand) + st.Nav.Render(strings.Join(nav, "  ")))
}

func (m Model) renderSidebar(vm app.ViewModel, st Styles) string {
	var b strings.Builder
	b.WriteString(st.Heading.Render("Your Notes"))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	switch {
	case vm.Loading:
		b.WriteString(st.Muted.Render("Loading…"))
	case len(vm.Items) == 0:
		b.WriteString(st.Muted.Render("No notes found."))
	default:
		for i, item := range vm.Items {
			style := st.Item
			if item.Selected {
				style = st.Selected
			}
			marker := "  "
			if i == m.cursor {
				marker = "> "
			}
			b.WriteString(style.Render(marker + item.Title))
			b.WriteString("\n")
			if item.Snippet != "" {
				b.WriteString(st.Snippet.Render("  " + item.Snippet))
				b.WriteString("\n")
			}
		}
	}
	return st.Sidebar.Render(b.String())
}

func (m Model) renderMain(vm app.ViewModel, st Styles) string {
	var b strings.Builder
	if vm.NotesError != "" {
		b.WriteString(st.Error.Render(vm.NotesError))
		b.WriteString("\n\n")
	}

	switch vm.Main {
	case app.ViewLanding:
		b.WriteString(st.Heading.Render("Welcome to " + Brand))
		b.WriteString("\n")
		b.WriteString(st.Muted.Render("Sign in or register to write and manage your personal notes."))
	case app.ViewPlaceholder:
		b.WriteString(st.Heading.Render("Select or create a note"))
		b.WriteString("\n")
		b.WriteString(st.Muted.Render("Your notes appear on the left.\nPick a note to view, or create a new note."))
	case app.ViewDetail:
		d := vm.Detail
		b.WriteString(st.Meta.Render("Created: " + d.Created))
		b.WriteString("\n")
		b.WriteString(st.Meta.Render("Updated: " + d.Updated))
		b.WriteString("\n\n")
		b.WriteString(st.Heading.Render(d.Note.Title))
		b.WriteString("\n")
		b.WriteString(strings.Join(d.Lines, "\n"))
	}
	return b.String()
}

func (m Model) renderModal(modal app.Modal, vm app.ViewModel, st Styles) string {
	var b strings.Builder
	banner := func(msg string) {
		if msg != "" {
			b.WriteString(st.Error.Render(msg))
			b.WriteString("\n\n")
		}
	}
	button := func(label string) {
		if vm.Pending[modal] {
			label = "…"
		}
		b.WriteString("\n")
		b.WriteString(st.Button.Render(label))
	}

	switch modal {
	case app.ModalLogin, app.ModalRegister:
		title := "Login"
		if modal == app.ModalRegister {
			title = "Register"
		}
		b.WriteString(st.Heading.Render(title))
		b.WriteString("\n")
		banner(vm.AuthError)
		b.WriteString("Username\n" + m.inputs[inUsername].View() + "\n")
		b.WriteString("Password\n" + m.inputs[inPassword].View() + "\n")
		button(title)
	case app.ModalProfile:
		b.WriteString(st.Heading.Render("Your Profile"))
		b.WriteString("\n")
		banner(vm.ProfileError)
		b.WriteString("Username\n" + m.inputs[inName].View() + "\n")
		b.WriteString("Email\n" + m.inputs[inEmail].View() + "\n")
		button("Update Profile")
	case app.ModalEditor:
		b.WriteString(st.Heading.Render(vm.Editor.Heading()))
		b.WriteString("\n")
		banner(vm.EditorError)
		b.WriteString("Title\n" + m.inputs[inTitle].View() + "\n")
		b.WriteString("Content\n" + m.content.View() + "\n")
		button(vm.Editor.SubmitLabel())
	case app.ModalDelete:
		b.WriteString(st.Heading.Render("Delete Note"))
		b.WriteString("\n")
		banner(vm.NotesError)
		b.WriteString("Are you sure you want to delete this note?\n")
		button("Yes, Delete")
	}
	return st.Modal.Render(b.String())
}

func (m Model) help(vm app.ViewModel) string {
	k := m.keys
	if modal, ok := activeModal(vm); ok {
		switch modal {
		case app.ModalDelete:
			return helpLine(k.confirm, k.cancel)
		case app.ModalEditor:
			return helpLine(k.next, k.save, k.cancel)
		default:
			return helpLine(k.next, k.submit, k.cancel)
		}
	}
	if m.searching {
		return helpLine(k.submit, k.cancel)
	}
	if !vm.SignedIn {
		return helpLine(k.login, k.register, k.theme, k.quit)
	}
	return helpLine(k.up, k.down, k.open, k.search, k.create, k.edit, k.remove, k.home, k.sidebar, k.profile, k.logout, k.theme, k.quit)
}
