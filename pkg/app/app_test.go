package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notely/internal/testutil"
	"github.com/aretw0/notely/pkg/adapters/memory"
	"github.com/aretw0/notely/pkg/api"
	"github.com/aretw0/notely/pkg/app"
	"github.com/aretw0/notely/pkg/core"
	"github.com/aretw0/notely/pkg/forms"
	"github.com/aretw0/notely/pkg/notes"
	"github.com/aretw0/notely/pkg/session"
)

type fixture struct {
	backend *testutil.Backend
	kv      *memory.Store
	app     *app.App
}

func setup(t *testing.T) *fixture {
	t.Helper()
	backend := testutil.NewBackend()
	t.Cleanup(backend.Close)
	backend.AddUser("alice", "secret", "alice@example.com", "T1")

	client := api.NewClient(backend.URL())
	kv := memory.NewStore()
	broker := core.NewBroker()
	sess := session.New(client, kv, broker, nil)
	ns := notes.New(client, sess, broker)
	return &fixture{backend: backend, kv: kv, app: app.New(sess, ns, broker)}
}

func (f *fixture) login(t *testing.T) {
	t.Helper()
	require.NoError(t, f.app.Login(context.Background(), "alice", "secret"))
	require.True(t, f.app.View().SignedIn)
}

func TestLanding(t *testing.T) {
	f := setup(t)
	vm := f.app.View()

	assert.Equal(t, app.ViewLanding, vm.Main)
	assert.False(t, vm.SignedIn)
	assert.False(t, vm.Sidebar, "sidebar is hidden while signed out")
	assert.Empty(t, vm.Items)
	assert.Equal(t, app.ThemeLight, vm.Theme)
}

func TestLoginAndView(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.backend.AddNote("alice", "A", "first line\nsecond line")

	f.app.OpenModal(app.ModalLogin)
	require.NoError(t, f.app.Login(ctx, "alice", "secret"))

	token, err := f.kv.Get(ctx, core.TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "T1", token)

	vm := f.app.View()
	assert.False(t, vm.Modals[app.ModalLogin], "login dialog closes on success")
	assert.Equal(t, "alice", vm.Username)
	assert.True(t, vm.Sidebar)
	assert.Equal(t, app.ViewPlaceholder, vm.Main)
	require.Len(t, vm.Items, 1)
	assert.Equal(t, core.ID("1"), vm.Items[0].ID)

	f.app.SelectNote("1")
	vm = f.app.View()
	require.Equal(t, app.ViewDetail, vm.Main)
	require.NotNil(t, vm.Detail)
	assert.Equal(t, "A", vm.Detail.Note.Title)
	assert.Equal(t, []string{"first line", "second line"}, vm.Detail.Lines)
	assert.Equal(t, forms.FormatTimestamp(vm.Detail.Note.CreatedAt), vm.Detail.Created)
	assert.NotEqual(t, "-", vm.Detail.Updated)
	assert.True(t, vm.Items[0].Selected)

	f.app.GoHome()
	assert.Equal(t, app.ViewPlaceholder, f.app.View().Main)
}

func TestLoginFailure(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.app.OpenModal(app.ModalLogin)

	err := f.app.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, session.ErrLoginFailed)

	vm := f.app.View()
	assert.True(t, vm.Modals[app.ModalLogin], "dialog stays open")
	assert.Equal(t, "Login failed - check credentials", vm.AuthError)
	assert.False(t, vm.Pending[app.ModalLogin])
	assert.Equal(t, app.ViewLanding, vm.Main)

	f.app.OpenModal(app.ModalLogin)
	assert.Empty(t, f.app.View().AuthError, "reopening clears the banner")
}

func TestLoginValidation(t *testing.T) {
	f := setup(t)
	err := f.app.Login(context.Background(), "", "secret")

	var verr *forms.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Username is required", f.app.View().AuthError)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.app.OpenModal(app.ModalRegister)

	require.NoError(t, f.app.Register(ctx, "bob", "pw"))
	vm := f.app.View()
	assert.True(t, vm.SignedIn)
	assert.Equal(t, "bob", vm.Username)
	assert.False(t, vm.Modals[app.ModalRegister])

	f.app.Logout(ctx)
	f.app.OpenModal(app.ModalRegister)
	err := f.app.Register(ctx, "bob", "pw")
	assert.ErrorIs(t, err, session.ErrRegisterFailed)
	assert.Equal(t, "Registration failed - try a different username", f.app.View().AuthError)
}

func TestExpiredTokenSignsOutSilently(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.backend.Fail("get_profile", 401)

	require.NoError(t, f.app.Login(ctx, "alice", "secret"))

	vm := f.app.View()
	assert.False(t, vm.SignedIn)
	assert.Equal(t, app.ViewLanding, vm.Main)
	assert.Empty(t, vm.AuthError, "no banner for an expired session")
	assert.Empty(t, vm.NotesError)

	_, err := f.kv.Get(ctx, core.TokenKey)
	assert.ErrorIs(t, err, core.ErrKeyNotFound)
}

func TestStartRestoresSession(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.backend.AddNote("alice", "A", "")
	require.NoError(t, f.kv.Set(ctx, core.TokenKey, "T1"))

	require.NoError(t, f.app.Start(ctx))

	vm := f.app.View()
	assert.True(t, vm.SignedIn)
	assert.Equal(t, "alice", vm.Username)
	assert.Len(t, vm.Items, 1)
}

func TestSaveNote(t *testing.T) {
	ctx := context.Background()

	t.Run("Create Selects And Refreshes", func(t *testing.T) {
		f := setup(t)
		f.login(t)

		f.app.StartCreate()
		vm := f.app.View()
		require.True(t, vm.Modals[app.ModalEditor])
		assert.Equal(t, "New Note", vm.Editor.Heading())

		n, err := f.app.SaveNote(ctx, forms.NoteEditor{Title: "Groceries", Content: "milk"})
		require.NoError(t, err)

		vm = f.app.View()
		assert.False(t, vm.Modals[app.ModalEditor])
		assert.Equal(t, app.ViewDetail, vm.Main)
		assert.Equal(t, n.ID, vm.Detail.Note.ID)
		assert.Len(t, vm.Items, 1)
	})

	t.Run("Edit Prefills And Updates", func(t *testing.T) {
		f := setup(t)
		f.backend.AddNote("alice", "A", "old")
		f.login(t)

		assert.ErrorIs(t, f.app.StartEdit(), core.ErrNoSelection)

		f.app.SelectNote("1")
		require.NoError(t, f.app.StartEdit())
		vm := f.app.View()
		assert.Equal(t, "Edit Note", vm.Editor.Heading())
		assert.Equal(t, "old", vm.Editor.Content)

		editor := vm.Editor
		editor.Content = "new"
		_, err := f.app.SaveNote(ctx, editor)
		require.NoError(t, err)

		vm = f.app.View()
		assert.Equal(t, []string{"new"}, vm.Detail.Lines)
		assert.False(t, vm.Modals[app.ModalEditor])
	})

	t.Run("Empty Title Keeps Editor Open", func(t *testing.T) {
		f := setup(t)
		f.login(t)
		f.app.StartCreate()

		_, err := f.app.SaveNote(ctx, forms.NoteEditor{Content: "body"})
		require.Error(t, err)

		vm := f.app.View()
		assert.True(t, vm.Modals[app.ModalEditor])
		assert.Equal(t, "Title is required", vm.EditorError)
		assert.Equal(t, "body", vm.Editor.Content, "typed content survives")
		assert.Zero(t, f.backend.NoteCount("alice"))
	})

	t.Run("Backend Failure Keeps Editor Open", func(t *testing.T) {
		f := setup(t)
		f.login(t)
		f.backend.Fail("create_note", 500)
		f.app.StartCreate()

		_, err := f.app.SaveNote(ctx, forms.NoteEditor{Title: "T"})
		require.Error(t, err)

		vm := f.app.View()
		assert.True(t, vm.Modals[app.ModalEditor])
		assert.Equal(t, "Failed to create note", vm.EditorError)
		assert.False(t, vm.Pending[app.ModalEditor])
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success Falls Back To Placeholder", func(t *testing.T) {
		f := setup(t)
		f.backend.AddNote("alice", "A", "")
		f.login(t)

		assert.ErrorIs(t, f.app.RequestDelete(), core.ErrNoSelection)

		f.app.SelectNote("1")
		require.NoError(t, f.app.RequestDelete())
		require.True(t, f.app.IsOpen(app.ModalDelete))
		require.NoError(t, f.app.ConfirmDelete(ctx))

		vm := f.app.View()
		assert.False(t, vm.Modals[app.ModalDelete])
		assert.Equal(t, app.ViewPlaceholder, vm.Main)
		assert.Empty(t, vm.Items)
	})

	t.Run("Failure Keeps Dialog Open", func(t *testing.T) {
		f := setup(t)
		f.backend.AddNote("alice", "A", "")
		f.login(t)
		f.backend.Fail("delete_note", 500)

		f.app.SelectNote("1")
		require.NoError(t, f.app.RequestDelete())
		err := f.app.ConfirmDelete(ctx)
		assert.ErrorIs(t, err, notes.ErrDeleteFailed)

		vm := f.app.View()
		assert.True(t, vm.Modals[app.ModalDelete])
		assert.Equal(t, "Failed to delete note", vm.NotesError)
		assert.Equal(t, app.ViewDetail, vm.Main, "selection is unchanged")
		assert.Len(t, vm.Items, 1)
	})
}

func TestProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Update Closes Dialog", func(t *testing.T) {
		f := setup(t)
		f.login(t)

		f.app.OpenProfile()
		vm := f.app.View()
		require.True(t, vm.Modals[app.ModalProfile])
		assert.Equal(t, forms.Profile{Username: "alice", Email: "alice@example.com"}, vm.Profile)

		require.NoError(t, f.app.UpdateProfile(ctx, forms.Profile{Username: "alice", Email: "a@new.example"}))
		vm = f.app.View()
		assert.False(t, vm.Modals[app.ModalProfile])
		assert.Equal(t, "a@new.example", vm.Email)
	})

	t.Run("Failure Leaves Profile Intact", func(t *testing.T) {
		f := setup(t)
		f.login(t)
		f.backend.Fail("update_profile", 500)

		f.app.OpenProfile()
		err := f.app.UpdateProfile(ctx, forms.Profile{Username: "mallory", Email: "m@example.com"})
		assert.ErrorIs(t, err, session.ErrProfileUpdateFailed)

		vm := f.app.View()
		assert.True(t, vm.Modals[app.ModalProfile])
		assert.Equal(t, "Failed to update profile", vm.ProfileError)
		assert.Equal(t, "alice", vm.Username)
		assert.Equal(t, forms.Profile{Username: "alice", Email: "alice@example.com"}, vm.Profile)
	})

	t.Run("Invalid Email Rejected Locally", func(t *testing.T) {
		f := setup(t)
		f.login(t)
		f.app.OpenProfile()

		err := f.app.UpdateProfile(ctx, forms.Profile{Username: "alice", Email: "nope"})
		var verr *forms.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Email must be a valid email address", f.app.View().ProfileError)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.backend.AddNote("alice", "A", "")
	f.login(t)
	f.app.SelectNote("1")
	f.app.StartCreate()
	f.app.OpenModal(app.ModalLogin)
	f.backend.Fail("logout", 500)

	f.app.Logout(ctx)

	vm := f.app.View()
	assert.False(t, vm.SignedIn, "local sign-out succeeds even when the backend fails")
	assert.Equal(t, app.ViewLanding, vm.Main)
	assert.False(t, vm.Sidebar)
	assert.Empty(t, vm.Items)
	assert.False(t, vm.Modals[app.ModalEditor])
	assert.True(t, vm.Modals[app.ModalLogin], "dialogs that need no session are left alone")

	_, err := f.kv.Get(ctx, core.TokenKey)
	assert.ErrorIs(t, err, core.ErrKeyNotFound)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.backend.AddNote("alice", "Groceries", "")
	f.backend.AddNote("alice", "Work", "")

	f.app.Search(ctx, "gro")
	assert.Empty(t, f.backend.ListQueries(), "no request while signed out")

	f.login(t)
	vm := f.app.View()
	require.Len(t, vm.Items, 1)
	assert.Equal(t, "Groceries", vm.Items[0].Title)
	assert.Equal(t, "gro", vm.Search)

	f.app.Search(ctx, "")
	assert.Len(t, f.app.View().Items, 2)
}

func TestModalsAreIndependent(t *testing.T) {
	f := setup(t)
	f.app.OpenModal(app.ModalLogin)
	f.app.OpenModal(app.ModalRegister)

	assert.True(t, f.app.IsOpen(app.ModalLogin))
	assert.True(t, f.app.IsOpen(app.ModalRegister))

	f.app.CloseModal(app.ModalLogin)
	assert.False(t, f.app.IsOpen(app.ModalLogin))
	assert.True(t, f.app.IsOpen(app.ModalRegister))

	f.app.OpenModal(app.Modal(99))
	assert.False(t, f.app.IsOpen(app.Modal(99)))
}

func TestThemeAndSidebar(t *testing.T) {
	f := setup(t)
	assert.Equal(t, "Dark", f.app.View().ThemeLabel)
	assert.Equal(t, app.ThemeDark, f.app.ToggleTheme())
	assert.Equal(t, "Light", f.app.View().ThemeLabel)
	assert.Equal(t, app.ThemeLight, f.app.ToggleTheme())

	f.login(t)
	assert.True(t, f.app.View().Sidebar)
	f.app.ToggleSidebar()
	assert.False(t, f.app.View().Sidebar)
}

func TestState(t *testing.T) {
	f := setup(t)
	f.login(t)
	f.app.OpenModal(app.ModalProfile)

	st := f.app.State().(app.State)
	assert.Equal(t, "placeholder", st.Main)
	assert.True(t, st.Session.SignedIn)
	assert.Equal(t, []string{"profile"}, st.Open)
	assert.Equal(t, "app", f.app.ComponentType())
}
