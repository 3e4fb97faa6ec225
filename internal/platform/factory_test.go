package platform_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notely/internal/platform"
	"github.com/aretw0/notely/internal/testutil"
	"github.com/aretw0/notely/pkg/adapters/fs"
	"github.com/aretw0/notely/pkg/adapters/memory"
	"github.com/aretw0/notely/pkg/app"
	"github.com/aretw0/notely/pkg/core"
)

func TestNew_Ephemeral(t *testing.T) {
	backend := testutil.NewBackend()
	defer backend.Close()
	backend.AddUser("alice", "secret", "alice@example.com", "T1")
	backend.AddNote("alice", "A", "")

	client := platform.New(
		platform.WithBaseURL(backend.URL()),
		platform.WithEphemeral(true),
		platform.WithTheme(app.ThemeDark),
	)
	assert.IsType(t, &memory.Store{}, client.Store)
	assert.Equal(t, backend.URL(), client.API.BaseURL())

	require.NoError(t, client.Login(context.Background(), "alice", "secret"))
	vm := client.View()
	assert.Equal(t, app.ThemeDark, vm.Theme)
	assert.Len(t, vm.Items, 1)
}

func TestNew_SessionFilePersists(t *testing.T) {
	ctx := context.Background()
	backend := testutil.NewBackend()
	defer backend.Close()
	backend.AddUser("alice", "secret", "alice@example.com", "T1")

	path := filepath.Join(t.TempDir(), "session.yaml")
	first := platform.New(platform.WithBaseURL(backend.URL()), platform.WithSessionFile(path))
	assert.IsType(t, &fs.Store{}, first.Store)
	require.NoError(t, first.Login(ctx, "alice", "secret"))

	second := platform.New(platform.WithBaseURL(backend.URL()), platform.WithSessionFile(path))
	require.NoError(t, second.Start(ctx))
	assert.Equal(t, "alice", second.View().Username)
}

func TestNew_PagedRestoreListsOnce(t *testing.T) {
	ctx := context.Background()
	backend := testutil.NewBackend()
	defer backend.Close()
	backend.AddUser("alice", "secret", "alice@example.com", "T1")
	backend.AddNote("alice", "groceries", "")
	backend.AddNote("alice", "gym", "")

	kv := memory.NewStore()
	require.NoError(t, kv.Set(ctx, core.TokenKey, "T1"))
	client := platform.New(
		platform.WithBaseURL(backend.URL()),
		platform.WithStore(kv),
		platform.WithPaging(2, 5),
	)
	client.Notes().SetSearch(ctx, "gro")
	assert.Empty(t, backend.ListQueries(), "search is only remembered while signed out")

	require.NoError(t, client.Start(ctx))

	assert.Equal(t, []string{"ordering=&page=2&page_size=5&search=gro"}, backend.ListQueries())
	require.NoError(t, client.Notes().Err())
	assert.Len(t, client.Notes().Notes(), 1)
}

func TestNew_InjectedStore(t *testing.T) {
	kv := memory.NewStore()
	client := platform.New(platform.WithStore(kv), platform.WithSessionFile("/nonexistent/ignored.yaml"))
	assert.Same(t, kv, client.Store)
}

func TestFollow(t *testing.T) {
	backend := testutil.NewBackend()
	defer backend.Close()
	backend.AddUser("alice", "secret", "alice@example.com", "T1")

	path := filepath.Join(t.TempDir(), "session.yaml")
	tui := platform.New(platform.WithBaseURL(backend.URL()), platform.WithSessionFile(path))
	cli := platform.New(platform.WithBaseURL(backend.URL()), platform.WithSessionFile(path))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- tui.Follow(ctx, func() { changed <- struct{}{} })
	}()
	// Give the watcher time to register.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, cli.Login(ctx, "alice", "secret"))

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("session change was not followed")
	}
	assert.True(t, tui.Session().SignedIn())
	assert.Equal(t, "T1", tui.Session().Token())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Follow did not return after cancel")
	}
}

func TestFollow_MemoryStoreReturnsImmediately(t *testing.T) {
	client := platform.New(platform.WithEphemeral(true))
	assert.NoError(t, client.Follow(context.Background(), nil))
	_, ok := client.Store.(core.Watchable)
	assert.False(t, ok)
}
