package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notely/pkg/api"
	"github.com/aretw0/notely/pkg/core"
)

// recorded captures what the fake backend received.
type recorded struct {
	Method  string
	Path    string
	Query   map[string]string
	Auth    string
	HasAuth bool
	Body    map[string]any
	ReqID   string
}

type fakeServer struct {
	mu       sync.Mutex
	requests []recorded
	status   int
	response string
}

func newFakeServer(t *testing.T, status int, response string) (*fakeServer, *api.Client) {
	t.Helper()
	f := &fakeServer{status: status, response: response}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  map[string]string{},
			Auth:   r.Header.Get("Authorization"),
			ReqID:  r.Header.Get("X-Request-ID"),
		}
		_, rec.HasAuth = r.Header["Authorization"]
		for k := range r.URL.Query() {
			rec.Query[k] = r.URL.Query().Get(k)
		}
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			_ = json.Unmarshal(data, &rec.Body)
		}

		f.mu.Lock()
		f.requests = append(f.requests, rec)
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		_, _ = io.WriteString(w, f.response)
	}))
	t.Cleanup(srv.Close)
	return f, api.NewClient(srv.URL + "/api/")
}

func (f *fakeServer) last(t *testing.T) recorded {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func TestClient_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f, c := newFakeServer(t, http.StatusOK, `{"token":"T1"}`)

		res, err := c.Login(ctx, "alice", "secret")
		require.NoError(t, err)
		assert.Equal(t, "T1", res.Token)

		req := f.last(t)
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/api/login/", req.Path)
		assert.False(t, req.HasAuth, "login must not send an Authorization header")
		assert.Equal(t, "alice", req.Body["username"])
		assert.Equal(t, "secret", req.Body["password"])
		assert.NotEmpty(t, req.ReqID)
	})

	t.Run("Failure Discards Server Detail", func(t *testing.T) {
		_, c := newFakeServer(t, http.StatusBadRequest, `{"non_field_errors":["Unable to log in"]}`)

		_, err := c.Login(ctx, "alice", "wrong")
		require.Error(t, err)
		assert.Equal(t, "Login failed", err.Error())

		var apiErr *core.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.Equal(t, "login", apiErr.Op)
	})
}

func TestClient_Register(t *testing.T) {
	f, c := newFakeServer(t, http.StatusCreated, `{"token":"T2"}`)

	res, err := c.Register(context.Background(), "bob", "pw")
	require.NoError(t, err)
	assert.Equal(t, "T2", res.Token)
	assert.Equal(t, "/api/register/", f.last(t).Path)

	f.status = http.StatusConflict
	_, err = c.Register(context.Background(), "bob", "pw")
	assert.EqualError(t, err, "Registration failed")
}

func TestClient_BearerHeader(t *testing.T) {
	f, c := newFakeServer(t, http.StatusOK, `{"results":[]}`)

	_, err := c.ListNotes(context.Background(), "T1", core.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer T1", f.last(t).Auth)

	_, err = c.ListNotes(context.Background(), "", core.ListParams{})
	require.NoError(t, err)
	assert.False(t, f.last(t).HasAuth)
}

func TestClient_ListNotes(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults", func(t *testing.T) {
		f, c := newFakeServer(t, http.StatusOK, `{"count":1,"next":null,"previous":null,"results":[{"id":1,"title":"A","content":"x","created_at":"2024-01-02T03:04:05Z","updated_at":"2024-01-02T03:04:05Z"}]}`)

		page, err := c.ListNotes(ctx, "T1", core.ListParams{})
		require.NoError(t, err)
		require.Len(t, page.Results, 1)
		assert.Equal(t, core.ID("1"), page.Results[0].ID)
		assert.Equal(t, "A", page.Results[0].Title)

		req := f.last(t)
		assert.Equal(t, "/api/notes/", req.Path)
		assert.Equal(t, map[string]string{"search": "", "ordering": "", "page": "1", "page_size": "20"}, req.Query)
	})

	t.Run("Encodes Search", func(t *testing.T) {
		f, c := newFakeServer(t, http.StatusOK, `{"results":[]}`)

		_, err := c.ListNotes(ctx, "T1", core.ListParams{Search: "a&b c/?", Ordering: "-updated_at", Page: 2, PageSize: 5})
		require.NoError(t, err)

		req := f.last(t)
		assert.Equal(t, "a&b c/?", req.Query["search"])
		assert.Equal(t, "-updated_at", req.Query["ordering"])
		assert.Equal(t, "2", req.Query["page"])
		assert.Equal(t, "5", req.Query["page_size"])
	})

	t.Run("Missing Results Is Empty", func(t *testing.T) {
		_, c := newFakeServer(t, http.StatusOK, `{}`)
		page, err := c.ListNotes(ctx, "T1", core.ListParams{})
		require.NoError(t, err)
		assert.NotNil(t, page.Results)
		assert.Empty(t, page.Results)
	})

	t.Run("Failure", func(t *testing.T) {
		_, c := newFakeServer(t, http.StatusInternalServerError, `boom`)
		_, err := c.ListNotes(ctx, "T1", core.ListParams{})
		assert.EqualError(t, err, "Failed to retrieve notes")
	})

	t.Run("Undecodable Body", func(t *testing.T) {
		_, c := newFakeServer(t, http.StatusOK, `<html>`)
		_, err := c.ListNotes(ctx, "T1", core.ListParams{})
		assert.EqualError(t, err, "Failed to retrieve notes")
	})
}

func TestClient_NoteCRUD(t *testing.T) {
	ctx := context.Background()
	note := `{"id":7,"title":"T","content":"C","created_at":"2024-01-02T03:04:05Z","updated_at":"2024-01-03T03:04:05Z"}`

	t.Run("Get", func(t *testing.T) {
		f, c := newFakeServer(t, http.StatusOK, note)
		n, err := c.GetNote(ctx, "T1", "7")
		require.NoError(t, err)
		assert.Equal(t, "T", n.Title)
		assert.Equal(t, "/api/notes/7/", f.last(t).Path)
		assert.Equal(t, http.MethodGet, f.last(t).Method)
	})

	t.Run("Create", func(t *testing.T) {
		f, c := newFakeServer(t, http.StatusCreated, note)
		n, err := c.CreateNote(ctx, "T1", core.NoteInput{Title: "T", Content: ""})
		require.NoError(t, err)
		assert.Equal(t, core.ID("7"), n.ID)

		req := f.last(t)
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/api/notes/", req.Path)
		assert.Equal(t, "T", req.Body["title"])
		assert.Equal(t, "", req.Body["content"])
		assert.Equal(t, "Bearer T1", req.Auth)
	})

	t.Run("Update", func(t *testing.T) {
		f, c := newFakeServer(t, http.StatusOK, note)
		_, err := c.UpdateNote(ctx, "T1", "7", core.NoteInput{Title: "T", Content: "C"})
		require.NoError(t, err)
		assert.Equal(t, http.MethodPut, f.last(t).Method)
		assert.Equal(t, "/api/notes/7/", f.last(t).Path)
	})

	t.Run("Delete", func(t *testing.T) {
		f, c := newFakeServer(t, http.StatusNoContent, ``)
		require.NoError(t, c.DeleteNote(ctx, "T1", "7"))
		assert.Equal(t, http.MethodDelete, f.last(t).Method)

		f.status = http.StatusNotFound
		assert.EqualError(t, c.DeleteNote(ctx, "T1", "7"), "Failed to delete note")
	})

	t.Run("Failure Messages", func(t *testing.T) {
		_, c := newFakeServer(t, http.StatusForbidden, `{"detail":"nope"}`)
		_, err := c.GetNote(ctx, "T1", "7")
		assert.EqualError(t, err, "Failed to retrieve note")
		_, err = c.CreateNote(ctx, "T1", core.NoteInput{Title: "x"})
		assert.EqualError(t, err, "Failed to create note")
		_, err = c.UpdateNote(ctx, "T1", "7", core.NoteInput{Title: "x"})
		assert.EqualError(t, err, "Failed to update note")
	})
}

func TestClient_Profile(t *testing.T) {
	ctx := context.Background()
	f, c := newFakeServer(t, http.StatusOK, `{"id":3,"username":"alice","email":"a@example.com"}`)

	p, err := c.GetProfile(ctx, "T1")
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, "/api/profile/", f.last(t).Path)

	_, err = c.UpdateProfile(ctx, "T1", core.ProfileInput{Username: "alice", Email: "a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, f.last(t).Method)
	assert.Equal(t, "a@example.com", f.last(t).Body["email"])

	f.status = http.StatusUnauthorized
	_, err = c.GetProfile(ctx, "T1")
	assert.EqualError(t, err, "Failed to get user profile")
	_, err = c.UpdateProfile(ctx, "T1", core.ProfileInput{})
	assert.EqualError(t, err, "Failed to update profile")
}

func TestClient_Logout(t *testing.T) {
	f, c := newFakeServer(t, http.StatusOK, `{"detail":"ok"}`)
	require.NoError(t, c.Logout(context.Background(), "T1"))
	assert.Equal(t, "Bearer T1", f.last(t).Auth)
	assert.Equal(t, "/api/logout/", f.last(t).Path)

	f.status = http.StatusUnauthorized
	assert.EqualError(t, c.Logout(context.Background(), "T1"), "Logout failed")
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := api.NewClient(url + "/api")
	_, err := c.Login(context.Background(), "alice", "secret")
	require.Error(t, err)
	assert.Equal(t, "Login failed", err.Error())

	var apiErr *core.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.Status)
	assert.NotNil(t, apiErr.Unwrap())
}

func TestClient_RequestIDFromContext(t *testing.T) {
	f, c := newFakeServer(t, http.StatusOK, `{"token":"T1"}`)
	ctx := context.WithValue(context.Background(), core.RequestIDKey, "req-123")

	_, err := c.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "req-123", f.last(t).ReqID)
}
