// Package testutil provides an in-memory notes backend served over
// httptest, for tests that exercise the client end to end.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// BasePath is the prefix the fake backend serves under.
const BasePath = "/api"

type user struct {
	id       int
	username string
	password string
	email    string
}

type note struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	owner     string
}

// Backend is a fake notes server. IDs are served as JSON numbers.
type Backend struct {
	Server *httptest.Server

	mu      sync.Mutex
	users   map[string]*user
	tokens  map[string]string // token -> username
	notes   map[int]*note
	nextID  int
	fail    map[string]int // operation -> status
	now     time.Time
	queries []string // raw query of every list request
}

// NewBackend starts a fake backend. Call Close when done.
func NewBackend() *Backend {
	b := &Backend{
		users:  map[string]*user{},
		tokens: map[string]string{},
		notes:  map[int]*note{},
		nextID: 1,
		fail:   map[string]int{},
		now:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	b.Server = httptest.NewServer(b.routes())
	return b
}

// URL is the API base URL, including BasePath.
func (b *Backend) URL() string {
	return b.Server.URL + BasePath
}

// Close shuts the server down.
func (b *Backend) Close() {
	b.Server.Close()
}

// AddUser seeds a user that signs in with password and receives token.
func (b *Backend) AddUser(username, password, email, token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users[username] = &user{id: len(b.users) + 1, username: username, password: password, email: email}
	b.tokens[token] = username
}

// AddNote seeds a note owned by username and returns its id.
func (b *Backend) AddNote(username, title, content string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.insert(username, title, content)
}

// Fail makes every call of op answer with status until Recover is called.
// Operations: login, register, logout, list_notes, get_note, create_note,
// update_note, delete_note, get_profile, update_profile.
func (b *Backend) Fail(op string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fail[op] = status
}

// Recover undoes Fail for op.
func (b *Backend) Recover(op string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.fail, op)
}

// Revoke invalidates a token server side.
func (b *Backend) Revoke(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.tokens, token)
}

// NoteCount returns how many notes username owns.
func (b *Backend) NoteCount(username string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, nt := range b.notes {
		if nt.owner == username {
			n++
		}
	}
	return n
}

// ListQueries returns the raw query strings of all list requests so far.
func (b *Backend) ListQueries() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.queries...)
}

func (b *Backend) insert(owner, title, content string) int {
	b.now = b.now.Add(time.Minute)
	id := b.nextID
	b.nextID++
	b.notes[id] = &note{ID: id, Title: title, Content: content, CreatedAt: b.now, UpdatedAt: b.now, owner: owner}
	return id
}

func (b *Backend) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+BasePath+"/login/", b.guard("login", false, b.login))
	mux.HandleFunc("POST "+BasePath+"/register/", b.guard("register", false, b.register))
	mux.HandleFunc("POST "+BasePath+"/logout/", b.guard("logout", true, b.logout))
	mux.HandleFunc("GET "+BasePath+"/notes/", b.guard("list_notes", true, b.listNotes))
	mux.HandleFunc("POST "+BasePath+"/notes/", b.guard("create_note", true, b.createNote))
	mux.HandleFunc("GET "+BasePath+"/notes/{id}/", b.guard("get_note", true, b.getNote))
	mux.HandleFunc("PUT "+BasePath+"/notes/{id}/", b.guard("update_note", true, b.updateNote))
	mux.HandleFunc("DELETE "+BasePath+"/notes/{id}/", b.guard("delete_note", true, b.deleteNote))
	mux.HandleFunc("GET "+BasePath+"/profile/", b.guard("get_profile", true, b.getProfile))
	mux.HandleFunc("PUT "+BasePath+"/profile/", b.guard("update_profile", true, b.updateProfile))
	return mux
}

type handler func(w http.ResponseWriter, r *http.Request, username string)

// guard applies injected failures and bearer authentication, then runs h
// with the backend locked.
func (b *Backend) guard(op string, auth bool, h handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		if status, ok := b.fail[op]; ok {
			http.Error(w, fmt.Sprintf(`{"detail":"%s injected failure"}`, op), status)
			return
		}
		var username string
		if auth {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			username = b.tokens[token]
			if !ok || username == "" {
				http.Error(w, `{"detail":"Invalid token."}`, http.StatusUnauthorized)
				return
			}
		}
		h(w, r, username)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request, _ string) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	u, ok := b.users[req.Username]
	if !ok || u.password != req.Password {
		http.Error(w, `{"non_field_errors":["Unable to log in."]}`, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": b.tokenFor(u.username)})
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request, _ string) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if _, exists := b.users[req.Username]; exists {
		http.Error(w, `{"username":["already exists"]}`, http.StatusBadRequest)
		return
	}
	b.users[req.Username] = &user{id: len(b.users) + 1, username: req.Username, password: req.Password}
	token := "T-" + req.Username
	b.tokens[token] = req.Username
	writeJSON(w, http.StatusCreated, map[string]string{"token": token})
}

func (b *Backend) tokenFor(username string) string {
	for token, owner := range b.tokens {
		if owner == username {
			return token
		}
	}
	token := "T-" + username
	b.tokens[token] = username
	return token
}

func (b *Backend) logout(w http.ResponseWriter, r *http.Request, _ string) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	delete(b.tokens, token)
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) listNotes(w http.ResponseWriter, r *http.Request, username string) {
	b.queries = append(b.queries, r.URL.RawQuery)
	q := strings.ToLower(r.URL.Query().Get("search"))

	results := []*note{}
	for _, n := range b.notes {
		if n.owner != username {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(n.Title), q) && !strings.Contains(strings.ToLower(n.Content), q) {
			continue
		}
		results = append(results, n)
	}
	if r.URL.Query().Get("ordering") == "-updated_at" {
		sort.Slice(results, func(i, j int) bool { return results[i].UpdatedAt.After(results[j].UpdatedAt) })
	} else {
		sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":    len(results),
		"next":     nil,
		"previous": nil,
		"results":  results,
	})
}

func (b *Backend) lookup(w http.ResponseWriter, r *http.Request, username string) *note {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, `{"detail":"Not found."}`, http.StatusNotFound)
		return nil
	}
	n, ok := b.notes[id]
	if !ok || n.owner != username {
		http.Error(w, `{"detail":"Not found."}`, http.StatusNotFound)
		return nil
	}
	return n
}

type noteInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (b *Backend) createNote(w http.ResponseWriter, r *http.Request, username string) {
	var in noteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Title == "" {
		http.Error(w, `{"title":["This field is required."]}`, http.StatusBadRequest)
		return
	}
	id := b.insert(username, in.Title, in.Content)
	writeJSON(w, http.StatusCreated, b.notes[id])
}

func (b *Backend) getNote(w http.ResponseWriter, r *http.Request, username string) {
	if n := b.lookup(w, r, username); n != nil {
		writeJSON(w, http.StatusOK, n)
	}
}

func (b *Backend) updateNote(w http.ResponseWriter, r *http.Request, username string) {
	n := b.lookup(w, r, username)
	if n == nil {
		return
	}
	var in noteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Title == "" {
		http.Error(w, `{"title":["This field is required."]}`, http.StatusBadRequest)
		return
	}
	b.now = b.now.Add(time.Minute)
	n.Title, n.Content, n.UpdatedAt = in.Title, in.Content, b.now
	writeJSON(w, http.StatusOK, n)
}

func (b *Backend) deleteNote(w http.ResponseWriter, r *http.Request, username string) {
	if n := b.lookup(w, r, username); n != nil {
		delete(b.notes, n.ID)
		w.WriteHeader(http.StatusNoContent)
	}
}

type profile struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (b *Backend) getProfile(w http.ResponseWriter, r *http.Request, username string) {
	u := b.users[username]
	writeJSON(w, http.StatusOK, profile{ID: u.id, Username: u.username, Email: u.email})
}

func (b *Backend) updateProfile(w http.ResponseWriter, r *http.Request, username string) {
	var in struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	u := b.users[username]
	if in.Username != "" && in.Username != u.username {
		if _, taken := b.users[in.Username]; taken {
			http.Error(w, `{"username":["already exists"]}`, http.StatusBadRequest)
			return
		}
		delete(b.users, u.username)
		u.username = in.Username
		b.users[u.username] = u
		for token, owner := range b.tokens {
			if owner == username {
				b.tokens[token] = u.username
			}
		}
		for _, n := range b.notes {
			if n.owner == username {
				n.owner = u.username
			}
		}
	}
	u.email = in.Email
	writeJSON(w, http.StatusOK, profile{ID: u.id, Username: u.username, Email: u.email})
}
