// Package notes holds the client-side view of the user's notes: the
// collection returned by the latest search, the search term, the loading and
// error flags, and the selected note.
//
// The collection is a view, not a source of truth. It is replaced wholesale
// on every refresh and never patched after a mutation; mutations trigger a
// refresh instead.
package notes

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/aretw0/notely/pkg/core"
)

// User-facing failure messages.
var (
	ErrRefreshFailed = errors.New("Failed to retrieve notes")
	ErrDeleteFailed  = errors.New("Failed to delete note")
)

// API is the part of the backend the notes store needs.
type API interface {
	ListNotes(ctx context.Context, token string, params core.ListParams) (core.NotePage, error)
	GetNote(ctx context.Context, token string, id core.ID) (core.Note, error)
	CreateNote(ctx context.Context, token string, in core.NoteInput) (core.Note, error)
	UpdateNote(ctx context.Context, token string, id core.ID, in core.NoteInput) (core.Note, error)
	DeleteNote(ctx context.Context, token string, id core.ID) error
}

// TokenSource yields the active bearer token ("" when signed out).
type TokenSource interface {
	Token() string
}

// Store is the notes collection plus its filter, flags and selection.
type Store struct {
	api    API
	tokens TokenSource
	logger *slog.Logger

	mu       sync.RWMutex
	notes    []core.Note
	search   string
	loading  bool
	err      error
	selected core.ID
	seq      uint64 // sequence number of the latest issued refresh
	ordering string
	page     int
	pageSize int
}

// Option configures a Store.
type Option func(*Store)

// WithOrdering sets the ordering parameter sent on every refresh.
func WithOrdering(ordering string) Option {
	return func(s *Store) {
		s.ordering = ordering
	}
}

// WithPaging sets the page and page size sent on every refresh.
// Zero values fall back to the backend defaults.
func WithPaging(page, pageSize int) Option {
	return func(s *Store) {
		s.page, s.pageSize = page, pageSize
	}
}

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a notes store and subscribes it to token changes:
// a new token triggers a refresh, a cleared token resets the store.
func New(api API, tokens TokenSource, broker *core.Broker, opts ...Option) *Store {
	s := &Store{
		api:    api,
		tokens: tokens,
		logger: slog.New(slog.DiscardHandler),
		notes:  []core.Note{},
	}
	for _, opt := range opts {
		opt(s)
	}
	broker.Subscribe(s.onTokenChanged)
	return s
}

func (s *Store) onTokenChanged(ctx context.Context, e core.Event) {
	if e.Type != core.EventTokenChanged {
		return
	}
	if e.Token == "" {
		s.Reset()
		return
	}
	s.Refresh(ctx)
}

// Refresh refetches the collection with the current search term.
// It does nothing while signed out. Only the response to the most recently
// issued refresh is applied, and only if the token it was issued with is still
// active; other responses are discarded on arrival.
func (s *Store) Refresh(ctx context.Context) {
	token := s.tokens.Token()
	if token == "" {
		return
	}

	s.mu.Lock()
	s.seq++
	seq := s.seq
	params := core.ListParams{Search: s.search, Ordering: s.ordering, Page: s.page, PageSize: s.pageSize}
	s.loading = true
	s.err = nil
	s.mu.Unlock()

	page, err := s.api.ListNotes(ctx, token, params)
	current := s.tokens.Token()

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		s.logger.Debug("discarding stale notes response", "seq", seq, "latest", s.seq, "search", params.Search)
		return
	}
	s.loading = false
	if current != token {
		// The session changed while the request was in flight.
		s.logger.Debug("discarding notes response for a replaced session", "seq", seq)
		s.err = nil
		return
	}
	if err != nil {
		s.logger.Debug("notes refresh failed", "error", err)
		s.err = ErrRefreshFailed
		return
	}
	s.notes = page.Results
}

// SetSearch changes the search term. While signed in, each change triggers
// exactly one refresh; while signed out the term is only remembered.
func (s *Store) SetSearch(ctx context.Context, term string) {
	s.mu.Lock()
	if s.search == term {
		s.mu.Unlock()
		return
	}
	s.search = term
	s.mu.Unlock()

	s.Refresh(ctx)
}

// Create validates and creates a note. An invalid title never reaches the network.
// The caller decides what to select and when to refresh.
func (s *Store) Create(ctx context.Context, title, content string) (core.Note, error) {
	in := core.NoteInput{Title: title, Content: content}
	if err := core.ValidateStruct(in); err != nil {
		return core.Note{}, err
	}
	token := s.tokens.Token()
	if token == "" {
		return core.Note{}, core.ErrNotSignedIn
	}
	return s.api.CreateNote(ctx, token, in)
}

// Update validates and fully replaces the title and content of note id.
func (s *Store) Update(ctx context.Context, id core.ID, title, content string) (core.Note, error) {
	in := core.NoteInput{Title: title, Content: content}
	if err := core.ValidateStruct(in); err != nil {
		return core.Note{}, err
	}
	token := s.tokens.Token()
	if token == "" {
		return core.Note{}, core.ErrNotSignedIn
	}
	return s.api.UpdateNote(ctx, token, id, in)
}

// Delete removes note id. On success the selection is cleared and the
// collection refreshed; on failure the store error is set and nothing else changes.
func (s *Store) Delete(ctx context.Context, id core.ID) error {
	token := s.tokens.Token()
	if token == "" {
		return core.ErrNotSignedIn
	}

	if err := s.api.DeleteNote(ctx, token, id); err != nil {
		s.logger.Debug("delete failed", "id", id, "error", err)
		s.mu.Lock()
		s.err = ErrDeleteFailed
		s.mu.Unlock()
		return ErrDeleteFailed
	}

	s.ClearSelection()
	s.Refresh(ctx)
	return nil
}

// Fetch loads a single note straight from the backend, bypassing the collection.
func (s *Store) Fetch(ctx context.Context, id core.ID) (core.Note, error) {
	token := s.tokens.Token()
	if token == "" {
		return core.Note{}, core.ErrNotSignedIn
	}
	return s.api.GetNote(ctx, token, id)
}

// Select focuses note id. Selecting an id absent from the collection is legal.
func (s *Store) Select(id core.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = id
}

// ClearSelection drops the focused note.
func (s *Store) ClearSelection() {
	s.Select("")
}

// SelectedID returns the focused id, which may not resolve.
func (s *Store) SelectedID() core.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// Selected resolves the selection against the current collection.
func (s *Store) Selected() (core.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == "" {
		return core.Note{}, false
	}
	for _, n := range s.notes {
		if n.ID == s.selected {
			return n, true
		}
	}
	return core.Note{}, false
}

// Notes returns a copy of the current collection in server order.
func (s *Store) Notes() []core.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Search returns the current search term.
func (s *Store) Search() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.search
}

// Loading reports whether the latest refresh is still in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last store-level failure, or nil.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Reset empties the collection, error, loading flag and selection. Any
// refresh still in flight is invalidated. The search term is kept.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.notes = []core.Note{}
	s.loading = false
	s.err = nil
	s.selected = ""
}
