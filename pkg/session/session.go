// Package session holds the signed-in state of the client: the bearer token
// and the user's profile.
//
// The token is the only piece of client state that is persisted. Every token
// transition is published on the core.Broker so other stores can react to it
// (the notes store refetches, the profile is loaded) without the session
// knowing about them.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/aretw0/notely/pkg/core"
)

// User-facing failure messages. Causes are never revealed.
var (
	ErrLoginFailed         = errors.New("Login failed - check credentials")
	ErrRegisterFailed      = errors.New("Registration failed - try a different username")
	ErrProfileUpdateFailed = errors.New("Failed to update profile")
)

// API is the part of the backend the session needs.
type API interface {
	Login(ctx context.Context, username, password string) (core.AuthResult, error)
	Register(ctx context.Context, username, password string) (core.AuthResult, error)
	Logout(ctx context.Context, token string) error
	GetProfile(ctx context.Context, token string) (core.Profile, error)
	UpdateProfile(ctx context.Context, token string, in core.ProfileInput) (core.Profile, error)
}

// Store holds the current token and profile.
type Store struct {
	api    API
	kv     core.KeyValueStore
	broker *core.Broker
	logger *slog.Logger

	mu      sync.RWMutex
	token   string
	profile *core.Profile
}

// New creates a session store. It subscribes itself to token changes so the
// profile is fetched whenever a token becomes active.
func New(api API, kv core.KeyValueStore, broker *core.Broker, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Store{
		api:    api,
		kv:     kv,
		broker: broker,
		logger: logger,
	}
	broker.Subscribe(s.onTokenChanged)
	return s
}

// Token returns the active bearer token, or "" when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SignedIn reports whether a token is active.
func (s *Store) SignedIn() bool {
	return s.Token() != ""
}

// Profile returns a copy of the loaded profile. It may lag the token briefly.
func (s *Store) Profile() (core.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return core.Profile{}, false
	}
	return *s.profile, true
}

// Login authenticates and activates the issued token.
func (s *Store) Login(ctx context.Context, username, password string) error {
	res, err := s.api.Login(ctx, username, password)
	if err != nil || res.Token == "" {
		s.logger.Debug("login rejected", "username", username, "error", err)
		return ErrLoginFailed
	}
	return s.activate(ctx, res.Token)
}

// Register creates an account and activates the issued token.
func (s *Store) Register(ctx context.Context, username, password string) error {
	res, err := s.api.Register(ctx, username, password)
	if err != nil || res.Token == "" {
		s.logger.Debug("registration rejected", "username", username, "error", err)
		return ErrRegisterFailed
	}
	return s.activate(ctx, res.Token)
}

// Logout signs out. The backend call may fail; local state is cleared regardless.
func (s *Store) Logout(ctx context.Context) {
	token := s.Token()
	if token != "" {
		if err := s.api.Logout(ctx, token); err != nil {
			s.logger.Debug("ignoring logout failure", "error", err)
		}
	}
	s.clear(ctx)
}

// UpdateProfile sends the full profile form. On success the in-memory profile
// is replaced by the server's copy; on failure it is left untouched.
func (s *Store) UpdateProfile(ctx context.Context, in core.ProfileInput) (core.Profile, error) {
	token := s.Token()
	if token == "" {
		return core.Profile{}, core.ErrNotSignedIn
	}

	updated, err := s.api.UpdateProfile(ctx, token, in)
	if err != nil {
		s.logger.Debug("profile update rejected", "error", err)
		return core.Profile{}, ErrProfileUpdateFailed
	}

	s.mu.Lock()
	if s.token != token {
		// Signed out (or switched user) while the request was in flight.
		s.mu.Unlock()
		return core.Profile{}, core.ErrNotSignedIn
	}
	s.profile = &updated
	s.mu.Unlock()
	return updated, nil
}

// Restore activates the token persisted by a previous run, if any.
func (s *Store) Restore(ctx context.Context) error {
	token, err := s.kv.Get(ctx, core.TokenKey)
	if errors.Is(err, core.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	s.mu.Lock()
	s.token = token
	s.profile = nil
	s.mu.Unlock()

	s.logger.Debug("session restored")
	s.broker.Publish(ctx, core.Event{Type: core.EventTokenChanged, Token: token})
	return nil
}

// Reload re-reads the persisted token after an external change and follows it:
// a new token is activated, a removed token signs the session out locally.
func (s *Store) Reload(ctx context.Context) error {
	stored, err := s.kv.Get(ctx, core.TokenKey)
	if err != nil && !errors.Is(err, core.ErrKeyNotFound) {
		return err
	}

	s.mu.Lock()
	if stored == s.token {
		s.mu.Unlock()
		return nil
	}
	s.token = stored
	s.profile = nil
	s.mu.Unlock()

	s.logger.Debug("session changed externally", "signed_in", stored != "")
	s.broker.Publish(ctx, core.Event{Type: core.EventTokenChanged, Token: stored})
	return nil
}

// activate stores a fresh token in memory and storage, then announces it.
func (s *Store) activate(ctx context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.profile = nil
	s.mu.Unlock()

	if err := s.kv.Set(ctx, core.TokenKey, token); err != nil {
		// The session still works for this process.
		s.logger.Warn("failed to persist token", "error", err)
	}

	s.broker.Publish(ctx, core.Event{Type: core.EventTokenChanged, Token: token})
	return nil
}

// clear drops token, profile and persisted token, then announces sign-out.
func (s *Store) clear(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.profile = nil
	s.mu.Unlock()

	if err := s.kv.Remove(ctx, core.TokenKey); err != nil {
		s.logger.Warn("failed to remove persisted token", "error", err)
	}

	s.broker.Publish(ctx, core.Event{Type: core.EventTokenChanged})
}

// onTokenChanged loads the profile for a newly active token. A failure is
// treated as an expired token: the session is cleared without an error banner.
func (s *Store) onTokenChanged(ctx context.Context, e core.Event) {
	if e.Type != core.EventTokenChanged || e.Token == "" {
		return
	}

	profile, err := s.api.GetProfile(ctx, e.Token)

	s.mu.Lock()
	if s.token != e.Token {
		// Superseded while the profile was loading.
		s.mu.Unlock()
		return
	}
	if err == nil {
		s.profile = &profile
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.logger.Debug("profile fetch failed, signing out", "error", err)
	s.clear(ctx)
}
