// Package fs persists client state in a small YAML file so the session
// survives process restarts.
package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/notely/pkg/core"
)

// Config holds the configuration for the file store.
type Config struct {
	Path         string // e.g. ~/.config/notely/session.yaml
	Logger       *slog.Logger
	ErrorHandler func(error) // called for watcher runtime failures
}

// Store implements core.KeyValueStore on a YAML mapping file.
// The file is re-read on every Get so writes from other processes are seen.
type Store struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastWrite     *time.Time
}

// NewStore creates a file-backed store. The file is created lazily on first Set.
func NewStore(config Config) *Store {
	return &Store{
		Path:   filepath.Clean(config.Path),
		config: config,
	}
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values, err := s.load()
	if err != nil {
		return "", err
	}
	v, ok := values[key]
	if !ok {
		return "", core.ErrKeyNotFound
	}
	return v, nil
}

// Set stores value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	return s.save(values)
}

// Remove deletes key. The file itself is removed once it holds no keys.
func (s *Store) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)

	if len(values) == 0 {
		if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove session file: %w", err)
		}
		s.touch()
		return nil
	}
	return s.save(values)
}

// load reads the mapping. A missing file is an empty mapping.
// Caller must hold s.mu.
func (s *Store) load() (map[string]string, error) {
	values := make(map[string]string)

	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	if err := yaml.Unmarshal(data, &values); err != nil {
		// A corrupt session file is treated as signed out rather than fatal.
		if s.config.Logger != nil {
			s.config.Logger.Warn("ignoring unreadable session file", "path", s.Path, "error", err)
		}
		return make(map[string]string), nil
	}
	if values == nil {
		values = make(map[string]string)
	}
	return values, nil
}

// save writes the mapping atomically. Caller must hold s.mu for writing.
func (s *Store) save(values map[string]string) error {
	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode session file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := replaceFile(s.Path, data, 0600); err != nil {
		return err
	}
	s.touch()
	return nil
}

func (s *Store) touch() {
	now := time.Now()
	s.lastWrite = &now
}

var _ core.KeyValueStore = (*Store)(nil)
var _ core.Watchable = (*Store)(nil)
