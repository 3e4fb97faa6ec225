// Package memory provides an in-process core.KeyValueStore.
// Values live only as long as the process, which makes it the store of
// choice for tests and for ephemeral CLI sessions.
package memory

import (
	"context"

	"github.com/aretw0/introspection"
	"github.com/patrickmn/go-cache"

	"github.com/aretw0/notely/pkg/core"
)

// Store implements core.KeyValueStore on top of go-cache with no expiration.
type Store struct {
	cache *cache.Cache
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if x, found := s.cache.Get(key); found {
		return x.(string), nil
	}
	return "", core.ErrKeyNotFound
}

// Set stores value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	s.cache.Set(key, value, cache.NoExpiration)
	return nil
}

// Remove deletes key.
func (s *Store) Remove(ctx context.Context, key string) error {
	s.cache.Delete(key)
	return nil
}

// StoreState exposes internal state for observability.
type StoreState struct {
	Keys int `json:"keys"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	return StoreState{Keys: s.cache.ItemCount()}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "memory-store"
}

var _ core.KeyValueStore = (*Store)(nil)
var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
