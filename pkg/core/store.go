package core

import "context"

// KeyValueStore is the capability-scoped persistence used for client state.
// Only the bearer token is persisted, under TokenKey; the backend is
// swappable (memory for tests, a file for the CLI).
type KeyValueStore interface {
	// Get returns the value for key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// Watchable defines an interface for stores that can report external changes.
type Watchable interface {
	// Watch emits EventStorageChanged until ctx is cancelled.
	Watch(ctx context.Context) (<-chan Event, error)
}
