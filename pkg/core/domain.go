// Package core holds the domain types shared by the notes client: notes,
// profiles, events and the contracts the stores depend on.
package core

import "fmt"

// EventType represents the kind of change published on the Broker.
type EventType string

const (
	// EventTokenChanged fires whenever the active bearer token is set or cleared.
	EventTokenChanged EventType = "TOKEN_CHANGED"
	// EventStorageChanged fires when the persisted key-value storage changed
	// outside of this process (e.g. another CLI invocation logged out).
	EventStorageChanged EventType = "STORAGE_CHANGED"
)

// Event represents a state change inside the client.
type Event struct {
	Type      EventType
	Token     string // Only for EventTokenChanged. Empty means signed out.
	Key       string // Only for EventStorageChanged.
	Timestamp int64  // Unix timestamp
}

// String implements fmt.Stringer. The token itself is never printed.
func (e Event) String() string {
	switch e.Type {
	case EventTokenChanged:
		return fmt.Sprintf("%s signed_in=%t", e.Type, e.Token != "")
	case EventStorageChanged:
		return fmt.Sprintf("%s key=%s", e.Type, e.Key)
	}
	return string(e.Type)
}

// TokenKey is the fixed storage key the bearer token is persisted under.
const TokenKey = "token"

type contextKey string

// RequestIDKey is the context key for forcing a specific X-Request-ID on an API call.
const RequestIDKey contextKey = "request_id"
