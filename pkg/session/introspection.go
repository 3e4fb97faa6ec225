package session

import "github.com/aretw0/introspection"

// State is a snapshot of the session for observability. The token is never exposed.
type State struct {
	SignedIn   bool   `json:"signed_in"`
	HasProfile bool   `json:"has_profile"`
	Username   string `json:"username,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := State{SignedIn: s.token != "", HasProfile: s.profile != nil}
	if s.profile != nil {
		st.Username = s.profile.Username
	}
	return st
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "session"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
