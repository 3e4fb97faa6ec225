package notes

import "github.com/aretw0/introspection"

// State is a snapshot of the notes store for observability.
type State struct {
	Count    int    `json:"count"`
	Search   string `json:"search"`
	Loading  bool   `json:"loading"`
	Error    string `json:"error,omitempty"`
	Selected string `json:"selected,omitempty"`
	Sequence uint64 `json:"sequence"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := State{
		Count:    len(s.notes),
		Search:   s.search,
		Loading:  s.loading,
		Selected: s.selected.String(),
		Sequence: s.seq,
	}
	if s.err != nil {
		st.Error = s.err.Error()
	}
	return st
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "notes"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
