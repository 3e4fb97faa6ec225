package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ID is an opaque, server-assigned identifier.
// The backend may encode it as a JSON number or string; the client only
// compares and echoes it, so it is kept in its textual form.
type ID string

// UnmarshalJSON accepts both JSON strings and JSON numbers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", string(data), err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the textual form of the identifier.
func (id ID) String() string { return string(id) }

// Note is the central entity of the domain.
// ID, CreatedAt and UpdatedAt are server-authoritative: the client never sets them.
type Note struct {
	ID        ID        `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// NoteInput is the writable part of a Note, sent on create and update (full replace).
type NoteInput struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content"`
}

// NotePage is the list-notes response. Only Results is read by the client.
type NotePage struct {
	Count    int     `json:"count,omitempty"`
	Next     *string `json:"next,omitempty"`
	Previous *string `json:"previous,omitempty"`
	Results  []Note  `json:"results"`
}

// Default list parameters.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
)

// ListParams filters the list-notes call. Zero values mean defaults.
type ListParams struct {
	Search   string
	Ordering string
	Page     int
	PageSize int
}

// WithDefaults returns a copy with Page and PageSize defaulted.
func (p ListParams) WithDefaults() ListParams {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	return p
}
