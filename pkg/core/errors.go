package core

import "errors"

// Common errors.
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrNotSignedIn = errors.New("not signed in")
	ErrNoSelection = errors.New("no note selected")
)

// APIError is returned by every failed backend call.
// Message is a fixed, operation-specific phrase: server-provided detail is
// deliberately discarded so callers never depend on error payloads.
type APIError struct {
	Op      string // e.g. "login", "list_notes"
	Status  int    // HTTP status, 0 for transport or decode failures
	Message string
	Err     error // underlying transport/decode error, if any
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying transport error for logging.
func (e *APIError) Unwrap() error {
	return e.Err
}

// IsAPIError reports whether err is (or wraps) an *APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
