package platform

import (
	"log/slog"
	"net/http"

	"github.com/aretw0/notely/pkg/app"
	"github.com/aretw0/notely/pkg/core"
)

// options holds the internal configuration for the client.
type options struct {
	baseURL      string
	httpClient   *http.Client
	store        core.KeyValueStore
	sessionFile  string
	ephemeral    bool
	logger       *slog.Logger
	ordering     string
	page         int
	pageSize     int
	theme        app.Theme
	errorHandler func(error)
}

// Option defines a functional option for configuring the client.
type Option func(*options)

// defaultOptions returns the default configuration, read from the environment.
func defaultOptions() *options {
	return &options{
		baseURL:     BaseURL(),
		sessionFile: SessionFile(),
		theme:       app.ThemeLight,
	}
}

// WithBaseURL sets the API base URL (e.g. "http://localhost:8000/api").
// It overrides NOTES_API_HOST and NOTES_API_BASE.
func WithBaseURL(url string) Option {
	return func(o *options) {
		if url != "" {
			o.baseURL = url
		}
	}
}

// WithHTTPClient replaces the HTTP client used for backend calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithStore injects the storage used to persist the session token.
// If provided, the session file is ignored.
func WithStore(store core.KeyValueStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithSessionFile sets the YAML file the token is persisted to.
func WithSessionFile(path string) Option {
	return func(o *options) {
		if path != "" {
			o.sessionFile = path
		}
	}
}

// WithEphemeral keeps the token in memory only. Nothing survives the process.
func WithEphemeral(enabled bool) Option {
	return func(o *options) {
		o.ephemeral = enabled
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithOrdering sets the ordering parameter sent with every note listing
// (e.g. "-updated_at").
func WithOrdering(ordering string) Option {
	return func(o *options) {
		o.ordering = ordering
	}
}

// WithPaging sets the page and page size of every note listing.
func WithPaging(page, pageSize int) Option {
	return func(o *options) {
		o.page, o.pageSize = page, pageSize
	}
}

// WithTheme sets the initial theme.
func WithTheme(theme app.Theme) Option {
	return func(o *options) {
		o.theme = theme
	}
}

// WithWatcherErrorHandler registers a callback for failures of the session
// file watcher, which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}
