package notely

import (
	"log/slog"
	"net/http"

	"github.com/aretw0/notely/internal/platform"
	"github.com/aretw0/notely/pkg/app"
	"github.com/aretw0/notely/pkg/core"
)

// --- Types ---

// Client is the wired notes client: the view controller plus the API
// client and token storage behind it.
type Client = platform.Client

// Theme is the colour scheme of the interface.
type Theme = app.Theme

const (
	ThemeLight = app.ThemeLight
	ThemeDark  = app.ThemeDark
)

// --- Configuration ---

// Option defines a functional option for configuring the client.
type Option = platform.Option

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return platform.WithBaseURL(url)
}

// WithHTTPClient replaces the HTTP client used for backend calls.
func WithHTTPClient(hc *http.Client) Option {
	return platform.WithHTTPClient(hc)
}

// WithStore injects the storage used to persist the session token.
func WithStore(store core.KeyValueStore) Option {
	return platform.WithStore(store)
}

// WithSessionFile sets the file the token is persisted to.
func WithSessionFile(path string) Option {
	return platform.WithSessionFile(path)
}

// WithEphemeral keeps the token in memory only.
func WithEphemeral(enabled bool) Option {
	return platform.WithEphemeral(enabled)
}

// WithLogger sets the logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithOrdering sets the ordering sent with every note listing.
func WithOrdering(ordering string) Option {
	return platform.WithOrdering(ordering)
}

// WithPaging sets the page and page size of every note listing.
func WithPaging(page, pageSize int) Option {
	return platform.WithPaging(page, pageSize)
}

// WithTheme sets the initial theme.
func WithTheme(theme Theme) Option {
	return platform.WithTheme(theme)
}

// WithWatcherErrorHandler registers a callback for session file watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New creates a client. Configuration not given as options is read from
// the environment (see LoadEnv).
func New(opts ...Option) *Client {
	return platform.New(opts...)
}

// LoadEnv loads .env files into the environment without overriding it.
func LoadEnv(files ...string) error {
	return platform.LoadEnv(files...)
}

// BaseURL resolves the API base URL from NOTES_API_HOST and NOTES_API_BASE.
func BaseURL() string {
	return platform.BaseURL()
}

// SessionFile resolves the token file from NOTES_SESSION_FILE.
func SessionFile() string {
	return platform.SessionFile()
}
