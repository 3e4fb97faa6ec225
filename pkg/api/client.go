// Package api wraps every endpoint of the notes backend behind typed methods.
//
// Every method attaches the bearer token when one is supplied, sends and
// receives JSON, and turns any non-success outcome into a *core.APIError
// carrying a fixed, operation-specific message.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/aretw0/notely/pkg/core"
)

// Fixed failure messages, one per operation.
const (
	MsgLogin         = "Login failed"
	MsgRegister      = "Registration failed"
	MsgLogout        = "Logout failed"
	MsgListNotes     = "Failed to retrieve notes"
	MsgGetNote       = "Failed to retrieve note"
	MsgCreateNote    = "Failed to create note"
	MsgUpdateNote    = "Failed to update note"
	MsgDeleteNote    = "Failed to delete note"
	MsgGetProfile    = "Failed to get user profile"
	MsgUpdateProfile = "Failed to update profile"
)

// Client talks to the notes backend over REST.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client for the API rooted at baseURL (e.g. "http://host/api").
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request describes a single backend call.
type request struct {
	op      string
	message string
	method  string
	path    string // relative to baseURL, with leading and trailing slash
	token   string
	body    any
}

// do performs the call and decodes a successful body into out (if non-nil).
func (c *Client) do(ctx context.Context, r request, out any) error {
	fail := func(status int, err error) error {
		return &core.APIError{Op: r.op, Status: status, Message: r.message, Err: err}
	}

	var reader io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return fail(0, fmt.Errorf("marshal request: %w", err))
		}
		reader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, reader)
	if err != nil {
		return fail(0, fmt.Errorf("create request: %w", err))
	}

	requestID, ok := ctx.Value(core.RequestIDKey).(string)
	if !ok || requestID == "" {
		requestID = uuid.NewString()
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if r.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.trace(ctx, r, requestID, 0, err)
		return fail(0, fmt.Errorf("send request: %w", err))
	}
	defer resp.Body.Close()

	c.trace(ctx, r, requestID, resp.StatusCode, nil)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Server detail is intentionally dropped.
		_, _ = io.Copy(io.Discard, resp.Body)
		return fail(resp.StatusCode, nil)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fail(resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (c *Client) trace(ctx context.Context, r request, requestID string, status int, err error) {
	if c.logger == nil {
		return
	}
	if err != nil {
		c.logger.DebugContext(ctx, "api request failed",
			"op", r.op, "method", r.method, "path", r.path, "request_id", requestID, "error", err)
		return
	}
	c.logger.DebugContext(ctx, "api request",
		"op", r.op, "method", r.method, "path", r.path, "request_id", requestID, "status", status)
}

// call is the typed variant of do for endpoints returning a JSON entity.
func call[T any](ctx context.Context, c *Client, r request) (T, error) {
	var out T
	if err := c.do(ctx, r, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
