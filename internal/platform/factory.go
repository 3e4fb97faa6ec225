package platform

import (
	"context"
	"log/slog"

	"github.com/aretw0/notely/pkg/adapters/fs"
	storage "github.com/aretw0/notely/pkg/adapters/lifecycle"
	"github.com/aretw0/notely/pkg/adapters/memory"
	"github.com/aretw0/notely/pkg/api"
	"github.com/aretw0/notely/pkg/app"
	"github.com/aretw0/notely/pkg/core"
	"github.com/aretw0/notely/pkg/notes"
	"github.com/aretw0/notely/pkg/session"
)

// Client bundles the wired components.
type Client struct {
	*app.App

	API    *api.Client
	Store  core.KeyValueStore
	Broker *core.Broker

	logger *slog.Logger
}

// Follow keeps the session in step with changes other processes make to the
// persisted token, such as a logout in another terminal. onChange, if not
// nil, runs after each reload. Follow returns when ctx is done; stores that
// cannot be watched return immediately.
func (c *Client) Follow(ctx context.Context, onChange func()) error {
	w, ok := c.Store.(core.Watchable)
	if !ok {
		return nil
	}
	src := storage.NewSource(w)
	if err := src.Start(ctx); err != nil {
		return err
	}
	for e := range src.Events() {
		c.logger.Debug("session storage changed", "event", e.String())
		if err := c.Session().Reload(ctx); err != nil {
			c.logger.Warn("failed to reload session", "error", err)
			continue
		}
		if onChange != nil {
			onChange()
		}
	}
	return nil
}

// New wires the API client, token storage, broker, stores and view controller.
//
//	client := notely.New(notely.WithBaseURL("http://localhost:8000/api"))
func New(opts ...Option) *Client {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	apiOpts := []api.Option{api.WithLogger(logger)}
	if o.httpClient != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(o.httpClient))
	}
	client := api.NewClient(o.baseURL, apiOpts...)

	store := o.store
	if store == nil {
		if o.ephemeral {
			store = memory.NewStore()
		} else {
			store = fs.NewStore(fs.Config{
				Path:         o.sessionFile,
				Logger:       logger,
				ErrorHandler: o.errorHandler,
			})
		}
	}

	broker := core.NewBroker()
	sess := session.New(client, store, broker, logger)
	ns := notes.New(client, sess, broker,
		notes.WithOrdering(o.ordering),
		notes.WithPaging(o.page, o.pageSize),
		notes.WithLogger(logger),
	)
	a := app.New(sess, ns, broker, app.WithLogger(logger), app.WithTheme(o.theme))

	logger.Debug("client wired", "base_url", client.BaseURL(), "ephemeral", o.ephemeral)
	return &Client{App: a, API: client, Store: store, Broker: broker, logger: logger}
}
