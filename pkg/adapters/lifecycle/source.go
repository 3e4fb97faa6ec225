// Package lifecycle exposes session storage changes as a lifecycle.Source.
package lifecycle

import (
	"context"
	"fmt"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/notely/pkg/core"
)

type storageSource struct {
	store core.Watchable
	out   chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits a core.Event every time
// the watched storage changes. Watching begins on Start.
func NewSource(store core.Watchable) lifecycle.Source {
	return &storageSource{
		store: store,
		out:   make(chan lifecycle.Event),
	}
}

func (s *storageSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start begins watching. Events stops (is closed) when ctx is done or the
// underlying watch ends.
func (s *storageSource) Start(ctx context.Context) error {
	events, err := s.store.Watch(ctx)
	if err != nil {
		close(s.out)
		return fmt.Errorf("failed to watch storage: %w", err)
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				// core.Event implements lifecycle.Event (has String())
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
