package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/notely/pkg/core"
)

// settleDelay coalesces the burst of events an atomic replace produces.
const settleDelay = 50 * time.Millisecond

// Watch reports changes to the session file made by any process.
// The returned channel is closed when ctx is cancelled.
func (s *Store) Watch(ctx context.Context) (<-chan core.Event, error) {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// The directory is watched, not the file: atomic renames replace the inode.
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	events := make(chan core.Event, 1)
	w := &watchWorker{store: s, watcher: watcher, events: events}

	s.setWatcherActive(true)
	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		s.handleWatcherError(fmt.Errorf("watcher stopped: %w", err))
	}))

	return events, nil
}

type watchWorker struct {
	store   *Store
	watcher *fsnotify.Watcher
	events  chan core.Event
}

// run is the main event loop of the watcher.
func (w *watchWorker) run(ctx context.Context) (err error) {
	logger := w.store.config.Logger
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if logger != nil && logger.Enabled(ctx, slog.LevelDebug) {
				logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			}
		}
	}()
	defer close(w.events)
	defer w.store.setWatcherActive(false)
	defer w.watcher.Close()

	// A stopped timer arms the debounce; pending tracks whether it is running.
	timer := time.NewTimer(settleDelay)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}
			if logger != nil {
				logger.Debug("session file event", "name", event.Name, "op", event.Op.String())
			}
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(settleDelay)
			pending = true

		case <-timer.C:
			pending = false
			select {
			case w.events <- core.Event{Type: core.EventStorageChanged, Key: core.TokenKey, Timestamp: time.Now().Unix()}:
			case <-ctx.Done():
				return nil
			}

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.store.handleWatcherError(wErr)
		}
	}
}

// relevant filters out events on other files and on atomic-write scratch files.
func (w *watchWorker) relevant(event fsnotify.Event) bool {
	if isTempFile(event.Name) {
		return false
	}
	if filepath.Clean(event.Name) != w.store.Path {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

func (s *Store) handleWatcherError(err error) {
	if s.config.Logger != nil {
		s.config.Logger.Error("fsnotify error", "error", err)
	}
	if s.config.ErrorHandler != nil {
		s.config.ErrorHandler(err)
	}
}
