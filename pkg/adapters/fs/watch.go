package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/notes/pkg/core"
)

// Watch implements core.Watchable. It emits core.EventStorageChanged when the
// state file is replaced or written by someone else; writes made through this
// Storage are not reported. The channel closes when ctx is done.
func (s *Storage) Watch(ctx context.Context) (<-chan core.Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the directory: atomic renames replace the file inode.
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(s.path), err)
	}

	events := make(chan core.Event, 16)
	s.setWatcherActive(true)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(events)
		defer s.setWatcherActive(false)
		defer watcher.Close()
		return s.watchLoop(ctx, watcher, events)
	}, lifecycle.WithErrorHandler(func(err error) {
		s.handleWatcherError(fmt.Errorf("watcher panic: %w", err))
	}))

	return events, nil
}

func (s *Storage) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, events chan<- core.Event) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != s.path {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			s.logger.Debug("state file event", "op", event.Op.String())
			if !s.changedExternally() {
				continue
			}

			select {
			case events <- core.Event{Type: core.EventStorageChanged, At: time.Now()}:
			case <-ctx.Done():
				return nil
			}

		case wErr, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			s.handleWatcherError(wErr)
		}
	}
}

func (s *Storage) handleWatcherError(err error) {
	s.logger.Error("fsnotify error", "error", err)
	if s.config.ErrorHandler != nil {
		s.config.ErrorHandler(err)
	}
}
