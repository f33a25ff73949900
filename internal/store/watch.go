package store

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// DefaultDebounce is the quiet period Watch waits for before reporting.
const DefaultDebounce = 500 * time.Millisecond

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// Watch calls fn once changes in dir settle for debounce. It returns when ctx
// is cancelled or the watcher fails to start. fn runs on the watch goroutine,
// so a slow fn delays the next notification.
func Watch(ctx context.Context, dir string, debounce time.Duration, logger interfaces.Logger, fn func(ctx context.Context)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("store: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("store: watch %s: %w", dir, err)
	}

	var settle <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&relevantOps == 0 {
				continue
			}
			if logger != nil {
				logger.Debug("store.watch.event", "path", event.Name, "op", event.Op.String())
			}
			settle = time.After(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if logger != nil {
				logger.Warn("store.watch.error", "error", err)
			}
		case <-settle:
			settle = nil
			fn(ctx)
		}
	}
}
