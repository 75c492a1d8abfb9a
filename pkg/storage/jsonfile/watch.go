package jsonfile

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls fn whenever the reminder file is written, created or renamed
// into place, including by this driver. It blocks until ctx is cancelled or
// the watcher fails.
func (d *Driver) Watch(ctx context.Context, fn func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating reminders watcher: %w", err)
	}
	defer watcher.Close()

	// Saves rename a temp file over the original, so the directory is
	// watched rather than the file itself.
	if err := watcher.Add(filepath.Dir(d.path)); err != nil {
		return fmt.Errorf("watching reminders dir: %w", err)
	}

	target := filepath.Clean(d.path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			d.logger.Debug("reminders file changed", "op", event.Op.String())
			fn()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("reminders watcher error: %w", err)
		}
	}
}
