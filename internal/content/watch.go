package content

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads the catalog whenever its file changes, until ctx is done.
// The parent directory is watched because editors usually replace the file
// instead of writing it in place.
func (c *Catalog) Watch(ctx context.Context) error {
	if c.path == "" {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("content: failed to create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(c.path)); err != nil {
		w.Close()
		return fmt.Errorf("content: failed to watch %s: %w", c.path, err)
	}

	target := filepath.Clean(c.path)
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				if err := c.Reload(); err != nil {
					zap.L().Warn("content: reload failed, keeping previous catalog", zap.Error(err))
					continue
				}
				zap.L().Info("content: catalog reloaded", zap.String("path", c.path), zap.Int("items", len(c.Items())))
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				zap.L().Warn("content: watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}
