package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/codefionn/rpncalc/internal/logger"
	"github.com/fsnotify/fsnotify"
)

// Watch reloads path whenever it is written or created, including by a rename
// and passes the result of Load to onChange. The parent directory is watched
// because editors and Save replace the file instead of writing it in place.
// Watching stops when ctx is done.
func Watch(ctx context.Context, path string, onChange func(*Config, error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				logger.Global().Debug("config changed: %s", event)
				cfg, err := Load(abs)
				onChange(cfg, err)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Global().Error("config watcher error: %v", err)
			}
		}
	}()
	return nil
}
