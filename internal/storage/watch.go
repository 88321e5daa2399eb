package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"pomodoro/internal/ui/preferences"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the burst of events editors emit on save.
const reloadDelay = 100 * time.Millisecond

// Watch calls onChange with freshly loaded settings whenever the settings file
// is created or written. It blocks until ctx is cancelled.
func Watch(ctx context.Context, configPath string, onChange func(preferences.Settings, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file instead of writing it.
	configDir := filepath.Dir(configPath)
	if err := watcher.Add(configDir); err != nil {
		return fmt.Errorf("watch settings dir: %w", err)
	}

	target := filepath.Clean(configPath)
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				pending = time.After(reloadDelay)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onChange(preferences.Settings{}, fmt.Errorf("watch settings: %w", err))
		case <-pending:
			pending = nil
			onChange(LoadSettings(configPath))
		}
	}
}
