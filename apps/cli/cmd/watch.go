package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/abdul-hamid-achik/vercel-env-push/packages/output"
	"github.com/fsnotify/fsnotify"
)

// WatchDebounceDelay is the debounce delay for file watch events
const WatchDebounceDelay = 300 * time.Millisecond

// watchFile calls run after every change of file until ctx is done. Runs
// never overlap. lastErr is the result of the run before watching started;
// the error of the latest run is returned when watching stops.
func watchFile(ctx context.Context, file string, console *output.Console, run func() error, lastErr error) error {
	abs, err := filepath.Abs(file)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// editors often replace the file, so watch its directory
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	console.Info("\nWatching %s for changes... (press Ctrl+C to stop)", file)

	var (
		debounce *time.Timer
		trigger  = make(chan struct{}, 1)
	)

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return lastErr

		case event, ok := <-watcher.Events:
			if !ok {
				return lastErr
			}
			if event.Name != abs || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}

			// Debounce: reset timer on each event
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(WatchDebounceDelay, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})

		case <-trigger:
			console.Info("\nFile changed: %s\nPushing again...\n", file)
			lastErr = run()
			if lastErr != nil {
				console.Error(lastErr)
			}
			console.Info("\nWatching %s for changes... (press Ctrl+C to stop)", file)

		case err, ok := <-watcher.Errors:
			if !ok {
				return lastErr
			}
			console.Error(fmt.Errorf("watcher error: %w", err))
		}
	}
}
