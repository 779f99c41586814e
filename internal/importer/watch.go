package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettleDelay is how long a file must go without writes before it is
// handed to the import callback.
const DefaultSettleDelay = 250 * time.Millisecond

// WatchDropFolder calls onFile for every .json file created or rewritten in
// dir, once the file has settled for delay. Calls are serial. It blocks until
// ctx is done and returns nil then.
func WatchDropFolder(ctx context.Context, dir string, delay time.Duration, onFile func(path string)) error {
	if delay <= 0 {
		delay = DefaultSettleDelay
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	ready := make(chan string)
	timers := make(map[string]*time.Timer)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".json") {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			path := event.Name
			if t, ok := timers[path]; ok {
				t.Reset(delay)
				continue
			}
			timers[path] = time.AfterFunc(delay, func() {
				select {
				case ready <- path:
				case <-ctx.Done():
				}
			})

		case path := <-ready:
			delete(timers, path)
			onFile(path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}
}
