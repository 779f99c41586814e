package importer

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchDropFolder_DeliversSettledJSONFiles(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var seen []string
	done := make(chan error, 1)
	go func() {
		done <- WatchDropFolder(ctx, dir, 50*time.Millisecond, func(path string) {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, filepath.Base(path))
		})
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(dir, "shift-a.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"sessions": [`), 0o644))
	require.NoError(t, os.WriteFile(path, []byte(`{"sessions": []}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) > 0
	}, 3*time.Second, 20*time.Millisecond)

	// Let any stray timers fire before checking for duplicates.
	time.Sleep(150 * time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"shift-a.json"}, seen)
}

func TestWatchDropFolder_MissingDirectory(t *testing.T) {
	err := WatchDropFolder(context.Background(), filepath.Join(t.TempDir(), "nope"), 0, func(string) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watching")
}
