package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchNotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "cloud.ply")
	require.NoError(t, os.WriteFile(file, []byte("ply\n"), 0o644))

	fw, err := NewFileWatcher(10*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	changed := make(chan string, 1)
	require.NoError(t, fw.Watch([]string{file}, func(path string) {
		changed <- path
	}))
	fw.Start()

	require.NoError(t, os.WriteFile(file, []byte("ply\nend_header\n"), 0o644))

	select {
	case path := <-changed:
		abs, err := filepath.Abs(file)
		require.NoError(t, err)
		assert.Equal(t, abs, path)
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification received")
	}
}

func TestWatchDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "cloud.ply")
	require.NoError(t, os.WriteFile(file, []byte("a"), 0o644))

	fw, err := NewFileWatcher(100*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	changed := make(chan string, 8)
	require.NoError(t, fw.Watch([]string{file}, func(path string) {
		changed <- path
	}))
	fw.Start()

	// A burst of writes inside the debounce window collapses to one callback.
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(file, []byte("b"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification received")
	}
	select {
	case <-changed:
		t.Fatal("burst produced more than one notification")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchMissingFile(t *testing.T) {
	fw, err := NewFileWatcher(10*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	err = fw.Watch([]string{filepath.Join(t.TempDir(), "absent.ply")}, func(string) {})
	assert.Error(t, err)
}
