package logtail

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherWakesOnWrite(t *testing.T) {
	path := writeLog(t, "")
	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	defer w.Close()

	appendLog(t, path, "hello\n")

	select {
	case <-w.Wake():
	case <-time.After(2 * time.Second):
		t.Fatal("no wake-up after write")
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	path := writeLog(t, "")
	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.txt"), []byte("x\n"), 0o644))

	select {
	case <-w.Wake():
		t.Fatal("woken by unrelated file")
	case err := <-w.Errors():
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherReportsRemoval(t *testing.T) {
	path := writeLog(t, "")
	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.Remove(path))

	select {
	case err := <-w.Errors():
		assert.ErrorIs(t, err, ErrLogGone)
	case <-time.After(2 * time.Second):
		t.Fatal("removal not reported")
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "logs.txt"), nil)
	assert.Error(t, err)
}
