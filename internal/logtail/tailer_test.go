package logtail

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logs.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func appendLog(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func openTailer(t *testing.T, path string) *Tailer {
	t.Helper()
	tailer, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tailer.Close() })
	return tailer
}

// drain pulls lines until Next reports nothing available
func drain(t *testing.T, tailer *Tailer) []string {
	t.Helper()
	var lines []string
	for {
		line, ok, err := tailer.Next()
		require.NoError(t, err)
		if !ok {
			return lines
		}
		lines = append(lines, line)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestNextSkipsExistingContent(t *testing.T) {
	path := writeLog(t, "old 1\nold 2\n")
	tailer := openTailer(t, path)

	assert.Empty(t, drain(t, tailer))

	appendLog(t, path, "new 1\n")
	assert.Equal(t, []string{"new 1"}, drain(t, tailer))
}

func TestReadExistingThenFollow(t *testing.T) {
	path := writeLog(t, "first\nsecond\r\n")
	tailer := openTailer(t, path)

	lines, err := tailer.ReadExisting()
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, lines)

	// appended between the scan and the first Next must not be lost
	appendLog(t, path, "third\n")
	assert.Equal(t, []string{"third"}, drain(t, tailer))

	_, err = tailer.ReadExisting()
	assert.Error(t, err)
}

func TestReadExistingEmptyFile(t *testing.T) {
	tailer := openTailer(t, writeLog(t, ""))

	lines, err := tailer.ReadExisting()
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestPartialLineIsHeldBack(t *testing.T) {
	path := writeLog(t, "")
	tailer := openTailer(t, path)
	assert.Empty(t, drain(t, tailer))

	appendLog(t, path, "StatusIndicatorStateService: Add")
	assert.Empty(t, drain(t, tailer))

	appendLog(t, path, "ed Busy\nnext")
	assert.Equal(t, []string{"StatusIndicatorStateService: Added Busy"}, drain(t, tailer))

	appendLog(t, path, "\n")
	assert.Equal(t, []string{"next"}, drain(t, tailer))
}

func TestReadExistingHoldsBackTrailingFragment(t *testing.T) {
	path := writeLog(t, "done\nhalf")
	tailer := openTailer(t, path)

	lines, err := tailer.ReadExisting()
	require.NoError(t, err)
	assert.Equal(t, []string{"done"}, lines)

	appendLog(t, path, " line\n")
	assert.Equal(t, []string{"half line"}, drain(t, tailer))
}

func TestAppendedLinesArriveInOrderExactlyOnce(t *testing.T) {
	path := writeLog(t, "")
	tailer := openTailer(t, path)
	assert.Empty(t, drain(t, tailer))

	const n = 200
	var want, got []string
	for i := 0; i < n; i++ {
		line := fmt.Sprintf("line %03d", i)
		want = append(want, line)
		appendLog(t, path, line+"\n")
		// interleave polls with appends at varying rates
		if i%7 == 0 {
			got = append(got, drain(t, tailer)...)
		}
	}
	got = append(got, drain(t, tailer)...)

	assert.Equal(t, want, got)
}

func TestAppendedLinesConcurrentWriter(t *testing.T) {
	path := writeLog(t, "")
	tailer := openTailer(t, path)
	assert.Empty(t, drain(t, tailer))

	const n = 100
	done := make(chan struct{})
	go func() {
		defer close(done)
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return
		}
		defer f.Close()
		for i := 0; i < n; i++ {
			_, _ = fmt.Fprintf(f, "entry %03d\n", i)
			if i%10 == 0 {
				time.Sleep(time.Millisecond)
			}
		}
	}()

	var got []string
	deadline := time.Now().Add(5 * time.Second)
	for len(got) < n && time.Now().Before(deadline) {
		line, ok, err := tailer.Next()
		require.NoError(t, err)
		if !ok {
			time.Sleep(time.Millisecond)
			continue
		}
		got = append(got, line)
	}
	<-done

	require.Len(t, got, n)
	for i, line := range got {
		assert.Equal(t, fmt.Sprintf("entry %03d", i), line)
	}
}
