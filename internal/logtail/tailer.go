package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const readBufferSize = 64 * 1024

// Tailer follows an append-only text file one line at a time. It is not safe
// for concurrent use; the monitor loop owns it.
type Tailer struct {
	path    string
	file    *os.File
	reader  *bufio.Reader
	pending strings.Builder
	started bool
}

// Open opens the file at path. The file must exist and be readable.
func Open(path string) (*Tailer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return &Tailer{
		path:   path,
		file:   file,
		reader: bufio.NewReaderSize(file, readBufferSize),
	}, nil
}

// Path returns the file being tailed
func (t *Tailer) Path() string {
	return t.path
}

// ReadExisting returns every complete line currently in the file, oldest
// first. It is the one-time startup scan and must be called before the first
// Next; afterwards Next continues exactly where it stopped.
func (t *Tailer) ReadExisting() ([]string, error) {
	if t.started {
		return nil, errors.New("read existing: tailer already following")
	}
	t.started = true

	var lines []string
	for {
		line, ok, err := t.readLine()
		if err != nil {
			return nil, err
		}
		if !ok {
			return lines, nil
		}
		lines = append(lines, line)
	}
}

// Next returns the next complete line appended to the file. ok is false when
// no complete line is available yet; callers back off and retry. Content
// written before the first call is skipped unless ReadExisting consumed it.
func (t *Tailer) Next() (line string, ok bool, err error) {
	if !t.started {
		if _, err := t.file.Seek(0, io.SeekEnd); err != nil {
			return "", false, fmt.Errorf("seek log: %w", err)
		}
		t.reader.Reset(t.file)
		t.started = true
	}
	return t.readLine()
}

// readLine reads up to the next newline. A fragment at EOF is held back until
// the rest of the line arrives.
func (t *Tailer) readLine() (string, bool, error) {
	chunk, err := t.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			t.pending.WriteString(chunk)
			return "", false, nil
		}
		return "", false, fmt.Errorf("read log: %w", err)
	}

	line := chunk
	if t.pending.Len() > 0 {
		t.pending.WriteString(chunk)
		line = t.pending.String()
		t.pending.Reset()
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, true, nil
}

// Close releases the file handle
func (t *Tailer) Close() error {
	return t.file.Close()
}
