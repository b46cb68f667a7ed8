package output

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/vburojevic/deskbell/internal/actuator"
	"github.com/vburojevic/deskbell/internal/domain"
)

// Emitter is the event sink shared by the NDJSON and text writers
type Emitter interface {
	WriteCommand(cmd actuator.Command, state domain.AppState, err error) error
	WriteStatus(state domain.AppState) error
	WriteClassification(n int, ev domain.LogEvent) error
	WriteResolution(lines int, res domain.Resolution) error
	WriteError(code, message string, hint ...string) error
	WriteInfo(message, logPath, port string) error
	WriteWarning(message string) error
	WriteMetadata(version, commit string) error
}

var (
	_ Emitter = (*NDJSONWriter)(nil)
	_ Emitter = (*TextWriter)(nil)
)

// NewEmitter returns an NDJSON emitter for format "ndjson" and a text emitter
// otherwise. Text is styled only when w is a terminal.
func NewEmitter(format string, w io.Writer) Emitter {
	if format == "ndjson" {
		return NewNDJSONWriter(w)
	}
	return NewTextWriter(w, IsTerminal(w))
}

// IsTerminal reports whether w is a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
