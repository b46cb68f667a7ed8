package output

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/vburojevic/deskbell/internal/actuator"
	"github.com/vburojevic/deskbell/internal/domain"
)

// NDJSONWriter writes events as NDJSON
type NDJSONWriter struct {
	mu      sync.Mutex
	w       io.Writer
	encoder *json.Encoder
	now     func() time.Time
}

// NewNDJSONWriter creates a new NDJSON writer
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false) // log lines contain '<' and '>'
	return &NDJSONWriter{
		w:       w,
		encoder: enc,
		now:     time.Now,
	}
}

// CommandOutput is one attempted actuator command
type CommandOutput struct {
	Type          string `json:"type"` // Always "command"
	SchemaVersion int    `json:"schemaVersion"`
	Timestamp     string `json:"timestamp"`
	Command       string `json:"command"`
	Wire          string `json:"wire"`
	Mode          string `json:"mode"`
	Displayed     string `json:"displayed"`
	Error         string `json:"error,omitempty"`
}

// StatusOutput is a snapshot of the presence state
type StatusOutput struct {
	Type          string `json:"type"` // Always "status"
	SchemaVersion int    `json:"schemaVersion"`
	Timestamp     string `json:"timestamp"`
	Mode          string `json:"mode"`
	LastColor     string `json:"last_color"`
	LastStatus    string `json:"last_status,omitempty"`
	Displayed     string `json:"displayed"`
}

// ClassificationOutput is the classifier verdict for one line
type ClassificationOutput struct {
	Type          string `json:"type"` // Always "classification"
	SchemaVersion int    `json:"schemaVersion"`
	Line          int    `json:"line"`
	Kind          string `json:"kind"`
	Rule          string `json:"rule,omitempty"`
	Token         string `json:"token,omitempty"`
	Status        string `json:"status,omitempty"`
	Recognized    bool   `json:"recognized,omitempty"`
}

// ResolutionOutput is the outcome of resolving a batch of lines
type ResolutionOutput struct {
	Type          string `json:"type"` // Always "resolution"
	SchemaVersion int    `json:"schemaVersion"`
	Lines         int    `json:"lines"`
	Color         string `json:"color,omitempty"`
	Status        string `json:"status,omitempty"`
	Notify        string `json:"notify"`
}

// ErrorOutput represents a structured error
type ErrorOutput struct {
	Type          string `json:"type"` // Always "error"
	SchemaVersion int    `json:"schemaVersion"`
	Code          string `json:"code"`
	Message       string `json:"message"`
	Hint          string `json:"hint,omitempty"`
}

// InfoOutput represents an informational message
type InfoOutput struct {
	Type          string `json:"type"` // Always "info"
	SchemaVersion int    `json:"schemaVersion"`
	Message       string `json:"message"`
	LogPath       string `json:"log_path,omitempty"`
	Port          string `json:"port,omitempty"`
}

// WarningOutput represents a warning message
type WarningOutput struct {
	Type          string `json:"type"` // Always "warning"
	SchemaVersion int    `json:"schemaVersion"`
	Message       string `json:"message"`
}

// MetadataOutput carries build information
type MetadataOutput struct {
	Type          string `json:"type"` // Always "metadata"
	SchemaVersion int    `json:"schemaVersion"`
	Version       string `json:"version"`
	Commit        string `json:"commit"`
}

func (w *NDJSONWriter) encode(v interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.encoder.Encode(v)
}

func (w *NDJSONWriter) timestamp() string {
	return w.now().UTC().Format(time.RFC3339Nano)
}

// WriteCommand outputs an attempted actuator command
func (w *NDJSONWriter) WriteCommand(cmd actuator.Command, state domain.AppState, err error) error {
	out := CommandOutput{
		Type:          "command",
		SchemaVersion: SchemaVersion,
		Timestamp:     w.timestamp(),
		Command:       cmd.String(),
		Wire:          cmd.Wire(),
		Mode:          state.Mode.String(),
		Displayed:     state.Displayed().String(),
	}
	if err != nil {
		out.Error = err.Error()
	}
	return w.encode(&out)
}

// WriteStatus outputs a state snapshot
func (w *NDJSONWriter) WriteStatus(state domain.AppState) error {
	return w.encode(&StatusOutput{
		Type:          "status",
		SchemaVersion: SchemaVersion,
		Timestamp:     w.timestamp(),
		Mode:          state.Mode.String(),
		LastColor:     state.LastColor.String(),
		LastStatus:    string(state.LastStatus),
		Displayed:     state.Displayed().String(),
	})
}

// WriteClassification outputs the verdict for line n (1-based)
func (w *NDJSONWriter) WriteClassification(n int, ev domain.LogEvent) error {
	out := ClassificationOutput{
		Type:          "classification",
		SchemaVersion: SchemaVersion,
		Line:          n,
		Kind:          ev.Kind.String(),
	}
	if ev.Matched() {
		out.Rule = ev.Rule.String()
		out.Token = ev.Token
		out.Status = string(ev.Status)
		out.Recognized = ev.Recognized
	}
	return w.encode(&out)
}

// WriteResolution outputs a batch resolution
func (w *NDJSONWriter) WriteResolution(lines int, res domain.Resolution) error {
	out := ResolutionOutput{
		Type:          "resolution",
		SchemaVersion: SchemaVersion,
		Lines:         lines,
		Status:        string(res.Status),
		Notify:        res.Notify.String(),
	}
	if res.HasColor() {
		out.Color = res.Color.Hex()
	}
	return w.encode(&out)
}

// WriteError outputs an error
func (w *NDJSONWriter) WriteError(code, message string, hint ...string) error {
	out := ErrorOutput{
		Type:          "error",
		SchemaVersion: SchemaVersion,
		Code:          code,
		Message:       message,
	}
	if len(hint) > 0 {
		out.Hint = hint[0]
	}
	return w.encode(&out)
}

// WriteInfo outputs an informational message
func (w *NDJSONWriter) WriteInfo(message, logPath, port string) error {
	return w.encode(&InfoOutput{
		Type:          "info",
		SchemaVersion: SchemaVersion,
		Message:       message,
		LogPath:       logPath,
		Port:          port,
	})
}

// WriteWarning outputs a warning message
func (w *NDJSONWriter) WriteWarning(message string) error {
	return w.encode(&WarningOutput{
		Type:          "warning",
		SchemaVersion: SchemaVersion,
		Message:       message,
	})
}

// WriteMetadata outputs build information
func (w *NDJSONWriter) WriteMetadata(version, commit string) error {
	return w.encode(&MetadataOutput{
		Type:          "metadata",
		SchemaVersion: SchemaVersion,
		Version:       version,
		Commit:        commit,
	})
}

// WriteRaw outputs raw JSON data
func (w *NDJSONWriter) WriteRaw(v interface{}) error {
	return w.encode(v)
}
