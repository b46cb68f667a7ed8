package output

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vburojevic/deskbell/internal/actuator"
	"github.com/vburojevic/deskbell/internal/domain"
)

// TextWriter writes events as human-readable lines. Styling is applied only
// when color is enabled.
type TextWriter struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
	now   func() time.Time
}

// NewTextWriter creates a new text writer
func NewTextWriter(w io.Writer, color bool) *TextWriter {
	return &TextWriter{w: w, color: color, now: time.Now}
}

func (w *TextWriter) render(style lipgloss.Style, s string) string {
	if !w.color {
		return s
	}
	return style.Render(s)
}

func (w *TextWriter) swatch(c domain.Color) string {
	if !w.color {
		return c.String()
	}
	return Swatch(c)
}

func (w *TextWriter) mode(m domain.OverrideMode) string {
	if !w.color {
		return m.String()
	}
	return ModeText(m)
}

func (w *TextWriter) println(line string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := io.WriteString(w.w, line+"\n")
	return err
}

func (w *TextWriter) timestamp() string {
	return w.render(Styles.Timestamp, w.now().Format("15:04:05.000"))
}

// WriteCommand outputs an attempted actuator command
func (w *TextWriter) WriteCommand(cmd actuator.Command, state domain.AppState, err error) error {
	line := w.timestamp() + " " + w.render(Styles.Command, fmt.Sprintf("%-10s", cmd.Kind.String())) +
		" " + w.render(Styles.Wire, strings.TrimSuffix(cmd.Wire(), "\n"))
	if cmd.Kind == actuator.KindSetColor {
		line += " " + w.swatch(cmd.Color)
	}
	line += " " + w.render(Styles.Label, "mode=") + w.mode(state.Mode)
	if err != nil {
		line += " " + w.render(Styles.Danger, "failed: "+err.Error())
	}
	return w.println(line)
}

// WriteStatus outputs a state snapshot
func (w *TextWriter) WriteStatus(state domain.AppState) error {
	line := w.render(Styles.Label, "Mode: ") + w.mode(state.Mode) +
		"  " + w.render(Styles.Label, "Showing: ") + w.swatch(state.Displayed())
	if state.LastStatus != "" {
		line += "  " + w.render(Styles.Label, "Teams: ") + w.render(Styles.Value, string(state.LastStatus))
	}
	return w.println(line)
}

// WriteClassification outputs the verdict for line n (1-based). Lines that
// match no rule are skipped.
func (w *TextWriter) WriteClassification(n int, ev domain.LogEvent) error {
	if !ev.Matched() {
		return nil
	}
	line := fmt.Sprintf("%s %-14s %-14s %s",
		w.render(Styles.Timestamp, fmt.Sprintf("%6d", n)),
		ev.Kind.String(), ev.Rule.String(), w.render(Styles.Value, ev.Token))
	if ev.Kind == domain.EventStatusChanged {
		if ev.Recognized {
			line += " -> " + string(ev.Status)
		} else {
			line += " " + w.render(Styles.Warning, "(unrecognized)")
		}
	}
	return w.println(line)
}

// WriteResolution outputs a batch resolution
func (w *TextWriter) WriteResolution(lines int, res domain.Resolution) error {
	header := w.render(Styles.Header, "Resolution")
	color := w.render(Styles.Muted, "unchanged")
	if res.HasColor() {
		color = w.swatch(*res.Color)
		if res.Status != "" {
			color += " (" + string(res.Status) + ")"
		}
	}
	out := "\n" + header + "\n" +
		w.render(Styles.Label, "Lines:  ") + w.render(Styles.Value, fmt.Sprint(lines)) + "\n" +
		w.render(Styles.Label, "Color:  ") + color + "\n" +
		w.render(Styles.Label, "Notify: ") + w.notify(res.Notify)
	return w.println(out)
}

func (w *TextWriter) notify(n domain.NotifyIntent) string {
	switch n {
	case domain.NotifyFire:
		return w.render(Styles.Warning, "fire")
	case domain.NotifySuppress:
		return w.render(Styles.Success, "suppress")
	default:
		return w.render(Styles.Muted, "unchanged")
	}
}

// WriteError outputs an error
func (w *TextWriter) WriteError(code, message string, hint ...string) error {
	line := w.render(Styles.Danger, fmt.Sprintf("Error [%s]:", code)) + " " + message
	if len(hint) > 0 && hint[0] != "" {
		line += "\n" + w.render(Styles.Help, "Hint: "+hint[0])
	}
	return w.println(line)
}

// WriteInfo outputs an informational message
func (w *TextWriter) WriteInfo(message, logPath, port string) error {
	line := message
	if logPath != "" {
		line += " " + w.render(Styles.Label, "log=") + logPath
	}
	if port != "" {
		line += " " + w.render(Styles.Label, "port=") + port
	}
	return w.println(line)
}

// WriteWarning outputs a warning message
func (w *TextWriter) WriteWarning(message string) error {
	return w.println(w.render(Styles.Warning, "Warning:") + " " + message)
}

// WriteMetadata outputs build information
func (w *TextWriter) WriteMetadata(version, commit string) error {
	return w.println(fmt.Sprintf("deskbell %s (%s)", version, commit))
}
