package tui

import (
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vburojevic/deskbell/internal/presence"
)

// CommandMsg reports an attempted actuator command
type CommandMsg presence.CommandResult

// LogLineMsg carries one diagnostic log line
type LogLineMsg string

// Feed carries events from the monitor goroutines into the TUI. Sends never
// block: when the TUI falls behind or has quit, events are dropped.
type Feed struct {
	ch chan tea.Msg

	mu      sync.Mutex
	partial string
}

// NewFeed creates a feed holding up to size undelivered events
func NewFeed(size int) *Feed {
	if size <= 0 {
		size = 256
	}
	return &Feed{ch: make(chan tea.Msg, size)}
}

// Observe is a presence.Observer
func (f *Feed) Observe(r presence.CommandResult) {
	f.push(CommandMsg(r))
}

// Write lets the feed act as the destination of the diagnostic logger. Each
// complete line becomes one LogLineMsg.
func (f *Feed) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data := f.partial + string(p)
	lines := strings.Split(data, "\n")
	f.partial = lines[len(lines)-1]
	for _, line := range lines[:len(lines)-1] {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			f.push(LogLineMsg(line))
		}
	}
	return len(p), nil
}

// Sync satisfies zapcore.WriteSyncer
func (f *Feed) Sync() error { return nil }

func (f *Feed) push(msg tea.Msg) {
	select {
	case f.ch <- msg:
	default:
	}
}

// waitForEvent creates a command that waits for the next feed event
func waitForEvent(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}
