package actuator

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.bug.st/serial"
)

// ErrTimeout is returned when the device does not accept a command in time
var ErrTimeout = errors.New("actuator: send timed out")

// Sink accepts commands for the indicator device. Send may fail; callers log
// the failure and carry on.
type Sink interface {
	Send(cmd Command) error
}

// Options configures the sink built by NewSink
type Options struct {
	Port     string        // Serial device; empty or "-" writes to Fallback
	BaudRate int           // Serial speed (default 115200)
	Timeout  time.Duration // Per-command deadline (default 1s)
	Fallback io.Writer     // Dry-run destination when no port is set
}

// NewSink returns a serial sink when a port is configured, otherwise a writer
// sink on opts.Fallback (io.Discard when nil).
func NewSink(opts Options) Sink {
	if opts.Port == "" || opts.Port == "-" {
		w := opts.Fallback
		if w == nil {
			w = io.Discard
		}
		return NewWriterSink(w)
	}
	return NewSerialSink(opts.Port, opts.BaudRate, opts.Timeout)
}

// WriterSink writes the wire form of each command to an io.Writer
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Send(cmd Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := io.WriteString(s.w, cmd.Wire())
	return err
}

// Opener opens a connection to the device
type Opener func(port string, baudRate int) (io.WriteCloser, error)

// SerialSink opens the serial port for every command, writes it and closes
// the port again, so the device can be unplugged and replugged between
// commands. Only one write holds the port at a time.
type SerialSink struct {
	mu       sync.Mutex
	port     string
	baudRate int
	timeout  time.Duration
	open     Opener
	clk      clock.Clock
}

// NewSerialSink creates a sink for the given serial device
func NewSerialSink(port string, baudRate int, timeout time.Duration) *SerialSink {
	if baudRate <= 0 {
		baudRate = 115200
	}
	if timeout <= 0 {
		timeout = time.Second
	}
	return &SerialSink{
		port:     port,
		baudRate: baudRate,
		timeout:  timeout,
		open:     openSerial,
		clk:      clock.New(),
	}
}

// WithOpener replaces the port opener (tests)
func (s *SerialSink) WithOpener(open Opener) *SerialSink {
	s.open = open
	return s
}

// WithClock replaces the clock used for the send deadline (tests)
func (s *SerialSink) WithClock(clk clock.Clock) *SerialSink {
	s.clk = clk
	return s
}

// Port returns the configured device name
func (s *SerialSink) Port() string {
	return s.port
}

// Send delivers one command, giving up after the configured timeout. A write
// that is still blocked when the deadline passes finishes in the background
// and its result is discarded. Later sends wait for it to release the port,
// each within its own deadline.
func (s *SerialSink) Send(cmd Command) error {
	done := make(chan error, 1)
	go func() {
		done <- s.write(cmd.Wire())
	}()

	timer := s.clk.Timer(s.timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-timer.C:
		return fmt.Errorf("%s on %s: %w", cmd, s.port, ErrTimeout)
	}
}

func (s *SerialSink) write(wire string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, err := s.open(s.port, s.baudRate)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.port, err)
	}
	if _, err := io.WriteString(conn, wire); err != nil {
		_ = conn.Close()
		return fmt.Errorf("write %s: %w", s.port, err)
	}
	if err := conn.Close(); err != nil {
		return fmt.Errorf("close %s: %w", s.port, err)
	}
	return nil
}

func openSerial(port string, baudRate int) (io.WriteCloser, error) {
	p, err := serial.Open(port, &serial.Mode{BaudRate: baudRate})
	if err != nil {
		return nil, err
	}
	return p, nil
}
