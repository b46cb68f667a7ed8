package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/vburojevic/deskbell/internal/domain"
	"github.com/vburojevic/deskbell/internal/metrics"
)

const defaultPollInterval = 100 * time.Millisecond

// LineSource is the tailed log (see logtail.Tailer)
type LineSource interface {
	ReadExisting() ([]string, error)
	Next() (line string, ok bool, err error)
}

// Resolver turns a batch of lines into a resolution (see teams.Parser)
type Resolver interface {
	Resolve(lines []string) domain.Resolution
}

// Presence receives resolutions and the startup reset (see presence.Controller)
type Presence interface {
	Apply(res domain.Resolution)
	LeaveGoAway()
}

// Waker shortens the wait between polls and reports a vanished log file
// (see logtail.Watcher)
type Waker interface {
	Wake() <-chan struct{}
	Errors() <-chan error
}

// Options configures the loop
type Options struct {
	PollInterval time.Duration // Wait when no line is available (default 100ms)
	Clock        clock.Clock
	Waker        Waker
	Metrics      *metrics.Metrics
	Log          *zap.SugaredLogger
}

// Monitor is the single-threaded loop from log lines to actuator commands
type Monitor struct {
	src      LineSource
	resolver Resolver
	presence Presence

	poll    time.Duration
	clk     clock.Clock
	waker   Waker
	metrics *metrics.Metrics
	log     *zap.SugaredLogger
}

// New creates a monitor
func New(src LineSource, resolver Resolver, presence Presence, opts Options) *Monitor {
	m := &Monitor{
		src:      src,
		resolver: resolver,
		presence: presence,
		poll:     opts.PollInterval,
		clk:      opts.Clock,
		waker:    opts.Waker,
		metrics:  opts.Metrics,
		log:      opts.Log,
	}
	if m.poll <= 0 {
		m.poll = defaultPollInterval
	}
	if m.clk == nil {
		m.clk = clock.New()
	}
	if m.log == nil {
		m.log = zap.NewNop().Sugar()
	}
	return m
}

// Run resets the indicator, applies the existing log content once and then
// follows new lines until ctx is cancelled. It returns nil on cancellation and
// an error when the log can no longer be read.
func (m *Monitor) Run(ctx context.Context) error {
	m.presence.LeaveGoAway()

	lines, err := m.src.ReadExisting()
	if err != nil {
		return fmt.Errorf("initial scan: %w", err)
	}
	for range lines {
		m.metrics.ObserveLine()
	}
	m.log.Debugw("initial scan", "lines", len(lines))
	m.presence.Apply(m.resolver.Resolve(lines))

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, ok, err := m.src.Next()
		if err != nil {
			return fmt.Errorf("tail: %w", err)
		}
		if ok {
			m.metrics.ObserveLine()
			m.presence.Apply(m.resolver.Resolve([]string{line}))
			continue
		}

		if err := m.wait(ctx); err != nil {
			return err
		}
	}
}

// wait blocks for one poll interval, or less when the watcher reports a write
func (m *Monitor) wait(ctx context.Context) error {
	var wake <-chan struct{}
	var errs <-chan error
	if m.waker != nil {
		wake = m.waker.Wake()
		errs = m.waker.Errors()
	}

	timer := m.clk.Timer(m.poll)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	case <-wake:
	case err := <-errs:
		return fmt.Errorf("tail: %w", err)
	}
	return nil
}
