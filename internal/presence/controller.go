package presence

import (
	"sync"

	"go.uber.org/zap"

	"github.com/vburojevic/deskbell/internal/actuator"
	"github.com/vburojevic/deskbell/internal/domain"
	"github.com/vburojevic/deskbell/internal/metrics"
)

// CommandResult describes one attempted actuator command
type CommandResult struct {
	Command actuator.Command
	Err     error
	State   domain.AppState
}

// Observer is notified after every attempted command, in send order. It is
// called with the controller lock held and must not call back into the
// controller.
type Observer func(CommandResult)

// Option configures a Controller
type Option func(*Controller)

// WithObserver registers an observer
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		c.observers = append(c.observers, o)
	}
}

// WithMetrics records sent commands and failures
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// WithInitialColor sets the presence color assumed before anything is resolved
func WithInitialColor(color domain.Color) Option {
	return func(c *Controller) {
		c.state.LastColor = color
	}
}

// Controller owns the presence state and decides which commands reach the
// actuator. The tail loop and the control surface call it from different
// goroutines; every operation runs under one lock so mode and color updates
// and the resulting commands never interleave.
type Controller struct {
	mu        sync.Mutex
	state     domain.AppState
	sink      actuator.Sink
	log       *zap.SugaredLogger
	metrics   *metrics.Metrics
	observers []Observer
}

// NewController creates a controller in normal mode showing green
func NewController(sink actuator.Sink, log *zap.SugaredLogger, opts ...Option) *Controller {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	c := &Controller{
		state: domain.AppState{Mode: domain.ModeNormal, LastColor: domain.Green},
		sink:  sink,
		log:   log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Apply acts on a resolved batch. A resolved color always becomes the last
// color but is only shown in normal mode.
func (c *Controller) Apply(res domain.Resolution) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if res.Color != nil {
		c.state.LastColor = *res.Color
		if res.Status != "" {
			c.state.LastStatus = res.Status
		}
		if c.state.Mode == domain.ModeNormal {
			c.send(actuator.SetColor(*res.Color))
		}
	}

	switch res.Notify {
	case domain.NotifyFire:
		c.send(actuator.SetColor(domain.NotifyColor))
		c.send(actuator.Notify())
	case domain.NotifySuppress:
		c.send(actuator.GoIdle())
	}
}

// EnterGoAway switches to the go-away override and shows red
func (c *Controller) EnterGoAway() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.log.Info("changing to go away mode")
	c.state.Mode = domain.ModeGoAway
	c.send(actuator.SetColor(domain.Red))
}

// LeaveGoAway returns to normal mode and restores the last presence color
func (c *Controller) LeaveGoAway() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.log.Info("changing to y'all okay mode")
	c.state.Mode = domain.ModeNormal
	c.send(actuator.SetColor(c.state.LastColor))
}

// ManualNotify fires a notification pulse without touching state
func (c *Controller) ManualNotify() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.log.Info("sending notification")
	c.send(actuator.Notify())
}

// Dispatch runs the operation bound to a control-surface action
func (c *Controller) Dispatch(a domain.Action) {
	switch a {
	case domain.ActionGoAway:
		c.EnterGoAway()
	case domain.ActionYallOkay:
		c.LeaveGoAway()
	case domain.ActionNotify:
		c.ManualNotify()
	default:
		c.log.Warnw("ignoring unknown action", "action", a.String())
	}
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() domain.AppState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// send delivers one command. Failures are logged and dropped; nothing is
// retried. Caller holds c.mu.
func (c *Controller) send(cmd actuator.Command) {
	err := c.sink.Send(cmd)
	c.metrics.ObserveCommand(cmd.Kind.String(), err)
	if err != nil {
		c.log.Warnw("actuator command failed", "command", cmd.String(), "error", err)
	} else {
		c.log.Debugw("actuator command sent", "command", cmd.String(), "wire", cmd.Wire())
	}
	for _, o := range c.observers {
		o(CommandResult{Command: cmd, Err: err, State: c.state})
	}
}
