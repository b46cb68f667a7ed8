package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const namespace = "deskbell"

// Metrics holds the counters exported by a watch run. All methods are safe to
// call on a nil *Metrics, which records nothing.
type Metrics struct {
	registry *prometheus.Registry

	linesRead       prometheus.Counter
	events          *prometheus.CounterVec
	unknownTokens   prometheus.Counter
	resolutions     *prometheus.CounterVec
	commands        *prometheus.CounterVec
	commandFailures *prometheus.CounterVec
}

// New creates a metric set on its own registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		linesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tail",
			Name:      "lines_total",
			Help:      "Number of log lines read by the tailer",
		}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "classifier",
			Name:      "events_total",
			Help:      "Number of classified log events by kind",
		}, []string{"kind"}),
		unknownTokens: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "classifier",
			Name:      "unknown_tokens_total",
			Help:      "Number of status tokens outside the known vocabulary",
		}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "resolutions_total",
			Help:      "Number of resolved batches by notification intent",
		}, []string{"notify"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "actuator",
			Name:      "commands_total",
			Help:      "Number of commands sent to the actuator",
		}, []string{"command"}),
		commandFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "actuator",
			Name:      "command_failures_total",
			Help:      "Number of actuator commands that could not be delivered",
		}, []string{"command"}),
	}
	m.registry.MustRegister(
		m.linesRead,
		m.events,
		m.unknownTokens,
		m.resolutions,
		m.commands,
		m.commandFailures,
	)
	return m
}

func (m *Metrics) ObserveLine() {
	if m == nil {
		return
	}
	m.linesRead.Inc()
}

func (m *Metrics) ObserveEvent(kind string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveUnknownToken() {
	if m == nil {
		return
	}
	m.unknownTokens.Inc()
}

func (m *Metrics) ObserveResolution(notify string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(notify).Inc()
}

// ObserveCommand counts a sent command and, when err is non-nil, a failure
func (m *Metrics) ObserveCommand(command string, err error) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(command).Inc()
	if err != nil {
		m.commandFailures.WithLabelValues(command).Inc()
	}
}

// Registry exposes the underlying registry (used by tests and the handler)
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the metric set in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		Registry:          m.registry,
		EnableOpenMetrics: true,
	})
}

// Serve exposes /metrics on addr until ctx is cancelled
func Serve(ctx context.Context, addr string, m *Metrics, log *zap.SugaredLogger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Infow("metrics enabled", "bind", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
