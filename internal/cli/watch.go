package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/vburojevic/deskbell/internal/actuator"
	"github.com/vburojevic/deskbell/internal/config"
	"github.com/vburojevic/deskbell/internal/logtail"
	"github.com/vburojevic/deskbell/internal/metrics"
	"github.com/vburojevic/deskbell/internal/monitor"
	"github.com/vburojevic/deskbell/internal/output"
	"github.com/vburojevic/deskbell/internal/presence"
	"github.com/vburojevic/deskbell/internal/teams"
	"github.com/vburojevic/deskbell/internal/tui"
)

// WatchCmd follows the Teams log and drives the indicator
type WatchCmd struct {
	Port         string        `short:"p" default:"${config_port}" help:"Serial port of the indicator, e.g. COM3 or /dev/ttyACM0 (empty: dry run)"`
	Log          string        `default:"${config_log_path}" help:"Teams log file" type:"path"`
	Headless     bool          `default:"${config_headless}" help:"Run without the interactive control surface"`
	MetricsAddr  string        `default:"${config_metrics_addr}" help:"Serve Prometheus metrics on this address (e.g. 127.0.0.1:9465)"`
	PollInterval time.Duration `default:"${config_poll_interval}" help:"Wait between reads when the log is idle"`
	NoWatch      bool          `help:"Disable filesystem notifications and rely on polling only"`
}

// Run executes the watch command
func (c *WatchCmd) Run(globals *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.run(ctx, globals)
}

func (c *WatchCmd) run(ctx context.Context, globals *Globals) error {
	path := config.ExpandHome(c.Log)
	interactive := !c.Headless && output.IsTerminal(globals.Stdout)

	var feed *tui.Feed
	logOut := globals.Stderr
	if interactive {
		feed = tui.NewFeed(256)
		logOut = feed
	}
	log := newLogger(logOut, globals.Verbose)
	defer func() { _ = log.Sync() }()

	tailer, err := logtail.Open(path)
	if err != nil {
		return outputErrorCommon(globals, codeLogNotFound, err.Error(),
			"start the Teams desktop client once or pass --log with the path to logs.txt")
	}
	defer tailer.Close()

	stats := metrics.New()
	emitter := globals.Emitter()

	var observer presence.Observer
	if interactive {
		observer = feed.Observe
	} else {
		observer = func(r presence.CommandResult) {
			_ = emitter.WriteCommand(r.Command, r.State, r.Err)
		}
	}

	sink := actuator.NewSink(actuator.Options{
		Port:     c.Port,
		BaudRate: globals.Config.Actuator.BaudRate,
		Timeout:  globals.Config.Actuator.Timeout,
	})
	ctrl := presence.NewController(sink, log,
		presence.WithMetrics(stats),
		presence.WithObserver(observer),
	)

	opts := monitor.Options{
		PollInterval: c.PollInterval,
		Metrics:      stats,
		Log:          log,
	}
	if !c.NoWatch {
		watcher, err := logtail.NewWatcher(path, log)
		if err != nil {
			log.Warnw("file notifications unavailable, polling only", "error", err)
		} else {
			defer watcher.Close()
			opts.Waker = watcher
		}
	}
	mon := monitor.New(tailer, teams.NewParser(log, stats), ctrl, opts)

	if !interactive {
		_ = emitter.WriteInfo("watching Teams log", path, c.Port)
	}
	log.Infow("watching", "log", path, "port", portName(c.Port))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	group, gctx := errgroup.WithContext(runCtx)

	group.Go(func() error {
		return mon.Run(gctx)
	})

	if c.MetricsAddr != "" {
		group.Go(func() error {
			if err := metrics.Serve(gctx, c.MetricsAddr, stats, log); err != nil {
				return fmt.Errorf("metrics: %w", err)
			}
			return nil
		})
	}

	if interactive {
		group.Go(func() error {
			defer cancel()
			return runTUI(gctx, globals.Stdout, tui.New(ctrl, feed, path, c.Port))
		})
	}

	if err := group.Wait(); err != nil {
		return outputErrorCommon(globals, errorCode(err), err.Error())
	}
	if !interactive {
		_ = emitter.WriteStatus(ctrl.Snapshot())
	}
	return nil
}

// runTUI runs the control surface until the user quits or ctx ends
func runTUI(ctx context.Context, out io.Writer, model tui.Model) error {
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(out),
	)
	_, err := p.Run()
	if err != nil && (ctx.Err() != nil || errors.Is(err, tea.ErrProgramKilled)) {
		return nil
	}
	return err
}

func portName(port string) string {
	if port == "" || port == "-" {
		return "dry run"
	}
	return port
}
