package cli

import (
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/vburojevic/deskbell/internal/config"
	"github.com/vburojevic/deskbell/internal/output"
)

// CLI is the root command structure for deskbell
type CLI struct {
	// Global flags
	Format  string `short:"f" default:"${config_format}" enum:"text,ndjson" help:"Output format"`
	Verbose bool   `short:"v" help:"Show debug diagnostics (classified lines, sent commands)"`

	// Commands
	Watch    WatchCmd    `cmd:"" default:"withargs" help:"Follow the Teams log and drive the indicator"`
	Send     SendCmd     `cmd:"" help:"Send one command to the indicator"`
	Classify ClassifyCmd `cmd:"" help:"Classify a Teams log and print the resolution"`
	Config   ConfigCmd   `cmd:"" help:"Show configuration"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

// Vars exposes config values as kong defaults. CLI flags still win.
func Vars(cfg *config.Config) kong.Vars {
	if cfg == nil {
		cfg = config.Default()
	}
	return kong.Vars{
		"config_format":        cfg.Format,
		"config_port":          cfg.Actuator.Port,
		"config_log_path":      cfg.LogPath,
		"config_headless":      strconv.FormatBool(cfg.Headless),
		"config_metrics_addr":  cfg.MetricsAddr,
		"config_poll_interval": cfg.PollInterval.String(),
	}
}

// Globals holds shared state for all commands
type Globals struct {
	Format  string
	Verbose bool
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config
}

// NewGlobals creates a new Globals instance from CLI flags
func NewGlobals(cli *CLI) *Globals {
	return NewGlobalsWithConfig(cli, config.Default())
}

// NewGlobalsWithConfig creates a new Globals instance with config fallbacks
func NewGlobalsWithConfig(cli *CLI, cfg *config.Config) *Globals {
	g := &Globals{
		Format:  cli.Format,
		Verbose: cli.Verbose,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
	}
	if cfg == nil {
		g.Config = config.Default()
	}
	// If verbose wasn't set via CLI, use config value
	if !cli.Verbose && g.Config.Verbose {
		g.Verbose = true
	}
	return g
}

// Emitter returns the event writer for stdout in the selected format
func (g *Globals) Emitter() output.Emitter {
	return output.NewEmitter(g.Format, g.Stdout)
}

// VersionCmd shows version information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run(globals *Globals) error {
	return globals.Emitter().WriteMetadata(Version, Commit)
}

// Version information (set at build time)
var (
	Version = "dev"
	Commit  = "none"
)
