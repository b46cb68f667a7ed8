package cli

import (
	"encoding/json"
	"fmt"

	"github.com/vburojevic/deskbell/internal/config"
)

// ConfigCmd shows configuration
type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" default:"withargs" help:"Show current configuration"`
	Path ConfigPathCmd `cmd:"" help:"Show configuration file path"`
}

// ConfigShowCmd shows current configuration
type ConfigShowCmd struct{}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}

	if globals.Format == "ndjson" {
		output := map[string]interface{}{
			"type":          "config",
			"format":        cfg.Format,
			"verbose":       cfg.Verbose,
			"log_path":      cfg.LogPath,
			"poll_interval": cfg.PollInterval.String(),
			"headless":      cfg.Headless,
			"metrics_addr":  cfg.MetricsAddr,
			"actuator": map[string]interface{}{
				"port":      cfg.Actuator.Port,
				"baud_rate": cfg.Actuator.BaudRate,
				"timeout":   cfg.Actuator.Timeout.String(),
			},
		}
		encoder := json.NewEncoder(globals.Stdout)
		return encoder.Encode(output)
	}

	fmt.Fprintln(globals.Stdout, "Current Configuration:")
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintf(globals.Stdout, "  format:        %s\n", cfg.Format)
	fmt.Fprintf(globals.Stdout, "  verbose:       %v\n", cfg.Verbose)
	fmt.Fprintf(globals.Stdout, "  log_path:      %s\n", cfg.LogPath)
	fmt.Fprintf(globals.Stdout, "  poll_interval: %s\n", cfg.PollInterval)
	fmt.Fprintf(globals.Stdout, "  headless:      %v\n", cfg.Headless)
	fmt.Fprintf(globals.Stdout, "  metrics_addr:  %s\n", cfg.MetricsAddr)
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintln(globals.Stdout, "Actuator:")
	fmt.Fprintf(globals.Stdout, "  port:      %s\n", portName(cfg.Actuator.Port))
	fmt.Fprintf(globals.Stdout, "  baud_rate: %d\n", cfg.Actuator.BaudRate)
	fmt.Fprintf(globals.Stdout, "  timeout:   %s\n", cfg.Actuator.Timeout)

	if path := config.ConfigFile(); path != "" {
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintf(globals.Stdout, "Loaded from: %s\n", path)
	}

	return nil
}

// ConfigPathCmd shows config file path
type ConfigPathCmd struct{}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	path := config.ConfigFile()

	if globals.Format == "ndjson" {
		output := map[string]interface{}{
			"type": "config_path",
			"path": path,
		}
		return json.NewEncoder(globals.Stdout).Encode(output)
	}

	if path == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found")
		return nil
	}
	fmt.Fprintln(globals.Stdout, path)
	return nil
}
