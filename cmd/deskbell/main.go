package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/vburojevic/deskbell/internal/cli"
	"github.com/vburojevic/deskbell/internal/config"
)

func main() {
	// Load configuration from files/environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	// Config values become flag defaults; explicit flags override them
	ctx := kong.Parse(&c,
		kong.Name("deskbell"),
		kong.Description("Mirror your Microsoft Teams presence on a USB desk indicator.\n\nRun without arguments to watch the Teams log with the interactive control surface."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		cli.Vars(cfg),
	)

	globals := cli.NewGlobalsWithConfig(&c, cfg)
	if err := ctx.Run(globals); err != nil {
		os.Exit(1)
	}
}
