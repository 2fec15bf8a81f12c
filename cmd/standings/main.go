package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/sdc-standings/pkg/logger"
	"github.com/urfave/cli/v2"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const configFlag = "config"

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use fmt for initialization errors since logger isn't available yet
		fmt.Fprintln(os.Stderr, "failed to initialize logging: "+err.Error())
		os.Exit(1)
	}
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newApp().RunContext(ctx, os.Args)
	stop()
	_ = logger.Sync()
	if err != nil {
		logger.Get().Error(ctx, "standings failed", logger.Error(err))
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "standings",
		Usage:   "Build the SDC league standings from MLB The Show game history",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    configFlag,
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file (overrides $SDC_CONFIG)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Fetch game history once, print the table and write the output files",
				Action: runBuild,
			},
			{
				Name:   "serve",
				Usage:  "Serve the standings over HTTP, rebuilding them periodically",
				Action: runServe,
			},
			{
				Name:   "config",
				Usage:  "Print the effective configuration as YAML",
				Action: runConfig,
			},
		},
		Action: runBuild,
	}
}
