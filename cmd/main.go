package main

import (
	"context"
	"os"

	"github.com/desertthunder/scx/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	app := &cli.Command{
		Name:     "scx",
		Usage:    "Browse and download your SoundCloud tracks",
		Version:  "2.6.0",
		Flags:    rootFlags(),
		Before:   runner.Before,
		After:    runner.Close,
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Errorf("application error: %v", err)
		if hint := describeError(err); hint != "" {
			logger.Info(hint)
		}
		os.Exit(1)
	}
}

// rootFlags are shared by every subcommand.
func rootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
		&cli.StringSliceFlag{
			Name:  "env",
			Usage: "Dotenv files to load (default: .env)",
		},
		&cli.StringFlag{
			Name:  "store",
			Usage: "Preference store backend (sqlite, memory or redis)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level (debug, info, warn, error)",
		},
	}
}
