package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/scx/internal/shared"
	"github.com/desertthunder/scx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive track picker.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Log to a file so log lines do not tear the rendered view
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	fileLogger.SetLevel(shared.ParseLogLevel(r.config.Log.Level))
	r.SetLogger(fileLogger)

	source, err := r.trackSource(ctx)
	if err != nil {
		return err
	}
	if !source.IsAuthenticated() {
		return fmt.Errorf("%w: run 'scx auth login' first", shared.ErrNotAuthenticated)
	}

	dir := cmd.String("dir")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	model := ui.NewModel(ctx, source, dir, fileLogger)
	p := tea.NewProgram(model, tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
