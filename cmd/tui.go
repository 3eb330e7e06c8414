package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/nibzard/tasker/internal/config"
	"github.com/nibzard/tasker/internal/ui"
)

// tuiCommand launches the terminal UI.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tasker tui", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if rest := fs.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %v", rest)
	}

	return ui.RunTUI(ctx, cfg, cfg.TasksFile)
}
