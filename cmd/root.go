// Package cmd implements the CLI command structure for tasker.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nibzard/tasker/internal/config"
	"github.com/nibzard/tasker/internal/logging"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the tasker CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tasker", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := logging.NewFromConfig(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps)

	// Determine the subcommand
	// If no args or first arg is a flag, use "list" as default
	subcommand := "list"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		// Check if it looks like a subcommand (doesn't start with -)
		if !strings.HasPrefix(remainingArgs[0], "-") {
			subcommand = remainingArgs[0]
			remainingArgs = remainingArgs[1:]
		}
	}

	// Execute the subcommand
	switch subcommand {
	case "add":
		return addCommand(cfg, logger, remainingArgs)
	case "list":
		return listCommand(cfg, logger, remainingArgs)
	case "complete":
		return completeCommand(cfg, logger, remainingArgs)
	case "delete":
		return deleteCommand(cfg, logger, remainingArgs)
	case "export":
		return exportCommand(cfg, logger, remainingArgs)
	case "import":
		return importCommand(cfg, logger, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "doctor":
		return doctorCommand(cfg, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("tasker version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Tasker - A JSON-file task tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasker [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add <description>    Add a new task")
	fmt.Fprintln(w, "  list                 List tasks (default command)")
	fmt.Fprintln(w, "  complete <id>        Mark a task as completed")
	fmt.Fprintln(w, "  delete <id>          Delete a task")
	fmt.Fprintln(w, "  export <path>        Export all tasks to a JSON file")
	fmt.Fprintln(w, "  import <path>        Import tasks from a JSON file")
	fmt.Fprintln(w, "  tui                  Launch terminal UI")
	fmt.Fprintln(w, "  doctor               Check config, task file, and schema validity")
	fmt.Fprintln(w, "  version              Show version information")
	fmt.Fprintln(w, "  help                 Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add Options (use with 'add' command):")
	fmt.Fprintln(w, "  -priority string")
	fmt.Fprintln(w, "        Task priority (low, medium, high)")
	fmt.Fprintln(w, "  -due string")
	fmt.Fprintln(w, "        Due date (YYYY-MM-DD)")
	fmt.Fprintln(w, "  -category string")
	fmt.Fprintln(w, "        Category label")
	fmt.Fprintln(w, "  -tags string")
	fmt.Fprintln(w, "        Comma-separated tags")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List Options (use with 'list' command):")
	fmt.Fprintln(w, "  -hide-completed")
	fmt.Fprintln(w, "        Hide completed tasks")
	fmt.Fprintln(w, "  -category string")
	fmt.Fprintln(w, "        Only tasks in this category")
	fmt.Fprintln(w, "  -tag string")
	fmt.Fprintln(w, "        Only tasks carrying this tag")
	fmt.Fprintln(w, "  -search string")
	fmt.Fprintln(w, "        Only tasks whose description contains this text")
	fmt.Fprintln(w, "  -group")
	fmt.Fprintln(w, "        Group tasks by category")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Import Options (use with 'import' command):")
	fmt.Fprintln(w, "  -mode string")
	fmt.Fprintln(w, "        Import mode: merge or replace (default merge)")
}

// splitAndTrim splits a string by sep and trims whitespace from each part.
func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
