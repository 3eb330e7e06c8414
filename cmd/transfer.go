package cmd

import (
	"flag"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasker/internal/config"
	"github.com/nibzard/tasker/internal/task"
)

// exportCommand writes the full store to a JSON file.
func exportCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("tasker export", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) != 1 {
		return fmt.Errorf("export requires exactly one destination path")
	}
	path := rest[0]

	store, err := task.Open(cfg.TasksFile)
	if err != nil {
		return err
	}
	if err := store.Export(path); err != nil {
		return err
	}
	logger.Debug("store exported", "count", store.Len(), "path", path)

	fmt.Printf("Exported %d tasks to %s\n", store.Len(), path)
	return nil
}

// importCommand reads a JSON task document and merges or replaces the store.
func importCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("tasker import", flag.ContinueOnError)
	modeArg := fs.String("mode", string(task.ImportMerge), "Import mode: merge or replace")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) != 1 {
		return fmt.Errorf("import requires exactly one source path")
	}
	path := rest[0]

	mode, err := task.ParseImportMode(*modeArg)
	if err != nil {
		return err
	}

	store, err := task.Open(cfg.TasksFile)
	if err != nil {
		return err
	}
	count, err := store.Import(path, mode)
	if err != nil {
		return err
	}
	logger.Debug("store imported", "count", count, "mode", mode, "path", path)

	fmt.Printf("Imported %d tasks from %s\n", count, path)
	return nil
}
