package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/nibzard/tasker/internal/config"
	"github.com/nibzard/tasker/internal/task"
)

// doctorCommand checks config, task file, and schema validity.
func doctorCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tasker doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if rest := fs.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %v", rest)
	}

	fmt.Println("Tasker Doctor")
	fmt.Println("=============")
	fmt.Println()

	allOK := true

	// Check config
	fmt.Println("Config:")
	if _, err := task.ParsePriority(cfg.DefaultPriority); err != nil {
		fmt.Printf("  ❌ Default priority: %s (expected low|medium|high)\n", cfg.DefaultPriority)
		allOK = false
	} else {
		fmt.Printf("  ✅ Default priority: %s\n", cfg.DefaultPriority)
	}
	fmt.Printf("  ✅ Log level: %s\n", cfg.LogLevel)
	fmt.Println()

	// Check task file
	fmt.Printf("Task file: %s\n", cfg.TasksFile)
	info, err := os.Stat(cfg.TasksFile)
	switch {
	case os.IsNotExist(err):
		fmt.Println("  ⚠️  Not found (will be created on first add)")
	case err != nil:
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	case info.IsDir():
		fmt.Println("  ❌ Error: path is a directory")
		allOK = false
	default:
		store, loadErr := task.Open(cfg.TasksFile)
		if loadErr != nil {
			fmt.Printf("  ❌ Load error: %v\n", loadErr)
			allOK = false
			break
		}
		fmt.Println("  ✅ OK")

		data, readErr := os.ReadFile(cfg.TasksFile)
		if readErr != nil {
			fmt.Printf("  ❌ Read error: %v\n", readErr)
			allOK = false
			break
		}
		if schemaErr := task.ValidateDocument(data); schemaErr != nil {
			fmt.Printf("  ❌ Schema validation failed: %v\n", schemaErr)
			allOK = false
		} else {
			fmt.Println("  ✅ Valid against schema")
		}

		if *verbose {
			fmt.Printf("  Tasks: %d\n", store.Len())
			for _, t := range store.Tasks() {
				fmt.Printf("    - %s\n", formatTask(&t))
			}
		}
	}
	fmt.Println()

	// Overall status
	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. Tasker may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}
