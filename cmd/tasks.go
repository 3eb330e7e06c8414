package cmd

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasker/internal/config"
	"github.com/nibzard/tasker/internal/task"
)

// addCommand creates a new task.
func addCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("tasker add", flag.ContinueOnError)
	priority := fs.String("priority", cfg.DefaultPriority, "Task priority (low, medium, high)")
	due := fs.String("due", "", "Due date (YYYY-MM-DD)")
	category := fs.String("category", "", "Category label")
	tags := fs.String("tags", "", "Comma-separated tags")

	if err := fs.Parse(args); err != nil {
		return err
	}

	description := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("add requires a task description")
	}

	opts := task.AddOptions{
		Category: *category,
		Tags:     splitAndTrim(*tags, ","),
	}
	p, err := task.ParsePriority(*priority)
	if err != nil {
		return err
	}
	opts.Priority = p
	if *due != "" {
		d, err := task.ParseDate(*due)
		if err != nil {
			return err
		}
		opts.DueDate = &d
	}

	store, err := task.Open(cfg.TasksFile)
	if err != nil {
		return err
	}
	created, err := store.Add(description, opts)
	if err != nil {
		return err
	}
	logger.Debug("task added", "id", created.ID, "file", cfg.TasksFile)

	fmt.Printf("Added task %d: %s\n", created.ID, created.Description)
	return nil
}

// listCommand prints tasks matching the given filters.
func listCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("tasker list", flag.ContinueOnError)
	hideCompleted := fs.Bool("hide-completed", false, "Hide completed tasks")
	category := fs.String("category", "", "Only tasks in this category")
	tag := fs.String("tag", "", "Only tasks carrying this tag")
	search := fs.String("search", "", "Only tasks whose description contains this text")
	group := fs.Bool("group", false, "Group tasks by category")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if rest := fs.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %v", rest)
	}

	store, err := task.Open(cfg.TasksFile)
	if err != nil {
		return err
	}
	logger.Debug("task file loaded", "count", store.Len(), "file", cfg.TasksFile)

	if store.Len() == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	filter := task.Filter{
		HideCompleted: *hideCompleted,
		Category:      *category,
		Tag:           *tag,
		Search:        *search,
	}

	if *group {
		groups := store.GroupByCategory(filter)
		if len(groups) == 0 {
			fmt.Println("No tasks to display.")
			return nil
		}
		for _, g := range groups {
			fmt.Printf("%s:\n", g.Category)
			for i := range g.Tasks {
				fmt.Println(formatTask(&g.Tasks[i]))
			}
			fmt.Println()
		}
		return nil
	}

	tasks := store.List(filter)
	if len(tasks) == 0 {
		fmt.Println("No tasks to display.")
		return nil
	}
	for i := range tasks {
		fmt.Println(formatTask(&tasks[i]))
	}
	return nil
}

// completeCommand marks a task as completed.
func completeCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	id, err := parseIDArg("complete", args)
	if err != nil {
		return err
	}

	store, err := task.Open(cfg.TasksFile)
	if err != nil {
		return err
	}
	completed, err := store.Complete(id)
	if err != nil {
		return err
	}
	logger.Debug("task completed", "id", id, "completed_at", completed.CompletedAt)

	fmt.Printf("Completed task %d: %s\n", completed.ID, completed.Description)
	return nil
}

// deleteCommand removes a task permanently.
func deleteCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	id, err := parseIDArg("delete", args)
	if err != nil {
		return err
	}

	store, err := task.Open(cfg.TasksFile)
	if err != nil {
		return err
	}
	deleted, err := store.Get(id)
	if err != nil {
		return err
	}
	if err := store.Delete(id); err != nil {
		return err
	}
	logger.Debug("task deleted", "id", id)

	fmt.Printf("Deleted task %d: %s\n", deleted.ID, deleted.Description)
	return nil
}

// parseIDArg extracts the single numeric id argument of a command.
func parseIDArg(command string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s requires exactly one task id", command)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", args[0])
	}
	return id, nil
}

// formatTask renders a single task line.
func formatTask(t *task.Task) string {
	status := " "
	if t.Completed {
		status = "x"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d. [%s] [%s] %s", t.ID, status, t.Priority, t.Description)
	if t.Category != "" {
		fmt.Fprintf(&b, " (%s)", t.Category)
	}
	if t.DueDate != nil {
		fmt.Fprintf(&b, " due %s", t.DueDate)
	}
	if len(t.Tags) > 0 {
		fmt.Fprintf(&b, " #%s", strings.Join(t.Tags, " #"))
	}
	return b.String()
}
