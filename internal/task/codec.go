package task

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// load reads and validates a task document from path. A missing file is
// the first-run case and yields an empty collection; anything else that
// cannot be parsed or fails validation is a CorruptStoreError.
func load(path string) ([]Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &CorruptStoreError{Path: path, Err: err}
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, &CorruptStoreError{Path: path, Err: err}
	}
	if err := validateTasks(tasks); err != nil {
		return nil, &CorruptStoreError{Path: path, Err: err}
	}

	return tasks, nil
}

// save writes the task document atomically: marshal to a temp file in the
// target directory, then rename over path. A crash mid-write leaves the
// previous file in place.
func save(path string, tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal task file: %w", err)
	}

	// Add trailing newline
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace task file: %w", err)
	}

	return nil
}

// validateTasks checks every record against the store invariants:
// positive unique ids, non-empty descriptions, known priorities, and
// completed_at present exactly when completed is true.
func validateTasks(tasks []Task) error {
	seen := make(map[int]bool, len(tasks))
	for i, t := range tasks {
		path := fmt.Sprintf("tasks[%d]", i)
		if t.ID <= 0 {
			return &ValidationError{
				Field: path + ".id",
				Err:   fmt.Errorf("must be a positive integer, got %d", t.ID),
			}
		}
		if seen[t.ID] {
			return &ValidationError{
				Field: path + ".id",
				Err:   fmt.Errorf("duplicate id %d", t.ID),
			}
		}
		seen[t.ID] = true
		if t.Description == "" {
			return &ValidationError{
				Field: path + ".description",
				Err:   fmt.Errorf("missing required field"),
			}
		}
		if !t.Priority.Valid() {
			return &ValidationError{
				Field: path + ".priority",
				Err:   fmt.Errorf("invalid priority %q, must be one of: low, medium, high", t.Priority),
			}
		}
		if t.Completed && t.CompletedAt == nil {
			return &ValidationError{
				Field: path + ".completed_at",
				Err:   fmt.Errorf("missing for completed task"),
			}
		}
		if !t.Completed && t.CompletedAt != nil {
			return &ValidationError{
				Field: path + ".completed_at",
				Err:   fmt.Errorf("set on task that is not completed"),
			}
		}
		if t.CreatedAt.IsZero() {
			return &ValidationError{
				Field: path + ".created_at",
				Err:   fmt.Errorf("missing required field"),
			}
		}
	}
	return nil
}
