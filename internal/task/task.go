package task

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Priority represents a task priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// rank returns the sort weight of a priority. Higher values sort first.
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 0
	}
	return -1
}

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	return p.rank() >= 0
}

// ParsePriority parses a priority string, case-insensitively.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", &ValidationError{
			Field: "priority",
			Err:   fmt.Errorf("must be one of: low, medium, high (got %q)", s),
		}
	}
	return p, nil
}

// DateLayout is the wire format for due dates.
const DateLayout = "2006-01-02"

// Date is a calendar date with no time component. It marshals as
// "YYYY-MM-DD" and is stored in UTC at midnight.
type Date struct {
	time.Time
}

// ParseDate parses a date in YYYY-MM-DD format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, &ValidationError{
			Field: "due_date",
			Err:   fmt.Errorf("must be in YYYY-MM-DD format (got %q)", s),
		}
	}
	return Date{t.UTC()}, nil
}

// String returns the date in YYYY-MM-DD format.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON encodes the date as a "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid due date %q: %w", s, err)
	}
	*d = Date{t.UTC()}
	return nil
}

// Task represents a single trackable unit of work.
type Task struct {
	ID          int        `json:"id"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
	DueDate     *Date      `json:"due_date,omitempty"`
	Category    string     `json:"category,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// HasTag reports whether the task carries the given tag.
func (t *Task) HasTag(tag string) bool {
	for _, have := range t.Tags {
		if have == tag {
			return true
		}
	}
	return false
}

// AddOptions holds the optional attributes for a new task.
// The zero value is valid: priority medium, no due date, no category, no tags.
type AddOptions struct {
	// Priority defaults to medium when empty.
	Priority Priority
	// DueDate is optional; nil means no due date.
	DueDate *Date
	// Category is an optional free-form label; empty means uncategorized.
	Category string
	// Tags are deduplicated, keeping first-seen order.
	Tags []string
}

// Filter selects a subset of tasks for listing. All set fields are ANDed.
type Filter struct {
	// HideCompleted drops tasks with completed=true.
	HideCompleted bool
	// Category matches the task category exactly when non-empty.
	Category string
	// Tag matches tag membership when non-empty.
	Tag string
	// Search matches a case-insensitive substring of the description.
	Search string
}

func (f Filter) matches(t *Task) bool {
	if f.HideCompleted && t.Completed {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.Tag != "" && !t.HasTag(f.Tag) {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(t.Description), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// Uncategorized is the display bucket for tasks without a category.
const Uncategorized = "Uncategorized"

// Group is a display bucket of tasks sharing a category.
type Group struct {
	Category string
	Tasks    []Task
}

// sortTasks orders tasks by priority (high first) then due date (earliest
// first, no due date last). The sort is stable so insertion order survives
// between equal keys.
func sortTasks(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Priority != tasks[j].Priority {
			return tasks[i].Priority.rank() > tasks[j].Priority.rank()
		}
		left, right := tasks[i].DueDate, tasks[j].DueDate
		if left == nil && right == nil {
			return false
		}
		if left == nil {
			return false
		}
		if right == nil {
			return true
		}
		return left.Before(right.Time)
	})
}

// dedupTags removes duplicate and empty tags, keeping first-seen order.
func dedupTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		result = append(result, trimmed)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
