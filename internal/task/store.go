package task

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Store owns the in-memory task collection and its backing file. Every
// mutating operation persists before the in-memory state is updated, so
// a failed operation leaves both the file and the store untouched.
//
// The file path is fixed at construction; there is no package-level
// state, and multiple stores over different files can coexist.
type Store struct {
	path  string
	tasks []Task
}

// Open loads the store backed by the file at path. A missing file is the
// first-run case and yields an empty store.
func Open(path string) (*Store, error) {
	tasks, err := load(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, tasks: tasks}, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of tasks in the store.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Tasks returns a copy of all tasks in insertion order.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get returns the task with the given id.
func (s *Store) Get(id int) (Task, error) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return Task{}, &NotFoundError{ID: id}
}

// nextID returns one more than the current maximum id. Deleted ids are
// never reused.
func (s *Store) nextID() int {
	max := 0
	for _, t := range s.tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}

// Add validates the input, appends a new task, and persists. The created
// task is returned.
func (s *Store) Add(description string, opts AddOptions) (Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Task{}, &ValidationError{
			Field: "description",
			Err:   fmt.Errorf("must not be empty"),
		}
	}

	priority := opts.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.Valid() {
		return Task{}, &ValidationError{
			Field: "priority",
			Err:   fmt.Errorf("must be one of: low, medium, high (got %q)", opts.Priority),
		}
	}

	t := Task{
		ID:          s.nextID(),
		Description: description,
		Priority:    priority,
		DueDate:     opts.DueDate,
		Category:    strings.TrimSpace(opts.Category),
		Tags:        dedupTags(opts.Tags),
		CreatedAt:   time.Now().UTC(),
	}

	next := append(s.Tasks(), t)
	if err := s.persist(next); err != nil {
		return Task{}, err
	}
	return t, nil
}

// Complete marks the task as completed and persists. Completing an
// already-completed task is a no-op returning the existing record, so
// completed_at is stable across repeated calls.
func (s *Store) Complete(id int) (Task, error) {
	next := s.Tasks()
	for i := range next {
		if next[i].ID != id {
			continue
		}
		if next[i].Completed {
			return next[i], nil
		}
		now := time.Now().UTC()
		next[i].Completed = true
		next[i].CompletedAt = &now
		if err := s.persist(next); err != nil {
			return Task{}, err
		}
		return next[i], nil
	}
	return Task{}, &NotFoundError{ID: id}
}

// Delete removes the task permanently and persists.
func (s *Store) Delete(id int) error {
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		next := make([]Task, 0, len(s.tasks)-1)
		next = append(next, s.tasks[:i]...)
		next = append(next, s.tasks[i+1:]...)
		return s.persist(next)
	}
	return &NotFoundError{ID: id}
}

// List returns the tasks matching the filter, ordered by priority (high
// first) then due date (earliest first, none last), preserving insertion
// order between equal keys.
func (s *Store) List(f Filter) []Task {
	var result []Task
	for i := range s.tasks {
		if f.matches(&s.tasks[i]) {
			result = append(result, s.tasks[i])
		}
	}
	sortTasks(result)
	return result
}

// GroupByCategory returns the filtered tasks grouped by category for
// display. Groups are ordered alphabetically with the Uncategorized
// bucket last; tasks within a group keep the List ordering.
func (s *Store) GroupByCategory(f Filter) []Group {
	byCategory := make(map[string][]Task)
	for _, t := range s.List(f) {
		key := t.Category
		if key == "" {
			key = Uncategorized
		}
		byCategory[key] = append(byCategory[key], t)
	}

	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		if name == Uncategorized {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	if _, ok := byCategory[Uncategorized]; ok {
		names = append(names, Uncategorized)
	}

	groups := make([]Group, 0, len(names))
	for _, name := range names {
		groups = append(groups, Group{Category: name, Tasks: byCategory[name]})
	}
	return groups
}

// Export serializes the full unfiltered store to the given path.
func (s *Store) Export(path string) error {
	return save(path, s.tasks)
}

// ImportMode controls how an imported document combines with the store.
type ImportMode string

const (
	// ImportMerge appends imported tasks after the existing ones,
	// assigning fresh ids above the current maximum.
	ImportMerge ImportMode = "merge"
	// ImportReplace swaps the whole store for the imported document,
	// keeping the imported ids.
	ImportReplace ImportMode = "replace"
)

// ParseImportMode parses an import mode string, case-insensitively.
func ParseImportMode(s string) (ImportMode, error) {
	mode := ImportMode(strings.ToLower(strings.TrimSpace(s)))
	switch mode {
	case ImportMerge, ImportReplace:
		return mode, nil
	}
	return "", fmt.Errorf("invalid import mode %q, must be merge or replace", s)
}

// Import reads a task document from path and merges or replaces the
// store. The whole document is validated before any mutation; on any
// malformed record the store and its file are left untouched. The number
// of imported records is returned.
func (s *Store) Import(path string, mode ImportMode) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, &ImportError{Path: path, Err: err}
	}
	if err := ValidateDocument(data); err != nil {
		return 0, &ImportError{Path: path, Err: err}
	}

	var imported []Task
	if err := json.Unmarshal(data, &imported); err != nil {
		return 0, &ImportError{Path: path, Err: err}
	}
	if err := validateTasks(imported); err != nil {
		return 0, &ImportError{Path: path, Err: err}
	}
	for i := range imported {
		imported[i].Tags = dedupTags(imported[i].Tags)
	}

	var next []Task
	switch mode {
	case ImportReplace:
		next = imported
	case ImportMerge:
		next = s.Tasks()
		id := s.nextID()
		for _, t := range imported {
			t.ID = id
			id++
			next = append(next, t)
		}
	default:
		return 0, &ImportError{Path: path, Err: fmt.Errorf("invalid import mode %q", mode)}
	}

	if err := s.persist(next); err != nil {
		return 0, err
	}
	return len(imported), nil
}

// persist saves the next state to disk, then commits it in memory.
func (s *Store) persist(next []Task) error {
	if err := save(s.path, next); err != nil {
		return err
	}
	s.tasks = next
	return nil
}
