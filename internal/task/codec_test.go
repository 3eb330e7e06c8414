package task

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingFile(t *testing.T) {
	tasks, err := load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("tasks: got %d, want 0", len(tasks))
	}
}

func TestLoadCorruptJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"truncated", `[{"id": 1, "descripti`},
		{"object root", `{"tasks": []}`},
		{"plain text", `not json at all`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tasks.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("WriteFile failed: %v", err)
			}

			_, err := load(path)
			var cerr *CorruptStoreError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected CorruptStoreError, got %v", err)
			}
			if cerr.Path != path {
				t.Errorf("Path: got %q, want %q", cerr.Path, path)
			}
		})
	}
}

func TestLoadInvalidRecords(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{
			"duplicate id",
			`[
  {"id": 1, "description": "a", "priority": "low", "completed": false, "created_at": "2024-01-01T00:00:00Z"},
  {"id": 1, "description": "b", "priority": "low", "completed": false, "created_at": "2024-01-01T00:00:00Z"}
]`,
			"tasks[1].id",
		},
		{
			"non-positive id",
			`[{"id": 0, "description": "a", "priority": "low", "completed": false, "created_at": "2024-01-01T00:00:00Z"}]`,
			"tasks[0].id",
		},
		{
			"empty description",
			`[{"id": 1, "description": "", "priority": "low", "completed": false, "created_at": "2024-01-01T00:00:00Z"}]`,
			"tasks[0].description",
		},
		{
			"bad priority",
			`[{"id": 1, "description": "a", "priority": "urgent", "completed": false, "created_at": "2024-01-01T00:00:00Z"}]`,
			"tasks[0].priority",
		},
		{
			"completed without timestamp",
			`[{"id": 1, "description": "a", "priority": "low", "completed": true, "created_at": "2024-01-01T00:00:00Z"}]`,
			"tasks[0].completed_at",
		},
		{
			"timestamp without completed",
			`[{"id": 1, "description": "a", "priority": "low", "completed": false, "created_at": "2024-01-01T00:00:00Z", "completed_at": "2024-01-02T00:00:00Z"}]`,
			"tasks[0].completed_at",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tasks.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("WriteFile failed: %v", err)
			}

			_, err := load(path)
			var cerr *CorruptStoreError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected CorruptStoreError, got %v", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected wrapped ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field: got %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestSaveFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	tasks := []Task{
		{
			ID:          1,
			Description: "Buy milk",
			Priority:    PriorityLow,
			CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	if err := save(path, tasks); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	content := string(data)

	if !strings.HasSuffix(content, "\n") {
		t.Error("file does not end with a newline")
	}
	if !strings.HasPrefix(content, "[\n  {\n") {
		t.Errorf("file is not a 2-space indented array:\n%s", content)
	}
	if strings.Contains(content, "due_date") || strings.Contains(content, "completed_at") {
		t.Errorf("empty optional fields were serialized:\n%s", content)
	}
}

func TestSaveEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := save(path, nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "[]\n" {
		t.Errorf("empty store: got %q, want %q", string(data), "[]\n")
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")

	for i := 0; i < 3; i++ {
		if err := save(path, []Task{
			{ID: 1, Description: "a", Priority: PriorityLow, CreatedAt: time.Now().UTC()},
		}); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, entry := range entries {
		if entry.Name() != "tasks.json" {
			t.Errorf("unexpected leftover file %q", entry.Name())
		}
	}
}

func TestSaveOverwritesAtomically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	first := []Task{{ID: 1, Description: "old", Priority: PriorityLow, CreatedAt: time.Now().UTC()}}
	second := []Task{{ID: 2, Description: "new", Priority: PriorityHigh, CreatedAt: time.Now().UTC()}}

	if err := save(path, first); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := save(path, second); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	tasks, err := load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Description != "new" {
		t.Errorf("tasks: got %+v, want the second document", tasks)
	}
}

func TestLoadIgnoresStrayTempFile(t *testing.T) {
	// A crash between temp write and rename leaves a partial temp file
	// next to the store. It must not affect loading the real file.
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")
	tasks := []Task{{ID: 1, Description: "a", Priority: PriorityLow, CreatedAt: time.Now().UTC()}}

	if err := save(path, tasks); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	stray := filepath.Join(dir, "tasks.json.tmp-12345")
	if err := os.WriteFile(stray, []byte(`[{"id": 9, "descr`), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	loaded, err := load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != 1 {
		t.Errorf("tasks: got %+v, want the saved document", loaded)
	}
}

func TestSaveMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "tasks.json")
	err := save(path, nil)
	if err == nil {
		t.Fatal("expected error saving into a missing directory")
	}
}
