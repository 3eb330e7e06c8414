package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

// isolate points HOME and the cwd at fresh temp dirs so no real config
// files or TASKER_* variables leak into the test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	for _, key := range []string{
		"TASKER_FILE",
		"TASKER_DEFAULT_PRIORITY",
		"TASKER_LOG_LEVEL",
		"TASKER_LOG_FORMAT",
		"TASKER_LOG_TIMESTAMPS",
	} {
		t.Setenv(key, "")
	}
	work := t.TempDir()
	t.Chdir(work)
	return work
}

func load(t *testing.T, args ...string) *Config {
	t.Helper()
	fs := flag.NewFlagSet("tasker", flag.ContinueOnError)
	cfg, err := Load(fs, args)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	work := isolate(t)
	cfg := load(t)

	if cfg.TasksFile != filepath.Join(work, "tasks.json") {
		t.Errorf("TasksFile: got %q, want %q", cfg.TasksFile, filepath.Join(work, "tasks.json"))
	}
	if cfg.DefaultPriority != "medium" {
		t.Errorf("DefaultPriority: got %q, want medium", cfg.DefaultPriority)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel: got %q, want info", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat: got %q, want text", cfg.LogFormat)
	}
	if cfg.LogTimestamps {
		t.Error("LogTimestamps: got true, want false")
	}
}

func TestLoadUserConfigFile(t *testing.T) {
	isolate(t)
	home := os.Getenv("HOME")
	dir := filepath.Join(home, ".tasker")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	content := `default_priority = "high"
log_level = "debug"
`
	if err := os.WriteFile(filepath.Join(dir, "tasker.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg := load(t)
	if cfg.DefaultPriority != "high" {
		t.Errorf("DefaultPriority: got %q, want high", cfg.DefaultPriority)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want debug", cfg.LogLevel)
	}
}

func TestLoadProjectConfigOverridesUser(t *testing.T) {
	isolate(t)
	home := os.Getenv("HOME")
	dir := filepath.Join(home, ".tasker")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tasker.toml"), []byte(`default_priority = "high"`), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := os.WriteFile("tasker.toml", []byte(`default_priority = "low"`), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg := load(t)
	if cfg.DefaultPriority != "low" {
		t.Errorf("DefaultPriority: got %q, want low", cfg.DefaultPriority)
	}
}

func TestLoadHiddenProjectConfig(t *testing.T) {
	isolate(t)
	if err := os.WriteFile(".tasker.toml", []byte(`tasks_file = "work.json"`), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg := load(t)
	if filepath.Base(cfg.TasksFile) != "work.json" {
		t.Errorf("TasksFile: got %q, want work.json", cfg.TasksFile)
	}
}

func TestLoadEnvOverridesFiles(t *testing.T) {
	isolate(t)
	if err := os.WriteFile("tasker.toml", []byte(`default_priority = "low"`), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	t.Setenv("TASKER_DEFAULT_PRIORITY", "high")
	t.Setenv("TASKER_LOG_TIMESTAMPS", "true")

	cfg := load(t)
	if cfg.DefaultPriority != "high" {
		t.Errorf("DefaultPriority: got %q, want high", cfg.DefaultPriority)
	}
	if !cfg.LogTimestamps {
		t.Error("LogTimestamps: got false, want true")
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("TASKER_DEFAULT_PRIORITY", "high")
	t.Setenv("TASKER_FILE", "env.json")

	cfg := load(t, "-default-priority", "low", "-file", "flag.json")
	if cfg.DefaultPriority != "low" {
		t.Errorf("DefaultPriority: got %q, want low", cfg.DefaultPriority)
	}
	if filepath.Base(cfg.TasksFile) != "flag.json" {
		t.Errorf("TasksFile: got %q, want flag.json", cfg.TasksFile)
	}
}

func TestLoadAbsoluteTasksFileKept(t *testing.T) {
	isolate(t)
	abs := filepath.Join(t.TempDir(), "tasks.json")

	cfg := load(t, "-file", abs)
	if cfg.TasksFile != abs {
		t.Errorf("TasksFile: got %q, want %q", cfg.TasksFile, abs)
	}
}

func TestLoadTildeExpansion(t *testing.T) {
	isolate(t)
	home := os.Getenv("HOME")

	cfg := load(t, "-file", "~/tasks.json")
	if cfg.TasksFile != filepath.Join(home, "tasks.json") {
		t.Errorf("TasksFile: got %q, want %q", cfg.TasksFile, filepath.Join(home, "tasks.json"))
	}
}

func TestLoadBadTOML(t *testing.T) {
	isolate(t)
	if err := os.WriteFile("tasker.toml", []byte("not = [valid"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	fs := flag.NewFlagSet("tasker", flag.ContinueOnError)
	if _, err := Load(fs, nil); err == nil {
		t.Fatal("expected error for malformed TOML")
	}
}

func TestBoolFromString(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"on", true},
		{"false", false},
		{"0", false},
		{"", false},
		{"maybe", false},
	}

	for _, tt := range tests {
		if got := boolFromString(tt.input); got != tt.want {
			t.Errorf("boolFromString(%q): got %v, want %v", tt.input, got, tt.want)
		}
	}
}
