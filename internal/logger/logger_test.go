package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readLog(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "logs", "nutrilog.log"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	return string(data)
}

func TestHelpersAreNoopsBeforeInit(t *testing.T) {
	if err := Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	// Must not panic
	Debug("debug", "k", 1)
	Info("info")
	Warn("warn")
	Error("error", "err", "boom")
}

func TestInitWritesLogFile(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { Close() })

	if err := Init(Config{ConfigDir: dir}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	Debug("hidden at warn level")
	Warn("save failed", "key", "dailyLog")

	out := readLog(t, dir)
	if !strings.Contains(out, "save failed") || !strings.Contains(out, "dailyLog") {
		t.Errorf("log file missing warning: %q", out)
	}
	if strings.Contains(out, "hidden at warn level") {
		t.Errorf("debug message written at warn level: %q", out)
	}
}

func TestInitReusesOrReplacesFile(t *testing.T) {
	t.Cleanup(func() { Close() })

	first := t.TempDir()
	if err := Init(Config{ConfigDir: first}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	opened := file

	t.Run("same config keeps the open file", func(t *testing.T) {
		if err := Init(Config{ConfigDir: first}); err != nil {
			t.Fatalf("Init() error = %v", err)
		}
		if file != opened {
			t.Error("repeat Init replaced the log file")
		}
	})

	t.Run("new config closes the previous file", func(t *testing.T) {
		second := t.TempDir()
		if err := Init(Config{ConfigDir: second}); err != nil {
			t.Fatalf("Init() error = %v", err)
		}
		if file == opened {
			t.Fatal("Init with a new directory kept the old file")
		}
		Warn("after switch")

		if strings.Contains(readLog(t, first), "after switch") {
			t.Error("message written to the previous log file")
		}
		if !strings.Contains(readLog(t, second), "after switch") {
			t.Error("message missing from the new log file")
		}
	})

	t.Run("Close is idempotent and silences logging", func(t *testing.T) {
		if err := Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		if err := Close(); err != nil {
			t.Fatalf("second Close() error = %v", err)
		}
		Warn("after close")
		if file != nil || current() != nil {
			t.Error("Close left a logger behind")
		}
	})
}
