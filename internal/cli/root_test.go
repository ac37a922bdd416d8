package cli

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"nutrilog/internal/service"
)

// setupCLI points config, logs and the database at a temp dir and pins the clock
func setupCLI(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{"NUTRILOG_DB", "NUTRILOG_DEBUG", "NUTRILOG_GOOGLE_CLIENT_ID", "NUTRILOG_GOOGLE_CLIENT_SECRET"} {
		t.Setenv(key, "")
	}

	fixed := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	prevNow := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = prevNow })

	return filepath.Join(home, "nutrilog.db")
}

// resetFlags clears flag values cobra keeps between Execute calls
func resetFlags() {
	foodName, foodCalories, foodProtein, foodCarbs, foodFat, foodServing = "", 0, 0, 0, 0, 0
	foodInteractive = false
	waterUnit, waterListDate = "", ""
	sleepDate, sleepQuality, sleepNotes = "", "", ""
	planAddDate, planAddMeal, planListDate, planListMeal = "", "lunch", "", ""
	planListAll = false
	dbPath, debugMode = "", false
}

func runCLI(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"--db", db}, args...))
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootHelp(t *testing.T) {
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--help"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute root help: %v", err)
	}
	if !strings.Contains(buf.String(), "nutrilog") {
		t.Fatalf("expected help output, got %q", buf.String())
	}
}

func TestLogAndToday(t *testing.T) {
	db := setupCLI(t)

	out, err := runCLI(t, db, "log", "--name", "Oatmeal", "--calories", "150", "--protein", "5")
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if !strings.Contains(out, "Logged Oatmeal: 150 kcal") {
		t.Errorf("log output = %q", out)
	}
	if !strings.Contains(out, "First Bite") {
		t.Errorf("expected the first-log milestone in %q", out)
	}

	out, err = runCLI(t, db, "today")
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	for _, want := range []string{"Oatmeal", "Calories: 150 / 2000 kcal", "Streak:   1 days"} {
		if !strings.Contains(out, want) {
			t.Errorf("today output missing %q:\n%s", want, out)
		}
	}
}

func TestLogRequiresName(t *testing.T) {
	db := setupCLI(t)
	if _, err := runCLI(t, db, "log", "--calories", "100"); err == nil {
		t.Fatal("expected an error without --name")
	}
}

func TestGoalAndMode(t *testing.T) {
	db := setupCLI(t)

	if _, err := runCLI(t, db, "goal", "set", "2500"); err != nil {
		t.Fatalf("goal set: %v", err)
	}
	out, err := runCLI(t, db, "mode", "muscle-gain")
	if err != nil {
		t.Fatalf("mode: %v", err)
	}
	if !strings.Contains(out, "2800 kcal") {
		t.Errorf("mode output = %q, want effective goal 2800", out)
	}

	if _, err := runCLI(t, db, "goal", "set", "0"); !errors.Is(err, service.ErrInvalidGoal) {
		t.Errorf("goal set 0 error = %v, want ErrInvalidGoal", err)
	}
	if _, err := runCLI(t, db, "mode", "bulking"); err == nil {
		t.Error("expected an error for an unknown mode")
	}
}

func TestWaterAndSleep(t *testing.T) {
	db := setupCLI(t)

	out, err := runCLI(t, db, "water", "add", "500")
	if err != nil {
		t.Fatalf("water add: %v", err)
	}
	if !strings.Contains(out, "Today: 500 ml / 2000 ml") {
		t.Errorf("water add output = %q", out)
	}
	if _, err := runCLI(t, db, "water", "add", "8", "--unit", "oz"); err != nil {
		t.Fatalf("water add oz: %v", err)
	}
	out, err = runCLI(t, db, "water", "list")
	if err != nil {
		t.Fatalf("water list: %v", err)
	}
	if !strings.Contains(out, "500 ml") || !strings.Contains(out, "8 oz") {
		t.Errorf("water list = %q", out)
	}

	if _, err := runCLI(t, db, "sleep", "add", "7.5", "--quality", "good"); err != nil {
		t.Fatalf("sleep add: %v", err)
	}
	out, err = runCLI(t, db, "sleep", "list")
	if err != nil {
		t.Fatalf("sleep list: %v", err)
	}
	if !strings.Contains(out, "2024-03-10") || !strings.Contains(out, "7.5 h") {
		t.Errorf("sleep list = %q", out)
	}
}

func TestRemoveByPrefix(t *testing.T) {
	db := setupCLI(t)

	out, err := runCLI(t, db, "log", "-n", "Apple", "-c", "95")
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	start := strings.LastIndex(out, "[")
	end := strings.LastIndex(out, "]")
	if start < 0 || end <= start {
		t.Fatalf("no id in %q", out)
	}
	id := out[start+1 : end]

	if _, err := runCLI(t, db, "remove", id); err != nil {
		t.Fatalf("remove %s: %v", id, err)
	}
	if _, err := runCLI(t, db, "remove", id); !errors.Is(err, service.ErrEntryNotFound) {
		t.Errorf("second remove error = %v, want ErrEntryNotFound", err)
	}
}

func TestMatchID(t *testing.T) {
	ids := []string{"abc123", "abd456", "xyz789"}

	tests := []struct {
		name     string
		prefix   string
		expected string
		wantErr  bool
	}{
		{"exact", "xyz789", "xyz789", false},
		{"unique prefix", "abc", "abc123", false},
		{"ambiguous", "ab", "", true},
		{"missing", "q", "", true},
		{"empty", " ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := matchID(tt.prefix, ids)
			if (err != nil) != tt.wantErr {
				t.Fatalf("matchID(%q) error = %v, wantErr %v", tt.prefix, err, tt.wantErr)
			}
			if result != tt.expected {
				t.Errorf("matchID(%q) = %q, want %q", tt.prefix, result, tt.expected)
			}
		})
	}
}

func TestParseDateOrToday(t *testing.T) {
	setupCLI(t)

	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"", "2024-03-10", false},
		{"today", "2024-03-10", false},
		{"tomorrow", "2024-03-11", false},
		{"yesterday", "2024-03-09", false},
		{"2024-12-25", "2024-12-25", false},
		{"12/25/2024", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := parseDateOrToday(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDateOrToday(%q) error = %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("parseDateOrToday(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestInteractiveLogSuggestsRecentFoods(t *testing.T) {
	db := setupCLI(t)
	if _, err := runCLI(t, db, "log", "--name", "Oatmeal", "--calories", "150"); err != nil {
		t.Fatalf("log: %v", err)
	}

	var offered []string
	prevFill := fillFoodForm
	fillFoodForm = func(f *foodForm, suggestions []string) error {
		offered = suggestions
		f.Name, f.Calories = "Oatmeal", "150"
		return nil
	}
	t.Cleanup(func() { fillFoodForm = prevFill })

	out, err := runCLI(t, db, "log", "-i")
	if err != nil {
		t.Fatalf("log -i: %v", err)
	}
	if len(offered) != 1 || offered[0] != "oatmeal" {
		t.Errorf("suggestions = %v, want [oatmeal]", offered)
	}
	if !strings.Contains(out, "Logged Oatmeal: 150 kcal") {
		t.Errorf("log -i output = %q", out)
	}
}
