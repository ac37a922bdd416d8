package tui

import (
	"strings"
	"testing"
	"time"

	"nutrilog/internal/analysis"
	"nutrilog/internal/config"
	"nutrilog/internal/service"
	"nutrilog/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestTracker(t *testing.T) *service.Tracker {
	t.Helper()
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	tr, err := service.NewTracker(db, "tui-user", service.Options{
		Clock: func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("NewTracker() error = %v", err)
	}
	return tr
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAppNavigation(t *testing.T) {
	app := NewApp(newTestTracker(t), config.DisplayConfig{WaterUnit: "ml"}, nil)

	tests := []struct {
		key    string
		screen Screen
	}{
		{"2", ScreenLog},
		{"3", ScreenForecast},
		{"4", ScreenProgress},
		{"?", ScreenHelp},
		{"1", ScreenDashboard},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			app.Update(key(tt.key))
			if app.screen != tt.screen {
				t.Errorf("after %q screen = %d, want %d", tt.key, app.screen, tt.screen)
			}
		})
	}
}

func TestAppHelpEscReturns(t *testing.T) {
	app := NewApp(newTestTracker(t), config.DisplayConfig{}, nil)
	app.Update(key("3"))
	app.Update(key("?"))
	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if app.screen != ScreenForecast {
		t.Errorf("esc from help screen = %d, want forecast", app.screen)
	}
}

func TestAppAchievementStatus(t *testing.T) {
	ch := make(chan analysis.Evaluation, 1)
	app := NewApp(newTestTracker(t), config.DisplayConfig{}, ch)

	ev := analysis.Evaluation{
		NewMilestones: []store.Milestone{{ID: "firstLog"}},
		NewChallenges: []store.Challenge{{ID: "try3NewFoodsToday", PointsAwarded: 30}},
	}
	_, cmd := app.Update(AchievementMsg(ev))
	if cmd == nil {
		t.Error("expected the app to keep listening for achievements")
	}
	if !strings.Contains(app.status, "First Bite") || !strings.Contains(app.status, "Mix It Up (+30 pts)") {
		t.Errorf("status = %q", app.status)
	}
}

func TestFoodLogDeleteNeedsConfirmation(t *testing.T) {
	tr := newTestTracker(t)
	if _, err := tr.LogFood(store.NutritionFact{Name: "Toast", Calories: 120}); err != nil {
		t.Fatalf("LogFood() error = %v", err)
	}

	m := NewFoodLogModel(tr)
	next, _ := m.Update(m.loadEntries())
	m = next.(FoodLogModel)
	if len(m.entries) != 1 {
		t.Fatalf("loaded %d entries, want 1", len(m.entries))
	}

	// Anything but y cancels
	next, _ = m.Update(key("d"))
	m = next.(FoodLogModel)
	next, _ = m.Update(key("n"))
	m = next.(FoodLogModel)
	if len(tr.Entries()) != 1 {
		t.Fatal("entry deleted without confirmation")
	}

	next, _ = m.Update(key("d"))
	m = next.(FoodLogModel)
	_, cmd := m.Update(key("y"))
	if cmd == nil {
		t.Fatal("expected a delete command")
	}
	if msg, ok := cmd().(entryChangedMsg); !ok || msg.err != nil {
		t.Fatalf("delete result = %+v", msg)
	}
	if len(tr.Entries()) != 0 {
		t.Errorf("entries after delete = %d, want 0", len(tr.Entries()))
	}
}

func TestFoodLogPaging(t *testing.T) {
	tr := newTestTracker(t)
	for i := 0; i < 20; i++ {
		if _, err := tr.LogFood(store.NutritionFact{Name: "Snack", Calories: 50}); err != nil {
			t.Fatalf("LogFood() error = %v", err)
		}
	}

	m := NewFoodLogModel(tr)
	next, _ := m.Update(m.loadEntries())
	m = next.(FoodLogModel)

	for i := 0; i < 15; i++ {
		next, _ = m.Update(key("j"))
		m = next.(FoodLogModel)
	}
	if m.offset != 15 || m.cursor != 0 {
		t.Errorf("offset, cursor = %d, %d; want 15, 0", m.offset, m.cursor)
	}
	if len(m.page()) != 5 {
		t.Errorf("second page has %d rows, want 5", len(m.page()))
	}
}

func TestUnitsFormatWater(t *testing.T) {
	tests := []struct {
		unit     string
		ml       float64
		expected string
	}{
		{"ml", 1500, "1500 ml"},
		{"", 250, "250 ml"},
		{"oz", analysis.MLPerOunce * 16, "16.0 oz"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			u := NewUnits(config.DisplayConfig{WaterUnit: tt.unit})
			if got := u.FormatWater(tt.ml); got != tt.expected {
				t.Errorf("FormatWater(%v) = %q, want %q", tt.ml, got, tt.expected)
			}
		})
	}
}

func TestModeLabel(t *testing.T) {
	tests := map[string]string{
		"maintenance": "Maintenance",
		"weightLoss":  "Weight Loss",
		"muscleGain":  "Muscle Gain",
	}
	for in, want := range tests {
		if got := modeLabel(in); got != want {
			t.Errorf("modeLabel(%q) = %q, want %q", in, got, want)
		}
	}
}
