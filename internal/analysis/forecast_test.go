package analysis

import (
	"math"
	"testing"
	"time"

	"nutrilog/internal/store"
)

// dailyEntries logs one entry of calories at noon on each of the given days back from now
func dailyEntries(now time.Time, calories float64, daysBack ...int) []store.LogEntry {
	var entries []store.LogEntry
	for _, d := range daysBack {
		day := daysAgo(now, d).Add(12 * time.Hour)
		entries = append(entries, entryAt("meal", day, calories))
	}
	return entries
}

func TestClassifyForecast(t *testing.T) {
	tests := []struct {
		name      string
		projected float64
		goal      float64
		want      ForecastStatus
	}{
		{"exactly on goal", 1000, 1000, StatusOnTrack},
		{"within 5 percent", 1050, 1000, StatusOnTrack},
		{"slightly over", 1100, 1000, StatusSlightlyOver},
		{"15 percent stays slight", 1150, 1000, StatusSlightlyOver},
		{"significantly over", 1151, 1000, StatusSignificantlyOver},
		{"slightly under", 900, 1000, StatusSlightlyUnder},
		{"15 percent under stays slight", 850, 1000, StatusSlightlyUnder},
		{"significantly under", 500, 1000, StatusSignificantlyUnder},
		{"zero goal", 500, 0, StatusTrendNotReliable},
		{"negative goal", 500, -10, StatusTrendNotReliable},
		{"nan goal", 500, math.NaN(), StatusTrendNotReliable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyForecast(tt.projected, tt.goal); got != tt.want {
				t.Errorf("ClassifyForecast(%v, %v) = %s, want %s", tt.projected, tt.goal, got, tt.want)
			}
		})
	}
}

func TestForecastGoalsNilWithoutData(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	if got := ForecastGoals(nil, 2000, now); got.Weekly != nil || got.Monthly != nil {
		t.Errorf("expected nil forecasts for empty log, got %+v", got)
	}
	entries := dailyEntries(now, 1000, 0)
	if got := ForecastGoals(entries, 0, now); got.Weekly != nil || got.Monthly != nil {
		t.Errorf("expected nil forecasts for zero goal, got %+v", got)
	}
}

func TestForecastGoalsMoreDataNeeded(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	entries := dailyEntries(now, 1500, 0, 2, 5, 9)

	got := ForecastGoals(entries, 2000, now)
	if got.Weekly == nil || got.Monthly == nil {
		t.Fatal("expected forecasts")
	}
	for _, n := range Nutrients {
		w := got.Weekly.Get(n)
		if w.Status != StatusMoreDataNeeded || w.MinDays != MinDaysWeekly {
			t.Errorf("weekly %s = %+v, want moreDataNeeded(%d)", n, w, MinDaysWeekly)
		}
		m := got.Monthly.Get(n)
		if m.Status != StatusMoreDataNeeded || m.MinDays != MinDaysMonthly {
			t.Errorf("monthly %s = %+v, want moreDataNeeded(%d)", n, m, MinDaysMonthly)
		}
	}
	if got.Weekly.Calories.Goal != 14000 {
		t.Errorf("weekly goal = %v, want 14000", got.Weekly.Calories.Goal)
	}
}

func TestForecastGoalsFlatIntake(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	var days []int
	for d := 0; d < 30; d++ {
		days = append(days, d)
	}
	entries := dailyEntries(now, 1000, days...)

	got := ForecastGoals(entries, 1000, now)
	if got.Weekly == nil {
		t.Fatal("expected weekly forecast")
	}

	w := got.Weekly.Calories
	if math.Abs(w.Projected-7000) > 1e-6 {
		t.Errorf("weekly projected = %v, want 7000", w.Projected)
	}
	if w.Goal != 7000 || w.Status != StatusOnTrack {
		t.Errorf("weekly = %+v, want onTrack against 7000", w)
	}

	m := got.Monthly.Calories
	if math.Abs(m.Projected-1000) > 1e-6 || m.Status != StatusOnTrack {
		t.Errorf("monthly = %+v, want onTrack at 1000", m)
	}
}

func TestForecastGoalsRisingTrend(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	var entries []store.LogEntry
	for d := 13; d >= 0; d-- {
		day := daysAgo(now, d).Add(12 * time.Hour)
		entries = append(entries, entryAt("meal", day, float64(1000+(13-d)*100)))
	}

	got := ForecastGoals(entries, 1500, now)
	w := got.Weekly.Calories
	// Fitted line is 1000 + 100x; days 14..20 sum to 7000 + 100*119
	if math.Abs(w.Projected-18900) > 1e-6 {
		t.Errorf("weekly projected = %v, want 18900", w.Projected)
	}
	if w.Status != StatusSignificantlyOver {
		t.Errorf("weekly status = %s, want significantlyOver", w.Status)
	}
	if math.Abs(w.RSquared-1) > 1e-9 {
		t.Errorf("RSquared = %v, want 1", w.RSquared)
	}
}

func TestForecastClampsNegativeProjection(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	var entries []store.LogEntry
	for d := 13; d >= 0; d-- {
		day := daysAgo(now, d).Add(12 * time.Hour)
		entries = append(entries, entryAt("meal", day, float64(2600-(13-d)*200)))
	}

	got := ForecastGoals(entries, 2000, now)
	if p := got.Weekly.Calories.Projected; p != 0 {
		t.Errorf("weekly projected = %v, want clamped 0", p)
	}
	if s := got.Weekly.Calories.Status; s != StatusSignificantlyUnder {
		t.Errorf("status = %s, want significantlyUnder", s)
	}
}

func TestForecastDiffPercent(t *testing.T) {
	f := Forecast{Projected: 1150, Goal: 1000}
	if got := f.DiffPercent(); math.Abs(got-15) > 1e-9 {
		t.Errorf("DiffPercent = %v, want 15", got)
	}
	if got := (Forecast{Projected: 10}).DiffPercent(); got != 0 {
		t.Errorf("DiffPercent with zero goal = %v, want 0", got)
	}
}
