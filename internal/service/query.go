package service

import (
	"sort"
	"time"

	"nutrilog/internal/analysis"
	"nutrilog/internal/store"
)

// TodaySummary is everything the "today" view shows
type TodaySummary struct {
	Date          string
	Entries       []store.LogEntry // newest first
	Totals        analysis.MacroTotals
	BaseGoal      float64
	EffectiveGoal float64
	Targets       analysis.MacroTotals
	IntakePercent float64
	WaterML       float64
	WaterGoalML   float64
	Sleep         *store.SleepRecord
	Streak        int
	Points        int
	Mode          store.FitnessMode
}

// DashboardData contains all data needed for the dashboard
type DashboardData struct {
	Today        TodaySummary
	Week         []analysis.DayCalories
	PlannedToday []store.PlannedMeal
	History      analysis.NutrientSeries // last TrendChartDays days, for the trend chart
}

// Today summarizes the current calendar day
func (t *Tracker) Today() TodaySummary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.todayLocked(t.clock())
}

func (t *Tracker) todayLocked(now time.Time) TodaySummary {
	s := &t.state
	date := analysis.DayKey(now)
	goal := analysis.EffectiveGoal(s.Goal, s.Mode)
	totals := analysis.DailyTotal(s.Entries, now)

	var entries []store.LogEntry
	for _, e := range s.Entries {
		if analysis.DayKey(e.LoggedAt(now.Location())) == date {
			entries = append(entries, e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].LoggedAtMilli > entries[j].LoggedAtMilli
	})

	var sleep *store.SleepRecord
	if rec := analysis.SleepForDate(s.Sleep, date); rec != nil {
		cp := *rec
		sleep = &cp
	}

	return TodaySummary{
		Date:          date,
		Entries:       entries,
		Totals:        totals,
		BaseGoal:      s.Goal.BaseCalories,
		EffectiveGoal: goal,
		Targets:       analysis.MacroTargets(goal),
		IntakePercent: analysis.IntakePercentage(totals.Calories, goal),
		WaterML:       analysis.WaterTotalML(s.Water, date),
		WaterGoalML:   analysis.DefaultWaterGoalML,
		Sleep:         sleep,
		Streak:        analysis.LoggingStreak(s.Entries, now),
		Points:        s.Achievements.Points,
		Mode:          s.Mode,
	}
}

// Dashboard fetches all data needed for the dashboard
func (t *Tracker) Dashboard() *DashboardData {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock()
	today := t.todayLocked(now)
	return &DashboardData{
		Today:        today,
		Week:         analysis.WeeklySeries(t.state.Entries, now),
		PlannedToday: analysis.PlannedForDate(t.state.PlannedMeals, today.Date, ""),
		History:      analysis.HistoricalSeries(t.state.Entries, TrendChartDays, now),
	}
}

// WeeklyLog returns the last 7 days of entries, oldest day first
func (t *Tracker) WeeklyLog() []analysis.DayLog {
	t.mu.Lock()
	defer t.mu.Unlock()
	return analysis.WeeklyLog(t.state.Entries, t.clock())
}

// Entries returns every log entry, newest first
func (t *Tracker) Entries() []store.LogEntry {
	t.mu.Lock()
	entries := append([]store.LogEntry(nil), t.state.Entries...)
	t.mu.Unlock()

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].LoggedAtMilli > entries[j].LoggedAtMilli
	})
	return entries
}

// RecentFoodNames lists distinct foods logged in the last week, for suggestions
func (t *Tracker) RecentFoodNames() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return analysis.DistinctFoodNames(t.state.Entries, DistinctNamesDays, t.clock())
}

// PlannedMeals lists meals planned for date, optionally one meal type only.
// An empty date lists every planned meal ordered by date and slot.
func (t *Tracker) PlannedMeals(date string, mealType store.MealType) []store.PlannedMeal {
	t.mu.Lock()
	defer t.mu.Unlock()

	if date != "" {
		return analysis.PlannedForDate(t.state.PlannedMeals, date, mealType)
	}

	meals := append([]store.PlannedMeal(nil), t.state.PlannedMeals...)
	slot := make(map[store.MealType]int, len(store.MealTypes))
	for i, mt := range store.MealTypes {
		slot[mt] = i
	}
	sort.SliceStable(meals, func(i, j int) bool {
		if meals[i].PlannedDate != meals[j].PlannedDate {
			return meals[i].PlannedDate < meals[j].PlannedDate
		}
		return slot[meals[i].MealType] < slot[meals[j].MealType]
	})
	return meals
}

// WaterForDate lists water records for date (today when empty)
func (t *Tracker) WaterForDate(date string) []store.WaterRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	if date == "" {
		date = analysis.DayKey(t.clock())
	}
	return analysis.WaterForDate(t.state.Water, date)
}

// SleepRecords returns every sleep record, newest date first
func (t *Tracker) SleepRecords() []store.SleepRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]store.SleepRecord(nil), t.state.Sleep...)
}

// Feed returns the shared meals, newest first
func (t *Tracker) Feed() []store.SharedMeal {
	t.mu.Lock()
	defer t.mu.Unlock()

	feed := t.state.SharedFeed
	if len(feed) > FeedLimit {
		feed = feed[:FeedLimit]
	}
	return append([]store.SharedMeal(nil), feed...)
}
