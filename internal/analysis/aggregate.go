package analysis

import (
	"sort"
	"strings"
	"time"

	"nutrilog/internal/store"
)

// Nutrient identifies one tracked quantity
type Nutrient string

const (
	Calories Nutrient = "calories"
	Protein  Nutrient = "protein"
	Carbs    Nutrient = "carbs"
	Fat      Nutrient = "fat"
)

// Nutrients lists every tracked nutrient in display order
var Nutrients = []Nutrient{Calories, Protein, Carbs, Fat}

// MacroTotals is a sum of calories and macronutrient grams
type MacroTotals struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}

// Get returns the value for one nutrient
func (m MacroTotals) Get(n Nutrient) float64 {
	switch n {
	case Calories:
		return m.Calories
	case Protein:
		return m.Protein
	case Carbs:
		return m.Carbs
	case Fat:
		return m.Fat
	}
	return 0
}

func (m MacroTotals) add(e store.LogEntry) MacroTotals {
	return MacroTotals{
		Calories: m.Calories + e.Calories,
		Protein:  m.Protein + e.Protein,
		Carbs:    m.Carbs + e.Carbs,
		Fat:      m.Fat + e.Fat,
	}
}

// DayKey returns the local calendar date of t as YYYY-MM-DD
func DayKey(t time.Time) string {
	return t.Format(store.DateLayout)
}

// StartOfDay returns local midnight of t's calendar date
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysAgo returns midnight n calendar days before now's date
func daysAgo(now time.Time, n int) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d-n, 0, 0, 0, 0, now.Location())
}

// dailyBuckets sums entries per local calendar date
func dailyBuckets(entries []store.LogEntry, loc *time.Location) map[string]MacroTotals {
	buckets := make(map[string]MacroTotals)
	for _, e := range entries {
		key := DayKey(e.LoggedAt(loc))
		buckets[key] = buckets[key].add(e)
	}
	return buckets
}

// DailyTotal sums every entry logged on day's local calendar date.
// Returns zeros when nothing was logged.
func DailyTotal(entries []store.LogEntry, day time.Time) MacroTotals {
	loc := day.Location()
	key := DayKey(day)

	var total MacroTotals
	for _, e := range entries {
		if DayKey(e.LoggedAt(loc)) == key {
			total = total.add(e)
		}
	}
	return total
}

// DayCalories is one bar of the weekly chart
type DayCalories struct {
	Label    string // short weekday, e.g. "Mon"
	Date     string // YYYY-MM-DD
	Calories float64
}

// WeeklySeries returns calories for the trailing 7 calendar days ending today, oldest first
func WeeklySeries(entries []store.LogEntry, now time.Time) []DayCalories {
	buckets := dailyBuckets(entries, now.Location())

	week := make([]DayCalories, 0, 7)
	for i := 6; i >= 0; i-- {
		day := daysAgo(now, i)
		key := DayKey(day)
		week = append(week, DayCalories{
			Label:    day.Format("Mon"),
			Date:     key,
			Calories: buckets[key].Calories,
		})
	}
	return week
}

// NutrientSeries holds one day-indexed series per nutrient
type NutrientSeries struct {
	Calories []DataPoint
	Protein  []DataPoint
	Carbs    []DataPoint
	Fat      []DataPoint
}

// Get returns the series for one nutrient
func (s NutrientSeries) Get(n Nutrient) []DataPoint {
	switch n {
	case Calories:
		return s.Calories
	case Protein:
		return s.Protein
	case Carbs:
		return s.Carbs
	case Fat:
		return s.Fat
	}
	return nil
}

// HistoricalSeries returns exactly nDays points per nutrient for the trailing
// nDays calendar days ending today. X runs 0..nDays-1 oldest first; days
// without entries are zero.
func HistoricalSeries(entries []store.LogEntry, nDays int, now time.Time) NutrientSeries {
	if nDays <= 0 {
		return NutrientSeries{}
	}
	buckets := dailyBuckets(entries, now.Location())

	series := NutrientSeries{
		Calories: make([]DataPoint, 0, nDays),
		Protein:  make([]DataPoint, 0, nDays),
		Carbs:    make([]DataPoint, 0, nDays),
		Fat:      make([]DataPoint, 0, nDays),
	}
	for i := 0; i < nDays; i++ {
		t := buckets[DayKey(daysAgo(now, nDays-1-i))]
		series.Calories = append(series.Calories, DataPoint{X: i, Y: t.Calories})
		series.Protein = append(series.Protein, DataPoint{X: i, Y: t.Protein})
		series.Carbs = append(series.Carbs, DataPoint{X: i, Y: t.Carbs})
		series.Fat = append(series.Fat, DataPoint{X: i, Y: t.Fat})
	}
	return series
}

// DistinctFoodNames returns the sorted set of lowercase, trimmed names logged
// at or after now minus nDays
func DistinctFoodNames(entries []store.LogEntry, nDays int, now time.Time) []string {
	cutoff := now.AddDate(0, 0, -nDays).UnixMilli()

	seen := make(map[string]struct{})
	for _, e := range entries {
		if e.LoggedAtMilli < cutoff {
			continue
		}
		seen[strings.ToLower(strings.TrimSpace(e.Name))] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DayLog is one calendar day's entries
type DayLog struct {
	Date    string // YYYY-MM-DD
	Label   string // e.g. "Monday, January 1, 2024"
	Entries []store.LogEntry
	Totals  MacroTotals
}

// WeeklyLog returns the trailing 7 calendar days ending today, oldest first,
// each with its entries in logging order
func WeeklyLog(entries []store.LogEntry, now time.Time) []DayLog {
	loc := now.Location()
	byDay := make(map[string][]store.LogEntry)
	for _, e := range entries {
		key := DayKey(e.LoggedAt(loc))
		byDay[key] = append(byDay[key], e)
	}

	week := make([]DayLog, 0, 7)
	for i := 6; i >= 0; i-- {
		day := daysAgo(now, i)
		key := DayKey(day)
		dayEntries := byDay[key]
		sort.SliceStable(dayEntries, func(a, b int) bool {
			return dayEntries[a].LoggedAtMilli < dayEntries[b].LoggedAtMilli
		})

		var totals MacroTotals
		for _, e := range dayEntries {
			totals = totals.add(e)
		}
		week = append(week, DayLog{
			Date:    key,
			Label:   day.Format("Monday, January 2, 2006"),
			Entries: dayEntries,
			Totals:  totals,
		})
	}
	return week
}

// IntakePercentage returns consumed as a percentage of goal, 0 when goal is not positive
func IntakePercentage(consumed, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return consumed / goal * 100
}
