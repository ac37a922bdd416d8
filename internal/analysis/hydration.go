package analysis

import (
	"nutrilog/internal/store"
)

// Daily wellness targets
const (
	MLPerOunce            = 29.5735
	DefaultWaterGoalML    = 2000
	DefaultSleepGoalHours = 8
)

// WaterML converts one record to millilitres
func WaterML(r store.WaterRecord) float64 {
	if r.Unit == store.UnitOZ {
		return r.Amount * MLPerOunce
	}
	return r.Amount
}

// WaterForDate returns the records logged for date (YYYY-MM-DD)
func WaterForDate(records []store.WaterRecord, date string) []store.WaterRecord {
	var out []store.WaterRecord
	for _, r := range records {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out
}

// WaterTotalML sums the water logged for date in millilitres
func WaterTotalML(records []store.WaterRecord, date string) float64 {
	var total float64
	for _, r := range WaterForDate(records, date) {
		total += WaterML(r)
	}
	return total
}

// SleepForDate returns the sleep record ending on date, or nil
func SleepForDate(records []store.SleepRecord, date string) *store.SleepRecord {
	for i := range records {
		if records[i].Date == date {
			return &records[i]
		}
	}
	return nil
}

// PlannedForDate returns the meals planned for date, optionally limited to one meal type
func PlannedForDate(meals []store.PlannedMeal, date string, mealType store.MealType) []store.PlannedMeal {
	var out []store.PlannedMeal
	for _, m := range meals {
		if m.PlannedDate != date {
			continue
		}
		if mealType != "" && m.MealType != mealType {
			continue
		}
		out = append(out, m)
	}
	return out
}

// PlannedDays counts distinct dates with at least one planned meal
func PlannedDays(meals []store.PlannedMeal) int {
	dates := make(map[string]struct{})
	for _, m := range meals {
		dates[m.PlannedDate] = struct{}{}
	}
	return len(dates)
}
