package service

import (
	"fmt"
	"math"
	"strings"

	"nutrilog/internal/analysis"
)

// ForecastDisplay is one nutrient forecast formatted for display
type ForecastDisplay struct {
	Nutrient analysis.Nutrient
	Period   analysis.Period
	Forecast analysis.Forecast
	Message  string
	Unit     string // "kcal" or "g"
}

// ForecastData contains all data needed for the forecast screen
type ForecastData struct {
	Weekly        []ForecastDisplay
	Monthly       []ForecastDisplay
	EffectiveGoal float64
	HasForecasts  bool
}

// Forecasts projects intake against the current effective goal
func (t *Tracker) Forecasts() *ForecastData {
	t.mu.Lock()
	now := t.clock()
	goal := analysis.EffectiveGoal(t.state.Goal, t.state.Mode)
	result := analysis.ForecastGoals(t.state.Entries, goal, now)
	t.mu.Unlock()

	data := &ForecastData{EffectiveGoal: goal}
	if result.Weekly == nil || result.Monthly == nil {
		return data
	}
	data.HasForecasts = true

	for _, n := range analysis.Nutrients {
		data.Weekly = append(data.Weekly, newForecastDisplay(analysis.Weekly, n, result.Weekly.Get(n)))
		data.Monthly = append(data.Monthly, newForecastDisplay(analysis.Monthly, n, result.Monthly.Get(n)))
	}
	return data
}

func newForecastDisplay(period analysis.Period, n analysis.Nutrient, f analysis.Forecast) ForecastDisplay {
	unit := "g"
	if n == analysis.Calories {
		unit = "kcal"
	}
	return ForecastDisplay{
		Nutrient: n,
		Period:   period,
		Forecast: f,
		Message:  ForecastMessage(period, n, f),
		Unit:     unit,
	}
}

// ForecastMessage describes a forecast, e.g.
// "Weekly calories forecast: slightly over goal (+8%)"
func ForecastMessage(period analysis.Period, n analysis.Nutrient, f analysis.Forecast) string {
	return fmt.Sprintf("%s %s forecast: %s", capitalizeFirst(string(period)), n, statusPhrase(f))
}

func statusPhrase(f analysis.Forecast) string {
	diff := fmt.Sprintf("%+d%%", int(math.Round(f.DiffPercent())))

	switch f.Status {
	case analysis.StatusOnTrack:
		return "on track (" + diff + ")"
	case analysis.StatusSlightlyOver:
		return "slightly over goal (" + diff + ")"
	case analysis.StatusSignificantlyOver:
		return "well over goal (" + diff + ")"
	case analysis.StatusSlightlyUnder:
		return "slightly under goal (" + diff + ")"
	case analysis.StatusSignificantlyUnder:
		return "well under goal (" + diff + ")"
	case analysis.StatusMoreDataNeeded:
		return fmt.Sprintf("log at least %d days to see a trend", f.MinDays)
	default:
		return "trend not reliable yet"
	}
}

// capitalizeFirst capitalizes the first letter of a string
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
