package analysis

import (
	"math"
	"time"

	"nutrilog/internal/store"
)

// Forecast windows
const (
	HistoricalWindowDays   = 30 // days of history retrieved
	WeeklyRegressionInput  = 14 // most recent days fitted for the weekly forecast
	MinDaysWeekly          = 5  // logged days needed in the weekly input
	MinDaysMonthly         = 7  // logged days needed in the full window
	WeeklyProjectionDays   = 7
	SignificantDiffPercent = 15
	SlightDiffPercent      = 5
)

// ForecastStatus classifies a projection against its goal
type ForecastStatus string

const (
	StatusOnTrack            ForecastStatus = "onTrack"
	StatusSlightlyOver       ForecastStatus = "slightlyOver"
	StatusSignificantlyOver  ForecastStatus = "significantlyOver"
	StatusSlightlyUnder      ForecastStatus = "slightlyUnder"
	StatusSignificantlyUnder ForecastStatus = "significantlyUnder"
	StatusMoreDataNeeded     ForecastStatus = "moreDataNeeded"
	StatusTrendNotReliable   ForecastStatus = "trendNotReliable"
)

// Period is the horizon of a forecast
type Period string

const (
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
)

// Forecast is one nutrient's projection for one period
type Forecast struct {
	Projected float64
	Status    ForecastStatus
	Goal      float64
	RSquared  float64
	// MinDays is the logged-day requirement when Status is StatusMoreDataNeeded
	MinDays int
}

// DiffPercent returns how far Projected is from Goal, in percent of Goal
func (f Forecast) DiffPercent() float64 {
	if f.Goal <= 0 {
		return 0
	}
	return (f.Projected - f.Goal) / f.Goal * 100
}

// NutrientForecasts holds one forecast per nutrient
type NutrientForecasts struct {
	Calories Forecast
	Protein  Forecast
	Carbs    Forecast
	Fat      Forecast
}

// Get returns the forecast for one nutrient
func (nf NutrientForecasts) Get(n Nutrient) Forecast {
	switch n {
	case Calories:
		return nf.Calories
	case Protein:
		return nf.Protein
	case Carbs:
		return nf.Carbs
	case Fat:
		return nf.Fat
	}
	return Forecast{}
}

func (nf *NutrientForecasts) set(n Nutrient, f Forecast) {
	switch n {
	case Calories:
		nf.Calories = f
	case Protein:
		nf.Protein = f
	case Carbs:
		nf.Carbs = f
	case Fat:
		nf.Fat = f
	}
}

// GoalForecasts is the result of ForecastGoals; both are nil when forecasting cannot run
type GoalForecasts struct {
	Weekly  *NutrientForecasts
	Monthly *NutrientForecasts
}

// ForecastGoals projects weekly and monthly nutrient intake against the goals
// derived from effectiveGoal. It needs at least one entry and a positive goal.
func ForecastGoals(entries []store.LogEntry, effectiveGoal float64, now time.Time) GoalForecasts {
	if len(entries) == 0 || effectiveGoal <= 0 {
		return GoalForecasts{}
	}

	history := HistoricalSeries(entries, HistoricalWindowDays, now)
	targets := MacroTargets(effectiveGoal)

	weekly := &NutrientForecasts{}
	monthly := &NutrientForecasts{}
	for _, n := range Nutrients {
		series := history.Get(n)
		weekly.set(n, weeklyForecast(series, targets.Get(n)))
		monthly.set(n, monthlyForecast(series, targets.Get(n)))
	}

	return GoalForecasts{Weekly: weekly, Monthly: monthly}
}

// weeklyForecast fits the most recent 14 days and sums the next 7 predicted days
func weeklyForecast(series []DataPoint, dailyGoal float64) Forecast {
	input := series
	if len(input) > WeeklyRegressionInput {
		input = input[len(input)-WeeklyRegressionInput:]
	}
	weeklyGoal := dailyGoal * WeeklyProjectionDays

	if loggedDays(input) < MinDaysWeekly {
		return Forecast{Status: StatusMoreDataNeeded, Goal: weeklyGoal, MinDays: MinDaysWeekly}
	}

	// Refit on 0-based indexes so the projection continues the input sequence
	reindexed := make([]DataPoint, len(input))
	for i, p := range input {
		reindexed[i] = DataPoint{X: i, Y: p.Y}
	}
	model := FitLinear(reindexed)

	var total float64
	for i := 0; i < WeeklyProjectionDays; i++ {
		total += model.Predict(len(reindexed) + i)
	}
	projected := math.Max(0, total)

	return Forecast{
		Projected: projected,
		Status:    ClassifyForecast(projected, weeklyGoal),
		Goal:      weeklyGoal,
		RSquared:  model.RSquared,
	}
}

// monthlyForecast fits the full window and reads the trend at its last day
func monthlyForecast(series []DataPoint, dailyGoal float64) Forecast {
	if loggedDays(series) < MinDaysMonthly {
		return Forecast{Status: StatusMoreDataNeeded, Goal: dailyGoal, MinDays: MinDaysMonthly}
	}

	model := FitLinear(series)
	projected := math.Max(0, model.Predict(HistoricalWindowDays-1))

	return Forecast{
		Projected: projected,
		Status:    ClassifyForecast(projected, dailyGoal),
		Goal:      dailyGoal,
		RSquared:  model.RSquared,
	}
}

// loggedDays counts points with a positive total
func loggedDays(series []DataPoint) int {
	n := 0
	for _, p := range series {
		if p.Y > 0 {
			n++
		}
	}
	return n
}

// ClassifyForecast compares a projection with its goal.
// Thresholds are exclusive: exactly 15% over is still slightly over.
func ClassifyForecast(projected, goal float64) ForecastStatus {
	if goal <= 0 || math.IsNaN(goal) || math.IsInf(goal, 0) {
		return StatusTrendNotReliable
	}

	diff := (projected - goal) / goal * 100
	switch {
	case diff > SignificantDiffPercent:
		return StatusSignificantlyOver
	case diff > SlightDiffPercent:
		return StatusSlightlyOver
	case diff < -SignificantDiffPercent:
		return StatusSignificantlyUnder
	case diff < -SlightDiffPercent:
		return StatusSlightlyUnder
	default:
		return StatusOnTrack
	}
}
