package service

import (
	"testing"
	"time"

	"nutrilog/internal/analysis"
)

func TestForecastMessage(t *testing.T) {
	tests := []struct {
		period   analysis.Period
		nutrient analysis.Nutrient
		forecast analysis.Forecast
		expected string
	}{
		{
			analysis.Weekly, analysis.Calories,
			analysis.Forecast{Projected: 15120, Goal: 14000, Status: analysis.StatusSlightlyOver},
			"Weekly calories forecast: slightly over goal (+8%)",
		},
		{
			analysis.Monthly, analysis.Protein,
			analysis.Forecast{Projected: 100, Goal: 150, Status: analysis.StatusSignificantlyUnder},
			"Monthly protein forecast: well under goal (-33%)",
		},
		{
			analysis.Weekly, analysis.Fat,
			analysis.Forecast{Projected: 66, Goal: 66, Status: analysis.StatusOnTrack},
			"Weekly fat forecast: on track (+0%)",
		},
		{
			analysis.Weekly, analysis.Carbs,
			analysis.Forecast{Goal: 1400, Status: analysis.StatusMoreDataNeeded, MinDays: 5},
			"Weekly carbs forecast: log at least 5 days to see a trend",
		},
		{
			analysis.Monthly, analysis.Calories,
			analysis.Forecast{Status: analysis.StatusTrendNotReliable},
			"Monthly calories forecast: trend not reliable yet",
		},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := ForecastMessage(tt.period, tt.nutrient, tt.forecast)
			if result != tt.expected {
				t.Errorf("ForecastMessage() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestForecastsScreenData(t *testing.T) {
	clock := &testClock{now: time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)}
	tr := newTestTracker(t, openTestDB(t), clock, nil)

	if data := tr.Forecasts(); data.HasForecasts {
		t.Fatal("expected no forecasts without entries")
	}

	clock.advanceDays(-9)
	for i := 0; i < 10; i++ {
		tr.LogFood(fact("Chili", 2000))
		clock.advanceDays(1)
	}
	clock.advanceDays(-1)

	data := tr.Forecasts()
	if !data.HasForecasts || len(data.Weekly) != 4 || len(data.Monthly) != 4 {
		t.Fatalf("forecast data = %+v", data)
	}
	weekly := data.Weekly[0]
	if weekly.Nutrient != analysis.Calories || weekly.Unit != "kcal" {
		t.Errorf("first weekly = %+v", weekly)
	}
	if data.Weekly[1].Unit != "g" {
		t.Errorf("protein unit = %q, want g", data.Weekly[1].Unit)
	}
	if weekly.Forecast.Status == analysis.StatusMoreDataNeeded {
		t.Errorf("weekly still needs data after 10 logged days")
	}
	if data.Monthly[0].Forecast.Status == analysis.StatusMoreDataNeeded {
		t.Errorf("monthly still needs data after 10 logged days")
	}
}
