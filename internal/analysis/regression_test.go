package analysis

import (
	"math"
	"testing"
)

func TestFitLinear(t *testing.T) {
	tests := []struct {
		name          string
		points        []DataPoint
		wantSlope     float64
		wantIntercept float64
		wantR2        float64
	}{
		{
			name:   "no points",
			points: nil,
		},
		{
			name:   "single point",
			points: []DataPoint{{X: 3, Y: 1200}},
		},
		{
			name:          "perfect line",
			points:        []DataPoint{{0, 10}, {1, 12}, {2, 14}, {3, 16}},
			wantSlope:     2,
			wantIntercept: 10,
			wantR2:        1,
		},
		{
			name:          "flat series",
			points:        []DataPoint{{0, 500}, {1, 500}, {2, 500}},
			wantSlope:     0,
			wantIntercept: 500,
			wantR2:        1,
		},
		{
			name:          "identical x falls back to mean",
			points:        []DataPoint{{4, 100}, {4, 300}},
			wantSlope:     0,
			wantIntercept: 200,
			wantR2:        0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitLinear(tt.points)
			if math.Abs(got.Slope-tt.wantSlope) > 1e-9 {
				t.Errorf("Slope = %v, want %v", got.Slope, tt.wantSlope)
			}
			if math.Abs(got.Intercept-tt.wantIntercept) > 1e-9 {
				t.Errorf("Intercept = %v, want %v", got.Intercept, tt.wantIntercept)
			}
			if math.Abs(got.RSquared-tt.wantR2) > 1e-9 {
				t.Errorf("RSquared = %v, want %v", got.RSquared, tt.wantR2)
			}
		})
	}
}

func TestFitLinearDegeneratePredictsZero(t *testing.T) {
	for _, points := range [][]DataPoint{nil, {{X: 0, Y: 2500}}} {
		model := FitLinear(points)
		for _, x := range []int{-5, 0, 7, 29, 1000} {
			if got := model.Predict(x); got != 0 {
				t.Errorf("FitLinear(%v).Predict(%d) = %v, want 0", points, x, got)
			}
		}
	}
}

func TestFitLinearDeterministic(t *testing.T) {
	points := []DataPoint{{0, 1830}, {1, 2210}, {2, 1975}, {3, 0}, {4, 2402}, {5, 1766}}

	first := FitLinear(points)
	second := FitLinear(points)
	if first != second {
		t.Fatalf("fits differ: %+v vs %+v", first, second)
	}
	for x := 0; x < 30; x++ {
		if first.Predict(x) != second.Predict(x) {
			t.Errorf("Predict(%d) not deterministic", x)
		}
	}
}

func TestFitLinearNoisyRSquared(t *testing.T) {
	points := []DataPoint{{0, 1}, {1, 3}, {2, 2}, {3, 5}, {4, 4}}
	got := FitLinear(points)
	if got.RSquared <= 0 || got.RSquared >= 1 {
		t.Errorf("RSquared = %v, want between 0 and 1", got.RSquared)
	}
	if got.Slope <= 0 {
		t.Errorf("Slope = %v, want positive", got.Slope)
	}
}
