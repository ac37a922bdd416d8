package analysis

import (
	"testing"
	"time"
)

func TestLoggingStreak(t *testing.T) {
	now := time.Date(2024, 3, 10, 21, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		daysBack []int
		want     int
	}{
		{"no entries", nil, 0},
		{"today only", []int{0}, 1},
		{"gap before today", []int{0, 2}, 1},
		{"only two days ago", []int{2}, 0},
		{"yesterday grace", []int{1, 2, 3}, 3},
		{"five in a row", []int{0, 1, 2, 3, 4}, 5},
		{"multiple entries per day", []int{0, 0, 1, 1}, 2},
		{"unordered input", []int{3, 0, 2, 1}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := dailyEntries(now, 400, tt.daysBack...)
			if got := LoggingStreak(entries, now); got != tt.want {
				t.Errorf("LoggingStreak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLoggingStreakAcrossMonth(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	entries := dailyEntries(now, 400, 0, 1, 2) // Mar 1, Feb 29, Feb 28
	if got := LoggingStreak(entries, now); got != 3 {
		t.Errorf("LoggingStreak = %d, want 3", got)
	}
}
