package analysis

import (
	"time"

	"nutrilog/internal/store"
)

// LoggingStreak counts consecutive local calendar days with at least one entry,
// ending today. If nothing is logged today the count may end yesterday instead
// (one grace day); with neither day logged the streak is 0.
func LoggingStreak(entries []store.LogEntry, now time.Time) int {
	if len(entries) == 0 {
		return 0
	}

	loc := now.Location()
	days := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		days[DayKey(e.LoggedAt(loc))] = struct{}{}
	}

	offset := 0
	if _, ok := days[DayKey(daysAgo(now, 0))]; !ok {
		offset = 1
		if _, ok := days[DayKey(daysAgo(now, 1))]; !ok {
			return 0
		}
	}

	streak := 0
	for {
		if _, ok := days[DayKey(daysAgo(now, offset+streak))]; !ok {
			return streak
		}
		streak++
	}
}
