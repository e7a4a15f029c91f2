// Package streak computes habit streaks and completion rates from sets of
// completion dates. Everything here is pure: callers pass "today" in, which
// keeps the walk independent of wall-clock time and easy to test.
package streak

import (
	"time"
)

// DateFormat matches the store's calendar-date keys.
const DateFormat = "2006-01-02"

// Calculate returns the length of the consecutive-day run ending today or
// yesterday. The walk starts at today (falling back to yesterday if today is
// not in the set) and requires each successive date to be exactly one
// calendar day earlier; the first gap ends the run. Empty input returns 0.
func Calculate(dates []string, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	set := make(map[string]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}

	day := midnight(today)
	if !set[day.Format(DateFormat)] {
		// A streak is still alive if the last completion was yesterday.
		day = day.AddDate(0, 0, -1)
	}

	count := 0
	for set[day.Format(DateFormat)] {
		count++
		day = day.AddDate(0, 0, -1)
	}
	return count
}

// DatesFor extracts the dates on which habitID was completed.
func DatesFor(completions map[string][]string, habitID string) []string {
	var dates []string
	for date, ids := range completions {
		for _, id := range ids {
			if id == habitID {
				dates = append(dates, date)
				break
			}
		}
	}
	return dates
}

// CompletionPercent returns the fraction of the past N days (ending today)
// on which a completion occurred, in [0, 1].
func CompletionPercent(dates []string, days int, today time.Time) float64 {
	if days <= 0 {
		return 0
	}

	set := make(map[string]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}

	day := midnight(today)
	completed := 0
	for i := 0; i < days; i++ {
		if set[day.Format(DateFormat)] {
			completed++
		}
		day = day.AddDate(0, 0, -1)
	}
	return float64(completed) / float64(days)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
