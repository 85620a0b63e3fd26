// Package streak counts runs of consecutive calendar days.
package streak

import (
	"sort"
	"time"

	"daily-journal/internal/model"
)

// Result holds the run lengths found in a date history.
type Result struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// Compute walks dates from newest to oldest. Current is the length of the
// newest run when that run ends on reference or the day before it; a missing
// "today" does not break a streak until the day is over.
func Compute(dates []time.Time, reference time.Time) Result {
	days := normalize(dates)
	if len(days) == 0 {
		return Result{}
	}

	ref := model.CivilDate(reference)
	running := 1
	longest := 1
	first := 0
	firstOpen := true

	for i := 1; i < len(days); i++ {
		if model.DaysBetween(days[i], days[i-1]) == 1 {
			running++
		} else {
			if firstOpen {
				first = running
				firstOpen = false
			}
			running = 1
		}
		if running > longest {
			longest = running
		}
	}
	if firstOpen {
		first = running
	}

	current := 0
	if gap := model.DaysBetween(days[0], ref); gap == 0 || gap == 1 {
		current = first
	}
	return Result{Current: current, Longest: longest}
}

// ComputeStrings is Compute over YYYY-MM-DD values.
func ComputeStrings(dates []string, reference time.Time) (Result, error) {
	parsed := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		t, err := model.ParseDate(d)
		if err != nil {
			return Result{}, err
		}
		parsed = append(parsed, t)
	}
	return Compute(parsed, reference), nil
}

// normalize reduces dates to distinct calendar days, newest first.
func normalize(dates []time.Time) []time.Time {
	if len(dates) == 0 {
		return nil
	}
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		days = append(days, model.CivilDate(d))
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	out := days[:1]
	for _, d := range days[1:] {
		if !d.Equal(out[len(out)-1]) {
			out = append(out, d)
		}
	}
	return out
}
