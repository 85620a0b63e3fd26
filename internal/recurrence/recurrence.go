// Package recurrence decides on which calendar dates a recurring template is due.
//
// All rules are anchored to the date of the entry holding the template: nothing
// is due before the anchor, weekly rules keep the anchor's 7-day cycle, and
// monthly/yearly rules only fire in a later month/year on the anchor's day.
// A day-of-month that does not exist in the target month is skipped, never
// clamped to the month end.
package recurrence

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"daily-journal/internal/model"
)

var ErrInvalidPattern = errors.New("recurrence: invalid pattern")

// ParsePattern validates a user supplied pattern.
func ParsePattern(value string) (model.RecurrencePattern, error) {
	p := model.RecurrencePattern(strings.ToLower(strings.TrimSpace(value)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPattern, value)
	}
	return p, nil
}

// IsDue reports whether a template anchored at anchor produces an occurrence on target.
func IsDue(anchor time.Time, pattern model.RecurrencePattern, target time.Time) bool {
	a := model.CivilDate(anchor)
	t := model.CivilDate(target)
	if t.Before(a) {
		return false
	}

	switch pattern {
	case model.PatternDaily:
		return true
	case model.PatternWeekly:
		return model.DaysBetween(a, t)%7 == 0
	case model.PatternMonthly:
		if t.Day() != a.Day() {
			return false
		}
		return t.Year() != a.Year() || t.Month() != a.Month()
	case model.PatternYearly:
		return t.Day() == a.Day() && t.Month() == a.Month() && t.Year() > a.Year()
	default:
		return false
	}
}

// NextDue lists up to limit due dates strictly after from. The scan stops after
// roughly nine years, which covers at least one 29 Feb for yearly anchors.
func NextDue(anchor time.Time, pattern model.RecurrencePattern, from time.Time, limit int) []time.Time {
	if limit <= 0 || !pattern.Valid() {
		return nil
	}
	const horizonDays = 366 * 9

	probe := model.CivilDate(from).AddDate(0, 0, 1)
	if a := model.CivilDate(anchor); probe.Before(a) {
		probe = a
	}

	out := make([]time.Time, 0, limit)
	for i := 0; i < horizonDays && len(out) < limit; i++ {
		if IsDue(anchor, pattern, probe) {
			out = append(out, probe)
		}
		probe = probe.AddDate(0, 0, 1)
	}
	return out
}

// ExpectedCompletions is how many occurrences a template should have produced
// over daysActive days. It is an approximation: months count as 30 days and
// years as 365.
func ExpectedCompletions(pattern model.RecurrencePattern, daysActive int) int {
	if daysActive <= 0 {
		return 0
	}
	switch pattern {
	case model.PatternDaily:
		return daysActive
	case model.PatternWeekly:
		return daysActive / 7
	case model.PatternMonthly:
		return daysActive / 30
	case model.PatternYearly:
		return daysActive / 365
	default:
		return 0
	}
}

// CompletionRate returns min(100, round(completions/expected*100)), or 0 when nothing was expected.
func CompletionRate(completions, expected int) int {
	if expected <= 0 {
		return 0
	}
	rate := int(float64(completions)/float64(expected)*100 + 0.5)
	if rate > 100 {
		return 100
	}
	return rate
}
