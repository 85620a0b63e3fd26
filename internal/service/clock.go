package service

import (
	"time"

	"daily-journal/internal/model"
)

// Clock supplies "now" and the zone in which calendar days are counted.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

// SystemClock reads the wall clock in loc (time.Local when nil).
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return Clock{Now: time.Now, Location: loc}
}

// FixedClock always reports t; used by tests and one-off CLI runs.
func FixedClock(t time.Time) Clock {
	return Clock{Now: func() time.Time { return t }, Location: t.Location()}
}

func (c Clock) now() time.Time {
	if c.Now == nil {
		return time.Now().In(c.location())
	}
	return c.Now().In(c.location())
}

func (c Clock) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// Today is the current calendar date in the clock's zone.
func (c Clock) Today() time.Time {
	return model.CivilDate(c.now())
}

// Day converts an instant to its calendar date in the clock's zone.
func (c Clock) Day(t time.Time) time.Time {
	return model.CivilDate(t.In(c.location()))
}
