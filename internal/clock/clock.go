package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock abstracts time.Now so date-sensitive rules (the "executed"
// predicate on inspections) can be tested with a fixed clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// NewSystemClock returns a Clock backed by the wall clock.
func NewSystemClock() Clock {
	return systemClock{}
}

// SameCalendarDayOrBefore reports whether t falls on or before the
// calendar date of ref, ignoring time of day.
func SameCalendarDayOrBefore(t, ref time.Time) bool {
	return !Truncate(t).After(Truncate(ref))
}

// Truncate normalizes t to midnight UTC of its calendar date.
func Truncate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var Module = fx.Module("clock",
	fx.Provide(NewSystemClock),
)
