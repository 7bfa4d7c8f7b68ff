package clock

import "time"

// Clock is the single source of "now" for every component that reasons
// about calendar days. Injecting it keeps day-boundary logic testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

// NewSystem returns a Clock reporting wall-clock time in loc. A nil loc
// falls back to time.Local.
func NewSystem(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return &systemClock{loc: loc}
}

func (c *systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

type fixedClock struct {
	t time.Time
}

// NewFixed returns a Clock pinned to t.
func NewFixed(t time.Time) Clock {
	return &fixedClock{t: t}
}

func (c *fixedClock) Now() time.Time { return c.t }

// DayStart returns midnight of t's calendar day, in t's location.
func DayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayEnd returns midnight of the following day.
func DayEnd(t time.Time) time.Time {
	return DayStart(t).AddDate(0, 0, 1)
}

// SameDay reports whether a and b fall on the same calendar day when both
// are viewed in a's location.
func SameDay(a, b time.Time) bool {
	return DayStart(a).Equal(DayStart(b.In(a.Location())))
}
