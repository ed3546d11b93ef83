package leave

import "time"

// DateOnly strips the time-of-day component. All counter and request dates
// are compared and stored at day precision.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Overlaps reports whether two inclusive day ranges share at least one
// calendar day. Inputs must already be date-only.
func Overlaps(fromA, toA, fromB, toB time.Time) bool {
	return !fromA.After(toB) && !toA.Before(fromB)
}

// InCycle reports whether the given day falls inside the counter's current
// entitlement window, boundaries inclusive.
func (c Counter) InCycle(day time.Time) bool {
	return !c.CycleStartDate.After(day) && !c.NextResetDate.Before(day)
}
