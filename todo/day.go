package todo

import "time"

// Day helpers used for bucketing todos. A todo belongs to the calendar day
// of its ScheduledFor instant, in the location of that instant.

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b.In(a.Location())))
}

// IsOverdue reports whether t falls on a day before now's day.
func IsOverdue(t, now time.Time) bool {
	return t.In(now.Location()).Before(StartOfDay(now))
}

// DaySequence returns n consecutive day starts beginning at start's day.
func DaySequence(start time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	days := make([]time.Time, 0, n)
	day := StartOfDay(start)
	for i := 0; i < n; i++ {
		days = append(days, day.AddDate(0, 0, i))
	}
	return days
}
