package ui

import (
	"time"

	"github.com/yata-app/yata/todo"
)

// FormatDayHeader renders a day bucket heading: "Today • Jan 10",
// "Tomorrow • Jan 11", a weekday name within the coming week, and a full
// date beyond that (with the year when it differs from now's).
func FormatDayHeader(day, now time.Time) string {
	day = day.In(now.Location())

	switch {
	case todo.SameDay(day, now):
		return "Today • " + day.Format("Jan 2")
	case todo.SameDay(day, now.AddDate(0, 0, 1)):
		return "Tomorrow • " + day.Format("Jan 2")
	case todo.IsOverdue(day, now):
		if day.Year() != now.Year() {
			return day.Format("Monday, Jan 2 2006")
		}
		return day.Format("Monday, Jan 2")
	case day.Before(todo.StartOfDay(now).AddDate(0, 0, 7)):
		return day.Format("Monday, Jan 2")
	case day.Year() != now.Year():
		return day.Format("Monday, Jan 2 2006")
	default:
		return day.Format("Monday, Jan 2")
	}
}
