package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/yata-app/yata/todo"
)

const dayLayout = "2006-01-02"

// parseDay resolves a day argument to the start of that calendar day in
// local time. Accepts "today", "tomorrow", "yesterday", a lowercase
// weekday name (the next occurrence, up to a week out), or a YYYY-MM-DD
// date.
func parseDay(value string, now time.Time) (time.Time, error) {
	today := todo.StartOfDay(now)

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if weekday, ok := parseWeekday(value); ok {
		day := today.AddDate(0, 0, 1)
		for day.Weekday() != weekday {
			day = day.AddDate(0, 0, 1)
		}
		return day, nil
	}

	day, err := time.ParseInLocation(dayLayout, value, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: want today, tomorrow, yesterday, a weekday, or YYYY-MM-DD", value)
	}
	return day, nil
}

func parseWeekday(value string) (time.Weekday, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "sunday", "sun":
		return time.Sunday, true
	case "monday", "mon":
		return time.Monday, true
	case "tuesday", "tue":
		return time.Tuesday, true
	case "wednesday", "wed":
		return time.Wednesday, true
	case "thursday", "thu":
		return time.Thursday, true
	case "friday", "fri":
		return time.Friday, true
	case "saturday", "sat":
		return time.Saturday, true
	}
	return time.Sunday, false
}
