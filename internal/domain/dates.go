package domain

import (
	"strings"
	"time"
)

// DateLayout is the persisted form of the challenge start date.
const DateLayout = "2006-01-02"

// ParseStartDate parses a YYYY-MM-DD string as local midnight, so the local
// offset can never shift the calendar day.
func ParseStartDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders t in the persisted start date form.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateForDay returns startDate + (day - 1) calendar days. The second result is
// false when startDate is absent or unparseable.
func DateForDay(day int, startDate string) (time.Time, bool) {
	start, ok := ParseStartDate(startDate)
	if !ok {
		return time.Time{}, false
	}
	return start.AddDate(0, 0, day-1), true
}

// DayForDate maps a calendar date back to a day index. It reports false when
// startDate is unusable or date falls outside [startDate, startDate+totalDays-1].
func DayForDate(date time.Time, startDate string, totalDays int) (int, bool) {
	start, ok := ParseStartDate(startDate)
	if !ok {
		return 0, false
	}
	day := calendarDaysBetween(start, date) + 1
	if day < 1 || day > totalDays {
		return 0, false
	}
	return day, true
}

// calendarDaysBetween counts whole calendar days from a to b using each
// value's own wall-clock date, so DST transitions do not skew the result.
func calendarDaysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
