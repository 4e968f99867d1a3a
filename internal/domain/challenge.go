package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Challenge length bounds.
const (
	MinTotalDays     = 10
	MaxTotalDays     = 365
	DefaultTotalDays = 100
)

// Challenge holds the bounded day counters of a tracking period.
// All mutators clamp synchronously; there is no pending state.
type Challenge struct {
	TotalDays  int
	CurrentDay int
	// StartDate is kept verbatim as entered (normally YYYY-MM-DD).
	StartDate string
}

// NewChallenge returns a challenge of DefaultTotalDays positioned on day 1.
func NewChallenge() Challenge {
	return Challenge{
		TotalDays:  DefaultTotalDays,
		CurrentDay: 1,
	}
}

// ParseTotalDays converts user input into a day count. Empty or non-numeric
// input yields DefaultTotalDays; numbers are clamped into [MinTotalDays,
// MaxTotalDays] before truncation.
func ParseTotalDays(raw string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return DefaultTotalDays
	}
	return int(min(max(f, MinTotalDays), MaxTotalDays))
}

// SetTotalDays clamps n into [MinTotalDays, MaxTotalDays] and re-clamps the
// current day into the new range.
func (c *Challenge) SetTotalDays(n int) {
	c.TotalDays = clamp(n, MinTotalDays, MaxTotalDays)
	c.CurrentDay = clamp(c.CurrentDay, 1, c.TotalDays)
}

// SetCurrentDay clamps d into [1, TotalDays].
func (c *Challenge) SetCurrentDay(d int) {
	c.CurrentDay = clamp(d, 1, c.TotalDays)
}

// NextDay advances by one day. It is a no-op on the last day and reports
// whether the day changed.
func (c *Challenge) NextDay() bool {
	if c.CurrentDay >= c.TotalDays {
		return false
	}
	c.CurrentDay++
	return true
}

// PreviousDay moves back one day. It is a no-op on day 1.
func (c *Challenge) PreviousDay() bool {
	if c.CurrentDay <= 1 {
		return false
	}
	c.CurrentDay--
	return true
}

// SetStartDate stores date verbatim. Completion history and assigned days
// are not re-validated.
func (c *Challenge) SetStartDate(date string) {
	c.StartDate = date
}

// Normalize re-applies both clamps, e.g. after loading persisted values.
func (c *Challenge) Normalize() {
	c.SetTotalDays(c.TotalDays)
}

// DateForDay maps day onto the calendar using the challenge start date.
func (c *Challenge) DateForDay(day int) (time.Time, bool) {
	return DateForDay(day, c.StartDate)
}

// TodayIndex returns the challenge day that corresponds to now, if any.
func (c *Challenge) TodayIndex(now time.Time) (int, bool) {
	return DayForDate(now, c.StartDate, c.TotalDays)
}

// DaysRemaining returns TotalDays minus completed days, floored at zero.
func (c *Challenge) DaysRemaining(completedDays int) int {
	return max(c.TotalDays-completedDays, 0)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
