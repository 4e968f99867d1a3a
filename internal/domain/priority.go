package domain

import "fmt"

// Priority groups tasks for presentation.
type Priority string

const (
	PriorityMostImportant Priority = "most_important"
	PriorityDailyRoutine  Priority = "daily_routine"
	PriorityForLater      Priority = "for_later"
)

// ValidPriorities lists all supported priority values in display order.
var ValidPriorities = []Priority{
	PriorityMostImportant,
	PriorityDailyRoutine,
	PriorityForLater,
}

// ParsePriority checks if a string is a valid priority. An empty string
// yields the default, DailyRoutine.
func ParsePriority(s string) (Priority, error) {
	if s == "" {
		return PriorityDailyRoutine, nil
	}
	p := Priority(s)
	for _, valid := range ValidPriorities {
		if p == valid {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w %q: must be one of most_important, daily_routine, for_later", ErrInvalidPriority, s)
}

// Label returns a human-readable label for the priority.
func (p Priority) Label() string {
	switch p {
	case PriorityMostImportant:
		return "Most Important"
	case PriorityDailyRoutine:
		return "Daily Routine"
	case PriorityForLater:
		return "For Later"
	default:
		return "Unknown"
	}
}
