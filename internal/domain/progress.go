package domain

import "math"

// CompletedTaskCount returns how many of tasks were marked done on day.
func CompletedTaskCount(day int, tasks []*Task) int {
	n := 0
	for _, t := range tasks {
		if t.IsCompletedOn(day) {
			n++
		}
	}
	return n
}

// DayCompletionPercent returns the share of tasks done on day, rounded to the
// nearest integer. An empty task list yields 0. The result is 100 only when
// every task is done, so rounding never disagrees with IsDayFullyComplete.
func DayCompletionPercent(day int, tasks []*Task) int {
	if len(tasks) == 0 {
		return 0
	}
	done := CompletedTaskCount(day, tasks)
	pct := int(math.Round(100 * float64(done) / float64(len(tasks))))
	if done == len(tasks) {
		return 100
	}
	return min(pct, 99)
}

// IsDayFullyComplete reports whether every task was done on day. An empty
// task list is never complete.
func IsDayFullyComplete(day int, tasks []*Task) bool {
	if len(tasks) == 0 {
		return false
	}
	for _, t := range tasks {
		if !t.IsCompletedOn(day) {
			return false
		}
	}
	return true
}

// OverallProgressPercent returns 100 * completedDayCount / totalDays.
func OverallProgressPercent(completedDayCount, totalDays int) float64 {
	if totalDays <= 0 {
		return 0
	}
	return 100 * float64(completedDayCount) / float64(totalDays)
}

// ApplicableTasks filters tasks down to those that count on day.
func ApplicableTasks(tasks []*Task, day int) []*Task {
	out := make([]*Task, 0, len(tasks))
	for _, t := range tasks {
		if t.AppliesTo(day) {
			out = append(out, t)
		}
	}
	return out
}

// CompletedDayCount counts days in [1, totalDays] on which every applicable
// task was done. Entries beyond totalDays are ignored.
func CompletedDayCount(tasks []*Task, totalDays int) int {
	n := 0
	for day := 1; day <= totalDays; day++ {
		if IsDayFullyComplete(day, ApplicableTasks(tasks, day)) {
			n++
		}
	}
	return n
}

// TasksStartedCount counts tasks with any completion history. This is the
// figure older versions reported as "Days Complete".
func TasksStartedCount(tasks []*Task) int {
	n := 0
	for _, t := range tasks {
		if t.HasHistory() {
			n++
		}
	}
	return n
}

// DailyProgress returns the completion percent of each day 1..totalDays;
// index 0 holds day 1.
func DailyProgress(tasks []*Task, totalDays int) []int {
	series := make([]int, 0, max(totalDays, 0))
	for day := 1; day <= totalDays; day++ {
		series = append(series, DayCompletionPercent(day, ApplicableTasks(tasks, day)))
	}
	return series
}

// DayStatus summarizes a single day.
type DayStatus string

const (
	DayNotStarted DayStatus = "not_started"
	DayInProgress DayStatus = "in_progress"
	DayComplete   DayStatus = "complete"
)

// StatusForDay classifies day over tasks.
func StatusForDay(day int, tasks []*Task) DayStatus {
	switch {
	case IsDayFullyComplete(day, tasks):
		return DayComplete
	case CompletedTaskCount(day, tasks) > 0:
		return DayInProgress
	default:
		return DayNotStarted
	}
}

// Label returns a human-readable label for the status.
func (s DayStatus) Label() string {
	switch s {
	case DayComplete:
		return "Complete"
	case DayInProgress:
		return "In Progress"
	default:
		return "Not Started"
	}
}

// Tier is a motivational band of overall progress.
type Tier string

const (
	TierStart    Tier = "start"
	TierEarly    Tier = "early"
	TierQuarter  Tier = "quarter"
	TierHalf     Tier = "half"
	TierAlmost   Tier = "almost"
	TierComplete Tier = "complete"
)

// MotivationalTier maps an overall percent onto its band. Bands are half-open
// except the final one, which starts at exactly 100.
func MotivationalTier(percent float64) Tier {
	switch {
	case math.IsNaN(percent) || percent <= 0:
		return TierStart
	case percent < 25:
		return TierEarly
	case percent < 50:
		return TierQuarter
	case percent < 75:
		return TierHalf
	case percent < 100:
		return TierAlmost
	default:
		return TierComplete
	}
}

// Message returns the text shown for the tier.
func (t Tier) Message() string {
	switch t {
	case TierEarly:
		return "Great start! Building habits takes time, keep going!"
	case TierQuarter:
		return "You're building momentum! A quarter of the way there."
	case TierHalf:
		return "Halfway there! Your consistency is paying off."
	case TierAlmost:
		return "Almost there! The finish line is in sight."
	case TierComplete:
		return "Congratulations! You've completed your challenge!"
	default:
		return "Start your journey! Every great achievement begins with a single step."
	}
}
