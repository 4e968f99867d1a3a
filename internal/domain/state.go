package domain

import (
	"fmt"
	"slices"
	"time"
)

// DateLabel controls how calendar dates are rendered. It is passed through
// storage unchanged.
type DateLabel string

const (
	DateLabelShort        DateLabel = "short"
	DateLabelLong         DateLabel = "long"
	DateLabelAlwaysMobile DateLabel = "always-mobile"
)

// ParseDateLabel checks if a string is a valid date label setting.
func ParseDateLabel(s string) (DateLabel, error) {
	switch l := DateLabel(s); l {
	case DateLabelShort, DateLabelLong, DateLabelAlwaysMobile:
		return l, nil
	}
	return "", fmt.Errorf("%w %q: must be one of short, long, always-mobile", ErrInvalidDateLabel, s)
}

// Settings are presentation-only preferences persisted next to the challenge.
type Settings struct {
	DateLabel DateLabel
	DarkMode  bool
}

// State is the whole tracked state: the task list in insertion order, the
// challenge bounds and the presentation settings. It is owned by the caller
// and mutated only through its methods.
type State struct {
	Tasks     []*Task
	Challenge Challenge
	Settings  Settings
}

// NewState returns an empty state with default bounds.
func NewState() *State {
	return &State{
		Tasks:     []*Task{},
		Challenge: NewChallenge(),
		Settings:  Settings{DateLabel: DateLabelShort},
	}
}

// AddTask appends a new task assigned relative to the current day.
// Empty names are rejected with ErrEmptyTaskName and leave the state untouched.
func (s *State) AddTask(name string, priority Priority, reminderTime string) (*Task, error) {
	task, err := NewTask(name, priority, reminderTime, s.Challenge.CurrentDay)
	if err != nil {
		return nil, err
	}
	s.Tasks = append(s.Tasks, task)
	return task, nil
}

// FindTask returns the task with id, or nil.
func (s *State) FindTask(id string) *Task {
	if i := s.taskIndex(id); i >= 0 {
		return s.Tasks[i]
	}
	return nil
}

// ToggleCompletion flips day in the task's completion set. Unknown ids and
// days outside [1, TotalDays] are ignored; the first result reports whether a
// task was found, the second the resulting membership.
func (s *State) ToggleCompletion(id string, day int) (found, completed bool) {
	task := s.FindTask(id)
	if task == nil {
		return false, false
	}
	if day < 1 || day > s.Challenge.TotalDays {
		return true, task.IsCompletedOn(day)
	}
	return true, task.ToggleDay(day)
}

// DeleteTask removes the task with id and reports whether it existed.
func (s *State) DeleteTask(id string) bool {
	i := s.taskIndex(id)
	if i < 0 {
		return false
	}
	s.Tasks = slices.Delete(s.Tasks, i, i+1)
	return true
}

// TasksForDay returns the tasks that count on day.
func (s *State) TasksForDay(day int) []*Task {
	return ApplicableTasks(s.Tasks, day)
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	c := &State{
		Tasks:     make([]*Task, 0, len(s.Tasks)),
		Challenge: s.Challenge,
		Settings:  s.Settings,
	}
	for _, t := range s.Tasks {
		c.Tasks = append(c.Tasks, t.Clone())
	}
	return c
}

func (s *State) taskIndex(id string) int {
	return slices.IndexFunc(s.Tasks, func(t *Task) bool { return t.ID == id })
}

// Summary aggregates the derived metrics of a state at a point in time.
type Summary struct {
	CurrentDay     int
	TotalDays      int
	StartDate      string
	CurrentDate    *time.Time
	TodayIndex     *int
	DayPercent     int
	DayStatus      DayStatus
	DayTasksDone   int
	DayTasksTotal  int
	DaysComplete   int
	DaysRemaining  int
	TasksStarted   int
	OverallPercent float64
	LegacyPercent  float64
	Tier           Tier
	TaskCount      int
}

// Summarize computes the summary for the current day. now is used for the
// "today" marker.
func (s *State) Summarize(now time.Time) Summary {
	c := s.Challenge
	dayTasks := s.TasksForDay(c.CurrentDay)
	daysComplete := CompletedDayCount(s.Tasks, c.TotalDays)
	tasksStarted := TasksStartedCount(s.Tasks)
	overall := OverallProgressPercent(daysComplete, c.TotalDays)

	sum := Summary{
		CurrentDay:     c.CurrentDay,
		TotalDays:      c.TotalDays,
		StartDate:      c.StartDate,
		DayPercent:     DayCompletionPercent(c.CurrentDay, dayTasks),
		DayStatus:      StatusForDay(c.CurrentDay, dayTasks),
		DayTasksDone:   CompletedTaskCount(c.CurrentDay, dayTasks),
		DayTasksTotal:  len(dayTasks),
		DaysComplete:   daysComplete,
		DaysRemaining:  c.DaysRemaining(daysComplete),
		TasksStarted:   tasksStarted,
		OverallPercent: overall,
		LegacyPercent:  OverallProgressPercent(tasksStarted, c.TotalDays),
		Tier:           MotivationalTier(overall),
		TaskCount:      len(s.Tasks),
	}
	if date, ok := c.DateForDay(c.CurrentDay); ok {
		sum.CurrentDate = &date
	}
	if today, ok := c.TodayIndex(now); ok {
		sum.TodayIndex = &today
	}
	return sum
}
