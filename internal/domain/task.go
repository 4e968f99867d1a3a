// Package domain contains the core entities and computations for daytrack.
// These types model a fixed-length, date-anchored challenge and the tasks
// tracked across it, and are independent of any storage or UI framework.
package domain

import (
	"errors"
	"slices"
	"strings"
	"time"
)

// Common domain errors.
var (
	ErrEmptyTaskName    = errors.New("task name cannot be empty")
	ErrTaskNotFound     = errors.New("task not found")
	ErrInvalidPriority  = errors.New("invalid priority")
	ErrInvalidStartDate = errors.New("invalid start date")
	ErrInvalidDateLabel = errors.New("invalid date label setting")
)

// Task is a recurring item tracked on every day of the challenge.
type Task struct {
	ID           string
	Name         string
	Priority     Priority
	ReminderTime string
	// AssignedDay is set only for MostImportant tasks and fixed at creation.
	AssignedDay   *int
	CompletedDays []int
	CreatedAt     time.Time
}

// NewTask creates a task. The name is trimmed and must not be empty.
// currentDay becomes the task's AssignedDay when priority is MostImportant.
func NewTask(name string, priority Priority, reminderTime string, currentDay int) (*Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyTaskName
	}
	if priority == "" {
		priority = PriorityDailyRoutine
	}

	task := &Task{
		ID:            generateID(),
		Name:          name,
		Priority:      priority,
		ReminderTime:  strings.TrimSpace(reminderTime),
		CompletedDays: []int{},
		CreatedAt:     time.Now(),
	}
	if priority == PriorityMostImportant {
		day := currentDay
		task.AssignedDay = &day
	}
	return task, nil
}

// IsCompletedOn reports whether the task was marked done on day.
func (t *Task) IsCompletedOn(day int) bool {
	return slices.Contains(t.CompletedDays, day)
}

// ToggleDay flips membership of day in CompletedDays and returns the new
// membership.
func (t *Task) ToggleDay(day int) bool {
	if i := slices.Index(t.CompletedDays, day); i >= 0 {
		t.CompletedDays = slices.Delete(t.CompletedDays, i, i+1)
		return false
	}
	t.CompletedDays = append(t.CompletedDays, day)
	return true
}

// HasHistory reports whether the task was ever marked done.
func (t *Task) HasHistory() bool {
	return len(t.CompletedDays) > 0
}

// AppliesTo reports whether the task counts on the given day. MostImportant
// tasks only count on the day they were created for.
func (t *Task) AppliesTo(day int) bool {
	if t.Priority != PriorityMostImportant || t.AssignedDay == nil {
		return true
	}
	return *t.AssignedDay == day
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	c.CompletedDays = slices.Clone(t.CompletedDays)
	if c.CompletedDays == nil {
		c.CompletedDays = []int{}
	}
	if t.AssignedDay != nil {
		day := *t.AssignedDay
		c.AssignedDay = &day
	}
	return &c
}

// Normalize repairs a task read from storage: a missing ID is generated,
// duplicate or non-positive completion entries are dropped and an unknown
// priority becomes DailyRoutine.
func (t *Task) Normalize() {
	if t.ID == "" {
		t.ID = generateID()
	}
	t.Name = strings.TrimSpace(t.Name)
	if _, err := ParsePriority(string(t.Priority)); err != nil || t.Priority == "" {
		t.Priority = PriorityDailyRoutine
	}
	if t.Priority != PriorityMostImportant {
		t.AssignedDay = nil
	}
	days := make([]int, 0, len(t.CompletedDays))
	for _, d := range t.CompletedDays {
		if d < 1 || slices.Contains(days, d) {
			continue
		}
		days = append(days, d)
	}
	t.CompletedDays = days
}
