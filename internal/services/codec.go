package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xvierd/daytrack/internal/domain"
	"github.com/xvierd/daytrack/internal/ports"
)

// taskRecord is the persisted shape of a task under the "tasks" key.
type taskRecord struct {
	ID            string    `json:"id,omitempty"`
	Name          string    `json:"name"`
	Priority      string    `json:"priority,omitempty"`
	ReminderTime  string    `json:"reminderTime,omitempty"`
	AssignedDay   *int      `json:"assignedDay,omitempty"`
	CompletedDays []int     `json:"completedDays"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

func toRecord(t *domain.Task) taskRecord {
	days := t.CompletedDays
	if days == nil {
		days = []int{}
	}
	return taskRecord{
		ID:            t.ID,
		Name:          t.Name,
		Priority:      string(t.Priority),
		ReminderTime:  t.ReminderTime,
		AssignedDay:   t.AssignedDay,
		CompletedDays: days,
		CreatedAt:     t.CreatedAt,
	}
}

func (r taskRecord) toTask() *domain.Task {
	return &domain.Task{
		ID:            r.ID,
		Name:          r.Name,
		Priority:      domain.Priority(r.Priority),
		ReminderTime:  r.ReminderTime,
		AssignedDay:   r.AssignedDay,
		CompletedDays: r.CompletedDays,
		CreatedAt:     r.CreatedAt,
	}
}

// Defaults seed keys that have never been written.
type Defaults struct {
	TotalDays int
	StartDate string
	DateLabel domain.DateLabel
	DarkMode  bool
}

// DefaultDefaults returns the built-in seed values.
func DefaultDefaults() Defaults {
	return Defaults{
		TotalDays: domain.DefaultTotalDays,
		DateLabel: domain.DateLabelShort,
	}
}

// decodeState rebuilds a state from raw key values. Each key is decoded on its
// own; a malformed value is logged and replaced by its default so one broken
// key never discards the rest.
func decodeState(raw map[string][]byte, defaults Defaults, logger *slog.Logger) *domain.State {
	state := domain.NewState()
	state.Settings.DateLabel = defaults.DateLabel
	state.Settings.DarkMode = defaults.DarkMode
	state.Challenge.SetTotalDays(defaults.TotalDays)
	state.Challenge.SetStartDate(defaults.StartDate)

	warn := func(key string, err error) {
		logger.Warn("malformed persisted value, using default", "key", key, "error", err)
	}

	if v, ok := raw[ports.KeyTasks]; ok {
		var records []taskRecord
		if err := json.Unmarshal(v, &records); err != nil {
			warn(ports.KeyTasks, err)
		} else {
			state.Tasks = decodeTasks(records, logger)
		}
	}

	// Bounds are restored before the current day so the day clamps against them.
	if v, ok := raw[ports.KeyTotalDays]; ok {
		n, err := decodeTotalDays(v)
		if err != nil {
			warn(ports.KeyTotalDays, err)
		}
		state.Challenge.SetTotalDays(n)
	}

	if v, ok := raw[ports.KeyDay]; ok {
		var day int
		if err := json.Unmarshal(v, &day); err != nil {
			warn(ports.KeyDay, err)
			day = 1
		}
		state.Challenge.SetCurrentDay(day)
	}

	if v, ok := raw[ports.KeyStartDate]; ok {
		var date string
		if err := json.Unmarshal(v, &date); err != nil {
			warn(ports.KeyStartDate, err)
		} else {
			state.Challenge.SetStartDate(date)
		}
	}

	if v, ok := raw[ports.KeyDateLabelSetting]; ok {
		var label string
		err := json.Unmarshal(v, &label)
		if err == nil {
			state.Settings.DateLabel, err = domain.ParseDateLabel(label)
		}
		if err != nil {
			warn(ports.KeyDateLabelSetting, err)
			state.Settings.DateLabel = defaults.DateLabel
		}
	}

	if v, ok := raw[ports.KeyDarkMode]; ok {
		var dark bool
		if err := json.Unmarshal(v, &dark); err != nil {
			warn(ports.KeyDarkMode, err)
		} else {
			state.Settings.DarkMode = dark
		}
	}

	return state
}

// decodeTasks repairs loaded records. A record without an id, or whose id
// repeats an earlier one, is given an id derived from its position so every
// load of the same records yields the same ids.
func decodeTasks(records []taskRecord, logger *slog.Logger) []*domain.Task {
	reserved := make(map[string]bool, len(records))
	for _, r := range records {
		if r.ID != "" {
			reserved[r.ID] = true
		}
	}

	tasks := make([]*domain.Task, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, r := range records {
		task := r.toTask()
		if task.ID == "" || seen[task.ID] {
			if task.ID != "" {
				logger.Warn("duplicate task id, assigning a new one", "task_id", task.ID)
			}
			task.ID = positionalID(i, reserved, seen)
		}
		seen[task.ID] = true
		task.Normalize()
		if task.Name == "" {
			logger.Warn("dropping task with empty name", "task_id", task.ID)
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks
}

func positionalID(index int, reserved, seen map[string]bool) string {
	base := fmt.Sprintf("legacy-%d", index)
	id := base
	for n := 2; reserved[id] || seen[id]; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}

// decodeTotalDays accepts a JSON number or a numeric string. Anything else
// yields the default length.
func decodeTotalDays(v []byte) (int, error) {
	var n float64
	if err := json.Unmarshal(v, &n); err == nil {
		return domain.ParseTotalDays(fmt.Sprint(n)), nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return domain.DefaultTotalDays, err
	}
	if strings.TrimSpace(s) == "" {
		return domain.DefaultTotalDays, errors.New("empty total days")
	}
	return domain.ParseTotalDays(s), nil
}

// encodeKeys serializes the requested keys of state.
func encodeKeys(state *domain.State, keys []string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(keys))
	for _, key := range keys {
		var v any
		switch key {
		case ports.KeyTasks:
			records := make([]taskRecord, 0, len(state.Tasks))
			for _, t := range state.Tasks {
				records = append(records, toRecord(t))
			}
			v = records
		case ports.KeyDay:
			v = state.Challenge.CurrentDay
		case ports.KeyTotalDays:
			v = state.Challenge.TotalDays
		case ports.KeyStartDate:
			v = state.Challenge.StartDate
		case ports.KeyDateLabelSetting:
			v = string(state.Settings.DateLabel)
		case ports.KeyDarkMode:
			v = state.Settings.DarkMode
		default:
			return nil, fmt.Errorf("unknown state key %q", key)
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", key, err)
		}
		out[key] = data
	}
	return out, nil
}
