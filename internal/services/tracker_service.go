// Package services implements the application layer (use cases)
// following hexagonal architecture principles.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/xvierd/daytrack/internal/domain"
	"github.com/xvierd/daytrack/internal/ports"
)

// TrackerService handles challenge and task use cases. Every mutation reloads
// the latest persisted snapshot, applies the change and writes the touched
// keys back before returning.
type TrackerService struct {
	mu       sync.Mutex
	store    ports.KVStore
	notifier ports.Notifier
	logger   *slog.Logger
	defaults Defaults
	now      func() time.Time
}

var _ ports.MCPStateProvider = (*TrackerService)(nil)

// NewTrackerService creates a new tracker service.
func NewTrackerService(store ports.KVStore) *TrackerService {
	return &TrackerService{
		store:    store,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		defaults: DefaultDefaults(),
		now:      time.Now,
	}
}

// SetNotifier sets the notifier used for milestone announcements.
func (s *TrackerService) SetNotifier(n ports.Notifier) {
	s.notifier = n
}

// SetLogger sets the structured logger.
func (s *TrackerService) SetLogger(l *slog.Logger) {
	if l != nil {
		s.logger = l
	}
}

// SetDefaults sets the values used for keys that were never persisted.
func (s *TrackerService) SetDefaults(d Defaults) {
	s.defaults = d
}

// SetClock overrides the clock used for the today marker.
func (s *TrackerService) SetClock(now func() time.Time) {
	s.now = now
}

// Now returns the service clock's current time.
func (s *TrackerService) Now() time.Time {
	return s.now()
}

func (s *TrackerService) load(ctx context.Context) (*domain.State, error) {
	raw, err := s.store.GetMany(ctx, ports.StateKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return decodeState(raw, s.defaults, s.logger), nil
}

// mutate runs fn against the latest snapshot and persists keys when fn
// reports a change.
func (s *TrackerService) mutate(ctx context.Context, keys []string, fn func(*domain.State) bool) (*domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if !fn(state) {
		return state, nil
	}
	entries, err := encodeKeys(state, keys)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetMany(ctx, entries); err != nil {
		return nil, fmt.Errorf("failed to save state: %w", err)
	}
	return state, nil
}

// GetState returns a snapshot of the current state.
func (s *TrackerService) GetState(ctx context.Context) (*domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Summary returns the derived metrics for the current day.
func (s *TrackerService) Summary(ctx context.Context) (domain.Summary, error) {
	state, err := s.GetState(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	return state.Summarize(s.now()), nil
}

// AddTask creates a task on the current day. A blank name returns
// domain.ErrEmptyTaskName and leaves the state untouched.
func (s *TrackerService) AddTask(ctx context.Context, name string, priority domain.Priority, reminderTime string) (*domain.Task, error) {
	var (
		task   *domain.Task
		addErr error
	)
	_, err := s.mutate(ctx, []string{ports.KeyTasks}, func(st *domain.State) bool {
		task, addErr = st.AddTask(name, priority, reminderTime)
		return addErr == nil
	})
	if err != nil {
		return nil, err
	}
	if addErr != nil {
		return nil, addErr
	}
	s.logger.Debug("task added", "task_id", task.ID, "priority", task.Priority)
	return task.Clone(), nil
}

// ToggleCompletion flips a task's completion for day. Unknown ids return a
// nil task; days outside the challenge leave the task unchanged.
func (s *TrackerService) ToggleCompletion(ctx context.Context, taskID string, day int) (*domain.Task, error) {
	var (
		task       *domain.Task
		wasFull    bool
		wasOverall bool
	)
	state, err := s.mutate(ctx, []string{ports.KeyTasks}, func(st *domain.State) bool {
		if day < 1 || day > st.Challenge.TotalDays {
			task = st.FindTask(taskID)
			return false
		}
		wasFull = domain.IsDayFullyComplete(day, st.TasksForDay(day))
		wasOverall = challengeComplete(st)
		found, _ := st.ToggleCompletion(taskID, day)
		if found {
			task = st.FindTask(taskID)
		}
		return found
	})
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, nil
	}
	s.logger.Debug("task toggled", "task_id", task.ID, "day", day, "completed", task.IsCompletedOn(day))

	if !wasFull && domain.IsDayFullyComplete(day, state.TasksForDay(day)) {
		s.notify(func(n ports.Notifier) error { return n.NotifyDayComplete(day, state.Challenge.TotalDays) })
	}
	if !wasOverall && challengeComplete(state) {
		s.notify(func(n ports.Notifier) error { return n.NotifyChallengeComplete(state.Challenge.TotalDays) })
	}
	return task.Clone(), nil
}

func challengeComplete(st *domain.State) bool {
	return domain.CompletedDayCount(st.Tasks, st.Challenge.TotalDays) == st.Challenge.TotalDays
}

func (s *TrackerService) notify(fn func(ports.Notifier) error) {
	if s.notifier == nil {
		return
	}
	if err := fn(s.notifier); err != nil {
		s.logger.Warn("notification failed", "error", err)
	}
}

// DeleteTask removes a task and reports whether it existed.
func (s *TrackerService) DeleteTask(ctx context.Context, taskID string) (bool, error) {
	var deleted bool
	_, err := s.mutate(ctx, []string{ports.KeyTasks}, func(st *domain.State) bool {
		deleted = st.DeleteTask(taskID)
		return deleted
	})
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Debug("task deleted", "task_id", taskID)
	}
	return deleted, nil
}

func (s *TrackerService) mutateChallenge(ctx context.Context, keys []string, fn func(*domain.Challenge)) (domain.Challenge, error) {
	state, err := s.mutate(ctx, keys, func(st *domain.State) bool {
		before := st.Challenge
		fn(&st.Challenge)
		return st.Challenge != before
	})
	if err != nil {
		return domain.Challenge{}, err
	}
	s.logger.Debug("challenge updated",
		"day", state.Challenge.CurrentDay,
		"total_days", state.Challenge.TotalDays,
		"start_date", state.Challenge.StartDate)
	return state.Challenge, nil
}

// SetCurrentDay moves to day, clamped into the challenge.
func (s *TrackerService) SetCurrentDay(ctx context.Context, day int) (domain.Challenge, error) {
	return s.mutateChallenge(ctx, []string{ports.KeyDay}, func(c *domain.Challenge) {
		c.SetCurrentDay(day)
	})
}

// NextDay advances one day unless already on the last day.
func (s *TrackerService) NextDay(ctx context.Context) (domain.Challenge, error) {
	return s.mutateChallenge(ctx, []string{ports.KeyDay}, func(c *domain.Challenge) {
		c.NextDay()
	})
}

// PreviousDay steps back one day unless already on day 1.
func (s *TrackerService) PreviousDay(ctx context.Context) (domain.Challenge, error) {
	return s.mutateChallenge(ctx, []string{ports.KeyDay}, func(c *domain.Challenge) {
		c.PreviousDay()
	})
}

// SetTotalDays changes the challenge length and re-clamps the current day.
func (s *TrackerService) SetTotalDays(ctx context.Context, n int) (domain.Challenge, error) {
	return s.mutateChallenge(ctx, []string{ports.KeyTotalDays, ports.KeyDay}, func(c *domain.Challenge) {
		c.SetTotalDays(n)
	})
}

// SetStartDate stores date verbatim as the challenge's first day.
func (s *TrackerService) SetStartDate(ctx context.Context, date string) (domain.Challenge, error) {
	return s.mutateChallenge(ctx, []string{ports.KeyStartDate}, func(c *domain.Challenge) {
		c.SetStartDate(date)
	})
}

// UpdateSettings changes the presentation settings. Nil arguments leave the
// corresponding setting alone.
func (s *TrackerService) UpdateSettings(ctx context.Context, label *domain.DateLabel, darkMode *bool) (domain.Settings, error) {
	var keys []string
	if label != nil {
		if _, err := domain.ParseDateLabel(string(*label)); err != nil {
			return domain.Settings{}, err
		}
		keys = append(keys, ports.KeyDateLabelSetting)
	}
	if darkMode != nil {
		keys = append(keys, ports.KeyDarkMode)
	}
	state, err := s.mutate(ctx, keys, func(st *domain.State) bool {
		if label != nil {
			st.Settings.DateLabel = *label
		}
		if darkMode != nil {
			st.Settings.DarkMode = *darkMode
		}
		return len(keys) > 0
	})
	if err != nil {
		return domain.Settings{}, err
	}
	return state.Settings, nil
}

// FindTasks resolves query against the task list. An exact ID wins, then an
// ID prefix, then a case-insensitive name match, then fuzzy name matches
// ordered by score.
func (s *TrackerService) FindTasks(ctx context.Context, query string) ([]*domain.Task, error) {
	state, err := s.GetState(ctx)
	if err != nil {
		return nil, err
	}
	return MatchTasks(state.Tasks, query), nil
}

// MatchTasks applies the FindTasks resolution rules to tasks.
func MatchTasks(tasks []*domain.Task, query string) []*domain.Task {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	if t := findBy(tasks, func(t *domain.Task) bool { return t.ID == query }); len(t) > 0 {
		return t
	}
	if t := findBy(tasks, func(t *domain.Task) bool { return strings.HasPrefix(t.ID, query) }); len(t) > 0 {
		return t
	}
	if t := findBy(tasks, func(t *domain.Task) bool { return strings.EqualFold(t.Name, query) }); len(t) > 0 {
		return t
	}

	names := make([]string, len(tasks))
	for i, t := range tasks {
		names[i] = t.Name
	}
	var out []*domain.Task
	for _, m := range fuzzy.Find(query, names) {
		if m.Score > 0 {
			out = append(out, tasks[m.Index])
		}
	}
	return out
}

func findBy(tasks []*domain.Task, pred func(*domain.Task) bool) []*domain.Task {
	var out []*domain.Task
	for _, t := range tasks {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}
