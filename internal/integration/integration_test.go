package integration

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/xvierd/daytrack/internal/adapters/storage"
	"github.com/xvierd/daytrack/internal/domain"
	"github.com/xvierd/daytrack/internal/ports"
	"github.com/xvierd/daytrack/internal/services"
	"github.com/xvierd/daytrack/internal/view"
)

// openStore opens a file-backed store that is closed when the test ends.
func openStore(t *testing.T, dbPath string) ports.KVStore {
	t.Helper()
	store, err := storage.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newTracker(t *testing.T, dbPath string) *services.TrackerService {
	t.Helper()
	svc := services.NewTrackerService(openStore(t, dbPath))
	svc.SetClock(func() time.Time { return time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local) })
	return svc
}

// TestChallengeLifecycle walks a short challenge from setup to completion.
func TestChallengeLifecycle(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "daytrack.db")
	svc := newTracker(t, dbPath)
	ctx := context.Background()

	if _, err := svc.SetTotalDays(ctx, domain.MinTotalDays); err != nil {
		t.Fatalf("failed to set total days: %v", err)
	}
	if _, err := svc.SetStartDate(ctx, "2024-01-01"); err != nil {
		t.Fatalf("failed to set start date: %v", err)
	}
	exercise, err := svc.AddTask(ctx, "Exercise", domain.PriorityDailyRoutine, "07:00")
	if err != nil {
		t.Fatalf("failed to add task: %v", err)
	}
	focus, err := svc.AddTask(ctx, "Ship the draft", domain.PriorityMostImportant, "")
	if err != nil {
		t.Fatalf("failed to add task: %v", err)
	}

	t.Run("most important task only weighs on its day", func(t *testing.T) {
		if _, err := svc.ToggleCompletion(ctx, exercise.ID, 2); err != nil {
			t.Fatal(err)
		}
		state, err := svc.GetState(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if !domain.IsDayFullyComplete(2, state.TasksForDay(2)) {
			t.Error("day 2 should be complete without the day 1 most important task")
		}
		if domain.IsDayFullyComplete(1, state.TasksForDay(1)) {
			t.Error("day 1 should not be complete yet")
		}
	})

	t.Run("completing every day finishes the challenge", func(t *testing.T) {
		if _, err := svc.ToggleCompletion(ctx, focus.ID, 1); err != nil {
			t.Fatal(err)
		}
		for day := 1; day <= domain.MinTotalDays; day++ {
			if day == 2 {
				continue
			}
			if _, err := svc.ToggleCompletion(ctx, exercise.ID, day); err != nil {
				t.Fatal(err)
			}
		}

		sum, err := svc.Summary(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if sum.DaysComplete != domain.MinTotalDays || sum.DaysRemaining != 0 {
			t.Errorf("expected all %d days complete, got %+v", domain.MinTotalDays, sum)
		}
		if sum.OverallPercent != 100 {
			t.Errorf("overall percent = %v, want 100", sum.OverallPercent)
		}
		if sum.TodayIndex == nil || *sum.TodayIndex != 10 {
			t.Errorf("today index = %v, want 10", sum.TodayIndex)
		}
	})

	t.Run("state survives reopening the database", func(t *testing.T) {
		reopened := newTracker(t, dbPath)
		state, err := reopened.GetState(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(state.Tasks) != 2 || state.Challenge.TotalDays != domain.MinTotalDays || state.Challenge.StartDate != "2024-01-01" {
			t.Errorf("unexpected reopened state: %+v", state.Challenge)
		}
		rows := view.DayTable(state)
		for _, r := range rows {
			if !r.Complete || r.Percent != 100 {
				t.Errorf("day %d should be complete, got %+v", r.Day, r)
			}
		}
		if rows[9].Date != "2024-01-10" {
			t.Errorf("last day date = %q, want 2024-01-10", rows[9].Date)
		}
	})
}

// TestTwoProcessesShareOneDatabase checks that each mutation reloads the
// latest snapshot, so writers on separate connections do not clobber each other.
func TestTwoProcessesShareOneDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "daytrack.db")
	cli := newTracker(t, dbPath)
	mcpSide := newTracker(t, dbPath)
	ctx := context.Background()

	read, err := cli.AddTask(ctx, "Read", domain.PriorityDailyRoutine, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := mcpSide.AddTask(ctx, "Walk", domain.PriorityDailyRoutine, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := mcpSide.ToggleCompletion(ctx, read.ID, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := cli.SetCurrentDay(ctx, 4); err != nil {
		t.Fatal(err)
	}

	for name, svc := range map[string]*services.TrackerService{"cli": cli, "mcp": mcpSide} {
		state, err := svc.GetState(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(state.Tasks) != 2 {
			t.Errorf("%s sees %d tasks, want 2", name, len(state.Tasks))
		}
		if task := state.FindTask(read.ID); task == nil || !task.IsCompletedOn(1) {
			t.Errorf("%s should see Read completed on day 1", name)
		}
		if state.Challenge.CurrentDay != 4 {
			t.Errorf("%s current day = %d, want 4", name, state.Challenge.CurrentDay)
		}
	}
}

// TestConcurrentTogglesAreSerialized fires toggles from many goroutines at one
// service and checks none is lost.
func TestConcurrentTogglesAreSerialized(t *testing.T) {
	svc := newTracker(t, filepath.Join(t.TempDir(), "daytrack.db"))
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		task, err := svc.AddTask(ctx, fmt.Sprintf("Task %d", i), domain.PriorityDailyRoutine, "")
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, task.ID)
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(ids)*20)
	for _, id := range ids {
		for day := 1; day <= 20; day++ {
			wg.Add(1)
			go func(id string, day int) {
				defer wg.Done()
				if _, err := svc.ToggleCompletion(ctx, id, day); err != nil {
					errs <- err
				}
			}(id, day)
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("toggle failed: %v", err)
	}

	state, err := svc.GetState(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, task := range state.Tasks {
		if len(task.CompletedDays) != 20 {
			t.Errorf("%s has %d completed days, want 20", task.Name, len(task.CompletedDays))
		}
	}
	if got := domain.CompletedDayCount(state.Tasks, state.Challenge.TotalDays); got != 20 {
		t.Errorf("completed days = %d, want 20", got)
	}
}
