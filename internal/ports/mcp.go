package ports

import (
	"context"

	"github.com/xvierd/daytrack/internal/domain"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}

// MCPStateProvider exposes the tracker to the MCP server.
// This is a driven port (implemented by services layer).
type MCPStateProvider interface {
	// GetState returns a snapshot of the current state.
	GetState(ctx context.Context) (*domain.State, error)

	// FindTasks resolves a task by ID, ID prefix or fuzzy name.
	FindTasks(ctx context.Context, query string) ([]*domain.Task, error)

	// AddTask creates a task on the current day.
	AddTask(ctx context.Context, name string, priority domain.Priority, reminderTime string) (*domain.Task, error)

	// ToggleCompletion flips a task's completion for day. A nil task means
	// the ID was unknown and nothing changed.
	ToggleCompletion(ctx context.Context, taskID string, day int) (*domain.Task, error)

	// DeleteTask removes a task and reports whether it existed.
	DeleteTask(ctx context.Context, taskID string) (bool, error)

	// SetCurrentDay moves to day, clamped into the challenge.
	SetCurrentDay(ctx context.Context, day int) (domain.Challenge, error)

	// SetTotalDays changes the challenge length, clamped.
	SetTotalDays(ctx context.Context, n int) (domain.Challenge, error)

	// SetStartDate changes the challenge start date.
	SetStartDate(ctx context.Context, date string) (domain.Challenge, error)

	// UpdateSettings changes the presentation settings; nil leaves a value alone.
	UpdateSettings(ctx context.Context, label *domain.DateLabel, darkMode *bool) (domain.Settings, error)
}
