package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/xvierd/daytrack/internal/domain"
)

// mockStateProvider is an in-memory implementation of ports.MCPStateProvider for testing.
type mockStateProvider struct {
	state *domain.State
}

func newMock() *mockStateProvider {
	return &mockStateProvider{state: domain.NewState()}
}

func (m *mockStateProvider) GetState(ctx context.Context) (*domain.State, error) {
	return m.state.Clone(), nil
}

func (m *mockStateProvider) FindTasks(ctx context.Context, query string) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range m.state.Tasks {
		if t.ID == query || strings.EqualFold(t.Name, query) {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		for _, t := range m.state.Tasks {
			if strings.Contains(strings.ToLower(t.Name), strings.ToLower(query)) {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

func (m *mockStateProvider) AddTask(ctx context.Context, name string, priority domain.Priority, reminderTime string) (*domain.Task, error) {
	return m.state.AddTask(name, priority, reminderTime)
}

func (m *mockStateProvider) ToggleCompletion(ctx context.Context, taskID string, day int) (*domain.Task, error) {
	if found, _ := m.state.ToggleCompletion(taskID, day); !found {
		return nil, nil
	}
	return m.state.FindTask(taskID), nil
}

func (m *mockStateProvider) DeleteTask(ctx context.Context, taskID string) (bool, error) {
	return m.state.DeleteTask(taskID), nil
}

func (m *mockStateProvider) SetCurrentDay(ctx context.Context, day int) (domain.Challenge, error) {
	m.state.Challenge.SetCurrentDay(day)
	return m.state.Challenge, nil
}

func (m *mockStateProvider) SetTotalDays(ctx context.Context, n int) (domain.Challenge, error) {
	m.state.Challenge.SetTotalDays(n)
	return m.state.Challenge, nil
}

func (m *mockStateProvider) SetStartDate(ctx context.Context, date string) (domain.Challenge, error) {
	m.state.Challenge.SetStartDate(date)
	return m.state.Challenge, nil
}

func (m *mockStateProvider) UpdateSettings(ctx context.Context, label *domain.DateLabel, darkMode *bool) (domain.Settings, error) {
	if label != nil {
		m.state.Settings.DateLabel = *label
	}
	if darkMode != nil {
		m.state.Settings.DarkMode = *darkMode
	}
	return m.state.Settings, nil
}

func callWith(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

// decode unmarshals the text content of a successful result.
func decode(t *testing.T, result *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	if result == nil {
		t.Fatal("nil result")
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %+v", result.Content)
	}
	if len(result.Content) == 0 {
		t.Fatal("empty content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	var out map[string]interface{}
	if err := json.Unmarshal([]byte(text.Text), &out); err != nil {
		t.Fatalf("invalid JSON %q: %v", text.Text, err)
	}
	return out
}

func TestNewServer(t *testing.T) {
	mock := newMock()
	server := NewServer(mock)

	if server == nil {
		t.Fatal("NewServer() returned nil")
	}

	if server.stateProvider != mock {
		t.Error("NewServer() did not set state provider correctly")
	}

	if server.server == nil {
		t.Error("NewServer() did not create MCP server")
	}
}

func TestServer_IsRunning(t *testing.T) {
	server := NewServer(newMock())

	if server.IsRunning() {
		t.Error("IsRunning() should return false before Start()")
	}
}

func TestServer_Stop(t *testing.T) {
	server := NewServer(newMock())

	// Stop before Start should not panic
	if err := server.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}

func TestServer_handleGetSummary(t *testing.T) {
	mock := newMock()
	mock.state.Challenge.SetStartDate("2024-01-01")
	task, _ := mock.state.AddTask("Exercise", "", "")
	for d := 1; d <= 50; d++ {
		mock.state.ToggleCompletion(task.ID, d)
	}

	server := NewServer(mock)
	server.now = func() time.Time { return time.Date(2024, 1, 3, 8, 0, 0, 0, time.Local) }

	result, err := server.handleGetSummary(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handleGetSummary() error = %v", err)
	}
	out := decode(t, result)

	if out["days_complete"] != float64(50) {
		t.Errorf("days_complete = %v, want 50", out["days_complete"])
	}
	if out["overall_percent"] != float64(50) {
		t.Errorf("overall_percent = %v, want 50", out["overall_percent"])
	}
	if out["day_status"] != "Complete" {
		t.Errorf("day_status = %v, want Complete", out["day_status"])
	}
	if out["current_date"] != "2024-01-01" {
		t.Errorf("current_date = %v, want 2024-01-01", out["current_date"])
	}
	if out["today_day_number"] != float64(3) {
		t.Errorf("today_day_number = %v, want 3", out["today_day_number"])
	}
}

func TestServer_handleAddTask(t *testing.T) {
	mock := newMock()
	server := NewServer(mock)

	result, err := server.handleAddTask(context.Background(), callWith(map[string]interface{}{
		"name":     "Read",
		"priority": "for_later",
	}))
	if err != nil {
		t.Fatalf("handleAddTask() error = %v", err)
	}
	out := decode(t, result)
	if out["name"] != "Read" || out["priority"] != "for_later" {
		t.Errorf("unexpected task %v", out)
	}
	if len(mock.state.Tasks) != 1 {
		t.Errorf("expected 1 task, got %d", len(mock.state.Tasks))
	}
}

func TestServer_handleAddTask_Errors(t *testing.T) {
	server := NewServer(newMock())

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"missing name", map[string]interface{}{}},
		{"blank name", map[string]interface{}{"name": "   "}},
		{"bad priority", map[string]interface{}{"name": "Read", "priority": "urgent"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := server.handleAddTask(context.Background(), callWith(tt.args))
			if err != nil {
				t.Fatalf("handleAddTask() error = %v", err)
			}
			if !result.IsError {
				t.Error("expected error result")
			}
		})
	}
}

func TestServer_handleToggleTask(t *testing.T) {
	mock := newMock()
	task, _ := mock.state.AddTask("Exercise", "", "")
	server := NewServer(mock)

	result, err := server.handleToggleTask(context.Background(), callWith(map[string]interface{}{
		"task": "exercise",
		"day":  float64(4),
	}))
	if err != nil {
		t.Fatalf("handleToggleTask() error = %v", err)
	}
	out := decode(t, result)
	if out["completed"] != true || out["day"] != float64(4) {
		t.Errorf("unexpected toggle result %v", out)
	}
	if !mock.state.FindTask(task.ID).IsCompletedOn(4) {
		t.Error("task should be complete on day 4")
	}

	t.Run("defaults to current day", func(t *testing.T) {
		mock.state.Challenge.SetCurrentDay(7)
		result, _ := server.handleToggleTask(context.Background(), callWith(map[string]interface{}{"task": task.ID}))
		if decode(t, result)["day"] != float64(7) {
			t.Error("expected current day 7")
		}
	})

	t.Run("unknown task", func(t *testing.T) {
		result, _ := server.handleToggleTask(context.Background(), callWith(map[string]interface{}{"task": "zzz"}))
		if !result.IsError {
			t.Error("expected error result for unknown task")
		}
	})

	t.Run("day beyond challenge", func(t *testing.T) {
		result, _ := server.handleToggleTask(context.Background(), callWith(map[string]interface{}{"task": task.ID, "day": float64(500)}))
		if !result.IsError {
			t.Error("expected error result for out-of-range day")
		}
	})
}

func TestServer_handleToggleTask_Ambiguous(t *testing.T) {
	mock := newMock()
	mock.state.AddTask("Read news", "", "")
	mock.state.AddTask("Read book", "", "")
	server := NewServer(mock)

	result, err := server.handleToggleTask(context.Background(), callWith(map[string]interface{}{"task": "read"}))
	if err != nil {
		t.Fatalf("handleToggleTask() error = %v", err)
	}
	if !result.IsError {
		t.Error("expected ambiguous match to be an error result")
	}
}

func TestServer_handleDeleteTask(t *testing.T) {
	mock := newMock()
	task, _ := mock.state.AddTask("Exercise", "", "")
	server := NewServer(mock)

	result, err := server.handleDeleteTask(context.Background(), callWith(map[string]interface{}{"task": task.ID}))
	if err != nil {
		t.Fatalf("handleDeleteTask() error = %v", err)
	}
	if decode(t, result)["deleted"] != true {
		t.Error("expected deleted = true")
	}
	if len(mock.state.Tasks) != 0 {
		t.Error("task was not deleted")
	}
}

func TestServer_handleSetTotalDays_ClampsCurrentDay(t *testing.T) {
	mock := newMock()
	mock.state.Challenge.SetCurrentDay(75)
	server := NewServer(mock)

	result, err := server.handleSetTotalDays(context.Background(), callWith(map[string]interface{}{"total_days": float64(30)}))
	if err != nil {
		t.Fatalf("handleSetTotalDays() error = %v", err)
	}
	out := decode(t, result)
	if out["total_days"] != float64(30) || out["current_day"] != float64(30) {
		t.Errorf("unexpected challenge %v", out)
	}
}

func TestServer_handleSetDay(t *testing.T) {
	server := NewServer(newMock())

	result, err := server.handleSetDay(context.Background(), callWith(map[string]interface{}{"day": float64(1000)}))
	if err != nil {
		t.Fatalf("handleSetDay() error = %v", err)
	}
	if decode(t, result)["current_day"] != float64(domain.DefaultTotalDays) {
		t.Error("day should clamp to the last day")
	}

	missing, _ := server.handleSetDay(context.Background(), callWith(map[string]interface{}{}))
	if !missing.IsError {
		t.Error("expected error result for missing day")
	}
}

func TestServer_handleSetStartDate(t *testing.T) {
	mock := newMock()
	server := NewServer(mock)

	result, err := server.handleSetStartDate(context.Background(), callWith(map[string]interface{}{"date": "2024-03-01"}))
	if err != nil {
		t.Fatalf("handleSetStartDate() error = %v", err)
	}
	if decode(t, result)["start_date"] != "2024-03-01" {
		t.Error("start date not returned")
	}

	bad, _ := server.handleSetStartDate(context.Background(), callWith(map[string]interface{}{"date": "03/01/2024"}))
	if !bad.IsError {
		t.Error("expected error result for malformed date")
	}
	if mock.state.Challenge.StartDate != "2024-03-01" {
		t.Error("malformed date should not be stored")
	}
}

func TestServer_handleUpdateSettings(t *testing.T) {
	mock := newMock()
	server := NewServer(mock)

	result, err := server.handleUpdateSettings(context.Background(), callWith(map[string]interface{}{
		"date_label": "long",
		"dark_mode":  true,
	}))
	if err != nil {
		t.Fatalf("handleUpdateSettings() error = %v", err)
	}
	out := decode(t, result)
	if out["date_label"] != "long" || out["dark_mode"] != true {
		t.Errorf("unexpected settings %v", out)
	}

	// dark_mode omitted leaves it alone
	result, _ = server.handleUpdateSettings(context.Background(), callWith(map[string]interface{}{"date_label": "short"}))
	if decode(t, result)["dark_mode"] != true {
		t.Error("dark_mode should be unchanged")
	}
}

func TestServer_handleListTasks(t *testing.T) {
	mock := newMock()
	mock.state.Challenge.SetCurrentDay(3)
	important, _ := mock.state.AddTask("Tax return", domain.PriorityMostImportant, "")
	mock.state.AddTask("Stretch", "", "")
	mock.state.ToggleCompletion(important.ID, 3)
	server := NewServer(mock)

	result, err := server.handleListTasks(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handleListTasks() error = %v", err)
	}
	out := decode(t, result)
	if out["total_count"] != float64(2) || out["percent"] != float64(50) {
		t.Errorf("unexpected day 3 listing %v", out)
	}

	result, _ = server.handleListTasks(context.Background(), callWith(map[string]interface{}{"day": float64(4)}))
	if decode(t, result)["total_count"] != float64(1) {
		t.Error("most important task should only list on its assigned day")
	}
}

func TestServer_handleGetCalendar(t *testing.T) {
	mock := newMock()
	mock.state.Challenge.SetTotalDays(10)
	task, _ := mock.state.AddTask("Exercise", "", "")
	mock.state.ToggleCompletion(task.ID, 2)
	server := NewServer(mock)

	result, err := server.handleGetCalendar(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handleGetCalendar() error = %v", err)
	}
	out := decode(t, result)
	days, ok := out["days"].([]interface{})
	if !ok || len(days) != 10 {
		t.Fatalf("days = %v, want 10 rows", out["days"])
	}
	if out["days_complete"] != float64(1) {
		t.Errorf("days_complete = %v, want 1", out["days_complete"])
	}
}
