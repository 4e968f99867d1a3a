// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xvierd/daytrack/internal/domain"
	"github.com/xvierd/daytrack/internal/ports"
	"github.com/xvierd/daytrack/internal/view"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server        *server.MCPServer
	stateProvider ports.MCPStateProvider
	now           func() time.Time
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(stateProvider ports.MCPStateProvider) *Server {
	s := &Server{
		stateProvider: stateProvider,
		now:           time.Now,
	}

	// Create the MCP server
	s.server = server.NewMCPServer(
		"daytrack",
		"1.0.0",
		server.WithLogging(),
	)

	// Register tools
	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	// Tool: get_summary
	s.server.AddTool(
		mcp.NewTool(
			"get_summary",
			mcp.WithDescription("Get the challenge summary: current day, today's completion, overall progress and quick stats"),
		),
		s.handleGetSummary,
	)

	// Tool: list_tasks
	listTasksTool := mcp.NewTool(
		"list_tasks",
		mcp.WithDescription("List the tasks that apply on a day, grouped by priority, with their completion for that day"),
		mcp.WithNumber(
			"day",
			mcp.Description("Day index (default: the current day)"),
		),
	)
	s.server.AddTool(listTasksTool, s.handleListTasks)

	// Tool: add_task
	addTaskTool := mcp.NewTool(
		"add_task",
		mcp.WithDescription("Add a task to the challenge"),
		mcp.WithString(
			"name",
			mcp.Required(),
			mcp.Description("The name of the task"),
		),
		mcp.WithString(
			"priority",
			mcp.Description("Task priority (default: daily_routine)"),
			mcp.Enum("most_important", "daily_routine", "for_later"),
		),
		mcp.WithString(
			"reminder_time",
			mcp.Description("Optional reminder time, e.g. 07:30"),
		),
	)
	s.server.AddTool(addTaskTool, s.handleAddTask)

	// Tool: toggle_task
	toggleTaskTool := mcp.NewTool(
		"toggle_task",
		mcp.WithDescription("Toggle a task's completion for a day"),
		mcp.WithString(
			"task",
			mcp.Required(),
			mcp.Description("Task ID, ID prefix or name"),
		),
		mcp.WithNumber(
			"day",
			mcp.Description("Day index (default: the current day)"),
		),
	)
	s.server.AddTool(toggleTaskTool, s.handleToggleTask)

	// Tool: delete_task
	deleteTaskTool := mcp.NewTool(
		"delete_task",
		mcp.WithDescription("Delete a task and its completion history"),
		mcp.WithString(
			"task",
			mcp.Required(),
			mcp.Description("Task ID, ID prefix or name"),
		),
	)
	s.server.AddTool(deleteTaskTool, s.handleDeleteTask)

	// Tool: set_day
	setDayTool := mcp.NewTool(
		"set_day",
		mcp.WithDescription("Move to a day of the challenge (clamped into range)"),
		mcp.WithNumber(
			"day",
			mcp.Required(),
			mcp.Description("Day index"),
		),
	)
	s.server.AddTool(setDayTool, s.handleSetDay)

	// Tool: set_total_days
	setTotalTool := mcp.NewTool(
		"set_total_days",
		mcp.WithDescription("Change the challenge length (clamped to 10-365)"),
		mcp.WithNumber(
			"total_days",
			mcp.Required(),
			mcp.Description("Number of days in the challenge"),
		),
	)
	s.server.AddTool(setTotalTool, s.handleSetTotalDays)

	// Tool: set_start_date
	setStartTool := mcp.NewTool(
		"set_start_date",
		mcp.WithDescription("Set the calendar date of day 1"),
		mcp.WithString(
			"date",
			mcp.Required(),
			mcp.Description("Start date as YYYY-MM-DD"),
		),
	)
	s.server.AddTool(setStartTool, s.handleSetStartDate)

	// Tool: update_settings
	settingsTool := mcp.NewTool(
		"update_settings",
		mcp.WithDescription("Change presentation settings"),
		mcp.WithString(
			"date_label",
			mcp.Description("Calendar date label style"),
			mcp.Enum("short", "long", "always-mobile"),
		),
		mcp.WithBoolean(
			"dark_mode",
			mcp.Description("Use the dark color scheme"),
		),
	)
	s.server.AddTool(settingsTool, s.handleUpdateSettings)

	// Tool: get_calendar
	s.server.AddTool(
		mcp.NewTool(
			"get_calendar",
			mcp.WithDescription("Get the per-day completion table for the whole challenge"),
		),
		s.handleGetCalendar,
	)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	// Start the stdio server
	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

func jsonResult(v interface{}, what string) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", what, err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func taskData(task *domain.Task, day int) map[string]interface{} {
	data := map[string]interface{}{
		"id":             task.ID,
		"name":           task.Name,
		"priority":       string(task.Priority),
		"completed":      task.IsCompletedOn(day),
		"completed_days": len(task.CompletedDays),
	}
	if task.ReminderTime != "" {
		data["reminder_time"] = task.ReminderTime
	}
	if task.AssignedDay != nil {
		data["assigned_day"] = *task.AssignedDay
	}
	return data
}

func challengeData(c domain.Challenge) map[string]interface{} {
	return map[string]interface{}{
		"current_day": c.CurrentDay,
		"total_days":  c.TotalDays,
		"start_date":  c.StartDate,
	}
}

// resolveTask finds exactly one task for query or returns a tool error.
func (s *Server) resolveTask(ctx context.Context, query string) (*domain.Task, *mcp.CallToolResult, error) {
	tasks, err := s.stateProvider.FindTasks(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find task: %w", err)
	}
	switch len(tasks) {
	case 0:
		return nil, mcp.NewToolResultError(fmt.Sprintf("no task matches %q", query)), nil
	case 1:
		return tasks[0], nil, nil
	default:
		names := make([]string, len(tasks))
		for i, t := range tasks {
			names[i] = t.Name
		}
		return nil, mcp.NewToolResultError(fmt.Sprintf("%q is ambiguous: %s", query, strings.Join(names, ", "))), nil
	}
}

// dayArg reads an optional day argument, defaulting to the current day.
func dayArg(request mcp.CallToolRequest, state *domain.State) int {
	if d := request.GetFloat("day", 0); d > 0 {
		return int(d)
	}
	return state.Challenge.CurrentDay
}

// handleGetSummary handles the get_summary tool.
func (s *Server) handleGetSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.stateProvider.GetState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get state: %w", err)
	}
	sum := state.Summarize(s.now())

	result := map[string]interface{}{
		"current_day":      sum.CurrentDay,
		"total_days":       sum.TotalDays,
		"start_date":       sum.StartDate,
		"day_percent":      sum.DayPercent,
		"day_status":       sum.DayStatus.Label(),
		"day_tasks_done":   sum.DayTasksDone,
		"day_tasks_total":  sum.DayTasksTotal,
		"days_complete":    sum.DaysComplete,
		"days_remaining":   sum.DaysRemaining,
		"tasks_started":    sum.TasksStarted,
		"overall_percent":  sum.OverallPercent,
		"message":          sum.Tier.Message(),
		"task_count":       sum.TaskCount,
		"date_label":       string(state.Settings.DateLabel),
		"dark_mode":        state.Settings.DarkMode,
		"current_date":     nil,
		"today_day_number": nil,
	}
	if sum.CurrentDate != nil {
		result["current_date"] = domain.FormatDate(*sum.CurrentDate)
	}
	if sum.TodayIndex != nil {
		result["today_day_number"] = *sum.TodayIndex
	}

	return jsonResult(result, "summary")
}

// handleListTasks handles the list_tasks tool.
func (s *Server) handleListTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.stateProvider.GetState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get state: %w", err)
	}
	day := dayArg(request, state)

	var groups []map[string]interface{}
	count := 0
	for _, g := range view.GroupTasks(state, day) {
		tasks := make([]map[string]interface{}, 0, len(g.Rows))
		for _, row := range g.Rows {
			tasks = append(tasks, taskData(row.Task, day))
		}
		count += len(tasks)
		groups = append(groups, map[string]interface{}{
			"priority": string(g.Priority),
			"title":    g.Title,
			"tasks":    tasks,
		})
	}

	result := map[string]interface{}{
		"day":         day,
		"groups":      groups,
		"total_count": count,
		"percent":     domain.DayCompletionPercent(day, state.TasksForDay(day)),
	}
	return jsonResult(result, "tasks")
}

// handleAddTask handles the add_task tool.
func (s *Server) handleAddTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required: " + err.Error()), nil
	}
	priority, err := domain.ParsePriority(request.GetString("priority", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	task, err := s.stateProvider.AddTask(ctx, name, priority, request.GetString("reminder_time", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add task: %v", err)), nil
	}

	day := 1
	if task.AssignedDay != nil {
		day = *task.AssignedDay
	}
	return jsonResult(taskData(task, day), "task")
}

// handleToggleTask handles the toggle_task tool.
func (s *Server) handleToggleTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("task")
	if err != nil {
		return mcp.NewToolResultError("task is required: " + err.Error()), nil
	}
	task, errResult, err := s.resolveTask(ctx, query)
	if err != nil || errResult != nil {
		return errResult, err
	}

	state, err := s.stateProvider.GetState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get state: %w", err)
	}
	day := dayArg(request, state)
	if day > state.Challenge.TotalDays {
		return mcp.NewToolResultError(fmt.Sprintf("day %d is outside the challenge (1-%d)", day, state.Challenge.TotalDays)), nil
	}

	updated, err := s.stateProvider.ToggleCompletion(ctx, task.ID, day)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to toggle task: %v", err)), nil
	}
	if updated == nil {
		return mcp.NewToolResultError(fmt.Sprintf("task %s no longer exists", task.ID)), nil
	}

	result := taskData(updated, day)
	result["day"] = day
	return jsonResult(result, "task")
}

// handleDeleteTask handles the delete_task tool.
func (s *Server) handleDeleteTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("task")
	if err != nil {
		return mcp.NewToolResultError("task is required: " + err.Error()), nil
	}
	task, errResult, err := s.resolveTask(ctx, query)
	if err != nil || errResult != nil {
		return errResult, err
	}

	deleted, err := s.stateProvider.DeleteTask(ctx, task.ID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete task: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{
		"id":      task.ID,
		"name":    task.Name,
		"deleted": deleted,
	}, "result")
}

// handleSetDay handles the set_day tool.
func (s *Server) handleSetDay(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	day, err := request.RequireFloat("day")
	if err != nil {
		return mcp.NewToolResultError("day is required: " + err.Error()), nil
	}
	c, err := s.stateProvider.SetCurrentDay(ctx, int(day))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set day: %v", err)), nil
	}
	return jsonResult(challengeData(c), "challenge")
}

// handleSetTotalDays handles the set_total_days tool.
func (s *Server) handleSetTotalDays(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	total, err := request.RequireFloat("total_days")
	if err != nil {
		return mcp.NewToolResultError("total_days is required: " + err.Error()), nil
	}
	c, err := s.stateProvider.SetTotalDays(ctx, int(total))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set total days: %v", err)), nil
	}
	return jsonResult(challengeData(c), "challenge")
}

// handleSetStartDate handles the set_start_date tool.
func (s *Server) handleSetStartDate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := request.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date is required: " + err.Error()), nil
	}
	date = strings.TrimSpace(date)
	if _, ok := domain.ParseStartDate(date); !ok {
		return mcp.NewToolResultError(fmt.Sprintf("%v %q: expected YYYY-MM-DD", domain.ErrInvalidStartDate, date)), nil
	}
	c, err := s.stateProvider.SetStartDate(ctx, date)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set start date: %v", err)), nil
	}
	return jsonResult(challengeData(c), "challenge")
}

// handleUpdateSettings handles the update_settings tool.
func (s *Server) handleUpdateSettings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var label *domain.DateLabel
	if raw := request.GetString("date_label", ""); raw != "" {
		l, err := domain.ParseDateLabel(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		label = &l
	}
	var dark *bool
	if args := request.GetArguments(); args != nil {
		if _, ok := args["dark_mode"]; ok {
			d := request.GetBool("dark_mode", false)
			dark = &d
		}
	}

	settings, err := s.stateProvider.UpdateSettings(ctx, label, dark)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update settings: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{
		"date_label": string(settings.DateLabel),
		"dark_mode":  settings.DarkMode,
	}, "settings")
}

// handleGetCalendar handles the get_calendar tool.
func (s *Server) handleGetCalendar(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.stateProvider.GetState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get state: %w", err)
	}
	rows := view.DayTable(state)
	return jsonResult(map[string]interface{}{
		"total_days":    state.Challenge.TotalDays,
		"current_day":   state.Challenge.CurrentDay,
		"days":          rows,
		"days_complete": domain.CompletedDayCount(state.Tasks, state.Challenge.TotalDays),
		"sparkline":     view.Sparkline(domain.DailyProgress(state.Tasks, state.Challenge.TotalDays)),
	}, "calendar")
}
