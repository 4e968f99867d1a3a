package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/xvierd/daytrack/internal/adapters/tui"
	"github.com/xvierd/daytrack/internal/domain"
	"github.com/xvierd/daytrack/internal/services"
)

// printJSON writes v as indented JSON to the command's output.
func printJSON(cmd *cobra.Command, v interface{}) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}

func taskJSON(task *domain.Task, day int) map[string]interface{} {
	data := map[string]interface{}{
		"id":             task.ID,
		"name":           task.Name,
		"priority":       string(task.Priority),
		"completed":      task.IsCompletedOn(day),
		"completed_days": task.CompletedDays,
		"created_at":     task.CreatedAt.Format("2006-01-02T15:04:05"),
	}
	if task.ReminderTime != "" {
		data["reminder_time"] = task.ReminderTime
	}
	if task.AssignedDay != nil {
		data["assigned_day"] = *task.AssignedDay
	}
	return data
}

func challengeJSON(c domain.Challenge) map[string]interface{} {
	return map[string]interface{}{
		"current_day": c.CurrentDay,
		"total_days":  c.TotalDays,
		"start_date":  c.StartDate,
	}
}

// resolveTask finds exactly one task for query. Ambiguous matches open a
// picker on a terminal and are an error otherwise.
func resolveTask(cmd *cobra.Command, query string) (*domain.Task, error) {
	state, err := app.tracker.GetState(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to get state: %w", err)
	}
	matches := services.MatchTasks(state.Tasks, query)
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, query)
	case 1:
		return matches[0], nil
	}

	if jsonOutput || !tui.IsInteractive() {
		names := make([]string, len(matches))
		for i, t := range matches {
			names[i] = fmt.Sprintf("%s (%s)", t.Name, t.ID[:min(8, len(t.ID))])
		}
		return nil, fmt.Errorf("%q matches more than one task: %s", query, strings.Join(names, ", "))
	}
	result := tui.RunPicker(fmt.Sprintf("Which task did you mean by %q?", query),
		tui.TaskPickerItems(matches, state.Challenge.CurrentDay), &app.config.Theme)
	if result.Aborted {
		return nil, fmt.Errorf("cancelled")
	}
	return matches[result.Index], nil
}

// dayOrCurrent returns day when set, otherwise the challenge's current day.
func dayOrCurrent(day int, state *domain.State) int {
	if day > 0 {
		return day
	}
	return state.Challenge.CurrentDay
}

// validateReminder accepts an empty value or a 24-hour HH:MM time.
func validateReminder(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("invalid reminder time %q: use HH:MM", s)
	}
	return nil
}

func checkmark(done bool) string {
	if done {
		return "✅"
	}
	return "⬜"
}
