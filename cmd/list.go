package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xvierd/daytrack/internal/domain"
	"github.com/xvierd/daytrack/internal/view"
)

var listDay int

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tasks of a day",
	Long:  `List the tasks that apply to a day, grouped by priority, with their completion state.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := app.tracker.GetState(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get state: %w", err)
		}
		day := dayOrCurrent(listDay, state)
		if day > state.Challenge.TotalDays {
			return fmt.Errorf("day %d is outside the %d-day challenge", day, state.Challenge.TotalDays)
		}
		groups := view.GroupTasks(state, day)

		if jsonOutput {
			tasks := make([]map[string]interface{}, 0)
			for _, row := range view.Rows(groups) {
				tasks = append(tasks, taskJSON(row.Task, day))
			}
			return printJSON(cmd, map[string]interface{}{
				"day":     day,
				"percent": domain.DayCompletionPercent(day, state.TasksForDay(day)),
				"tasks":   tasks,
			})
		}

		out := cmd.OutOrStdout()
		if len(groups) == 0 {
			fmt.Fprintf(out, "No tasks for day %d. Add one with \"daytrack add\".\n", day)
			return nil
		}

		fmt.Fprintf(out, "📋 Day %d of %d\n", day, state.Challenge.TotalDays)
		for _, g := range groups {
			fmt.Fprintf(out, "\n%s\n", g.Title)
			for _, row := range g.Rows {
				line := fmt.Sprintf("  %s %s  %s", checkmark(row.Done), row.Task.ID[:8], row.Task.Name)
				if row.Task.ReminderTime != "" {
					line += "  ⏰ " + row.Task.ReminderTime
				}
				fmt.Fprintln(out, line)
			}
		}
		dayTasks := state.TasksForDay(day)
		fmt.Fprintf(out, "\n%d%% complete (%d/%d)\n",
			domain.DayCompletionPercent(day, dayTasks), domain.CompletedTaskCount(day, dayTasks), len(dayTasks))
		return nil
	},
}

func init() {
	listCmd.Flags().IntVarP(&listDay, "day", "d", 0, "Day to list (default: current day)")
}
