package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xvierd/daytrack/internal/domain"
	"github.com/xvierd/daytrack/internal/view"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show challenge progress",
	Long:  `Display the current day, its completion, overall progress and quick stats.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := app.tracker.GetState(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get state: %w", err)
		}
		sum := state.Summarize(app.tracker.Now())
		daily := domain.DailyProgress(state.Tasks, state.Challenge.TotalDays)

		if jsonOutput {
			return printJSON(cmd, statusJSON(sum, daily))
		}

		styles := view.NewStyles(view.ResolveTheme(&app.config.Theme), state.Settings.DarkMode)
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, view.RenderStats(sum, styles))
		fmt.Fprintf(out, "\n%s\n", view.Sparkline(daily))
		return nil
	},
}

// statusJSON flattens a summary for machine output.
func statusJSON(sum domain.Summary, daily []int) map[string]interface{} {
	result := map[string]interface{}{
		"current_day":      sum.CurrentDay,
		"total_days":       sum.TotalDays,
		"start_date":       sum.StartDate,
		"current_date":     nil,
		"today":            nil,
		"day_percent":      sum.DayPercent,
		"day_status":       string(sum.DayStatus),
		"day_tasks_done":   sum.DayTasksDone,
		"day_tasks_total":  sum.DayTasksTotal,
		"days_complete":    sum.DaysComplete,
		"days_remaining":   sum.DaysRemaining,
		"tasks_started":    sum.TasksStarted,
		"overall_percent":  sum.OverallPercent,
		"legacy_percent":   sum.LegacyPercent,
		"message":          sum.Tier.Message(),
		"task_count":       sum.TaskCount,
		"daily_percentage": daily,
	}
	if sum.CurrentDate != nil {
		result["current_date"] = domain.FormatDate(*sum.CurrentDate)
	}
	if sum.TodayIndex != nil {
		result["today"] = *sum.TodayIndex
	}
	return result
}
