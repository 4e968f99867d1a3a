package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xvierd/daytrack/internal/domain"
)

var toggleDay int

// toggleCmd represents the toggle command
var toggleCmd = &cobra.Command{
	Use:   "toggle [task]",
	Short: "Mark a task done or not done",
	Long: `Flip a task's completion for a day (default: the current day). The task
can be named by ID, ID prefix or name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		task, err := resolveTask(cmd, args[0])
		if err != nil {
			return err
		}

		state, err := app.tracker.GetState(ctx)
		if err != nil {
			return fmt.Errorf("failed to get state: %w", err)
		}
		day := dayOrCurrent(toggleDay, state)
		if day > state.Challenge.TotalDays {
			return fmt.Errorf("day %d is outside the %d-day challenge", day, state.Challenge.TotalDays)
		}

		updated, err := app.tracker.ToggleCompletion(ctx, task.ID, day)
		if err != nil {
			return fmt.Errorf("failed to toggle task: %w", err)
		}
		if updated == nil {
			return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, args[0])
		}

		state, err = app.tracker.GetState(ctx)
		if err != nil {
			return fmt.Errorf("failed to get state: %w", err)
		}
		dayTasks := state.TasksForDay(day)
		percent := domain.DayCompletionPercent(day, dayTasks)

		if jsonOutput {
			data := taskJSON(updated, day)
			data["day"] = day
			data["day_percent"] = percent
			data["day_complete"] = domain.IsDayFullyComplete(day, dayTasks)
			return printJSON(cmd, data)
		}

		out := cmd.OutOrStdout()
		if updated.IsCompletedOn(day) {
			fmt.Fprintf(out, "✅ %s done on day %d\n", updated.Name, day)
		} else {
			fmt.Fprintf(out, "⬜ %s not done on day %d\n", updated.Name, day)
		}
		fmt.Fprintf(out, "Day %d: %d%% complete\n", day, percent)
		if domain.IsDayFullyComplete(day, dayTasks) {
			fmt.Fprintln(out, "🎉 Every task for this day is done!")
		}
		return nil
	},
}

func init() {
	toggleCmd.Flags().IntVarP(&toggleDay, "day", "d", 0, "Day to toggle (default: current day)")
}
