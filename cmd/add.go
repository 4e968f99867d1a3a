package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xvierd/daytrack/internal/adapters/tui"
	"github.com/xvierd/daytrack/internal/domain"
)

var (
	addPriority string
	addReminder string
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new task",
	Long: `Add a recurring task to the challenge. Most important tasks belong to
the current day only; the other priorities apply to every day.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		if strings.TrimSpace(name) == "" {
			if jsonOutput || !tui.IsInteractive() {
				return domain.ErrEmptyTaskName
			}
			result := tui.RunTextPrompt("Task name:", "e.g. Read 20 pages", &app.config.Theme)
			if result.Aborted {
				return nil
			}
			name = result.Value
		}

		priority, err := domain.ParsePriority(addPriority)
		if err != nil {
			return err
		}
		if err := validateReminder(addReminder); err != nil {
			return err
		}

		task, err := app.tracker.AddTask(cmd.Context(), name, priority, addReminder)
		if err != nil {
			if errors.Is(err, domain.ErrEmptyTaskName) {
				return err
			}
			return fmt.Errorf("failed to add task: %w", err)
		}

		if jsonOutput {
			return printJSON(cmd, taskJSON(task, 0))
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Task added: %s [%s] (ID: %s)\n", task.Name, task.Priority.Label(), task.ID[:8])
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", string(domain.PriorityDailyRoutine),
		"Priority: most_important, daily_routine or for_later")
	addCmd.Flags().StringVarP(&addReminder, "reminder", "r", "", "Reminder time (HH:MM)")
}
