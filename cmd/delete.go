package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xvierd/daytrack/internal/adapters/tui"
	"github.com/xvierd/daytrack/internal/domain"
)

var deleteYes bool

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete [task]",
	Short: "Delete a task",
	Long:  `Delete a task and its completion history. Use with caution - this cannot be undone.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := resolveTask(cmd, args[0])
		if err != nil {
			return err
		}

		if !deleteYes {
			if jsonOutput || !tui.IsInteractive() {
				return fmt.Errorf("refusing to delete %q without --yes", task.Name)
			}
			items := []tui.PickerItem{
				{Label: "No", Desc: "Keep the task"},
				{Label: "Yes", Desc: fmt.Sprintf("Delete %q and its history", task.Name)},
			}
			result := tui.RunPicker("Delete task?", items, &app.config.Theme)
			if result.Aborted || result.Index != 1 {
				fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled.")
				return nil
			}
		}

		deleted, err := app.tracker.DeleteTask(cmd.Context(), task.ID)
		if err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		if !deleted {
			return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, args[0])
		}

		if jsonOutput {
			return printJSON(cmd, map[string]interface{}{"deleted": true, "task_id": task.ID})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Task '%s' deleted successfully.\n", task.Name)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Delete without asking for confirmation")
}
