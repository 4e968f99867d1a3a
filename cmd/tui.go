package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xvierd/daytrack/internal/adapters/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive tracker",
	Long:  `Open the full-screen tracker. This is also what a bare "daytrack" runs.`,
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

// runTUI launches the full-screen tracker with the configured theme.
func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run(cmd.Context(), app.tracker, &app.config.Theme, tui.WithClock(app.tracker.Now))
}
