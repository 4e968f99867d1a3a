package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xvierd/daytrack/internal/adapters/tui"
	"github.com/xvierd/daytrack/internal/view"
)

var calendarWidth int

// calendarCmd represents the calendar command
var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show the challenge calendar",
	Long: `Print every day of the challenge with its completion marker:
✓ complete, ◐ partially done, • today. The current day is highlighted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := app.tracker.GetState(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get state: %w", err)
		}
		cells := view.Calendar(state, app.tracker.Now())

		if jsonOutput {
			days := make([]map[string]interface{}, len(cells))
			for i, c := range cells {
				day := map[string]interface{}{
					"day":      c.Day,
					"percent":  c.Percent,
					"complete": c.Complete,
					"current":  c.Current,
					"today":    c.Today,
					"kind":     c.Kind.String(),
				}
				if c.HasDate {
					day["date"] = c.Date.Format("2006-01-02")
				}
				days[i] = day
			}
			return printJSON(cmd, days)
		}

		width := calendarWidth
		if width <= 0 {
			width = tui.TerminalWidth()
		}
		styles := view.NewStyles(view.ResolveTheme(&app.config.Theme), state.Settings.DarkMode)
		fmt.Fprintln(cmd.OutOrStdout(), view.RenderCalendar(cells, styles, view.CalendarOptions{
			Width:     width,
			DateLabel: state.Settings.DateLabel,
		}))
		return nil
	},
}

func init() {
	calendarCmd.Flags().IntVarP(&calendarWidth, "width", "w", 0, "Render width (default: terminal width)")
}
