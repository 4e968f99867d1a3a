package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xvierd/daytrack/internal/domain"
)

var (
	challengeTotal int
	challengeStart string
	challengeClear bool
)

// challengeCmd represents the challenge command
var challengeCmd = &cobra.Command{
	Use:   "challenge",
	Short: "Show or change the challenge length and start date",
	Long: fmt.Sprintf(`Show the challenge settings, or change them with --total (%d-%d days)
and --start (YYYY-MM-DD). Shrinking the challenge keeps completions recorded
for days beyond the new end; they come back if the challenge grows again.
--clear-start removes the start date.`, domain.MinTotalDays, domain.MaxTotalDays),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if challengeTotal != 0 {
			if _, err := app.tracker.SetTotalDays(ctx, challengeTotal); err != nil {
				return fmt.Errorf("failed to set total days: %w", err)
			}
		}
		if challengeClear {
			if _, err := app.tracker.SetStartDate(ctx, ""); err != nil {
				return fmt.Errorf("failed to clear start date: %w", err)
			}
		} else if start := strings.TrimSpace(challengeStart); start != "" {
			if _, ok := domain.ParseStartDate(start); !ok {
				return fmt.Errorf("%w %q: use YYYY-MM-DD", domain.ErrInvalidStartDate, start)
			}
			if _, err := app.tracker.SetStartDate(ctx, start); err != nil {
				return fmt.Errorf("failed to set start date: %w", err)
			}
		}

		state, err := app.tracker.GetState(ctx)
		if err != nil {
			return fmt.Errorf("failed to get state: %w", err)
		}
		c := state.Challenge

		if jsonOutput {
			data := challengeJSON(c)
			if end, ok := c.DateForDay(c.TotalDays); ok {
				data["end_date"] = domain.FormatDate(end)
			}
			return printJSON(cmd, data)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "🏁 %d-day challenge, on day %d\n", c.TotalDays, c.CurrentDay)
		if start, ok := domain.ParseStartDate(c.StartDate); ok {
			end, _ := c.DateForDay(c.TotalDays)
			fmt.Fprintf(out, "Runs %s to %s\n", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
		} else {
			fmt.Fprintln(out, "No start date set. Use --start YYYY-MM-DD to anchor days to dates.")
		}
		return nil
	},
}

func init() {
	challengeCmd.Flags().IntVarP(&challengeTotal, "total", "t", 0,
		fmt.Sprintf("Challenge length in days (%d-%d)", domain.MinTotalDays, domain.MaxTotalDays))
	challengeCmd.Flags().StringVarP(&challengeStart, "start", "s", "", "Start date (YYYY-MM-DD)")
	challengeCmd.Flags().BoolVar(&challengeClear, "clear-start", false, "Remove the start date")
}
