package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xvierd/daytrack/internal/domain"
)

// dayCmd represents the day command
var dayCmd = &cobra.Command{
	Use:   "day [N|next|prev|today]",
	Short: "Show or change the current day",
	Long: `Without arguments, print the current day. With a number, jump to that day
(clamped into the challenge). "next" and "prev" step one day; "today" jumps
to the day that matches today's date when a start date is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var (
			challenge domain.Challenge
			err       error
		)
		arg := ""
		if len(args) == 1 {
			arg = strings.ToLower(strings.TrimSpace(args[0]))
		}
		switch arg {
		case "":
			var state *domain.State
			state, err = app.tracker.GetState(ctx)
			if state != nil {
				challenge = state.Challenge
			}
		case "next", "n", "+":
			challenge, err = app.tracker.NextDay(ctx)
		case "prev", "previous", "p", "-":
			challenge, err = app.tracker.PreviousDay(ctx)
		case "today":
			state, serr := app.tracker.GetState(ctx)
			if serr != nil {
				return fmt.Errorf("failed to get state: %w", serr)
			}
			today, ok := state.Challenge.TodayIndex(app.tracker.Now())
			if !ok {
				return fmt.Errorf("today is outside the challenge (start date %q)", state.Challenge.StartDate)
			}
			challenge, err = app.tracker.SetCurrentDay(ctx, today)
		default:
			n, perr := strconv.Atoi(arg)
			if perr != nil {
				return fmt.Errorf("invalid day %q: use a number, next, prev or today", args[0])
			}
			challenge, err = app.tracker.SetCurrentDay(ctx, n)
		}
		if err != nil {
			return fmt.Errorf("failed to update day: %w", err)
		}

		if jsonOutput {
			data := challengeJSON(challenge)
			if date, ok := challenge.DateForDay(challenge.CurrentDay); ok {
				data["date"] = domain.FormatDate(date)
			}
			return printJSON(cmd, data)
		}

		line := fmt.Sprintf("📅 Day %d of %d", challenge.CurrentDay, challenge.TotalDays)
		if date, ok := challenge.DateForDay(challenge.CurrentDay); ok {
			line += " (" + date.Format("Mon, January 2, 2006") + ")"
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
		return nil
	},
}
