package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xvierd/daytrack/internal/domain"
)

var (
	settingsDateLabel string
	settingsDarkMode  string
)

// settingsCmd represents the settings command
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change display settings",
	Long: `Show the display settings stored with the challenge, or change them.
--date-label accepts short, long or always-mobile; --dark-mode accepts a boolean.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			label *domain.DateLabel
			dark  *bool
		)
		if settingsDateLabel != "" {
			l, err := domain.ParseDateLabel(settingsDateLabel)
			if err != nil {
				return err
			}
			label = &l
		}
		if settingsDarkMode != "" {
			b, err := strconv.ParseBool(settingsDarkMode)
			if err != nil {
				return fmt.Errorf("invalid --dark-mode value %q: use true or false", settingsDarkMode)
			}
			dark = &b
		}

		settings, err := app.tracker.UpdateSettings(cmd.Context(), label, dark)
		if err != nil {
			return fmt.Errorf("failed to update settings: %w", err)
		}

		if jsonOutput {
			return printJSON(cmd, map[string]interface{}{
				"date_label": string(settings.DateLabel),
				"dark_mode":  settings.DarkMode,
			})
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Date labels: %s\n", settings.DateLabel)
		fmt.Fprintf(out, "Dark mode:   %v\n", settings.DarkMode)
		return nil
	},
}

func init() {
	settingsCmd.Flags().StringVar(&settingsDateLabel, "date-label", "", "Calendar date labels: short, long or always-mobile")
	settingsCmd.Flags().StringVar(&settingsDarkMode, "dark-mode", "", "Enable or disable dark mode")
	settingsCmd.Flags().Lookup("dark-mode").NoOptDefVal = "true"
}
