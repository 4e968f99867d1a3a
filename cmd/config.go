package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xvierd/daytrack/internal/config"
	"github.com/xvierd/daytrack/internal/logging"
)

var (
	configNotifications string
	configLogLevel      string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and edit the configuration file",
	Long: `Show the configuration file location and its values. --notifications and
--log-level change the file. Challenge and display values in the file only
seed a new database; use "challenge" and "settings" to change a running one.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := app.config
		changed := false

		if configNotifications != "" {
			enabled, err := strconv.ParseBool(configNotifications)
			if err != nil {
				return fmt.Errorf("invalid --notifications value %q: use true or false", configNotifications)
			}
			cfg.Notifications.Enabled = enabled
			changed = true
		}
		if configLogLevel != "" {
			level := strings.ToLower(strings.TrimSpace(configLogLevel))
			if !logging.ValidLevel(level) {
				return fmt.Errorf("invalid --log-level %q: use debug, info, warn or error", configLogLevel)
			}
			cfg.Log.Level = level
			changed = true
		}
		if changed {
			if err := config.Save(cfg); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
		}

		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd, map[string]interface{}{
				"path":          path,
				"database":      config.GetDBPath(cfg),
				"total_days":    cfg.Challenge.TotalDays,
				"start_date":    cfg.Challenge.StartDate,
				"date_label":    string(cfg.DateLabel()),
				"dark_mode":     cfg.Display.DarkMode,
				"notifications": cfg.Notifications.Enabled,
				"log_level":     cfg.Log.Level,
			})
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Config file:    %s\n", path)
		fmt.Fprintf(out, "Database:       %s\n", config.GetDBPath(cfg))
		fmt.Fprintf(out, "Total days:     %d\n", cfg.Challenge.TotalDays)
		if cfg.Challenge.StartDate != "" {
			fmt.Fprintf(out, "Start date:     %s\n", cfg.Challenge.StartDate)
		}
		fmt.Fprintf(out, "Date labels:    %s\n", cfg.DateLabel())
		fmt.Fprintf(out, "Dark mode:      %v\n", cfg.Display.DarkMode)
		notif := "off"
		if cfg.Notifications.Enabled {
			notif = "on"
		}
		fmt.Fprintf(out, "Notifications:  %s\n", notif)
		fmt.Fprintf(out, "Log level:      %s\n", cfg.Log.Level)
		if changed {
			fmt.Fprintln(out, "\n✅ Configuration saved.")
		}
		return nil
	},
}

func init() {
	configCmd.Flags().StringVar(&configNotifications, "notifications", "", "Enable or disable desktop notifications")
	configCmd.Flags().StringVar(&configLogLevel, "log-level", "", "Log level: debug, info, warn or error")
}
