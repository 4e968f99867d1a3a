// Package config provides configuration management for daytrack.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/xvierd/daytrack/internal/domain"
)

const defaultDataDir = "~/.daytrack"

// Config holds all configuration for the daytrack application.
type Config struct {
	Challenge     ChallengeConfig    `mapstructure:"challenge"`
	Display       DisplayConfig      `mapstructure:"display"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Log           LogConfig          `mapstructure:"log"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// ChallengeConfig seeds a challenge the first time the database is used.
// Values already persisted in the database take precedence.
type ChallengeConfig struct {
	TotalDays int    `mapstructure:"total_days"`
	StartDate string `mapstructure:"start_date"`
}

// DisplayConfig seeds the presentation settings.
type DisplayConfig struct {
	DateLabel string `mapstructure:"date_label"`
	DarkMode  bool   `mapstructure:"dark_mode"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ThemeConfig holds the calendar and TUI colors.
type ThemeConfig struct {
	ColorComplete string `mapstructure:"color_complete"`
	ColorPartial  string `mapstructure:"color_partial"`
	ColorCurrent  string `mapstructure:"color_current"`
	ColorToday    string `mapstructure:"color_today"`
	ColorEmpty    string `mapstructure:"color_empty"`
	ColorTitle    string `mapstructure:"color_title"`
	ColorHelp     string `mapstructure:"color_help"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorComplete: "#22C55E",
		ColorPartial:  "#60A5FA",
		ColorCurrent:  "#2563EB",
		ColorToday:    "#EAB308",
		ColorEmpty:    "#6B7280",
		ColorTitle:    "#7C6FE0",
		ColorHelp:     "#95A5A6",
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Challenge: ChallengeConfig{
			TotalDays: domain.DefaultTotalDays,
		},
		Display: DisplayConfig{
			DateLabel: string(domain.DateLabelShort),
		},
		Notifications: NotificationConfig{
			Enabled: true,
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir,
		},
		Log: LogConfig{
			Level: "warn",
		},
		Theme: DefaultThemeConfig(),
	}
}

// Load loads the configuration from the default config file.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from configPath, creating it with
// defaults when it does not exist. DAYTRACK_* environment variables override
// file values (e.g. DAYTRACK_LOG_LEVEL).
func LoadFrom(configPath string) (*Config, error) {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	v := newViper(configPath)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := SaveTo(configPath, DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	dataDir, err := expandHome(cfg.Storage.DataDir)
	if err != nil {
		return nil, err
	}
	cfg.Storage.DataDir = dataDir

	return &cfg, nil
}

// Save saves the configuration to the default config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return SaveTo(configPath, cfg)
}

// SaveTo writes cfg to configPath as TOML.
func SaveTo(configPath string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	v.Set("challenge.total_days", cfg.Challenge.TotalDays)
	v.Set("challenge.start_date", cfg.Challenge.StartDate)
	v.Set("display.date_label", cfg.Display.DateLabel)
	v.Set("display.dark_mode", cfg.Display.DarkMode)
	v.Set("notifications.enabled", cfg.Notifications.Enabled)
	v.Set("storage.data_dir", cfg.Storage.DataDir)
	v.Set("log.level", cfg.Log.Level)
	v.Set("theme.color_complete", cfg.Theme.ColorComplete)
	v.Set("theme.color_partial", cfg.Theme.ColorPartial)
	v.Set("theme.color_current", cfg.Theme.ColorCurrent)
	v.Set("theme.color_today", cfg.Theme.ColorToday)
	v.Set("theme.color_empty", cfg.Theme.ColorEmpty)
	v.Set("theme.color_title", cfg.Theme.ColorTitle)
	v.Set("theme.color_help", cfg.Theme.ColorHelp)

	return v.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".daytrack", "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "daytrack.db")
}

// DateLabel returns the configured date label, falling back to short.
func (c *Config) DateLabel() domain.DateLabel {
	label, err := domain.ParseDateLabel(c.Display.DateLabel)
	if err != nil {
		return domain.DateLabelShort
	}
	return label
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	v.SetEnvPrefix("DAYTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("challenge.total_days", d.Challenge.TotalDays)
	v.SetDefault("challenge.start_date", d.Challenge.StartDate)
	v.SetDefault("display.date_label", d.Display.DateLabel)
	v.SetDefault("display.dark_mode", d.Display.DarkMode)
	v.SetDefault("notifications.enabled", d.Notifications.Enabled)
	v.SetDefault("storage.data_dir", d.Storage.DataDir)
	v.SetDefault("log.level", d.Log.Level)

	// Theme defaults
	v.SetDefault("theme.color_complete", d.Theme.ColorComplete)
	v.SetDefault("theme.color_partial", d.Theme.ColorPartial)
	v.SetDefault("theme.color_current", d.Theme.ColorCurrent)
	v.SetDefault("theme.color_today", d.Theme.ColorToday)
	v.SetDefault("theme.color_empty", d.Theme.ColorEmpty)
	v.SetDefault("theme.color_title", d.Theme.ColorTitle)
	v.SetDefault("theme.color_help", d.Theme.ColorHelp)
}

func expandHome(dir string) (string, error) {
	if dir != "" && dir != "~" && !strings.HasPrefix(dir, "~/") {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	if dir == "" {
		return filepath.Join(homeDir, ".daytrack"), nil
	}
	return filepath.Join(homeDir, strings.TrimPrefix(dir, "~")), nil
}
