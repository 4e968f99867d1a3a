package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/xvierd/daytrack/internal/adapters/notification"
	"github.com/xvierd/daytrack/internal/adapters/storage"
	"github.com/xvierd/daytrack/internal/config"
	"github.com/xvierd/daytrack/internal/logging"
	"github.com/xvierd/daytrack/internal/ports"
	"github.com/xvierd/daytrack/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	storage  ports.KVStore
	tracker  *services.TrackerService
	notifier *notification.Notifier
	config   *config.Config
	logger   *slog.Logger
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	var err error
	app.config, err = config.Load()
	if err != nil {
		app.config = config.DefaultConfig()
	}
	app.logger = logging.New(os.Stderr, app.config.Log.Level)
	if err != nil {
		app.logger.Warn("failed to load config, using defaults", "error", err)
	}

	app.notifier = notification.New(&app.config.Notifications)

	path := dbPath
	if path == "" {
		path = config.GetDBPath(app.config)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	app.storage, err = storage.New(path)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	app.logger.Debug("storage opened", "path", path)

	app.tracker = services.NewTrackerService(app.storage)
	app.tracker.SetLogger(app.logger)
	app.tracker.SetNotifier(app.notifier)
	app.tracker.SetDefaults(services.Defaults{
		TotalDays: app.config.Challenge.TotalDays,
		StartDate: app.config.Challenge.StartDate,
		DateLabel: app.config.DateLabel(),
		DarkMode:  app.config.Display.DarkMode,
	})

	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if app.storage == nil {
		return nil
	}
	err := app.storage.Close()
	app.storage = nil
	return err
}

// setupSignalHandler returns a context that is cancelled on interrupt signals.
func setupSignalHandler() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
