// Package cli provides common initialization utilities for cmd/tracker:
// env file loading, structured logging, configuration and the storage
// backend selected by it.
package cli

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/BeeGeeEss/personal-expense-tracker/internal/config"
	"github.com/BeeGeeEss/personal-expense-tracker/internal/storage"
	"github.com/BeeGeeEss/personal-expense-tracker/internal/storage/csvfile"
	"github.com/BeeGeeEss/personal-expense-tracker/internal/storage/memory"
	"github.com/BeeGeeEss/personal-expense-tracker/internal/storage/sqlite"
)

// SetupLogger initializes structured logging at the configured level.
// Logs go to stderr because stdout belongs to the interactive menu.
// Returns the configured logger and sets it as the default logger.
func SetupLogger(level string) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(level),
	}))
	slog.SetDefault(logger)
	return logger
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// OpenBackend opens the storage backend named by the configuration.
// Returns the backend or exits the process on failure.
func OpenBackend(logger *slog.Logger, cfg *config.Config) storage.Backend {
	switch cfg.Backend {
	case "sqlite":
		store, err := sqlite.Open(cfg.SQLitePath, storage.LoadPolicy(cfg.LoadPolicy), logger)
		if err != nil {
			logger.Error("Failed to open sqlite backend", "error", err, "path", cfg.SQLitePath)
			os.Exit(1)
		}
		return store
	case "memory":
		return memory.New()
	default:
		return csvfile.New(cfg.CSVPath, storage.LoadPolicy(cfg.LoadPolicy), logger)
	}
}

// GracefulShutdown runs cleanup and exits when the process receives an
// interrupt or termination signal, so an interrupted session still gets
// its data saved.
func GracefulShutdown(logger *slog.Logger, cleanup func()) {
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		if cleanup != nil {
			cleanup()
		}
		os.Exit(0)
	}()
}
