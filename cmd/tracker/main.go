package main

import (
	"context"
	"os"

	"github.com/BeeGeeEss/personal-expense-tracker/internal/cli"
	"github.com/BeeGeeEss/personal-expense-tracker/internal/config"
	"github.com/BeeGeeEss/personal-expense-tracker/internal/ledger"
	"github.com/BeeGeeEss/personal-expense-tracker/internal/menu"
)

func main() {
	// Load .env file for local development (ignore errors in production)
	cli.LoadEnvFile()

	cfg := config.Load()
	logger := cli.SetupLogger(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	backend := cli.OpenBackend(logger, cfg)
	defer backend.Close()

	ctx := context.Background()
	tracker, err := ledger.Open(ctx, backend)
	if err != nil {
		logger.Error("Failed to load transactions", "error", err)
		os.Exit(1)
	}
	logger.Info("Ledger loaded", "backend", cfg.Backend, "transactions", tracker.Len())

	// An interrupted session still saves whatever was entered.
	cli.GracefulShutdown(logger, func() {
		if err := tracker.Save(context.Background()); err != nil {
			logger.Error("Failed to save transactions", "error", err)
		}
		backend.Close()
	})

	if err := menu.New(tracker, os.Stdin, os.Stdout).Run(ctx); err != nil {
		logger.Error("Session error", "error", err)
		os.Exit(1)
	}
}
