package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	// Backend selection
	Backend string

	// CSV backend
	CSVPath string

	// SQLite backend
	SQLitePath string

	// What to do with malformed stored records: skip or strict
	LoadPolicy string

	// Logging
	LogLevel string
}

func Load() *Config {
	cfg := &Config{
		Backend:    getEnv("TRACKER_BACKEND", "csv"),
		CSVPath:    getEnv("TRACKER_CSV_PATH", "transactions.csv"),
		SQLitePath: getEnv("TRACKER_DB_PATH", "./data/tracker.db"),
		LoadPolicy: getEnv("TRACKER_LOAD_POLICY", "skip"),
		LogLevel:   getEnv("TRACKER_LOG_LEVEL", "info"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	validBackends := []string{"csv", "sqlite", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.Backend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid backend '%s': must be one of %v", c.Backend, validBackends))
	}

	if c.Backend == "csv" && c.CSVPath == "" {
		errors = append(errors, "CSV path cannot be empty when using csv backend")
	}

	if c.Backend == "sqlite" {
		if c.SQLitePath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			// Check if directory exists or can be created
			dir := filepath.Dir(c.SQLitePath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if c.LoadPolicy != "skip" && c.LoadPolicy != "strict" {
		errors = append(errors, fmt.Sprintf("invalid load policy '%s': must be 'skip' or 'strict'", c.LoadPolicy))
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	isValidLevel := false
	for _, level := range validLevels {
		if c.LogLevel == level {
			isValidLevel = true
			break
		}
	}
	if !isValidLevel {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLevels))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
