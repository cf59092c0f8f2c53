package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Autosave backend selection
	DataBackend  string
	SQLiteDBPath string
	PostgresURL  string

	// Snapshots
	SnapshotsDir string

	// Paycheck cadence; an empty start date disables auto paychecks
	PaycheckStartDate    string
	PaycheckIntervalDays int

	// Projection
	LowBalanceThreshold string
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8081"),

		DataBackend:  getEnv("DATA_BACKEND", "memory"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/stack.db"),
		PostgresURL:  getEnv("POSTGRES_URL", ""),

		SnapshotsDir: getEnv("SNAPSHOTS_DIR", "./data/saves"),

		PaycheckStartDate:    getEnv("PAYCHECK_START_DATE", ""),
		PaycheckIntervalDays: getEnvInt("PAYCHECK_INTERVAL_DAYS", 14),

		LowBalanceThreshold: getEnv("LOW_BALANCE_THRESHOLD", "1000"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate data backend
	validBackends := []string{"memory", "sqlite", "postgres"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	// Validate SQLite configuration if backend is sqlite
	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	// Validate Postgres configuration if backend is postgres
	if c.DataBackend == "postgres" {
		if c.PostgresURL == "" {
			errors = append(errors, "Postgres URL is required when using postgres backend")
		} else if parsedURL, err := url.Parse(c.PostgresURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid Postgres URL '%s': %v", c.PostgresURL, err))
		} else if parsedURL.Scheme != "postgres" && parsedURL.Scheme != "postgresql" {
			errors = append(errors, fmt.Sprintf("invalid Postgres URL scheme '%s': must be 'postgres' or 'postgresql'", parsedURL.Scheme))
		}
	}

	// Validate snapshots directory
	if c.SnapshotsDir == "" {
		errors = append(errors, "snapshots directory cannot be empty")
	}

	// Validate paycheck cadence
	if c.PaycheckStartDate != "" {
		if _, err := time.Parse("2006-01-02", c.PaycheckStartDate); err != nil {
			errors = append(errors, fmt.Sprintf("invalid paycheck start date '%s': must be YYYY-MM-DD", c.PaycheckStartDate))
		}
	}
	if c.PaycheckIntervalDays < 1 {
		errors = append(errors, fmt.Sprintf("invalid paycheck interval %d: must be at least 1 day", c.PaycheckIntervalDays))
	}

	// Validate threshold
	if _, err := strconv.ParseFloat(strings.ReplaceAll(c.LowBalanceThreshold, ",", "."), 64); err != nil {
		errors = append(errors, fmt.Sprintf("invalid low balance threshold '%s': must be a number", c.LowBalanceThreshold))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// PaycheckStart returns the configured cadence start, or nil when unset.
func (c *Config) PaycheckStart() *time.Time {
	if c.PaycheckStartDate == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", c.PaycheckStartDate)
	if err != nil {
		return nil
	}
	local := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
	return &local
}

// PaycheckInterval returns the cadence interval as a duration.
func (c *Config) PaycheckInterval() time.Duration {
	return time.Duration(c.PaycheckIntervalDays) * 24 * time.Hour
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
