// Package config loads prodtime settings from .env files and the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexanderramin/prodtime/internal/domain"
	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	DatabasePath  string
	Schedule      domain.WorkSchedule
	MinGapMinutes int
	RecalcWorkers int
	LogUseCases   bool
}

// Default values
const (
	defaultWorkStartHour = 6
	defaultWorkEndHour   = 22
	defaultMinGapMinutes = 30
	defaultRecalcWorkers = 4
)

// Load reads the first .env file found and then the environment.
// Values already present in the environment win over the file.
func Load() *Config {
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only. Unparsable or
// out-of-range values fall back to defaults.
func FromEnv() *Config {
	return &Config{
		DatabasePath: getEnvString("PRODTIME_DB", getDefaultDatabasePath()),
		Schedule: domain.WorkSchedule{
			StartHour:       getEnvInt("PRODTIME_WORK_START_HOUR", defaultWorkStartHour, 0),
			EndHour:         getEnvInt("PRODTIME_WORK_END_HOUR", defaultWorkEndHour, 1),
			IncludeWeekends: getEnvBool("PRODTIME_INCLUDE_WEEKENDS", false),
		},
		MinGapMinutes: getEnvInt("PRODTIME_MIN_GAP_MINUTES", defaultMinGapMinutes, 0),
		RecalcWorkers: getEnvInt("PRODTIME_RECALC_WORKERS", defaultRecalcWorkers, 1),
		LogUseCases:   getEnvBool("PRODTIME_LOG_USE_CASES", false),
	}
}

// Validate rejects settings that cannot produce a working calendar.
func (c *Config) Validate() error {
	return c.Schedule.Validate()
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "prodtime", ".env"))
	}
	return paths
}

func getDefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "prodtime.db"
	}
	return filepath.Join(home, ".prodtime", "prodtime.db")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer of at least min, or returns the default.
func getEnvInt(key string, defaultValue, min int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n >= min {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
