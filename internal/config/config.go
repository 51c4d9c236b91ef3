// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// DBPath is the SQLite database file location. Empty means the
	// platform default under the user data directory.
	DBPath string
	// Timezone resolves local day boundaries for streaks and the daily
	// question. Default: the system local zone.
	Timezone string
	// OpenAIKey enables AI feedback. Empty falls back to rule-based
	// feedback.
	OpenAIKey string
	// FeedbackModel overrides the default chat model.
	FeedbackModel string
}

// Load reads a .env file when present, then the environment.
func Load() (*Config, error) {
	// Absence of a .env file is the normal case in production.
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:        getEnv("UNDO_DB", ""),
		Timezone:      getEnv("APP_TZ", ""),
		OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
		FeedbackModel: getEnv("UNDO_FEEDBACK_MODEL", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the fields that can be wrong rather than just absent.
func (c *Config) Validate() error {
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("APP_TZ %q: %w", c.Timezone, err)
		}
	}
	return nil
}

// Location resolves the configured timezone, defaulting to local.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return fallback
}
