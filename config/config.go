// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"roster-backend/chart"
	"roster-backend/logger"
	"roster-backend/roster"
)

// Config holds application configuration
type Config struct {
	Port     int
	Fetcher  roster.FetcherConfig
	Renderer chart.Config
	Log      logger.Config

	SendGridAPIKey string
	EmailFrom      string
}

// Load reads a .env file (unless running on Render, where the platform sets the
// environment) and then builds the Config from environment variables.
func Load() (*Config, error) {
	if os.Getenv("RENDER") == "" {
		// Missing .env is fine; the environment may already be populated.
		_ = godotenv.Load()
	}
	return FromEnv()
}

// FromEnv builds the Config from environment variables only.
func FromEnv() (*Config, error) {
	port, err := getEnvInt("PORT", 5000)
	if err != nil {
		return nil, err
	}
	maxPages, err := getEnvInt("ROSTER_MAX_PAGES", roster.DefaultMaxPages)
	if err != nil {
		return nil, err
	}
	if maxPages <= 0 {
		return nil, fmt.Errorf("ROSTER_MAX_PAGES must be greater than 0, got %d", maxPages)
	}
	timeout, err := getEnvDuration("HTTP_TIMEOUT", roster.DefaultTimeout)
	if err != nil {
		return nil, err
	}
	pretty, err := getEnvBool("LOG_PRETTY", false)
	if err != nil {
		return nil, err
	}
	logLevel := strings.ToLower(getEnv("LOG_LEVEL", "info"))
	if _, err := logger.ParseLevel(logLevel); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	return &Config{
		Port: port,
		Fetcher: roster.FetcherConfig{
			ListingURL: getEnv("ROSTER_URL", roster.DefaultListingURL),
			MaxPages:   maxPages,
			UserAgent:  getEnv("USER_AGENT", roster.DefaultUserAgent),
			Timeout:    timeout,
		},
		Renderer: chart.Config{
			Dir:      getEnv("OUTPUT_DIR", chart.DefaultDir),
			Filename: getEnv("OUTPUT_FILE", chart.DefaultFilename),
		},
		Log: logger.Config{
			Level:  logLevel,
			Pretty: pretty,
		},
		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		EmailFrom:      getEnv("EMAIL_FROM", "no-reply@roster-backend.local"),
	}, nil
}

// MailEnabled reports whether report e-mails can be sent.
func (c *Config) MailEnabled() bool {
	return c.SendGridAPIKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, value)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, value)
	}
	return d, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, value)
	}
	return b, nil
}
