// Package config handles application configuration from environment variables
package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Fixed client limits. These are not read from the environment.
const (
	// MaxDownloadSize is advisory only; nothing enforces it
	MaxDownloadSize = 500 * 1024 * 1024
	DownloadTimeout = 60 * time.Second
	MaxHistoryCount = 20
	// CacheExpiry is declared only; no eviction path uses it
	CacheExpiry       = 24 * time.Hour
	HistoryStorageKey = "downloadHistory"
)

// Config represents the application configuration
type Config struct {
	APIBaseURL           string        `env:"API_BASE_URL" envDefault:"http://localhost:8000"`
	ServerPort           string        `env:"SERVER_PORT" envDefault:"8080"`
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`
	DatabasePath         string        `env:"DATABASE_PATH" envDefault:"video-downloader.db"`
	MediaLibraryPath     string        `env:"MEDIA_LIBRARY_PATH" envDefault:"/media/videos"`
	ReachabilityInterval time.Duration `env:"REACHABILITY_INTERVAL" envDefault:"30s"`
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	base, err := url.Parse(c.APIBaseURL)
	if err != nil || base.Host == "" || (base.Scheme != "http" && base.Scheme != "https") {
		return fmt.Errorf("API_BASE_URL must be an absolute http(s) URL, got: %q", c.APIBaseURL)
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")

	validLogLevels := []string{"debug", "info", "warn", "error"}
	logLevel := strings.ToLower(c.LogLevel)
	isValidLevel := false
	for _, level := range validLogLevels {
		if logLevel == level {
			isValidLevel = true
			break
		}
	}
	if !isValidLevel {
		return fmt.Errorf("invalid log level %q, must be one of: %v", c.LogLevel, validLogLevels)
	}

	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH cannot be empty")
	}

	if c.MediaLibraryPath == "" {
		return fmt.Errorf("MEDIA_LIBRARY_PATH cannot be empty")
	}
	cleanPath := filepath.Clean(c.MediaLibraryPath)
	if !filepath.IsAbs(cleanPath) {
		return fmt.Errorf("MEDIA_LIBRARY_PATH must be an absolute path, got: %s", c.MediaLibraryPath)
	}
	c.MediaLibraryPath = cleanPath

	if c.ReachabilityInterval <= 0 {
		return fmt.Errorf("REACHABILITY_INTERVAL must be positive, got: %s", c.ReachabilityInterval)
	}

	return nil
}
