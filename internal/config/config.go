// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/misbah7172/Custom-Browser/internal/db"
)

// Prefix is prepended to every environment variable name
const Prefix = "BROWSER"

// Config holds all application configuration.
type Config struct {
	DBPath         string        `envconfig:"DB_PATH"`
	SearchURL      string        `envconfig:"SEARCH_URL" default:"https://www.google.com/search?q=%s"`
	FetchTimeout   time.Duration `envconfig:"FETCH_TIMEOUT" default:"10s"`
	ResolveTimeout time.Duration `envconfig:"RESOLVE_TIMEOUT" default:"5s"`
	VisitLimit     int           `envconfig:"VISIT_LIMIT" default:"20"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFile        string        `envconfig:"LOG_FILE"`
	UserAgent      string        `envconfig:"USER_AGENT"`
	Incognito      bool          `envconfig:"INCOGNITO" default:"false"`
}

// Load reads .env (if present) and then the BROWSER_* environment.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.DBPath == "" {
		path, err := db.DefaultPath()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = path
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot check by itself
func (c *Config) Validate() error {
	if !strings.Contains(c.SearchURL, "%s") {
		return fmt.Errorf("invalid config: %s_SEARCH_URL must contain %%s, got %q", Prefix, c.SearchURL)
	}
	if c.VisitLimit < 0 {
		return fmt.Errorf("invalid config: %s_VISIT_LIMIT must not be negative, got %d", Prefix, c.VisitLimit)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid config: %s_LOG_LEVEL: %w", Prefix, err)
	}
	return nil
}

// Level returns the parsed log level, info when unparseable
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// LogPath returns the log file location. Unless set explicitly it sits next
// to the database with a .log extension.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return strings.TrimSuffix(c.DBPath, filepath.Ext(c.DBPath)) + ".log"
}
