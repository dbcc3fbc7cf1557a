package config

import (
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("BROWSER_DB_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.DBPath)
	assert.Equal(t, "https://www.google.com/search?q=%s", cfg.SearchURL)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 5*time.Second, cfg.ResolveTimeout)
	assert.Equal(t, 20, cfg.VisitLimit)
	assert.Equal(t, log.InfoLevel, cfg.Level())
	assert.False(t, cfg.Incognito)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BROWSER_DB_PATH", "/tmp/tracker/visits.db")
	t.Setenv("BROWSER_SEARCH_URL", "https://duckduckgo.com/?q=%s")
	t.Setenv("BROWSER_FETCH_TIMEOUT", "3s")
	t.Setenv("BROWSER_VISIT_LIMIT", "50")
	t.Setenv("BROWSER_LOG_LEVEL", "debug")
	t.Setenv("BROWSER_USER_AGENT", "tester/1.0")
	t.Setenv("BROWSER_INCOGNITO", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/tracker/visits.db", cfg.DBPath)
	assert.Equal(t, "https://duckduckgo.com/?q=%s", cfg.SearchURL)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 50, cfg.VisitLimit)
	assert.Equal(t, log.DebugLevel, cfg.Level())
	assert.Equal(t, "tester/1.0", cfg.UserAgent)
	assert.True(t, cfg.Incognito)
	assert.Equal(t, "/tmp/tracker/visits.log", cfg.LogPath())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "search url without placeholder", key: "BROWSER_SEARCH_URL", value: "https://example.test/search"},
		{name: "negative visit limit", key: "BROWSER_VISIT_LIMIT", value: "-1"},
		{name: "unparseable timeout", key: "BROWSER_FETCH_TIMEOUT", value: "soon"},
		{name: "unknown log level", key: "BROWSER_LOG_LEVEL", value: "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BROWSER_DB_PATH", "/tmp/browser.db")
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLogPath(t *testing.T) {
	cfg := &Config{DBPath: "/home/u/.browser_tracker.db"}
	assert.Equal(t, "/home/u/.browser_tracker.log", cfg.LogPath())

	cfg.LogFile = "/var/log/browser.log"
	assert.Equal(t, "/var/log/browser.log", cfg.LogPath())
}
