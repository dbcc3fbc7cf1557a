package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// connParams keeps readers unblocked while a write is in flight
const connParams = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// dataSourceName builds the file: URI for dbPath. The path is percent-encoded
// so a '?' or '#' in it is not read as the start of the query or fragment.
// url.URL.String is not used because it renders relative paths as "file://dir/...",
// which SQLite parses as an authority.
func dataSourceName(dbPath string) string {
	path := (&url.URL{Path: filepath.ToSlash(dbPath)}).EscapedPath()
	return "file:" + path + "?" + connParams
}

// DB wraps the SQLite database connection.
// Mutations are serialized through mu; reads go straight to the pool.
type DB struct {
	conn *sql.DB
	mu   sync.Mutex
}

// New opens the database at dbPath, creating the file and schema on first use.
// Calling it against an existing database leaves its contents unchanged.
func New(dbPath string) (*DB, error) {
	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, &StorageError{Op: "create database directory", Err: err}
		}
	}

	conn, err := sql.Open("sqlite", dataSourceName(dbPath))
	if err != nil {
		return nil, &StorageError{Op: "open database", Err: err}
	}

	// Initialize visit log
	if _, err := conn.Exec(createVisitsTable); err != nil {
		conn.Close()
		return nil, &StorageError{Op: "create visits schema", Err: err}
	}

	// Initialize firewall table
	if _, err := conn.Exec(createFirewallTable); err != nil {
		conn.Close()
		return nil, &StorageError{Op: "create firewall schema", Err: err}
	}

	if _, err := conn.Exec(createBookmarksTable); err != nil {
		conn.Close()
		return nil, &StorageError{Op: "create bookmarks schema", Err: err}
	}

	if _, err := conn.Exec(createSettingsTable); err != nil {
		conn.Close()
		return nil, &StorageError{Op: "create settings schema", Err: err}
	}

	return &DB{conn: conn}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// DefaultPath returns the database location under the user's home directory
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".browser_tracker.db"), nil
}

// formatTimestamp is the on-disk representation of visit times
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTimestamp parses SQLite timestamp formats
func parseTimestamp(ts string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
		time.RFC3339,
	}
	for _, format := range formats {
		if t, err := time.Parse(format, ts); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp: %s", ts)
}
