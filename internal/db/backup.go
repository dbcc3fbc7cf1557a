package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// BackupFilename returns "<name>-backup-<timestamp>.db" for the database at dbPath
func BackupFilename(dbPath string, at time.Time) string {
	base := strings.TrimSuffix(filepath.Base(dbPath), filepath.Ext(dbPath))
	base = strings.TrimPrefix(base, ".")
	return fmt.Sprintf("%s-backup-%s.db", base, at.Format("2006-01-02-150405"))
}

// Backup writes a consistent copy of the database to dest.
// VACUUM INTO is used instead of copying the file so pages still in the WAL are included.
func (db *DB) Backup(dest string) error {
	if _, err := os.Stat(dest); err == nil {
		return &StorageError{Op: "back up database", Err: fmt.Errorf("%s already exists", dest)}
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.conn.Exec(`VACUUM INTO ?`, dest); err != nil {
		return &StorageError{Op: "back up database", Err: err}
	}
	return nil
}
