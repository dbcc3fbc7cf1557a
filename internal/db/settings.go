package db

import (
	"database/sql"
	"errors"

	"github.com/misbah7172/Custom-Browser/internal/models"
)

// Setting keys
const (
	SettingSearchURL  = "search_url"
	SettingDoNotTrack = "do_not_track"
)

// SetSetting saves a setting to the database
func (db *DB) SetSetting(key, value string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.conn.Exec(upsertSetting, key, value); err != nil {
		return &StorageError{Op: "save setting", Err: err}
	}
	return nil
}

// GetSetting retrieves a setting from the database.
// A missing key returns an empty string.
func (db *DB) GetSetting(key string) (string, error) {
	var value string
	err := db.conn.QueryRow(selectSetting, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", &StorageError{Op: "get setting", Err: err}
	}
	return value, nil
}

// DeleteSetting removes a setting from the database
func (db *DB) DeleteSetting(key string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.conn.Exec(deleteSetting, key); err != nil {
		return &StorageError{Op: "delete setting", Err: err}
	}
	return nil
}

// ListSettings returns every stored setting ordered by key
func (db *DB) ListSettings() ([]models.Setting, error) {
	rows, err := db.conn.Query(selectSettings)
	if err != nil {
		return nil, &StorageError{Op: "query settings", Err: err}
	}
	defer rows.Close()

	var settings []models.Setting
	for rows.Next() {
		var s models.Setting
		var updated string
		if err := rows.Scan(&s.Key, &s.Value, &updated); err != nil {
			return nil, &StorageError{Op: "scan setting", Err: err}
		}
		s.UpdatedAt, _ = parseTimestamp(updated)
		settings = append(settings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "iterate settings", Err: err}
	}
	return settings, nil
}
