package db

import (
	"database/sql"
	"time"

	"github.com/misbah7172/Custom-Browser/internal/models"
)

// AddBookmark saves url under title. Bookmarking a saved URL again replaces its title.
func (db *DB) AddBookmark(url, title string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.conn.Exec(upsertBookmark, url, sql.NullString{String: title, Valid: title != ""}, formatTimestamp(time.Now())); err != nil {
		return &StorageError{Op: "save bookmark", Err: err}
	}
	return nil
}

// RemoveBookmark deletes the bookmark for url and reports whether there was one
func (db *DB) RemoveBookmark(url string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	res, err := db.conn.Exec(deleteBookmark, url)
	if err != nil {
		return false, &StorageError{Op: "remove bookmark", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, &StorageError{Op: "remove bookmark", Err: err}
	}
	return n > 0, nil
}

// ListBookmarks returns bookmarks ordered by title, untitled ones by URL
func (db *DB) ListBookmarks() ([]models.Bookmark, error) {
	rows, err := db.conn.Query(selectBookmarks)
	if err != nil {
		return nil, &StorageError{Op: "query bookmarks", Err: err}
	}
	defer rows.Close()

	var bookmarks []models.Bookmark
	for rows.Next() {
		var b models.Bookmark
		var added string
		if err := rows.Scan(&b.URL, &b.Title, &added); err != nil {
			return nil, &StorageError{Op: "scan bookmark", Err: err}
		}
		b.AddedAt, _ = parseTimestamp(added)
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "iterate bookmarks", Err: err}
	}
	return bookmarks, nil
}
