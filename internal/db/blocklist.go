package db

import (
	"github.com/misbah7172/Custom-Browser/internal/models"
)

// AddBlock adds a domain to the blocklist. Blocking an already blocked domain is a no-op.
// The domain is stored as given; callers normalize it first.
func (db *DB) AddBlock(domain, reason string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.conn.Exec(insertBlock, domain, reason); err != nil {
		return &StorageError{Op: "block domain", Err: err}
	}
	return nil
}

// RemoveBlock removes a domain from the blocklist. Unknown domains are ignored.
func (db *DB) RemoveBlock(domain string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.conn.Exec(deleteBlock, domain); err != nil {
		return &StorageError{Op: "unblock domain", Err: err}
	}
	return nil
}

// ListBlocked returns every blocklist entry ordered by domain
func (db *DB) ListBlocked() ([]models.BlockEntry, error) {
	rows, err := db.conn.Query(selectBlocked)
	if err != nil {
		return nil, &StorageError{Op: "query blocked domains", Err: err}
	}
	defer rows.Close()

	var entries []models.BlockEntry
	for rows.Next() {
		var e models.BlockEntry
		var blockedAt string
		if err := rows.Scan(&e.Domain, &e.Reason, &blockedAt); err != nil {
			return nil, &StorageError{Op: "scan blocked domain", Err: err}
		}
		e.BlockedAt, _ = parseTimestamp(blockedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "iterate blocked domains", Err: err}
	}
	return entries, nil
}

// IsBlocked reports whether domain has an exact blocklist entry
func (db *DB) IsBlocked(domain string) (bool, error) {
	var count int
	if err := db.conn.QueryRow(selectIsBlocked, domain).Scan(&count); err != nil {
		return false, &StorageError{Op: "check blocked domain", Err: err}
	}
	return count > 0, nil
}
