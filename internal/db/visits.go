package db

import (
	"database/sql"
	"time"

	"github.com/misbah7172/Custom-Browser/internal/models"
)

// AppendVisit stores a visit record and sets its ID.
// The insert runs in its own transaction so a record is either fully written or not at all.
func (db *DB) AppendVisit(record *models.VisitRecord) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	tx, err := db.conn.Begin()
	if err != nil {
		return &StorageError{Op: "begin transaction", Err: err}
	}
	defer tx.Rollback()

	res, err := tx.Exec(insertVisit,
		record.URL,
		nullString(record.Title),
		nullString(record.Address),
		nullString(record.Location),
		formatTimestamp(record.Timestamp),
	)
	if err != nil {
		return &StorageError{Op: "append visit", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return &StorageError{Op: "read visit id", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &StorageError{Op: "commit visit", Err: err}
	}

	record.ID = id
	return nil
}

// ListVisits returns the whole visit log in insertion order
func (db *DB) ListVisits() ([]models.VisitRecord, error) {
	rows, err := db.conn.Query(selectVisits)
	if err != nil {
		return nil, &StorageError{Op: "query visits", Err: err}
	}
	defer rows.Close()

	return scanVisits(rows)
}

// RecentVisits returns the newest limit records, oldest first
func (db *DB) RecentVisits(limit int) ([]models.VisitRecord, error) {
	if limit <= 0 {
		return db.ListVisits()
	}

	rows, err := db.conn.Query(selectRecentVisits, limit)
	if err != nil {
		return nil, &StorageError{Op: "query recent visits", Err: err}
	}
	defer rows.Close()

	return scanVisits(rows)
}

// LatestVisitTime returns the timestamp of the last stored visit (zero if none)
func (db *DB) LatestVisitTime() (time.Time, error) {
	var ts string
	err := db.conn.QueryRow(selectLatestVisitTime).Scan(&ts)
	if err == sql.ErrNoRows {
		return time.Time{}, nil // Empty log
	}
	if err != nil {
		return time.Time{}, &StorageError{Op: "query latest visit", Err: err}
	}

	t, err := parseTimestamp(ts)
	if err != nil {
		return time.Time{}, &StorageError{Op: "parse latest visit", Err: err}
	}
	return t, nil
}

// ClearVisits deletes every visit record and returns how many were removed
func (db *DB) ClearVisits() (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	res, err := db.conn.Exec(deleteVisits)
	if err != nil {
		return 0, &StorageError{Op: "clear visits", Err: err}
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, &StorageError{Op: "count cleared visits", Err: err}
	}
	return n, nil
}

// scanVisits scans rows into VisitRecord structs
func scanVisits(rows *sql.Rows) ([]models.VisitRecord, error) {
	var visits []models.VisitRecord
	for rows.Next() {
		var v models.VisitRecord
		var title, address, location sql.NullString
		var visitTime string
		if err := rows.Scan(&v.ID, &v.URL, &title, &address, &location, &visitTime); err != nil {
			return nil, &StorageError{Op: "scan visit", Err: err}
		}
		v.Title = stringPtr(title)
		v.Address = stringPtr(address)
		v.Location = stringPtr(location)
		v.Timestamp, _ = parseTimestamp(visitTime)
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "iterate visits", Err: err}
	}
	return visits, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
