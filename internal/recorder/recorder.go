// Package recorder turns accepted navigations into durable visit records.
package recorder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/misbah7172/Custom-Browser/internal/db"
	"github.com/misbah7172/Custom-Browser/internal/firewall"
	"github.com/misbah7172/Custom-Browser/internal/models"
)

// Resolver maps a domain to a network address.
// A resolver that never returns blocks the navigation until ctx is done.
type Resolver interface {
	Resolve(ctx context.Context, domain string) (string, error)
}

// Locator optionally enriches a visit with a location for its address
type Locator interface {
	Locate(ctx context.Context, address string) (string, error)
}

// Gate decides whether a URL may be visited
type Gate interface {
	Check(rawURL string) (firewall.Decision, error)
}

// VisitStore is the durable visit log
type VisitStore interface {
	AppendVisit(record *models.VisitRecord) error
	ListVisits() ([]models.VisitRecord, error)
	RecentVisits(limit int) ([]models.VisitRecord, error)
	LatestVisitTime() (time.Time, error)
	ClearVisits() (int64, error)
}

// ResolutionError is a non-fatal address lookup failure
type ResolutionError struct {
	Domain string
	Err    error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("could not resolve %s: %v", e.Domain, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// Outcome is the result of one navigation attempt.
// Visit is nil exactly when the firewall denied the navigation.
type Outcome struct {
	Visit    *models.VisitRecord
	Decision firewall.Decision
	Warnings []error // resolution, location and storage failures that did not stop the navigation
}

// Denied reports whether the firewall rejected the navigation
func (o Outcome) Denied() bool { return o.Visit == nil }

// StorageWarning returns the storage failure of this navigation, if any
func (o Outcome) StorageWarning() *db.StorageError {
	for _, w := range o.Warnings {
		var se *db.StorageError
		if errors.As(w, &se) {
			return se
		}
	}
	return nil
}

// Recorder records visits after they pass the firewall
type Recorder struct {
	store    VisitStore
	gate     Gate
	resolver Resolver
	locator  Locator
	logger   *log.Logger

	mu   sync.Mutex
	now  func() time.Time
	last time.Time
}

// New creates a recorder. The last stored timestamp is loaded so new records
// never sort before existing ones.
func New(store VisitStore, gate Gate, resolver Resolver, logger *log.Logger) (*Recorder, error) {
	last, err := store.LatestVisitTime()
	if err != nil {
		return nil, err
	}

	return &Recorder{
		store:    store,
		gate:     gate,
		resolver: resolver,
		logger:   logger,
		now:      time.Now,
		last:     last,
	}, nil
}

// SetLocator wires in a geolocation collaborator. nil disables location lookups.
func (r *Recorder) SetLocator(l Locator) {
	r.locator = l
}

// SetClock replaces the time source
func (r *Recorder) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

// RecordNavigation runs rawURL past the firewall, resolves its domain and stores a visit.
// Only URL parsing and firewall read failures are returned as errors; resolution and
// storage failures are reported in Outcome.Warnings and the visit is still returned.
func (r *Recorder) RecordNavigation(ctx context.Context, rawURL string, fetch models.FetchOutcome) (Outcome, error) {
	decision, err := r.gate.Check(rawURL)
	if err != nil {
		return Outcome{}, err
	}
	if decision.Denied() {
		return Outcome{Decision: decision}, nil
	}

	out := Outcome{Decision: decision}

	record := models.VisitRecord{
		URL:       rawURL,
		Title:     fetch.TitlePtr(),
		Timestamp: r.timestamp(),
	}

	address, err := r.resolver.Resolve(ctx, decision.Domain)
	if err != nil {
		resErr := &ResolutionError{Domain: decision.Domain, Err: err}
		out.Warnings = append(out.Warnings, resErr)
		if r.logger != nil {
			r.logger.Warn("Address resolution failed", "domain", decision.Domain, "err", err)
		}
	} else {
		record.Address = &address
	}

	if r.locator != nil && record.Address != nil {
		location, err := r.locator.Locate(ctx, *record.Address)
		if err != nil {
			out.Warnings = append(out.Warnings, fmt.Errorf("failed to locate %s: %w", *record.Address, err))
			if r.logger != nil {
				r.logger.Warn("Location lookup failed", "address", *record.Address, "err", err)
			}
		} else if location != "" {
			record.Location = &location
		}
	}

	if err := r.store.AppendVisit(&record); err != nil {
		out.Warnings = append(out.Warnings, err)
		if r.logger != nil {
			r.logger.Error("Visit not persisted", "url", rawURL, "err", err)
		}
	} else if r.logger != nil {
		r.logger.Debug("Visit recorded", "id", record.ID, "url", rawURL, "address", record.AddressOr(""))
	}

	out.Visit = &record
	return out, nil
}

// ListVisitHistory returns the durable visit log in insertion order
func (r *Recorder) ListVisitHistory() ([]models.VisitRecord, error) {
	return r.store.ListVisits()
}

// RecentVisits returns the newest limit visits in insertion order
func (r *Recorder) RecentVisits(limit int) ([]models.VisitRecord, error) {
	return r.store.RecentVisits(limit)
}

// ClearHistory deletes the durable visit log
func (r *Recorder) ClearHistory() (int64, error) {
	n, err := r.store.ClearVisits()
	if err != nil {
		return 0, err
	}
	if r.logger != nil {
		r.logger.Info("Visit history cleared", "deleted", n)
	}
	return n, nil
}

// timestamp returns the current time, never earlier than the previous record
func (r *Recorder) timestamp() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := r.now()
	if ts.Before(r.last) {
		ts = r.last
	}
	r.last = ts
	return ts
}
