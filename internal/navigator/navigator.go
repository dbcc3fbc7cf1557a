// Package navigator implements browser-like back/forward history for one session.
//
// The session is an ordered list of visits with a cursor. Opening a page while
// the cursor is behind the end drops the forward entries before appending, the
// same way a browser forgets the pages you backed out of. Nothing here is
// persisted; the durable visit log lives in the store and survives restarts,
// the cursor does not.
package navigator

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/misbah7172/Custom-Browser/internal/models"
	"github.com/misbah7172/Custom-Browser/internal/recorder"
)

// ErrNoHistory is returned when moving past either end of the session
var ErrNoHistory = errors.New("no history")

// Visitor records a navigation and reports whether it was accepted
type Visitor interface {
	RecordNavigation(ctx context.Context, rawURL string, fetch models.FetchOutcome) (recorder.Outcome, error)
}

// Navigator is the session history state machine
type Navigator struct {
	visitor Visitor
	logger  *log.Logger

	mu       sync.Mutex
	entries  []models.VisitRecord
	position int // -1 while entries is empty
}

// New creates an empty session
func New(visitor Visitor, logger *log.Logger) *Navigator {
	return &Navigator{
		visitor:  visitor,
		logger:   logger,
		position: -1,
	}
}

// Navigate records a visit to rawURL and makes it the current entry.
// A denied navigation leaves the session unchanged. Repeated URLs are not
// de-duplicated: every accepted navigation becomes its own entry.
//
// The session lock is not held while the visit is recorded, so the cursor can
// be read or moved during a slow lookup. The forward branch is dropped relative
// to wherever the cursor is when the record completes.
func (n *Navigator) Navigate(ctx context.Context, rawURL string, fetch models.FetchOutcome) (recorder.Outcome, error) {
	out, err := n.visitor.RecordNavigation(ctx, rawURL, fetch)
	if err != nil {
		return out, err
	}
	if out.Denied() {
		return out, nil
	}

	n.mu.Lock()
	n.entries = append(n.entries[:n.position+1], *out.Visit)
	n.position = len(n.entries) - 1
	position, count := n.position, len(n.entries)
	n.mu.Unlock()

	if n.logger != nil {
		n.logger.Debug("Session advanced", "url", rawURL, "position", position, "entries", count)
	}
	return out, nil
}

// Back moves the cursor one entry back and returns that entry
func (n *Navigator) Back() (models.VisitRecord, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.position <= 0 {
		return models.VisitRecord{}, ErrNoHistory
	}
	n.position--
	return n.entries[n.position], nil
}

// Forward moves the cursor one entry forward and returns that entry
func (n *Navigator) Forward() (models.VisitRecord, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.position >= len(n.entries)-1 {
		return models.VisitRecord{}, ErrNoHistory
	}
	n.position++
	return n.entries[n.position], nil
}

// Current returns the entry under the cursor, false when the session is empty
func (n *Navigator) Current() (models.VisitRecord, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if len(n.entries) == 0 {
		return models.VisitRecord{}, false
	}
	return n.entries[n.position], true
}

// CanGoBack reports whether Back would succeed
func (n *Navigator) CanGoBack() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.position > 0
}

// CanGoForward reports whether Forward would succeed
func (n *Navigator) CanGoForward() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.position < len(n.entries)-1
}

// Entries returns a copy of the session entries
func (n *Navigator) Entries() []models.VisitRecord {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]models.VisitRecord, len(n.entries))
	copy(out, n.entries)
	return out
}

// Position returns the cursor index, -1 for an empty session
func (n *Navigator) Position() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.position
}

// Len returns the number of session entries
func (n *Navigator) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.entries)
}
