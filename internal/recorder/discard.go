package recorder

import (
	"time"

	"github.com/misbah7172/Custom-Browser/internal/models"
)

// Discard is a VisitStore that keeps nothing. Incognito sessions record
// through it, so navigation works the same but leaves no visit log behind.
var Discard VisitStore = discardStore{}

type discardStore struct{}

func (discardStore) AppendVisit(*models.VisitRecord) error { return nil }

func (discardStore) ListVisits() ([]models.VisitRecord, error) { return nil, nil }

func (discardStore) RecentVisits(int) ([]models.VisitRecord, error) { return nil, nil }

func (discardStore) LatestVisitTime() (time.Time, error) { return time.Time{}, nil }

func (discardStore) ClearVisits() (int64, error) { return 0, nil }
