// internal/app/store/activity/store.go
package activity

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/attendhub/internal/domain/models"
	"github.com/google/uuid"
)

// maxEntries bounds the feed; older entries are dropped.
const maxEntries = 200

// Store is the admin "recent activity" feed, newest first.
type Store struct {
	mu      sync.RWMutex
	entries []models.Activity
	now     func() time.Time
}

// New creates a feed seeded with the demo history. now may be nil.
func New(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	t := now()
	return &Store{
		now: now,
		entries: []models.Activity{
			{ID: uuid.NewString(), Action: "Updated geofence boundary", Actor: "You", At: t.Add(-30 * time.Minute)},
			{ID: uuid.NewString(), Action: "Sent notification to Engineering team", Actor: "You", At: t.Add(-time.Hour)},
			{ID: uuid.NewString(), Action: "Added new employee: James Wilson", Actor: "You", At: t.Add(-2 * time.Hour)},
			{ID: uuid.NewString(), Action: "Generated monthly attendance report", Actor: "System", At: t.Add(-24 * time.Hour)},
		},
	}
}

// Record prepends an entry and returns it.
func (s *Store) Record(ctx context.Context, action, actor string) models.Activity {
	a := models.Activity{ID: uuid.NewString(), Action: action, Actor: actor, At: s.now()}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append([]models.Activity{a}, s.entries...)
	if len(s.entries) > maxEntries {
		s.entries = s.entries[:maxEntries]
	}
	return a
}

// Recent returns up to n entries, newest first. n <= 0 returns all.
func (s *Store) Recent(ctx context.Context, n int) []models.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n <= 0 || n > len(s.entries) {
		n = len(s.entries)
	}
	return append([]models.Activity(nil), s.entries[:n]...)
}

// PruneBefore drops entries older than cutoff and returns how many were
// removed.
func (s *Store) PruneBefore(ctx context.Context, cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	for _, a := range s.entries {
		if !a.At.Before(cutoff) {
			kept = append(kept, a)
		}
	}
	removed := len(s.entries) - len(kept)
	s.entries = kept
	return removed
}
