// internal/app/store/logins/loginstore.go
package loginstore

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/attendhub/internal/app/system/ratelimit"
	"github.com/dalemusser/attendhub/internal/domain/models"
)

// perLogin bounds how many records are kept for each login ID.
const perLogin = 20

// Store keeps recent successful logins in memory.
type Store struct {
	mu      sync.RWMutex
	records map[string][]models.LoginRecord // newest first
	now     func() time.Time
}

func New(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{records: make(map[string][]models.LoginRecord), now: now}
}

// Create stores rec. If CreatedAt is zero, it's set to now.
func (s *Store) Create(ctx context.Context, rec models.LoginRecord) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}
	k := strings.ToLower(rec.LoginID)

	s.mu.Lock()
	defer s.mu.Unlock()
	list := append([]models.LoginRecord{rec}, s.records[k]...)
	if len(list) > perLogin {
		list = list[:perLogin]
	}
	s.records[k] = list
}

// CreateFrom builds a LoginRecord from the HTTP request and stores it.
func (s *Store) CreateFrom(ctx context.Context, r *http.Request, loginID string) {
	s.Create(ctx, models.LoginRecord{
		LoginID:   loginID,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
	})
}

// Last returns the most recent login for loginID.
func (s *Store) Last(ctx context.Context, loginID string) (models.LoginRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.records[strings.ToLower(loginID)]
	if len(list) == 0 {
		return models.LoginRecord{}, false
	}
	return list[0], true
}

// Previous returns the login before the most recent one. Dashboards show it
// as "last login" since the most recent one is the current session.
func (s *Store) Previous(ctx context.Context, loginID string) (models.LoginRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.records[strings.ToLower(loginID)]
	if len(list) < 2 {
		return models.LoginRecord{}, false
	}
	return list[1], true
}

// PruneBefore drops records created before cutoff and returns how many
// were removed. Login IDs left with no records are forgotten.
func (s *Store) PruneBefore(ctx context.Context, cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for k, list := range s.records {
		kept := list[:0]
		for _, rec := range list {
			if rec.CreatedAt.Before(cutoff) {
				removed++
				continue
			}
			kept = append(kept, rec)
		}
		if len(kept) == 0 {
			delete(s.records, k)
			continue
		}
		s.records[k] = kept
	}
	return removed
}
