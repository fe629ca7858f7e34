// internal/app/store/notifications/notificationstore.go
package notificationstore

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dalemusser/attendhub/internal/domain/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned by MarkRead for an unknown ID.
var ErrNotFound = errors.New("notification not found")

// Store is the admin notification feed, newest first. Sending a
// notification only records it.
type Store struct {
	mu    sync.RWMutex
	items []models.Notification
	now   func() time.Time
}

// New returns a feed seeded with the demo notifications. now may be nil.
func New(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	t := now()
	return &Store{
		now: now,
		items: []models.Notification{
			{ID: uuid.NewString(), Type: models.NotificationAlert, Title: "Leave request", Message: "New leave request from Sarah Miller", Recipients: models.RecipientsIndividual, Priority: "normal", CreatedAt: t.Add(-10 * time.Minute)},
			{ID: uuid.NewString(), Type: models.NotificationInfo, Title: "Report ready", Message: "Monthly attendance report is ready", Recipients: models.RecipientsAll, Priority: "normal", CreatedAt: t.Add(-time.Hour)},
			{ID: uuid.NewString(), Type: models.NotificationWarning, Title: "Geofence", Message: "David Chen is outside geofence boundary", Recipients: models.RecipientsIndividual, EmployeeID: "emp-3", Priority: "high", CreatedAt: t.Add(-2 * time.Hour), Read: true},
		},
	}
}

// List returns every notification, newest first.
func (s *Store) List(ctx context.Context) []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Notification(nil), s.items...)
}

// Recent returns up to n notifications.
func (s *Store) Recent(ctx context.Context, n int) []models.Notification {
	all := s.List(ctx)
	if n > 0 && n < len(all) {
		all = all[:n]
	}
	return all
}

// UnreadCount returns how many notifications are unread.
func (s *Store) UnreadCount(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := 0
	for _, n := range s.items {
		if !n.Read {
			c++
		}
	}
	return c
}

// Send records n as given. ID and CreatedAt are assigned here.
func (s *Store) Send(ctx context.Context, n models.Notification) models.Notification {
	n.ID = uuid.NewString()
	n.CreatedAt = s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]models.Notification{n}, s.items...)
	return n
}

// MarkRead flags one notification as read.
func (s *Store) MarkRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Read = true
			return nil
		}
	}
	return ErrNotFound
}
