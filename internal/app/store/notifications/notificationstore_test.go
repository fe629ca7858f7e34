package notificationstore_test

import (
	"context"
	"errors"
	"testing"

	notificationstore "github.com/dalemusser/attendhub/internal/app/store/notifications"
	"github.com/dalemusser/attendhub/internal/domain/models"
)

func TestSeededFeed(t *testing.T) {
	s := notificationstore.New(nil)
	ctx := context.Background()

	list := s.List(ctx)
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	if s.UnreadCount(ctx) != 2 {
		t.Errorf("UnreadCount = %d, want 2", s.UnreadCount(ctx))
	}
	if len(s.Recent(ctx, 2)) != 2 {
		t.Error("Recent(2) should cap")
	}
}

func TestSend(t *testing.T) {
	s := notificationstore.New(nil)
	ctx := context.Background()

	n := s.Send(ctx, models.Notification{
		Type: models.NotificationInfo, Title: "Holiday", Message: "Office closed Friday",
		Recipients: models.RecipientsDepartment, Department: "Engineering", Read: true,
	})
	if n.ID == "" || n.CreatedAt.IsZero() {
		t.Errorf("sent = %+v", n)
	}
	if got := s.List(ctx)[0]; got.ID != n.ID {
		t.Errorf("newest = %+v", got)
	}
	if s.UnreadCount(ctx) != 2 {
		t.Errorf("UnreadCount changed: %d", s.UnreadCount(ctx))
	}
}

func TestMarkRead(t *testing.T) {
	s := notificationstore.New(nil)
	ctx := context.Background()

	id := s.List(ctx)[0].ID
	if err := s.MarkRead(ctx, id); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if s.UnreadCount(ctx) != 1 {
		t.Errorf("UnreadCount = %d, want 1", s.UnreadCount(ctx))
	}
	if err := s.MarkRead(ctx, id); err != nil {
		t.Errorf("MarkRead twice: %v", err)
	}
	if err := s.MarkRead(ctx, "missing"); !errors.Is(err, notificationstore.ErrNotFound) {
		t.Errorf("missing err = %v", err)
	}
}
