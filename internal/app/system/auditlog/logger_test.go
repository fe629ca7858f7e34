package auditlog_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/attendhub/internal/app/system/auditlog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(cfg auditlog.Config) (*auditlog.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return auditlog.New(zap.New(core), cfg), logs
}

func TestLogger_NilLogger(t *testing.T) {
	// nil logger should be a no-op (not panic)
	var logger *auditlog.Logger
	ctx := context.Background()
	req := httptest.NewRequest("GET", "/", nil)

	logger.Log(ctx, auditlog.Event{EventType: "test"})
	logger.LoginSuccess(ctx, req, "alex@company.com", "employee")
	logger.Logout(ctx, req, "")
}

func TestLogger_ConfigOff(t *testing.T) {
	logger, logs := newObserved(auditlog.Config{Auth: "off", Admin: "off"})
	req := httptest.NewRequest("POST", "/login", nil)

	logger.LoginSuccess(context.Background(), req, "alex@company.com", "employee")
	logger.GeofenceUpdated(context.Background(), req, "maria@company.com", "HQ")

	if logs.Len() != 0 {
		t.Errorf("expected no entries when config is 'off', got %d", logs.Len())
	}
}

func TestLogger_PerCategory(t *testing.T) {
	logger, logs := newObserved(auditlog.Config{Auth: "log", Admin: "off"})
	req := httptest.NewRequest("POST", "/login", nil)

	logger.LoginSuccess(context.Background(), req, "alex@company.com", "employee")
	logger.EmployeeCreated(context.Background(), req, "maria@company.com", "e-1", "New Hire")

	if logs.Len() != 1 {
		t.Fatalf("entries = %d, want 1 (auth only)", logs.Len())
	}
	fields := logs.All()[0].ContextMap()
	if fields["event_type"] != auditlog.EventLoginSuccess {
		t.Errorf("event_type = %v", fields["event_type"])
	}
	if fields["audit"] != true || fields["role"] != "employee" || fields["login_id"] != "alex@company.com" {
		t.Errorf("fields = %v", fields)
	}
}

func TestLogger_FailuresLogAtWarn(t *testing.T) {
	logger, logs := newObserved(auditlog.Config{Auth: "all", Admin: "all"})
	req := httptest.NewRequest("POST", "/login", nil)

	logger.LoginFailed(context.Background(), req, "nobody", "unknown login id")
	logger.LoginRateLimited(context.Background(), req, "nobody")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	for _, e := range entries {
		if e.Level != zapcore.WarnLevel {
			t.Errorf("level = %v, want warn", e.Level)
		}
	}
	if got := entries[0].ContextMap()["failure_reason"]; got != "unknown login id" {
		t.Errorf("failure_reason = %v", got)
	}
}

func TestLogger_AdminDetails(t *testing.T) {
	logger, logs := newObserved(auditlog.Config{Auth: "all", Admin: "all"})
	req := httptest.NewRequest("POST", "/admin-dashboard/notifications/send", nil)

	logger.NotificationSent(context.Background(), req, "maria@company.com", "n-9", "all")

	fields := logs.All()[0].ContextMap()
	if fields["detail_notification_id"] != "n-9" || fields["detail_recipients"] != "all" {
		t.Errorf("fields = %v", fields)
	}
	if fields["category"] != auditlog.CategoryAdmin {
		t.Errorf("category = %v", fields["category"])
	}
}
