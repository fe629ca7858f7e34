// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"

	"github.com/dalemusser/attendhub/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// Event categories.
const (
	CategoryAuth  = "auth"
	CategoryAdmin = "admin"
)

// Event types.
const (
	EventLoginSuccess         = "login_success"
	EventLoginFailedBadCreds  = "login_failed_bad_credentials"
	EventLoginFailedRateLimit = "login_failed_rate_limit"
	EventLogout               = "logout"

	EventEmployeeCreated  = "employee_created"
	EventNotificationSent = "notification_sent"
	EventGeofenceUpdated  = "geofence_updated"
	EventSettingsUpdated  = "settings_updated"
)

// Modes for Config fields.
const (
	ModeAll = "all"
	ModeLog = "log"
	ModeOff = "off"
)

// Event is one audit record.
type Event struct {
	Category      string
	EventType     string
	LoginID       string // the login ID the event is about, or the actor
	Role          string
	IP            string
	UserAgent     string
	Success       bool
	FailureReason string
	Details       map[string]string
}

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for authentication events (login, logout).
	// Values: "all", "log" (both write structured logs), "off" (disabled)
	Auth string
	// Admin controls logging for admin dashboard actions.
	Admin string
}

// Logger writes audit events as structured zap entries tagged audit=true.
type Logger struct {
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(zapLog *zap.Logger, config Config) *Logger {
	return &Logger{zapLog: zapLog, config: config}
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
func (l *Logger) Log(ctx context.Context, event Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case CategoryAuth:
		setting = l.config.Auth
	case CategoryAdmin:
		setting = l.config.Admin
	default:
		setting = ModeAll
	}

	if setting == ModeOff {
		return
	}
	l.logToZap(event)
}

func (l *Logger) logToZap(event Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.LoginID != "" {
		fields = append(fields, zap.String("login_id", event.LoginID))
	}
	if event.Role != "" {
		fields = append(fields, zap.String("role", event.Role))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

func base(r *http.Request, category, eventType, loginID string, success bool) Event {
	return Event{
		Category:  category,
		EventType: eventType,
		LoginID:   loginID,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   success,
	}
}

// --- Authentication Events ---

// LoginSuccess logs a successful login.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, loginID, role string) {
	e := base(r, CategoryAuth, EventLoginSuccess, loginID, true)
	e.Role = role
	l.Log(ctx, e)
}

// LoginFailed logs a login rejected for bad credentials. The reason is kept
// in the log only; the user always sees the same generic message.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, attemptedLoginID, reason string) {
	e := base(r, CategoryAuth, EventLoginFailedBadCreds, attemptedLoginID, false)
	e.FailureReason = reason
	l.Log(ctx, e)
}

// LoginRateLimited logs a login blocked by the rate limiter.
func (l *Logger) LoginRateLimited(ctx context.Context, r *http.Request, attemptedLoginID string) {
	e := base(r, CategoryAuth, EventLoginFailedRateLimit, attemptedLoginID, false)
	e.FailureReason = "rate limited"
	l.Log(ctx, e)
}

// Logout logs a logout. loginID is empty when the browser was already
// logged out.
func (l *Logger) Logout(ctx context.Context, r *http.Request, loginID string) {
	l.Log(ctx, base(r, CategoryAuth, EventLogout, loginID, true))
}

// --- Admin Events ---

// EmployeeCreated logs an employee added from the admin dashboard.
func (l *Logger) EmployeeCreated(ctx context.Context, r *http.Request, actor, employeeID, name string) {
	e := base(r, CategoryAdmin, EventEmployeeCreated, actor, true)
	e.Details = map[string]string{"employee_id": employeeID, "name": name}
	l.Log(ctx, e)
}

// NotificationSent logs a notification sent from the admin dashboard.
func (l *Logger) NotificationSent(ctx context.Context, r *http.Request, actor, notificationID, recipients string) {
	e := base(r, CategoryAdmin, EventNotificationSent, actor, true)
	e.Details = map[string]string{"notification_id": notificationID, "recipients": recipients}
	l.Log(ctx, e)
}

// GeofenceUpdated logs a geofence change.
func (l *Logger) GeofenceUpdated(ctx context.Context, r *http.Request, actor, name string) {
	e := base(r, CategoryAdmin, EventGeofenceUpdated, actor, true)
	e.Details = map[string]string{"name": name}
	l.Log(ctx, e)
}

// SettingsUpdated logs a change to workplace settings.
func (l *Logger) SettingsUpdated(ctx context.Context, r *http.Request, actor string) {
	l.Log(ctx, base(r, CategoryAdmin, EventSettingsUpdated, actor, true))
}
