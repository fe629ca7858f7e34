// internal/app/bootstrap/deps.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	accountstore "github.com/dalemusser/attendhub/internal/app/store/accounts"
	"github.com/dalemusser/attendhub/internal/app/store/activity"
	employeestore "github.com/dalemusser/attendhub/internal/app/store/employees"
	loginstore "github.com/dalemusser/attendhub/internal/app/store/logins"
	notificationstore "github.com/dalemusser/attendhub/internal/app/store/notifications"
	settingsstore "github.com/dalemusser/attendhub/internal/app/store/settings"
	workdaystore "github.com/dalemusser/attendhub/internal/app/store/workday"
	"github.com/dalemusser/attendhub/internal/app/system/auditlog"
	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"github.com/dalemusser/attendhub/internal/app/system/metrics"
	"github.com/dalemusser/attendhub/internal/app/system/ratelimit"
	"github.com/dalemusser/attendhub/internal/app/system/tasks"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Deps holds everything the handlers share for the life of the process.
type Deps struct {
	Started time.Time

	SessionMgr *auth.SessionManager
	Limiter    *ratelimit.LoginLimiter
	Metrics    *metrics.Metrics
	AuditLog   *auditlog.Logger
	Jobs       *tasks.Runner

	Accounts      *accountstore.Store
	Employees     *employeestore.Store
	Workday       *workdaystore.Store
	Notifications *notificationstore.Store
	Activity      *activity.Store
	Settings      *settingsstore.Store
	Logins        *loginstore.Store
}

// BuildDeps creates the in-memory stores and shared services. It runs as
// WAFFLE's ConnectDB hook; there is no external backend to dial. Background
// jobs are created here and started in OnReady. The result must be passed
// to Shutdown.
func BuildDeps(ctx context.Context, coreCfg *config.CoreConfig, cfg AppConfig, logger *zap.Logger) (Deps, error) {
	sessionMgr, err := auth.NewSessionManager(cfg.SessionKey, cfg.SessionName, cfg.SessionDomain, cfg.SessionMaxAge, secureCookies(coreCfg), logger)
	if err != nil {
		return Deps{}, fmt.Errorf("session manager: %w", err)
	}

	accounts, err := accountstore.New(accountstore.DefaultSeeds(), cfg.SeedPassword, cfg.BcryptCost)
	if err != nil {
		return Deps{}, fmt.Errorf("account directory: %w", err)
	}

	// Site settings own the leave allowance from here on; admins change it
	// in the settings tab.
	settings := settingsstore.New()
	initial := settings.Get(ctx)
	initial.AnnualLeaveDays = cfg.AnnualLeaveDays
	settings.Save(ctx, initial)

	deps := Deps{
		Started:    time.Now(),
		SessionMgr: sessionMgr,
		Limiter: ratelimit.NewLoginLimiterWithConfig(
			cfg.LoginRateIPLimit, cfg.LoginRateIPWindow,
			cfg.LoginRateIDLimit, cfg.LoginRateIDWindow,
		),
		Metrics:  metrics.New(),
		AuditLog: auditlog.New(logger, auditlog.Config{Auth: cfg.AuditLogAuth, Admin: cfg.AuditLogAdmin}),

		Accounts:      accounts,
		Employees:     employeestore.New(nil),
		Workday:       workdaystore.New(settings, nil),
		Notifications: notificationstore.New(nil),
		Activity:      activity.New(nil),
		Settings:      settings,
		Logins:        loginstore.New(nil),
	}
	deps.Jobs, err = tasks.NewRunner(logger, cfg.HandlerTimeout,
		tasks.RetentionJob("login-history-retention", deps.Logins, cfg.LoginHistoryRetention, cfg.RetentionInterval, nil, logger),
		tasks.RetentionJob("activity-retention", deps.Activity, cfg.ActivityRetention, cfg.RetentionInterval, nil, logger),
	)
	if err != nil {
		deps.Limiter.Close()
		return Deps{}, fmt.Errorf("background jobs: %w", err)
	}
	logger.Info("stores ready", zap.Int("accounts", len(accounts.List(ctx))))
	return deps, nil
}
