// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/attendhub/internal/app/system/auditlog"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

const (
	envPrefix = "ATTENDHUB"

	devSessionKey   = "dev-only-change-me-please-0123456789ABCDEF"
	devCSRFKey      = "dev-only-csrf-key-change-me-0123456789AB"
	devSeedPassword = "attendhub-demo"
	minKeyLength    = 32
)

// appConfigKeys defines the configuration keys for AttendHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: session_name, csrf_key, etc.
//   - Environment variables: ATTENDHUB_SESSION_NAME, ATTENDHUB_CSRF_KEY, etc.
//   - Command-line flags: --session_name, --csrf_key, etc.
//
// Durations are strings ("12h", "90s") or plain seconds.
var appConfigKeys = []config.AppKey{
	{Name: "session_key", Default: devSessionKey, Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "attendhub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie lifetime (e.g., 12h)"},
	{Name: "csrf_key", Default: devCSRFKey, Desc: "CSRF authentication key, 32 bytes (must be strong in production)"},

	{Name: "handler_timeout", Default: "5s", Desc: "Timeout for store calls inside a handler"},

	// Login rate limiting
	{Name: "login_rate_ip_limit", Default: 10, Desc: "Login attempts allowed per IP per window"},
	{Name: "login_rate_ip_window", Default: "1m", Desc: "Per-IP login rate window"},
	{Name: "login_rate_id_limit", Default: 5, Desc: "Login attempts allowed per login ID per window"},
	{Name: "login_rate_id_window", Default: "5m", Desc: "Per-login-ID login rate window"},

	// History retention
	{Name: "login_history_retention", Default: "2160h", Desc: "How long login records are kept"},
	{Name: "activity_retention", Default: "720h", Desc: "How long admin activity entries are kept"},
	{Name: "retention_interval", Default: "1h", Desc: "How often expired history is pruned"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: auditlog.ModeAll, Desc: "Auth event logging: 'all', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: auditlog.ModeAll, Desc: "Admin event logging: 'all', 'log', or 'off'"},

	// Demo directory
	{Name: "annual_leave_days", Default: 20, Desc: "Initial site-wide leave days per year (editable in site settings)"},
	{Name: "seed_password", Default: devSeedPassword, Desc: "Password for the seeded demo accounts"},
	{Name: "new_employee_login", Default: true, Desc: "Create a login (seed password) for employees added by an admin"},
	{Name: "show_demo_accounts", Default: true, Desc: "List demo login IDs on the login page"},
	{Name: "bcrypt_cost", Default: 0, Desc: "bcrypt cost for account hashes (0 = library default)"},
}

// LoadConfig loads WAFFLE core config and AttendHub's app config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config.* files,
// ATTENDHUB_* environment variables and command-line flags, merged with
// precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, envPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}
	return coreCfg, appConfigFrom(appValues), nil
}

// DefaultAppConfig returns the app config as it loads with no file,
// environment or flag overrides.
func DefaultAppConfig() AppConfig {
	v := make(config.AppConfigValues, len(appConfigKeys))
	for _, k := range appConfigKeys {
		v[k.Name] = k.Default
	}
	return appConfigFrom(v)
}

// appConfigFrom maps loaded values onto AppConfig. Missing or unparsable
// durations fall back to the key defaults.
func appConfigFrom(v config.AppConfigValues) AppConfig {
	return AppConfig{
		SessionKey:    v.String("session_key"),
		SessionName:   v.String("session_name"),
		SessionDomain: v.String("session_domain"),
		SessionMaxAge: v.Duration("session_max_age", 24*time.Hour),
		CSRFKey:       v.String("csrf_key"),

		HandlerTimeout: v.Duration("handler_timeout", 5*time.Second),

		LoginRateIPLimit:  v.Int("login_rate_ip_limit"),
		LoginRateIPWindow: v.Duration("login_rate_ip_window", time.Minute),
		LoginRateIDLimit:  v.Int("login_rate_id_limit"),
		LoginRateIDWindow: v.Duration("login_rate_id_window", 5*time.Minute),

		LoginHistoryRetention: v.Duration("login_history_retention", 90*24*time.Hour),
		ActivityRetention:     v.Duration("activity_retention", 30*24*time.Hour),
		RetentionInterval:     v.Duration("retention_interval", time.Hour),

		AuditLogAuth:  strings.ToLower(v.String("audit_log_auth")),
		AuditLogAdmin: strings.ToLower(v.String("audit_log_admin")),

		AnnualLeaveDays:  v.Int("annual_leave_days"),
		SeedPassword:     v.String("seed_password"),
		NewEmployeeLogin: v.Bool("new_employee_login"),
		ShowDemoAccounts: v.Bool("show_demo_accounts"),
		BcryptCost:       v.Int("bcrypt_cost"),
	}
}

// ValidateConfig rejects configurations the service cannot run safely
// with. Production refuses the development keys.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	var errs []error

	env := ""
	if coreCfg != nil {
		env = coreCfg.Env
	}
	switch env {
	case "dev", "prod":
	default:
		errs = append(errs, fmt.Errorf("env must be 'dev' or 'prod', got %q", env))
	}
	if appCfg.SessionMaxAge <= 0 {
		errs = append(errs, errors.New("session_max_age must be positive"))
	}
	if len(appCfg.CSRFKey) < minKeyLength {
		errs = append(errs, fmt.Errorf("csrf_key must be at least %d characters", minKeyLength))
	}
	for name, mode := range map[string]string{"audit_log_auth": appCfg.AuditLogAuth, "audit_log_admin": appCfg.AuditLogAdmin} {
		switch mode {
		case auditlog.ModeAll, auditlog.ModeLog, auditlog.ModeOff:
		default:
			errs = append(errs, fmt.Errorf("%s must be 'all', 'log' or 'off', got %q", name, mode))
		}
	}
	if appCfg.LoginRateIPLimit < 1 || appCfg.LoginRateIDLimit < 1 {
		errs = append(errs, errors.New("login rate limits must be at least 1"))
	}
	if appCfg.LoginRateIPWindow <= 0 || appCfg.LoginRateIDWindow <= 0 {
		errs = append(errs, errors.New("login rate windows must be positive"))
	}
	if appCfg.LoginHistoryRetention <= 0 || appCfg.ActivityRetention <= 0 || appCfg.RetentionInterval <= 0 {
		errs = append(errs, errors.New("retention durations must be positive"))
	}
	if appCfg.AnnualLeaveDays < 0 {
		errs = append(errs, errors.New("annual_leave_days must not be negative"))
	}
	if appCfg.SeedPassword == "" {
		errs = append(errs, errors.New("seed_password must not be empty"))
	}

	if env == "prod" {
		if len(appCfg.SessionKey) < minKeyLength || appCfg.SessionKey == devSessionKey {
			errs = append(errs, fmt.Errorf("session_key must be a non-default value of at least %d characters in prod", minKeyLength))
		}
		if appCfg.CSRFKey == devCSRFKey {
			errs = append(errs, errors.New("csrf_key must not be the development default in prod"))
		}
		if appCfg.SeedPassword == devSeedPassword {
			logger.Warn("seed_password is the development default in prod")
		}
	}

	return errors.Join(errs...)
}
