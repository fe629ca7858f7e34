// internal/app/bootstrap/appconfig.go
package bootstrap

import (
	"time"

	"github.com/dalemusser/waffle/config"
)

// AppConfig holds service-specific configuration.
//
// These values are loaded by WAFFLE's config layer alongside CoreConfig
// (env, log level, HTTP port and server timeouts live there).
type AppConfig struct {
	// Session cookie
	SessionKey    string        // signing key (must be strong in production)
	SessionName   string        // cookie name (default: attendhub-session)
	SessionDomain string        // cookie domain (blank means current host)
	SessionMaxAge time.Duration // cookie lifetime

	// CSRF protection for every form
	CSRFKey string // 32+ byte authentication key

	HandlerTimeout time.Duration // budget for store calls inside a handler

	// Login rate limiting
	LoginRateIPLimit  int
	LoginRateIPWindow time.Duration
	LoginRateIDLimit  int
	LoginRateIDWindow time.Duration

	// Retention for in-memory history
	LoginHistoryRetention time.Duration
	ActivityRetention     time.Duration
	RetentionInterval     time.Duration

	// Audit logging: all | log | off
	AuditLogAuth  string
	AuditLogAdmin string

	// Demo directory
	AnnualLeaveDays  int    // initial site-wide leave allowance
	SeedPassword     string // password for every seeded account
	NewEmployeeLogin bool   // give employees added by an admin a login with SeedPassword
	ShowDemoAccounts bool   // list the seeded login IDs on the login page
	BcryptCost       int    // 0 means bcrypt.DefaultCost
}

// secureCookies reports whether cookies must be Secure-only.
func secureCookies(core *config.CoreConfig) bool {
	return core != nil && core.Env == "prod"
}
