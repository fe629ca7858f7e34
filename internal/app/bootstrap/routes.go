// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	admindashfeature "github.com/dalemusser/attendhub/internal/app/features/admindash"
	employeedashfeature "github.com/dalemusser/attendhub/internal/app/features/employeedash"
	errorsfeature "github.com/dalemusser/attendhub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/attendhub/internal/app/features/health"
	homefeature "github.com/dalemusser/attendhub/internal/app/features/home"
	loginfeature "github.com/dalemusser/attendhub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/attendhub/internal/app/features/logout"
	"github.com/dalemusser/attendhub/internal/app/resources"
	"github.com/dalemusser/attendhub/internal/app/system/gate"
	"github.com/dalemusser/waffle/config"
	wafflemw "github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/router"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root router.
//
// Every page route sits behind the route gate, which decides from the
// session snapshot whether the page renders or the browser is sent
// elsewhere. Paths the router does not know also go through the gate so
// they redirect instead of returning 404. Logout, health, metrics and
// static assets are outside the page set and are not gated.
func BuildHandler(coreCfg *config.CoreConfig, cfg AppConfig, deps Deps, logger *zap.Logger) (http.Handler, error) {
	// Compile every registered template set; a template that fails to parse
	// stops startup here instead of on the first request.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)
	secure := secureCookies(coreCfg)

	homeHandler := homefeature.NewHandler(logger)
	loginHandler := loginfeature.NewHandler(
		deps.SessionMgr, errLog, deps.Accounts, deps.Logins, deps.Limiter,
		deps.AuditLog, deps.Metrics, cfg.ShowDemoAccounts, logger,
	)
	logoutHandler := logoutfeature.NewHandler(deps.SessionMgr, deps.AuditLog, logger)
	employeeHandler := employeedashfeature.NewHandler(errLog, deps.Accounts, deps.Employees, deps.Workday, logger)

	var initialPassword string
	if cfg.NewEmployeeLogin {
		initialPassword = cfg.SeedPassword
	}
	adminHandler := admindashfeature.NewHandler(errLog, admindashfeature.Deps{
		Accounts:      deps.Accounts,
		Employees:     deps.Employees,
		Notifications: deps.Notifications,
		Activity:      deps.Activity,
		Settings:      deps.Settings,
		Logins:        deps.Logins,
	}, deps.AuditLog, initialPassword, logger)

	healthHandler := healthfeature.NewHandler(deps.Started, logger, healthfeature.Check{
		Name: "jobs",
		Fn: func(context.Context) error {
			if deps.Jobs == nil || !deps.Jobs.Running() {
				return errors.New("background jobs are not running")
			}
			return nil
		},
	})

	// WAFFLE's stack: request ID, real IP, panic recovery, compression,
	// body limit, request metrics and access logging.
	r := router.New(coreCfg, logger)
	// No-op unless enable_cors is set.
	r.Use(wafflemw.CORSFromConfig(coreCfg))
	r.Use(middleware.CleanPath)

	// Load the session snapshot for every request; the gate and every
	// view model read it from the context.
	r.Use(deps.SessionMgr.LoadSession)

	if !secure {
		r.Use(plaintextCSRF)
	}
	r.Use(csrf.Protect(
		[]byte(cfg.CSRFKey),
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.ErrorHandler(csrfFailure(logger)),
	))

	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/metrics", deps.Metrics.Handler())
	r.Handle("/static/*", http.StripPrefix("/static", resources.StaticHandler()))
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	gated := gate.Middleware(logger, deps.Metrics)
	r.Group(func(pr chi.Router) {
		pr.Use(gated)
		pr.Get(gate.HomePath, homeHandler.ServeRoot)
		pr.Mount(gate.LoginPath, loginfeature.Routes(loginHandler))
		pr.Mount(gate.EmployeeDashboardPath, employeedashfeature.Routes(employeeHandler))
		pr.Mount(gate.AdminDashboardPath, admindashfeature.Routes(adminHandler))
	})

	// Replace WAFFLE's JSON 404/405. The gate answers every unknown path
	// with a redirect, so these only run for paths it lets through.
	r.NotFound(gated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errorsfeature.Render(w, r, http.StatusNotFound, "Not found", "That page does not exist.", "/")
	})).ServeHTTP)
	r.MethodNotAllowed(gated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errorsfeature.Render(w, r, http.StatusMethodNotAllowed, "Method not allowed", "That action is not available here.", "/")
	})).ServeHTTP)

	return r, nil
}
