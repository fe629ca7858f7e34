package login_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	uierrors "github.com/dalemusser/attendhub/internal/app/features/errors"
	"github.com/dalemusser/attendhub/internal/app/features/login"
	accountstore "github.com/dalemusser/attendhub/internal/app/store/accounts"
	loginstore "github.com/dalemusser/attendhub/internal/app/store/logins"
	"github.com/dalemusser/attendhub/internal/app/system/auditlog"
	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"github.com/dalemusser/attendhub/internal/app/system/ratelimit"
	"github.com/dalemusser/attendhub/internal/testutil"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "demo-password"

type loginCounter struct{ results []string }

func (c *loginCounter) ObserveLogin(result string) { c.results = append(c.results, result) }

type fixture struct {
	handler *login.Handler
	logins  *loginstore.Store
	limiter *ratelimit.LoginLimiter
	metrics *loginCounter
}

func newFixture(t *testing.T, limiter *ratelimit.LoginLimiter) fixture {
	t.Helper()
	logger := zap.NewNop()

	sm, err := auth.NewSessionManager(strings.Repeat("k", 32), "", "", time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	accounts, err := accountstore.New(accountstore.DefaultSeeds(), testPassword, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("accountstore.New: %v", err)
	}
	if limiter == nil {
		limiter = ratelimit.NewLoginLimiter()
	}
	t.Cleanup(limiter.Close)

	logins := loginstore.New(time.Now)
	counter := &loginCounter{}
	h := login.NewHandler(sm, uierrors.NewErrorLogger(logger), accounts, logins, limiter,
		auditlog.New(logger, auditlog.Config{Auth: auditlog.ModeAll}), counter, true, logger)
	return fixture{handler: h, logins: logins, limiter: limiter, metrics: counter}
}

func post(h *login.Handler, loginID, password string) *testutil.ResponseRecorder {
	req := testutil.NewFormRequest("/login", url.Values{"login_id": {loginID}, "password": {password}})
	rec := testutil.NewRecorder()
	h.HandleLoginPost(rec, req)
	return rec
}

func TestServeLogin_RendersForm(t *testing.T) {
	f := newFixture(t, nil)
	rec := testutil.NewRecorder()
	f.handler.ServeLogin(rec, testutil.NewRequest(http.MethodGet, "/login"))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `action="/login"`)
	rec.AssertContains(t, `name="login_id"`)
	rec.AssertContains(t, `name="password"`)
	rec.AssertContains(t, "maria.r@company.com")
}

func TestServeLogin_HidesDemoAccounts(t *testing.T) {
	f := newFixture(t, nil)
	f.handler.ShowDemo = false
	rec := testutil.NewRecorder()
	f.handler.ServeLogin(rec, testutil.NewRequest(http.MethodGet, "/login"))
	rec.AssertNotContains(t, "maria.r@company.com")
}

func TestHandleLoginPost_EmployeeSuccess(t *testing.T) {
	f := newFixture(t, nil)
	rec := post(f.handler, "alex.j@company.com", testPassword)

	rec.AssertRedirect(t, "/employee-dashboard")
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie")
	}
	if _, ok := f.logins.Last(t.Context(), "alex.j@company.com"); !ok {
		t.Error("login record not stored")
	}
	if got := f.metrics.results; len(got) != 1 || got[0] != "success" {
		t.Errorf("metrics = %v", got)
	}
}

func TestHandleLoginPost_AdminSuccessIsCaseInsensitive(t *testing.T) {
	f := newFixture(t, nil)
	rec := post(f.handler, "  Maria.R@Company.com ", testPassword)
	rec.AssertRedirect(t, "/admin-dashboard")
}

func TestHandleLoginPost_HTMXRedirect(t *testing.T) {
	f := newFixture(t, nil)
	req := testutil.NewFormRequest("/login", url.Values{"login_id": {"maria.r@company.com"}, "password": {testPassword}})
	req.Header.Set("HX-Request", "true")
	rec := testutil.NewRecorder()
	f.handler.HandleLoginPost(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	if got := rec.Header().Get("HX-Redirect"); got != "/admin-dashboard" {
		t.Errorf("HX-Redirect = %q", got)
	}
}

func TestHandleLoginPost_BadCredentialsAreGeneric(t *testing.T) {
	f := newFixture(t, nil)

	wrongPassword := post(f.handler, "alex.j@company.com", "nope")
	unknownUser := post(f.handler, "nobody@company.com", testPassword)

	for _, rec := range []*testutil.ResponseRecorder{wrongPassword, unknownUser} {
		rec.AssertStatus(t, http.StatusUnauthorized)
		rec.AssertContains(t, "Invalid login ID or password.")
		if len(rec.Result().Cookies()) != 0 {
			t.Error("failed login must not set a session cookie")
		}
	}
	if !strings.Contains(wrongPassword.Body.String(), "alex.j@company.com") || !strings.Contains(unknownUser.Body.String(), "nobody@company.com") {
		t.Error("form should keep the typed login ID")
	}
}

func TestHandleLoginPost_MissingFields(t *testing.T) {
	f := newFixture(t, nil)
	rec := post(f.handler, "", "")
	rec.AssertStatus(t, http.StatusUnprocessableEntity)
	rec.AssertContains(t, "Login ID is required")
	if got := f.metrics.results; len(got) != 1 || got[0] != "invalid" {
		t.Errorf("metrics = %v", got)
	}
}

func TestHandleLoginPost_RateLimited(t *testing.T) {
	f := newFixture(t, ratelimit.NewLoginLimiterWithConfig(100, time.Minute, 2, time.Minute))

	post(f.handler, "sarah.m@company.com", "bad")
	post(f.handler, "sarah.m@company.com", "bad")
	rec := post(f.handler, "sarah.m@company.com", testPassword)

	rec.AssertStatus(t, http.StatusTooManyRequests)
	rec.AssertContains(t, "Too many login attempts")
	last := f.metrics.results[len(f.metrics.results)-1]
	if last != "limited" {
		t.Errorf("last metric = %q", last)
	}
}

func TestHandleLoginPost_SuccessResetsAccountLimit(t *testing.T) {
	f := newFixture(t, ratelimit.NewLoginLimiterWithConfig(100, time.Minute, 2, time.Minute))

	post(f.handler, "david.c@company.com", "bad")
	post(f.handler, "david.c@company.com", testPassword).AssertRedirect(t, "/employee-dashboard")
	post(f.handler, "david.c@company.com", "bad")
	rec := post(f.handler, "david.c@company.com", testPassword)
	rec.AssertRedirect(t, "/employee-dashboard")
}

func TestRoutes(t *testing.T) {
	f := newFixture(t, nil)
	r := login.Routes(f.handler)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/"))
	rec.AssertStatus(t, http.StatusOK)

	rec = testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewFormRequest("/", url.Values{"login_id": {"alex.j@company.com"}, "password": {testPassword}}))
	rec.AssertRedirect(t, "/employee-dashboard")
}
