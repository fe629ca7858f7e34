package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"github.com/dalemusser/attendhub/internal/app/system/session"
	"github.com/dalemusser/attendhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// TestUser is a signed-in identity for handler tests.
type TestUser struct {
	LoginID    string
	Role       models.Role
	EmployeeID string
}

// AdminUser returns the seeded administrator.
func AdminUser() TestUser {
	return TestUser{LoginID: "maria.r@company.com", Role: models.RoleAdmin}
}

// EmployeeUser returns the seeded employee with the richest mock data.
func EmployeeUser() TestUser {
	return TestUser{LoginID: "alex.j@company.com", Role: models.RoleEmployee, EmployeeID: "emp-1"}
}

// WithUser puts user's session snapshot in the request context. This
// bypasses the session middleware.
func WithUser(r *http.Request, user TestUser) *http.Request {
	return auth.WithState(r, session.FromRole(user.Role), user.LoginID)
}

// WithState is auth.WithState without a login ID.
func WithState(r *http.Request, s session.State) *http.Request {
	return auth.WithState(r, s, "")
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewAuthenticatedRequest creates an HTTP request with a user in context.
func NewAuthenticatedRequest(method, target string, user TestUser) *http.Request {
	return WithUser(httptest.NewRequest(method, target, nil), user)
}

// NewFormRequest creates a POST request with a url-encoded body.
func NewFormRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// TestContext returns a context with a short deadline for store calls.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertRedirect checks for a redirect to the expected location. HTMX
// redirects (HX-Redirect with 200) are accepted too.
func (r *ResponseRecorder) AssertRedirect(t interface{ Errorf(string, ...any) }, expectedLocation string) {
	if hx := r.Header().Get("HX-Redirect"); hx != "" {
		if hx != expectedLocation {
			t.Errorf("HX-Redirect: got %q, want %q", hx, expectedLocation)
		}
		return
	}
	if r.Code != http.StatusSeeOther && r.Code != http.StatusFound && r.Code != http.StatusMovedPermanently {
		t.Errorf("expected redirect status, got %d", r.Code)
	}
	location := r.Header().Get("Location")
	if location != expectedLocation {
		t.Errorf("redirect location: got %q, want %q", location, expectedLocation)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}

// AssertNotContains checks that the response body does not contain s.
func (r *ResponseRecorder) AssertNotContains(t interface{ Errorf(string, ...any) }, s string) {
	if strings.Contains(r.Body.String(), s) {
		t.Errorf("response body unexpectedly contains %q", s)
	}
}

// BootTemplates compiles every template set registered by the packages
// under test and installs the engine for templates.Render. Call it from
// TestMain in packages whose handlers render pages.
func BootTemplates() error {
	eng := templates.New(false)
	if err := eng.Boot(zap.NewNop()); err != nil {
		return err
	}
	templates.UseEngine(eng, zap.NewNop())
	return nil
}
