package home_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/attendhub/internal/app/features/home"
	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"github.com/dalemusser/attendhub/internal/app/system/session"
	"github.com/dalemusser/attendhub/internal/domain/models"
	"go.uber.org/zap"
)

func TestServeRoot_Unauthenticated(t *testing.T) {
	handler := home.NewHandler(zap.NewNop())

	rec := httptest.NewRecorder()
	handler.ServeRoot(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{models.DefaultTagline, "Features", "How it works", `href="/login"`, "Sign in"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestServeRoot_AuthenticatedUserSeesDashboardLink(t *testing.T) {
	handler := home.NewHandler(zap.NewNop())

	req := httptest.NewRequest("GET", "/", nil)
	req = auth.WithState(req, session.FromRole(models.RoleAdmin), "maria.r@company.com")
	rec := httptest.NewRecorder()
	handler.ServeRoot(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "Go to your dashboard") || !strings.Contains(body, `href="/admin-dashboard"`) {
		t.Error("admin should be offered the admin dashboard")
	}
	if !strings.Contains(body, "Log out") {
		t.Error("logout control missing")
	}
}

func TestRoutes(t *testing.T) {
	r := home.Routes(home.NewHandler(zap.NewNop()))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}
