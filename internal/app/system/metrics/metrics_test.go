package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/attendhub/internal/app/system/metrics"
	wafflemetrics "github.com/dalemusser/waffle/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
)

func TestObserveDecision(t *testing.T) {
	m := metrics.New()

	m.ObserveDecision("login", "redirect")
	m.ObserveDecision("login", "redirect")
	m.ObserveDecision("public", "render")

	if got := testutil.ToFloat64(m.GateDecisions.WithLabelValues("login", "redirect")); got != 2 {
		t.Errorf("login/redirect = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.GateDecisions.WithLabelValues("public", "render")); got != 1 {
		t.Errorf("public/render = %v, want 1", got)
	}
}

func TestObserveLogin(t *testing.T) {
	m := metrics.New()
	m.ObserveLogin("success")
	m.ObserveLogin("failure")
	m.ObserveLogin("failure")

	if got := testutil.ToFloat64(m.LoginAttempts.WithLabelValues("failure")); got != 2 {
		t.Errorf("failure = %v, want 2", got)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *metrics.Metrics
	m.ObserveDecision("public", "render")
	m.ObserveLogin("success")
}

func TestHandler_ExposesCounters(t *testing.T) {
	wafflemetrics.RegisterDefault(zap.NewNop())
	m := metrics.New()
	m.ObserveDecision("admin_dashboard", "redirect")

	// One request through WAFFLE's middleware so its histogram has a series.
	wafflemetrics.HTTPMetrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusSeeOther)
	})).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/login", nil))

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		`attendhub_gate_decisions_total{outcome="redirect",route="admin_dashboard"} 1`,
		`http_request_duration_seconds_count{method="GET",path="/login",status="303"} 1`,
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
