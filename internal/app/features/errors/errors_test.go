package errors_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	uierrors "github.com/dalemusser/attendhub/internal/app/features/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestErrorLogger(t *testing.T) {
	tests := []struct {
		name   string
		call   func(*uierrors.ErrorLogger, http.ResponseWriter, *http.Request)
		status int
		level  zapcore.Level
	}{
		{
			name: "server error",
			call: func(e *uierrors.ErrorLogger, w http.ResponseWriter, r *http.Request) {
				e.LogServerError(w, r, "render failed", errors.New("boom"), "Unable to load the page.", "/admin-dashboard")
			},
			status: http.StatusInternalServerError,
			level:  zapcore.ErrorLevel,
		},
		{
			name: "bad request",
			call: func(e *uierrors.ErrorLogger, w http.ResponseWriter, r *http.Request) {
				e.LogBadRequest(w, r, "parse form failed", errors.New("bad"), "Invalid form data.", "")
			},
			status: http.StatusBadRequest,
			level:  zapcore.WarnLevel,
		},
		{
			name: "not found",
			call: func(e *uierrors.ErrorLogger, w http.ResponseWriter, r *http.Request) {
				e.LogNotFound(w, r, "employee not found", nil, "That employee does not exist.", "/admin-dashboard/employees")
			},
			status: http.StatusNotFound,
			level:  zapcore.InfoLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			e := uierrors.NewErrorLogger(zap.New(core))

			w := httptest.NewRecorder()
			tt.call(e, w, httptest.NewRequest("GET", "/x", nil))

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			if logs.Len() != 1 || logs.All()[0].Level != tt.level {
				t.Errorf("logs = %+v", logs.All())
			}
		})
	}
}

func TestRender_ShowsMessageAndBackLink(t *testing.T) {
	w := httptest.NewRecorder()
	uierrors.Render(w, httptest.NewRequest("GET", "/x", nil), http.StatusNotFound, "Not found", "No such employee.", "")

	body := w.Body.String()
	if !strings.Contains(body, "No such employee.") {
		t.Error("message missing")
	}
	if !strings.Contains(body, `class="btn" href="/"`) {
		t.Error("default back link missing")
	}
}
