package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csatpulse/internal/config"
	"csatpulse/internal/infrastructure"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()

	cfg := config.Default()
	cfg.Paths.ExportsDir = t.TempDir()

	a := &Application{
		Config:  cfg,
		Logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
		Metrics: infrastructure.NewMetrics(),
	}
	require.NoError(t, a.initializeServices())
	a.setupRouter()
	a.createServer()
	return a
}

func TestApplication_Routes(t *testing.T) {
	a := newTestApplication(t)

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
	}{
		{name: "health", method: http.MethodGet, target: "/api/health", wantStatus: http.StatusOK},
		{name: "version", method: http.MethodGet, target: "/api/version", wantStatus: http.StatusOK},
		{name: "daily view", method: http.MethodGet, target: "/api/dashboard/daily", wantStatus: http.StatusOK},
		{name: "events view", method: http.MethodGet, target: "/api/dashboard/events", wantStatus: http.StatusOK},
		{name: "risk summary", method: http.MethodGet, target: "/api/dashboard/risk", wantStatus: http.StatusOK},
		{name: "upload status", method: http.MethodGet, target: "/api/uploads/status", wantStatus: http.StatusOK},
		{name: "prometheus metrics", method: http.MethodGet, target: "/metrics", wantStatus: http.StatusOK},
		{name: "unknown api route", method: http.MethodGet, target: "/api/nope", wantStatus: http.StatusNotFound},
		{name: "wrong method", method: http.MethodDelete, target: "/api/health", wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			rec := httptest.NewRecorder()
			a.Router.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestApplication_SecurityHeaders(t *testing.T) {
	a := newTestApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestApplication_ServerConfig(t *testing.T) {
	a := newTestApplication(t)

	assert.Equal(t, ":8080", a.Server.Addr)
	assert.Equal(t, a.Config.Server.ReadTimeout, a.Server.ReadTimeout)
	assert.NotNil(t, a.Server.Handler)
}
