package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/serkanbykl/yargi-mcp/internal/app"
	"github.com/serkanbykl/yargi-mcp/internal/common"
)

func newTestApp(t *testing.T, mutate func(*common.Config)) *app.App {
	t.Helper()

	cfg := common.NewDefaultConfig()
	cfg.Health.Enabled = false
	if mutate != nil {
		mutate(cfg)
	}

	application, err := app.New(cfg, arbor.NewLogger())
	require.NoError(t, err)
	t.Cleanup(func() { application.Close() })
	return application
}

func TestRouteTable(t *testing.T) {
	srv := New(newTestApp(t, nil))
	handler := srv.Handler()

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"root info", http.MethodGet, "/", http.StatusOK},
		{"health", http.MethodGet, "/health", http.StatusOK},
		{"status", http.MethodGet, "/status", http.StatusOK},
		{"unknown path", http.MethodGet, "/nope", http.StatusNotFound},
		{"deep unknown path", http.MethodGet, "/api/anything", http.StatusNotFound},
		{"health wrong method", http.MethodPost, "/health", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestTransportRoutesMounted(t *testing.T) {
	srv := New(newTestApp(t, nil))
	handler := srv.Handler()

	// The transports answer these requests themselves; the mux only
	// produces 404 for paths that are not mounted at all.
	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"mcp", http.MethodPut, "/mcp"},
		{"sse", http.MethodPost, "/sse"},
		{"messages", http.MethodPost, "/messages"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.NotEqual(t, http.StatusNotFound, rec.Code)
		})
	}
}

func TestRootInfoPayload(t *testing.T) {
	srv := New(newTestApp(t, nil))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Name      string            `json:"name"`
		Endpoints map[string]string `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "yargi-mcp", payload.Name)
	assert.Equal(t, "/mcp", payload.Endpoints["mcp"])
	assert.Equal(t, "/sse", payload.Endpoints["sse"])
	assert.Equal(t, "/messages", payload.Endpoints["messages"])
}

func TestCORSPreflight(t *testing.T) {
	srv := New(newTestApp(t, nil))

	req := httptest.NewRequest(http.MethodOptions, "/mcp", nil)
	req.Header.Set("Origin", "https://client.example.com")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "X-Request-ID")
}

func TestCORSRestrictedOrigins(t *testing.T) {
	srv := New(newTestApp(t, func(cfg *common.Config) {
		cfg.Server.AllowedOrigins = []string{"https://app.example.com"}
	}))

	t.Run("allowed origin echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("other origin gets nothing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://elsewhere.example.com")
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestIDEcho(t *testing.T) {
	srv := New(newTestApp(t, nil))

	t.Run("incoming id preserved", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("X-Request-ID", "req-abc-123")
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		assert.Equal(t, "req-abc-123", rec.Header().Get("X-Request-ID"))
	})

	t.Run("missing id minted", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})
}

func TestRecoveryMiddleware(t *testing.T) {
	srv := &Server{app: newTestApp(t, nil)}

	handler := srv.withMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
