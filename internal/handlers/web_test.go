package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoHandler(t *testing.T) {
	handler := NewWebHandler(nil, nil)

	rec := httptest.NewRecorder()
	handler.InfoHandler(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var payload struct {
		Name        string            `json:"name"`
		Version     string            `json:"version"`
		Description string            `json:"description"`
		Databases   []string          `json:"databases"`
		Endpoints   map[string]string `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))

	assert.Equal(t, ServerName, payload.Name)
	assert.NotEmpty(t, payload.Version)
	assert.Len(t, payload.Databases, 9)
	assert.Contains(t, payload.Databases, "Yargıtay (Court of Cassation)")
	assert.Contains(t, payload.Databases, "Bedesten (Unified Court Decision Archive)")
	assert.Equal(t, "/mcp", payload.Endpoints["mcp"])
	assert.Equal(t, "/sse", payload.Endpoints["sse"])
	assert.Equal(t, "/messages", payload.Endpoints["messages"])
}

func TestInfoHandlerRejectsPost(t *testing.T) {
	handler := NewWebHandler(nil, nil)

	rec := httptest.NewRecorder()
	handler.InfoHandler(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthHandler(t *testing.T) {
	handler := NewWebHandler(nil, nil)

	rec := httptest.NewRecorder()
	handler.HealthHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "healthy", payload["status"])
	assert.NotEmpty(t, payload["version"])
}

func TestStatusHandlerListsEveryTool(t *testing.T) {
	handler := NewWebHandler(nil, nil)

	rec := httptest.NewRecorder()
	handler.StatusHandler(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Service    string   `json:"service"`
		Transports []string `json:"transports"`
		TotalTools int      `json:"total_tools"`
		Tools      []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"tools"`
		Upstreams []interface{} `json:"upstreams"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))

	assert.Equal(t, ServerName, payload.Service)
	assert.Equal(t, []string{"streamable-http", "sse", "stdio"}, payload.Transports)
	assert.Equal(t, 27, payload.TotalTools)
	require.Len(t, payload.Tools, 27)
	assert.Equal(t, "search_yargitay_detailed", payload.Tools[0].Name)

	// Descriptions are capped for the inventory view.
	for _, tool := range payload.Tools {
		assert.LessOrEqual(t, len([]rune(tool.Description)), statusDescriptionLimit+3,
			"tool %s description exceeds status cap", tool.Name)
	}

	// With no monitor configured the upstream list is empty, not null.
	assert.NotNil(t, payload.Upstreams)
	assert.Empty(t, payload.Upstreams)
	assert.Contains(t, rec.Body.String(), `"upstreams":[]`)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "kısa", truncate("kısa", 10))
	assert.Equal(t, "abc", truncate("abc", 3))

	long := strings.Repeat("ğ", 120)
	got := truncate(long, 100)
	assert.Equal(t, 103, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "..."))
}
