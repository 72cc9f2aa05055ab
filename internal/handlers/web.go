package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/serkanbykl/yargi-mcp/internal/common"
	"github.com/serkanbykl/yargi-mcp/internal/services/health"
)

// statusDescriptionLimit caps tool descriptions in the /status
// inventory; full descriptions stay available over tools/list.
const statusDescriptionLimit = 100

// supportedDatabases lists the legal databases the gateway exposes, in
// tool registration order.
var supportedDatabases = []string{
	"Yargıtay (Court of Cassation)",
	"Danıştay (Council of State)",
	"Emsal (UYAP Precedent System)",
	"Uyuşmazlık Mahkemesi (Court of Jurisdictional Disputes)",
	"Anayasa Mahkemesi (Constitutional Court - Norm Control)",
	"Anayasa Mahkemesi (Constitutional Court - Individual Applications)",
	"KİK (Public Procurement Authority)",
	"Rekabet Kurumu (Competition Authority)",
	"Bedesten (Unified Court Decision Archive)",
}

// WebHandler serves the plain HTTP routes published next to the MCP
// transports: service info, liveness, and the status inventory.
type WebHandler struct {
	monitor *health.Monitor
	logger  arbor.ILogger
}

// NewWebHandler creates a new web handler. The monitor may be nil when
// upstream health checks are disabled.
func NewWebHandler(monitor *health.Monitor, logger arbor.ILogger) *WebHandler {
	return &WebHandler{
		monitor: monitor,
		logger:  logger,
	}
}

// InfoHandler returns the service description on GET /.
func (h *WebHandler) InfoHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"name":        ServerName,
		"version":     common.GetVersion(),
		"description": "MCP server for Turkish legal databases",
		"databases":   supportedDatabases,
		"endpoints": map[string]string{
			"mcp":      "/mcp",
			"sse":      "/sse",
			"messages": "/messages",
			"health":   "/health",
			"status":   "/status",
		},
	})
}

// HealthHandler returns process liveness on GET /health.
func (h *WebHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": common.GetVersion(),
	})
}

// StatusHandler returns the tool inventory and the latest upstream
// probe results on GET /status.
func (h *WebHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	defs := ToolDefinitions()
	tools := make([]map[string]string, 0, len(defs))
	for _, def := range defs {
		tools = append(tools, map[string]string{
			"name":        def.Name,
			"description": truncate(def.Description, statusDescriptionLimit),
		})
	}

	upstreams := []health.Status{}
	if h.monitor != nil {
		upstreams = h.monitor.Snapshot()
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"service":     ServerName,
		"version":     common.GetVersion(),
		"transports":  []string{"streamable-http", "sse", "stdio"},
		"total_tools": len(defs),
		"tools":       tools,
		"upstreams":   upstreams,
	})
}

// truncate shortens s to at most limit runes, marking the cut with an
// ellipsis.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
