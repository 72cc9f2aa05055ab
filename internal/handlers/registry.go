// Package handlers defines the MCP tool surface of the gateway: one
// tool definition plus handler pair per capability, and the registry
// that assembles them into an MCP server shared by the HTTP and stdio
// binaries.
//
// Handlers parse arguments, build the typed request, and delegate to
// the source adapter; validation and upstream quirks live behind the
// adapter boundary. Results are returned as JSON text content, errors
// as tool errors carrying the adapter's error kind.
package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/serkanbykl/yargi-mcp/internal/common"
	"github.com/serkanbykl/yargi-mcp/internal/models"
	"github.com/serkanbykl/yargi-mcp/internal/services/anayasa"
	"github.com/serkanbykl/yargi-mcp/internal/services/bedesten"
	"github.com/serkanbykl/yargi-mcp/internal/services/danistay"
	"github.com/serkanbykl/yargi-mcp/internal/services/emsal"
	"github.com/serkanbykl/yargi-mcp/internal/services/kik"
	"github.com/serkanbykl/yargi-mcp/internal/services/rekabet"
	"github.com/serkanbykl/yargi-mcp/internal/services/uyusmazlik"
	"github.com/serkanbykl/yargi-mcp/internal/services/yargitay"
)

// ServerName identifies the MCP server to connecting clients.
const ServerName = "yargi-mcp"

// Clients bundles the per-source adapters the tool registry serves.
// Every field must be non-nil before NewMCPServer is called.
type Clients struct {
	Yargitay        *yargitay.Client
	Danistay        *danistay.Client
	Emsal           *emsal.Client
	Uyusmazlik      *uyusmazlik.Client
	AnayasaNorm     *anayasa.NormClient
	AnayasaBireysel *anayasa.BireyselClient
	Kik             *kik.Client
	Rekabet         *rekabet.Client
	Bedesten        *bedesten.Client
}

// registration pairs a tool definition with its handler.
type registration struct {
	tool    mcp.Tool
	handler server.ToolHandlerFunc
}

// registrations lists every tool the gateway exposes, grouped by source.
// Order here is the order tools/list reports.
func registrations(c Clients, logger arbor.ILogger) []registration {
	return []registration{
		{createSearchYargitayDetailedTool(), handleSearchYargitayDetailed(c.Yargitay, logger)},
		{createGetYargitayDocumentTool(), handleGetYargitayDocument(c.Yargitay, logger)},

		{createSearchDanistayKeywordTool(), handleSearchDanistayKeyword(c.Danistay, logger)},
		{createSearchDanistayDetailedTool(), handleSearchDanistayDetailed(c.Danistay, logger)},
		{createGetDanistayDocumentTool(), handleGetDanistayDocument(c.Danistay, logger)},

		{createSearchEmsalTool(), handleSearchEmsal(c.Emsal, logger)},
		{createGetEmsalDocumentTool(), handleGetEmsalDocument(c.Emsal, logger)},

		{createSearchUyusmazlikTool(), handleSearchUyusmazlik(c.Uyusmazlik, logger)},
		{createGetUyusmazlikDocumentTool(), handleGetUyusmazlikDocument(c.Uyusmazlik, logger)},

		{createSearchAnayasaNormTool(), handleSearchAnayasaNorm(c.AnayasaNorm, logger)},
		{createGetAnayasaNormDocumentTool(), handleGetAnayasaNormDocument(c.AnayasaNorm, logger)},
		{createSearchAnayasaBireyselTool(), handleSearchAnayasaBireysel(c.AnayasaBireysel, logger)},
		{createGetAnayasaBireyselDocumentTool(), handleGetAnayasaBireyselDocument(c.AnayasaBireysel, logger)},

		{createSearchKikTool(), handleSearchKik(c.Kik, logger)},
		{createGetKikDocumentTool(), handleGetKikDocument(c.Kik, logger)},

		{createSearchRekabetTool(), handleSearchRekabet(c.Rekabet, logger)},
		{createGetRekabetDocumentTool(), handleGetRekabetDocument(c.Rekabet, logger)},

		{createSearchYargitayBedestenTool(), handleBedestenSearch(c.Bedesten, logger, models.BedestenItemTypeYargitay, true)},
		{createGetYargitayBedestenDocumentTool(), handleBedestenDocument(c.Bedesten, logger)},
		{createSearchDanistayBedestenTool(), handleBedestenSearch(c.Bedesten, logger, models.BedestenItemTypeDanistay, true)},
		{createGetDanistayBedestenDocumentTool(), handleBedestenDocument(c.Bedesten, logger)},
		{createSearchYerelHukukBedestenTool(), handleBedestenSearch(c.Bedesten, logger, models.BedestenItemTypeYerelHukuk, false)},
		{createGetYerelHukukBedestenDocumentTool(), handleBedestenDocument(c.Bedesten, logger)},
		{createSearchIstinafHukukBedestenTool(), handleBedestenSearch(c.Bedesten, logger, models.BedestenItemTypeIstinafHukuk, false)},
		{createGetIstinafHukukBedestenDocumentTool(), handleBedestenDocument(c.Bedesten, logger)},
		{createSearchKybBedestenTool(), handleBedestenSearch(c.Bedesten, logger, models.BedestenItemTypeKYB, false)},
		{createGetKybBedestenDocumentTool(), handleBedestenDocument(c.Bedesten, logger)},
	}
}

// NewMCPServer assembles the MCP server with every tool registered.
func NewMCPServer(c Clients, logger arbor.ILogger) *server.MCPServer {
	mcpServer := server.NewMCPServer(
		ServerName,
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)
	for _, reg := range registrations(c, logger) {
		mcpServer.AddTool(reg.tool, reg.handler)
	}
	return mcpServer
}

// ToolDefinitions lists every tool definition in registration order,
// for status reporting. The handler closures built alongside are
// discarded, so zero-value clients are fine here.
func ToolDefinitions() []mcp.Tool {
	regs := registrations(Clients{}, nil)
	defs := make([]mcp.Tool, len(regs))
	for i, reg := range regs {
		defs[i] = reg.tool
	}
	return defs
}

// jsonResult marshals a typed adapter result into a text tool result.
func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}
