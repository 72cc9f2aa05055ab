package handlers

import (
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resultText extracts the text payload of a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	content, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return content.Text
}

// decodeResult unmarshals a successful tool result into v.
func decodeResult(t *testing.T, result *mcp.CallToolResult, v interface{}) {
	t.Helper()
	require.False(t, result.IsError, "tool returned error: %s", resultText(t, result))
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), v))
}

// callRequest builds a CallToolRequest carrying the given arguments.
func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func expectedToolNames() []string {
	return []string{
		"search_yargitay_detailed",
		"get_yargitay_document_markdown",
		"search_danistay_by_keyword",
		"search_danistay_detailed",
		"get_danistay_document_markdown",
		"search_emsal_detailed_decisions",
		"get_emsal_document_markdown",
		"search_uyusmazlik_decisions",
		"get_uyusmazlik_document_markdown_from_url",
		"search_anayasa_norm_denetimi_decisions",
		"get_anayasa_norm_denetimi_document_markdown",
		"search_anayasa_bireysel_basvuru_report",
		"get_anayasa_bireysel_basvuru_document_markdown",
		"search_kik_decisions",
		"get_kik_document_markdown",
		"search_rekabet_kurumu_decisions",
		"get_rekabet_kurumu_document",
		"search_yargitay_bedesten",
		"get_yargitay_bedesten_document_markdown",
		"search_danistay_bedesten",
		"get_danistay_bedesten_document_markdown",
		"search_yerel_hukuk_bedesten",
		"get_yerel_hukuk_bedesten_document_markdown",
		"search_istinaf_hukuk_bedesten",
		"get_istinaf_hukuk_bedesten_document_markdown",
		"search_kyb_bedesten",
		"get_kyb_bedesten_document_markdown",
	}
}

func TestToolDefinitionsCoverEveryDatabase(t *testing.T) {
	defs := ToolDefinitions()

	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name)
	}
	assert.Equal(t, expectedToolNames(), names)
}

func TestToolNamesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, def := range ToolDefinitions() {
		assert.False(t, seen[def.Name], "duplicate tool name %s", def.Name)
		seen[def.Name] = true
	}
}

func TestToolDefinitionsHaveDescriptions(t *testing.T) {
	for _, def := range ToolDefinitions() {
		assert.NotEmpty(t, def.Description, "tool %s has no description", def.Name)
	}
}

func TestDocumentToolsDeclareRequiredParameters(t *testing.T) {
	required := map[string][]string{
		"get_yargitay_document_markdown":                 {"id"},
		"get_danistay_document_markdown":                 {"id"},
		"get_emsal_document_markdown":                    {"id"},
		"get_uyusmazlik_document_markdown_from_url":      {"document_url"},
		"get_anayasa_norm_denetimi_document_markdown":    {"document_url"},
		"get_anayasa_bireysel_basvuru_document_markdown": {"document_url_path"},
		"get_rekabet_kurumu_document":                    {"karar_id"},
		"get_yargitay_bedesten_document_markdown":        {"documentId"},
		"get_danistay_bedesten_document_markdown":        {"documentId"},
		"get_yerel_hukuk_bedesten_document_markdown":     {"documentId"},
		"get_istinaf_hukuk_bedesten_document_markdown":   {"documentId"},
		"get_kyb_bedesten_document_markdown":             {"documentId"},
		"search_yargitay_bedesten":                       {"phrase"},
		"search_danistay_bedesten":                       {"phrase"},
		"search_yerel_hukuk_bedesten":                    {"phrase"},
		"search_istinaf_hukuk_bedesten":                  {"phrase"},
		"search_kyb_bedesten":                            {"phrase"},
	}

	for _, def := range ToolDefinitions() {
		want, ok := required[def.Name]
		if !ok {
			continue
		}
		assert.Equal(t, want, def.InputSchema.Required, "tool %s", def.Name)
	}
}

// The KİK document tool reports failures inside its result payload, so
// karar_id must stay optional at the schema level.
func TestKikDocumentToolHasNoRequiredParameters(t *testing.T) {
	for _, def := range ToolDefinitions() {
		if def.Name != "get_kik_document_markdown" {
			continue
		}
		assert.Empty(t, def.InputSchema.Required)
		return
	}
	t.Fatal("get_kik_document_markdown not registered")
}

func TestChamberFilterOnlyOnHighCourtBedestenTools(t *testing.T) {
	withChamber := map[string]bool{
		"search_yargitay_bedesten": true,
		"search_danistay_bedesten": true,
	}

	for _, def := range ToolDefinitions() {
		if def.Name == "search_yerel_hukuk_bedesten" ||
			def.Name == "search_istinaf_hukuk_bedesten" ||
			def.Name == "search_kyb_bedesten" ||
			withChamber[def.Name] {
			_, hasChamber := def.InputSchema.Properties["birimAdi"]
			assert.Equal(t, withChamber[def.Name], hasChamber, "tool %s", def.Name)
		}
	}
}

func TestNewMCPServer(t *testing.T) {
	srv := NewMCPServer(Clients{}, nil)
	require.NotNil(t, srv)
}
