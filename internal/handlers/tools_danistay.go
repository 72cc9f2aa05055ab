package handlers

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/serkanbykl/yargi-mcp/internal/models"
	"github.com/serkanbykl/yargi-mcp/internal/services/danistay"
)

// createSearchDanistayKeywordTool defines the Danıştay keyword search tool.
func createSearchDanistayKeywordTool() mcp.Tool {
	return mcp.NewTool("search_danistay_by_keyword",
		mcp.WithDescription("Search Council of State (Danıştay) decisions using keyword-based logic with AND/OR/NOT operators. This is Turkey's highest administrative court, ruling on administrative law, tax disputes, and public administration cases"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithArray("andKelimeler",
			mcp.WithStringItems(),
			mcp.Description("Keywords that must ALL appear in the decision"),
		),
		mcp.WithArray("orKelimeler",
			mcp.WithStringItems(),
			mcp.Description("Keywords where at least ONE must appear"),
		),
		mcp.WithArray("notAndKelimeler",
			mcp.WithStringItems(),
			mcp.Description("Keyword combinations to exclude (NOT AND)"),
		),
		mcp.WithArray("notOrKelimeler",
			mcp.WithStringItems(),
			mcp.Description("Keywords that must NOT appear (NOT OR)"),
		),
		mcp.WithNumber("pageNumber",
			mcp.Description("Page number to retrieve"),
			mcp.DefaultNumber(1),
		),
		mcp.WithNumber("pageSize",
			mcp.Description("Results per page (1-100)"),
			mcp.DefaultNumber(10),
		),
	)
}

// handleSearchDanistayKeyword runs a keyword Danıştay search.
func handleSearchDanistayKeyword(client *danistay.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req := models.DanistayKeywordSearchRequest{
			AndKelimeler:    request.GetStringSlice("andKelimeler", nil),
			OrKelimeler:     request.GetStringSlice("orKelimeler", nil),
			NotAndKelimeler: request.GetStringSlice("notAndKelimeler", nil),
			NotOrKelimeler:  request.GetStringSlice("notOrKelimeler", nil),
			PageNumber:      request.GetInt("pageNumber", 1),
			PageSize:        request.GetInt("pageSize", 10),
		}

		result, err := client.SearchKeyword(ctx, req)
		if err != nil {
			if logger != nil {
				logger.Error().Err(err).Msg("Danıştay keyword search failed")
			}
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(result)
	}
}

// createSearchDanistayDetailedTool defines the Danıştay detailed search tool.
func createSearchDanistayDetailedTool() mcp.Tool {
	return mcp.NewTool("search_danistay_detailed",
		mcp.WithDescription("Search Council of State (Danıştay) decisions using detailed criteria including chamber selection, case numbers, date ranges, and legislation references. This is Turkey's highest administrative court"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("daire", mcp.Description("Danıştay chamber (e.g., '1. Daire', 'Vergi Dava Daireleri Kurulu')")),
		mcp.WithString("esasYil", mcp.Description("Case year (Esas) filter")),
		mcp.WithString("esasIlkSiraNo", mcp.Description("Starting case sequence number")),
		mcp.WithString("esasSonSiraNo", mcp.Description("Ending case sequence number")),
		mcp.WithString("kararYil", mcp.Description("Decision year (Karar) filter")),
		mcp.WithString("kararIlkSiraNo", mcp.Description("Starting decision sequence number")),
		mcp.WithString("kararSonSiraNo", mcp.Description("Ending decision sequence number")),
		mcp.WithString("baslangicTarihi", mcp.Description("Decision start date (DD.MM.YYYY)")),
		mcp.WithString("bitisTarihi", mcp.Description("Decision end date (DD.MM.YYYY)")),
		mcp.WithString("mevzuatNumarasi", mcp.Description("Legislation number referenced by the decision")),
		mcp.WithString("mevzuatAdi", mcp.Description("Legislation name referenced by the decision")),
		mcp.WithString("madde", mcp.Description("Article number within the referenced legislation")),
		mcp.WithString("siralama",
			mcp.Description("Sort criteria (1: Esas No, 2: Karar No, 3: Karar Tarihi)"),
			mcp.Enum("1", "2", "3"),
			mcp.DefaultString("1"),
		),
		mcp.WithString("siralamaDirection",
			mcp.Description("Sort direction"),
			mcp.Enum("asc", "desc"),
			mcp.DefaultString("desc"),
		),
		mcp.WithNumber("pageNumber",
			mcp.Description("Page number to retrieve"),
			mcp.DefaultNumber(1),
		),
		mcp.WithNumber("pageSize",
			mcp.Description("Results per page (1-100)"),
			mcp.DefaultNumber(10),
		),
	)
}

// handleSearchDanistayDetailed runs a detailed Danıştay search.
func handleSearchDanistayDetailed(client *danistay.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req := models.DanistayDetailedSearchRequest{
			Daire:             request.GetString("daire", ""),
			EsasYil:           request.GetString("esasYil", ""),
			EsasIlkSiraNo:     request.GetString("esasIlkSiraNo", ""),
			EsasSonSiraNo:     request.GetString("esasSonSiraNo", ""),
			KararYil:          request.GetString("kararYil", ""),
			KararIlkSiraNo:    request.GetString("kararIlkSiraNo", ""),
			KararSonSiraNo:    request.GetString("kararSonSiraNo", ""),
			BaslangicTarihi:   request.GetString("baslangicTarihi", ""),
			BitisTarihi:       request.GetString("bitisTarihi", ""),
			MevzuatNumarasi:   request.GetString("mevzuatNumarasi", ""),
			MevzuatAdi:        request.GetString("mevzuatAdi", ""),
			Madde:             request.GetString("madde", ""),
			Siralama:          request.GetString("siralama", ""),
			SiralamaDirection: request.GetString("siralamaDirection", ""),
			PageNumber:        request.GetInt("pageNumber", 1),
			PageSize:          request.GetInt("pageSize", 10),
		}

		result, err := client.SearchDetailed(ctx, req)
		if err != nil {
			if logger != nil {
				logger.Error().Err(err).Msg("Danıştay detailed search failed")
			}
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(result)
	}
}

// createGetDanistayDocumentTool defines the Danıştay document tool.
func createGetDanistayDocumentTool() mcp.Tool {
	return mcp.NewTool("get_danistay_document_markdown",
		mcp.WithDescription("Retrieve the full text of a Council of State (Danıştay) decision in Markdown format using its document ID from search results"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Document ID from Danıştay search results"),
		),
	)
}

// handleGetDanistayDocument fetches one Danıştay decision as Markdown.
func handleGetDanistayDocument(client *danistay.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil || id == "" {
			return mcp.NewToolResultError("id parameter is required"), nil
		}

		doc, err := client.Document(ctx, id)
		if err != nil {
			if logger != nil {
				logger.Error().Err(err).Str("id", id).Msg("Danıştay document retrieval failed")
			}
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(doc)
	}
}
