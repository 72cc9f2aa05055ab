package handlers

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/serkanbykl/yargi-mcp/internal/models"
	"github.com/serkanbykl/yargi-mcp/internal/services/rekabet"
)

// createSearchRekabetTool defines the Competition Authority search tool.
// The decision-type parameter takes the site's display names; the empty
// string means all types.
func createSearchRekabetTool() mcp.Tool {
	return mcp.NewTool("search_rekabet_kurumu_decisions",
		mcp.WithDescription("Search Competition Authority (Rekabet Kurumu) decisions on mergers, acquisitions, competition violations, exemptions, and privatizations"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("sayfaAdi", mcp.Description("Keyword to search in decision titles")),
		mcp.WithString("YayinlanmaTarihi", mcp.Description("Publication date (DD.MM.YYYY)")),
		mcp.WithString("PdfText", mcp.Description("Keyword to search in decision text. Double quotes give an exact phrase (\"rekabet ihlali\")")),
		mcp.WithString("KararTuru",
			mcp.Description("Decision type. Leave empty for all types"),
			mcp.Enum("",
				models.RekabetKararTuruBirlesme,
				models.RekabetKararTuruDiger,
				models.RekabetKararTuruMenfiTespit,
				models.RekabetKararTuruOzellestirme,
				models.RekabetKararTuruRekabetIhlali,
			),
		),
		mcp.WithString("KararSayisi", mcp.Description("Decision number (e.g., '24-20/123-456')")),
		mcp.WithString("KararTarihi", mcp.Description("Decision date (DD.MM.YYYY)")),
		mcp.WithNumber("page",
			mcp.Description("Results page to retrieve"),
			mcp.DefaultNumber(1),
		),
	)
}

// handleSearchRekabet runs a Rekabet Kurumu search.
func handleSearchRekabet(client *rekabet.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req := models.RekabetSearchRequest{
			SayfaAdi:         request.GetString("sayfaAdi", ""),
			YayinlanmaTarihi: request.GetString("YayinlanmaTarihi", ""),
			PdfText:          request.GetString("PdfText", ""),
			KararTuru:        request.GetString("KararTuru", ""),
			KararSayisi:      request.GetString("KararSayisi", ""),
			KararTarihi:      request.GetString("KararTarihi", ""),
			Page:             request.GetInt("page", 1),
		}

		result, err := client.Search(ctx, req)
		if err != nil {
			if logger != nil {
				logger.Error().Err(err).Msg("Rekabet search failed")
			}
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(result)
	}
}

// createGetRekabetDocumentTool defines the Rekabet Kurumu document tool.
func createGetRekabetDocumentTool() mcp.Tool {
	return mcp.NewTool("get_rekabet_kurumu_document",
		mcp.WithDescription("Retrieve a Competition Authority (Rekabet Kurumu) decision as Markdown extracted from its PDF, one PDF page per request, using the decision GUID from search results"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithString("karar_id",
			mcp.Required(),
			mcp.Description("Decision GUID (karar_id) from Rekabet search results"),
		),
		mcp.WithNumber("page_number",
			mcp.Description("PDF page to extract"),
			mcp.DefaultNumber(1),
		),
	)
}

// handleGetRekabetDocument fetches one PDF page of a decision. Retrieval
// failures ride in the document's error_message; only context
// cancellation surfaces as a tool error.
func handleGetRekabetDocument(client *rekabet.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kararID, err := request.RequireString("karar_id")
		if err != nil || kararID == "" {
			return mcp.NewToolResultError("karar_id parameter is required"), nil
		}
		pageNumber := request.GetInt("page_number", 1)

		doc, err := client.Document(ctx, kararID, pageNumber)
		if err != nil {
			if logger != nil {
				logger.Error().Err(err).Str("karar_id", kararID).Msg("Rekabet document retrieval failed")
			}
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(doc)
	}
}
