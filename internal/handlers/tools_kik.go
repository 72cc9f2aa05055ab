package handlers

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/serkanbykl/yargi-mcp/internal/models"
	"github.com/serkanbykl/yargi-mcp/internal/services/kik"
)

// createSearchKikTool defines the Public Procurement Authority search tool.
func createSearchKikTool() mcp.Tool {
	return mcp.NewTool("search_kik_decisions",
		mcp.WithDescription("Search Public Procurement Authority (KİK - Kamu İhale Kurumu) decisions on procurement disputes, regulatory matters, and related court rulings. Decision numbers may use '_' instead of '/' (2024_UH.II-1766)"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("karar_tipi",
			mcp.Description("Decision type (rbUyusmazlik: procurement disputes, rbDuzenleyici: regulatory, rbMahkeme: court rulings)"),
			mcp.Enum(models.KikKararTipiOptions()...),
			mcp.DefaultString(string(models.KikKararTipiUyusmazlik)),
		),
		mcp.WithString("karar_no", mcp.Description("Decision number (e.g., '2024/UH.II-1766')")),
		mcp.WithString("karar_tarihi_baslangic", mcp.Description("Decision start date (DD.MM.YYYY)")),
		mcp.WithString("karar_tarihi_bitis", mcp.Description("Decision end date (DD.MM.YYYY)")),
		mcp.WithString("basvuru_sahibi", mcp.Description("Applicant name")),
		mcp.WithString("ihaleyi_yapan_idare", mcp.Description("Procuring entity that ran the tender")),
		mcp.WithString("basvuru_konusu_ihale", mcp.Description("Tender subject of the application")),
		mcp.WithString("karar_metni", mcp.Description("Keyword to search in decision text")),
		mcp.WithString("yil", mcp.Description("Decision year")),
		mcp.WithString("resmi_gazete_tarihi", mcp.Description("Official Gazette date (DD.MM.YYYY)")),
		mcp.WithString("resmi_gazete_sayisi", mcp.Description("Official Gazette number")),
		mcp.WithNumber("page",
			mcp.Description("Results page to retrieve"),
			mcp.DefaultNumber(1),
		),
	)
}

// handleSearchKik runs a KİK decision search.
func handleSearchKik(client *kik.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req := models.KikSearchRequest{
			KararTipi:            models.KikKararTipi(request.GetString("karar_tipi", "")),
			KararNo:              request.GetString("karar_no", ""),
			KararTarihiBaslangic: request.GetString("karar_tarihi_baslangic", ""),
			KararTarihiBitis:     request.GetString("karar_tarihi_bitis", ""),
			ResmiGazeteSayisi:    request.GetString("resmi_gazete_sayisi", ""),
			ResmiGazeteTarihi:    request.GetString("resmi_gazete_tarihi", ""),
			BasvuruKonusuIhale:   request.GetString("basvuru_konusu_ihale", ""),
			BasvuruSahibi:        request.GetString("basvuru_sahibi", ""),
			IhaleyiYapanIdare:    request.GetString("ihaleyi_yapan_idare", ""),
			Yil:                  request.GetString("yil", ""),
			KararMetni:           request.GetString("karar_metni", ""),
			Page:                 request.GetInt("page", 1),
		}

		result, err := client.Search(ctx, req)
		if err != nil {
			if logger != nil {
				logger.Error().Err(err).Msg("KİK search failed")
			}
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(result)
	}
}

// createGetKikDocumentTool defines the KİK document tool.
func createGetKikDocumentTool() mcp.Tool {
	return mcp.NewTool("get_kik_document_markdown",
		mcp.WithDescription("Retrieve a Public Procurement Authority (KİK) decision in paginated Markdown format using the karar_id from search results"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithString("karar_id",
			mcp.Description("Opaque decision ID (karar_id) from KİK search results"),
		),
		mcp.WithNumber("page_number",
			mcp.Description("Page of the Markdown content to retrieve (5,000 characters per page)"),
			mcp.DefaultNumber(1),
		),
	)
}

// handleGetKikDocument fetches one KİK decision chunk. Failures ride in
// the document's error_message so the caller always gets the karar_id
// and page echo back; only context cancellation surfaces as a tool error.
func handleGetKikDocument(client *kik.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kararID := request.GetString("karar_id", "")
		pageNumber := request.GetInt("page_number", 1)
		if pageNumber < 1 {
			pageNumber = 1
		}

		if strings.TrimSpace(kararID) == "" {
			return jsonResult(&models.KikDocument{
				RetrievedWithKararID: kararID,
				ErrorMessage:         "karar_id is required and must be a non-empty string.",
				CurrentPage:          pageNumber,
				TotalPages:           1,
				IsPaginated:          false,
			})
		}

		doc, err := client.Document(ctx, kararID, pageNumber)
		if err != nil {
			if logger != nil {
				logger.Error().Err(err).Str("karar_id", kararID).Msg("KİK document retrieval failed")
			}
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(doc)
	}
}
