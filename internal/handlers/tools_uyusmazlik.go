package handlers

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/serkanbykl/yargi-mcp/internal/models"
	"github.com/serkanbykl/yargi-mcp/internal/services/uyusmazlik"
)

// createSearchUyusmazlikTool defines the Court of Jurisdictional Disputes
// search tool.
func createSearchUyusmazlikTool() mcp.Tool {
	return mcp.NewTool("search_uyusmazlik_decisions",
		mcp.WithDescription("Search Court of Jurisdictional Disputes (Uyuşmazlık Mahkemesi) decisions, which resolve jurisdictional conflicts between Turkish civil, criminal, and administrative courts"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("icerik", mcp.Description("Keyword or content to search in decision text")),
		mcp.WithString("bolum",
			mcp.Description("Court department"),
			mcp.Enum(models.UyusmazlikBolumOptions()...),
		),
		mcp.WithString("uyusmazlik_turu",
			mcp.Description("Dispute type"),
			mcp.Enum(models.UyusmazlikTuruOptions()...),
		),
		mcp.WithArray("karar_sonuclari",
			mcp.WithStringItems(),
			mcp.Description("Decision outcomes ('Hüküm Uyuşmazlığı Olmadığına Dair', 'Hüküm Uyuşmazlığı Olduğuna Dair')"),
		),
		mcp.WithString("esas_yil", mcp.Description("Case year (Esas)")),
		mcp.WithString("esas_sayisi", mcp.Description("Case number (Esas)")),
		mcp.WithString("karar_yil", mcp.Description("Decision year (Karar)")),
		mcp.WithString("karar_sayisi", mcp.Description("Decision number (Karar)")),
		mcp.WithString("kanun_no", mcp.Description("Related law number")),
		mcp.WithString("karar_date_begin", mcp.Description("Decision start date (DD.MM.YYYY)")),
		mcp.WithString("karar_date_end", mcp.Description("Decision end date (DD.MM.YYYY)")),
		mcp.WithString("resmi_gazete_sayi", mcp.Description("Official Gazette number")),
		mcp.WithString("resmi_gazete_date", mcp.Description("Official Gazette date (DD.MM.YYYY)")),
		mcp.WithString("tumce", mcp.Description("Exact phrase search")),
		mcp.WithString("wild_card", mcp.Description("Phrase plus inflections search")),
		mcp.WithString("hepsi", mcp.Description("All of these words")),
		mcp.WithString("herhangi_birisi", mcp.Description("Any of these words")),
		mcp.WithString("not_hepsi", mcp.Description("None of these words")),
	)
}

// handleSearchUyusmazlik runs an Uyuşmazlık Mahkemesi search.
func handleSearchUyusmazlik(client *uyusmazlik.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req := models.UyusmazlikSearchRequest{
			Icerik:          request.GetString("icerik", ""),
			Bolum:           request.GetString("bolum", ""),
			UyusmazlikTuru:  request.GetString("uyusmazlik_turu", ""),
			KararSonuclari:  request.GetStringSlice("karar_sonuclari", nil),
			EsasYil:         request.GetString("esas_yil", ""),
			EsasSayisi:      request.GetString("esas_sayisi", ""),
			KararYil:        request.GetString("karar_yil", ""),
			KararSayisi:     request.GetString("karar_sayisi", ""),
			KanunNo:         request.GetString("kanun_no", ""),
			KararDateBegin:  request.GetString("karar_date_begin", ""),
			KararDateEnd:    request.GetString("karar_date_end", ""),
			ResmiGazeteSayi: request.GetString("resmi_gazete_sayi", ""),
			ResmiGazeteDate: request.GetString("resmi_gazete_date", ""),
			Tumce:           request.GetString("tumce", ""),
			WildCard:        request.GetString("wild_card", ""),
			Hepsi:           request.GetString("hepsi", ""),
			HerhangiBirisi:  request.GetString("herhangi_birisi", ""),
			NotHepsi:        request.GetString("not_hepsi", ""),
		}

		result, err := client.Search(ctx, req)
		if err != nil {
			if logger != nil {
				logger.Error().Err(err).Msg("Uyuşmazlık search failed")
			}
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(result)
	}
}

// createGetUyusmazlikDocumentTool defines the Uyuşmazlık document tool.
func createGetUyusmazlikDocumentTool() mcp.Tool {
	return mcp.NewTool("get_uyusmazlik_document_markdown_from_url",
		mcp.WithDescription("Retrieve the full text of a Court of Jurisdictional Disputes (Uyuşmazlık Mahkemesi) decision in Markdown format from its document URL in search results"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithString("document_url",
			mcp.Required(),
			mcp.Description("Full URL of the decision document from search results"),
		),
	)
}

// handleGetUyusmazlikDocument fetches one decision page as Markdown.
func handleGetUyusmazlikDocument(client *uyusmazlik.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		documentURL, err := request.RequireString("document_url")
		if err != nil || documentURL == "" {
			return mcp.NewToolResultError("document_url parameter is required"), nil
		}

		doc, err := client.Document(ctx, documentURL)
		if err != nil {
			if logger != nil {
				logger.Error().Err(err).Str("url", documentURL).Msg("Uyuşmazlık document retrieval failed")
			}
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(doc)
	}
}
