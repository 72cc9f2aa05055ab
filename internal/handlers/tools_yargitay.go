package handlers

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/serkanbykl/yargi-mcp/internal/models"
	"github.com/serkanbykl/yargi-mcp/internal/services/yargitay"
)

// createSearchYargitayDetailedTool defines the primary Yargıtay search tool.
func createSearchYargitayDetailedTool() mcp.Tool {
	return mcp.NewTool("search_yargitay_detailed",
		mcp.WithDescription("Search Court of Cassation (Yargıtay) decisions using the primary official API with advanced search operators, chamber filtering (52 options), and comprehensive criteria. This is Turkey's highest court for civil and criminal matters, providing supreme court precedents"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("arananKelime",
			mcp.Description("Keyword to search. Supports operators: space=OR (tazminat kusur), \"exact phrase\", word1+word2=AND, word*=wildcard, +\"required\" -\"excluded\""),
		),
		mcp.WithString("birimYrgKurulDaire",
			mcp.Description("Yargıtay board or chamber (Hukuk Genel Kurulu, 1.-23. Hukuk Dairesi, Ceza Genel Kurulu, 1.-23. Ceza Dairesi, Büyük Genel Kurulu). Empty for all chambers"),
			mcp.Enum(models.YargitayChambers()...),
		),
		mcp.WithString("birimYrgHukukDaire",
			mcp.Description("Legacy civil chamber field - use birimYrgKurulDaire instead"),
		),
		mcp.WithString("birimYrgCezaDaire",
			mcp.Description("Legacy criminal chamber field - use birimYrgKurulDaire instead"),
		),
		mcp.WithString("esasYil", mcp.Description("Case year (Esas) filter")),
		mcp.WithString("esasIlkSiraNo", mcp.Description("Starting case sequence number")),
		mcp.WithString("esasSonSiraNo", mcp.Description("Ending case sequence number")),
		mcp.WithString("kararYil", mcp.Description("Decision year (Karar) filter")),
		mcp.WithString("kararIlkSiraNo", mcp.Description("Starting decision sequence number")),
		mcp.WithString("kararSonSiraNo", mcp.Description("Ending decision sequence number")),
		mcp.WithString("baslangicTarihi", mcp.Description("Decision start date (DD.MM.YYYY)")),
		mcp.WithString("bitisTarihi", mcp.Description("Decision end date (DD.MM.YYYY)")),
		mcp.WithString("siralama",
			mcp.Description("Sort criteria (1: Esas No, 2: Karar No, 3: Karar Tarihi)"),
			mcp.Enum("1", "2", "3"),
			mcp.DefaultString("3"),
		),
		mcp.WithString("siralamaDirection",
			mcp.Description("Sort direction"),
			mcp.Enum("asc", "desc"),
			mcp.DefaultString("desc"),
		),
		mcp.WithNumber("pageSize",
			mcp.Description("Results per page (1-100)"),
			mcp.DefaultNumber(10),
		),
		mcp.WithNumber("pageNumber",
			mcp.Description("Page number to retrieve"),
			mcp.DefaultNumber(1),
		),
	)
}

// handleSearchYargitayDetailed runs a detailed Yargıtay search.
func handleSearchYargitayDetailed(client *yargitay.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req := models.YargitaySearchRequest{
			ArananKelime:       request.GetString("arananKelime", ""),
			BirimYrgKurulDaire: request.GetString("birimYrgKurulDaire", ""),
			BirimYrgHukukDaire: request.GetString("birimYrgHukukDaire", ""),
			BirimYrgCezaDaire:  request.GetString("birimYrgCezaDaire", ""),
			EsasYil:            request.GetString("esasYil", ""),
			EsasIlkSiraNo:      request.GetString("esasIlkSiraNo", ""),
			EsasSonSiraNo:      request.GetString("esasSonSiraNo", ""),
			KararYil:           request.GetString("kararYil", ""),
			KararIlkSiraNo:     request.GetString("kararIlkSiraNo", ""),
			KararSonSiraNo:     request.GetString("kararSonSiraNo", ""),
			BaslangicTarihi:    request.GetString("baslangicTarihi", ""),
			BitisTarihi:        request.GetString("bitisTarihi", ""),
			Siralama:           request.GetString("siralama", ""),
			SiralamaDirection:  request.GetString("siralamaDirection", ""),
			PageSize:           request.GetInt("pageSize", 10),
			PageNumber:         request.GetInt("pageNumber", 1),
		}

		result, err := client.Search(ctx, req)
		if err != nil {
			if logger != nil {
				logger.Error().Err(err).Msg("Yargıtay search failed")
			}
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(result)
	}
}

// createGetYargitayDocumentTool defines the Yargıtay document tool.
func createGetYargitayDocumentTool() mcp.Tool {
	return mcp.NewTool("get_yargitay_document_markdown",
		mcp.WithDescription("Retrieve the full text of a Court of Cassation (Yargıtay) decision in Markdown format using its document ID from search results"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Document ID from Yargıtay search results"),
		),
	)
}

// handleGetYargitayDocument fetches one Yargıtay decision as Markdown.
func handleGetYargitayDocument(client *yargitay.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil || id == "" {
			return mcp.NewToolResultError("id parameter is required"), nil
		}

		doc, err := client.Document(ctx, id)
		if err != nil {
			if logger != nil {
				logger.Error().Err(err).Str("id", id).Msg("Yargıtay document retrieval failed")
			}
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(doc)
	}
}
