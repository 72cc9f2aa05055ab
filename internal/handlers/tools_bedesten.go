package handlers

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/serkanbykl/yargi-mcp/internal/models"
	"github.com/serkanbykl/yargi-mcp/internal/services/bedesten"
)

// The five Bedesten archives share one search and one document contract,
// so their tools come from two factories. Chamber filtering only exists
// for the Yargıtay and Danıştay archives.

const bedestenPhraseDescription = "Keyword or phrase to search. Wrap in double quotes for an exact phrase (\"mülkiyet kararı\"); without quotes words match anywhere in the decision"

// createBedestenSearchTool builds a search tool definition for one
// Bedesten archive. A nil chambers slice omits the birimAdi parameter.
func createBedestenSearchTool(name, description string, chambers []string) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(description),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("phrase",
			mcp.Required(),
			mcp.Description(bedestenPhraseDescription),
		),
		mcp.WithNumber("pageSize",
			mcp.Description("Results per page (1-100)"),
			mcp.DefaultNumber(10),
		),
		mcp.WithNumber("pageNumber",
			mcp.Description("Page number to retrieve"),
			mcp.DefaultNumber(1),
		),
	}
	if chambers != nil {
		opts = append(opts, mcp.WithString("birimAdi",
			mcp.Description("Chamber filter. Empty for all chambers"),
			mcp.Enum(chambers...),
		))
	}
	opts = append(opts,
		mcp.WithString("kararTarihiStart",
			mcp.Description("Decision start date (ISO 8601, e.g., 2024-01-01T00:00:00.000Z)"),
		),
		mcp.WithString("kararTarihiEnd",
			mcp.Description("Decision end date (ISO 8601, e.g., 2024-12-31T23:59:59.000Z)"),
		),
	)
	return mcp.NewTool(name, opts...)
}

// handleBedestenSearch runs a search against one Bedesten archive.
// withChamber mirrors the tool definition: archives without chamber
// filtering never read birimAdi.
func handleBedestenSearch(client *bedesten.Client, logger arbor.ILogger, itemType string, withChamber bool) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		phrase, err := request.RequireString("phrase")
		if err != nil || phrase == "" {
			return mcp.NewToolResultError("phrase parameter is required"), nil
		}

		data := models.BedestenSearchData{
			Phrase:           phrase,
			ItemTypeList:     []string{itemType},
			PageSize:         request.GetInt("pageSize", 10),
			PageNumber:       request.GetInt("pageNumber", 1),
			KararTarihiStart: request.GetString("kararTarihiStart", ""),
			KararTarihiEnd:   request.GetString("kararTarihiEnd", ""),
		}
		if withChamber {
			data.BirimAdi = request.GetString("birimAdi", "")
		}

		result, err := client.Search(ctx, data)
		if err != nil {
			if logger != nil {
				logger.Error().Err(err).Str("item_type", itemType).Msg("Bedesten search failed")
			}
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(result)
	}
}

// createBedestenDocumentTool builds a document tool definition for one
// Bedesten archive.
func createBedestenDocumentTool(name, description string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription(description),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("Document ID from Bedesten search results"),
		),
	)
}

// handleBedestenDocument fetches one Bedesten document as Markdown. The
// archive is encoded in the document ID, so one handler serves all five
// document tools.
func handleBedestenDocument(client *bedesten.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		documentID, err := request.RequireString("documentId")
		if err != nil || documentID == "" {
			return mcp.NewToolResultError("documentId parameter is required"), nil
		}

		doc, err := client.Document(ctx, documentID)
		if err != nil {
			if logger != nil {
				logger.Error().Err(err).Str("document_id", documentID).Msg("Bedesten document retrieval failed")
			}
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(doc)
	}
}

func createSearchYargitayBedestenTool() mcp.Tool {
	return createBedestenSearchTool("search_yargitay_bedesten",
		"Search Court of Cassation (Yargıtay) decisions using the Bedesten API as an alternative source with exact phrase search, chamber filtering (49 options), and date range support",
		models.YargitayChambers(),
	)
}

func createGetYargitayBedestenDocumentTool() mcp.Tool {
	return createBedestenDocumentTool("get_yargitay_bedesten_document_markdown",
		"Retrieve the full text of a Court of Cassation (Yargıtay) decision from the Bedesten API in Markdown format")
}

func createSearchDanistayBedestenTool() mcp.Tool {
	return createBedestenSearchTool("search_danistay_bedesten",
		"Search Council of State (Danıştay) decisions using the Bedesten API as an alternative source with exact phrase search, chamber filtering (27 options), and date range support",
		models.BedestenDanistayChambers(),
	)
}

func createGetDanistayBedestenDocumentTool() mcp.Tool {
	return createBedestenDocumentTool("get_danistay_bedesten_document_markdown",
		"Retrieve the full text of a Council of State (Danıştay) decision from the Bedesten API in Markdown format")
}

func createSearchYerelHukukBedestenTool() mcp.Tool {
	return createBedestenSearchTool("search_yerel_hukuk_bedesten",
		"Search Local Civil Court (Yerel Hukuk Mahkemesi) decisions using the Bedesten API. This is the only programmatic access to Turkish first-instance civil court decisions",
		nil,
	)
}

func createGetYerelHukukBedestenDocumentTool() mcp.Tool {
	return createBedestenDocumentTool("get_yerel_hukuk_bedesten_document_markdown",
		"Retrieve the full text of a Local Civil Court decision from the Bedesten API in Markdown format")
}

func createSearchIstinafHukukBedestenTool() mcp.Tool {
	return createBedestenSearchTool("search_istinaf_hukuk_bedesten",
		"Search Civil Court of Appeals (İstinaf Hukuk Mahkemesi) decisions using the Bedesten API. These courts review first-instance decisions before they reach the Court of Cassation",
		nil,
	)
}

func createGetIstinafHukukBedestenDocumentTool() mcp.Tool {
	return createBedestenDocumentTool("get_istinaf_hukuk_bedesten_document_markdown",
		"Retrieve the full text of a Civil Court of Appeals (İstinaf) decision from the Bedesten API in Markdown format")
}

func createSearchKybBedestenTool() mcp.Tool {
	return createBedestenSearchTool("search_kyb_bedesten",
		"Search Extraordinary Appeal (Kanun Yararına Bozma) decisions using the Bedesten API. These are extraordinary appeals filed by the Ministry of Justice against finalized decisions",
		nil,
	)
}

func createGetKybBedestenDocumentTool() mcp.Tool {
	return createBedestenDocumentTool("get_kyb_bedesten_document_markdown",
		"Retrieve the full text of an Extraordinary Appeal (Kanun Yararına Bozma) decision from the Bedesten API in Markdown format")
}
