package handlers

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/serkanbykl/yargi-mcp/internal/models"
	"github.com/serkanbykl/yargi-mcp/internal/services/emsal"
)

// createSearchEmsalTool defines the UYAP Emsal precedent search tool.
func createSearchEmsalTool() mcp.Tool {
	return mcp.NewTool("search_emsal_detailed_decisions",
		mcp.WithDescription("Search UYAP Emsal (precedent) decisions from Turkish civil courts and regional courts of appeal using detailed criteria. Covers first-instance and appellate precedents beyond the supreme courts"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("keyword", mcp.Description("Keyword to search in decision text")),
		mcp.WithString("selected_bam_civil_court", mcp.Description("Regional court of appeal (BAM) civil court selection")),
		mcp.WithString("selected_civil_court", mcp.Description("First-instance civil court selection")),
		mcp.WithArray("selected_regional_civil_chambers",
			mcp.WithStringItems(),
			mcp.Description("Regional civil chamber selections, combined into one filter"),
		),
		mcp.WithString("case_year_esas", mcp.Description("Case year (Esas) filter")),
		mcp.WithString("case_start_seq_esas", mcp.Description("Starting case sequence number")),
		mcp.WithString("case_end_seq_esas", mcp.Description("Ending case sequence number")),
		mcp.WithString("decision_year_karar", mcp.Description("Decision year (Karar) filter")),
		mcp.WithString("decision_start_seq_karar", mcp.Description("Starting decision sequence number")),
		mcp.WithString("decision_end_seq_karar", mcp.Description("Ending decision sequence number")),
		mcp.WithString("start_date", mcp.Description("Decision start date (DD.MM.YYYY)")),
		mcp.WithString("end_date", mcp.Description("Decision end date (DD.MM.YYYY)")),
		mcp.WithString("sort_criteria",
			mcp.Description("Sort criteria (1: Esas No, 2: Karar No, 3: Karar Tarihi)"),
			mcp.Enum("1", "2", "3"),
			mcp.DefaultString("1"),
		),
		mcp.WithString("sort_direction",
			mcp.Description("Sort direction"),
			mcp.Enum("asc", "desc"),
			mcp.DefaultString("desc"),
		),
		mcp.WithNumber("page_number",
			mcp.Description("Page number to retrieve"),
			mcp.DefaultNumber(1),
		),
		mcp.WithNumber("page_size",
			mcp.Description("Results per page (1-100)"),
			mcp.DefaultNumber(10),
		),
	)
}

// handleSearchEmsal runs a detailed Emsal search.
func handleSearchEmsal(client *emsal.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req := models.EmsalSearchRequest{
			Keyword:                       request.GetString("keyword", ""),
			SelectedBamCivilCourt:         request.GetString("selected_bam_civil_court", ""),
			SelectedCivilCourt:            request.GetString("selected_civil_court", ""),
			SelectedRegionalCivilChambers: request.GetStringSlice("selected_regional_civil_chambers", nil),
			CaseYearEsas:                  request.GetString("case_year_esas", ""),
			CaseStartSeqEsas:              request.GetString("case_start_seq_esas", ""),
			CaseEndSeqEsas:                request.GetString("case_end_seq_esas", ""),
			DecisionYearKarar:             request.GetString("decision_year_karar", ""),
			DecisionStartSeqKarar:         request.GetString("decision_start_seq_karar", ""),
			DecisionEndSeqKarar:           request.GetString("decision_end_seq_karar", ""),
			StartDate:                     request.GetString("start_date", ""),
			EndDate:                       request.GetString("end_date", ""),
			SortCriteria:                  request.GetString("sort_criteria", ""),
			SortDirection:                 request.GetString("sort_direction", ""),
			PageNumber:                    request.GetInt("page_number", 1),
			PageSize:                      request.GetInt("page_size", 10),
		}

		result, err := client.Search(ctx, req)
		if err != nil {
			if logger != nil {
				logger.Error().Err(err).Msg("Emsal search failed")
			}
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(result)
	}
}

// createGetEmsalDocumentTool defines the Emsal document tool.
func createGetEmsalDocumentTool() mcp.Tool {
	return mcp.NewTool("get_emsal_document_markdown",
		mcp.WithDescription("Retrieve the full text of a UYAP Emsal precedent decision in Markdown format using its document ID from search results"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Document ID from Emsal search results"),
		),
	)
}

// handleGetEmsalDocument fetches one Emsal decision as Markdown.
func handleGetEmsalDocument(client *emsal.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil || id == "" {
			return mcp.NewToolResultError("id parameter is required"), nil
		}

		doc, err := client.Document(ctx, id)
		if err != nil {
			if logger != nil {
				logger.Error().Err(err).Str("id", id).Msg("Emsal document retrieval failed")
			}
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(doc)
	}
}
