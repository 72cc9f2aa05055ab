package handlers

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/serkanbykl/yargi-mcp/internal/models"
	"github.com/serkanbykl/yargi-mcp/internal/services/anayasa"
)

// createSearchAnayasaNormTool defines the Constitutional Court
// norm-control search tool.
func createSearchAnayasaNormTool() mcp.Tool {
	return mcp.NewTool("search_anayasa_norm_denetimi_decisions",
		mcp.WithDescription("Search Constitutional Court (Anayasa Mahkemesi) norm control decisions, which review the constitutionality of laws, decrees, and parliamentary rules. Supports keyword logic, period, applicant, norm type, review outcome, and Official Gazette filters"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithArray("keywords_all",
			mcp.WithStringItems(),
			mcp.Description("Keywords that must ALL appear (AND logic)"),
		),
		mcp.WithArray("keywords_any",
			mcp.WithStringItems(),
			mcp.Description("Keywords where at least ONE must appear (OR logic)"),
		),
		mcp.WithArray("keywords_exclude",
			mcp.WithStringItems(),
			mcp.Description("Keywords that must NOT appear"),
		),
		mcp.WithString("period",
			mcp.Description("Constitutional period (ALL, 1: 1961 Constitution, 2: 1982 Constitution)"),
			mcp.Enum(models.AnayasaPeriodOptions()...),
		),
		mcp.WithString("case_number_esas", mcp.Description("Case registry number (e.g., '2023/123')")),
		mcp.WithString("decision_number_karar", mcp.Description("Decision number (e.g., '2023/45')")),
		mcp.WithString("first_review_date_start", mcp.Description("First review start date (DD/MM/YYYY)")),
		mcp.WithString("first_review_date_end", mcp.Description("First review end date (DD/MM/YYYY)")),
		mcp.WithString("decision_date_start", mcp.Description("Decision start date (DD/MM/YYYY)")),
		mcp.WithString("decision_date_end", mcp.Description("Decision end date (DD/MM/YYYY)")),
		mcp.WithString("application_type",
			mcp.Description("Application type (ALL, 1: İptal, 2: İtiraz, 3: Diğer)"),
			mcp.Enum(models.AnayasaApplicationTypeOptions()...),
		),
		mcp.WithString("applicant_general_name", mcp.Description("Applicant by general category name")),
		mcp.WithString("applicant_specific_name", mcp.Description("Applicant by specific name")),
		mcp.WithString("official_gazette_date_start", mcp.Description("Official Gazette start date (DD/MM/YYYY)")),
		mcp.WithString("official_gazette_date_end", mcp.Description("Official Gazette end date (DD/MM/YYYY)")),
		mcp.WithString("official_gazette_number_start", mcp.Description("Official Gazette starting number")),
		mcp.WithString("official_gazette_number_end", mcp.Description("Official Gazette ending number")),
		mcp.WithString("has_press_release",
			mcp.Description("Press release filter (ALL, 0: No, 1: Yes)"),
			mcp.Enum(models.AnayasaVarYokOptions()...),
		),
		mcp.WithString("has_dissenting_opinion",
			mcp.Description("Dissenting opinion filter (ALL, 0: No, 1: Yes)"),
			mcp.Enum(models.AnayasaVarYokOptions()...),
		),
		mcp.WithString("has_different_reasoning",
			mcp.Description("Different reasoning filter (ALL, 0: No, 1: Yes)"),
			mcp.Enum(models.AnayasaVarYokOptions()...),
		),
		mcp.WithArray("attending_members_names",
			mcp.WithStringItems(),
			mcp.Description("Names of Constitutional Court members who attended the session"),
		),
		mcp.WithString("rapporteur_name", mcp.Description("Rapporteur name")),
		mcp.WithString("norm_type",
			mcp.Description("Type of the reviewed norm (ALL, or a numeric norm type ID such as 1: Law, 2: Presidential Decree)"),
			mcp.Enum(models.AnayasaNormTypeOptions()...),
		),
		mcp.WithString("norm_id_or_name", mcp.Description("Number or name of the reviewed norm")),
		mcp.WithString("norm_article", mcp.Description("Article number of the reviewed norm")),
		mcp.WithArray("review_outcomes",
			mcp.WithStringItems(),
			mcp.Description("Review type and outcome IDs (ALL, or numeric IDs such as 1: Esas - İptal)"),
		),
		mcp.WithString("reason_for_final_outcome",
			mcp.Description("Reason for the final outcome (ALL, or a numeric reason ID)"),
			mcp.Enum(models.AnayasaOutcomeReasonOptions()...),
		),
		mcp.WithArray("basis_constitution_article_numbers",
			mcp.WithStringItems(),
			mcp.Description("Constitution article numbers the review was based on"),
		),
		mcp.WithNumber("results_per_page",
			mcp.Description("Results per page (10, 20, 30, 40, 50)"),
			mcp.DefaultNumber(10),
		),
		mcp.WithNumber("page_to_fetch",
			mcp.Description("Page number to retrieve"),
			mcp.DefaultNumber(1),
		),
		mcp.WithString("sort_by_criteria",
			mcp.Description("Sort criteria (KararTarihi: decision date, YayinTarihi: publication date, Toplam: matched keyword count)"),
			mcp.Enum(models.AnayasaSortOptions()...),
			mcp.DefaultString("KararTarihi"),
		),
	)
}

// handleSearchAnayasaNorm runs a norm-control search.
func handleSearchAnayasaNorm(client *anayasa.NormClient, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req := models.AnayasaNormSearchRequest{
			KeywordsAll:     request.GetStringSlice("keywords_all", nil),
			KeywordsAny:     request.GetStringSlice("keywords_any", nil),
			KeywordsExclude: request.GetStringSlice("keywords_exclude", nil),

			Period:          request.GetString("period", ""),
			ApplicationType: request.GetString("application_type", ""),

			CaseNumberEsas:       request.GetString("case_number_esas", ""),
			DecisionNumberKarar:  request.GetString("decision_number_karar", ""),
			FirstReviewDateStart: request.GetString("first_review_date_start", ""),
			FirstReviewDateEnd:   request.GetString("first_review_date_end", ""),
			DecisionDateStart:    request.GetString("decision_date_start", ""),
			DecisionDateEnd:      request.GetString("decision_date_end", ""),

			ApplicantGeneralName:  request.GetString("applicant_general_name", ""),
			ApplicantSpecificName: request.GetString("applicant_specific_name", ""),

			OfficialGazetteDateStart:   request.GetString("official_gazette_date_start", ""),
			OfficialGazetteDateEnd:     request.GetString("official_gazette_date_end", ""),
			OfficialGazetteNumberStart: request.GetString("official_gazette_number_start", ""),
			OfficialGazetteNumberEnd:   request.GetString("official_gazette_number_end", ""),

			HasPressRelease:       request.GetString("has_press_release", ""),
			HasDissentingOpinion:  request.GetString("has_dissenting_opinion", ""),
			HasDifferentReasoning: request.GetString("has_different_reasoning", ""),

			AttendingMembersNames: request.GetStringSlice("attending_members_names", nil),
			RapporteurName:        request.GetString("rapporteur_name", ""),

			NormType:     request.GetString("norm_type", ""),
			NormIDOrName: request.GetString("norm_id_or_name", ""),
			NormArticle:  request.GetString("norm_article", ""),

			ReviewOutcomes:        request.GetStringSlice("review_outcomes", nil),
			ReasonForFinalOutcome: request.GetString("reason_for_final_outcome", ""),

			BasisConstitutionArticleNumbers: request.GetStringSlice("basis_constitution_article_numbers", nil),

			ResultsPerPage: request.GetInt("results_per_page", 10),
			PageToFetch:    request.GetInt("page_to_fetch", 1),
			SortByCriteria: request.GetString("sort_by_criteria", ""),
		}

		result, err := client.Search(ctx, req)
		if err != nil {
			if logger != nil {
				logger.Error().Err(err).Msg("Anayasa norm-control search failed")
			}
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(result)
	}
}

// createGetAnayasaNormDocumentTool defines the norm-control document tool.
func createGetAnayasaNormDocumentTool() mcp.Tool {
	return mcp.NewTool("get_anayasa_norm_denetimi_document_markdown",
		mcp.WithDescription("Retrieve a Constitutional Court norm control decision in paginated Markdown format (5,000 character pages) from its URL. Use page_number to read long decisions chunk by chunk"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithString("document_url",
			mcp.Required(),
			mcp.Description("Decision URL from search results (/ND/YYYY/NN path or full https URL)"),
		),
		mcp.WithNumber("page_number",
			mcp.Description("Page of the Markdown content to retrieve (5,000 characters per page)"),
			mcp.DefaultNumber(1),
		),
	)
}

// handleGetAnayasaNormDocument fetches one norm-control decision chunk.
func handleGetAnayasaNormDocument(client *anayasa.NormClient, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		documentURL, err := request.RequireString("document_url")
		if err != nil || documentURL == "" {
			return mcp.NewToolResultError("document_url parameter is required"), nil
		}
		pageNumber := request.GetInt("page_number", 1)

		doc, err := client.Document(ctx, documentURL, pageNumber)
		if err != nil {
			if logger != nil {
				logger.Error().Err(err).Str("url", documentURL).Msg("Anayasa norm-control document retrieval failed")
			}
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(doc)
	}
}

// createSearchAnayasaBireyselTool defines the individual-application
// report search tool.
func createSearchAnayasaBireyselTool() mcp.Tool {
	return mcp.NewTool("search_anayasa_bireysel_basvuru_report",
		mcp.WithDescription("Search Constitutional Court (Anayasa Mahkemesi) individual application (Bireysel Başvuru) decisions as a 'Karar Arama Raporu' report. These decisions address human rights violation claims by individuals"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithArray("keywords",
			mcp.WithStringItems(),
			mcp.Description("Keywords that must ALL appear (AND logic)"),
		),
		mcp.WithNumber("page_to_fetch",
			mcp.Description("Page number to retrieve (10 decisions per page)"),
			mcp.DefaultNumber(1),
		),
	)
}

// handleSearchAnayasaBireysel runs an individual-application report search.
func handleSearchAnayasaBireysel(client *anayasa.BireyselClient, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req := models.AnayasaBireyselReportSearchRequest{
			Keywords:    request.GetStringSlice("keywords", nil),
			PageToFetch: request.GetInt("page_to_fetch", 1),
		}

		result, err := client.SearchReport(ctx, req)
		if err != nil {
			if logger != nil {
				logger.Error().Err(err).Msg("Anayasa individual-application search failed")
			}
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(result)
	}
}

// createGetAnayasaBireyselDocumentTool defines the individual-application
// document tool.
func createGetAnayasaBireyselDocumentTool() mcp.Tool {
	return mcp.NewTool("get_anayasa_bireysel_basvuru_document_markdown",
		mcp.WithDescription("Retrieve a Constitutional Court individual application (Bireysel Başvuru) decision in paginated Markdown format (5,000 character pages) from its /BB/YYYY/NNNN document path"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithString("document_url_path",
			mcp.Required(),
			mcp.Description("Decision path from search results, must start with /BB/ (e.g., /BB/2021/20295)"),
		),
		mcp.WithNumber("page_number",
			mcp.Description("Page of the Markdown content to retrieve (5,000 characters per page)"),
			mcp.DefaultNumber(1),
		),
	)
}

// handleGetAnayasaBireyselDocument fetches one individual-application
// decision chunk. The path prefix check mirrors the report links, which
// always point under /BB/.
func handleGetAnayasaBireyselDocument(client *anayasa.BireyselClient, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		documentURLPath, err := request.RequireString("document_url_path")
		if err != nil || documentURLPath == "" {
			return mcp.NewToolResultError("document_url_path parameter is required"), nil
		}
		if !strings.HasPrefix(documentURLPath, "/BB/") {
			return mcp.NewToolResultError("document_url_path must start with /BB/ (e.g., /BB/2021/20295)"), nil
		}
		pageNumber := request.GetInt("page_number", 1)

		doc, err := client.Document(ctx, documentURLPath, pageNumber)
		if err != nil {
			if logger != nil {
				logger.Error().Err(err).Str("path", documentURLPath).Msg("Anayasa individual-application document retrieval failed")
			}
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(doc)
	}
}
