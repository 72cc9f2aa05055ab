package models

// Anayasa Mahkemesi norm-control search options. The website encodes
// every filter as a numeric ID; "ALL" means the filter is not applied.

// AnayasaPeriodOptions lists constitutional periods (Donemler_id).
func AnayasaPeriodOptions() []string {
	return []string{"ALL", "1", "2"} // 1: 1961, 2: 1982
}

// AnayasaApplicationTypeOptions lists application types (BasvuruTurler_id).
func AnayasaApplicationTypeOptions() []string {
	return []string{"ALL", "1", "2", "3"} // 1: İptal, 2: İtiraz, 3: Diğer
}

// AnayasaVarYokOptions lists the yes/no filter values used for press
// releases, dissenting opinions and different reasonings.
func AnayasaVarYokOptions() []string {
	return []string{"ALL", "0", "1"} // 0: Yok, 1: Var
}

// AnayasaNormTypeOptions lists reviewed-norm types (NormunTurler_id).
func AnayasaNormTypeOptions() []string {
	return []string{"ALL", "1", "2", "14", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12", "0", "13"}
}

// AnayasaReviewOutcomeOptions lists review types and outcomes
// (IncelemeTuruKararSonuclar_id).
func AnayasaReviewOutcomeOptions() []string {
	return []string{"ALL", "1", "2", "3", "4", "5", "6", "7", "8", "12"}
}

// AnayasaOutcomeReasonOptions lists reasons for the final outcome
// (KararSonucununGerekcesi).
func AnayasaOutcomeReasonOptions() []string {
	return []string{
		"ALL", "29", "1", "2", "30", "3", "4", "27", "5", "6", "7", "8", "9", "10",
		"11", "12", "13", "14", "15", "16", "17", "18", "19", "20", "21", "22", "23",
		"24", "25", "26",
	}
}

// AnayasaSortOptions lists the accepted sort criteria for norm-control
// searches. "Toplam" sorts by matched keyword count.
func AnayasaSortOptions() []string {
	return []string{"KararTarihi", "YayinTarihi", "Toplam"}
}

// AnayasaResultsPerPageOptions lists the page sizes the site accepts.
func AnayasaResultsPerPageOptions() []int {
	return []int{10, 20, 30, 40, 50}
}

// AnayasaNormSearchRequest is the tool-facing request for norm-control
// (Norm Denetimi) decision searches on normkararlarbilgibankasi.anayasa.gov.tr.
// The adapter maps each field onto the site's path segments and query
// parameters.
type AnayasaNormSearchRequest struct {
	KeywordsAll     []string `json:"keywords_all,omitempty"`     // KelimeAra[], AND logic
	KeywordsAny     []string `json:"keywords_any,omitempty"`     // HerhangiBirKelimeAra[], OR logic
	KeywordsExclude []string `json:"keywords_exclude,omitempty"` // BulunmayanKelimeAra[]

	Period          string `json:"period,omitempty" validate:"omitempty,oneof=ALL 1 2"`
	ApplicationType string `json:"application_type,omitempty" validate:"omitempty,oneof=ALL 1 2 3"`

	CaseNumberEsas       string `json:"case_number_esas,omitempty"`      // EsasNo, e.g. "2023/123"
	DecisionNumberKarar  string `json:"decision_number_karar,omitempty"` // KararNo
	FirstReviewDateStart string `json:"first_review_date_start,omitempty"` // DD/MM/YYYY
	FirstReviewDateEnd   string `json:"first_review_date_end,omitempty"`
	DecisionDateStart    string `json:"decision_date_start,omitempty"`
	DecisionDateEnd      string `json:"decision_date_end,omitempty"`

	ApplicantGeneralName  string `json:"applicant_general_name,omitempty"`
	ApplicantSpecificName string `json:"applicant_specific_name,omitempty"`

	OfficialGazetteDateStart   string `json:"official_gazette_date_start,omitempty"`
	OfficialGazetteDateEnd     string `json:"official_gazette_date_end,omitempty"`
	OfficialGazetteNumberStart string `json:"official_gazette_number_start,omitempty"`
	OfficialGazetteNumberEnd   string `json:"official_gazette_number_end,omitempty"`

	HasPressRelease       string `json:"has_press_release,omitempty" validate:"omitempty,oneof=ALL 0 1"`
	HasDissentingOpinion  string `json:"has_dissenting_opinion,omitempty" validate:"omitempty,oneof=ALL 0 1"`
	HasDifferentReasoning string `json:"has_different_reasoning,omitempty" validate:"omitempty,oneof=ALL 0 1"`

	AttendingMembersNames []string `json:"attending_members_names,omitempty"` // Uyeler_id[]
	RapporteurName        string   `json:"rapporteur_name,omitempty"`         // Raportorler_id

	NormType     string `json:"norm_type,omitempty" validate:"omitempty,oneof=ALL 1 2 14 3 4 5 6 7 8 9 10 11 12 0 13"`
	NormIDOrName string `json:"norm_id_or_name,omitempty"` // NormunNumarasiAdlar_id
	NormArticle  string `json:"norm_article,omitempty"`    // NormunMaddeNumarasi

	ReviewOutcomes        []string `json:"review_outcomes,omitempty" validate:"omitempty,dive,oneof=ALL 1 2 3 4 5 6 7 8 12"`
	ReasonForFinalOutcome string   `json:"reason_for_final_outcome,omitempty" validate:"omitempty,oneof=ALL 29 1 2 30 3 4 27 5 6 7 8 9 10 11 12 13 14 15 16 17 18 19 20 21 22 23 24 25 26"`

	BasisConstitutionArticleNumbers []string `json:"basis_constitution_article_numbers,omitempty"` // DayanakHukmu[]

	ResultsPerPage int    `json:"results_per_page,omitempty" validate:"omitempty,oneof=10 20 30 40 50"`
	PageToFetch    int    `json:"page_to_fetch,omitempty" validate:"omitempty,min=1"`
	SortByCriteria string `json:"sort_by_criteria,omitempty" validate:"omitempty,oneof=KararTarihi YayinTarihi Toplam"`
}

// ApplyDefaults fills paging and sorting defaults.
func (r *AnayasaNormSearchRequest) ApplyDefaults() {
	if r.Period == "" {
		r.Period = "ALL"
	}
	if r.ApplicationType == "" {
		r.ApplicationType = "ALL"
	}
	if r.HasPressRelease == "" {
		r.HasPressRelease = "ALL"
	}
	if r.HasDissentingOpinion == "" {
		r.HasDissentingOpinion = "ALL"
	}
	if r.HasDifferentReasoning == "" {
		r.HasDifferentReasoning = "ALL"
	}
	if r.NormType == "" {
		r.NormType = "ALL"
	}
	if r.ReasonForFinalOutcome == "" {
		r.ReasonForFinalOutcome = "ALL"
	}
	if r.ResultsPerPage == 0 {
		r.ResultsPerPage = 10
	}
	if r.PageToFetch == 0 {
		r.PageToFetch = 1
	}
	if r.SortByCriteria == "" {
		r.SortByCriteria = "KararTarihi"
	}
}

// AnayasaReviewedNorm describes one norm reviewed within a decision
// summary.
type AnayasaReviewedNorm struct {
	NormNameOrNumber              string   `json:"norm_name_or_number,omitempty"`
	ArticleNumber                 string   `json:"article_number,omitempty"`
	ReviewTypeAndOutcome          string   `json:"review_type_and_outcome,omitempty"`
	OutcomeReason                 string   `json:"outcome_reason,omitempty"`
	BasisConstitutionArticlesCited []string `json:"basis_constitution_articles_cited,omitempty"`
	PostponementPeriod            string   `json:"postponement_period,omitempty"`
}

// AnayasaDecisionSummary is one norm-control decision parsed from the
// search results page.
type AnayasaDecisionSummary struct {
	DecisionReferenceNo    string                `json:"decision_reference_no,omitempty"` // E.K. number, e.g. "E.2023/1, K.2023/10"
	DecisionPageURL        string                `json:"decision_page_url,omitempty"`
	KeywordsFoundCount     int                   `json:"keywords_found_count,omitempty"`
	ApplicationTypeSummary string                `json:"application_type_summary,omitempty"`
	ApplicantSummary       string                `json:"applicant_summary,omitempty"`
	DecisionOutcomeSummary string                `json:"decision_outcome_summary,omitempty"`
	DecisionDateSummary    string                `json:"decision_date_summary,omitempty"`
	ReviewedNorms          []AnayasaReviewedNorm `json:"reviewed_norms,omitempty"`
}

// AnayasaSearchResult is the norm-control search shape returned to MCP
// clients.
type AnayasaSearchResult struct {
	Decisions           []AnayasaDecisionSummary `json:"decisions"`
	TotalRecordsFound   int                      `json:"total_records_found"`
	RetrievedPageNumber int                      `json:"retrieved_page_number"`
}

// AnayasaDocument carries one norm-control decision as a paginated
// Markdown chunk together with metadata parsed from the document page.
type AnayasaDocument struct {
	SourceURL                   string `json:"source_url"`
	DecisionReferenceNoFromPage string `json:"decision_reference_no_from_page,omitempty"`
	DecisionDateFromPage        string `json:"decision_date_from_page,omitempty"`
	OfficialGazetteInfoFromPage string `json:"official_gazette_info_from_page,omitempty"`
	MarkdownChunk               string `json:"markdown_chunk"`
	CurrentPage                 int    `json:"current_page"`
	TotalPages                  int    `json:"total_pages"`
	IsPaginated                 bool   `json:"is_paginated"`
}

// AnayasaBireyselReportSearchRequest is the tool-facing request for the
// individual-application (Bireysel Başvuru) decision report on
// kararlarbilgibankasi.anayasa.gov.tr. The report endpoint serves a
// fixed ten rows per page.
type AnayasaBireyselReportSearchRequest struct {
	Keywords    []string `json:"keywords,omitempty"` // KelimeAra[], AND logic
	PageToFetch int      `json:"page_to_fetch,omitempty" validate:"omitempty,min=1"`
}

// ApplyDefaults fills the page default.
func (r *AnayasaBireyselReportSearchRequest) ApplyDefaults() {
	if r.PageToFetch == 0 {
		r.PageToFetch = 1
	}
}

// AnayasaBireyselReportDetail describes one examined right within an
// individual-application decision summary.
type AnayasaBireyselReportDetail struct {
	Hak             string `json:"hak,omitempty"`              // claimed right, e.g. "Mülkiyet hakkı"
	MudahaleIddiasi string `json:"mudahale_iddiasi,omitempty"` // alleged interference
	Sonuc           string `json:"sonuc,omitempty"`            // outcome, e.g. "İhlal"
	Giderim         string `json:"giderim,omitempty"`          // redress, e.g. "Yeniden yargılama"
}

// AnayasaBireyselReportDecision is one decision row of the report.
type AnayasaBireyselReportDecision struct {
	Title                   string                        `json:"title,omitempty"`
	DecisionReferenceNo     string                        `json:"decision_reference_no,omitempty"` // application number, e.g. "2019/19126"
	DecisionPageURL         string                        `json:"decision_page_url,omitempty"`
	DecisionTypeSummary     string                        `json:"decision_type_summary,omitempty"`
	DecisionMakingBody      string                        `json:"decision_making_body,omitempty"`
	ApplicationDateSummary  string                        `json:"application_date_summary,omitempty"`
	DecisionDateSummary     string                        `json:"decision_date_summary,omitempty"`
	ApplicationSubjectSummary string                      `json:"application_subject_summary,omitempty"`
	Details                 []AnayasaBireyselReportDetail `json:"details,omitempty"`
}

// AnayasaBireyselReportSearchResult is the report shape returned to MCP
// clients.
type AnayasaBireyselReportSearchResult struct {
	Decisions           []AnayasaBireyselReportDecision `json:"decisions"`
	TotalRecordsFound   int                             `json:"total_records_found"`
	RetrievedPageNumber int                             `json:"retrieved_page_number"`
}

// AnayasaBireyselDocument carries one individual-application decision as
// a paginated Markdown chunk together with metadata parsed from the
// document page.
type AnayasaBireyselDocument struct {
	SourceURL                string `json:"source_url"`
	BasvuruNoFromPage        string `json:"basvuru_no_from_page,omitempty"`
	KararTarihiFromPage      string `json:"karar_tarihi_from_page,omitempty"`
	BasvuruTarihiFromPage    string `json:"basvuru_tarihi_from_page,omitempty"`
	KarariVerenBirimFromPage string `json:"karari_veren_birim_from_page,omitempty"`
	KararTuruFromPage        string `json:"karar_turu_from_page,omitempty"`
	ResmiGazeteInfoFromPage  string `json:"resmi_gazete_info_from_page,omitempty"`
	MarkdownChunk            string `json:"markdown_chunk"`
	CurrentPage              int    `json:"current_page"`
	TotalPages               int    `json:"total_pages"`
	IsPaginated              bool   `json:"is_paginated"`
}
