package models

// Rekabet Kurumu decision-type display names as shown in the site's
// dropdown. The search endpoint wants a GUID instead; RekabetKararTuruGuid
// translates.
const (
	RekabetKararTuruTumu          = "Tümü"
	RekabetKararTuruBirlesme      = "Birleşme ve Devralma"
	RekabetKararTuruDiger         = "Diğer"
	RekabetKararTuruMenfiTespit   = "Menfi Tespit ve Muafiyet"
	RekabetKararTuruOzellestirme  = "Özelleştirme"
	RekabetKararTuruRekabetIhlali = "Rekabet İhlali"
)

// RekabetKararTuruOptions lists the selectable decision types.
func RekabetKararTuruOptions() []string {
	return []string{
		RekabetKararTuruTumu,
		RekabetKararTuruBirlesme,
		RekabetKararTuruDiger,
		RekabetKararTuruMenfiTespit,
		RekabetKararTuruOzellestirme,
		RekabetKararTuruRekabetIhlali,
	}
}

// RekabetKararTuruGuid translates a decision-type display name to the
// GUID the search endpoint expects. "Tümü" and unknown names map to the
// empty string, which the site treats as no filter.
func RekabetKararTuruGuid(adi string) string {
	switch adi {
	case RekabetKararTuruBirlesme:
		return "2fff0979-9f9d-42d7-8c2e-a30705889542"
	case RekabetKararTuruDiger:
		return "dda8feaf-c919-405c-9da1-823f22b45ad9"
	case RekabetKararTuruMenfiTespit:
		return "95ccd210-5304-49c5-b9e0-8ee53c50d4e8"
	case RekabetKararTuruOzellestirme:
		return "e1f14505-842b-4af5-95d1-312d6de1a541"
	case RekabetKararTuruRekabetIhlali:
		return "720614bf-efd1-4dca-9785-b98eb65f2677"
	default:
		return ""
	}
}

// RekabetSearchRequest is the request for the Rekabet Kurumu decision
// search. Field names follow the site's query parameters; KararTuru
// carries the dropdown display name and is resolved to the upstream
// GUID when the query is built.
type RekabetSearchRequest struct {
	SayfaAdi         string `json:"sayfaAdi,omitempty"`         // search in decision title
	YayinlanmaTarihi string `json:"YayinlanmaTarihi,omitempty"` // publication date, DD.MM.YYYY
	PdfText          string `json:"PdfText,omitempty"`          // search in decision text, "" quotes for exact phrase
	KararTuru        string `json:"KararTuru,omitempty" validate:"omitempty,oneof=Tümü 'Birleşme ve Devralma' Diğer 'Menfi Tespit ve Muafiyet' Özelleştirme 'Rekabet İhlali'"`
	KararSayisi      string `json:"KararSayisi,omitempty"`
	KararTarihi      string `json:"KararTarihi,omitempty"` // DD.MM.YYYY
	Page             int    `json:"page,omitempty" validate:"omitempty,min=1"`
}

// ApplyDefaults fills the page default.
func (r *RekabetSearchRequest) ApplyDefaults() {
	if r.Page == 0 {
		r.Page = 1
	}
}

// RekabetDecisionSummary is one decision scraped from the search
// results. KararID is the GUID extracted from DecisionURL.
type RekabetDecisionSummary struct {
	PublicationDate  string `json:"publication_date,omitempty"`
	DecisionNumber   string `json:"decision_number,omitempty"`
	DecisionDate     string `json:"decision_date,omitempty"`
	DecisionTypeText string `json:"decision_type_text,omitempty"`
	Title            string `json:"title,omitempty"`
	DecisionURL      string `json:"decision_url,omitempty"`
	KararID          string `json:"karar_id,omitempty"`
	RelatedCasesURL  string `json:"related_cases_url,omitempty"`
}

// RekabetSearchResult is the shape returned to MCP clients.
type RekabetSearchResult struct {
	Decisions           []RekabetDecisionSummary `json:"decisions"`
	TotalRecordsFound   int                      `json:"total_records_found"`
	RetrievedPageNumber int                      `json:"retrieved_page_number"`
	TotalPages          int                      `json:"total_pages,omitempty"`
}

// RekabetDocument carries one Rekabet Kurumu decision: landing-page
// metadata, the resolved PDF link and the PDF text as Markdown paginated
// by PDF page. Failures along the way land in ErrorMessage.
type RekabetDocument struct {
	SourceLandingPageURL string `json:"source_landing_page_url"`
	KararID              string `json:"karar_id"`
	TitleOnLandingPage   string `json:"title_on_landing_page,omitempty"`
	PdfURL               string `json:"pdf_url,omitempty"`
	MarkdownChunk        string `json:"markdown_chunk,omitempty"`
	CurrentPage          int    `json:"current_page"`
	TotalPages           int    `json:"total_pages"`
	IsPaginated          bool   `json:"is_paginated"`
	ErrorMessage         string `json:"error_message,omitempty"`
}
