package models

import "strings"

// EmsalSearchRequest is the tool-facing request for the UYAP Emsal
// (precedent) detailed search. Field names stay user friendly; the wire
// payload is produced by ToSearchData.
type EmsalSearchRequest struct {
	Keyword                       string   `json:"keyword,omitempty"`
	SelectedBamCivilCourt         string   `json:"selected_bam_civil_court,omitempty"`
	SelectedCivilCourt            string   `json:"selected_civil_court,omitempty"`
	SelectedRegionalCivilChambers []string `json:"selected_regional_civil_chambers,omitempty"`
	CaseYearEsas                  string   `json:"case_year_esas,omitempty"`
	CaseStartSeqEsas              string   `json:"case_start_seq_esas,omitempty"`
	CaseEndSeqEsas                string   `json:"case_end_seq_esas,omitempty"`
	DecisionYearKarar             string   `json:"decision_year_karar,omitempty"`
	DecisionStartSeqKarar         string   `json:"decision_start_seq_karar,omitempty"`
	DecisionEndSeqKarar           string   `json:"decision_end_seq_karar,omitempty"`
	StartDate                     string   `json:"start_date,omitempty"` // DD.MM.YYYY
	EndDate                       string   `json:"end_date,omitempty"`   // DD.MM.YYYY
	SortCriteria                  string   `json:"sort_criteria,omitempty" validate:"omitempty,oneof=1 2 3"`
	SortDirection                 string   `json:"sort_direction,omitempty" validate:"omitempty,oneof=asc desc"`
	PageNumber                    int      `json:"page_number" validate:"min=1"`
	PageSize                      int      `json:"page_size" validate:"min=1,max=100"`
}

// ApplyDefaults fills sorting and paging defaults.
func (r *EmsalSearchRequest) ApplyDefaults() {
	if r.SortCriteria == "" {
		r.SortCriteria = "1"
	}
	if r.SortDirection == "" {
		r.SortDirection = "desc"
	}
	if r.PageSize == 0 {
		r.PageSize = 10
	}
	if r.PageNumber == 0 {
		r.PageNumber = 1
	}
}

// EmsalSearchData is the "data" object POSTed to the Emsal detailed
// search endpoint. Two of the wire keys literally contain spaces;
// regional chambers are joined with '+'.
type EmsalSearchData struct {
	ArananKelime        string `json:"arananKelime"`
	BamHukukMahkemeleri string `json:"Bam Hukuk Mahkemeleri,omitempty"`
	HukukMahkemeleri    string `json:"Hukuk Mahkemeleri,omitempty"`
	BirimHukukMah       string `json:"birimHukukMah"`
	EsasYil             string `json:"esasYil"`
	EsasIlkSiraNo       string `json:"esasIlkSiraNo"`
	EsasSonSiraNo       string `json:"esasSonSiraNo"`
	KararYil            string `json:"kararYil"`
	KararIlkSiraNo      string `json:"kararIlkSiraNo"`
	KararSonSiraNo      string `json:"kararSonSiraNo"`
	BaslangicTarihi     string `json:"baslangicTarihi"`
	BitisTarihi         string `json:"bitisTarihi"`
	Siralama            string `json:"siralama"`
	SiralamaDirection   string `json:"siralamaDirection"`
	PageSize            int    `json:"pageSize"`
	PageNumber          int    `json:"pageNumber"`
}

// ToSearchData maps the tool-facing request onto the wire payload.
func (r EmsalSearchRequest) ToSearchData() EmsalSearchData {
	return EmsalSearchData{
		ArananKelime:        r.Keyword,
		BamHukukMahkemeleri: r.SelectedBamCivilCourt,
		HukukMahkemeleri:    r.SelectedCivilCourt,
		BirimHukukMah:       strings.Join(r.SelectedRegionalCivilChambers, "+"),
		EsasYil:             r.CaseYearEsas,
		EsasIlkSiraNo:       r.CaseStartSeqEsas,
		EsasSonSiraNo:       r.CaseEndSeqEsas,
		KararYil:            r.DecisionYearKarar,
		KararIlkSiraNo:      r.DecisionStartSeqKarar,
		KararSonSiraNo:      r.DecisionEndSeqKarar,
		BaslangicTarihi:     r.StartDate,
		BitisTarihi:         r.EndDate,
		Siralama:            r.SortCriteria,
		SiralamaDirection:   r.SortDirection,
		PageSize:            r.PageSize,
		PageNumber:          r.PageNumber,
	}
}

// EmsalDecisionEntry is one row of the Emsal search response.
type EmsalDecisionEntry struct {
	ID           string `json:"id"`
	Daire        string `json:"daire,omitempty"`
	EsasNo       string `json:"esasNo,omitempty"`
	KararNo      string `json:"kararNo,omitempty"`
	KararTarihi  string `json:"kararTarihi,omitempty"`
	ArananKelime string `json:"arananKelime,omitempty"`
	Durum        string `json:"durum,omitempty"` // finality status, e.g. "KESİNLEŞMEDİ"
	DocumentURL  string `json:"document_url,omitempty"`
}

// EmsalSearchResponseData is the inner "data" object of the search response.
type EmsalSearchResponseData struct {
	Data            []EmsalDecisionEntry `json:"data"`
	RecordsTotal    int                  `json:"recordsTotal"`
	RecordsFiltered int                  `json:"recordsFiltered"`
}

// EmsalSearchResponse is the full search response envelope.
type EmsalSearchResponse struct {
	Data EmsalSearchResponseData `json:"data"`
}

// EmsalSearchResult is the compact result shape returned to MCP clients.
type EmsalSearchResult struct {
	Decisions     []EmsalDecisionEntry `json:"decisions"`
	TotalRecords  int                  `json:"total_records"`
	RequestedPage int                  `json:"requested_page"`
	PageSize      int                  `json:"page_size"`
}

// EmsalDocument carries one decision converted to Markdown.
type EmsalDocument struct {
	ID              string `json:"id"`
	MarkdownContent string `json:"markdown_content"`
	SourceURL       string `json:"source_url"`
}
