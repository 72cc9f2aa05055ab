package models

import "fmt"

// YargitayChambers lists every selectable Yargıtay board and chamber in
// the order the search form presents them. The leading empty value means
// "all chambers".
func YargitayChambers() []string {
	chambers := make([]string, 0, 52)
	chambers = append(chambers, "", "Hukuk Genel Kurulu")
	for i := 1; i <= 23; i++ {
		chambers = append(chambers, fmt.Sprintf("%d. Hukuk Dairesi", i))
	}
	chambers = append(chambers, "Hukuk Daireleri Başkanlar Kurulu", "Ceza Genel Kurulu")
	for i := 1; i <= 23; i++ {
		chambers = append(chambers, fmt.Sprintf("%d. Ceza Dairesi", i))
	}
	chambers = append(chambers, "Ceza Daireleri Başkanlar Kurulu", "Büyük Genel Kurulu")
	return chambers
}

// YargitaySearchRequest is the "data" object POSTed to the Yargıtay
// detailed search endpoint. Field tags match the wire keys exactly; the
// API expects empty strings for omitted criteria.
type YargitaySearchRequest struct {
	ArananKelime       string `json:"arananKelime"`       // keyword, supports "", * wildcards, +required, -excluded
	BirimYrgKurulDaire string `json:"birimYrgKurulDaire" validate:"yargitay_chamber"` // board selection (e.g. "Hukuk Genel Kurulu")
	BirimYrgHukukDaire string `json:"birimYrgHukukDaire"` // civil chamber selection
	BirimYrgCezaDaire  string `json:"birimYrgCezaDaire"`  // criminal chamber selection
	EsasYil            string `json:"esasYil"`
	EsasIlkSiraNo      string `json:"esasIlkSiraNo"`
	EsasSonSiraNo      string `json:"esasSonSiraNo"`
	KararYil           string `json:"kararYil"`
	KararIlkSiraNo     string `json:"kararIlkSiraNo"`
	KararSonSiraNo     string `json:"kararSonSiraNo"`
	BaslangicTarihi    string `json:"baslangicTarihi"` // DD.MM.YYYY
	BitisTarihi        string `json:"bitisTarihi"`     // DD.MM.YYYY
	Siralama           string `json:"siralama" validate:"omitempty,oneof=1 2 3"`
	SiralamaDirection  string `json:"siralamaDirection" validate:"omitempty,oneof=asc desc"`
	PageSize           int    `json:"pageSize" validate:"min=1,max=100"`
	PageNumber         int    `json:"pageNumber" validate:"min=1"`
}

// ApplyDefaults fills the defaults the search endpoint expects for
// omitted fields: sort by decision date, newest first, first page of ten.
func (r *YargitaySearchRequest) ApplyDefaults() {
	if r.Siralama == "" {
		r.Siralama = "3"
	}
	if r.SiralamaDirection == "" {
		r.SiralamaDirection = "desc"
	}
	if r.PageSize == 0 {
		r.PageSize = 10
	}
	if r.PageNumber == 0 {
		r.PageNumber = 1
	}
}

// YargitayDecisionEntry is one row of the Yargıtay search response.
// DocumentURL is filled in by the adapter, not the upstream.
type YargitayDecisionEntry struct {
	ID           string `json:"id"`
	Daire        string `json:"daire,omitempty"`
	EsasNo       string `json:"esasNo,omitempty"`
	KararNo      string `json:"kararNo,omitempty"`
	KararTarihi  string `json:"kararTarihi,omitempty"`
	ArananKelime string `json:"arananKelime,omitempty"`
	DocumentURL  string `json:"document_url,omitempty"`
}

// YargitaySearchData is the inner "data" object of the search response.
type YargitaySearchData struct {
	Data            []YargitayDecisionEntry `json:"data"`
	RecordsTotal    int                     `json:"recordsTotal"`
	RecordsFiltered int                     `json:"recordsFiltered"`
}

// YargitaySearchResponse is the full search response envelope.
type YargitaySearchResponse struct {
	Data YargitaySearchData `json:"data"`
}

// YargitaySearchResult is the compact result shape returned to MCP clients.
type YargitaySearchResult struct {
	Decisions     []YargitayDecisionEntry `json:"decisions"`
	TotalRecords  int                     `json:"total_records"`
	RequestedPage int                     `json:"requested_page"`
	PageSize      int                     `json:"page_size"`
}

// YargitayDocument carries one decision converted to Markdown.
type YargitayDocument struct {
	ID              string `json:"id"`
	MarkdownContent string `json:"markdown_content"`
	SourceURL       string `json:"source_url"`
}
