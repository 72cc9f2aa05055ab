package models

// DanistayKeywordSearchRequest is the "data" object for the Danıştay
// keyword search endpoint. All four lists combine into one boolean query.
type DanistayKeywordSearchRequest struct {
	AndKelimeler    []string `json:"andKelimeler"`    // all must appear
	OrKelimeler     []string `json:"orKelimeler"`     // at least one must appear
	NotAndKelimeler []string `json:"notAndKelimeler"` // none may appear together
	NotOrKelimeler  []string `json:"notOrKelimeler"`  // none may appear
	PageSize        int      `json:"pageSize" validate:"min=1,max=100"`
	PageNumber      int      `json:"pageNumber" validate:"min=1"`
}

// ApplyDefaults fills paging defaults and normalizes nil keyword lists to
// empty ones, which the API requires to be present.
func (r *DanistayKeywordSearchRequest) ApplyDefaults() {
	if r.AndKelimeler == nil {
		r.AndKelimeler = []string{}
	}
	if r.OrKelimeler == nil {
		r.OrKelimeler = []string{}
	}
	if r.NotAndKelimeler == nil {
		r.NotAndKelimeler = []string{}
	}
	if r.NotOrKelimeler == nil {
		r.NotOrKelimeler = []string{}
	}
	if r.PageSize == 0 {
		r.PageSize = 10
	}
	if r.PageNumber == 0 {
		r.PageNumber = 1
	}
}

// DanistayDetailedSearchRequest is the "data" object for the Danıştay
// detailed search endpoint. The API expects empty strings for omitted
// criteria.
type DanistayDetailedSearchRequest struct {
	Daire             string `json:"daire"` // chamber name, e.g. "3. Daire"
	EsasYil           string `json:"esasYil"`
	EsasIlkSiraNo     string `json:"esasIlkSiraNo"`
	EsasSonSiraNo     string `json:"esasSonSiraNo"`
	KararYil          string `json:"kararYil"`
	KararIlkSiraNo    string `json:"kararIlkSiraNo"`
	KararSonSiraNo    string `json:"kararSonSiraNo"`
	BaslangicTarihi   string `json:"baslangicTarihi"` // DD.MM.YYYY
	BitisTarihi       string `json:"bitisTarihi"`     // DD.MM.YYYY
	MevzuatNumarasi   string `json:"mevzuatNumarasi"` // legislation number
	MevzuatAdi        string `json:"mevzuatAdi"`      // legislation name
	Madde             string `json:"madde"`           // article number
	Siralama          string `json:"siralama" validate:"omitempty,oneof=1 2 3"`
	SiralamaDirection string `json:"siralamaDirection" validate:"omitempty,oneof=asc desc"`
	PageSize          int    `json:"pageSize" validate:"min=1,max=100"`
	PageNumber        int    `json:"pageNumber" validate:"min=1"`
}

// ApplyDefaults fills the defaults the detailed search endpoint expects.
func (r *DanistayDetailedSearchRequest) ApplyDefaults() {
	if r.Siralama == "" {
		r.Siralama = "1"
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

// DanistayDecisionEntry is one row of a Danıştay search response. The
// keyword endpoint reports the chamber under "daire", the detailed
// endpoint under "daireKurul"; Chamber merges the two.
type DanistayDecisionEntry struct {
	ID           string `json:"id"`
	Daire        string `json:"daire,omitempty"`
	DaireKurul   string `json:"daireKurul,omitempty"`
	EsasNo       string `json:"esasNo,omitempty"`
	KararNo      string `json:"kararNo,omitempty"`
	KararTarihi  string `json:"kararTarihi,omitempty"`
	ArananKelime string `json:"arananKelime,omitempty"`
	DocumentURL  string `json:"document_url,omitempty"`
}

// Chamber returns whichever chamber field the response populated.
func (e DanistayDecisionEntry) Chamber() string {
	if e.Daire != "" {
		return e.Daire
	}
	return e.DaireKurul
}

// DanistaySearchData is the inner "data" object of a search response.
type DanistaySearchData struct {
	Data            []DanistayDecisionEntry `json:"data"`
	RecordsTotal    int                     `json:"recordsTotal"`
	RecordsFiltered int                     `json:"recordsFiltered"`
}

// DanistaySearchResponse is the full search response envelope.
type DanistaySearchResponse struct {
	Data DanistaySearchData `json:"data"`
}

// DanistaySearchResult is the compact result shape returned to MCP clients.
type DanistaySearchResult struct {
	Decisions     []DanistayDecisionEntry `json:"decisions"`
	TotalRecords  int                     `json:"total_records"`
	RequestedPage int                     `json:"requested_page"`
	PageSize      int                     `json:"page_size"`
}

// DanistayDocument carries one decision converted to Markdown.
type DanistayDocument struct {
	ID              string `json:"id"`
	MarkdownContent string `json:"markdown_content"`
	SourceURL       string `json:"source_url"`
}
