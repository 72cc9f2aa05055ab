package models

// Bedesten item types route one unified search API to the different
// court archives behind bedesten.adalet.gov.tr.
const (
	BedestenItemTypeYargitay     = "YARGITAYKARARI" // Court of Cassation
	BedestenItemTypeDanistay     = "DANISTAYKARAR"  // Council of State
	BedestenItemTypeYerelHukuk   = "YERELHUKUK"     // local civil courts
	BedestenItemTypeIstinafHukuk = "ISTINAFHUKUK"   // civil courts of appeals
	BedestenItemTypeKYB          = "KYB"            // extraordinary appeals (Kanun Yararına Bozma)
)

// BedestenDanistayChambers lists the Danıştay chamber filter values the
// Bedesten API accepts. The leading empty value means "all".
func BedestenDanistayChambers() []string {
	return []string{
		"",
		"Büyük Gen.Kur.",
		"İdare Dava Daireleri Kurulu",
		"Vergi Dava Daireleri Kurulu",
		"İçtihatları Birleştirme Kurulu",
		"İdari İşler Kurulu",
		"Başkanlar Kurulu",
		"1. Daire", "2. Daire", "3. Daire", "4. Daire", "5. Daire",
		"6. Daire", "7. Daire", "8. Daire", "9. Daire", "10. Daire",
		"11. Daire", "12. Daire", "13. Daire", "14. Daire", "15. Daire",
		"16. Daire", "17. Daire",
		"Askeri Yüksek İdare Mahkemesi",
		"Askeri Yüksek İdare Mahkemesi Daireler Kurulu",
		"Askeri Yüksek İdare Mahkemesi Başsavcılığı",
		"Askeri Yüksek İdare Mahkemesi 1. Daire",
		"Askeri Yüksek İdare Mahkemesi 2. Daire",
		"Askeri Yüksek İdare Mahkemesi 3. Daire",
	}
}

// BedestenSearchData is the "data" object of a Bedesten search request.
// Dates use ISO 8601 with milliseconds and a Z suffix
// ("2024-01-01T00:00:00.000Z"). Phrases wrapped in double quotes search
// as an exact phrase.
type BedestenSearchData struct {
	PageSize         int      `json:"pageSize" validate:"min=1,max=100"`
	PageNumber       int      `json:"pageNumber" validate:"min=1"`
	ItemTypeList     []string `json:"itemTypeList" validate:"min=1"`
	Phrase           string   `json:"phrase"`
	BirimAdi         string   `json:"birimAdi,omitempty"`
	KararTarihiStart string   `json:"kararTarihiStart,omitempty"`
	KararTarihiEnd   string   `json:"kararTarihiEnd,omitempty"`
	SortFields       []string `json:"sortFields"`
	SortDirection    string   `json:"sortDirection"`
}

// ApplyDefaults fills paging and the fixed newest-first sort.
func (d *BedestenSearchData) ApplyDefaults() {
	if d.PageSize == 0 {
		d.PageSize = 10
	}
	if d.PageNumber == 0 {
		d.PageNumber = 1
	}
	if len(d.SortFields) == 0 {
		d.SortFields = []string{"KARAR_TARIHI"}
	}
	if d.SortDirection == "" {
		d.SortDirection = "desc"
	}
}

// BedestenSearchRequest is the full search request envelope.
type BedestenSearchRequest struct {
	Data            BedestenSearchData `json:"data"`
	ApplicationName string             `json:"applicationName"`
	Paging          bool               `json:"paging"`
}

// NewBedestenSearchRequest wraps search data in the envelope the API
// expects.
func NewBedestenSearchRequest(data BedestenSearchData) BedestenSearchRequest {
	return BedestenSearchRequest{Data: data, ApplicationName: "UyapMevzuat", Paging: true}
}

// BedestenItemType tags a search hit with its archive.
type BedestenItemType struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// BedestenDecisionEntry is one hit of a Bedesten search.
type BedestenDecisionEntry struct {
	DocumentID       string           `json:"documentId"`
	ItemType         BedestenItemType `json:"itemType"`
	BirimID          string           `json:"birimId,omitempty"`
	BirimAdi         string           `json:"birimAdi,omitempty"`
	EsasNoYil        int              `json:"esasNoYil,omitempty"`
	EsasNoSira       int              `json:"esasNoSira,omitempty"`
	KararNoYil       int              `json:"kararNoYil,omitempty"`
	KararNoSira      int              `json:"kararNoSira,omitempty"`
	KararTuru        string           `json:"kararTuru,omitempty"`
	KararTarihi      string           `json:"kararTarihi,omitempty"`
	KararTarihiStr   string           `json:"kararTarihiStr,omitempty"`
	KesinlesmeDurumu string           `json:"kesinlesmeDurumu,omitempty"`
	KararNo          string           `json:"kararNo,omitempty"`
	EsasNo           string           `json:"esasNo,omitempty"`
}

// BedestenSearchResponseData is the inner "data" object of a search
// response.
type BedestenSearchResponseData struct {
	EmsalKararList []BedestenDecisionEntry `json:"emsalKararList"`
	Total          int                     `json:"total"`
	Start          int                     `json:"start"`
}

// BedestenSearchResponse is the full search response envelope.
type BedestenSearchResponse struct {
	Data BedestenSearchResponseData `json:"data"`
}

// BedestenSearchResult is the compact shape returned to MCP clients.
type BedestenSearchResult struct {
	Decisions     []BedestenDecisionEntry `json:"decisions"`
	TotalRecords  int                     `json:"total_records"`
	RequestedPage int                     `json:"requested_page"`
	PageSize      int                     `json:"page_size"`
}

// BedestenDocumentRequest asks for one document's content.
type BedestenDocumentRequest struct {
	Data            BedestenDocumentRequestData `json:"data"`
	ApplicationName string                      `json:"applicationName"`
}

// BedestenDocumentRequestData carries the document ID.
type BedestenDocumentRequestData struct {
	DocumentID string `json:"documentId"`
}

// NewBedestenDocumentRequest wraps a document ID in the envelope the
// API expects.
func NewBedestenDocumentRequest(documentID string) BedestenDocumentRequest {
	return BedestenDocumentRequest{
		Data:            BedestenDocumentRequestData{DocumentID: documentID},
		ApplicationName: "UyapMevzuat",
	}
}

// BedestenDocumentData is the payload of a document response: content is
// Base64, MimeType decides whether it decodes to HTML or PDF.
type BedestenDocumentData struct {
	Content  string `json:"content"`
	MimeType string `json:"mimeType"`
	Version  int    `json:"version"`
}

// BedestenDocumentResponse is the full document response envelope.
type BedestenDocumentResponse struct {
	Data BedestenDocumentData `json:"data"`
}

// BedestenDocument carries one decision converted to Markdown.
type BedestenDocument struct {
	DocumentID      string `json:"documentId"`
	MarkdownContent string `json:"markdown_content"`
	SourceURL       string `json:"source_url"`
	MimeType        string `json:"mime_type,omitempty"`
}
