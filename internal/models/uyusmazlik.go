package models

// Display names accepted by the Uyuşmazlık Mahkemesi search tool. The
// search form posts GUIDs; the maps below translate.
const (
	UyusmazlikBolumAll        = "ALL"
	UyusmazlikBolumCeza       = "Ceza Bölümü"
	UyusmazlikBolumGenelKurul = "Genel Kurul Kararları"
	UyusmazlikBolumHukuk      = "Hukuk Bölümü"

	UyusmazlikTuruAll   = "ALL"
	UyusmazlikTuruGorev = "Görev Uyuşmazlığı"
	UyusmazlikTuruHukum = "Hüküm Uyuşmazlığı"

	UyusmazlikSonucOlmadigina = "Hüküm Uyuşmazlığı Olmadığına Dair"
	UyusmazlikSonucOlduguna   = "Hüküm Uyuşmazlığı Olduğuna Dair"
)

// UyusmazlikBolumOptions lists the selectable departments.
func UyusmazlikBolumOptions() []string {
	return []string{UyusmazlikBolumAll, UyusmazlikBolumCeza, UyusmazlikBolumGenelKurul, UyusmazlikBolumHukuk}
}

// UyusmazlikTuruOptions lists the selectable dispute types.
func UyusmazlikTuruOptions() []string {
	return []string{UyusmazlikTuruAll, UyusmazlikTuruGorev, UyusmazlikTuruHukum}
}

// UyusmazlikSonucOptions lists the selectable decision outcomes.
func UyusmazlikSonucOptions() []string {
	return []string{UyusmazlikSonucOlmadigina, UyusmazlikSonucOlduguna}
}

// UyusmazlikBolumID translates a department display name to the form
// GUID. Unknown names and "ALL" map to the empty string, which the form
// treats as no filter.
func UyusmazlikBolumID(bolum string) string {
	switch bolum {
	case UyusmazlikBolumCeza:
		return "f6b74320-f2d7-4209-ad6e-c6df180d4e7c"
	case UyusmazlikBolumGenelKurul:
		return "e4ca658d-a75a-4719-b866-b2d2f1c3b1d9"
	case UyusmazlikBolumHukuk:
		return "96b26fc4-ef8e-4a4f-a9cc-a3de89952aa1"
	default:
		return ""
	}
}

// UyusmazlikTuruID translates a dispute-type display name to the form GUID.
func UyusmazlikTuruID(turu string) string {
	switch turu {
	case UyusmazlikTuruGorev:
		return "7b1e2cd3-8f09-418a-921c-bbe501e1740c"
	case UyusmazlikTuruHukum:
		return "19b88402-172b-4c1d-8339-595c942a89f5"
	default:
		return ""
	}
}

// UyusmazlikSonucID translates a decision-outcome display name to the
// checkbox GUID. Unknown names return the empty string and are skipped.
func UyusmazlikSonucID(sonuc string) string {
	switch sonuc {
	case UyusmazlikSonucOlmadigina:
		return "6f47d87f-dcb5-412e-9878-000385dba1d9"
	case UyusmazlikSonucOlduguna:
		return "5a01742a-c440-4c4a-ba1f-da20837cffed"
	default:
		return ""
	}
}

// UyusmazlikSearchRequest is the tool-facing request for the Uyuşmazlık
// Mahkemesi search. The adapter turns it into the form POST the site
// expects, with empty strings for omitted fields.
type UyusmazlikSearchRequest struct {
	Icerik          string   `json:"icerik,omitempty"` // main text search
	Bolum           string   `json:"bolum,omitempty" validate:"omitempty,oneof=ALL 'Ceza Bölümü' 'Genel Kurul Kararları' 'Hukuk Bölümü'"`
	UyusmazlikTuru  string   `json:"uyusmazlik_turu,omitempty" validate:"omitempty,oneof=ALL 'Görev Uyuşmazlığı' 'Hüküm Uyuşmazlığı'"`
	KararSonuclari  []string `json:"karar_sonuclari,omitempty" validate:"omitempty,dive,oneof='Hüküm Uyuşmazlığı Olmadığına Dair' 'Hüküm Uyuşmazlığı Olduğuna Dair'"`
	EsasYil         string   `json:"esas_yil,omitempty"`
	EsasSayisi      string   `json:"esas_sayisi,omitempty"`
	KararYil        string   `json:"karar_yil,omitempty"`
	KararSayisi     string   `json:"karar_sayisi,omitempty"`
	KanunNo         string   `json:"kanun_no,omitempty"`
	KararDateBegin  string   `json:"karar_date_begin,omitempty"` // DD.MM.YYYY
	KararDateEnd    string   `json:"karar_date_end,omitempty"`   // DD.MM.YYYY
	ResmiGazeteSayi string   `json:"resmi_gazete_sayi,omitempty"`
	ResmiGazeteDate string   `json:"resmi_gazete_date,omitempty"` // DD.MM.YYYY
	Tumce           string   `json:"tumce,omitempty"`             // exact phrase
	WildCard        string   `json:"wild_card,omitempty"`         // phrase plus inflections
	Hepsi           string   `json:"hepsi,omitempty"`             // all words
	HerhangiBirisi  string   `json:"herhangi_birisi,omitempty"`   // any word
	NotHepsi        string   `json:"not_hepsi,omitempty"`         // exclude words
}

// UyusmazlikDecisionEntry is one decision parsed from the HTML search
// results. DocumentURL always points at the decision page; PdfURL is set
// when the result row links a PDF directly.
type UyusmazlikDecisionEntry struct {
	KararSayisi       string `json:"karar_sayisi,omitempty"`
	EsasSayisi        string `json:"esas_sayisi,omitempty"`
	Bolum             string `json:"bolum,omitempty"`
	UyusmazlikKonusu  string `json:"uyusmazlik_konusu,omitempty"`
	KararSonucu       string `json:"karar_sonucu,omitempty"`
	PopoverContent    string `json:"popover_content,omitempty"`
	DocumentURL       string `json:"document_url"`
	PdfURL            string `json:"pdf_url,omitempty"`
}

// UyusmazlikSearchResult is the shape returned to MCP clients.
type UyusmazlikSearchResult struct {
	Decisions         []UyusmazlikDecisionEntry `json:"decisions"`
	TotalRecordsFound int                       `json:"total_records_found"`
}

// UyusmazlikDocument carries one decision converted to Markdown.
type UyusmazlikDocument struct {
	SourceURL       string `json:"source_url"`
	MarkdownContent string `json:"markdown_content"`
}
