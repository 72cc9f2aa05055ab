package models

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// KikKararTipi selects which of the three KİK decision tabs a search
// runs against. Values are the radio-button IDs on the search form.
type KikKararTipi string

const (
	KikKararTipiUyusmazlik  KikKararTipi = "rbUyusmazlik"  // procurement dispute decisions
	KikKararTipiDuzenleyici KikKararTipi = "rbDuzenleyici" // regulatory decisions
	KikKararTipiMahkeme     KikKararTipi = "rbMahkeme"     // court decisions
)

// KikKararTipiOptions lists the selectable decision types.
func KikKararTipiOptions() []string {
	return []string{string(KikKararTipiUyusmazlik), string(KikKararTipiDuzenleyici), string(KikKararTipiMahkeme)}
}

// KikSearchRequest is the tool-facing request for the KİK (Public
// Procurement Authority) decision search. Decision numbers may use '_'
// in place of '/' so they survive MCP clients that mangle slashes;
// NormalizeKikKararNo undoes that.
type KikSearchRequest struct {
	KararTipi            KikKararTipi `json:"karar_tipi,omitempty" validate:"omitempty,oneof=rbUyusmazlik rbDuzenleyici rbMahkeme"`
	KararNo              string       `json:"karar_no,omitempty"` // e.g. "2024/UH.II-1766"
	KararTarihiBaslangic string       `json:"karar_tarihi_baslangic,omitempty" validate:"omitempty,datetime=02.01.2006"`
	KararTarihiBitis     string       `json:"karar_tarihi_bitis,omitempty" validate:"omitempty,datetime=02.01.2006"`
	ResmiGazeteSayisi    string       `json:"resmi_gazete_sayisi,omitempty"`
	ResmiGazeteTarihi    string       `json:"resmi_gazete_tarihi,omitempty" validate:"omitempty,datetime=02.01.2006"`
	BasvuruKonusuIhale   string       `json:"basvuru_konusu_ihale,omitempty"` // tender subject
	BasvuruSahibi        string       `json:"basvuru_sahibi,omitempty"`       // applicant
	IhaleyiYapanIdare    string       `json:"ihaleyi_yapan_idare,omitempty"`  // procuring entity
	Yil                  string       `json:"yil,omitempty"`
	KararMetni           string       `json:"karar_metni,omitempty"` // keyword in decision text
	Page                 int          `json:"page,omitempty" validate:"omitempty,min=1"`
}

// ApplyDefaults fills the decision type and page defaults.
func (r *KikSearchRequest) ApplyDefaults() {
	if r.KararTipi == "" {
		r.KararTipi = KikKararTipiUyusmazlik
	}
	if r.Page == 0 {
		r.Page = 1
	}
}

// NormalizeKikKararNo converts underscore-separated decision numbers
// back to their canonical slash form ("2024_UH.II-1766" -> "2024/UH.II-1766").
func NormalizeKikKararNo(kararNo string) string {
	return strings.ReplaceAll(kararNo, "_", "/")
}

// KikDecisionEntry is one row scraped from the KİK search results grid.
// PreviewEventTarget is the WebForms event target that opens the
// decision, kept so the document fetch can replay it.
type KikDecisionEntry struct {
	PreviewEventTarget string       `json:"preview_event_target"`
	KararNo            string       `json:"kararNo"`
	KararTipi          KikKararTipi `json:"karar_tipi"`
	KararTarihi        string       `json:"kararTarihi"`
	Idare              string       `json:"idare,omitempty"`
	BasvuruSahibi      string       `json:"basvuruSahibi,omitempty"`
	IhaleKonusu        string       `json:"ihaleKonusu,omitempty"`
	KararID            string       `json:"karar_id"` // Base64 of "tipi|kararNo", see EncodeKikKararID
}

// EncodeKikKararID builds the opaque document ID for a decision:
// Base64("{tipi}|{kararNo}"). The pipe keeps the two halves separable
// since decision numbers never contain one.
func EncodeKikKararID(tipi KikKararTipi, kararNo string) string {
	return base64.StdEncoding.EncodeToString([]byte(string(tipi) + "|" + kararNo))
}

// DecodeKikKararID splits a document ID produced by EncodeKikKararID
// back into decision type and number.
func DecodeKikKararID(kararID string) (KikKararTipi, string, error) {
	raw, err := base64.StdEncoding.DecodeString(kararID)
	if err != nil {
		return "", "", fmt.Errorf("decoding karar_id: %w", err)
	}
	tipi, kararNo, ok := strings.Cut(string(raw), "|")
	if !ok {
		return "", "", fmt.Errorf("malformed karar_id %q: missing separator", kararID)
	}
	switch KikKararTipi(tipi) {
	case KikKararTipiUyusmazlik, KikKararTipiDuzenleyici, KikKararTipiMahkeme:
		return KikKararTipi(tipi), kararNo, nil
	default:
		return "", "", fmt.Errorf("malformed karar_id %q: unknown decision type %q", kararID, tipi)
	}
}

// KikSearchResult is the shape returned to MCP clients.
type KikSearchResult struct {
	Decisions    []KikDecisionEntry `json:"decisions"`
	TotalRecords int                `json:"total_records"`
	CurrentPage  int                `json:"current_page"`
}

// KikDocument carries one KİK decision as a paginated Markdown chunk.
// Retrieval failures are reported in ErrorMessage rather than as a tool
// error so the caller still sees which decision was addressed.
type KikDocument struct {
	RetrievedWithKararID string       `json:"retrieved_with_karar_id,omitempty"`
	KararNo              string       `json:"retrieved_karar_no,omitempty"`
	KararTipi            KikKararTipi `json:"retrieved_karar_tipi,omitempty"`
	KararIDParam         string       `json:"karar_id_param_from_url,omitempty"` // KararId query param of KurulKararGoster.aspx
	MarkdownChunk        string       `json:"markdown_chunk,omitempty"`
	SourceURL            string       `json:"source_url,omitempty"`
	ErrorMessage         string       `json:"error_message,omitempty"`
	CurrentPage          int          `json:"current_page"`
	TotalPages           int          `json:"total_pages"`
	IsPaginated          bool         `json:"is_paginated"`
	FullContentCharCount int          `json:"full_content_char_count,omitempty"`
}
