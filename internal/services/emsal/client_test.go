package emsal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serkanbykl/yargi-mcp/internal/models"
)

func TestSearch(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/aramadetaylist", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		// The wire keys with spaces must survive marshaling untouched.
		var envelope map[string]map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &envelope))
		data := envelope["data"]
		assert.Equal(t, "kira", data["arananKelime"])
		assert.Equal(t, "İstanbul BAM", data["Bam Hukuk Mahkemeleri"])
		assert.Equal(t, "1. Hukuk Dairesi+2. Hukuk Dairesi", data["birimHukukMah"])

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"data":[{"id":"e9","daire":"İstanbul BAM 1. Hukuk Dairesi","esasNo":"2023/55","durum":"KESİNLEŞMEDİ"}],"recordsTotal":3,"recordsFiltered":3}}`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))

	result, err := client.Search(context.Background(), models.EmsalSearchRequest{
		Keyword:                       "kira",
		SelectedBamCivilCourt:         "İstanbul BAM",
		SelectedRegionalCivilChambers: []string{"1. Hukuk Dairesi", "2. Hukuk Dairesi"},
	})
	require.NoError(t, err)

	require.Len(t, result.Decisions, 1)
	assert.Equal(t, "KESİNLEŞMEDİ", result.Decisions[0].Durum)
	assert.Equal(t, srv.URL+"/getDokuman?id=e9", result.Decisions[0].DocumentURL)
	assert.Equal(t, 3, result.TotalRecords)
}

func TestDocument(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/getDokuman", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":"<html><body><h3>EMSAL KARAR</h3><p>Davanın kabulüne karar verildi.</p></body></html>"}`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))

	doc, err := client.Document(context.Background(), "e9")
	require.NoError(t, err)

	assert.Contains(t, doc.MarkdownContent, "EMSAL KARAR")
	assert.Contains(t, doc.MarkdownContent, "Davanın kabulüne")
	assert.Equal(t, srv.URL+"/getDokuman?id=e9", doc.SourceURL)
}

func TestSearchRejectsBadSort(t *testing.T) {
	client := NewClient(WithBaseURL("https://127.0.0.1:1"))

	_, err := client.Search(context.Background(), models.EmsalSearchRequest{SortCriteria: "9"})
	require.Error(t, err)
	assert.Equal(t, models.KindInvalidInput, models.KindOf(err))
}
