package yargitay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/serkanbykl/yargi-mcp/internal/models"
)

func TestSearch(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/aramadetaylist", r.URL.Path)
		assert.Equal(t, "XMLHttpRequest", r.Header.Get("X-Requested-With"))
		assert.Equal(t, "Ajax_Request", r.Header.Get("X-KL-KIS-Ajax-Request"))

		var payload struct {
			Data models.YargitaySearchRequest `json:"data"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "mülkiyet", payload.Data.ArananKelime)
		assert.Equal(t, "3", payload.Data.Siralama)
		assert.Equal(t, "desc", payload.Data.SiralamaDirection)
		assert.Equal(t, 10, payload.Data.PageSize)
		assert.Equal(t, 1, payload.Data.PageNumber)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"data":[{"id":"abc123","daire":"1. Hukuk Dairesi","esasNo":"2023/100","kararNo":"2023/200","kararTarihi":"01.02.2023"}],"recordsTotal":42,"recordsFiltered":42}}`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithLogger(arbor.NewLogger()))

	result, err := client.Search(context.Background(), models.YargitaySearchRequest{ArananKelime: "mülkiyet"})
	require.NoError(t, err)

	require.Len(t, result.Decisions, 1)
	assert.Equal(t, "1. Hukuk Dairesi", result.Decisions[0].Daire)
	assert.Equal(t, srv.URL+"/getDokuman?id=abc123", result.Decisions[0].DocumentURL)
	assert.Equal(t, 42, result.TotalRecords)
	assert.Equal(t, 1, result.RequestedPage)
	assert.Equal(t, 10, result.PageSize)
}

func TestSearchRejectsInvalidPageSize(t *testing.T) {
	client := NewClient(WithBaseURL("https://127.0.0.1:1"))

	_, err := client.Search(context.Background(), models.YargitaySearchRequest{PageSize: 500})
	require.Error(t, err)
	assert.Equal(t, models.KindInvalidInput, models.KindOf(err))
}

func TestSearchRejectsUnknownChamber(t *testing.T) {
	client := NewClient(WithBaseURL("https://127.0.0.1:1"))

	_, err := client.Search(context.Background(), models.YargitaySearchRequest{BirimYrgKurulDaire: "24. Hukuk Dairesi"})
	require.Error(t, err)
	assert.Equal(t, models.KindInvalidInput, models.KindOf(err))
}

func TestSearchUpstreamError(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bakım çalışması", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))

	_, err := client.Search(context.Background(), models.YargitaySearchRequest{ArananKelime: "test"})
	require.Error(t, err)
	assert.Equal(t, models.KindUpstreamStatus, models.KindOf(err))
}

func TestDocument(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/getDokuman", r.URL.Path)
		require.Equal(t, "abc123", r.URL.Query().Get("id"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":"<html><body><h2>T.C. YARGITAY</h2><p>Taraflar arasındaki davada \"temyiz\" istemi incelendi.</p></body></html>"}`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithLogger(arbor.NewLogger()))

	doc, err := client.Document(context.Background(), "abc123")
	require.NoError(t, err)

	assert.Equal(t, "abc123", doc.ID)
	assert.Contains(t, doc.MarkdownContent, "T.C. YARGITAY")
	assert.Contains(t, doc.MarkdownContent, `"temyiz"`)
	assert.NotContains(t, doc.MarkdownContent, `\"`)
	assert.Equal(t, srv.URL+"/getDokuman?id=abc123", doc.SourceURL)
}

func TestDocumentRequiresID(t *testing.T) {
	client := NewClient(WithBaseURL("https://127.0.0.1:1"))

	_, err := client.Document(context.Background(), "  ")
	require.Error(t, err)
	assert.Equal(t, models.KindInvalidInput, models.KindOf(err))
}
