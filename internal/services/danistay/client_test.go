package danistay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serkanbykl/yargi-mcp/internal/models"
)

func TestPrepareKeywords(t *testing.T) {
	prepared := prepareKeywords([]string{"vergi", `"iptal davası"`, "  ", ""})
	assert.Equal(t, []string{`"vergi"`, `"iptal davası"`}, prepared)
}

func TestSearchKeyword(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/aramalist", r.URL.Path)

		var payload struct {
			Data models.DanistayKeywordSearchRequest `json:"data"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, []string{`"vergi"`}, payload.Data.AndKelimeler)
		assert.Equal(t, []string{}, payload.Data.OrKelimeler)
		assert.Equal(t, 10, payload.Data.PageSize)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"data":[{"id":"d1","daire":"3. Daire","esasNo":"2022/1","kararNo":"2023/5","kararTarihi":"10.01.2023"}],"recordsTotal":7,"recordsFiltered":7}}`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))

	result, err := client.SearchKeyword(context.Background(), models.DanistayKeywordSearchRequest{
		AndKelimeler: []string{"vergi"},
	})
	require.NoError(t, err)

	require.Len(t, result.Decisions, 1)
	assert.Equal(t, "3. Daire", result.Decisions[0].Chamber())
	assert.Equal(t, srv.URL+"/getDokuman?id=d1", result.Decisions[0].DocumentURL)
	assert.Equal(t, 7, result.TotalRecords)
}

func TestSearchDetailed(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/aramadetaylist", r.URL.Path)

		var payload struct {
			Data models.DanistayDetailedSearchRequest `json:"data"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "3. Daire", payload.Data.Daire)
		assert.Equal(t, "1", payload.Data.Siralama)
		assert.Equal(t, "desc", payload.Data.SiralamaDirection)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"data":[{"id":"d2","daireKurul":"3. Daire","esasNo":"2021/9"}],"recordsTotal":1,"recordsFiltered":1}}`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))

	result, err := client.SearchDetailed(context.Background(), models.DanistayDetailedSearchRequest{Daire: "3. Daire"})
	require.NoError(t, err)

	require.Len(t, result.Decisions, 1)
	assert.Equal(t, "3. Daire", result.Decisions[0].Chamber())
	assert.Equal(t, 1, result.TotalRecords)
}

func TestDocumentDirectHTML(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/getDokuman", r.URL.Path)
		require.Equal(t, "d1", r.URL.Query().Get("id"))

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><body><h3>DANIŞTAY 3. DAİRE</h3><p>Temyiz isteminin reddine karar verildi.</p></body></html>`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))

	doc, err := client.Document(context.Background(), "d1")
	require.NoError(t, err)

	assert.Contains(t, doc.MarkdownContent, "DANIŞTAY 3. DAİRE")
	assert.Contains(t, doc.MarkdownContent, "Temyiz isteminin reddine")
	assert.Equal(t, srv.URL+"/getDokuman?id=d1", doc.SourceURL)
}

func TestSearchKeywordRejectsBadPaging(t *testing.T) {
	client := NewClient(WithBaseURL("https://127.0.0.1:1"))

	_, err := client.SearchKeyword(context.Background(), models.DanistayKeywordSearchRequest{PageSize: 101})
	require.Error(t, err)
	assert.Equal(t, models.KindInvalidInput, models.KindOf(err))
}
