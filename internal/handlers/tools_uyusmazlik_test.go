package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serkanbykl/yargi-mcp/internal/models"
	"github.com/serkanbykl/yargi-mcp/internal/services/uyusmazlik"
)

func TestHandleSearchUyusmazlik(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/Arama/Search", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "Icerik=g%C3%B6rev")
		assert.Contains(t, string(body), "BolumId=96b26fc4-ef8e-4a4f-a9cc-a3de89952aa1")

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><body>
<div class="pull-right label label-important">2 adet kayıt bulundu</div>
<table class="table table-hover">
<tr><th>Karar</th><th>Esas</th><th>Bölüm</th><th>Konu</th><th>Sonuç</th><th></th></tr>
<tr>
  <td><a href="/Karar/Detay/123">2023/45</a></td>
  <td>2023/12</td>
  <td>Hukuk Bölümü</td>
  <td>Görev uyuşmazlığı</td>
  <td>Görev Uyuşmazlığı</td>
  <td></td>
</tr>
</table>
</body></html>`)
	}))
	defer srv.Close()

	handler := handleSearchUyusmazlik(uyusmazlik.NewClient(uyusmazlik.WithBaseURL(srv.URL)), nil)

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"icerik": "görev",
		"bolum":  models.UyusmazlikBolumHukuk,
	}))
	require.NoError(t, err)

	var search models.UyusmazlikSearchResult
	decodeResult(t, result, &search)
	assert.Equal(t, 2, search.TotalRecordsFound)
	require.Len(t, search.Decisions, 1)
	assert.Equal(t, "2023/45", search.Decisions[0].KararSayisi)
	assert.Equal(t, srv.URL+"/Karar/Detay/123", search.Decisions[0].DocumentURL)
}

func TestHandleSearchUyusmazlikRejectsUnknownBolum(t *testing.T) {
	handler := handleSearchUyusmazlik(uyusmazlik.NewClient(uyusmazlik.WithBaseURL("http://127.0.0.1:1")), nil)

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"bolum": "Bilinmeyen Bölüm",
	}))
	require.NoError(t, err)

	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), models.KindInvalidInput)
}

func TestHandleGetUyusmazlikDocumentRequiresURL(t *testing.T) {
	handler := handleGetUyusmazlikDocument(uyusmazlik.NewClient(uyusmazlik.WithBaseURL("http://127.0.0.1:1")), nil)

	result, err := handler(context.Background(), callRequest(map[string]interface{}{}))
	require.NoError(t, err)

	assert.True(t, result.IsError)
	assert.Equal(t, "document_url parameter is required", resultText(t, result))
}

func TestHandleGetUyusmazlikDocument(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><body><h2>UYUŞMAZLIK MAHKEMESİ</h2><p>Karar metni.</p></body></html>`)
	}))
	defer srv.Close()

	handler := handleGetUyusmazlikDocument(uyusmazlik.NewClient(uyusmazlik.WithBaseURL(srv.URL)), nil)

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"document_url": srv.URL + "/Karar/Detay/123",
	}))
	require.NoError(t, err)

	var doc models.UyusmazlikDocument
	decodeResult(t, result, &doc)
	assert.Contains(t, doc.MarkdownContent, "UYUŞMAZLIK MAHKEMESİ")
	assert.Equal(t, srv.URL+"/Karar/Detay/123", doc.SourceURL)
}
