package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serkanbykl/yargi-mcp/internal/models"
	"github.com/serkanbykl/yargi-mcp/internal/services/anayasa"
)

func TestHandleSearchAnayasaNorm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/Ara", r.URL.Path)
		assert.Equal(t, "KelimeAra%5B%5D=m%C3%BClkiyet", r.URL.RawQuery)

		fmt.Fprint(w, `<!DOCTYPE html>
<html><body>
<div class="bulunankararsayisi">5 Karar Bulundu</div>
<div class="birkarar">
  <a href="/ND/2023/123">Görüntüle</a>
  <div class="bkararbaslik">E. 2023/45, K. 2023/100 Sayılı Karar</div>
  <div class="kararbilgileri">İtiraz Yoluna Başvuran<br/>Ankara 3. İdare Mahkemesi<br/>Esas - İptal<br/>Karar Tarihi: 01/06/2023</div>
</div>
</body></html>`)
	}))
	defer srv.Close()

	handler := handleSearchAnayasaNorm(anayasa.NewNormClient(anayasa.WithBaseURL(srv.URL)), nil)

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"keywords_all": []string{"mülkiyet"},
	}))
	require.NoError(t, err)

	var search models.AnayasaSearchResult
	decodeResult(t, result, &search)
	assert.Equal(t, 5, search.TotalRecordsFound)
	assert.Equal(t, 1, search.RetrievedPageNumber)
	require.Len(t, search.Decisions, 1)
	assert.Equal(t, "E. 2023/45, K. 2023/100", search.Decisions[0].DecisionReferenceNo)
}

func TestHandleGetAnayasaNormDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ND/2023/123", r.URL.Path)
		fmt.Fprint(w, `<html><body><div class="WordSection1"><p>ANAYASA MAHKEMESİ KARARI</p></div></body></html>`)
	}))
	defer srv.Close()

	handler := handleGetAnayasaNormDocument(anayasa.NewNormClient(anayasa.WithBaseURL(srv.URL)), nil)

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"document_url": "/ND/2023/123",
	}))
	require.NoError(t, err)

	var doc models.AnayasaDocument
	decodeResult(t, result, &doc)
	assert.Contains(t, doc.MarkdownChunk, "ANAYASA MAHKEMESİ KARARI")
	assert.Equal(t, 1, doc.CurrentPage)
}

func TestHandleGetAnayasaNormDocumentRequiresURL(t *testing.T) {
	handler := handleGetAnayasaNormDocument(anayasa.NewNormClient(anayasa.WithBaseURL("http://127.0.0.1:1")), nil)

	result, err := handler(context.Background(), callRequest(map[string]interface{}{}))
	require.NoError(t, err)

	assert.True(t, result.IsError)
	assert.Equal(t, "document_url parameter is required", resultText(t, result))
}

func TestHandleSearchAnayasaBireysel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "KararBulteni=1&KelimeAra%5B%5D=m%C3%BClkiyet", r.URL.RawQuery)

		fmt.Fprint(w, `<html><body>
<div class="bulunankararsayisi">12 Karar Bulundu</div>
<div class="HaberBulteni">
  <div class="KararBulteniBirKarar">
    <h4><strong>MÜLKİYET HAKKININ İHLAL EDİLMESİ</strong></h4>
    <div class="AltiCizili">
      <a href="/BB/2019/19126">2019/19126</a>
      (Esas - İhlal)
    </div>
  </div>
</div>
</body></html>`)
	}))
	defer srv.Close()

	handler := handleSearchAnayasaBireysel(anayasa.NewBireyselClient(anayasa.WithBaseURL(srv.URL)), nil)

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"keywords": []string{"mülkiyet"},
	}))
	require.NoError(t, err)

	var search models.AnayasaBireyselReportSearchResult
	decodeResult(t, result, &search)
	assert.Equal(t, 12, search.TotalRecordsFound)
	assert.Equal(t, 1, search.RetrievedPageNumber)
	require.Len(t, search.Decisions, 1)
	assert.Equal(t, "2019/19126", search.Decisions[0].DecisionReferenceNo)
}

func TestHandleGetAnayasaBireyselDocumentRejectsForeignPath(t *testing.T) {
	handler := handleGetAnayasaBireyselDocument(anayasa.NewBireyselClient(anayasa.WithBaseURL("http://127.0.0.1:1")), nil)

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"document_url_path": "/ND/2023/123",
	}))
	require.NoError(t, err)

	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "/BB/")
}

func TestHandleGetAnayasaBireyselDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/BB/2019/19126", r.URL.Path)
		fmt.Fprint(w, `<html><body><div class="WordSection1"><p>Başvurucunun ifade özgürlüğünün ihlal edildiğine karar verilmiştir.</p></div></body></html>`)
	}))
	defer srv.Close()

	handler := handleGetAnayasaBireyselDocument(anayasa.NewBireyselClient(anayasa.WithBaseURL(srv.URL)), nil)

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"document_url_path": "/BB/2019/19126",
	}))
	require.NoError(t, err)

	var doc models.AnayasaBireyselDocument
	decodeResult(t, result, &doc)
	assert.Contains(t, doc.MarkdownChunk, "ifade özgürlüğünün ihlal")
	assert.Equal(t, srv.URL+"/BB/2019/19126", doc.SourceURL)
}
