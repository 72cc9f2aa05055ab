package anayasa

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/serkanbykl/yargi-mcp/internal/models"
)

func TestBuildNormSearchPath(t *testing.T) {
	defaults := models.AnayasaNormSearchRequest{}
	defaults.ApplyDefaults()
	assert.Equal(t, "/Ara", buildNormSearchPath(defaults))

	custom := models.AnayasaNormSearchRequest{ResultsPerPage: 20, SortByCriteria: "Toplam"}
	assert.Equal(t, "/SatirSayisi/20/Siralama/Toplam/Ara", buildNormSearchPath(custom))
}

func TestBuildNormSearchQuery(t *testing.T) {
	req := models.AnayasaNormSearchRequest{
		KeywordsAll:                     []string{"mülkiyet", "hak"},
		KeywordsAny:                     []string{"kamulaştırma"},
		Period:                          "1",
		CaseNumberEsas:                  "2023/45",
		ReviewOutcomes:                  []string{"2", "ALL"},
		BasisConstitutionArticleNumbers: []string{"13", "35"},
		PageToFetch:                     3,
	}
	req.ApplyDefaults()

	want := "KelimeAra%5B%5D=m%C3%BClkiyet&KelimeAra%5B%5D=hak" +
		"&HerhangiBirKelimeAra%5B%5D=kamula%C5%9Ft%C4%B1rma" +
		"&Donemler_id=1&EsasNo=2023%2F45" +
		"&IncelemeTuruKararSonuclar_id%5B%5D=2" +
		"&DayanakHukmu%5B%5D=13&DayanakHukmu%5B%5D=35&page=3"
	assert.Equal(t, want, buildNormSearchQuery(req))
}

func TestBuildNormSearchQueryDefaultsAreEmpty(t *testing.T) {
	req := models.AnayasaNormSearchRequest{}
	req.ApplyDefaults()
	assert.Empty(t, buildNormSearchQuery(req))
}

const normResultsPage = `<!DOCTYPE html>
<html><body>
<div class="bulunankararsayisi">123 Karar Bulundu</div>
<div class="birkarar">
  <a href="/ND/2023/123">Görüntüle</a>
  <div class="bkararbaslik">E. 2023/45, K. 2023/100 Sayılı Karar
    <div class="BulunanKelimeSayisi">Bulunan Kelime Sayısı 4</div>
  </div>
  <div class="kararbilgileri">İtiraz Yoluna Başvuran<br/>Ankara 3. İdare Mahkemesi<br/>Esas - İptal<br/>Karar Tarihi: 01/06/2023</div>
</div>
<div class="col-sm-12">
  <table class="table">
    <tbody>
      <tr><td>5403 sayılı Kanun</td><td>13</td><td>Esas - İptal</td><td>Anayasaya aykırılık</td><td>13, 35</td><td>9 ay</td></tr>
    </tbody>
  </table>
</div>
<div class="birkarar">
  <a href="/ND/2022/99">Görüntüle</a>
  <div class="bkararbaslik">2022/99 Sayılı Karar</div>
  <div class="kararbilgileri">İptal Davası</div>
</div>
</body></html>`

func TestNormSearchParsesDecisions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/Ara", r.URL.Path)
		assert.Equal(t, "KelimeAra%5B%5D=m%C3%BClkiyet", r.URL.RawQuery)

		fmt.Fprint(w, normResultsPage)
	}))
	defer srv.Close()

	client := NewNormClient(WithBaseURL(srv.URL), WithLogger(arbor.NewLogger()))

	result, err := client.Search(context.Background(), models.AnayasaNormSearchRequest{
		KeywordsAll: []string{"mülkiyet"},
	})
	require.NoError(t, err)

	assert.Equal(t, 123, result.TotalRecordsFound)
	assert.Equal(t, 1, result.RetrievedPageNumber)
	require.Len(t, result.Decisions, 2)

	first := result.Decisions[0]
	assert.Equal(t, "E. 2023/45, K. 2023/100", first.DecisionReferenceNo)
	assert.Equal(t, srv.URL+"/ND/2023/123", first.DecisionPageURL)
	assert.Equal(t, 4, first.KeywordsFoundCount)
	assert.Equal(t, "İtiraz Yoluna Başvuran", first.ApplicationTypeSummary)
	assert.Equal(t, "Ankara 3. İdare Mahkemesi", first.ApplicantSummary)
	assert.Equal(t, "Esas - İptal", first.DecisionOutcomeSummary)
	assert.Equal(t, "01/06/2023", first.DecisionDateSummary)
	require.Len(t, first.ReviewedNorms, 1)
	norm := first.ReviewedNorms[0]
	assert.Equal(t, "5403 sayılı Kanun", norm.NormNameOrNumber)
	assert.Equal(t, "13", norm.ArticleNumber)
	assert.Equal(t, "Esas - İptal", norm.ReviewTypeAndOutcome)
	assert.Equal(t, "Anayasaya aykırılık", norm.OutcomeReason)
	assert.Equal(t, []string{"13", "35"}, norm.BasisConstitutionArticlesCited)
	assert.Equal(t, "9 ay", norm.PostponementPeriod)

	second := result.Decisions[1]
	assert.Equal(t, "2022/99", second.DecisionReferenceNo)
	assert.Equal(t, "İptal Davası", second.ApplicationTypeSummary)
	assert.Empty(t, second.ReviewedNorms)
}

func TestNormSearchCustomPagePath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/SatirSayisi/20/Siralama/Toplam/Ara", r.URL.Path)
		assert.Equal(t, "page=2", r.URL.RawQuery)
		fmt.Fprint(w, `<html><body></body></html>`)
	}))
	defer srv.Close()

	client := NewNormClient(WithBaseURL(srv.URL))

	result, err := client.Search(context.Background(), models.AnayasaNormSearchRequest{
		ResultsPerPage: 20,
		SortByCriteria: "Toplam",
		PageToFetch:    2,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Decisions)
	assert.Equal(t, 2, result.RetrievedPageNumber)
}

func TestNormSearchRejectsBadSort(t *testing.T) {
	client := NewNormClient(WithBaseURL("http://127.0.0.1:1"))

	_, err := client.Search(context.Background(), models.AnayasaNormSearchRequest{SortByCriteria: "Eski"})
	require.Error(t, err)
	assert.Equal(t, models.KindInvalidInput, models.KindOf(err))
}

const normDecisionPage = `<!DOCTYPE html>
<html><body>
<div id="Karar">
  <div class="KararMetni">
    <script>var takip = 1;</script>
    <div class="modal fade">paylaşım penceresi</div>
    <p><b>Esas No.: 2023/45</b></p>
    <p><b>Karar No.: 2023/100</b></p>
    <p><b>Karar tarihi: 1/6/2023</b></p>
    <p><b>Resmî Gazete tarih ve sayısı: 12 Temmuz 2023 - 32246</b></p>
    <div class="WordSection1">
      <p>ANAYASA MAHKEMESİ KARARI</p>
      <p>İtiraz konusu kuralın Anayasa'ya aykırı olduğuna karar verilmiştir.</p>
    </div>
  </div>
</div>
</body></html>`

func TestNormDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ND/2023/123", r.URL.Path)
		fmt.Fprint(w, normDecisionPage)
	}))
	defer srv.Close()

	client := NewNormClient(WithBaseURL(srv.URL), WithLogger(arbor.NewLogger()))

	doc, err := client.Document(context.Background(), "/ND/2023/123", 1)
	require.NoError(t, err)

	assert.Equal(t, srv.URL+"/ND/2023/123", doc.SourceURL)
	assert.Equal(t, "E.2023/45, K.2023/100", doc.DecisionReferenceNoFromPage)
	assert.Equal(t, "1/6/2023", doc.DecisionDateFromPage)
	assert.Equal(t, "12 Temmuz 2023 - 32246", doc.OfficialGazetteInfoFromPage)
	assert.Contains(t, doc.MarkdownChunk, "ANAYASA MAHKEMESİ KARARI")
	assert.Contains(t, doc.MarkdownChunk, "aykırı olduğuna")
	assert.NotContains(t, doc.MarkdownChunk, "takip")
	assert.NotContains(t, doc.MarkdownChunk, "paylaşım penceresi")
	assert.Equal(t, 1, doc.CurrentPage)
	assert.Equal(t, 1, doc.TotalPages)
	assert.False(t, doc.IsPaginated)
}

func TestNormDocumentPaginates(t *testing.T) {
	long := strings.Repeat("Anayasa Mahkemesi kararının gerekçesi. ", 400)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body><div class="WordSection1"><p>%s</p></div></body></html>`, long)
	}))
	defer srv.Close()

	client := NewNormClient(WithBaseURL(srv.URL))

	doc, err := client.Document(context.Background(), "/ND/2020/1", 2)
	require.NoError(t, err)

	assert.True(t, doc.IsPaginated)
	assert.Equal(t, 2, doc.CurrentPage)
	assert.GreaterOrEqual(t, doc.TotalPages, 2)
	assert.NotEmpty(t, doc.MarkdownChunk)
}

func TestNormDocumentRequiresURL(t *testing.T) {
	client := NewNormClient(WithBaseURL("http://127.0.0.1:1"))

	_, err := client.Document(context.Background(), "  ", 1)
	require.Error(t, err)
	assert.Equal(t, models.KindInvalidInput, models.KindOf(err))
}
