package anayasa

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/serkanbykl/yargi-mcp/internal/httpclient"
	"github.com/serkanbykl/yargi-mcp/internal/markdown"
	"github.com/serkanbykl/yargi-mcp/internal/models"
)

const normSource = "anayasa_norm"

var (
	ekReferenceRe      = regexp.MustCompile(`(E\.\s*\d+/\d+\s*,\s*K\.\s*\d+/\d+)`)
	normDecisionDateRe = regexp.MustCompile(`Karar Tarihi\s*:\s*([\d\.]+)`)
)

// NormClient searches norm-control (Norm Denetimi) decisions and
// fetches decision documents in paginated Markdown chunks.
type NormClient struct {
	settings settings
	http     *httpclient.Client
	md       *markdown.Converter
}

// NewNormClient creates a norm-control client.
func NewNormClient(opts ...ClientOption) *NormClient {
	s := settings{baseURL: DefaultNormBaseURL}
	for _, opt := range opts {
		opt(&s)
	}
	return &NormClient{
		settings: s,
		http:     s.newHTTP(),
		md:       markdown.NewConverter(s.logger),
	}
}

// Close releases idle upstream connections. Safe to call more than once.
func (c *NormClient) Close() {
	c.http.Close()
}

// buildNormSearchPath encodes page size and sort order as path segments,
// which is how the site routes them. Defaults are left off the path.
func buildNormSearchPath(req models.AnayasaNormSearchRequest) string {
	var segments []string
	if req.ResultsPerPage != 0 && req.ResultsPerPage != 10 {
		segments = append(segments, fmt.Sprintf("SatirSayisi/%d", req.ResultsPerPage))
	}
	if req.SortByCriteria != "" && req.SortByCriteria != "KararTarihi" {
		segments = append(segments, "Siralama/"+url.PathEscape(req.SortByCriteria))
	}
	segments = append(segments, searchPathSegment)
	return "/" + strings.Join(segments, "/")
}

// buildNormSearchQuery encodes the filters as repeated query
// parameters in the order the search form submits them. "ALL" means a
// filter is not applied and is never sent upstream.
func buildNormSearchQuery(req models.AnayasaNormSearchRequest) string {
	qb := &queryBuilder{}
	add := qb.add
	addFiltered := func(key, value string) {
		if value != "" && value != "ALL" {
			add(key, value)
		}
	}

	for _, kw := range req.KeywordsAll {
		add("KelimeAra[]", kw)
	}
	for _, kw := range req.KeywordsAny {
		add("HerhangiBirKelimeAra[]", kw)
	}
	for _, kw := range req.KeywordsExclude {
		add("BulunmayanKelimeAra[]", kw)
	}
	addFiltered("Donemler_id", req.Period)
	if req.CaseNumberEsas != "" {
		add("EsasNo", req.CaseNumberEsas)
	}
	if req.DecisionNumberKarar != "" {
		add("KararNo", req.DecisionNumberKarar)
	}
	if req.FirstReviewDateStart != "" {
		add("IlkIncelemeTarihiIlk", req.FirstReviewDateStart)
	}
	if req.FirstReviewDateEnd != "" {
		add("IlkIncelemeTarihiSon", req.FirstReviewDateEnd)
	}
	if req.DecisionDateStart != "" {
		add("KararTarihiIlk", req.DecisionDateStart)
	}
	if req.DecisionDateEnd != "" {
		add("KararTarihiSon", req.DecisionDateEnd)
	}
	addFiltered("BasvuruTurler_id", req.ApplicationType)
	if req.ApplicantGeneralName != "" {
		add("BasvuranGeneller_id", req.ApplicantGeneralName)
	}
	if req.ApplicantSpecificName != "" {
		add("BasvuranOzeller_id", req.ApplicantSpecificName)
	}
	for _, name := range req.AttendingMembersNames {
		add("Uyeler_id[]", name)
	}
	if req.RapporteurName != "" {
		add("Raportorler_id", req.RapporteurName)
	}
	addFiltered("NormunTurler_id", req.NormType)
	if req.NormIDOrName != "" {
		add("NormunNumarasiAdlar_id", req.NormIDOrName)
	}
	if req.NormArticle != "" {
		add("NormunMaddeNumarasi", req.NormArticle)
	}
	for _, outcome := range req.ReviewOutcomes {
		addFiltered("IncelemeTuruKararSonuclar_id[]", outcome)
	}
	addFiltered("KararSonucununGerekcesi", req.ReasonForFinalOutcome)
	for _, article := range req.BasisConstitutionArticleNumbers {
		add("DayanakHukmu[]", article)
	}
	if req.OfficialGazetteDateStart != "" {
		add("ResmiGazeteTarihiIlk", req.OfficialGazetteDateStart)
	}
	if req.OfficialGazetteDateEnd != "" {
		add("ResmiGazeteTarihiSon", req.OfficialGazetteDateEnd)
	}
	if req.OfficialGazetteNumberStart != "" {
		add("ResmiGazeteSayisiIlk", req.OfficialGazetteNumberStart)
	}
	if req.OfficialGazetteNumberEnd != "" {
		add("ResmiGazeteSayisiSon", req.OfficialGazetteNumberEnd)
	}
	addFiltered("BasinDuyurusu", req.HasPressRelease)
	addFiltered("KarsiOy", req.HasDissentingOpinion)
	addFiltered("FarkliGerekce", req.HasDifferentReasoning)
	if req.PageToFetch > 1 {
		add("page", strconv.Itoa(req.PageToFetch))
	}
	return qb.String()
}

// Search runs a norm-control search and parses one page of decision
// summaries, including the reviewed-norm tables that follow each hit.
func (c *NormClient) Search(ctx context.Context, req models.AnayasaNormSearchRequest) (*models.AnayasaSearchResult, error) {
	req.ApplyDefaults()
	if err := models.Validate(normSource, &req); err != nil {
		return nil, err
	}

	requestPath := buildNormSearchPath(req)
	if query := buildNormSearchQuery(req); query != "" {
		requestPath += "?" + query
	}

	htmlContent, err := c.http.GetHTML(ctx, requestPath, nil)
	if err != nil {
		return nil, models.Classify(normSource, "search", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, models.NewError(models.KindUpstreamParse, normSource, "search", err)
	}

	result := c.parseSearchResults(doc, req.PageToFetch)

	if c.settings.logger != nil {
		c.settings.logger.Info().
			Int("page", req.PageToFetch).
			Int("results", len(result.Decisions)).
			Int("total", result.TotalRecordsFound).
			Msg("Anayasa norm-control search completed")
	}
	return result, nil
}

func (c *NormClient) parseSearchResults(doc *goquery.Document, page int) *models.AnayasaSearchResult {
	result := &models.AnayasaSearchResult{
		Decisions:           []models.AnayasaDecisionSummary{},
		RetrievedPageNumber: page,
	}

	totalDiv := doc.Find("div.bulunankararsayisi").First()
	if totalDiv.Length() == 0 {
		totalDiv = doc.Find("div.bulunankararsayisiMobil").First()
	}
	if total, ok := parseTotalRecords(totalDiv); ok {
		result.TotalRecordsFound = total
	}

	doc.Find("div.birkarar").Each(func(_ int, decisionDiv *goquery.Selection) {
		summary := models.AnayasaDecisionSummary{}

		if href, ok := decisionDiv.Find("a[href]").First().Attr("href"); ok {
			summary.DecisionPageURL = c.settings.absoluteURL(href)
		}

		titleDiv := decisionDiv.Find("div.bkararbaslik").First()
		titleText := normalizeSpace(titleDiv.Text())
		if m := ekReferenceRe.FindStringSubmatch(titleText); m != nil {
			summary.DecisionReferenceNo = m[1]
		} else {
			summary.DecisionReferenceNo = strings.TrimSpace(strings.SplitN(titleText, "Sayılı Karar", 2)[0])
		}

		countText := titleDiv.Find("div.BulunanKelimeSayisi").First().Text()
		countText = strings.TrimSpace(strings.ReplaceAll(countText, "Bulunan Kelime Sayısı", ""))
		if count, err := strconv.Atoi(countText); err == nil {
			summary.KeywordsFoundCount = count
		}

		parts := textParts(decisionDiv.Find("div.kararbilgileri").First())
		if len(parts) > 0 {
			summary.ApplicationTypeSummary = parts[0]
		}
		if len(parts) > 1 {
			summary.ApplicantSummary = parts[1]
		}
		if len(parts) > 2 {
			summary.DecisionOutcomeSummary = parts[2]
		}
		if len(parts) > 3 {
			summary.DecisionDateSummary = strings.TrimSpace(strings.ReplaceAll(parts[3], "Karar Tarihi:", ""))
		}

		// The reviewed-norm table lives in the next sibling container.
		detailsContainer := decisionDiv.NextAllFiltered("div.col-sm-12").First()
		detailsContainer.Find("table.table tbody tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() != 6 {
				return
			}
			norm := models.AnayasaReviewedNorm{
				NormNameOrNumber:     strings.TrimSpace(cells.Eq(0).Text()),
				ArticleNumber:        strings.TrimSpace(cells.Eq(1).Text()),
				ReviewTypeAndOutcome: strings.TrimSpace(cells.Eq(2).Text()),
				OutcomeReason:        strings.TrimSpace(cells.Eq(3).Text()),
				PostponementPeriod:   strings.TrimSpace(cells.Eq(5).Text()),
			}
			for _, article := range strings.Split(cells.Eq(4).Text(), ",") {
				if trimmed := strings.TrimSpace(article); trimmed != "" {
					norm.BasisConstitutionArticlesCited = append(norm.BasisConstitutionArticlesCited, trimmed)
				}
			}
			summary.ReviewedNorms = append(summary.ReviewedNorms, norm)
		})

		result.Decisions = append(result.Decisions, summary)
	})

	return result
}

// Document fetches a norm-control decision page, extracts its reference
// metadata and returns the requested 5000-character Markdown chunk.
func (c *NormClient) Document(ctx context.Context, documentURL string, pageNumber int) (*models.AnayasaDocument, error) {
	trimmed := strings.TrimSpace(documentURL)
	if trimmed == "" {
		return nil, models.Errorf(models.KindInvalidInput, normSource, "document", "document url is required")
	}
	if pageNumber < 1 {
		pageNumber = 1
	}

	fullURL := trimmed
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		fullURL = c.settings.absoluteURL(trimmed)
	}

	htmlContent, err := c.http.GetHTML(ctx, fullURL, nil)
	if err != nil {
		return nil, models.Classify(normSource, "document", err)
	}

	// Decision bodies arrive with their markup entity-escaped.
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html.UnescapeString(htmlContent)))
	if err != nil {
		return nil, models.NewError(models.KindUpstreamParse, normSource, "document", err)
	}

	document := &models.AnayasaDocument{
		SourceURL:   fullURL,
		CurrentPage: pageNumber,
	}
	c.extractNormMetadata(doc, document)

	content, err := c.md.FromSelection(selectNormContent(doc), c.settings.baseURL)
	if err != nil {
		return nil, models.NewError(models.KindConversionFailure, normSource, "document", err)
	}
	if content == "" {
		return document, nil
	}

	chunk := markdown.Paginate(content, pageNumber)
	document.MarkdownChunk = chunk.Content
	document.CurrentPage = chunk.CurrentPage
	document.TotalPages = chunk.TotalPages
	document.IsPaginated = chunk.IsPaginated

	if c.settings.logger != nil {
		c.settings.logger.Info().
			Str("url", fullURL).
			Int("page", chunk.CurrentPage).
			Int("total_pages", chunk.TotalPages).
			Msg("Anayasa norm-control document converted")
	}
	return document, nil
}

// extractNormMetadata pulls the E./K. reference, decision date and
// Official Gazette line out of the decision header paragraphs.
func (c *NormClient) extractNormMetadata(doc *goquery.Document, document *models.AnayasaDocument) {
	container := doc.Find("div.KararMetni").First()
	if container.Length() == 0 {
		container = doc.Find("div.WordSection1").First()
	}
	if container.Length() == 0 {
		return
	}

	var esasNo, kararNo string
	container.Find("p b").Each(func(_ int, b *goquery.Selection) {
		text := strings.TrimSpace(b.Text())
		switch {
		case strings.Contains(text, "Esas No.:"):
			esasNo = strings.TrimSpace(strings.ReplaceAll(text, "Esas No.:", ""))
		case strings.Contains(text, "Karar No.:"):
			kararNo = strings.TrimSpace(strings.ReplaceAll(text, "Karar No.:", ""))
		case strings.Contains(text, "Karar tarihi:"):
			document.DecisionDateFromPage = strings.TrimSpace(strings.ReplaceAll(text, "Karar tarihi:", ""))
		}
	})
	if esasNo != "" && kararNo != "" {
		document.DecisionReferenceNoFromPage = fmt.Sprintf("E.%s, K.%s", esasNo, kararNo)
	}

	if document.DecisionDateFromPage == "" {
		if m := normDecisionDateRe.FindStringSubmatch(container.Text()); m != nil {
			document.DecisionDateFromPage = strings.TrimSpace(m[1])
		}
	}

	container.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := p.Text()
		if !strings.Contains(text, "Resmî Gazete tarih ve sayısı:") && !strings.Contains(text, "Resmi Gazete tarih/sayı:") {
			return true
		}
		line := text
		if bold := p.Find("b").First(); bold.Length() > 0 {
			line = bold.Text()
		}
		line = strings.ReplaceAll(line, "Resmî Gazete tarih ve sayısı:", "")
		line = strings.ReplaceAll(line, "Resmi Gazete tarih/sayı:", "")
		document.OfficialGazetteInfoFromPage = strings.TrimSpace(line)
		return false
	})
}

// selectNormContent narrows the page down to the decision text: the
// KARAR tab's WordSection1 when present, with scripts, styles and page
// chrome removed.
func selectNormContent(doc *goquery.Document) *goquery.Selection {
	if karar := doc.Find("div#Karar").First(); karar.Length() > 0 {
		metni := karar.Find("div.KararMetni").First()
		if metni.Length() == 0 {
			return karar
		}
		metni.Find("script").Remove()
		metni.Find("style").Remove()
		metni.Find("div.item.col-sm-12").Remove()
		metni.Find("div.modal.fade").Remove()
		if ws := metni.Find("div.WordSection1").First(); ws.Length() > 0 {
			return ws
		}
		return metni
	}
	if ws := doc.Find("div.WordSection1").First(); ws.Length() > 0 {
		return ws
	}
	return doc.Find("body").First()
}
