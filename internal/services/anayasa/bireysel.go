package anayasa

import (
	"context"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/serkanbykl/yargi-mcp/internal/httpclient"
	"github.com/serkanbykl/yargi-mcp/internal/markdown"
	"github.com/serkanbykl/yargi-mcp/internal/models"
)

const bireyselSource = "anayasa_bireysel"

var (
	basvuruNoRe     = regexp.MustCompile(`B\.\s*No:\s*([\d/]+)`)
	metaDecisionRe  = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4}),\s*§`)
	shortDateRe     = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})`)
	refNoPrefixRe   = regexp.MustCompile(`^\d+/\d+`)
	bireyselPruneSel = "script, style, .item.col-xs-12.col-sm-12, center:has(b)"
)

// BireyselClient searches the individual-application (Bireysel Başvuru)
// decision report and fetches decision documents in paginated Markdown
// chunks.
type BireyselClient struct {
	settings settings
	http     *httpclient.Client
	md       *markdown.Converter
}

// NewBireyselClient creates an individual-application client.
func NewBireyselClient(opts ...ClientOption) *BireyselClient {
	s := settings{baseURL: DefaultBireyselBaseURL}
	for _, opt := range opts {
		opt(&s)
	}
	return &BireyselClient{
		settings: s,
		http:     s.newHTTP(),
		md:       markdown.NewConverter(s.logger),
	}
}

// Close releases idle upstream connections. Safe to call more than once.
func (c *BireyselClient) Close() {
	c.http.Close()
}

// buildReportQuery encodes the decision-bulletin report parameters.
// KararBulteni=1 selects the report view.
func buildReportQuery(req models.AnayasaBireyselReportSearchRequest) string {
	qb := &queryBuilder{}
	qb.add("KararBulteni", "1")
	for _, kw := range req.Keywords {
		qb.add("KelimeAra[]", kw)
	}
	if req.PageToFetch > 1 {
		qb.add("page", strconv.Itoa(req.PageToFetch))
	}
	return qb.String()
}

// SearchReport runs a decision-bulletin search and parses one page of
// the report, ten decisions per page.
func (c *BireyselClient) SearchReport(ctx context.Context, req models.AnayasaBireyselReportSearchRequest) (*models.AnayasaBireyselReportSearchResult, error) {
	req.ApplyDefaults()
	if err := models.Validate(bireyselSource, &req); err != nil {
		return nil, err
	}

	requestPath := "/" + searchPathSegment + "?" + buildReportQuery(req)
	htmlContent, err := c.http.GetHTML(ctx, requestPath, nil)
	if err != nil {
		return nil, models.Classify(bireyselSource, "search", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, models.NewError(models.KindUpstreamParse, bireyselSource, "search", err)
	}

	result := c.parseReport(doc, req.PageToFetch)

	if c.settings.logger != nil {
		c.settings.logger.Info().
			Int("page", req.PageToFetch).
			Int("results", len(result.Decisions)).
			Int("total", result.TotalRecordsFound).
			Msg("Anayasa individual-application report search completed")
	}
	return result, nil
}

func (c *BireyselClient) parseReport(doc *goquery.Document, page int) *models.AnayasaBireyselReportSearchResult {
	result := &models.AnayasaBireyselReportSearchResult{
		Decisions:           []models.AnayasaBireyselReportDecision{},
		RetrievedPageNumber: page,
	}

	if total, ok := parseTotalRecords(doc.Find("div.bulunankararsayisi").First()); ok {
		result.TotalRecordsFound = total
	}

	reportArea := doc.Selection
	if bulletin := doc.Find("div.HaberBulteni").First(); bulletin.Length() > 0 {
		reportArea = bulletin
	}

	reportArea.Find("div.KararBulteniBirKarar").Each(func(_ int, decisionDiv *goquery.Selection) {
		decision := models.AnayasaBireyselReportDecision{
			Title: normalizeSpace(decisionDiv.Find("h4").First().Text()),
		}

		if altiCizili := decisionDiv.Find("div.AltiCizili").First(); altiCizili.Length() > 0 {
			if link := altiCizili.Find("a[href]").First(); link.Length() > 0 {
				decision.DecisionReferenceNo = normalizeSpace(link.Text())
				if href, ok := link.Attr("href"); ok {
					decision.DecisionPageURL = c.settings.absoluteURL(href)
				}
			}
			assignReportParts(&decision, textParts(altiCizili))
		}

		decisionDiv.Find("div").EachWithBreak(func(_ int, div *goquery.Selection) bool {
			if _, hasClass := div.Attr("class"); hasClass {
				return true
			}
			text := normalizeSpace(div.Text())
			if !strings.HasPrefix(text, "BAŞVURU KONUSU :") {
				return true
			}
			decision.ApplicationSubjectSummary = strings.TrimSpace(strings.TrimPrefix(text, "BAŞVURU KONUSU :"))
			return false
		})

		// The rights/outcome table sits in the next sibling container.
		detailsDiv := decisionDiv.NextAllFiltered("div#KararDetaylari").First()
		detailsDiv.Find("table.table tbody tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() != 4 {
				return
			}
			decision.Details = append(decision.Details, models.AnayasaBireyselReportDetail{
				Hak:             strings.TrimSpace(cells.Eq(0).Text()),
				MudahaleIddiasi: strings.TrimSpace(cells.Eq(1).Text()),
				Sonuc:           strings.TrimSpace(cells.Eq(2).Text()),
				Giderim:         strings.TrimSpace(cells.Eq(3).Text()),
			})
		})

		result.Decisions = append(result.Decisions, decision)
	})

	return result
}

// assignReportParts maps the underlined summary line onto the decision
// fields. The line reads: reference no, decision type, deciding body,
// application date, decision date.
func assignReportParts(decision *models.AnayasaBireyselReportDecision, parts []string) {
	if len(parts) > 0 && decision.DecisionReferenceNo != "" && strings.HasPrefix(parts[0], decision.DecisionReferenceNo) {
		parts[0] = strings.TrimSpace(strings.TrimPrefix(parts[0], decision.DecisionReferenceNo))
		if parts[0] == "" {
			parts = parts[1:]
		}
	}

	idx := 0
	if decision.DecisionReferenceNo == "" && len(parts) > idx && refNoPrefixRe.MatchString(parts[idx]) {
		decision.DecisionReferenceNo = parts[idx]
		idx++
	}

	if len(parts) > idx {
		decision.DecisionTypeSummary = parts[idx]
	}
	idx++
	if len(parts) > idx {
		decision.DecisionMakingBody = parts[idx]
	}
	idx++
	if len(parts) > idx {
		decision.ApplicationDateSummary = extractLabeledDate(parts[idx], "Başvuru Tarihi :")
	}
	idx++
	if len(parts) > idx {
		decision.DecisionDateSummary = extractLabeledDate(parts[idx], "Karar Tarihi :")
	}
}

// extractLabeledDate strips the label when present, otherwise falls
// back to the first DD/MM/YYYY token.
func extractLabeledDate(part, label string) string {
	if strings.Contains(part, label) {
		return strings.TrimSpace(strings.ReplaceAll(part, label, ""))
	}
	if m := shortDateRe.FindStringSubmatch(part); m != nil {
		return m[1]
	}
	return ""
}

// Document fetches an individual-application decision page, extracts
// its metadata and returns the requested 5000-character Markdown chunk.
func (c *BireyselClient) Document(ctx context.Context, documentURL string, pageNumber int) (*models.AnayasaBireyselDocument, error) {
	trimmed := strings.TrimSpace(documentURL)
	if trimmed == "" {
		return nil, models.Errorf(models.KindInvalidInput, bireyselSource, "document", "document url is required")
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
		return nil, models.Classify(bireyselSource, "document", err)
	}

	document := &models.AnayasaBireyselDocument{
		SourceURL:   fullURL,
		CurrentPage: pageNumber,
	}
	if strings.TrimSpace(htmlContent) == "" {
		return document, nil
	}

	// Decision bodies arrive with their markup entity-escaped.
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html.UnescapeString(htmlContent)))
	if err != nil {
		return nil, models.NewError(models.KindUpstreamParse, bireyselSource, "document", err)
	}

	c.extractBireyselMetadata(doc, document)

	content, err := c.md.FromSelection(selectBireyselContent(doc), c.settings.baseURL)
	if err != nil {
		return nil, models.NewError(models.KindConversionFailure, bireyselSource, "document", err)
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
			Msg("Anayasa individual-application document converted")
	}
	return document, nil
}

// extractBireyselMetadata pulls the application number and dates from
// the meta description and the KARAR BİLGİLERİ tab.
func (c *BireyselClient) extractBireyselMetadata(doc *goquery.Document, document *models.AnayasaBireyselDocument) {
	if content, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		if m := basvuruNoRe.FindStringSubmatch(content); m != nil {
			document.BasvuruNoFromPage = strings.TrimSpace(m[1])
		}
		if m := metaDecisionRe.FindStringSubmatch(content); m != nil {
			document.KararTarihiFromPage = strings.TrimSpace(m[1])
		}
	}

	doc.Find("div#KararDetaylari table.table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() != 2 {
			return
		}
		key := strings.TrimSpace(cells.Eq(0).Text())
		value := strings.TrimSpace(cells.Eq(1).Text())
		switch {
		case strings.Contains(key, "Kararı Veren Birim"):
			document.KarariVerenBirimFromPage = value
		case strings.Contains(key, "Karar Türü (Başvuru Sonucu)"):
			document.KararTuruFromPage = value
		case strings.Contains(key, "Başvuru No") && document.BasvuruNoFromPage == "":
			document.BasvuruNoFromPage = value
		case strings.Contains(key, "Başvuru Tarihi"):
			document.BasvuruTarihiFromPage = value
		case strings.Contains(key, "Karar Tarihi") && document.KararTarihiFromPage == "":
			document.KararTarihiFromPage = value
		case strings.Contains(key, "Resmi Gazete Tarih / Sayı"):
			document.ResmiGazeteInfoFromPage = value
		}
	})
}

// selectBireyselContent narrows the page down to the decision text: the
// KARAR tab's WordSection1 when present, falling back level by level
// and stripping page chrome at each one.
func selectBireyselContent(doc *goquery.Document) *goquery.Selection {
	prune := func(sel *goquery.Selection, selectors string) *goquery.Selection {
		sel.Find(selectors).Remove()
		return sel
	}

	if karar := doc.Find("div#Karar").First(); karar.Length() > 0 {
		if span := karar.Find("span.kararHtml").First(); span.Length() > 0 {
			if ws := span.Find("div.WordSection1").First(); ws.Length() > 0 {
				return prune(ws, bireyselPruneSel)
			}
			return prune(span, bireyselPruneSel)
		}
		return prune(karar, bireyselPruneSel)
	}
	if ws := doc.Find("div.WordSection1").First(); ws.Length() > 0 {
		return prune(ws, bireyselPruneSel)
	}
	// Last resort: strip navigation, filters and the details tab from
	// the whole body.
	body := doc.Find("body").First()
	return prune(body, bireyselPruneSel+", .banner, .footer, .yazdirmaalani, .filtreler, .menu, .altmenu, .geri, .arabuton, .temizlebutonu, form#KararGetir, .TabBaslik, #KararDetaylari, .share-button-container")
}
