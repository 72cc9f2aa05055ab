// Package rekabet provides a client for the Rekabet Kurumu (Turkish
// Competition Authority) decision search at rekabet.gov.tr. Searches
// scrape the server-rendered result tables; decision documents are
// published as PDFs behind a landing page, so document retrieval
// resolves the PDF link and extracts the requested PDF page as text.
package rekabet

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"

	"github.com/serkanbykl/yargi-mcp/internal/httpclient"
	"github.com/serkanbykl/yargi-mcp/internal/models"
	"github.com/serkanbykl/yargi-mcp/internal/pdfextract"
)

const (
	// DefaultBaseURL is the public Rekabet Kurumu host.
	DefaultBaseURL = "https://www.rekabet.gov.tr"

	searchPath   = "/tr/Kararlar"
	decisionPath = "/Karar"

	source = "rekabet"

	// The site paginates its result list ten decisions at a time.
	resultsPerPage = 10
)

var (
	totalRecordsRe = regexp.MustCompile(`Toplam\s*:\s*(\d+)`)
	pdfHrefRe      = regexp.MustCompile(`(?i)\.pdf(\?|$)`)
	pdfLinkTextRe  = regexp.MustCompile(`(?i)karar metni|pdf indir`)
)

// Client searches Rekabet Kurumu decisions and fetches decision PDFs.
type Client struct {
	baseURL   string
	logger    arbor.ILogger
	timeout   time.Duration
	rateLimit float64
	userAgent string

	http *httpclient.Client
	pdf  *pdfextract.Extractor
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithRateLimit sets the rate limit in requests per second.
func WithRateLimit(requestsPerSecond float64) ClientOption {
	return func(c *Client) {
		c.rateLimit = requestsPerSecond
	}
}

// WithUserAgent sets the User-Agent sent to the upstream.
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// NewClient creates a Rekabet Kurumu client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}

	httpOpts := []httpclient.ClientOption{
		httpclient.WithBaseURL(c.baseURL),
		httpclient.WithLogger(c.logger),
		httpclient.WithHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"),
		httpclient.WithHeader("Accept-Language", "tr-TR,tr;q=0.9,en-US;q=0.8,en;q=0.7"),
	}
	if c.timeout > 0 {
		httpOpts = append(httpOpts, httpclient.WithTimeout(c.timeout))
	}
	if c.rateLimit > 0 {
		httpOpts = append(httpOpts, httpclient.WithRateLimit(c.rateLimit))
	}
	if c.userAgent != "" {
		httpOpts = append(httpOpts, httpclient.WithUserAgent(c.userAgent))
	}
	c.http = httpclient.New(httpOpts...)
	c.pdf = pdfextract.NewExtractor(c.logger)
	return c
}

// Close releases idle upstream connections. Safe to call more than once.
func (c *Client) Close() {
	c.http.Close()
}

// buildSearchQuery encodes the filter parameters. The site expects every
// filter key present even when empty, in form order, so the query is
// assembled by hand instead of through url.Values.
func buildSearchQuery(req models.RekabetSearchRequest) string {
	pairs := [][2]string{
		{"sayfaAdi", req.SayfaAdi},
		{"YayinlanmaTarihi", req.YayinlanmaTarihi},
		{"PdfText", req.PdfText},
		{"KararTuruID", models.RekabetKararTuruGuid(req.KararTuru)},
		{"KararSayisi", req.KararSayisi},
		{"KararTarihi", req.KararTarihi},
	}

	var b strings.Builder
	for _, pair := range pairs {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(pair[0])
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(pair[1]))
	}
	if req.Page > 1 {
		fmt.Fprintf(&b, "&page=%d", req.Page)
	}
	return b.String()
}

// Search queries the decision list and parses one result page.
func (c *Client) Search(ctx context.Context, req models.RekabetSearchRequest) (*models.RekabetSearchResult, error) {
	req.ApplyDefaults()
	if err := models.Validate(source, &req); err != nil {
		return nil, err
	}

	htmlContent, err := c.http.GetHTML(ctx, searchPath+"?"+buildSearchQuery(req), nil)
	if err != nil {
		return nil, models.Classify(source, "search", err)
	}

	result, err := c.parseSearchResults(htmlContent, req.Page)
	if err != nil {
		return nil, models.NewError(models.KindUpstreamParse, source, "search", err)
	}

	if c.logger != nil {
		c.logger.Info().
			Int("page", req.Page).
			Int("results", len(result.Decisions)).
			Int("total", result.TotalRecordsFound).
			Msg("Rekabet search completed")
	}
	return result, nil
}

func (c *Client) parseSearchResults(htmlContent string, page int) (*models.RekabetSearchResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	result := &models.RekabetSearchResult{
		Decisions:           []models.RekabetDecisionSummary{},
		RetrievedPageNumber: page,
	}

	pagination := doc.Find("div.yazi01").First()
	if m := totalRecordsRe.FindStringSubmatch(pagination.Text()); m != nil {
		if total, err := strconv.Atoi(m[1]); err == nil {
			result.TotalRecordsFound = total
			result.TotalPages = (total + resultsPerPage - 1) / resultsPerPage
		}
	} else if href, ok := pagination.Find("li.PagedList-skipToLast a").First().Attr("href"); ok {
		// The total is missing; the "last page" link still carries the
		// page count in its query string.
		if parsed, err := url.Parse(href); err == nil {
			if n, err := strconv.Atoi(parsed.Query().Get("page")); err == nil {
				result.TotalPages = n
			}
		}
	}

	doc.Find("div#kararList").First().Find("table.equalDivide").Each(func(_ int, table *goquery.Selection) {
		rows := table.Find("tr")
		if rows.Length() != 3 {
			return
		}

		summary := models.RekabetDecisionSummary{}

		// First row: publication date, decision number, related-cases link.
		topCells := rows.Eq(0).Find("td")
		summary.PublicationDate = strings.TrimSpace(topCells.Eq(0).Text())
		summary.DecisionNumber = strings.TrimSpace(topCells.Eq(1).Text())
		if href, ok := topCells.Eq(2).Find("a[href]").First().Attr("href"); ok {
			summary.RelatedCasesURL = resolveAgainst(c.baseURL+searchPath, href)
			if summary.KararID == "" {
				summary.KararID = kararIDFromHref(href)
			}
		}

		// Second row: decision date and type.
		midCells := rows.Eq(1).Find("td")
		summary.DecisionDate = strings.TrimSpace(midCells.Eq(0).Text())
		summary.DecisionTypeText = strings.TrimSpace(midCells.Eq(1).Text())

		// Third row: title cell spanning the table, linking to the
		// decision landing page.
		link := rows.Eq(2).Find(`td[colspan="5"]`).First().Find("a[href]").First()
		summary.Title = strings.TrimSpace(link.Text())
		if href, ok := link.Attr("href"); ok && strings.HasPrefix(href, decisionPath+"?kararId=") {
			summary.DecisionURL = resolveAgainst(c.baseURL+searchPath, href)
			if id := kararIDFromHref(href); id != "" {
				summary.KararID = id
			}
		}

		if summary.KararID == "" {
			return
		}
		result.Decisions = append(result.Decisions, summary)
	})

	return result, nil
}

// Document fetches one decision. The landing page either is the PDF
// itself or links to it; the requested PDF page is extracted as text.
// Failures are reported in the returned document's ErrorMessage; the
// error return fires only when the caller's context ends.
func (c *Client) Document(ctx context.Context, kararID string, pageNumber int) (*models.RekabetDocument, error) {
	if pageNumber < 1 {
		pageNumber = 1
	}

	landingPath := decisionPath + "?kararId=" + url.QueryEscape(kararID)
	document := &models.RekabetDocument{
		SourceLandingPageURL: c.baseURL + landingPath,
		KararID:              kararID,
		TitleOnLandingPage:   fmt.Sprintf("Rekabet Kurumu Kararı %s", kararID),
		CurrentPage:          pageNumber,
	}
	if kararID == "" {
		document.SourceLandingPageURL = c.baseURL
		document.CurrentPage = 1
		document.ErrorMessage = "karar_id is required"
		return document, nil
	}

	body, contentType, err := c.http.GetBytes(ctx, landingPath, nil)
	if err != nil {
		if ctx.Err() != nil {
			return nil, models.Classify(source, "document", ctx.Err())
		}
		document.ErrorMessage = fmt.Sprintf("landing page request failed: %v", err)
		return document, nil
	}

	var pdfBytes []byte
	switch {
	case strings.Contains(strings.ToLower(contentType), "application/pdf"):
		document.PdfURL = document.SourceLandingPageURL
		pdfBytes = body

	case strings.Contains(strings.ToLower(contentType), "text/html"):
		htmlContent := string(body)
		if strings.TrimSpace(htmlContent) == "" {
			document.ErrorMessage = "decision landing page content is empty"
			return document, nil
		}

		pdfHref, title := findPdfLink(htmlContent)
		if title != "" {
			document.TitleOnLandingPage = title
		}
		if pdfHref == "" {
			document.ErrorMessage = "PDF link not found on decision landing page"
			return document, nil
		}
		document.PdfURL = resolveAgainst(document.SourceLandingPageURL, pdfHref)

		pdfBytes, _, err = c.http.GetBytes(ctx, document.PdfURL, nil)
		if err != nil {
			if ctx.Err() != nil {
				return nil, models.Classify(source, "document", ctx.Err())
			}
			document.ErrorMessage = fmt.Sprintf("downloading decision PDF failed: %v", err)
			return document, nil
		}

	default:
		document.ErrorMessage = fmt.Sprintf("unexpected content type %q for decision landing page", contentType)
		return document, nil
	}

	text, pageCount, err := c.pdf.ExtractPageText(pdfBytes, pageNumber)
	document.TotalPages = pageCount
	document.IsPaginated = pageCount > 1
	if pageCount > 0 {
		document.CurrentPage = clampPage(pageNumber, pageCount)
	}
	switch {
	case err != nil:
		document.ErrorMessage = fmt.Sprintf("extracting PDF text failed: %v", err)
	case pageCount == 0:
		document.ErrorMessage = "PDF could not be processed or its page count was zero"
	case pageNumber > pageCount:
		document.ErrorMessage = fmt.Sprintf("requested page %d is out of range, PDF has %d pages", pageNumber, pageCount)
	case strings.TrimSpace(text) == "":
		document.ErrorMessage = fmt.Sprintf("PDF page %d produced no text, the page may be image-based", pageNumber)
	default:
		document.MarkdownChunk = strings.TrimSpace(text)
	}

	if c.logger != nil {
		c.logger.Info().
			Str("karar_id", kararID).
			Int("page", document.CurrentPage).
			Int("total_pages", document.TotalPages).
			Bool("failed", document.ErrorMessage != "").
			Msg("Rekabet document processed")
	}
	return document, nil
}

// findPdfLink digs the decision PDF reference out of a landing page,
// trying direct .pdf anchors, download-button text, then embedded
// viewers. It also returns the page title when present.
func findPdfLink(htmlContent string) (href, title string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", ""
	}

	title = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if v, ok := a.Attr("href"); ok && pdfHrefRe.MatchString(v) {
			href = v
			return false
		}
		return true
	})
	if href == "" {
		doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			if pdfLinkTextRe.MatchString(a.Text()) {
				href, _ = a.Attr("href")
				return false
			}
			return true
		})
	}
	if href == "" {
		if v, ok := doc.Find("iframe[src]").FilterFunction(func(_ int, s *goquery.Selection) bool {
			src, _ := s.Attr("src")
			return pdfHrefRe.MatchString(src)
		}).First().Attr("src"); ok {
			href = v
		}
	}
	if href == "" {
		if v, ok := doc.Find(`embed[type="application/pdf"]`).FilterFunction(func(_ int, s *goquery.Selection) bool {
			src, _ := s.Attr("src")
			return pdfHrefRe.MatchString(src)
		}).First().Attr("src"); ok {
			href = v
		}
	}
	return href, title
}

// kararIDFromHref pulls the kararId query parameter out of a link.
func kararIDFromHref(href string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return parsed.Query().Get("kararId")
}

// resolveAgainst joins a possibly relative href with the page URL it
// was found on.
func resolveAgainst(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func clampPage(page, total int) int {
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}
