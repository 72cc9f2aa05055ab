// Package uyusmazlik provides a client for the Uyuşmazlık Mahkemesi
// (Court of Jurisdictional Disputes) decision search at
// kararlar.uyusmazlik.gov.tr. The site has no JSON API; searches POST a
// form and the results come back as server-rendered HTML.
package uyusmazlik

import (
	"context"
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"

	"github.com/serkanbykl/yargi-mcp/internal/httpclient"
	"github.com/serkanbykl/yargi-mcp/internal/markdown"
	"github.com/serkanbykl/yargi-mcp/internal/models"
)

const (
	// DefaultBaseURL is the public decision search host.
	DefaultBaseURL = "https://kararlar.uyusmazlik.gov.tr"

	searchEndpoint = "/Arama/Search"

	source = "uyusmazlik"
)

var (
	totalRecordsRe = regexp.MustCompile(`(\d+)\s*adet kayıt bulundu`)
	pdfLinkRe      = regexp.MustCompile(`(?i)\.pdf$`)
)

// Client searches Uyuşmazlık Mahkemesi decisions and fetches decision
// pages. Search and document fetches use separate HTTP clients because
// the document host serves a certificate that fails strict verification
// while the search endpoint expects browser-style AJAX headers.
type Client struct {
	baseURL   string
	logger    arbor.ILogger
	timeout   time.Duration
	rateLimit float64
	userAgent string

	searchHTTP *httpclient.Client
	docHTTP    *httpclient.Client
	md         *markdown.Converter
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

// NewClient creates an Uyuşmazlık Mahkemesi client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}

	shared := []httpclient.ClientOption{
		httpclient.WithLogger(c.logger),
	}
	if c.timeout > 0 {
		shared = append(shared, httpclient.WithTimeout(c.timeout))
	}
	if c.rateLimit > 0 {
		shared = append(shared, httpclient.WithRateLimit(c.rateLimit))
	}
	if c.userAgent != "" {
		shared = append(shared, httpclient.WithUserAgent(c.userAgent))
	}

	searchOpts := append([]httpclient.ClientOption{
		httpclient.WithBaseURL(c.baseURL),
		httpclient.WithHeader("Accept-Language", "tr-TR,tr;q=0.9,en-US;q=0.8,en;q=0.7"),
		httpclient.WithHeader("X-Requested-With", "XMLHttpRequest"),
		httpclient.WithHeader("Origin", c.baseURL),
		httpclient.WithHeader("Referer", c.baseURL+"/"),
	}, shared...)
	c.searchHTTP = httpclient.New(searchOpts...)

	docOpts := append([]httpclient.ClientOption{
		httpclient.WithBaseURL(c.baseURL),
		httpclient.WithInsecureTLS(),
		httpclient.WithHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"),
	}, shared...)
	c.docHTTP = httpclient.New(docOpts...)

	c.md = markdown.NewConverter(c.logger)

	return c
}

// Close releases idle connections on both upstream clients. Safe to
// call more than once.
func (c *Client) Close() {
	c.searchHTTP.Close()
	c.docHTTP.Close()
}

// buildSearchForm encodes the search form. The form expects every key to
// be present, empty when unused, with KararSonucuList repeated per
// selected outcome, so the encoding is built by hand to keep key order.
func buildSearchForm(req models.UyusmazlikSearchRequest) string {
	var b strings.Builder
	add := func(key, value string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
	}

	add("BolumId", models.UyusmazlikBolumID(req.Bolum))
	add("UyusmazlikId", models.UyusmazlikTuruID(req.UyusmazlikTuru))
	for _, sonuc := range req.KararSonuclari {
		if id := models.UyusmazlikSonucID(sonuc); id != "" {
			add("KararSonucuList", id)
		}
	}
	add("EsasYil", req.EsasYil)
	add("EsasSayisi", req.EsasSayisi)
	add("KararYil", req.KararYil)
	add("KararSayisi", req.KararSayisi)
	add("KanunNo", req.KanunNo)
	add("KararDateBegin", req.KararDateBegin)
	add("KararDateEnd", req.KararDateEnd)
	add("ResmiGazeteSayi", req.ResmiGazeteSayi)
	add("ResmiGazeteDate", req.ResmiGazeteDate)
	add("Icerik", req.Icerik)
	add("Tumce", req.Tumce)
	add("WildCard", req.WildCard)
	add("Hepsi", req.Hepsi)
	add("Herhangibirisi", req.HerhangiBirisi)
	add("NotHepsi", req.NotHepsi)
	return b.String()
}

// Search posts the search form and parses the result rows out of the
// returned HTML.
func (c *Client) Search(ctx context.Context, req models.UyusmazlikSearchRequest) (*models.UyusmazlikSearchResult, error) {
	if err := models.Validate(source, &req); err != nil {
		return nil, err
	}

	htmlContent, err := c.searchHTTP.PostFormRaw(ctx, searchEndpoint, buildSearchForm(req))
	if err != nil {
		return nil, models.Classify(source, "search", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, models.NewError(models.KindUpstreamParse, source, "search", err)
	}

	result := c.parseSearchResults(doc)

	if c.logger != nil {
		c.logger.Info().
			Str("icerik", req.Icerik).
			Int("results", len(result.Decisions)).
			Int("total", result.TotalRecordsFound).
			Msg("Uyuşmazlık search completed")
	}
	return result, nil
}

func (c *Client) parseSearchResults(doc *goquery.Document) *models.UyusmazlikSearchResult {
	result := &models.UyusmazlikSearchResult{
		Decisions: []models.UyusmazlikDecisionEntry{},
	}

	totalDiv := doc.Find("div.pull-right.label.label-important").First()
	if m := totalRecordsRe.FindStringSubmatch(strings.TrimSpace(totalDiv.Text())); m != nil {
		result.TotalRecordsFound, _ = strconv.Atoi(m[1])
	}

	doc.Find("table.table-hover").First().Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // header row
		}
		cols := row.Find("td")
		if cols.Length() < 5 {
			return
		}

		first := cols.Eq(0)
		href, ok := first.Find("a").First().Attr("href")
		if !ok || href == "" {
			return
		}

		entry := models.UyusmazlikDecisionEntry{
			KararSayisi:      strings.TrimSpace(first.Text()),
			EsasSayisi:       strings.TrimSpace(cols.Eq(1).Text()),
			Bolum:            strings.TrimSpace(cols.Eq(2).Text()),
			UyusmazlikKonusu: strings.TrimSpace(cols.Eq(3).Text()),
			KararSonucu:      strings.TrimSpace(cols.Eq(4).Text()),
			DocumentURL:      c.absoluteURL(href),
		}
		if popover, ok := first.Find(`div[data-rel="popover"]`).First().Attr("data-content"); ok {
			entry.PopoverContent = html.UnescapeString(popover)
		}
		if cols.Length() > 5 {
			cols.Eq(5).Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
				if pdfHref, ok := a.Attr("href"); ok && pdfLinkRe.MatchString(pdfHref) {
					entry.PdfURL = c.absoluteURL(pdfHref)
					return false
				}
				return true
			})
		}

		result.Decisions = append(result.Decisions, entry)
	})

	return result
}

// Document fetches a decision page by the URL harvested from search
// results and converts it to Markdown.
func (c *Client) Document(ctx context.Context, documentURL string) (*models.UyusmazlikDocument, error) {
	trimmed := strings.TrimSpace(documentURL)
	if trimmed == "" {
		return nil, models.Errorf(models.KindInvalidInput, source, "document", "document url is required")
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return nil, models.Errorf(models.KindInvalidInput, source, "document", "document url must be absolute: %q", documentURL)
	}

	raw, err := c.docHTTP.GetHTML(ctx, trimmed, nil)
	if err != nil {
		return nil, models.Classify(source, "document", err)
	}

	content, err := c.md.FromHTML(html.UnescapeString(raw), c.baseURL)
	if err != nil {
		return nil, models.NewError(models.KindConversionFailure, source, "document", err)
	}

	if c.logger != nil {
		c.logger.Info().
			Str("url", trimmed).
			Int("chars", len(content)).
			Msg("Uyuşmazlık document converted")
	}

	return &models.UyusmazlikDocument{
		SourceURL:       trimmed,
		MarkdownContent: content,
	}, nil
}

func (c *Client) absoluteURL(href string) string {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
