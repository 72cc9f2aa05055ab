// Package danistay provides a client for the Danıştay (Council of
// State) decision search at karararama.danistay.gov.tr.
package danistay

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/serkanbykl/yargi-mcp/internal/httpclient"
	"github.com/serkanbykl/yargi-mcp/internal/markdown"
	"github.com/serkanbykl/yargi-mcp/internal/models"
)

const (
	// DefaultBaseURL is the public decision search host.
	DefaultBaseURL = "https://karararama.danistay.gov.tr"

	keywordSearchEndpoint  = "/aramalist"
	detailedSearchEndpoint = "/aramadetaylist"
	documentEndpoint       = "/getDokuman"

	source = "danistay"
)

// Client searches Danıştay decisions and fetches decision documents.
// Two search modes exist: a boolean keyword search and a detailed
// criteria search; both return the same row shape.
type Client struct {
	baseURL   string
	logger    arbor.ILogger
	timeout   time.Duration
	rateLimit float64
	userAgent string

	http *httpclient.Client
	md   *markdown.Converter
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

// NewClient creates a Danıştay client.
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
		httpclient.WithInsecureTLS(),
		httpclient.WithHeader("Accept", "application/json, text/plain, */*"),
		httpclient.WithHeader("X-Requested-With", "XMLHttpRequest"),
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
	c.md = markdown.NewConverter(c.logger)

	return c
}

// Close releases idle upstream connections. Safe to call more than once.
func (c *Client) Close() {
	c.http.Close()
}

// prepareKeywords wraps every non-empty keyword in double quotes, which
// the keyword endpoint requires for phrase matching.
func prepareKeywords(keywords []string) []string {
	prepared := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if strings.TrimSpace(k) == "" {
			continue
		}
		prepared = append(prepared, `"`+strings.Trim(k, `"`)+`"`)
	}
	return prepared
}

type keywordPayload struct {
	Data models.DanistayKeywordSearchRequest `json:"data"`
}

type detailedPayload struct {
	Data models.DanistayDetailedSearchRequest `json:"data"`
}

// SearchKeyword runs the boolean keyword search.
func (c *Client) SearchKeyword(ctx context.Context, req models.DanistayKeywordSearchRequest) (*models.DanistaySearchResult, error) {
	req.ApplyDefaults()
	if err := models.Validate(source, &req); err != nil {
		return nil, err
	}

	req.AndKelimeler = prepareKeywords(req.AndKelimeler)
	req.OrKelimeler = prepareKeywords(req.OrKelimeler)
	req.NotAndKelimeler = prepareKeywords(req.NotAndKelimeler)
	req.NotOrKelimeler = prepareKeywords(req.NotOrKelimeler)

	result, err := c.executeSearch(ctx, keywordSearchEndpoint, keywordPayload{Data: req}, req.PageNumber, req.PageSize)
	if err != nil {
		return nil, err
	}

	if c.logger != nil {
		c.logger.Info().
			Int("and_keywords", len(req.AndKelimeler)).
			Int("results", len(result.Decisions)).
			Int("total", result.TotalRecords).
			Msg("Danıştay keyword search completed")
	}
	return result, nil
}

// SearchDetailed runs the detailed criteria search.
func (c *Client) SearchDetailed(ctx context.Context, req models.DanistayDetailedSearchRequest) (*models.DanistaySearchResult, error) {
	req.ApplyDefaults()
	if err := models.Validate(source, &req); err != nil {
		return nil, err
	}

	result, err := c.executeSearch(ctx, detailedSearchEndpoint, detailedPayload{Data: req}, req.PageNumber, req.PageSize)
	if err != nil {
		return nil, err
	}

	if c.logger != nil {
		c.logger.Info().
			Str("daire", req.Daire).
			Int("results", len(result.Decisions)).
			Int("total", result.TotalRecords).
			Msg("Danıştay detailed search completed")
	}
	return result, nil
}

func (c *Client) executeSearch(ctx context.Context, endpoint string, payload interface{}, page, pageSize int) (*models.DanistaySearchResult, error) {
	var response models.DanistaySearchResponse
	if err := c.http.PostJSON(ctx, endpoint, payload, &response); err != nil {
		return nil, models.Classify(source, "search", err)
	}

	decisions := response.Data.Data
	for i := range decisions {
		decisions[i].DocumentURL = c.documentURL(decisions[i].ID)
	}

	return &models.DanistaySearchResult{
		Decisions:     decisions,
		TotalRecords:  response.Data.RecordsTotal,
		RequestedPage: page,
		PageSize:      pageSize,
	}, nil
}

// Document fetches one decision and converts it to Markdown. Unlike
// Yargıtay, this endpoint returns the decision HTML directly.
func (c *Client) Document(ctx context.Context, id string) (*models.DanistayDocument, error) {
	if strings.TrimSpace(id) == "" {
		return nil, models.Errorf(models.KindInvalidInput, source, "document", "document id is required")
	}

	raw, err := c.http.GetHTML(ctx, documentEndpoint, url.Values{"id": {id}})
	if err != nil {
		return nil, models.Classify(source, "document", err)
	}

	content, err := c.md.FromHTML(markdown.CleanEscapedHTML(raw), c.baseURL)
	if err != nil {
		return nil, models.NewError(models.KindConversionFailure, source, "document", err)
	}

	if c.logger != nil {
		c.logger.Info().
			Str("id", id).
			Int("chars", len(content)).
			Msg("Danıştay document converted")
	}

	return &models.DanistayDocument{
		ID:              id,
		MarkdownContent: content,
		SourceURL:       c.documentURL(id),
	}, nil
}

func (c *Client) documentURL(id string) string {
	return c.baseURL + documentEndpoint + "?id=" + url.QueryEscape(id)
}
