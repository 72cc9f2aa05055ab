// Package emsal provides a client for the UYAP Emsal precedent decision
// search at emsal.uyap.gov.tr.
package emsal

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
	DefaultBaseURL = "https://emsal.uyap.gov.tr"

	searchEndpoint   = "/aramadetaylist"
	documentEndpoint = "/getDokuman"

	source = "emsal"
)

// Client searches UYAP Emsal decisions and fetches decision documents.
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

// NewClient creates an Emsal client.
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

type searchPayload struct {
	Data models.EmsalSearchData `json:"data"`
}

// Search runs a detailed precedent search and returns one page of results.
func (c *Client) Search(ctx context.Context, req models.EmsalSearchRequest) (*models.EmsalSearchResult, error) {
	req.ApplyDefaults()
	if err := models.Validate(source, &req); err != nil {
		return nil, err
	}

	var response models.EmsalSearchResponse
	if err := c.http.PostJSON(ctx, searchEndpoint, searchPayload{Data: req.ToSearchData()}, &response); err != nil {
		return nil, models.Classify(source, "search", err)
	}

	decisions := response.Data.Data
	for i := range decisions {
		decisions[i].DocumentURL = c.documentURL(decisions[i].ID)
	}

	if c.logger != nil {
		// Keyword content may carry personal data; log its length only.
		c.logger.Info().
			Int("keyword_length", len(req.Keyword)).
			Int("page", req.PageNumber).
			Int("results", len(decisions)).
			Int("total", response.Data.RecordsTotal).
			Msg("Emsal search completed")
	}

	return &models.EmsalSearchResult{
		Decisions:     decisions,
		TotalRecords:  response.Data.RecordsTotal,
		RequestedPage: req.PageNumber,
		PageSize:      req.PageSize,
	}, nil
}

// Document fetches one decision and converts it to Markdown. The
// endpoint wraps the decision HTML in the same escaped JSON envelope as
// Yargıtay.
func (c *Client) Document(ctx context.Context, id string) (*models.EmsalDocument, error) {
	if strings.TrimSpace(id) == "" {
		return nil, models.Errorf(models.KindInvalidInput, source, "document", "document id is required")
	}

	raw, err := c.http.GetHTML(ctx, documentEndpoint, url.Values{"id": {id}})
	if err != nil {
		return nil, models.Classify(source, "document", err)
	}

	htmlContent := markdown.CleanEscapedHTML(markdown.ExtractJSONData(raw))
	content, err := c.md.FromHTML(htmlContent, c.baseURL)
	if err != nil {
		return nil, models.NewError(models.KindConversionFailure, source, "document", err)
	}

	if c.logger != nil {
		c.logger.Info().
			Str("id", id).
			Int("chars", len(content)).
			Msg("Emsal document converted")
	}

	return &models.EmsalDocument{
		ID:              id,
		MarkdownContent: content,
		SourceURL:       c.documentURL(id),
	}, nil
}

func (c *Client) documentURL(id string) string {
	return c.baseURL + documentEndpoint + "?id=" + url.QueryEscape(id)
}
