// Package yargitay provides a client for the Yargıtay (Court of
// Cassation) decision search at karararama.yargitay.gov.tr.
package yargitay

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
	DefaultBaseURL = "https://karararama.yargitay.gov.tr"

	searchEndpoint   = "/aramadetaylist"
	documentEndpoint = "/getDokuman"

	source = "yargitay"
)

// Client searches Yargıtay decisions and fetches decision documents.
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

// NewClient creates a Yargıtay client. The upstream serves a certificate
// that fails strict verification and rejects requests without its
// expected AJAX headers, so both quirks are baked in here.
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
		httpclient.WithHeader("X-KL-KIS-Ajax-Request", "Ajax_Request"),
		httpclient.WithHeader("Referer", c.baseURL+"/"),
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

// searchPayload is the envelope the search endpoint expects.
type searchPayload struct {
	Data models.YargitaySearchRequest `json:"data"`
}

// Search runs a detailed decision search and returns one page of results.
func (c *Client) Search(ctx context.Context, req models.YargitaySearchRequest) (*models.YargitaySearchResult, error) {
	req.ApplyDefaults()
	if err := models.Validate(source, &req); err != nil {
		return nil, err
	}

	var response models.YargitaySearchResponse
	if err := c.http.PostJSON(ctx, searchEndpoint, searchPayload{Data: req}, &response); err != nil {
		return nil, models.Classify(source, "search", err)
	}

	decisions := response.Data.Data
	for i := range decisions {
		decisions[i].DocumentURL = c.documentURL(decisions[i].ID)
	}

	if c.logger != nil {
		// Keyword content may carry personal data; log its length only.
		c.logger.Info().
			Int("keyword_length", len(req.ArananKelime)).
			Int("page", req.PageNumber).
			Int("results", len(decisions)).
			Int("total", response.Data.RecordsTotal).
			Msg("Yargıtay search completed")
	}

	return &models.YargitaySearchResult{
		Decisions:     decisions,
		TotalRecords:  response.Data.RecordsTotal,
		RequestedPage: req.PageNumber,
		PageSize:      req.PageSize,
	}, nil
}

// Document fetches one decision and converts it to Markdown. The
// endpoint wraps the decision HTML in a JSON envelope with escaped
// quotes and newlines.
func (c *Client) Document(ctx context.Context, id string) (*models.YargitayDocument, error) {
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
			Msg("Yargıtay document converted")
	}

	return &models.YargitayDocument{
		ID:              id,
		MarkdownContent: content,
		SourceURL:       c.documentURL(id),
	}, nil
}

func (c *Client) documentURL(id string) string {
	return c.baseURL + documentEndpoint + "?id=" + url.QueryEscape(id)
}
