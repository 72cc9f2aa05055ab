// Package bedesten provides a client for the unified decision archive
// at bedesten.adalet.gov.tr, the backend of the mevzuat.adalet.gov.tr
// portal. One JSON API serves Yargıtay, Danıştay, local civil,
// appellate civil and extraordinary-appeal decisions, selected through
// the itemTypeList field.
package bedesten

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/serkanbykl/yargi-mcp/internal/httpclient"
	"github.com/serkanbykl/yargi-mcp/internal/markdown"
	"github.com/serkanbykl/yargi-mcp/internal/models"
	"github.com/serkanbykl/yargi-mcp/internal/pdfextract"
)

const (
	// DefaultBaseURL is the public Bedesten API host.
	DefaultBaseURL = "https://bedesten.adalet.gov.tr"

	searchEndpoint   = "/emsal-karar/searchDocuments"
	documentEndpoint = "/emsal-karar/getDocumentContent"

	// portalOrigin is the browser origin the API expects; requests
	// without it are rejected.
	portalOrigin = "https://mevzuat.adalet.gov.tr"

	source = "bedesten"
)

// Client talks to the Bedesten search and document endpoints.
type Client struct {
	baseURL   string
	logger    arbor.ILogger
	timeout   time.Duration
	rateLimit float64
	userAgent string

	http *httpclient.Client
	md   *markdown.Converter
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

// NewClient creates a Bedesten client.
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
		httpclient.WithHeader("Accept-Language", "tr-TR,tr;q=0.9,en-US;q=0.8,en;q=0.7"),
		httpclient.WithHeader("AdaletApplicationName", "UyapMevzuat"),
		httpclient.WithHeader("Origin", portalOrigin),
		httpclient.WithHeader("Referer", portalOrigin+"/"),
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
	c.pdf = pdfextract.NewExtractor(c.logger)
	return c
}

// Close releases idle upstream connections. Safe to call more than once.
func (c *Client) Close() {
	c.http.Close()
}

// Search runs one Bedesten search for the archives named in
// data.ItemTypeList.
func (c *Client) Search(ctx context.Context, data models.BedestenSearchData) (*models.BedestenSearchResult, error) {
	data.ApplyDefaults()
	if err := models.Validate(source, &data); err != nil {
		return nil, err
	}

	var resp models.BedestenSearchResponse
	if err := c.http.PostJSON(ctx, searchEndpoint, models.NewBedestenSearchRequest(data), &resp); err != nil {
		return nil, models.Classify(source, "search", err)
	}

	decisions := resp.Data.EmsalKararList
	if decisions == nil {
		decisions = []models.BedestenDecisionEntry{}
	}
	result := &models.BedestenSearchResult{
		Decisions:     decisions,
		TotalRecords:  resp.Data.Total,
		RequestedPage: data.PageNumber,
		PageSize:      data.PageSize,
	}

	if c.logger != nil {
		// Phrase content may carry personal data; log its length only.
		c.logger.Info().
			Str("item_types", strings.Join(data.ItemTypeList, ",")).
			Int("phrase_length", len(data.Phrase)).
			Int("page", data.PageNumber).
			Int("results", len(result.Decisions)).
			Int("total", result.TotalRecords).
			Msg("Bedesten search completed")
	}
	return result, nil
}

// Document fetches one decision and converts it to Markdown. The API
// returns the content Base64-encoded with a MIME type that decides the
// conversion pipeline; unsupported MIME types come back as an
// explanatory Markdown body rather than an error.
func (c *Client) Document(ctx context.Context, documentID string) (*models.BedestenDocument, error) {
	if strings.TrimSpace(documentID) == "" {
		return nil, models.Errorf(models.KindInvalidInput, source, "document", "documentId is required")
	}

	var resp models.BedestenDocumentResponse
	if err := c.http.PostJSON(ctx, documentEndpoint, models.NewBedestenDocumentRequest(documentID), &resp); err != nil {
		return nil, models.Classify(source, "document", err)
	}

	contentBytes, err := base64.StdEncoding.DecodeString(resp.Data.Content)
	if err != nil {
		return nil, models.Errorf(models.KindUpstreamParse, source, "document", "decoding document content: %v", err)
	}

	mimeType := resp.Data.MimeType
	var content string
	switch mimeType {
	case "text/html":
		content, err = c.md.FromHTML(string(contentBytes), c.baseURL)
		if err != nil {
			return nil, models.NewError(models.KindConversionFailure, source, "document", err)
		}
	case "application/pdf":
		content, err = c.pdf.ExtractAllText(contentBytes)
		if err != nil {
			return nil, models.NewError(models.KindConversionFailure, source, "document", err)
		}
	default:
		content = fmt.Sprintf("Unsupported content type: %s. Unable to convert to markdown.", mimeType)
	}

	if c.logger != nil {
		c.logger.Info().
			Str("document_id", documentID).
			Str("mime_type", mimeType).
			Int("chars", len(content)).
			Msg("Bedesten document converted")
	}
	return &models.BedestenDocument{
		DocumentID:      documentID,
		MarkdownContent: content,
		SourceURL:       c.baseURL + "/document/" + documentID,
		MimeType:        mimeType,
	}, nil
}
