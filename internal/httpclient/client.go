// Package httpclient provides the shared HTTP client used by the source
// adapters: rate limited, context aware, with per-source base URLs,
// headers and TLS settings applied through options.
package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/serkanbykl/yargi-mcp/internal/models"
)

const (
	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 60 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 5

	// maxErrorBody caps how much of an upstream error response is kept
	// in the error message.
	maxErrorBody = 2048
)

// Client is a rate-limited HTTP client bound to one upstream.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
	userAgent  string
	headers    map[string]string
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets the upstream base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets a custom rate limit in requests per second.
func WithRateLimit(requestsPerSecond float64) ClientOption {
	return func(c *Client) {
		burst := int(requestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithHeader adds a header sent on every request. Several upstreams
// refuse requests that lack their expected browser headers.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithInsecureTLS disables certificate verification. The Yargıtay, Emsal
// and Danıştay endpoints serve certificates that fail strict validation.
func WithInsecureTLS() ClientOption {
	return func(c *Client) {
		transport, ok := c.httpClient.Transport.(*http.Transport)
		if !ok {
			transport = http.DefaultTransport.(*http.Transport).Clone()
		}
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{}
		}
		transport.TLSClientConfig.InsecureSkipVerify = true
		c.httpClient.Transport = transport
	}
}

// New creates a client for one upstream.
func New(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		headers: make(map[string]string),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the configured upstream base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close releases idle upstream connections. Safe to call more than once.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// APIError represents a non-success response from an upstream.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream error: status %d on %s: %s", e.StatusCode, e.Endpoint, e.Message)
}

// ErrorKind classifies the status for the adapter error taxonomy.
func (e *APIError) ErrorKind() models.Kind {
	if e.StatusCode == http.StatusNotFound {
		return models.KindNotFound
	}
	return models.KindUpstreamStatus
}

// resolveURL builds the request URL. Absolute URLs pass through
// untouched so adapters can follow links harvested from search results.
func (c *Client) resolveURL(path string, params url.Values) string {
	reqURL := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		reqURL = c.baseURL + path
	}
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(reqURL, "?") {
			sep = "&"
		}
		reqURL = reqURL + sep + params.Encode()
	}
	return reqURL
}

// do executes one request. The caller owns the response body.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body io.Reader, contentType string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.resolveURL(path, params)

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "*/*")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("method", method).
			Str("url", reqURL).
			Msg("Upstream request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(msg),
			Endpoint:   path,
		}
	}

	return resp, nil
}

// GetJSON performs a GET request and decodes the JSON response into result.
func (c *Client) GetJSON(ctx context.Context, path string, params url.Values, result interface{}) error {
	resp, err := c.do(ctx, http.MethodGet, path, params, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// PostJSON performs a POST request with a JSON payload and decodes the
// JSON response into result. Pass a nil result to discard the body.
func (c *Client) PostJSON(ctx context.Context, path string, payload interface{}, result interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, path, nil, bytes.NewReader(raw), "application/json; charset=UTF-8")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if result == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// GetHTML performs a GET request and returns the response body as a string.
func (c *Client) GetHTML(ctx context.Context, path string, params url.Values) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, path, params, nil, "")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return string(body), nil
}

// PostForm performs a form-urlencoded POST request and returns the
// response body as a string.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values) (string, error) {
	return c.PostFormRaw(ctx, path, form.Encode())
}

// PostFormRaw performs a form-urlencoded POST request with a
// pre-encoded body, preserving key order and repeated keys.
func (c *Client) PostFormRaw(ctx context.Context, path string, encoded string) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, path, nil, strings.NewReader(encoded), "application/x-www-form-urlencoded; charset=UTF-8")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return string(body), nil
}

// GetBytes performs a GET request and returns the raw body together
// with the response Content-Type. Used for PDF downloads and for
// landing pages that redirect to binary content.
func (c *Client) GetBytes(ctx context.Context, path string, params url.Values) ([]byte, string, error) {
	resp, err := c.do(ctx, http.MethodGet, path, params, nil, "")
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response: %w", err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}
