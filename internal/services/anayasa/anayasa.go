// Package anayasa provides clients for the two Anayasa Mahkemesi
// (Constitutional Court) decision banks: norm-control decisions on
// normkararlarbilgibankasi.anayasa.gov.tr and individual-application
// decisions on kararlarbilgibankasi.anayasa.gov.tr. Both sites are
// server-rendered; searches and documents are parsed out of HTML.
package anayasa

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"

	"github.com/serkanbykl/yargi-mcp/internal/httpclient"
)

const (
	// DefaultNormBaseURL is the norm-control decision bank host.
	DefaultNormBaseURL = "https://normkararlarbilgibankasi.anayasa.gov.tr"

	// DefaultBireyselBaseURL is the individual-application decision bank host.
	DefaultBireyselBaseURL = "https://kararlarbilgibankasi.anayasa.gov.tr"

	searchPathSegment = "Ara"
)

// totalRecordsRe extracts the record count both banks print above the
// result list.
var totalRecordsRe = regexp.MustCompile(`(\d+)\s*Karar Bulundu`)

// settings are shared by the norm and bireysel clients.
type settings struct {
	baseURL   string
	logger    arbor.ILogger
	timeout   time.Duration
	rateLimit float64
	userAgent string
}

// ClientOption configures a norm or bireysel client.
type ClientOption func(*settings)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(s *settings) {
		s.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(s *settings) {
		s.timeout = timeout
	}
}

// WithRateLimit sets the rate limit in requests per second.
func WithRateLimit(requestsPerSecond float64) ClientOption {
	return func(s *settings) {
		s.rateLimit = requestsPerSecond
	}
}

// WithUserAgent sets the User-Agent sent to the upstream. Both banks
// reject requests without a browser-looking one.
func WithUserAgent(userAgent string) ClientOption {
	return func(s *settings) {
		s.userAgent = userAgent
	}
}

// newHTTP builds the HTTP client both banks share: certificate
// verification stays on and redirects are followed.
func (s settings) newHTTP() *httpclient.Client {
	opts := []httpclient.ClientOption{
		httpclient.WithBaseURL(s.baseURL),
		httpclient.WithLogger(s.logger),
		httpclient.WithHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"),
		httpclient.WithHeader("Accept-Language", "tr-TR,tr;q=0.9,en-US;q=0.8,en;q=0.7"),
	}
	if s.timeout > 0 {
		opts = append(opts, httpclient.WithTimeout(s.timeout))
	}
	if s.rateLimit > 0 {
		opts = append(opts, httpclient.WithRateLimit(s.rateLimit))
	}
	if s.userAgent != "" {
		opts = append(opts, httpclient.WithUserAgent(s.userAgent))
	}
	return httpclient.New(opts...)
}

// absoluteURL resolves a harvested href against the bank's base URL.
func (s settings) absoluteURL(href string) string {
	base, err := url.Parse(s.baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// parseTotalRecords reads the "N Karar Bulundu" banner.
func parseTotalRecords(sel *goquery.Selection) (int, bool) {
	m := totalRecordsRe.FindStringSubmatch(strings.TrimSpace(sel.Text()))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// textParts splits a node's text at element boundaries, the way the
// sites separate summary fields inside one div.
func textParts(sel *goquery.Selection) []string {
	var segments []string
	sel.Contents().Each(func(_ int, node *goquery.Selection) {
		if text := node.Text(); text != "" {
			segments = append(segments, text)
		}
	})

	parts := make([]string, 0, len(segments))
	for _, segment := range strings.Split(strings.Join(segments, "|"), "|") {
		if trimmed := normalizeSpace(segment); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

// normalizeSpace collapses runs of whitespace, including non-breaking
// spaces, into single spaces.
func normalizeSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// queryBuilder accumulates query parameters in submission order.
// url.Values cannot serve here because Encode sorts keys, and both
// sites expect repeated array parameters in form order.
type queryBuilder struct {
	b strings.Builder
}

func (q *queryBuilder) add(key, value string) {
	if q.b.Len() > 0 {
		q.b.WriteByte('&')
	}
	q.b.WriteString(url.QueryEscape(key))
	q.b.WriteByte('=')
	q.b.WriteString(url.QueryEscape(value))
}

func (q *queryBuilder) String() string {
	return q.b.String()
}
