// Package health runs scheduled reachability probes against the
// upstream legal databases and keeps the latest result per source for
// the status route.
package health

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/serkanbykl/yargi-mcp/internal/common"
	"github.com/serkanbykl/yargi-mcp/internal/httpclient"
)

// DefaultSchedule is used when no cron schedule is configured.
const DefaultSchedule = "@every 5m"

// Target is one upstream host to probe.
type Target struct {
	Name string
	URL  string
	// Insecure marks hosts that serve certificates failing strict
	// verification; their probes skip verification like their clients do.
	Insecure bool
}

// Status is the recorded outcome of the latest probe of one upstream.
type Status struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Healthy    bool      `json:"healthy"`
	StatusCode int       `json:"status_code,omitempty"`
	Error      string    `json:"error,omitempty"`
	LatencyMS  int64     `json:"latency_ms"`
	CheckedAt  time.Time `json:"checked_at"`
}

// Monitor probes upstream hosts on a cron schedule.
type Monitor struct {
	logger  arbor.ILogger
	timeout time.Duration
	targets []Target

	http         *httpclient.Client
	insecureHTTP *httpclient.Client
	cron         *cron.Cron

	mu       sync.RWMutex
	statuses map[string]Status
	running  bool
}

// Option configures the Monitor.
type Option func(*Monitor)

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) Option {
	return func(m *Monitor) {
		m.logger = logger
	}
}

// WithTimeout sets the per-probe timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(m *Monitor) {
		m.timeout = timeout
	}
}

// NewMonitor creates a monitor for the given upstream targets.
func NewMonitor(targets []Target, opts ...Option) *Monitor {
	m := &Monitor{
		timeout:  10 * time.Second,
		targets:  targets,
		cron:     cron.New(),
		statuses: make(map[string]Status),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.http = httpclient.New(
		httpclient.WithLogger(m.logger),
		httpclient.WithTimeout(m.timeout),
	)
	m.insecureHTTP = httpclient.New(
		httpclient.WithLogger(m.logger),
		httpclient.WithTimeout(m.timeout),
		httpclient.WithInsecureTLS(),
	)
	return m
}

// Start schedules recurring probes and kicks off an immediate first pass
// so the status route has data before the first tick.
func (m *Monitor) Start(schedule string) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return errors.New("health monitor already running")
	}
	m.mu.Unlock()

	if schedule == "" {
		schedule = DefaultSchedule
	}
	if _, err := m.cron.AddFunc(schedule, func() {
		m.CheckNow(context.Background())
	}); err != nil {
		return err
	}
	m.cron.Start()

	m.mu.Lock()
	m.running = true
	m.mu.Unlock()

	common.SafeGo(m.logger, "health-initial-probe", func() {
		m.CheckNow(context.Background())
	})

	if m.logger != nil {
		m.logger.Info().
			Str("schedule", schedule).
			Int("targets", len(m.targets)).
			Msg("Health monitor started")
	}
	return nil
}

// Stop halts the scheduled probes.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	m.mu.Unlock()

	m.cron.Stop()
	if m.logger != nil {
		m.logger.Info().Msg("Health monitor stopped")
	}
}

// CheckNow probes every target once, concurrently, and records the
// results.
func (m *Monitor) CheckNow(ctx context.Context) {
	var wg sync.WaitGroup
	for _, target := range m.targets {
		wg.Add(1)
		go func(target Target) {
			defer wg.Done()
			status := m.probe(ctx, target)

			m.mu.Lock()
			m.statuses[target.Name] = status
			m.mu.Unlock()

			if m.logger != nil && !status.Healthy {
				m.logger.Warn().
					Str("source", target.Name).
					Str("url", target.URL).
					Str("error", status.Error).
					Msg("Upstream probe failed")
			}
		}(target)
	}
	wg.Wait()
}

// probe fetches one upstream root. A host that answers at all counts as
// reachable even when it rejects the probe request; only transport
// failures and 5xx responses mark it unhealthy.
func (m *Monitor) probe(ctx context.Context, target Target) Status {
	client := m.http
	if target.Insecure {
		client = m.insecureHTTP
	}

	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	start := time.Now()
	_, _, err := client.GetBytes(probeCtx, target.URL, nil)

	status := Status{
		Name:      target.Name,
		URL:       target.URL,
		LatencyMS: time.Since(start).Milliseconds(),
		CheckedAt: time.Now(),
	}
	if err == nil {
		status.Healthy = true
		return status
	}

	status.Error = err.Error()
	var apiErr *httpclient.APIError
	if errors.As(err, &apiErr) {
		status.StatusCode = apiErr.StatusCode
		status.Healthy = apiErr.StatusCode < 500
	}
	return status
}

// Snapshot returns the latest probe results sorted by source name.
func (m *Monitor) Snapshot() []Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	statuses := make([]Status, 0, len(m.statuses))
	for _, status := range m.statuses {
		statuses = append(statuses, status)
	}
	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Name < statuses[j].Name
	})
	return statuses
}
