// Package app wires configuration, logging, the upstream clients and
// the MCP tool registry into one application container shared by the
// HTTP and stdio entrypoints.
package app

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/serkanbykl/yargi-mcp/internal/browser"
	"github.com/serkanbykl/yargi-mcp/internal/common"
	"github.com/serkanbykl/yargi-mcp/internal/handlers"
	"github.com/serkanbykl/yargi-mcp/internal/services/anayasa"
	"github.com/serkanbykl/yargi-mcp/internal/services/bedesten"
	"github.com/serkanbykl/yargi-mcp/internal/services/danistay"
	"github.com/serkanbykl/yargi-mcp/internal/services/emsal"
	"github.com/serkanbykl/yargi-mcp/internal/services/health"
	"github.com/serkanbykl/yargi-mcp/internal/services/kik"
	"github.com/serkanbykl/yargi-mcp/internal/services/rekabet"
	"github.com/serkanbykl/yargi-mcp/internal/services/uyusmazlik"
	"github.com/serkanbykl/yargi-mcp/internal/services/yargitay"
)

// App holds all application components and dependencies.
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Browser is the shared headless Chrome session behind the
	// procurement-authority client. Chrome starts lazily on first use.
	Browser *browser.Driver

	// Clients are the upstream legal database adapters, one per source.
	Clients handlers.Clients

	// Monitor probes upstream reachability. Nil when disabled.
	Monitor *health.Monitor

	// MCPServer carries the registered tool set; the transports in
	// internal/server and the stdio entrypoint both serve it.
	MCPServer *mcpserver.MCPServer

	// Web serves the plain HTTP routes next to the MCP transports.
	Web *handlers.WebHandler
}

// New initializes the application with all dependencies.
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	app := &App{
		Config: cfg,
		Logger: logger,
	}

	app.initClients()
	if cfg.Health.Enabled {
		app.initMonitor()
	}

	app.MCPServer = handlers.NewMCPServer(app.Clients, logger)
	app.Web = handlers.NewWebHandler(app.Monitor, logger)

	logger.Info().
		Int("tools", len(handlers.ToolDefinitions())).
		Bool("health_monitor", cfg.Health.Enabled).
		Msg("Application initialization complete")

	return app, nil
}

// initClients builds one adapter per upstream database. All plain HTTP
// clients share the sources settings; the KİK client runs on the shared
// browser session instead.
func (a *App) initClients() {
	cfg := a.Config

	a.Browser = browser.NewDriver(browser.Config{
		Headless:   cfg.Browser.Headless,
		Timeout:    cfg.Browser.Timeout,
		ChromePath: cfg.Browser.ChromePath,
		UserAgent:  cfg.Sources.UserAgent,
	}, a.Logger)

	a.Clients = handlers.Clients{
		Yargitay: yargitay.NewClient(
			yargitay.WithLogger(a.Logger),
			yargitay.WithTimeout(cfg.Sources.RequestTimeout),
			yargitay.WithRateLimit(cfg.Sources.RateLimit),
			yargitay.WithUserAgent(cfg.Sources.UserAgent),
		),
		Danistay: danistay.NewClient(
			danistay.WithLogger(a.Logger),
			danistay.WithTimeout(cfg.Sources.RequestTimeout),
			danistay.WithRateLimit(cfg.Sources.RateLimit),
			danistay.WithUserAgent(cfg.Sources.UserAgent),
		),
		Emsal: emsal.NewClient(
			emsal.WithLogger(a.Logger),
			emsal.WithTimeout(cfg.Sources.RequestTimeout),
			emsal.WithRateLimit(cfg.Sources.RateLimit),
			emsal.WithUserAgent(cfg.Sources.UserAgent),
		),
		Uyusmazlik: uyusmazlik.NewClient(
			uyusmazlik.WithLogger(a.Logger),
			uyusmazlik.WithTimeout(cfg.Sources.RequestTimeout),
			uyusmazlik.WithRateLimit(cfg.Sources.RateLimit),
			uyusmazlik.WithUserAgent(cfg.Sources.UserAgent),
		),
		AnayasaNorm: anayasa.NewNormClient(
			anayasa.WithLogger(a.Logger),
			anayasa.WithTimeout(cfg.Sources.RequestTimeout),
			anayasa.WithRateLimit(cfg.Sources.RateLimit),
			anayasa.WithUserAgent(cfg.Sources.UserAgent),
		),
		AnayasaBireysel: anayasa.NewBireyselClient(
			anayasa.WithLogger(a.Logger),
			anayasa.WithTimeout(cfg.Sources.RequestTimeout),
			anayasa.WithRateLimit(cfg.Sources.RateLimit),
			anayasa.WithUserAgent(cfg.Sources.UserAgent),
		),
		Kik: kik.NewClient(a.Browser,
			kik.WithLogger(a.Logger),
		),
		Rekabet: rekabet.NewClient(
			rekabet.WithLogger(a.Logger),
			rekabet.WithTimeout(cfg.Sources.RequestTimeout),
			rekabet.WithRateLimit(cfg.Sources.RateLimit),
			rekabet.WithUserAgent(cfg.Sources.UserAgent),
		),
		Bedesten: bedesten.NewClient(
			bedesten.WithLogger(a.Logger),
			bedesten.WithTimeout(cfg.Sources.RequestTimeout),
			bedesten.WithRateLimit(cfg.Sources.RateLimit),
			bedesten.WithUserAgent(cfg.Sources.UserAgent),
		),
	}

	a.Logger.Debug().
		Float64("rate_limit", cfg.Sources.RateLimit).
		Dur("request_timeout", cfg.Sources.RequestTimeout).
		Msg("Upstream clients initialized")
}

// initMonitor builds the reachability monitor over every upstream host.
// Insecure flags mirror the clients: hosts whose adapters skip
// certificate verification are probed the same way.
func (a *App) initMonitor() {
	a.Monitor = health.NewMonitor([]health.Target{
		{Name: "yargitay", URL: yargitay.DefaultBaseURL, Insecure: true},
		{Name: "danistay", URL: danistay.DefaultBaseURL, Insecure: true},
		{Name: "emsal", URL: emsal.DefaultBaseURL, Insecure: true},
		{Name: "uyusmazlik", URL: uyusmazlik.DefaultBaseURL, Insecure: true},
		{Name: "anayasa-norm", URL: anayasa.DefaultNormBaseURL},
		{Name: "anayasa-bireysel", URL: anayasa.DefaultBireyselBaseURL},
		{Name: "kik", URL: kik.DefaultBaseURL, Insecure: true},
		{Name: "rekabet", URL: rekabet.DefaultBaseURL},
		{Name: "bedesten", URL: bedesten.DefaultBaseURL},
	},
		health.WithLogger(a.Logger),
		health.WithTimeout(a.Config.Health.Timeout),
	)
}

// Start launches the background components. The stdio entrypoint skips
// this; a pipe-bound server has no business probing court websites.
func (a *App) Start() error {
	if a.Monitor != nil {
		if err := a.Monitor.Start(a.Config.Health.Schedule); err != nil {
			return fmt.Errorf("failed to start health monitor: %w", err)
		}
	}
	return nil
}

// Close shuts the background components down in reverse start order,
// then drops the upstream connections. Best-effort: every step runs
// even if an earlier one fails.
func (a *App) Close() error {
	if a.Monitor != nil {
		a.Monitor.Stop()
	}

	if a.Browser != nil {
		if err := a.Browser.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close browser session")
		}
	}

	for _, closer := range []interface{ Close() }{
		a.Clients.Yargitay,
		a.Clients.Danistay,
		a.Clients.Emsal,
		a.Clients.Uyusmazlik,
		a.Clients.AnayasaNorm,
		a.Clients.AnayasaBireysel,
		a.Clients.Rekabet,
		a.Clients.Bedesten,
	} {
		closer.Close()
	}

	a.Logger.Info().Msg("Application shutdown complete")
	return nil
}
