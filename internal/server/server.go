// Package server publishes the MCP tool set over HTTP: the streamable
// HTTP transport on /mcp, the SSE transport on /sse + /messages, and
// the plain service routes next to them.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/serkanbykl/yargi-mcp/internal/app"
)

// Server manages the HTTP server and routes.
type Server struct {
	app        *app.App
	router     *http.ServeMux
	server     *http.Server
	streamable *mcpserver.StreamableHTTPServer
	sse        *mcpserver.SSEServer
}

// New creates a new HTTP server with the given app.
func New(application *app.App) *Server {
	s := &Server{
		app: application,
	}

	// Stateless mode: every MCP request stands alone, so the server
	// works behind load balancers without session pinning.
	s.streamable = mcpserver.NewStreamableHTTPServer(application.MCPServer,
		mcpserver.WithStateLess(true),
	)
	s.sse = mcpserver.NewSSEServer(application.MCPServer,
		mcpserver.WithSSEEndpoint("/sse"),
		mcpserver.WithMessageEndpoint("/messages"),
	)

	s.router = s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", application.Config.Server.Host, application.Config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.withMiddleware(s.router),
		// SSE streams stay open indefinitely, so only the header read
		// gets a deadline.
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.app.Config.Server.Host, s.app.Config.Server.Port)

	s.app.Logger.Info().
		Str("address", addr).
		Str("mcp", "/mcp").
		Str("sse", "/sse").
		Msg("HTTP server starting")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.app.Logger.Info().Msg("Shutting down HTTP server...")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.app.Logger.Info().Msg("HTTP server stopped")
	return nil
}

// Handler exposes the fully wrapped handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}
