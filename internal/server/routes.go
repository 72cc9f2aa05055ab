package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// MCP transports. The streamable HTTP endpoint handles POST messages
	// and GET listen streams itself; the SSE transport splits into the
	// stream endpoint and the client-to-server message endpoint.
	mux.Handle("/mcp", s.streamable)
	mux.Handle("/sse", s.sse.SSEHandler())
	mux.Handle("/messages", s.sse.MessageHandler())

	// Service routes
	mux.HandleFunc("/health", s.app.Web.HealthHandler)
	mux.HandleFunc("/status", s.app.Web.StatusHandler)

	// Root serves the service description; the catch-all pattern also
	// owns every unmatched path, so anything else is a 404.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		s.app.Web.InfoHandler(w, r)
	})

	return mux
}
