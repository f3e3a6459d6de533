package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/meetingbaas/meeting-mcp/internal/instrumentation"
)

// Transport names accepted by NewHTTPServer
const (
	TransportStreamableHTTP = "streamable-http"
	TransportSSE            = "sse"
)

const (
	// DefaultHTTPAddr is the default listen address of the MCP HTTP transport
	DefaultHTTPAddr = ":8080"

	defaultReadHeaderTimeout = 10 * time.Second
	defaultIdleTimeout       = 120 * time.Second
)

// HTTPServerConfig configures the MCP HTTP transport
type HTTPServerConfig struct {
	// Addr is the listen address (default ":8080")
	Addr string

	// Transport is TransportStreamableHTTP (default) or TransportSSE
	Transport string

	// Health serves /healthz, /readyz and /healthz/detailed when set
	Health *HealthChecker

	// Metrics records per-request HTTP metrics when set
	Metrics *instrumentation.Metrics
}

// HTTPServer exposes an MCP server over HTTP. Each request may carry its
// own API key in the x-meeting-baas-api-key header.
type HTTPServer struct {
	mcpServer  *mcpserver.MCPServer
	config     HTTPServerConfig
	httpServer *http.Server
}

// NewHTTPServer creates an HTTP transport for mcpServer
func NewHTTPServer(mcpServer *mcpserver.MCPServer, config HTTPServerConfig) (*HTTPServer, error) {
	if config.Addr == "" {
		config.Addr = DefaultHTTPAddr
	}
	if config.Transport == "" {
		config.Transport = TransportStreamableHTTP
	}
	if config.Transport != TransportStreamableHTTP && config.Transport != TransportSSE {
		return nil, fmt.Errorf("unsupported server type: %s", config.Transport)
	}

	s := &HTTPServer{
		mcpServer: mcpServer,
		config:    config,
	}
	s.httpServer = &http.Server{
		Addr:              config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		IdleTimeout:       defaultIdleTimeout,
	}
	return s, nil
}

// Handler builds the HTTP handler serving MCP and the health endpoints
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	switch s.config.Transport {
	case TransportSSE:
		sseServer := mcpserver.NewSSEServer(s.mcpServer,
			mcpserver.WithSSEEndpoint("/sse"),
			mcpserver.WithMessageEndpoint("/message"),
			mcpserver.WithSSEContextFunc(APIKeyFromRequest),
		)
		mux.Handle("/sse", sseServer)
		mux.Handle("/message", sseServer)

	default:
		streamable := mcpserver.NewStreamableHTTPServer(s.mcpServer,
			mcpserver.WithEndpointPath("/mcp"),
			mcpserver.WithHTTPContextFunc(APIKeyFromRequest),
		)
		mux.Handle("/mcp", streamable)
	}

	if s.config.Health != nil {
		s.config.Health.RegisterHealthEndpoints(mux)
	}

	if s.config.Metrics == nil {
		return mux
	}
	return metricsMiddleware(s.config.Metrics, mux)
}

// Start serves until Shutdown is called. After Shutdown it returns nil
// without listening.
func (s *HTTPServer) Start() error {
	slog.Info("starting MCP HTTP server", "addr", s.config.Addr, "transport", s.config.Transport)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server. It is safe to call before or
// concurrently with Start.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the configured listen address
func (s *HTTPServer) Addr() string {
	return s.config.Addr
}

// statusRecorder captures the response status for metrics. It forwards
// Flush so streaming responses keep working.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func metricsMiddleware(metrics *instrumentation.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		metrics.RecordHTTPRequest(r.Context(), r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
