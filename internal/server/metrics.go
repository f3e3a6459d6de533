package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/meetingbaas/meeting-mcp/internal/instrumentation"
)

const (
	// DefaultMetricsAddr is the default listen address of the metrics server
	DefaultMetricsAddr = ":9090"

	// DefaultShutdownTimeout bounds the graceful shutdown of each HTTP server
	DefaultShutdownTimeout = 30 * time.Second

	metricsReadHeaderTimeout = 10 * time.Second
	metricsWriteTimeout      = 10 * time.Second
	metricsIdleTimeout       = 60 * time.Second
)

// MetricsServerConfig configures the metrics server
type MetricsServerConfig struct {
	// Addr is the listen address (default ":9090")
	Addr string

	// InstrumentationProvider supplies the Prometheus handler. It must be
	// enabled and use the Prometheus exporter.
	InstrumentationProvider *instrumentation.Provider
}

// MetricsServer serves /metrics on its own port so scrapes never share a
// listener with MCP clients.
type MetricsServer struct {
	handler http.Handler
	addr    string

	mu         sync.Mutex
	listener   net.Listener
	httpServer *http.Server
}

// NewMetricsServer validates config and returns an unstarted server
func NewMetricsServer(config MetricsServerConfig) (*MetricsServer, error) {
	provider := config.InstrumentationProvider
	switch {
	case provider == nil:
		return nil, fmt.Errorf("instrumentation provider is required for metrics server")
	case !provider.Enabled():
		return nil, fmt.Errorf("instrumentation provider is not enabled")
	}

	handler := provider.PrometheusHandler()
	if handler == nil {
		return nil, fmt.Errorf("metrics server requires the prometheus exporter")
	}

	addr := config.Addr
	if addr == "" {
		addr = DefaultMetricsAddr
	}
	return &MetricsServer{handler: handler, addr: addr}, nil
}

// Handler returns the metrics mux: /metrics plus a /healthz of its own
func (s *MetricsServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", s.handler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Listen binds the listen address. Bind errors surface here rather than
// from the serving goroutine.
func (s *MetricsServer) Listen() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("metrics server failed to listen on %s: %w", s.addr, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: metricsReadHeaderTimeout,
		WriteTimeout:      metricsWriteTimeout,
		IdleTimeout:       metricsIdleTimeout,
	}
	return nil
}

// Serve serves on the bound listener until Shutdown. Listen must be called first.
func (s *MetricsServer) Serve() error {
	s.mu.Lock()
	ln, srv := s.listener, s.httpServer
	s.mu.Unlock()
	if ln == nil {
		return errors.New("metrics server is not listening")
	}

	slog.Info("serving metrics", "addr", ln.Addr().String())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Start binds and serves, blocking until Shutdown
func (s *MetricsServer) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Shutdown gracefully stops the server. It is a no-op before Listen.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// Addr returns the bound address once listening, else the configured one
func (s *MetricsServer) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}
