package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/meetingbaas/meeting-mcp/internal/instrumentation"
	"github.com/meetingbaas/meeting-mcp/internal/logging"
	"github.com/meetingbaas/meeting-mcp/internal/resources"
	"github.com/meetingbaas/meeting-mcp/internal/server"
	"github.com/meetingbaas/meeting-mcp/internal/tools/bot_tools"
	"github.com/meetingbaas/meeting-mcp/internal/tools/calendar_tools"
	"github.com/meetingbaas/meeting-mcp/internal/tools/common"
	"github.com/meetingbaas/meeting-mcp/internal/tools/speaking_tools"
	"github.com/meetingbaas/meeting-mcp/internal/tools/utility_tools"
)

const transportStdio = "stdio"

// serveOptions holds the serve command configuration
type serveOptions struct {
	Debug       bool
	Transport   string
	HTTPAddr    string
	APIKey      string
	BaseDomain  string
	Environment string
	RedisURL    string
	Metrics     MetricsConfig
}

// MetricsConfig holds configuration for the metrics server
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server (default: true)
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

func newServeCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server exposing Meeting BaaS tools
to AI assistants.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport on /mcp
  - sse: Server-Sent Events transport on /sse and /message

API key:
  The default key comes from --api-key or MEETING_BAAS_API_KEY. With the HTTP
  transports every request may send its own key in the x-meeting-baas-api-key
  header, which takes precedence for that request.

Health:
  HTTP transports serve /healthz, /readyz and /healthz/detailed. When
  REDIS_URL is set, readiness includes a ping of that Redis/Valkey server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loadServeEnvVars(cmd, &opts)
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&opts.Transport, "transport", transportStdio, "Transport type: stdio, streamable-http or sse")
	cmd.Flags().StringVar(&opts.HTTPAddr, "http-addr", server.DefaultHTTPAddr, "HTTP server address (for streamable-http and sse transports). Can also use MCP_HTTP_ADDR env var.")
	cmd.Flags().StringVar(&opts.APIKey, "api-key", "", "Default Meeting BaaS API key. Can also use MEETING_BAAS_API_KEY env var.")
	cmd.Flags().StringVar(&opts.BaseDomain, "baas-url", "", "Meeting BaaS base domain (default meetingbaas.com). Can also use BAAS_URL env var.")
	cmd.Flags().StringVar(&opts.Environment, "environment", "", "Meeting BaaS environment prefix, e.g. pre-prod-. Can also use BAAS_ENVIRONMENT env var.")
	cmd.Flags().StringVar(&opts.RedisURL, "redis-url", "", "Redis/Valkey URL checked by the readiness endpoint. Can also use REDIS_URL env var.")

	// Metrics server flags
	cmd.Flags().BoolVar(&opts.Metrics.Enabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&opts.Metrics.Addr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

// loadServeEnvVars fills options from environment variables.
// Environment variables only override flag values when the flag was not explicitly set.
func loadServeEnvVars(cmd *cobra.Command, opts *serveOptions) {
	stringFromEnv := func(flag, env string, target *string) {
		if cmd.Flags().Changed(flag) {
			return
		}
		if v := os.Getenv(env); v != "" {
			*target = v
		}
	}

	stringFromEnv("api-key", "MEETING_BAAS_API_KEY", &opts.APIKey)
	stringFromEnv("baas-url", "BAAS_URL", &opts.BaseDomain)
	stringFromEnv("environment", "BAAS_ENVIRONMENT", &opts.Environment)
	stringFromEnv("redis-url", "REDIS_URL", &opts.RedisURL)
	stringFromEnv("http-addr", "MCP_HTTP_ADDR", &opts.HTTPAddr)
	stringFromEnv("metrics-addr", "METRICS_ADDR", &opts.Metrics.Addr)

	if !cmd.Flags().Changed("metrics-enabled") {
		if v := os.Getenv("METRICS_ENABLED"); v != "" {
			if enabled, err := strconv.ParseBool(v); err == nil {
				opts.Metrics.Enabled = enabled
			}
		}
	}
}

// newLogger returns the process logger. Logs always go to w (stderr in
// production) because stdout carries the stdio transport.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func runServe(parent context.Context, opts serveOptions) error {
	if parent == nil {
		parent = context.Background()
	}
	switch opts.Transport {
	case transportStdio, server.TransportStreamableHTTP, server.TransportSSE:
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http, sse)", opts.Transport)
	}

	logger := newLogger(os.Stderr, opts.Debug)
	slog.SetDefault(logger)

	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			logger.Warn("error during instrumentation shutdown", logging.Err(err))
		}
	}()

	serverContext, err := server.NewServerContext(shutdownCtx, server.Config{
		APIKey:      opts.APIKey,
		BaseDomain:  opts.BaseDomain,
		Environment: opts.Environment,
		RedisURL:    opts.RedisURL,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			logger.Warn("error during server context shutdown", logging.Err(err))
		}
	}()

	if provider.Enabled() {
		serverContext.SetMetrics(provider.Metrics())
	}
	if instrConfig.AuditLogging.Enabled {
		serverContext.SetAuditLogger(instrumentation.NewAuditLogger(logger, instrConfig.AuditLogging))
	}

	if opts.APIKey == "" {
		logger.Warn("no default API key configured; tools need MEETING_BAAS_API_KEY or a per-request header")
	}

	registry, err := registerAllTools(serverContext)
	if err != nil {
		return err
	}

	mcpSrv := mcpserver.NewMCPServer("meeting-mcp", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false), // Subscribe and listChanged
		mcpserver.WithRecovery(),
	)
	registry.Install(mcpSrv)
	resources.RegisterCatalogResources(mcpSrv)
	logger.Info("registered tools", "count", len(registry.Names()))

	if opts.Transport == transportStdio {
		return runStdioServer(mcpSrv)
	}

	// Metrics are served on a dedicated port and only alongside HTTP transports
	var metricsServer *server.MetricsServer
	if opts.Metrics.Enabled && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    opts.Metrics.Addr,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
		if err := metricsServer.Listen(); err != nil {
			return err
		}
		go func() {
			if err := metricsServer.Serve(); err != nil {
				logger.Error("metrics server stopped", logging.Err(err))
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
			defer cancel()
			if err := metricsServer.Shutdown(ctx); err != nil {
				logger.Warn("error during metrics server shutdown", logging.Err(err))
			}
		}()
	}

	return runHTTPServer(shutdownCtx, mcpSrv, serverContext, opts, logger)
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

func runHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, sc *server.ServerContext, opts serveOptions, logger *slog.Logger) error {
	health := server.NewHealthChecker(sc)

	httpServer, err := server.NewHTTPServer(mcpSrv, server.HTTPServerConfig{
		Addr:      opts.HTTPAddr,
		Transport: opts.Transport,
		Health:    health,
		Metrics:   sc.Metrics(),
	})
	if err != nil {
		return fmt.Errorf("failed to create HTTP server: %w", err)
	}

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.Start(); err != nil {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping HTTP server")
		health.SetReady(false)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
	}

	logger.Info("HTTP server gracefully stopped")
	return nil
}

// toolGroup is a set of tools registered together
type toolGroup struct {
	name     string
	title    string
	register func(*common.Builder, *server.ServerContext) error
}

var toolGroups = []toolGroup{
	{name: "bot", title: "Bot Tools", register: bot_tools.RegisterBotTools},
	{name: "calendar", title: "Calendar Tools", register: calendar_tools.RegisterCalendarTools},
	{name: "speaking", title: "Speaking Bot Tools", register: speaking_tools.RegisterSpeakingTools},
	{name: "utility", title: "Utility Tools", register: utility_tools.RegisterUtilityTools},
}

// registerAllTools registers every tool group on a fresh registry builder
func registerAllTools(sc *server.ServerContext) (*common.Registry, error) {
	b := common.NewRegistryBuilder(common.WithServerContext(sc))
	for _, g := range toolGroups {
		if err := g.register(b, sc); err != nil {
			return nil, fmt.Errorf("failed to register %s tools: %w", g.name, err)
		}
	}
	return b.Build(), nil
}
