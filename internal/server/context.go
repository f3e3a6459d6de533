package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/meetingbaas/meeting-mcp/internal/baas"
	"github.com/meetingbaas/meeting-mcp/internal/instrumentation"
	"github.com/meetingbaas/meeting-mcp/internal/logging"
	"github.com/meetingbaas/meeting-mcp/internal/speaking"
)

// storeDialTimeout bounds each Redis connection attempt
const storeDialTimeout = 2 * time.Second

// ErrNoAPIKey is returned when a tool needs the Meeting BaaS API but no key
// was configured or sent with the request.
var ErrNoAPIKey = errors.New("no Meeting BaaS API key: set MEETING_BAAS_API_KEY or send the " + baas.APIKeyHeader + " header")

// Config configures a ServerContext
type Config struct {
	// APIKey is the default Meeting BaaS API key (MEETING_BAAS_API_KEY)
	APIKey string

	// BaseDomain is the platform domain (BAAS_URL, default meetingbaas.com)
	BaseDomain string

	// Environment selects the API host; "pre-prod-" targets pre-production
	Environment string

	// APIBaseURL and SpeakingBaseURL override the derived endpoints
	APIBaseURL      string
	SpeakingBaseURL string

	// HTTPClient is shared by all API clients. Defaults to baas.NewHTTPClient().
	HTTPClient *http.Client

	// RedisURL enables the Redis/Valkey readiness check when set
	RedisURL string

	// Logger defaults to slog.Default()
	Logger *slog.Logger
}

// ServerContext holds the shared state of the MCP server
type ServerContext struct {
	ctx            context.Context
	cancel         context.CancelFunc
	config         Config
	logger         *slog.Logger
	httpClient     *http.Client
	baasLogger     logging.Logger
	speakingClient *speaking.Client
	metrics        *instrumentation.Metrics
	auditLogger    *instrumentation.AuditLogger
	mu             sync.RWMutex
	shutdown       bool

	// store is dialled lazily again after a failed connection attempt
	storeOpt valkey.ClientOption
	store       valkey.Client
	storeClosed bool
	storeMu     sync.Mutex
}

// NewServerContext creates a new server context. A malformed RedisURL is an
// error; an unreachable Redis is not, it only makes the server not ready.
func NewServerContext(ctx context.Context, config Config) (*ServerContext, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = baas.NewHTTPClient()
	}

	if config.APIBaseURL == "" {
		config.APIBaseURL = baas.APIBaseURL(config.BaseDomain, config.Environment)
	}
	if config.SpeakingBaseURL == "" {
		config.SpeakingBaseURL = speaking.BaseURL(config.BaseDomain)
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:         shutdownCtx,
		cancel:      cancel,
		config:      config,
		logger:      logger,
		httpClient:  httpClient,
		baasLogger:  logging.NewSlogAdapter(logging.WithService(logger, "baas")),
		speakingClient: speaking.NewClient(
			speaking.WithBaseURL(config.SpeakingBaseURL),
			speaking.WithHTTPClient(httpClient),
			speaking.WithLogger(logging.NewSlogAdapter(logging.WithService(logger, "speaking"))),
		),
	}

	if config.RedisURL != "" {
		opt, err := valkey.ParseURL(config.RedisURL)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		opt.DisableCache = true
		opt.ForceSingleClient = true
		if opt.Dialer.Timeout == 0 {
			opt.Dialer.Timeout = storeDialTimeout
		}
		sc.storeOpt = opt

		if _, err := sc.storeClient(); err != nil {
			logger.Warn("redis unavailable, server will report not ready until it connects", logging.Err(err))
		}
	}

	return sc, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Logger returns the server logger
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// APIBaseURL returns the Meeting BaaS API root in use
func (sc *ServerContext) APIBaseURL() string {
	return sc.config.APIBaseURL
}

// APIKey returns the key for a request: the per-request key carried in ctx
// if any, otherwise the configured default.
func (sc *ServerContext) APIKey(ctx context.Context) string {
	if key, ok := APIKeyFromContext(ctx); ok {
		return key
	}
	return sc.config.APIKey
}

// BaasClient returns a Meeting BaaS client for the request's API key
func (sc *ServerContext) BaasClient(ctx context.Context) (*baas.Client, error) {
	key := sc.APIKey(ctx)
	if key == "" {
		return nil, ErrNoAPIKey
	}
	return sc.BaasClientForKey(key)
}

// BaasClientForKey builds a client for key. Clients are not cached: they
// only pair the key with the shared HTTP client, and keys arrive per request.
func (sc *ServerContext) BaasClientForKey(key string) (*baas.Client, error) {
	return baas.NewClient(key,
		baas.WithBaseURL(sc.config.APIBaseURL),
		baas.WithHTTPClient(sc.httpClient),
		baas.WithLogger(sc.baasLogger),
	)
}

// SpeakingClient returns the speaking-bot API client
func (sc *ServerContext) SpeakingClient() *speaking.Client {
	return sc.speakingClient
}

// SetMetrics sets the metrics recorder used by instrumented tool handlers
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// Metrics returns the metrics recorder, or nil if none is configured
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger sets the audit logger used by instrumented tool handlers
func (sc *ServerContext) SetAuditLogger(al *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = al
}

// AuditLogger returns the audit logger, or nil if none is configured
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// StoreConfigured reports whether a Redis URL was configured
func (sc *ServerContext) StoreConfigured() bool {
	return sc.config.RedisURL != ""
}

// storeClient returns the Redis client, dialling first when no connection
// exists yet. It fails once the context has been shut down.
func (sc *ServerContext) storeClient() (valkey.Client, error) {
	sc.storeMu.Lock()
	defer sc.storeMu.Unlock()

	if sc.storeClosed {
		return nil, errors.New("redis connection closed")
	}
	if sc.store == nil {
		store, err := valkey.NewClient(sc.storeOpt)
		if err != nil {
			return nil, fmt.Errorf("redis not connected: %w", err)
		}
		sc.store = store
	}
	return sc.store, nil
}

// PingStore checks Redis connectivity, dialling again if earlier attempts
// failed. It returns nil when no Redis URL is configured.
func (sc *ServerContext) PingStore(ctx context.Context) error {
	if !sc.StoreConfigured() {
		return nil
	}
	store, err := sc.storeClient()
	if err != nil {
		return err
	}
	return store.Do(ctx, store.B().Ping().Build()).Error()
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context and closes the Redis connection
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()

	sc.storeMu.Lock()
	defer sc.storeMu.Unlock()
	sc.storeClosed = true
	if sc.store != nil {
		sc.store.Close()
		sc.store = nil
	}
	return nil
}
