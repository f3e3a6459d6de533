package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// storePingTimeout bounds the Redis check of a readiness request
const storePingTimeout = 2 * time.Second

const (
	healthStatusOK           = "ok"
	healthStatusNotReady     = "not ready"
	healthStatusShuttingDown = "shutting down"
)

// HealthChecker serves the Kubernetes liveness and readiness checks of the
// HTTP transports.
type HealthChecker struct {
	ready         atomic.Bool
	serverContext *ServerContext
	startTime     time.Time
}

// NewHealthChecker creates a HealthChecker that starts ready. sc may be nil,
// in which case only the ready flag is checked.
func NewHealthChecker(sc *ServerContext) *HealthChecker {
	h := &HealthChecker{
		serverContext: sc,
		startTime:     time.Now(),
	}
	h.ready.Store(true)
	return h
}

// SetReady marks the server ready or not ready. serve clears it when
// shutdown starts so load balancers stop routing new sessions.
func (h *HealthChecker) SetReady(ready bool) {
	h.ready.Store(ready)
}

// IsReady returns whether the server is ready to receive traffic.
func (h *HealthChecker) IsReady() bool {
	return h.ready.Load()
}

// HealthResponse is the body of /healthz and /readyz
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// DetailedHealthResponse is the body of /healthz/detailed
type DetailedHealthResponse struct {
	Status          string            `json:"status"`
	Uptime          string            `json:"uptime"`
	APIBaseURL      string            `json:"api_base_url,omitempty"`
	SpeakingBaseURL string            `json:"speaking_base_url,omitempty"`
	Checks          map[string]string `json:"checks,omitempty"`
}

// runChecks evaluates every readiness check. The overall status is ok only
// when all checks pass; a shutdown takes precedence over other failures.
func (h *HealthChecker) runChecks(ctx context.Context) (string, map[string]string) {
	checks := map[string]string{
		"ready":    healthStatusOK,
		"shutdown": healthStatusOK,
	}
	status := healthStatusOK

	if !h.IsReady() {
		checks["ready"] = healthStatusNotReady
		status = healthStatusNotReady
	}

	sc := h.serverContext
	if sc == nil {
		return status, checks
	}

	if sc.IsShutdown() {
		checks["shutdown"] = healthStatusShuttingDown
		return healthStatusShuttingDown, checks
	}

	if sc.StoreConfigured() {
		pingCtx, cancel := context.WithTimeout(ctx, storePingTimeout)
		defer cancel()
		if err := sc.PingStore(pingCtx); err != nil {
			checks["redis"] = err.Error()
			status = healthStatusNotReady
		} else {
			checks["redis"] = healthStatusOK
		}
	}

	return status, checks
}

func writeHealth(w http.ResponseWriter, status string, body any) {
	w.Header().Set("Content-Type", "application/json")
	if status == healthStatusOK {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(body)
}

// LivenessHandler serves /healthz. It reports ok while the process runs.
func (h *HealthChecker) LivenessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeHealth(w, healthStatusOK, HealthResponse{Status: healthStatusOK})
	})
}

// ReadinessHandler serves /readyz
func (h *HealthChecker) ReadinessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status, checks := h.runChecks(r.Context())

		// readyz reports shutdown as plain not ready
		bodyStatus := status
		if bodyStatus == healthStatusShuttingDown {
			bodyStatus = healthStatusNotReady
		}
		writeHealth(w, status, HealthResponse{Status: bodyStatus, Checks: checks})
	})
}

// DetailedHealthHandler serves /healthz/detailed with uptime and the
// configured Meeting BaaS endpoints
func (h *HealthChecker) DetailedHealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status, checks := h.runChecks(r.Context())

		response := DetailedHealthResponse{
			Status: status,
			Uptime: time.Since(h.startTime).Truncate(time.Second).String(),
			Checks: checks,
		}
		if sc := h.serverContext; sc != nil {
			response.APIBaseURL = sc.APIBaseURL()
			response.SpeakingBaseURL = sc.config.SpeakingBaseURL
		}
		writeHealth(w, status, response)
	})
}

// RegisterHealthEndpoints registers /healthz, /readyz and /healthz/detailed on mux
func (h *HealthChecker) RegisterHealthEndpoints(mux *http.ServeMux) {
	mux.Handle("/healthz", h.LivenessHandler())
	mux.Handle("/readyz", h.ReadinessHandler())
	mux.Handle("/healthz/detailed", h.DetailedHealthHandler())
}
