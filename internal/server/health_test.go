package server

import (
	"bufio"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) HealthResponse {
	t.Helper()
	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestLivenessHandler(t *testing.T) {
	h := NewHealthChecker(nil)

	rec := httptest.NewRecorder()
	h.LivenessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, healthStatusOK, decodeHealth(t, rec).Status)
}

func TestReadinessHandler(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(t *testing.T) *HealthChecker
		wantStatus int
		wantChecks map[string]string
	}{
		{
			name:       "ready",
			setup:      func(t *testing.T) *HealthChecker { return NewHealthChecker(nil) },
			wantStatus: http.StatusOK,
			wantChecks: map[string]string{"ready": healthStatusOK, "shutdown": healthStatusOK},
		},
		{
			name: "not ready",
			setup: func(t *testing.T) *HealthChecker {
				h := NewHealthChecker(nil)
				h.SetReady(false)
				return h
			},
			wantStatus: http.StatusServiceUnavailable,
			wantChecks: map[string]string{"ready": healthStatusNotReady, "shutdown": healthStatusOK},
		},
		{
			name: "shutting down",
			setup: func(t *testing.T) *HealthChecker {
				sc := newTestContext(t, Config{})
				require.NoError(t, sc.Shutdown())
				return NewHealthChecker(sc)
			},
			wantStatus: http.StatusServiceUnavailable,
			wantChecks: map[string]string{"ready": healthStatusOK, "shutdown": healthStatusShuttingDown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := tt.setup(t)

			rec := httptest.NewRecorder()
			h.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantChecks, decodeHealth(t, rec).Checks)
		})
	}
}

// freeAddr returns a loopback address with nothing listening on it
func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

// serveFakeRedis answers the RESP commands a client sends on connect and
// PING. HELLO is rejected so the client falls back to RESP2.
func serveFakeRedis(t *testing.T, addr string) {
	t.Helper()
	ln, err := net.Listen("tcp", addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go handleFakeRedisConn(conn)
		}
	}()
}

func handleFakeRedisConn(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	for {
		header, err := r.ReadString('\n')
		if err != nil {
			return
		}
		n, _ := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(header, "*")))
		var args []string
		for range n {
			if _, err := r.ReadString('\n'); err != nil { // $len
				return
			}
			arg, err := r.ReadString('\n')
			if err != nil {
				return
			}
			args = append(args, strings.TrimSpace(arg))
		}

		reply := "+OK\r\n"
		if len(args) > 0 {
			switch strings.ToUpper(args[0]) {
			case "HELLO":
				reply = "-ERR unknown command 'HELLO'\r\n"
			case "PING":
				reply = "+PONG\r\n"
			}
		}
		if _, err := io.WriteString(conn, reply); err != nil {
			return
		}
	}
}

func TestReadinessHandler_RedisUnavailable(t *testing.T) {
	addr := freeAddr(t)
	sc := newTestContext(t, Config{RedisURL: "redis://" + addr})
	h := NewHealthChecker(sc)

	rec := httptest.NewRecorder()
	h.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	resp := decodeHealth(t, rec)
	assert.Equal(t, healthStatusNotReady, resp.Status)
	assert.Contains(t, resp.Checks["redis"], "redis not connected")

	// Redis comes up after startup: the next readiness request connects and reports ready
	serveFakeRedis(t, addr)

	rec = httptest.NewRecorder()
	h.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp = decodeHealth(t, rec)
	assert.Equal(t, healthStatusOK, resp.Status)
	assert.Equal(t, healthStatusOK, resp.Checks["redis"])
}

func TestDetailedHealthHandler(t *testing.T) {
	sc := newTestContext(t, Config{APIBaseURL: "https://api.example.test", SpeakingBaseURL: "https://speaking.example.test"})
	h := NewHealthChecker(sc)

	rec := httptest.NewRecorder()
	h.DetailedHealthHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz/detailed", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp DetailedHealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, healthStatusOK, resp.Status)
	assert.Equal(t, "https://api.example.test", resp.APIBaseURL)
	assert.Equal(t, "https://speaking.example.test", resp.SpeakingBaseURL)
	assert.NotEmpty(t, resp.Uptime)
	assert.Equal(t, map[string]string{"ready": healthStatusOK, "shutdown": healthStatusOK}, resp.Checks)
}

func TestDetailedHealthHandler_ShuttingDown(t *testing.T) {
	sc := newTestContext(t, Config{})
	require.NoError(t, sc.Shutdown())
	h := NewHealthChecker(sc)
	h.SetReady(false)

	rec := httptest.NewRecorder()
	h.DetailedHealthHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz/detailed", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var resp DetailedHealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, healthStatusShuttingDown, resp.Status)
	assert.Equal(t, healthStatusNotReady, resp.Checks["ready"])
}

func TestRegisterHealthEndpoints(t *testing.T) {
	mux := http.NewServeMux()
	NewHealthChecker(nil).RegisterHealthEndpoints(mux)

	for _, path := range []string{"/healthz", "/readyz", "/healthz/detailed"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}
