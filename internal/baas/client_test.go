package baas

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetingbaas/meeting-mcp/internal/logging"
)

// recordedRequest captures what the fake API received
type recordedRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Header http.Header
	Body   map[string]any
}

// newTestServer starts an httptest server answering every request with the
// given status and body, recording the last request it saw.
func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.Method = r.Method
		rec.Path = r.URL.Path
		rec.Query = r.URL.Query()
		rec.Header = r.Header.Clone()
		rec.Body = nil
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			_ = json.Unmarshal(data, &rec.Body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts, rec
}

func newTestClient(t *testing.T, ts *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient("mb_test_secret", WithBaseURL(ts.URL), WithHTTPClient(ts.Client()), WithLogger(logging.Discard()))
	require.NoError(t, err)
	return c
}

func TestAPIBaseURL(t *testing.T) {
	tests := []struct {
		name        string
		domain      string
		environment string
		expected    string
	}{
		{"defaults", "", "", "https://api.meetingbaas.com"},
		{"custom domain", "example.org", "", "https://api.example.org"},
		{"pre-prod", "", PreProdEnvironment, "https://api.pre-prod-meetingbaas.com"},
		{"pre-prod custom domain", "example.org", "pre-prod-", "https://api.pre-prod-example.org"},
		{"unknown environment ignored", "", "staging-", "https://api.meetingbaas.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, APIBaseURL(tt.domain, tt.environment))
		})
	}
}

func TestNewClient(t *testing.T) {
	_, err := NewClient("")
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	c, err := NewClient("key", WithBaseURL("https://example.org/"))
	require.NoError(t, err)
	assert.Equal(t, "https://example.org", c.BaseURL())

	c, err = NewClient("key")
	require.NoError(t, err)
	assert.Equal(t, "https://api.meetingbaas.com", c.BaseURL())
}

func TestClient_SendsAPIKeyHeader(t *testing.T) {
	ts, rec := newTestServer(t, http.StatusOK, `[]`)
	c := newTestClient(t, ts)

	_, err := c.ListCalendars(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "mb_test_secret", rec.Header.Get(APIKeyHeader))
	assert.Equal(t, "application/json", rec.Header.Get("Accept"))
	assert.Empty(t, rec.Header.Get("Content-Type"), "GET without body should not set Content-Type")
}

func TestClient_APIError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{"message field", http.StatusNotFound, `{"message":"not found"}`, "not found"},
		{"error string", http.StatusBadRequest, `{"error":"bad meeting url"}`, "bad meeting url"},
		{"nested error", http.StatusForbidden, `{"error":{"message":"invalid api key"}}`, "invalid api key"},
		{"detail field", http.StatusUnprocessableEntity, `{"detail":"bot_name is required"}`, "bot_name is required"},
		{"plain text", http.StatusBadGateway, `upstream down`, "upstream down"},
		{"empty object", http.StatusInternalServerError, `{}`, ""},
		{"empty body", http.StatusInternalServerError, ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, _ := newTestServer(t, tt.status, tt.body)
			c := newTestClient(t, ts)

			err := c.DeleteCalendar(context.Background(), "c1")
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, "deleteCalendar", apiErr.Op)
		})
	}
}

func TestClient_LogsRejectedRequest(t *testing.T) {
	ts, _ := newTestServer(t, http.StatusNotFound, `{"message":"not found"}`)

	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c, err := NewClient("mb_test_secret", WithBaseURL(ts.URL), WithHTTPClient(ts.Client()), WithLogger(logging.NewSlogAdapter(logger)))
	require.NoError(t, err)

	require.Error(t, c.DeleteCalendar(context.Background(), "c1"))

	out := logs.String()
	assert.Contains(t, out, `"operation":"deleteCalendar"`)
	assert.Contains(t, out, `"status_code":404`)
	assert.Contains(t, out, `"msg":"meeting baas request rejected"`)
	assert.NotContains(t, out, "secret")
}

func TestAPIError_JSON(t *testing.T) {
	err := &APIError{StatusCode: 500, Body: []byte(`{"code":7}`)}
	assert.JSONEq(t, `{"status_code":500,"body":{"code":7}}`, err.JSON())

	err = &APIError{StatusCode: 502, Body: []byte("oops")}
	assert.JSONEq(t, `{"status_code":502,"body":"oops"}`, err.JSON())

	err = &APIError{StatusCode: 500}
	assert.JSONEq(t, `{"status_code":500}`, err.JSON())
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{Op: "getCalendar", StatusCode: 404, Message: "not found"}
	assert.Equal(t, "meeting baas getCalendar: not found (status 404)", err.Error())

	err = &APIError{Op: "getCalendar", StatusCode: 500}
	assert.Equal(t, "meeting baas getCalendar: Internal Server Error (status 500)", err.Error())
}

func TestClient_TransportError(t *testing.T) {
	ts, _ := newTestServer(t, http.StatusOK, `{}`)
	c := newTestClient(t, ts)
	ts.Close()

	_, err := c.ListCalendars(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Contains(t, err.Error(), "listCalendars request failed")
}

func TestClient_ContextCanceled(t *testing.T) {
	ts, _ := newTestServer(t, http.StatusOK, `{}`)
	c := newTestClient(t, ts)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListCalendars(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
