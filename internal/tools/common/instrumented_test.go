package common

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/meetingbaas/meeting-mcp/internal/instrumentation"
	"github.com/meetingbaas/meeting-mcp/internal/server"
)

func newTestServerContext(t *testing.T, config server.Config) *server.ServerContext {
	t.Helper()
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	sc, err := server.NewServerContext(context.Background(), config)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func newCallRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func TestInstrumentedToolHandler_Success(t *testing.T) {
	sc := newTestServerContext(t, server.Config{})

	called := false
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		called = true
		return mcp.NewToolResultText("success"), nil
	}

	result, err := InstrumentedToolHandler("test_tool", "", "", sc, handler)(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.True(t, called)
	require.NotNil(t, result)
	assert.False(t, result.IsError)
}

func TestInstrumentedToolHandler_Error(t *testing.T) {
	sc := newTestServerContext(t, server.Config{})

	expectedErr := errors.New("test error")
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, expectedErr
	}

	_, err := InstrumentedToolHandler("test_tool", "", "", sc, handler)(context.Background(), mcp.CallToolRequest{})
	assert.Equal(t, expectedErr, err)
}

func TestInstrumentedToolHandler_NilServerContext(t *testing.T) {
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("ok"), nil
	}

	result, err := InstrumentedToolHandler("test_tool", "", "", nil, handler)(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.False(t, result.IsError)
}

func TestInstrumentedToolHandler_WithServiceAndMetrics(t *testing.T) {
	sc := newTestServerContext(t, server.Config{APIKey: "mb_live_secret"})

	metrics, err := instrumentation.NewMetrics(noop.NewMeterProvider().Meter("test"), true)
	require.NoError(t, err)
	sc.SetMetrics(metrics)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultError("Failed to leave meeting: gone"), nil
	}

	wrapped := InstrumentedToolHandler("leaveMeeting", instrumentation.ServiceBots, instrumentation.OperationLeave, sc, handler)
	result, err := wrapped(context.Background(), newCallRequest(map[string]any{"bot_id": "b1"}))

	// With a noop meter only the code path is exercised
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestInstrumentedToolHandler_AuditLog(t *testing.T) {
	var buf bytes.Buffer
	sc := newTestServerContext(t, server.Config{})
	sc.SetAuditLogger(instrumentation.NewAuditLogger(
		slog.New(slog.NewJSONHandler(&buf, nil)),
		instrumentation.AuditLoggingConfig{Enabled: true, IncludeArguments: true},
	))

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("ok"), nil
	}

	wrapped := InstrumentedToolHandler("joinSpeakingMeeting", instrumentation.ServiceSpeaking, instrumentation.OperationJoin, sc, handler)
	_, err := wrapped(context.Background(), newCallRequest(map[string]any{
		"meetingUrl":      "https://meet.example.com/abc",
		SpeakingAPIKeyArg: "abc_123_secretvalue",
	}))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "joinSpeakingMeeting")
	assert.Contains(t, out, "abc_123_")
	assert.NotContains(t, out, "secretvalue")
}

func TestInstrumentedToolHandler_AuditsErrorResult(t *testing.T) {
	var buf bytes.Buffer
	sc := newTestServerContext(t, server.Config{})
	sc.SetAuditLogger(instrumentation.NewAuditLogger(
		slog.New(slog.NewJSONHandler(&buf, nil)),
		instrumentation.AuditLoggingConfig{Enabled: true},
	))

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultError("Failed to get calendar: gone"), nil
	}

	_, err := InstrumentedToolHandler("getCalendar", instrumentation.ServiceCalendars, instrumentation.OperationGet, sc, handler)(
		context.Background(), newCallRequest(map[string]any{"calendar_id": "c1"}))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"tool_failed"`)
	assert.Contains(t, out, `"error":"Failed to get calendar: gone"`)
}

func testConfig() server.Config {
	return server.Config{APIKey: "test_key"}
}
