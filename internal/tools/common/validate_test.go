package common

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joinTestTool() mcp.Tool {
	return mcp.NewTool("joinTest",
		mcp.WithString("meeting_url", mcp.Required(), FormatURI()),
		mcp.WithString("recording_mode", mcp.Enum("speaker_view", "gallery_view", "audio_only")),
		mcp.WithBoolean("reserved"),
		mcp.WithNumber("start_time"),
		mcp.WithArray("personas", mcp.Items(map[string]any{"type": "string"})),
		mcp.WithObject("extra"),
	)
}

func TestValidateArguments(t *testing.T) {
	schema, err := CompileInputSchema(joinTestTool())
	require.NoError(t, err)

	tests := []struct {
		name        string
		args        map[string]any
		errContains string
	}{
		{
			name: "minimal",
			args: map[string]any{"meeting_url": "https://meet.google.com/abc-defg-hij"},
		},
		{
			name: "all fields",
			args: map[string]any{
				"meeting_url":    "https://x",
				"recording_mode": "audio_only",
				"reserved":       true,
				"start_time":     1700000000.0,
				"personas":       []any{"baas_onboarder"},
				"extra":          map[string]any{"k": "v"},
			},
		},
		{
			name:        "missing required",
			args:        map[string]any{},
			errContains: "meeting_url is required",
		},
		{
			name:        "nil args",
			args:        nil,
			errContains: "meeting_url is required",
		},
		{
			name:        "not a uri",
			args:        map[string]any{"meeting_url": "not a url"},
			errContains: "meeting_url",
		},
		{
			name:        "bad enum",
			args:        map[string]any{"meeting_url": "https://x", "recording_mode": "video"},
			errContains: "recording_mode",
		},
		{
			name:        "wrong type",
			args:        map[string]any{"meeting_url": "https://x", "reserved": "yes"},
			errContains: "reserved",
		},
		{
			name:        "array item type",
			args:        map[string]any{"meeting_url": "https://x", "personas": []any{1}},
			errContains: "personas",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArguments(schema, tt.args)
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errContains)
		})
	}
}

func TestValidatedToolHandler_RejectsBeforeHandler(t *testing.T) {
	called := false
	handler, err := ValidatedToolHandler(joinTestTool(), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		called = true
		return mcp.NewToolResultText("ok"), nil
	})
	require.NoError(t, err)

	result, err := handler(context.Background(), newCallRequest(map[string]any{}))
	require.NoError(t, err)
	assert.False(t, called)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Invalid arguments for joinTest:")

	result, err = handler(context.Background(), newCallRequest(map[string]any{"meeting_url": "https://x"}))
	require.NoError(t, err)
	assert.True(t, called)
	assert.False(t, result.IsError)
}

func TestCompileInputSchema_Invalid(t *testing.T) {
	tool := mcp.NewToolWithRawSchema("broken", "", []byte(`{"type": 5}`))
	_, err := CompileInputSchema(tool)
	assert.ErrorContains(t, err, "invalid input schema for broken")
}
