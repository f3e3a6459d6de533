package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meetingbaas/meeting-mcp/internal/baas"
)

// UnknownErrorMessage is reported when a failure carries no message
const UnknownErrorMessage = "Unknown error occurred"

// FormatJSON renders v as two-space indented JSON without HTML escaping
func FormatJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		if raw, ok := v.(json.RawMessage); ok {
			return string(raw)
		}
		return fmt.Sprintf("%v", v)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// JSONResult returns a successful result holding v as formatted JSON
func JSONResult(v any) *mcp.CallToolResult {
	return mcp.NewToolResultText(FormatJSON(v))
}

// TextResultf returns a successful result with formatted text
func TextResultf(format string, args ...any) *mcp.CallToolResult {
	return mcp.NewToolResultText(fmt.Sprintf(format, args...))
}

// FailureResult returns an error result reading "Failed to <action>: <reason>"
func FailureResult(action string, err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("Failed to %s: %s", action, DescribeError(err)))
}

// DescribeError returns the message reported to the caller for err. API
// rejections report the platform's message, or the response as JSON when
// it carried none.
func DescribeError(err error) string {
	if err == nil {
		return UnknownErrorMessage
	}

	var apiErr *baas.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return apiErr.JSON()
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return UnknownErrorMessage
}
