package baas

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrMissingData is returned when a call succeeds but the response lacks a
// field the caller depends on, such as the bot_id of a join.
var ErrMissingData = errors.New("no bot_id received in the response")

// ErrMissingAPIKey is returned by NewClient when no API key is supplied.
var ErrMissingAPIKey = errors.New("meeting baas API key is required")

// APIError represents a non-2xx response from the Meeting BaaS API
type APIError struct {
	// Op is the client operation that failed (e.g., "joinMeeting")
	Op string

	// StatusCode is the HTTP status code of the response
	StatusCode int

	// Message is the human readable error extracted from the response body.
	// It is empty when the body carried no recognizable message.
	Message string

	// Body is the raw response body
	Body []byte
}

// Error implements the error interface
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if msg == "" {
		msg = "unexpected response"
	}
	return fmt.Sprintf("meeting baas %s: %s (status %d)", e.Op, msg, e.StatusCode)
}

// JSON renders the error as a compact JSON object. It is used when the
// response carried no message worth surfacing on its own.
func (e *APIError) JSON() string {
	payload := struct {
		StatusCode int `json:"status_code"`
		Body       any `json:"body,omitempty"`
	}{StatusCode: e.StatusCode}

	trimmed := strings.TrimSpace(string(e.Body))
	if json.Valid([]byte(trimmed)) {
		payload.Body = json.RawMessage(trimmed)
	} else if trimmed != "" {
		payload.Body = trimmed
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf(`{"status_code":%d}`, e.StatusCode)
	}
	return string(data)
}

func newAPIError(op string, statusCode int, body []byte) *APIError {
	return &APIError{
		Op:         op,
		StatusCode: statusCode,
		Message:    extractMessage(body),
		Body:       body,
	}
}

// extractMessage finds an error message in the common response shapes:
// {"message": "..."}, {"error": "..."}, {"error": {"message": "..."}} and
// {"detail": "..."}. Plain-text bodies are returned as-is.
func extractMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
		if json.Valid([]byte(trimmed)) {
			return ""
		}
		return trimmed
	}

	for _, key := range []string{"message", "error", "detail"} {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &nested); err == nil && nested.Message != "" {
			return nested.Message
		}
	}
	return ""
}
