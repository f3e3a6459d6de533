package speaking

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoBotID is returned when a join succeeds without a bot ID in the response
var ErrNoBotID = errors.New("No bot ID received in the response")

// UnknownErrorMessage describes a failure that carries no information
const UnknownErrorMessage = "Unknown error occurred"

// HTTPError represents a non-2xx response from the speaking API
type HTTPError struct {
	// StatusCode is the HTTP status code
	StatusCode int

	// Status is the HTTP status line (e.g., "500 Internal Server Error")
	Status string

	// Body is the raw response body
	Body []byte
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	return fmt.Sprintf("Request failed with status code %d", e.StatusCode)
}

// Details renders the response body as compact JSON. Bodies that are not
// JSON are rendered as a JSON string. Empty bodies yield "".
func (e *HTTPError) Details() string {
	trimmed := strings.TrimSpace(string(e.Body))
	if trimmed == "" {
		return ""
	}
	if json.Valid([]byte(trimmed)) {
		var buf bytes.Buffer
		if err := json.Compact(&buf, []byte(trimmed)); err == nil {
			return buf.String()
		}
	}
	quoted, _ := json.Marshal(trimmed)
	return string(quoted)
}

// DescribeError renders err for a tool result. HTTP failures include the
// status code and response details.
func DescribeError(err error) string {
	if err == nil {
		return UnknownErrorMessage
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		msg := httpErr.Error() + fmt.Sprintf(" - Status: %d", httpErr.StatusCode)
		if details := httpErr.Details(); details != "" {
			msg += " - Details: " + details
		}
		return msg
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return UnknownErrorMessage
}
