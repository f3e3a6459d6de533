package speaking

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "http error with json body",
			err:      &HTTPError{StatusCode: 500, Body: []byte(`{"error": "boom"}`)},
			expected: `Request failed with status code 500 - Status: 500 - Details: {"error":"boom"}`,
		},
		{
			name:     "http error with text body",
			err:      &HTTPError{StatusCode: 502, Body: []byte("bad gateway")},
			expected: `Request failed with status code 502 - Status: 502 - Details: "bad gateway"`,
		},
		{
			name:     "http error without body",
			err:      &HTTPError{StatusCode: 404},
			expected: "Request failed with status code 404 - Status: 404",
		},
		{
			name:     "wrapped http error",
			err:      fmt.Errorf("join: %w", &HTTPError{StatusCode: 400}),
			expected: "Request failed with status code 400 - Status: 400",
		},
		{
			name:     "generic error",
			err:      errors.New("dial tcp: connection refused"),
			expected: "dial tcp: connection refused",
		},
		{
			name:     "nil error",
			err:      nil,
			expected: UnknownErrorMessage,
		},
		{
			name:     "empty message",
			err:      errors.New(""),
			expected: UnknownErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DescribeError(tt.err))
		})
	}
}
