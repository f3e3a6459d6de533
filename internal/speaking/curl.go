package speaking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/meetingbaas/meeting-mcp/internal/baas"
	"github.com/meetingbaas/meeting-mcp/internal/logging"
)

// CurlCommand renders a request as a curl command line. The API key is
// masked with logging.MaskAPIKey so the output is safe to show.
func CurlCommand(method, url, apiKey string, body any) string {
	headers := [][2]string{
		{"Content-Type", "application/json"},
		{baas.APIKeyHeader, logging.MaskAPIKey(apiKey)},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "curl -X %s %s \\\n", method, url)
	for _, h := range headers {
		fmt.Fprintf(&b, "  -H \"%s: %s\" \\\n", h[0], h[1])
	}
	fmt.Fprintf(&b, "  -d '%s'", indentJSON(body))
	return b.String()
}

func indentJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "{}"
	}
	return strings.TrimRight(buf.String(), "\n")
}
