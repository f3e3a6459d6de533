package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/meetingbaas/meeting-mcp/internal/baas"
)

type apiKeyContextKey struct{}

// ContextWithAPIKey returns a context carrying a per-request API key
func ContextWithAPIKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, apiKeyContextKey{}, key)
}

// APIKeyFromContext returns the per-request API key, if one was set
func APIKeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(apiKeyContextKey{}).(string)
	return key, ok && key != ""
}

// APIKeyFromRequest copies the x-meeting-baas-api-key header of an HTTP
// request into the context. It is installed as the MCP HTTP context function.
func APIKeyFromRequest(ctx context.Context, r *http.Request) context.Context {
	key := strings.TrimSpace(r.Header.Get(baas.APIKeyHeader))
	if key == "" {
		return ctx
	}
	return ContextWithAPIKey(ctx, key)
}
