package common

import (
	"context"

	"github.com/meetingbaas/meeting-mcp/internal/server"
)

// SpeakingAPIKeyArg is the argument through which speaking tools receive
// the caller's Meeting BaaS API key.
const SpeakingAPIKeyArg = "meetingBaasApiKey"

// GetAPIKeyFromArgs returns the API key a tool call acts with.
//
// Priority order:
//  1. Explicit "meetingBaasApiKey" argument
//  2. Per-request key from the x-meeting-baas-api-key header
//  3. MEETING_BAAS_API_KEY
//
// The result may be empty when none of these is set.
func GetAPIKeyFromArgs(ctx context.Context, args map[string]any, sc *server.ServerContext) string {
	if key, ok := args[SpeakingAPIKeyArg].(string); ok && key != "" {
		return key
	}
	if sc == nil {
		key, _ := server.APIKeyFromContext(ctx)
		return key
	}
	return sc.APIKey(ctx)
}
