package bot_tools

import (
	"context"
	"fmt"

	"github.com/meetingbaas/meeting-mcp/internal/baas"
	"github.com/meetingbaas/meeting-mcp/internal/server"
	"github.com/meetingbaas/meeting-mcp/internal/tools/common"
)

// getBaasClient returns the API client for the caller's key
func getBaasClient(ctx context.Context, sc *server.ServerContext) (*baas.Client, error) {
	return sc.BaasClient(ctx)
}

// RegisterBotTools registers all bot-related tools
func RegisterBotTools(b *common.Builder, sc *server.ServerContext) error {
	if err := RegisterMeetingTools(b, sc); err != nil {
		return fmt.Errorf("failed to register meeting tools: %w", err)
	}

	if err := RegisterDataTools(b, sc); err != nil {
		return fmt.Errorf("failed to register data tools: %w", err)
	}

	return nil
}
