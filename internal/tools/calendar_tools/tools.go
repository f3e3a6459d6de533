package calendar_tools

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

// platforms lists the accepted calendar providers
func platforms() []string {
	return []string{string(baas.PlatformGoogle), string(baas.PlatformMicrosoft)}
}

// RegisterCalendarTools registers all calendar-related tools
func RegisterCalendarTools(b *common.Builder, sc *server.ServerContext) error {
	// Register calendar list tools
	if err := RegisterCalendarListTools(b, sc); err != nil {
		return fmt.Errorf("failed to register calendar list tools: %w", err)
	}

	// Register event tools
	if err := RegisterEventTools(b, sc); err != nil {
		return fmt.Errorf("failed to register event tools: %w", err)
	}

	// Register scheduling tools
	if err := RegisterSchedulingTools(b, sc); err != nil {
		return fmt.Errorf("failed to register scheduling tools: %w", err)
	}

	return nil
}
