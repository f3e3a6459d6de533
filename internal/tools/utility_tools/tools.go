package utility_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meetingbaas/meeting-mcp/internal/instrumentation"
	"github.com/meetingbaas/meeting-mcp/internal/server"
	"github.com/meetingbaas/meeting-mcp/internal/tools/common"
)

// RegisterUtilityTools registers the echo tool
func RegisterUtilityTools(b *common.Builder, sc *server.ServerContext) error {
	echoTool := mcp.NewTool("echo",
		mcp.WithDescription("Echo back the provided message"),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Message to echo back"),
		),
	)

	return b.Add(echoTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleEcho(ctx, request, sc)
	}, common.WithService(instrumentation.ServiceLocal, instrumentation.OperationEcho))
}

func handleEcho(_ context.Context, request mcp.CallToolRequest, _ *server.ServerContext) (*mcp.CallToolResult, error) {
	message, err := common.StringArg(request.GetArguments(), "message")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Tool echo: %s", message)), nil
}
