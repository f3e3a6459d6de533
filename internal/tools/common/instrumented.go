package common

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/meetingbaas/meeting-mcp/internal/instrumentation"
	"github.com/meetingbaas/meeting-mcp/internal/server"
)

// InstrumentedToolHandler wraps handler with a tool span, tool metrics and
// an audit record. service and operation may be empty for tools that do not
// call Meeting BaaS; otherwise the call is also counted as an API operation.
// sc may be nil, in which case only the span is recorded.
func InstrumentedToolHandler(
	toolName, service, operation string,
	sc *server.ServerContext,
	handler mcpserver.ToolHandlerFunc,
) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var (
			metrics *instrumentation.Metrics
			audit   *instrumentation.AuditLogger
		)
		if sc != nil {
			metrics = sc.Metrics()
			audit = sc.AuditLogger()
		}

		args := request.GetArguments()
		apiKey := GetAPIKeyFromArgs(ctx, args, sc)

		invocation := instrumentation.NewToolInvocation(toolName, instrumentation.InvocationOptions{
			Service:   service,
			Operation: operation,
			APIKey:    apiKey,
			Arguments: args,
		})
		ctx, span := instrumentation.StartToolSpan(ctx, invocation)

		if metrics != nil {
			metrics.ToolStarted(ctx, toolName)
		}
		result, err := handler(ctx, request)
		if metrics != nil {
			metrics.ToolFinished(ctx, toolName)
		}

		switch {
		case err != nil:
			invocation.Finish(true, err.Error())
		case result != nil && result.IsError:
			invocation.Finish(true, firstText(result))
		default:
			invocation.Finish(false, "")
		}
		span.End(invocation, err)

		if metrics != nil {
			recordToolMetrics(ctx, metrics, invocation, apiKey)
		}
		audit.LogToolInvocation(invocation)

		return result, err
	}
}

func recordToolMetrics(ctx context.Context, m *instrumentation.Metrics, ti *instrumentation.ToolInvocation, apiKey string) {
	status := ti.Status()
	m.RecordToolInvocationWithKey(ctx, ti.Tool, status, apiKey, ti.Duration)
	if ti.Service != "" {
		m.RecordAPIOperation(ctx, ti.Service, ti.Operation, status, ti.Duration)
	}
}

// firstText returns the text of the first text block of a result
func firstText(result *mcp.CallToolResult) string {
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}
