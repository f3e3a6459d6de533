package calendar_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meetingbaas/meeting-mcp/internal/baas"
	"github.com/meetingbaas/meeting-mcp/internal/instrumentation"
	"github.com/meetingbaas/meeting-mcp/internal/logging"
	"github.com/meetingbaas/meeting-mcp/internal/server"
	"github.com/meetingbaas/meeting-mcp/internal/tools/common"
)

// RegisterEventTools registers event-related tools
func RegisterEventTools(b *common.Builder, sc *server.ServerContext) error {
	listEventsTool := mcp.NewTool("listEvents",
		mcp.WithDescription("List all scheduled events. Use this when you want to: 1) View upcoming recordings 2) Check scheduled transcriptions 3) Monitor planned bot activity"),
		mcp.WithString("calendar_id",
			mcp.Required(),
			mcp.Description("The UUID of the calendar integration whose events are listed"),
		),
		mcp.WithString("attendee_email",
			mcp.Description("Only events this email address attends"),
		),
		mcp.WithString("cursor",
			mcp.Description("Pagination cursor returned by a previous call"),
		),
		mcp.WithString("organizer_email",
			mcp.Description("Only events organized by this email address"),
		),
		mcp.WithString("start_date_gte",
			mcp.Description("Only events starting at or after this date (ISO 8601)"),
		),
		mcp.WithString("start_date_lte",
			mcp.Description("Only events starting at or before this date (ISO 8601)"),
		),
		mcp.WithString("status",
			mcp.Description("Event status filter: upcoming, past or all"),
		),
		mcp.WithString("updated_at_gte",
			mcp.Description("Only events updated at or after this date (ISO 8601)"),
		),
	)

	return b.Add(listEventsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListEvents(ctx, request, sc)
	}, common.WithService(instrumentation.ServiceCalendars, instrumentation.OperationList))
}

func handleListEvents(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	calendarID, err := common.StringArg(args, "calendar_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getBaasClient(ctx, sc)
	if err != nil {
		return common.FailureResult("list events", err), nil
	}

	data, err := client.ListCalendarEvents(ctx, baas.ListEventsParams{
		CalendarID:     calendarID,
		AttendeeEmail:  common.OptionalString(args, "attendee_email"),
		Cursor:         common.OptionalString(args, "cursor"),
		OrganizerEmail: common.OptionalString(args, "organizer_email"),
		StartDateGte:   common.OptionalString(args, "start_date_gte"),
		StartDateLte:   common.OptionalString(args, "start_date_lte"),
		Status:         common.OptionalString(args, "status"),
		UpdatedAtGte:   common.OptionalString(args, "updated_at_gte"),
	})
	if err != nil {
		logging.WithTool(sc.Logger(), "listEvents").Warn("failed to list events", logging.CalendarID(calendarID), logging.Err(err))
		return common.FailureResult("list events", err), nil
	}

	return common.JSONResult(data), nil
}
