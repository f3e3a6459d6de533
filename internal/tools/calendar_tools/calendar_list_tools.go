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

// RegisterCalendarListTools registers the tools managing calendar integrations
func RegisterCalendarListTools(b *common.Builder, sc *server.ServerContext) error {
	createCalendarTool := mcp.NewTool("createCalendar",
		mcp.WithDescription("Create a new calendar integration. Use this when you want to: 1) Set up automatic meeting recordings 2) Configure calendar-based bot scheduling 3) Enable recurring meeting coverage"),
		mcp.WithString("oauth_client_id",
			mcp.Required(),
			mcp.Description("OAuth client ID of your Google or Microsoft application"),
		),
		mcp.WithString("oauth_client_secret",
			mcp.Required(),
			mcp.Description("OAuth client secret of your Google or Microsoft application"),
		),
		mcp.WithString("oauth_refresh_token",
			mcp.Required(),
			mcp.Description("OAuth refresh token of the user whose calendar is connected"),
		),
		mcp.WithString("platform",
			mcp.Required(),
			mcp.Enum(platforms()...),
			mcp.Description("Calendar provider: Google or Microsoft"),
		),
		mcp.WithString("raw_calendar_id",
			mcp.Description("ID of the calendar at the provider. Defaults to the user's primary calendar."),
		),
	)

	err := b.Add(createCalendarTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleCreateCalendar(ctx, request, sc)
	}, common.WithService(instrumentation.ServiceCalendars, instrumentation.OperationCreate))
	if err != nil {
		return err
	}

	listCalendarsTool := mcp.NewTool("listCalendars",
		mcp.WithDescription("List all calendar integrations. Use this when you want to: 1) View configured calendars 2) Check calendar status 3) Manage calendar integrations"),
	)

	err = b.Add(listCalendarsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListCalendars(ctx, request, sc)
	}, common.WithService(instrumentation.ServiceCalendars, instrumentation.OperationList))
	if err != nil {
		return err
	}

	getCalendarTool := mcp.NewTool("getCalendar",
		mcp.WithDescription("Get details about a specific calendar integration. Use this when you want to: 1) View calendar configuration 2) Check calendar status 3) Verify calendar settings"),
		mcp.WithString("calendar_id",
			mcp.Required(),
			mcp.Description("The UUID of the calendar integration"),
		),
	)

	err = b.Add(getCalendarTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGetCalendar(ctx, request, sc)
	}, common.WithService(instrumentation.ServiceCalendars, instrumentation.OperationGet))
	if err != nil {
		return err
	}

	deleteCalendarTool := mcp.NewTool("deleteCalendar",
		mcp.WithDescription("Delete a calendar integration. Use this when you want to: 1) Remove a calendar connection 2) Stop automatic recordings 3) Clean up calendar data"),
		mcp.WithString("calendar_id",
			mcp.Required(),
			mcp.Description("The UUID of the calendar integration to delete"),
		),
	)

	err = b.Add(deleteCalendarTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleDeleteCalendar(ctx, request, sc)
	}, common.WithService(instrumentation.ServiceCalendars, instrumentation.OperationDelete))
	if err != nil {
		return err
	}

	updateCalendarTool := mcp.NewTool("updateCalendar",
		mcp.WithDescription("Update a calendar integration configuration. Use this when you want to: 1) Modify calendar settings 2) Update connection details 3) Change calendar configuration"),
		mcp.WithString("calendar_id",
			mcp.Required(),
			mcp.Description("The UUID of the calendar integration to update"),
		),
		mcp.WithString("oauth_client_id",
			mcp.Description("New OAuth client ID"),
		),
		mcp.WithString("oauth_client_secret",
			mcp.Description("New OAuth client secret"),
		),
		mcp.WithString("oauth_refresh_token",
			mcp.Description("New OAuth refresh token"),
		),
		mcp.WithString("platform",
			mcp.Enum(platforms()...),
			mcp.Description("Calendar provider: Google or Microsoft"),
		),
	)

	err = b.Add(updateCalendarTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleUpdateCalendar(ctx, request, sc)
	}, common.WithService(instrumentation.ServiceCalendars, instrumentation.OperationUpdate))
	if err != nil {
		return err
	}

	resyncAllCalendarsTool := mcp.NewTool("resyncAllCalendars",
		mcp.WithDescription("Resync every calendar integration with its provider. Use this when you want to: 1) Pick up newly created meetings 2) Refresh changed events 3) Repair a calendar that is out of date"),
	)

	return b.Add(resyncAllCalendarsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleResyncAllCalendars(ctx, request, sc)
	}, common.WithService(instrumentation.ServiceCalendars, instrumentation.OperationResync))
}

func handleCreateCalendar(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	logger := logging.WithTool(sc.Logger(), "createCalendar")

	req := baas.CreateCalendarRequest{
		Platform:      baas.Platform(common.OptionalString(args, "platform")),
		RawCalendarID: common.OptionalString(args, "raw_calendar_id"),
	}
	var err error
	if req.OAuthClientID, err = common.StringArg(args, "oauth_client_id"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if req.OAuthClientSecret, err = common.StringArg(args, "oauth_client_secret"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if req.OAuthRefreshToken, err = common.StringArg(args, "oauth_refresh_token"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getBaasClient(ctx, sc)
	if err != nil {
		return common.FailureResult("create calendar", err), nil
	}

	logger.Debug("attempting to create calendar", "platform", string(req.Platform))
	data, err := client.CreateCalendar(ctx, req)
	if err != nil {
		logger.Warn("failed to create calendar", logging.Err(err))
		return common.FailureResult("create calendar", err), nil
	}

	return common.TextResultf("Successfully created calendar: %s", common.FormatJSON(data)), nil
}

func handleListCalendars(ctx context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, err := getBaasClient(ctx, sc)
	if err != nil {
		return common.FailureResult("list calendars", err), nil
	}

	data, err := client.ListCalendars(ctx)
	if err != nil {
		logging.WithTool(sc.Logger(), "listCalendars").Warn("failed to list calendars", logging.Err(err))
		return common.FailureResult("list calendars", err), nil
	}

	return common.JSONResult(data), nil
}

func handleGetCalendar(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	calendarID, err := common.StringArg(request.GetArguments(), "calendar_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getBaasClient(ctx, sc)
	if err != nil {
		return common.FailureResult("get calendar", err), nil
	}

	data, err := client.GetCalendar(ctx, calendarID)
	if err != nil {
		logging.WithTool(sc.Logger(), "getCalendar").Warn("failed to get calendar", logging.CalendarID(calendarID), logging.Err(err))
		return common.FailureResult("get calendar", err), nil
	}

	return common.JSONResult(data), nil
}

func handleDeleteCalendar(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	logger := logging.WithTool(sc.Logger(), "deleteCalendar")

	calendarID, err := common.StringArg(request.GetArguments(), "calendar_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getBaasClient(ctx, sc)
	if err != nil {
		return common.FailureResult("delete calendar", err), nil
	}

	logger.Debug("attempting to delete calendar", logging.CalendarID(calendarID))
	if err := client.DeleteCalendar(ctx, calendarID); err != nil {
		logger.Warn("failed to delete calendar", logging.CalendarID(calendarID), logging.Err(err))
		return common.FailureResult("delete calendar", err), nil
	}

	return mcp.NewToolResultText("Successfully deleted calendar"), nil
}

func handleUpdateCalendar(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	logger := logging.WithTool(sc.Logger(), "updateCalendar")

	calendarID, err := common.StringArg(args, "calendar_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getBaasClient(ctx, sc)
	if err != nil {
		return common.FailureResult("update calendar", err), nil
	}

	logger.Debug("attempting to update calendar", logging.CalendarID(calendarID))
	data, err := client.UpdateCalendar(ctx, calendarID, baas.UpdateCalendarRequest{
		OAuthClientID:     common.OptionalString(args, "oauth_client_id"),
		OAuthClientSecret: common.OptionalString(args, "oauth_client_secret"),
		OAuthRefreshToken: common.OptionalString(args, "oauth_refresh_token"),
		Platform:          baas.Platform(common.OptionalString(args, "platform")),
	})
	if err != nil {
		logger.Warn("failed to update calendar", logging.CalendarID(calendarID), logging.Err(err))
		return common.FailureResult("update calendar", err), nil
	}

	return common.TextResultf("Successfully updated calendar, updated calendar: %s", common.FormatJSON(data)), nil
}

func handleResyncAllCalendars(ctx context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, err := getBaasClient(ctx, sc)
	if err != nil {
		return common.FailureResult("resync calendars", err), nil
	}

	data, err := client.ResyncAllCalendars(ctx)
	if err != nil {
		logging.WithTool(sc.Logger(), "resyncAllCalendars").Warn("failed to resync calendars", logging.Err(err))
		return common.FailureResult("resync calendars", err), nil
	}

	return common.TextResultf("Successfully resynced calendars: %s", common.FormatJSON(data)), nil
}
