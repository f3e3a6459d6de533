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

const allOccurrencesDescription = "Apply to every occurrence of a recurring event (default: false)"

// RegisterSchedulingTools registers the tools scheduling bots on calendar events
func RegisterSchedulingTools(b *common.Builder, sc *server.ServerContext) error {
	scheduleRecordEventTool := mcp.NewTool("scheduleRecordEvent",
		mcp.WithDescription("Schedule a recording. Use this when you want to: 1) Set up automatic recording 2) Schedule future transcriptions 3) Plan meeting recordings"),
		mcp.WithString("event_uuid",
			mcp.Description("The UUID of the calendar event to record"),
		),
		mcp.WithString("calendar_id",
			mcp.Description("Deprecated alias of event_uuid"),
		),
		mcp.WithBoolean("all_occurrences",
			mcp.Description(allOccurrencesDescription),
		),
		mcp.WithString("bot_name",
			mcp.Required(),
			mcp.Description("The name of the bot as shown to other participants"),
		),
		mcp.WithString("bot_image",
			mcp.Description("URL of the image the bot uses as its camera feed"),
		),
		mcp.WithString("deduplication_key",
			mcp.Description("Key used to prevent two bots from joining the same meeting"),
		),
		mcp.WithString("entry_message",
			mcp.Description("Chat message the bot sends when it joins the meeting"),
		),
		mcp.WithObject("extra",
			mcp.Description("Custom data attached to the bot and returned in webhooks"),
		),
		mcp.WithString("recording_mode",
			mcp.Enum(baas.RecordingModes()...),
			mcp.Description("How the meeting is recorded: speaker_view (default), gallery_view or audio_only"),
		),
		mcp.WithObject("speech_to_text",
			mcp.Description("Speech to text provider settings, e.g. {\"provider\": \"Gladia\"}"),
		),
		mcp.WithObject("streaming",
			mcp.Description("Real-time audio streaming settings (input, output, audio_frequency)"),
		),
		mcp.WithObject("automatic_leave",
			mcp.Description("Timeouts after which the bot leaves (noone_joined_timeout, waiting_room_timeout)"),
		),
	)

	err := b.Add(scheduleRecordEventTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleScheduleRecordEvent(ctx, request, sc)
	}, common.WithService(instrumentation.ServiceCalendars, instrumentation.OperationSchedule))
	if err != nil {
		return err
	}

	unscheduleRecordEventTool := mcp.NewTool("unscheduleRecordEvent",
		mcp.WithDescription("Cancel a scheduled recording. Use this when you want to: 1) Cancel automatic recording 2) Stop planned transcription 3) Remove scheduled bot activity"),
		mcp.WithString("event_uuid",
			mcp.Required(),
			mcp.Description("The UUID of the calendar event whose recording is cancelled"),
		),
		mcp.WithBoolean("all_occurrences",
			mcp.Description(allOccurrencesDescription),
		),
	)

	return b.Add(unscheduleRecordEventTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleUnscheduleRecordEvent(ctx, request, sc)
	}, common.WithService(instrumentation.ServiceCalendars, instrumentation.OperationUnschedule))
}

func handleScheduleRecordEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	logger := logging.WithTool(sc.Logger(), "scheduleRecordEvent")

	eventID, err := common.FirstString(args, "event_uuid", "calendar_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	botName, err := common.StringArg(args, "bot_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	allOccurrences := common.BoolArgOrDefault(args, "all_occurrences", false)

	client, err := getBaasClient(ctx, sc)
	if err != nil {
		return common.FailureResult("schedule event recording", err), nil
	}

	logger.Debug("attempting to schedule event recording", logging.EventID(eventID), "all_occurrences", allOccurrences)
	data, err := client.ScheduleCalendarRecordEvent(ctx, eventID, allOccurrences, baas.ScheduleRecordRequest{
		BotName:          botName,
		BotImage:         common.OptionalString(args, "bot_image"),
		DeduplicationKey: common.OptionalString(args, "deduplication_key"),
		EntryMessage:     common.OptionalString(args, "entry_message"),
		Extra:            common.ObjectArg(args, "extra"),
		RecordingMode:    baas.RecordingMode(common.OptionalString(args, "recording_mode")),
		SpeechToText:     common.ObjectArg(args, "speech_to_text"),
		Streaming:        common.ObjectArg(args, "streaming"),
		AutomaticLeave:   common.ObjectArg(args, "automatic_leave"),
	})
	if err != nil {
		logger.Warn("failed to schedule event recording", logging.EventID(eventID), logging.Err(err))
		return common.FailureResult("schedule event recording", err), nil
	}

	return common.TextResultf("Successfully scheduled event recording, events: %s", common.FormatJSON(data)), nil
}

func handleUnscheduleRecordEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	logger := logging.WithTool(sc.Logger(), "unscheduleRecordEvent")

	eventID, err := common.StringArg(args, "event_uuid")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	allOccurrences := common.BoolArgOrDefault(args, "all_occurrences", false)

	client, err := getBaasClient(ctx, sc)
	if err != nil {
		return common.FailureResult("unschedule event recording", err), nil
	}

	logger.Debug("attempting to unschedule event recording", logging.EventID(eventID), "all_occurrences", allOccurrences)
	data, err := client.UnscheduleCalendarRecordEvent(ctx, eventID, allOccurrences)
	if err != nil {
		logger.Warn("failed to unschedule event recording", logging.EventID(eventID), logging.Err(err))
		return common.FailureResult("unschedule event recording", err), nil
	}

	return common.TextResultf("Successfully unscheduled event recording, removed events: %s", common.FormatJSON(data)), nil
}
