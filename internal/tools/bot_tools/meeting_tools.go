package bot_tools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meetingbaas/meeting-mcp/internal/baas"
	"github.com/meetingbaas/meeting-mcp/internal/instrumentation"
	"github.com/meetingbaas/meeting-mcp/internal/logging"
	"github.com/meetingbaas/meeting-mcp/internal/server"
	"github.com/meetingbaas/meeting-mcp/internal/tools/common"
)

// RegisterMeetingTools registers joinMeeting and leaveMeeting
func RegisterMeetingTools(b *common.Builder, sc *server.ServerContext) error {
	joinMeetingTool := mcp.NewTool("joinMeeting",
		mcp.WithDescription("Send an AI bot to join a video meeting. The bot can record the meeting, transcribe speech (enabled by default using Gladia), and provide real-time audio streams. Use this when you want to: 1) Record a meeting 2) Get meeting transcriptions 3) Stream meeting audio 4) Monitor meeting attendance"),
		mcp.WithString("meeting_url",
			mcp.Required(),
			mcp.Description("The meeting URL to join (Google Meet, Microsoft Teams or Zoom)"),
		),
		mcp.WithString("bot_name",
			mcp.Description("The name of the bot as shown to other participants"),
		),
		mcp.WithString("bot_image",
			mcp.Description("URL of the image the bot uses as its camera feed"),
		),
		mcp.WithString("entry_message",
			mcp.Description("Chat message the bot sends when it joins the meeting"),
		),
		mcp.WithString("deduplication_key",
			mcp.Description("Key used to prevent two bots from joining the same meeting"),
		),
		mcp.WithString("recording_mode",
			mcp.Enum(baas.RecordingModes()...),
			mcp.Description("How the meeting is recorded: speaker_view (default), gallery_view or audio_only"),
		),
		mcp.WithBoolean("reserved",
			mcp.DefaultBool(false),
			mcp.Description("Use a reserved bot that joins at start_time instead of an on-demand bot"),
		),
		mcp.WithNumber("start_time",
			mcp.Description("Unix timestamp in milliseconds at which a reserved bot joins"),
		),
		mcp.WithString("webhook_url",
			mcp.Description("URL that receives the bot's status and completion webhooks"),
		),
		mcp.WithObject("extra",
			mcp.Description("Custom data attached to the bot and returned in webhooks"),
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

	err := b.Add(joinMeetingTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleJoinMeeting(ctx, request, sc)
	}, common.WithService(instrumentation.ServiceBots, instrumentation.OperationJoin))
	if err != nil {
		return err
	}

	leaveMeetingTool := mcp.NewTool("leaveMeeting",
		mcp.WithDescription("Remove an AI bot from a meeting. Use this when you want to: 1) End a meeting recording 2) Stop transcription 3) Disconnect the bot from the meeting"),
		mcp.WithString("bot_id",
			mcp.Required(),
			mcp.Description("The ID of the bot to remove"),
		),
	)

	return b.Add(leaveMeetingTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleLeaveMeeting(ctx, request, sc)
	}, common.WithService(instrumentation.ServiceBots, instrumentation.OperationLeave))
}

func joinRequestFromArgs(args map[string]any) (baas.JoinRequest, error) {
	meetingURL, err := common.StringArg(args, "meeting_url")
	if err != nil {
		return baas.JoinRequest{}, err
	}

	return baas.JoinRequest{
		MeetingURL:       meetingURL,
		BotName:          common.OptionalString(args, "bot_name"),
		BotImage:         common.OptionalString(args, "bot_image"),
		EntryMessage:     common.OptionalString(args, "entry_message"),
		DeduplicationKey: common.OptionalString(args, "deduplication_key"),
		RecordingMode:    baas.RecordingMode(common.OptionalString(args, "recording_mode")),
		Reserved:         common.BoolArgOrDefault(args, "reserved", false),
		StartTime:        common.OptionalInt64(args, "start_time"),
		WebhookURL:       common.OptionalString(args, "webhook_url"),
		Extra:            common.ObjectArg(args, "extra"),
		SpeechToText:     common.ObjectArg(args, "speech_to_text"),
		Streaming:        common.ObjectArg(args, "streaming"),
		AutomaticLeave:   common.ObjectArg(args, "automatic_leave"),
	}, nil
}

func handleJoinMeeting(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	logger := logging.WithTool(sc.Logger(), "joinMeeting")

	req, err := joinRequestFromArgs(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getBaasClient(ctx, sc)
	if err != nil {
		return common.FailureResult("join meeting", err), nil
	}

	logger.Debug("attempting to join meeting", logging.MeetingURL(req.MeetingURL))
	resp, err := client.JoinMeeting(ctx, req)
	if err != nil {
		if errors.Is(err, baas.ErrMissingData) {
			logger.Warn("join succeeded without a bot_id", logging.MeetingURL(req.MeetingURL))
		} else {
			logger.Warn("failed to join meeting", logging.Err(err))
		}
		return common.FailureResult("join meeting", err), nil
	}

	logger.Info("joined meeting", logging.BotID(resp.BotID))
	return common.TextResultf("Successfully joined meeting, bot_id: %s", resp.BotID), nil
}

func handleLeaveMeeting(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	logger := logging.WithTool(sc.Logger(), "leaveMeeting")

	botID, err := common.StringArg(request.GetArguments(), "bot_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getBaasClient(ctx, sc)
	if err != nil {
		return common.FailureResult("leave meeting", err), nil
	}

	logger.Debug("attempting to remove bot from meeting", logging.BotID(botID))
	if err := client.LeaveMeeting(ctx, botID); err != nil {
		logger.Warn("failed to leave meeting", logging.BotID(botID), logging.Err(err))
		return common.FailureResult("leave meeting", err), nil
	}

	return common.TextResultf("Successfully removed bot %s from meeting", botID), nil
}
