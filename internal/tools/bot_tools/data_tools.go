package bot_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meetingbaas/meeting-mcp/internal/baas"
	"github.com/meetingbaas/meeting-mcp/internal/instrumentation"
	"github.com/meetingbaas/meeting-mcp/internal/logging"
	"github.com/meetingbaas/meeting-mcp/internal/server"
	"github.com/meetingbaas/meeting-mcp/internal/tools/common"
)

// RegisterDataTools registers the tools that read, delete and reprocess
// the data recorded by bots
func RegisterDataTools(b *common.Builder, sc *server.ServerContext) error {
	getMeetingDataTool := mcp.NewTool("getMeetingData",
		mcp.WithDescription("Get data about a meeting that a bot has joined. Use this when you want to: 1) Check meeting status 2) Get recording information 3) Access transcription data"),
		mcp.WithString("bot_id",
			mcp.Required(),
			mcp.Description("The ID of the bot that recorded the meeting"),
		),
		mcp.WithBoolean("include_transcripts",
			mcp.Description("Whether to include the transcripts in the response"),
		),
	)

	err := b.Add(getMeetingDataTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGetMeetingData(ctx, request, sc)
	}, common.WithService(instrumentation.ServiceBots, instrumentation.OperationGet))
	if err != nil {
		return err
	}

	deleteDataTool := mcp.NewTool("deleteData",
		mcp.WithDescription("Delete data associated with a meeting bot. Use this when you want to: 1) Remove meeting recordings 2) Delete transcription data 3) Clean up bot data"),
		mcp.WithString("bot_id",
			mcp.Required(),
			mcp.Description("The ID of the bot whose data is deleted"),
		),
	)

	err = b.Add(deleteDataTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleDeleteData(ctx, request, sc)
	}, common.WithService(instrumentation.ServiceBots, instrumentation.OperationDelete))
	if err != nil {
		return err
	}

	retranscribeBotTool := mcp.NewTool("retranscribeBot",
		mcp.WithDescription("Transcribe or retranscribe a bot recording using the Default or provided Speech to Text Provider. Use this when you want to: 1) Transcribe a bot recording 2) Retranscribe if you want to improve the transcription"),
		mcp.WithString("bot_uuid",
			mcp.Required(),
			mcp.Description("The ID of the bot whose recording is transcribed"),
		),
		mcp.WithObject("speech_to_text",
			mcp.Description("Speech to text provider settings, e.g. {\"provider\": \"Gladia\"}"),
		),
		mcp.WithString("webhook_url",
			mcp.Description("URL notified when the transcription is complete"),
		),
	)

	err = b.Add(retranscribeBotTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleRetranscribeBot(ctx, request, sc)
	}, common.WithService(instrumentation.ServiceBots, instrumentation.OperationRetranscribe))
	if err != nil {
		return err
	}

	botsWithMetadataTool := mcp.NewTool("botsWithMetadata",
		mcp.WithDescription("Get a list of all bots with their metadata. Use this when you want to: 1) View active bots 2) Check bot status 3) Monitor bot activity"),
		mcp.WithString("bot_name",
			mcp.Description("Only bots whose name contains this value"),
		),
		mcp.WithString("created_after",
			mcp.Description("Only bots created after this date (ISO 8601)"),
		),
		mcp.WithString("created_before",
			mcp.Description("Only bots created before this date (ISO 8601)"),
		),
		mcp.WithString("cursor",
			mcp.Description("Pagination cursor returned by a previous call"),
		),
		mcp.WithString("filter_by_extra",
			mcp.Description("Filter on extra fields, e.g. \"customer_id:123,status:active\""),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of bots to return"),
		),
		mcp.WithString("meeting_url",
			mcp.Description("Only bots that joined this meeting URL"),
		),
		mcp.WithString("sort_by_extra",
			mcp.Description("Sort on an extra field, e.g. \"customer_id:asc\""),
		),
		mcp.WithString("speaker_name",
			mcp.Description("Only bots whose meeting included this speaker"),
		),
	)

	return b.Add(botsWithMetadataTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleBotsWithMetadata(ctx, request, sc)
	}, common.WithService(instrumentation.ServiceBots, instrumentation.OperationList))
}

func handleGetMeetingData(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	logger := logging.WithTool(sc.Logger(), "getMeetingData")

	botID, err := common.StringArg(args, "bot_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getBaasClient(ctx, sc)
	if err != nil {
		return common.FailureResult("get meeting data", err), nil
	}

	data, err := client.GetMeetingData(ctx, botID, common.OptionalBool(args, "include_transcripts"))
	if err != nil {
		logger.Warn("failed to get meeting data", logging.BotID(botID), logging.Err(err))
		return common.FailureResult("get meeting data", err), nil
	}

	return common.JSONResult(data), nil
}

func handleDeleteData(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	logger := logging.WithTool(sc.Logger(), "deleteData")

	botID, err := common.StringArg(request.GetArguments(), "bot_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getBaasClient(ctx, sc)
	if err != nil {
		return common.FailureResult("delete meeting data", err), nil
	}

	logger.Debug("attempting to delete meeting data", logging.BotID(botID))
	if err := client.DeleteBotData(ctx, botID); err != nil {
		logger.Warn("failed to delete meeting data", logging.BotID(botID), logging.Err(err))
		return common.FailureResult("delete meeting data", err), nil
	}

	return mcp.NewToolResultText("Successfully deleted meeting data"), nil
}

func handleRetranscribeBot(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	logger := logging.WithTool(sc.Logger(), "retranscribeBot")

	botUUID, err := common.StringArg(args, "bot_uuid")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getBaasClient(ctx, sc)
	if err != nil {
		return common.FailureResult("retranscribe bot", err), nil
	}

	data, err := client.RetranscribeBot(ctx, baas.RetranscribeRequest{
		BotUUID:      botUUID,
		SpeechToText: common.ObjectArg(args, "speech_to_text"),
		WebhookURL:   common.OptionalString(args, "webhook_url"),
	})
	if err != nil {
		logger.Warn("failed to retranscribe bot", logging.BotID(botUUID), logging.Err(err))
		return common.FailureResult("retranscribe bot", err), nil
	}

	return common.JSONResult(data), nil
}

func handleBotsWithMetadata(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	client, err := getBaasClient(ctx, sc)
	if err != nil {
		return common.FailureResult("get bots with metadata", err), nil
	}

	data, err := client.ListBots(ctx, baas.ListBotsParams{
		BotName:       common.OptionalString(args, "bot_name"),
		CreatedAfter:  common.OptionalString(args, "created_after"),
		CreatedBefore: common.OptionalString(args, "created_before"),
		Cursor:        common.OptionalString(args, "cursor"),
		FilterByExtra: common.OptionalString(args, "filter_by_extra"),
		Limit:         common.OptionalInt(args, "limit"),
		MeetingURL:    common.OptionalString(args, "meeting_url"),
		SortByExtra:   common.OptionalString(args, "sort_by_extra"),
		SpeakerName:   common.OptionalString(args, "speaker_name"),
	})
	if err != nil {
		logging.WithTool(sc.Logger(), "botsWithMetadata").Warn("failed to get bots with metadata", logging.Err(err))
		return common.FailureResult("get bots with metadata", err), nil
	}

	return common.JSONResult(data), nil
}
