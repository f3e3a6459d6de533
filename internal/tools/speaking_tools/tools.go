package speaking_tools

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meetingbaas/meeting-mcp/internal/instrumentation"
	"github.com/meetingbaas/meeting-mcp/internal/logging"
	"github.com/meetingbaas/meeting-mcp/internal/server"
	"github.com/meetingbaas/meeting-mcp/internal/speaking"
	"github.com/meetingbaas/meeting-mcp/internal/tools/common"
)

const curlHint = "\n\nFor debugging, you can try this curl command:\n\n"

// RegisterSpeakingTools registers joinSpeakingMeeting and leaveSpeakingMeeting
func RegisterSpeakingTools(b *common.Builder, sc *server.ServerContext) error {
	joinSpeakingMeetingTool := mcp.NewTool("joinSpeakingMeeting",
		mcp.WithDescription("Send an AI speaking bot to join a video meeting. The bot can assist in meetings with voice AI capabilities."),
		mcp.WithString("meetingUrl",
			mcp.Required(),
			common.FormatURI(),
			mcp.Description("URL of the meeting to join"),
		),
		mcp.WithString("botName",
			mcp.Description("Name to display for the bot in the meeting"),
		),
		mcp.WithString(common.SpeakingAPIKeyArg,
			mcp.Required(),
			mcp.Description("Your MeetingBaas API key for authentication"),
		),
		mcp.WithArray("personas",
			mcp.Items(map[string]any{"type": "string"}),
			mcp.Description("List of persona names to use. The first available will be selected. Available personas: "+strings.Join(speaking.Personas(), ", ")),
		),
		mcp.WithString("botImage",
			common.FormatURI(),
			mcp.Description("The image to use for the bot, must be a URL."),
		),
		mcp.WithString("entryMessage",
			mcp.Description("Message to send when joining the meeting."),
		),
		mcp.WithBoolean("enableTools",
			mcp.DefaultBool(true),
			mcp.Description("Whether to enable tools for the bot."),
		),
		mcp.WithObject("extra",
			mcp.Description("A JSON object that allows you to add custom data to a bot for your convenience."),
		),
	)

	err := b.Add(joinSpeakingMeetingTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleJoinSpeakingMeeting(ctx, request, sc)
	}, common.WithService(instrumentation.ServiceSpeaking, instrumentation.OperationJoin))
	if err != nil {
		return err
	}

	leaveSpeakingMeetingTool := mcp.NewTool("leaveSpeakingMeeting",
		mcp.WithDescription("Remove a speaking bot from a meeting by its ID."),
		mcp.WithString("botId",
			mcp.Required(),
			mcp.Description("The MeetingBaas bot ID to remove from the meeting"),
		),
		mcp.WithString(common.SpeakingAPIKeyArg,
			mcp.Required(),
			mcp.Description("Your MeetingBaas API key for authentication"),
		),
	)

	return b.Add(leaveSpeakingMeetingTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleLeaveSpeakingMeeting(ctx, request, sc)
	}, common.WithService(instrumentation.ServiceSpeaking, instrumentation.OperationLeave))
}

// failureWithCurl reports a failed speaking API call together with a curl
// command that reproduces it
func failureWithCurl(message, curl string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
			mcp.NewTextContent(curlHint + curl),
		},
		IsError: true,
	}
}

func handleJoinSpeakingMeeting(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	logger := logging.WithTool(sc.Logger(), "joinSpeakingMeeting")

	meetingURL, err := common.StringArg(args, "meetingUrl")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	apiKey, err := common.StringArg(args, common.SpeakingAPIKeyArg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	enableTools := common.BoolArgOrDefault(args, "enableTools", true)
	req := speaking.JoinRequest{
		MeetingURL:   meetingURL,
		BotName:      common.OptionalString(args, "botName"),
		Personas:     common.StringSliceArg(args, "personas"),
		BotImage:     common.OptionalString(args, "botImage"),
		EntryMessage: common.OptionalString(args, "entryMessage"),
		EnableTools:  &enableTools,
		Extra:        common.ObjectArg(args, "extra"),
	}

	if unknown := speaking.UnknownPersonas(req.Personas); len(unknown) > 0 {
		logger.Debug("personas not in catalog, passing through", "personas", unknown)
	}

	client := sc.SpeakingClient()
	logger.Debug("attempting to join meeting with speaking bot", logging.MeetingURL(meetingURL))

	resp, err := client.Join(ctx, apiKey, req)
	if errors.Is(err, speaking.ErrNoBotID) {
		logger.Warn("speaking bot join returned no bot ID", logging.MeetingURL(meetingURL))
		return mcp.NewToolResultError(speaking.ErrNoBotID.Error()), nil
	}
	if err != nil {
		logger.Warn("failed to join meeting with speaking bot", logging.Err(err))
		curl := speaking.CurlCommand(http.MethodPost, client.BotsURL(), apiKey, req)
		return failureWithCurl("Failed to join meeting with speaking bot: "+speaking.DescribeError(err), curl), nil
	}

	logger.Info("speaking bot joined meeting", logging.BotID(resp.BotID))
	return mcp.NewToolResultText(fmt.Sprintf("Successfully joined meeting with speaking bot ID: %s", resp.BotID)), nil
}

func handleLeaveSpeakingMeeting(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	logger := logging.WithTool(sc.Logger(), "leaveSpeakingMeeting")

	botID, err := common.StringArg(args, "botId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	apiKey, err := common.StringArg(args, common.SpeakingAPIKeyArg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client := sc.SpeakingClient()
	logger.Debug("attempting to remove speaking bot", logging.BotID(botID))

	if err := client.Leave(ctx, apiKey, botID); err != nil {
		logger.Warn("failed to remove speaking bot", logging.BotID(botID), logging.Err(err))
		curl := speaking.CurlCommand(http.MethodDelete, client.BotURL(botID), apiKey, speaking.LeaveRequest{BotID: botID})
		return failureWithCurl("Failed to remove speaking bot: "+speaking.DescribeError(err), curl), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Successfully removed speaking bot ID: %s from the meeting", botID)), nil
}
