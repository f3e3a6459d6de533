package baas

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

// JoinMeeting sends a bot to a meeting. A successful response without a
// bot_id is reported as ErrMissingData.
func (c *Client) JoinMeeting(ctx context.Context, req JoinRequest) (*JoinResponse, error) {
	var resp JoinResponse
	if err := c.do(ctx, "joinMeeting", http.MethodPost, "/bots", nil, req, &resp); err != nil {
		return nil, err
	}
	if resp.BotID == "" {
		return nil, ErrMissingData
	}
	return &resp, nil
}

// LeaveMeeting removes a bot from its meeting
func (c *Client) LeaveMeeting(ctx context.Context, botID string) error {
	return c.do(ctx, "leaveMeeting", http.MethodDelete, "/bots/"+url.PathEscape(botID), nil, nil, nil)
}

// GetMeetingData returns the recording and transcription data of a bot.
// includeTranscripts is only sent when non-nil.
func (c *Client) GetMeetingData(ctx context.Context, botID string, includeTranscripts *bool) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("bot_id", botID)
	if includeTranscripts != nil {
		q.Set("include_transcripts", strconv.FormatBool(*includeTranscripts))
	}
	return c.doRaw(ctx, "getMeetingData", http.MethodGet, "/bots/meeting_data", q, nil)
}

// DeleteBotData deletes the recordings and transcripts of a bot
func (c *Client) DeleteBotData(ctx context.Context, botID string) error {
	return c.do(ctx, "deleteBotData", http.MethodPost, "/bots/"+url.PathEscape(botID)+"/delete_data", nil, nil, nil)
}

// RetranscribeBot transcribes a bot recording again
func (c *Client) RetranscribeBot(ctx context.Context, req RetranscribeRequest) (json.RawMessage, error) {
	return c.doRaw(ctx, "retranscribeBot", http.MethodPost, "/bots/retranscribe", nil, req)
}

// ListBots lists bots with their metadata
func (c *Client) ListBots(ctx context.Context, params ListBotsParams) (json.RawMessage, error) {
	return c.doRaw(ctx, "listBots", http.MethodGet, "/bots/bots_with_metadata", params.Values(), nil)
}
