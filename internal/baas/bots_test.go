package baas

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinMeeting(t *testing.T) {
	ts, rec := newTestServer(t, http.StatusOK, `{"bot_id":"b1"}`)
	c := newTestClient(t, ts)

	resp, err := c.JoinMeeting(context.Background(), JoinRequest{MeetingURL: "https://x"})
	require.NoError(t, err)
	assert.Equal(t, "b1", resp.BotID)

	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/bots", rec.Path)
	assert.Equal(t, "application/json", rec.Header.Get("Content-Type"))
	assert.Equal(t, map[string]any{"meeting_url": "https://x", "reserved": false}, rec.Body)
}

func TestJoinMeeting_OptionalFields(t *testing.T) {
	ts, rec := newTestServer(t, http.StatusOK, `{"bot_id":"b2"}`)
	c := newTestClient(t, ts)

	start := int64(1700000000)
	_, err := c.JoinMeeting(context.Background(), JoinRequest{
		MeetingURL:    "https://x",
		BotName:       "Recorder",
		RecordingMode: RecordingModeAudioOnly,
		Reserved:      true,
		StartTime:     &start,
		Extra:         map[string]any{"team": "sales"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Recorder", rec.Body["bot_name"])
	assert.Equal(t, "audio_only", rec.Body["recording_mode"])
	assert.Equal(t, true, rec.Body["reserved"])
	assert.Equal(t, float64(start), rec.Body["start_time"])
	assert.Equal(t, map[string]any{"team": "sales"}, rec.Body["extra"])
	assert.NotContains(t, rec.Body, "webhook_url")
	assert.NotContains(t, rec.Body, "streaming")
}

func TestJoinMeeting_MissingBotID(t *testing.T) {
	ts, _ := newTestServer(t, http.StatusOK, `{}`)
	c := newTestClient(t, ts)

	_, err := c.JoinMeeting(context.Background(), JoinRequest{MeetingURL: "https://x"})
	assert.ErrorIs(t, err, ErrMissingData)
}

func TestLeaveMeeting(t *testing.T) {
	ts, rec := newTestServer(t, http.StatusOK, `{"ok":true}`)
	c := newTestClient(t, ts)

	require.NoError(t, c.LeaveMeeting(context.Background(), "b1"))
	assert.Equal(t, http.MethodDelete, rec.Method)
	assert.Equal(t, "/bots/b1", rec.Path)
}

func TestGetMeetingData(t *testing.T) {
	ts, rec := newTestServer(t, http.StatusOK, `{"bot_data":{"bot":{"id":1}},"mp4":"https://cdn/x.mp4"}`)
	c := newTestClient(t, ts)

	data, err := c.GetMeetingData(context.Background(), "b1", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"bot_data":{"bot":{"id":1}},"mp4":"https://cdn/x.mp4"}`, string(data))
	assert.Equal(t, "/bots/meeting_data", rec.Path)
	assert.Equal(t, []string{"b1"}, rec.Query["bot_id"])
	assert.NotContains(t, rec.Query, "include_transcripts")

	include := false
	_, err = c.GetMeetingData(context.Background(), "b1", &include)
	require.NoError(t, err)
	assert.Equal(t, []string{"false"}, rec.Query["include_transcripts"])
}

func TestDeleteBotData(t *testing.T) {
	ts, rec := newTestServer(t, http.StatusOK, `{"ok":true,"status":"deleted"}`)
	c := newTestClient(t, ts)

	require.NoError(t, c.DeleteBotData(context.Background(), "b1"))
	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/bots/b1/delete_data", rec.Path)
}

func TestRetranscribeBot(t *testing.T) {
	ts, rec := newTestServer(t, http.StatusAccepted, ``)
	c := newTestClient(t, ts)

	data, err := c.RetranscribeBot(context.Background(), RetranscribeRequest{
		BotUUID:      "b1",
		SpeechToText: map[string]any{"provider": "Gladia"},
	})
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.Equal(t, "/bots/retranscribe", rec.Path)
	assert.Equal(t, "b1", rec.Body["bot_uuid"])
	assert.Equal(t, map[string]any{"provider": "Gladia"}, rec.Body["speech_to_text"])
	assert.NotContains(t, rec.Body, "webhook_url")
}

func TestListBots(t *testing.T) {
	ts, rec := newTestServer(t, http.StatusOK, `{"bots":[],"next_cursor":null}`)
	c := newTestClient(t, ts)

	limit := 10
	_, err := c.ListBots(context.Background(), ListBotsParams{BotName: "Rec", Limit: &limit})
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, rec.Method)
	assert.Equal(t, "/bots/bots_with_metadata", rec.Path)
	assert.Equal(t, []string{"Rec"}, rec.Query["bot_name"])
	assert.Equal(t, []string{"10"}, rec.Query["limit"])
	assert.NotContains(t, rec.Query, "cursor")
}
