package bot_tools

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMeetingData(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{"duration":120,"bot_data":{"bot":{"bot_name":"Notetaker"}}}`)
	r := newTestRegistry(t, api, "test_key")

	text, isError := callTool(t, r, "getMeetingData", map[string]any{"bot_id": "b1", "include_transcripts": false})
	assert.False(t, isError)
	assert.Equal(t, "{\n  \"duration\": 120,\n  \"bot_data\": {\n    \"bot\": {\n      \"bot_name\": \"Notetaker\"\n    }\n  }\n}", text)

	call := api.last(t)
	assert.Equal(t, "/bots/meeting_data", call.Path)
	assert.Equal(t, "b1", call.Query.Get("bot_id"))
	assert.Equal(t, "false", call.Query.Get("include_transcripts"))
}

func TestGetMeetingData_OmitsUnsetFlag(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{}`)
	r := newTestRegistry(t, api, "test_key")

	_, isError := callTool(t, r, "getMeetingData", map[string]any{"bot_id": "b1"})
	assert.False(t, isError)
	assert.NotContains(t, api.last(t).Query, "include_transcripts")
}

func TestGetMeetingData_ServerError(t *testing.T) {
	api := newFakeAPI(t, http.StatusInternalServerError, `{}`)
	r := newTestRegistry(t, api, "test_key")

	text, isError := callTool(t, r, "getMeetingData", map[string]any{"bot_id": "b1"})
	assert.True(t, isError)
	assert.Equal(t, `Failed to get meeting data: {"status_code":500,"body":{}}`, text)
}

func TestDeleteData(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{"ok":true,"status":"deleted"}`)
	r := newTestRegistry(t, api, "test_key")

	text, isError := callTool(t, r, "deleteData", map[string]any{"bot_id": "b1"})
	assert.False(t, isError)
	assert.Equal(t, "Successfully deleted meeting data", text)

	call := api.last(t)
	assert.Equal(t, http.MethodPost, call.Method)
	assert.Equal(t, "/bots/b1/delete_data", call.Path)
}

func TestRetranscribeBot(t *testing.T) {
	api := newFakeAPI(t, http.StatusAccepted, ``)
	r := newTestRegistry(t, api, "test_key")

	text, isError := callTool(t, r, "retranscribeBot", map[string]any{
		"bot_uuid":       "b1",
		"speech_to_text": map[string]any{"provider": "Runpod"},
	})
	assert.False(t, isError)
	assert.Equal(t, "null", text)

	call := api.last(t)
	assert.Equal(t, "/bots/retranscribe", call.Path)
	assert.Equal(t, map[string]any{"bot_uuid": "b1", "speech_to_text": map[string]any{"provider": "Runpod"}}, call.Body)
}

func TestBotsWithMetadata(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{"bots":[],"nextCursor":null}`)
	r := newTestRegistry(t, api, "test_key")

	text, isError := callTool(t, r, "botsWithMetadata", map[string]any{
		"limit":       10.0,
		"bot_name":    "Notetaker",
		"cursor":      "",
		"meeting_url": "https://x",
	})
	assert.False(t, isError)
	assert.Equal(t, "{\n  \"bots\": [],\n  \"nextCursor\": null\n}", text)

	call := api.last(t)
	assert.Equal(t, "/bots/bots_with_metadata", call.Path)
	assert.Equal(t, "10", call.Query.Get("limit"))
	assert.Equal(t, "Notetaker", call.Query.Get("bot_name"))
	assert.Equal(t, "https://x", call.Query.Get("meeting_url"))
	assert.NotContains(t, call.Query, "cursor")
}

func TestBotsWithMetadata_Rejected(t *testing.T) {
	api := newFakeAPI(t, http.StatusUnauthorized, `{"message":"Invalid API key"}`)
	r := newTestRegistry(t, api, "test_key")

	text, isError := callTool(t, r, "botsWithMetadata", nil)
	assert.True(t, isError)
	assert.Equal(t, "Failed to get bots with metadata: Invalid API key", text)
}
