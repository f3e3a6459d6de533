package bot_tools

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meetingbaas/meeting-mcp/internal/baas"
)

func TestJoinMeeting(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{"bot_id":"b1"}`)
	r := newTestRegistry(t, api, "test_key")

	text, isError := callTool(t, r, "joinMeeting", map[string]any{"meeting_url": "https://x"})
	assert.False(t, isError)
	assert.Equal(t, "Successfully joined meeting, bot_id: b1", text)

	call := api.last(t)
	assert.Equal(t, http.MethodPost, call.Method)
	assert.Equal(t, "/bots", call.Path)
	assert.Equal(t, "test_key", call.Header.Get(baas.APIKeyHeader))
	assert.Equal(t, map[string]any{"meeting_url": "https://x", "reserved": false}, call.Body)
}

func TestJoinMeeting_ForwardsOptionalFields(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{"bot_id":"b2"}`)
	r := newTestRegistry(t, api, "test_key")

	_, isError := callTool(t, r, "joinMeeting", map[string]any{
		"meeting_url":     "https://x",
		"bot_name":        "Notetaker",
		"recording_mode":  "gallery_view",
		"reserved":        true,
		"start_time":      1700000000000.0,
		"speech_to_text":  map[string]any{"provider": "Gladia"},
		"automatic_leave": map[string]any{"waiting_room_timeout": 600.0},
	})
	assert.False(t, isError)

	body := api.last(t).Body
	assert.Equal(t, "Notetaker", body["bot_name"])
	assert.Equal(t, "gallery_view", body["recording_mode"])
	assert.Equal(t, true, body["reserved"])
	assert.Equal(t, 1700000000000.0, body["start_time"])
	assert.Equal(t, map[string]any{"provider": "Gladia"}, body["speech_to_text"])
	assert.Equal(t, map[string]any{"waiting_room_timeout": 600.0}, body["automatic_leave"])
	assert.NotContains(t, body, "bot_image")
	assert.NotContains(t, body, "extra")
}

func TestJoinMeeting_Failures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		args     map[string]any
		expected string
		noCall   bool
	}{
		{
			name:     "platform rejection",
			status:   http.StatusBadRequest,
			body:     `{"error":{"message":"invalid meeting url"}}`,
			args:     map[string]any{"meeting_url": "https://x"},
			expected: "Failed to join meeting: invalid meeting url",
		},
		{
			name:     "no bot_id in response",
			status:   http.StatusOK,
			body:     `{}`,
			args:     map[string]any{"meeting_url": "https://x"},
			expected: "Failed to join meeting: no bot_id received in the response",
		},
		{
			name:     "missing meeting_url",
			status:   http.StatusOK,
			body:     `{}`,
			args:     map[string]any{},
			expected: "Invalid arguments for joinMeeting: (root): meeting_url is required",
			noCall:   true,
		},
		{
			name:     "invalid recording mode",
			status:   http.StatusOK,
			body:     `{}`,
			args:     map[string]any{"meeting_url": "https://x", "recording_mode": "video"},
			expected: "Invalid arguments for joinMeeting",
			noCall:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(t, tt.status, tt.body)
			r := newTestRegistry(t, api, "test_key")

			text, isError := callTool(t, r, "joinMeeting", tt.args)
			assert.True(t, isError)
			assert.Contains(t, text, tt.expected)
			if tt.noCall {
				assert.Zero(t, api.count())
			}
		})
	}
}

func TestLeaveMeeting(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{"ok":true}`)
	r := newTestRegistry(t, api, "test_key")

	text, isError := callTool(t, r, "leaveMeeting", map[string]any{"bot_id": "b1"})
	assert.False(t, isError)
	assert.Equal(t, "Successfully removed bot b1 from meeting", text)

	call := api.last(t)
	assert.Equal(t, http.MethodDelete, call.Method)
	assert.Equal(t, "/bots/b1", call.Path)
}

func TestLeaveMeeting_Rejected(t *testing.T) {
	api := newFakeAPI(t, http.StatusNotFound, `{"message":"bot not found"}`)
	r := newTestRegistry(t, api, "test_key")

	text, isError := callTool(t, r, "leaveMeeting", map[string]any{"bot_id": "b1"})
	assert.True(t, isError)
	assert.Equal(t, "Failed to leave meeting: bot not found", text)
}
