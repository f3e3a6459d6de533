package calendar_tools

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScheduleRecordEvent(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `[{"uuid":"e1"}]`)
	r := newTestRegistry(t, api, "test_key")

	text, isError := callTool(t, r, "scheduleRecordEvent", map[string]any{
		"event_uuid": "e1",
		"bot_name":   "Recorder",
	})
	assert.False(t, isError)
	assert.Equal(t, "Successfully scheduled event recording, events: [\n  {\n    \"uuid\": \"e1\"\n  }\n]", text)

	call := api.last(t)
	assert.Equal(t, http.MethodPost, call.Method)
	assert.Equal(t, "/calendar_events/e1/bot", call.Path)
	assert.Equal(t, "false", call.Query.Get("all_occurrences"))
	assert.Equal(t, map[string]any{"bot_name": "Recorder"}, call.Body)
}

func TestScheduleRecordEvent_CalendarIDAlias(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `[]`)
	r := newTestRegistry(t, api, "test_key")

	_, isError := callTool(t, r, "scheduleRecordEvent", map[string]any{
		"calendar_id":     "e2",
		"all_occurrences": true,
		"bot_name":        "Recorder",
		"recording_mode":  "audio_only",
		"extra":           map[string]any{"team": "sales"},
	})
	assert.False(t, isError)

	call := api.last(t)
	assert.Equal(t, "/calendar_events/e2/bot", call.Path)
	assert.Equal(t, "true", call.Query.Get("all_occurrences"))
	assert.Equal(t, "audio_only", call.Body["recording_mode"])
	assert.Equal(t, map[string]any{"team": "sales"}, call.Body["extra"])
}

func TestScheduleRecordEvent_MissingEvent(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `[]`)
	r := newTestRegistry(t, api, "test_key")

	text, isError := callTool(t, r, "scheduleRecordEvent", map[string]any{"bot_name": "Recorder"})
	assert.True(t, isError)
	assert.Equal(t, "event_uuid or calendar_id is required", text)
	assert.Zero(t, api.count())
}

func TestUnscheduleRecordEvent(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]any
		expected string
	}{
		{
			name:     "default occurrences",
			args:     map[string]any{"event_uuid": "e1"},
			expected: "false",
		},
		{
			name:     "all occurrences",
			args:     map[string]any{"event_uuid": "e1", "all_occurrences": true},
			expected: "true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(t, http.StatusOK, `[{"uuid":"e1"}]`)
			r := newTestRegistry(t, api, "test_key")

			text, isError := callTool(t, r, "unscheduleRecordEvent", tt.args)
			assert.False(t, isError)
			assert.Equal(t, "Successfully unscheduled event recording, removed events: [\n  {\n    \"uuid\": \"e1\"\n  }\n]", text)

			call := api.last(t)
			assert.Equal(t, http.MethodDelete, call.Method)
			assert.Equal(t, "/calendar_events/e1/bot", call.Path)
			assert.Equal(t, tt.expected, call.Query.Get("all_occurrences"))
		})
	}
}

func TestUnscheduleRecordEvent_Rejected(t *testing.T) {
	api := newFakeAPI(t, http.StatusBadRequest, `{"message":"event has no bot scheduled"}`)
	r := newTestRegistry(t, api, "test_key")

	text, isError := callTool(t, r, "unscheduleRecordEvent", map[string]any{"event_uuid": "e1"})
	assert.True(t, isError)
	assert.Equal(t, "Failed to unschedule event recording: event has no bot scheduled", text)
}
