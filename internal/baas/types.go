package baas

import (
	"net/url"
	"strconv"
)

// RecordingMode selects how a bot records the meeting
type RecordingMode string

const (
	RecordingModeSpeakerView RecordingMode = "speaker_view"
	RecordingModeGalleryView RecordingMode = "gallery_view"
	RecordingModeAudioOnly   RecordingMode = "audio_only"
)

// RecordingModes lists the accepted recording modes in display order.
func RecordingModes() []string {
	return []string{
		string(RecordingModeSpeakerView),
		string(RecordingModeGalleryView),
		string(RecordingModeAudioOnly),
	}
}

// Platform identifies a calendar provider
type Platform string

const (
	PlatformGoogle    Platform = "Google"
	PlatformMicrosoft Platform = "Microsoft"
)

// JoinRequest is the body of POST /bots. Optional fields are omitted from
// the request when unset.
type JoinRequest struct {
	MeetingURL       string         `json:"meeting_url"`
	BotName          string         `json:"bot_name,omitempty"`
	BotImage         string         `json:"bot_image,omitempty"`
	EntryMessage     string         `json:"entry_message,omitempty"`
	DeduplicationKey string         `json:"deduplication_key,omitempty"`
	RecordingMode    RecordingMode  `json:"recording_mode,omitempty"`
	Reserved         bool           `json:"reserved"`
	StartTime        *int64         `json:"start_time,omitempty"`
	WebhookURL       string         `json:"webhook_url,omitempty"`
	Extra            map[string]any `json:"extra,omitempty"`
	SpeechToText     map[string]any `json:"speech_to_text,omitempty"`
	Streaming        map[string]any `json:"streaming,omitempty"`
	AutomaticLeave   map[string]any `json:"automatic_leave,omitempty"`
}

// JoinResponse is returned by POST /bots
type JoinResponse struct {
	BotID string `json:"bot_id"`
}

// RetranscribeRequest is the body of POST /bots/retranscribe
type RetranscribeRequest struct {
	BotUUID      string         `json:"bot_uuid"`
	SpeechToText map[string]any `json:"speech_to_text,omitempty"`
	WebhookURL   string         `json:"webhook_url,omitempty"`
}

// ListBotsParams filters GET /bots/bots_with_metadata. Empty fields are not sent.
type ListBotsParams struct {
	BotName       string
	CreatedAfter  string
	CreatedBefore string
	Cursor        string
	FilterByExtra string
	Limit         *int
	MeetingURL    string
	SortByExtra   string
	SpeakerName   string
}

// Values encodes the parameters as a query string.
func (p ListBotsParams) Values() url.Values {
	v := url.Values{}
	setIfNotEmpty(v, "bot_name", p.BotName)
	setIfNotEmpty(v, "created_after", p.CreatedAfter)
	setIfNotEmpty(v, "created_before", p.CreatedBefore)
	setIfNotEmpty(v, "cursor", p.Cursor)
	setIfNotEmpty(v, "filter_by_extra", p.FilterByExtra)
	if p.Limit != nil {
		v.Set("limit", strconv.Itoa(*p.Limit))
	}
	setIfNotEmpty(v, "meeting_url", p.MeetingURL)
	setIfNotEmpty(v, "sort_by_extra", p.SortByExtra)
	setIfNotEmpty(v, "speaker_name", p.SpeakerName)
	return v
}

// CreateCalendarRequest is the body of POST /calendars
type CreateCalendarRequest struct {
	OAuthClientID     string   `json:"oauth_client_id"`
	OAuthClientSecret string   `json:"oauth_client_secret"`
	OAuthRefreshToken string   `json:"oauth_refresh_token"`
	Platform          Platform `json:"platform"`
	RawCalendarID     string   `json:"raw_calendar_id,omitempty"`
}

// UpdateCalendarRequest is the body of PATCH /calendars/{uuid}. Only the
// supplied fields are changed.
type UpdateCalendarRequest struct {
	OAuthClientID     string   `json:"oauth_client_id,omitempty"`
	OAuthClientSecret string   `json:"oauth_client_secret,omitempty"`
	OAuthRefreshToken string   `json:"oauth_refresh_token,omitempty"`
	Platform          Platform `json:"platform,omitempty"`
}

// ListEventsParams filters GET /calendar_events
type ListEventsParams struct {
	CalendarID     string
	AttendeeEmail  string
	Cursor         string
	OrganizerEmail string
	StartDateGte   string
	StartDateLte   string
	Status         string
	UpdatedAtGte   string
}

// Values encodes the parameters as a query string.
func (p ListEventsParams) Values() url.Values {
	v := url.Values{}
	v.Set("calendar_id", p.CalendarID)
	setIfNotEmpty(v, "attendee_email", p.AttendeeEmail)
	setIfNotEmpty(v, "cursor", p.Cursor)
	setIfNotEmpty(v, "organizer_email", p.OrganizerEmail)
	setIfNotEmpty(v, "start_date_gte", p.StartDateGte)
	setIfNotEmpty(v, "start_date_lte", p.StartDateLte)
	setIfNotEmpty(v, "status", p.Status)
	setIfNotEmpty(v, "updated_at_gte", p.UpdatedAtGte)
	return v
}

// ScheduleRecordRequest is the body of POST /calendar_events/{uuid}/bot
type ScheduleRecordRequest struct {
	BotName          string         `json:"bot_name"`
	BotImage         string         `json:"bot_image,omitempty"`
	DeduplicationKey string         `json:"deduplication_key,omitempty"`
	EntryMessage     string         `json:"entry_message,omitempty"`
	Extra            map[string]any `json:"extra,omitempty"`
	RecordingMode    RecordingMode  `json:"recording_mode,omitempty"`
	SpeechToText     map[string]any `json:"speech_to_text,omitempty"`
	Streaming        map[string]any `json:"streaming,omitempty"`
	AutomaticLeave   map[string]any `json:"automatic_leave,omitempty"`
}

func setIfNotEmpty(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}
