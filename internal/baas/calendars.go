package baas

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// CreateCalendar creates a calendar integration
func (c *Client) CreateCalendar(ctx context.Context, req CreateCalendarRequest) (json.RawMessage, error) {
	return c.doRaw(ctx, "createCalendar", http.MethodPost, "/calendars", nil, req)
}

// ListCalendars lists the calendar integrations of the account
func (c *Client) ListCalendars(ctx context.Context) (json.RawMessage, error) {
	return c.doRaw(ctx, "listCalendars", http.MethodGet, "/calendars", nil, nil)
}

// GetCalendar returns one calendar integration
func (c *Client) GetCalendar(ctx context.Context, calendarID string) (json.RawMessage, error) {
	return c.doRaw(ctx, "getCalendar", http.MethodGet, "/calendars/"+url.PathEscape(calendarID), nil, nil)
}

// DeleteCalendar removes a calendar integration
func (c *Client) DeleteCalendar(ctx context.Context, calendarID string) error {
	return c.do(ctx, "deleteCalendar", http.MethodDelete, "/calendars/"+url.PathEscape(calendarID), nil, nil, nil)
}

// UpdateCalendar changes the supplied fields of a calendar integration
func (c *Client) UpdateCalendar(ctx context.Context, calendarID string, req UpdateCalendarRequest) (json.RawMessage, error) {
	return c.doRaw(ctx, "updateCalendar", http.MethodPatch, "/calendars/"+url.PathEscape(calendarID), nil, req)
}

// ResyncAllCalendars triggers a resync of every calendar integration
func (c *Client) ResyncAllCalendars(ctx context.Context) (json.RawMessage, error) {
	return c.doRaw(ctx, "resyncAllCalendars", http.MethodPost, "/calendars/resync_all", nil, nil)
}

// ListCalendarEvents lists the events of a calendar
func (c *Client) ListCalendarEvents(ctx context.Context, params ListEventsParams) (json.RawMessage, error) {
	return c.doRaw(ctx, "listCalendarEvents", http.MethodGet, "/calendar_events", params.Values(), nil)
}

// ScheduleCalendarRecordEvent schedules a bot to record an event, and
// every occurrence of a recurring event when allOccurrences is set.
func (c *Client) ScheduleCalendarRecordEvent(ctx context.Context, eventID string, allOccurrences bool, req ScheduleRecordRequest) (json.RawMessage, error) {
	return c.doRaw(ctx, "scheduleCalendarRecordEvent", http.MethodPost,
		"/calendar_events/"+url.PathEscape(eventID)+"/bot", occurrencesQuery(allOccurrences), req)
}

// UnscheduleCalendarRecordEvent cancels a scheduled recording
func (c *Client) UnscheduleCalendarRecordEvent(ctx context.Context, eventID string, allOccurrences bool) (json.RawMessage, error) {
	return c.doRaw(ctx, "unscheduleCalendarRecordEvent", http.MethodDelete,
		"/calendar_events/"+url.PathEscape(eventID)+"/bot", occurrencesQuery(allOccurrences), nil)
}
