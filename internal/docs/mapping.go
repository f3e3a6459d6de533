package docs

import "sort"

// BaseURL is the root of the Meeting BaaS API reference.
const BaseURL = "https://docs.meetingbaas.com/docs/api/reference"

var toolDocURLs = map[string]string{
	// Bot tools
	"joinMeeting":      BaseURL + "/join",
	"leaveMeeting":     BaseURL + "/leave",
	"getMeetingData":   BaseURL + "/get_meeting_data",
	"deleteData":       BaseURL + "/delete_data",
	"botsWithMetadata": BaseURL + "/bots_with_metadata",

	// Calendar tools
	"createCalendar":        BaseURL + "/calendars/create_calendar",
	"listCalendars":         BaseURL + "/calendars/list_calendars",
	"getCalendar":           BaseURL + "/calendars/get_calendar",
	"deleteCalendar":        BaseURL + "/calendars/delete_calendar",
	"resyncAllCalendars":    BaseURL + "/calendars/resync_all_calendars",
	"listEvents":            BaseURL + "/calendars/list_events",
	"scheduleRecordEvent":   BaseURL + "/calendars/schedule_record_event",
	"unscheduleRecordEvent": BaseURL + "/calendars/unschedule_record_event",
	"updateCalendar":        BaseURL + "/calendars/update_calendar",
}

// URLForTool returns the documentation URL for a tool, if one exists.
func URLForTool(name string) (string, bool) {
	url, ok := toolDocURLs[name]
	return url, ok
}

// EnhanceDescription appends the documentation link for the named tool to
// description. The description is returned unchanged for unmapped tools.
func EnhanceDescription(name, description string) string {
	url, ok := toolDocURLs[name]
	if !ok {
		return description
	}
	return description + "\n\nDocumentation: " + url
}

// ToolNames returns the sorted names of every tool with a documentation page.
func ToolNames() []string {
	names := make([]string, 0, len(toolDocURLs))
	for name := range toolDocURLs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
