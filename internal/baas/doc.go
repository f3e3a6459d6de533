// Package baas is an HTTP client for the Meeting BaaS REST API.
//
// The client covers the bot endpoints (join, leave, meeting data, data
// deletion, retranscription, listing) and the calendar endpoints
// (integrations, events, scheduled recordings). Every request carries the
// account API key in the x-meeting-baas-api-key header.
//
// Example usage:
//
//	client, err := baas.NewClient(apiKey, baas.WithBaseURL(baas.APIBaseURL("", "")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := client.JoinMeeting(ctx, baas.JoinRequest{MeetingURL: "https://meet.google.com/abc"})
//	if err != nil {
//	    var apiErr *baas.APIError
//	    if errors.As(err, &apiErr) {
//	        log.Printf("rejected with status %d: %s", apiErr.StatusCode, apiErr.Message)
//	    }
//	}
//
// Responses the MCP tools only relay are returned as json.RawMessage so the
// platform's field order and any new fields survive untouched.
package baas
