// Package docs maps tool names to their Meeting BaaS API reference pages.
//
// The mapping is static and read-only. EnhanceDescription appends the
// documentation link to a tool description so agents can follow it:
//
//	desc := docs.EnhanceDescription("joinMeeting", "Have a bot join a meeting")
//	// "Have a bot join a meeting\n\nDocumentation: https://docs.meetingbaas.com/..."
//
// Tools without a mapping keep their description unchanged.
package docs
