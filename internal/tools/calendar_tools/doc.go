// Package calendar_tools provides MCP tools for Meeting BaaS calendar
// integrations.
//
// A calendar integration connects a Google or Microsoft calendar to the
// platform. Its events can then be scheduled for recording, so that a bot
// joins each meeting automatically.
package calendar_tools
