// Package resources provides read-only MCP resources describing the server's
// static catalogs.
//
// Resources:
//   - meetingbaas://personas: the personas accepted by speaking bots
//   - meetingbaas://docs/tools: the API reference page of each documented tool
package resources
