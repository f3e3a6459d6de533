// Package speaking_tools provides MCP tools for speaking bots, voice AI
// agents that take part in a meeting.
//
// Speaking bots are served by a separate API at https://speaking.<domain>.
// Callers pass their API key with every call. On failure the tools return
// a curl command reproducing the request, with the key masked.
package speaking_tools
