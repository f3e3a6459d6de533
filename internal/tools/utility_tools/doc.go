// Package utility_tools provides MCP tools that do not call the Meeting BaaS
// platform. They are useful for checking that a client can reach the server.
package utility_tools
