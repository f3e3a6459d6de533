// Package cmd implements the command-line interface for meeting-mcp.
//
// This package provides the following commands:
//   - serve: Start the MCP server over stdio, streamable HTTP or SSE
//   - generate-docs: Generate markdown documentation for all MCP tools
//   - personas: List the personas available to speaking bots
//   - version: Display version information
//
// The serve command is the default command when no subcommand is specified.
package cmd
