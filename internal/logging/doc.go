// Package logging provides structured logging utilities for the meeting-mcp server.
//
// All logging goes through the standard library's slog package. This package
// keeps attribute names consistent across tool adapters and API clients and
// provides the helpers used to keep credentials out of log output.
//
// # Usage Patterns
//
// Create a logger scoped to a tool:
//
//	logger := logging.WithTool(slog.Default(), "joinMeeting")
//	logger.Debug("attempting to join meeting", logging.MeetingURL(url))
//
// Never log an API key directly; mask it first:
//
//	logger.Info("using api key", logging.APIKey(key))
//
// # Security Considerations
//
//   - API keys are reduced to their non-secret prefix with MaskAPIKey
//   - Bearer tokens are reduced to a length indicator with SanitizeToken
package logging
