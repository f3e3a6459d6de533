package logging

import (
	"fmt"
	"log/slog"
	"strings"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation  = "operation"
	KeyService    = "service"
	KeyTool       = "tool"
	KeyBotID      = "bot_id"
	KeyCalendarID = "calendar_id"
	KeyEventID    = "event_uuid"
	KeyMeetingURL = "meeting_url"
	KeyAPIKey     = "api_key"
	KeyStatusCode = "status_code"
	KeyError      = "error"
)

// APIKeyMaskLength is the number of mask characters appended to a masked API key.
const APIKeyMaskLength = 20

// apiKeyPrefixSegments is how many underscore-delimited segments of an API key
// identify its family and may be shown.
const apiKeyPrefixSegments = 2

// WithTool returns a logger with the tool attribute set.
func WithTool(logger *slog.Logger, tool string) *slog.Logger {
	return logger.With(slog.String(KeyTool, tool))
}

// WithService returns a logger with the service attribute set.
func WithService(logger *slog.Logger, service string) *slog.Logger {
	return logger.With(slog.String(KeyService, service))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Tool returns a slog attribute for the tool name.
func Tool(tool string) slog.Attr {
	return slog.String(KeyTool, tool)
}

// BotID returns a slog attribute for a bot identifier.
func BotID(id string) slog.Attr {
	return slog.String(KeyBotID, id)
}

// CalendarID returns a slog attribute for a calendar identifier.
func CalendarID(id string) slog.Attr {
	return slog.String(KeyCalendarID, id)
}

// EventID returns a slog attribute for a calendar event identifier.
func EventID(id string) slog.Attr {
	return slog.String(KeyEventID, id)
}

// MeetingURL returns a slog attribute for a meeting URL.
func MeetingURL(url string) slog.Attr {
	return slog.String(KeyMeetingURL, url)
}

// StatusCode returns a slog attribute for an HTTP status code.
func StatusCode(code int) slog.Attr {
	return slog.Int(KeyStatusCode, code)
}

// APIKey returns a slog attribute carrying the masked form of an API key.
func APIKey(key string) slog.Attr {
	return slog.String(KeyAPIKey, MaskAPIKey(key))
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that will be omitted from output.
// This allows safely passing Err(maybeNilErr) without adding empty attributes.
//
// Usage:
//
//	logger.Info("operation", logging.Err(err))  // Safe even if err is nil
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// MaskAPIKey redacts a Meeting BaaS API key while keeping enough of it to tell
// which key family was used.
//
// Keys are underscore-delimited. The first two segments are kept and the rest
// is replaced by a fixed-length mask, so "abc_123_secretvalue" becomes
// "abc_123_********************". Keys with fewer segments keep strictly fewer
// segments than they have, so the final segment is never shown:
//
//	MaskAPIKey("abc_123_secret")  // "abc_123_********************"
//	MaskAPIKey("abc_secret")      // "abc_********************"
//	MaskAPIKey("secret")          // "********************"
//	MaskAPIKey("")                // ""
func MaskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	mask := strings.Repeat("*", APIKeyMaskLength)

	segments := strings.Split(key, "_")
	keep := apiKeyPrefixSegments
	if len(segments)-1 < keep {
		keep = len(segments) - 1
	}
	if keep <= 0 {
		return mask
	}
	return strings.Join(segments[:keep], "_") + "_" + mask
}

// SanitizeToken returns a masked version of a token for logging.
// It returns a length indicator without exposing any token content.
func SanitizeToken(token string) string {
	if token == "" {
		return "<empty>"
	}
	return fmt.Sprintf("[token:%d chars]", len(token))
}
