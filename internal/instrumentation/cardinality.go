package instrumentation

import "strings"

// Cardinality management helpers for metrics.
//
// API keys must never become label values: they are secrets, and one label
// value per customer would explode the series count. KeyFamily reduces a
// key to its leading segment, which identifies the key type only.

// KeyFamily returns the first underscore-delimited segment of an API key.
//
// Example:
//
//	KeyFamily("mb_live_abc123")  // "mb"
//	KeyFamily("abc123")          // "unknown"
//	KeyFamily("")                // "unknown"
func KeyFamily(apiKey string) string {
	prefix, _, found := strings.Cut(apiKey, "_")
	if !found || prefix == "" {
		return "unknown"
	}
	return prefix
}

// Status label values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Service label values, one per Meeting BaaS API area
const (
	ServiceBots      = "bots"
	ServiceCalendars = "calendars"
	ServiceSpeaking  = "speaking"
	ServiceLocal     = "local"
)

// Operation label values
const (
	OperationJoin         = "join"
	OperationLeave        = "leave"
	OperationList         = "list"
	OperationGet          = "get"
	OperationCreate       = "create"
	OperationUpdate       = "update"
	OperationDelete       = "delete"
	OperationResync       = "resync"
	OperationSchedule     = "schedule"
	OperationUnschedule   = "unschedule"
	OperationRetranscribe = "retranscribe"
	OperationEcho         = "echo"
)
