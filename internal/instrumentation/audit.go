package instrumentation

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meetingbaas/meeting-mcp/internal/logging"
)

// ToolInvocation is the record of one MCP tool call. It is filled in by the
// instrumented handler, shared with the tool span and written to the audit log.
// The caller's API key is only ever held masked.
type ToolInvocation struct {
	ID        string
	Tool      string
	Service   string
	Operation string

	MaskedKey string
	KeyFamily string

	// Arguments are sanitized at construction
	Arguments map[string]any

	Started  time.Time
	Duration time.Duration
	Failed   bool
	Error    string

	TraceID string
	SpanID  string
}

// InvocationOptions describe a tool call before it runs
type InvocationOptions struct {
	Service   string
	Operation string
	APIKey    string
	Arguments map[string]any
}

// NewToolInvocation starts the record of a call to tool
func NewToolInvocation(tool string, opts InvocationOptions) *ToolInvocation {
	ti := &ToolInvocation{
		ID:        uuid.NewString(),
		Tool:      tool,
		Service:   opts.Service,
		Operation: opts.Operation,
		Arguments: SanitizeArguments(opts.Arguments),
		Started:   time.Now(),
	}
	if opts.APIKey != "" {
		ti.MaskedKey = logging.MaskAPIKey(opts.APIKey)
		ti.KeyFamily = KeyFamily(opts.APIKey)
	}
	return ti
}

// Finish stops the clock. A call fails when it returned a Go error or an
// error result; message carries the error text for either case.
func (ti *ToolInvocation) Finish(failed bool, message string) {
	ti.Duration = time.Since(ti.Started)
	ti.Failed = failed
	if failed {
		ti.Error = message
	}
}

// Status returns the status label value of the call
func (ti *ToolInvocation) Status() string {
	if ti.Failed {
		return StatusError
	}
	return StatusSuccess
}

func (ti *ToolInvocation) logArgs(includeArguments bool) []any {
	args := []any{
		slog.String("invocation_id", ti.ID),
		slog.String("tool", ti.Tool),
		slog.Duration("duration", ti.Duration),
		slog.String("status", ti.Status()),
	}

	optional := []struct{ key, value string }{
		{"service", ti.Service},
		{"operation", ti.Operation},
		{"key_family", ti.KeyFamily},
		{"api_key", ti.MaskedKey},
		{"trace_id", ti.TraceID},
		{"span_id", ti.SpanID},
		{"error", ti.Error},
	}
	for _, o := range optional {
		if o.value != "" {
			args = append(args, slog.String(o.key, o.value))
		}
	}

	if includeArguments && len(ti.Arguments) > 0 {
		args = append(args, slog.Any("arguments", ti.Arguments))
	}
	return args
}

// secretArgument classifies argument names: keys are masked, other secrets
// are reduced to their length.
func secretArgument(name string) (isKey, isSecret bool) {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "apikey") || strings.Contains(lower, "api_key") {
		return true, false
	}
	return false, strings.Contains(lower, "secret") || strings.Contains(lower, "token")
}

// SanitizeArguments returns a copy of args safe for logging. Only string
// values are rewritten.
func SanitizeArguments(args map[string]any) map[string]any {
	if args == nil {
		return nil
	}

	out := make(map[string]any, len(args))
	for name, value := range args {
		out[name] = value

		s, ok := value.(string)
		if !ok {
			continue
		}
		switch isKey, isSecret := secretArgument(name); {
		case isKey:
			out[name] = logging.MaskAPIKey(s)
		case isSecret:
			out[name] = logging.SanitizeToken(s)
		}
	}
	return out
}

// AuditLogger writes one record per completed tool call
type AuditLogger struct {
	logger *slog.Logger
	config AuditLoggingConfig
}

// NewAuditLogger returns an audit logger writing to logger, or to the
// default logger when nil.
func NewAuditLogger(logger *slog.Logger, config AuditLoggingConfig) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{logger: logger.With("component", "audit"), config: config}
}

// LogToolInvocation writes ti at Info, or at Warn when the call failed
func (al *AuditLogger) LogToolInvocation(ti *ToolInvocation) {
	if al == nil || !al.config.Enabled {
		return
	}

	args := ti.logArgs(al.config.IncludeArguments)
	if ti.Failed {
		al.logger.Warn("tool_failed", args...)
		return
	}
	al.logger.Info("tool_executed", args...)
}
