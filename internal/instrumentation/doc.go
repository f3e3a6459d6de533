// Package instrumentation provides OpenTelemetry metrics, tracing and audit
// logging for the meeting-mcp server.
//
// # Metrics
//
// Server/HTTP Metrics:
//   - http_requests_total: Counter of HTTP requests by method, path, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//
// Meeting BaaS API Metrics:
//   - baas_api_operations_total: Counter of API operations by service, operation, status
//   - baas_api_operation_duration_seconds: Histogram of API operation durations
//
// MCP Tool Metrics:
//   - mcp_tool_invocations_total: Counter of tool invocations by tool name and status
//   - mcp_tool_duration_seconds: Histogram of tool execution durations
//   - mcp_tools_in_flight: Gauge of tool invocations currently running
//
// With METRICS_DETAILED_LABELS=true, tool metrics also carry the key_family
// label (the first segment of the caller's API key, never the key itself).
//
// # Tracing
//
// Every tool call runs inside a tool.<name> server span started from its
// ToolInvocation record. Outbound API calls are child spans created by the
// otelhttp transport of the API clients.
//
// # Audit log
//
// AuditLogger writes one record per tool call with a UUID invocation ID,
// the masked API key and, if enabled, the sanitized arguments.
//
// # Configuration
//
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: prometheus, otlp, stdout (default: prometheus)
//   - TRACING_EXPORTER: otlp, stdout, none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_EXPORTER_OTLP_INSECURE: Use plain HTTP for OTLP (default: false)
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: meeting-mcp)
//   - OTEL_DEPLOYMENT_ENVIRONMENT: deployment.environment resource attribute
//   - METRICS_EXPORT_INTERVAL: Push interval for otlp and stdout (default: 10s)
//   - METRICS_DETAILED_LABELS: Add the key_family label (default: false)
//   - AUDIT_LOGGING_ENABLED, AUDIT_LOGGING_INCLUDE_ARGUMENTS
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	recorder := provider.Metrics()
//	recorder.RecordAPIOperation(ctx, instrumentation.ServiceBots, instrumentation.OperationJoin, "success", time.Since(start))
package instrumentation
