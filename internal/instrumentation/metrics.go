package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
const (
	attrMethod    = "method"
	attrPath      = "path"
	attrStatus    = "status"
	attrOperation = "operation"
	attrService   = "service"
	attrTool      = "tool"
	attrKeyFamily = "key_family"
)

var (
	httpBuckets = []float64{0.001, 0.01, 0.1, 0.5, 1, 2.5, 5, 10}

	// Meeting BaaS calls include bot joins, which can take tens of seconds
	apiBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}
)

// Metrics records the server's request, tool and Meeting BaaS API metrics.
// The zero value records nothing.
type Metrics struct {
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram

	apiOperationsTotal   metric.Int64Counter
	apiOperationDuration metric.Float64Histogram

	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram
	toolsInFlight        metric.Int64UpDownCounter

	detailedLabels bool
}

// NewMetrics creates every instrument on meter. detailedLabels adds the API
// key family to tool metrics.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{detailedLabels: detailedLabels}

	counters := []struct {
		target *metric.Int64Counter
		name   string
		desc   string
		unit   string
	}{
		{&m.httpRequestsTotal, "http_requests_total", "Total number of HTTP requests", "{request}"},
		{&m.apiOperationsTotal, "baas_api_operations_total", "Total number of Meeting BaaS API operations", "{operation}"},
		{&m.toolInvocationsTotal, "mcp_tool_invocations_total", "Total number of MCP tool invocations", "{invocation}"},
	}
	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name, metric.WithDescription(c.desc), metric.WithUnit(c.unit))
		if err != nil {
			return nil, fmt.Errorf("failed to create %s counter: %w", c.name, err)
		}
		*c.target = counter
	}

	histograms := []struct {
		target  *metric.Float64Histogram
		name    string
		desc    string
		buckets []float64
	}{
		{&m.httpRequestDuration, "http_request_duration_seconds", "HTTP request duration in seconds", httpBuckets},
		{&m.apiOperationDuration, "baas_api_operation_duration_seconds", "Meeting BaaS API operation duration in seconds", apiBuckets},
		{&m.toolDuration, "mcp_tool_duration_seconds", "MCP tool execution duration in seconds", apiBuckets},
	}
	for _, h := range histograms {
		histogram, err := meter.Float64Histogram(h.name,
			metric.WithDescription(h.desc),
			metric.WithUnit("s"),
			metric.WithExplicitBucketBoundaries(h.buckets...),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s histogram: %w", h.name, err)
		}
		*h.target = histogram
	}

	var err error
	m.toolsInFlight, err = meter.Int64UpDownCounter("mcp_tools_in_flight",
		metric.WithDescription("Number of MCP tool invocations currently running"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tools_in_flight gauge: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records an inbound HTTP request
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m.httpRequestsTotal == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	)
	m.httpRequestsTotal.Add(ctx, 1, attrs)
	m.httpRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordAPIOperation records one Meeting BaaS API operation. service is one
// of the Service* values and operation one of the Operation* values.
func (m *Metrics) RecordAPIOperation(ctx context.Context, service, operation, status string, duration time.Duration) {
	if m.apiOperationsTotal == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrService, service),
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	)
	m.apiOperationsTotal.Add(ctx, 1, attrs)
	m.apiOperationDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordToolInvocationWithKey records a completed MCP tool invocation and,
// with detailed labels, the family of the API key behind it. The key itself
// is never recorded.
func (m *Metrics) RecordToolInvocationWithKey(ctx context.Context, toolName, status, apiKey string, duration time.Duration) {
	if m.toolInvocationsTotal == nil {
		return
	}

	kvs := []attribute.KeyValue{
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	}
	if m.detailedLabels && apiKey != "" {
		kvs = append(kvs, attribute.String(attrKeyFamily, KeyFamily(apiKey)))
	}

	attrs := metric.WithAttributes(kvs...)
	m.toolInvocationsTotal.Add(ctx, 1, attrs)
	m.toolDuration.Record(ctx, duration.Seconds(), attrs)
}

// ToolStarted marks a tool invocation as running. Every call must be paired
// with ToolFinished for the same tool.
func (m *Metrics) ToolStarted(ctx context.Context, toolName string) {
	if m.toolsInFlight == nil {
		return
	}
	m.toolsInFlight.Add(ctx, 1, metric.WithAttributes(attribute.String(attrTool, toolName)))
}

// ToolFinished marks a running tool invocation as done
func (m *Metrics) ToolFinished(ctx context.Context, toolName string) {
	if m.toolsInFlight == nil {
		return
	}
	m.toolsInFlight.Add(ctx, -1, metric.WithAttributes(attribute.String(attrTool, toolName)))
}
