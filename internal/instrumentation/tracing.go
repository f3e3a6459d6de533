package instrumentation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName names the tracer of every tool span
const TracerName = "github.com/meetingbaas/meeting-mcp"

// Span attribute keys
const (
	SpanAttrTool         = attribute.Key("mcp.tool")
	SpanAttrInvocationID = attribute.Key("mcp.invocation_id")
	SpanAttrStatus       = attribute.Key("mcp.status")
	SpanAttrService      = attribute.Key("baas.service")
	SpanAttrOperation    = attribute.Key("baas.operation")
	SpanAttrKeyFamily    = attribute.Key("baas.key_family")
)

// ToolSpan is the server span around one tool call
type ToolSpan struct {
	span trace.Span
}

// spanAttributes returns the attributes of ti known before the call runs.
// Empty values are left out.
func spanAttributes(ti *ToolInvocation) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		SpanAttrTool.String(ti.Tool),
		SpanAttrInvocationID.String(ti.ID),
	}
	for key, value := range map[attribute.Key]string{
		SpanAttrService:   ti.Service,
		SpanAttrOperation: ti.Operation,
		SpanAttrKeyFamily: ti.KeyFamily,
	} {
		if value != "" {
			attrs = append(attrs, key.String(value))
		}
	}
	return attrs
}

// StartToolSpan starts the tool.<name> span for ti using the global tracer
// provider and copies the span's trace and span IDs into ti.
func StartToolSpan(ctx context.Context, ti *ToolInvocation) (context.Context, ToolSpan) {
	tracer := otel.GetTracerProvider().Tracer(TracerName)
	ctx, span := tracer.Start(ctx, "tool."+ti.Tool,
		trace.WithAttributes(spanAttributes(ti)...),
		trace.WithSpanKind(trace.SpanKindServer),
	)

	if sc := span.SpanContext(); sc.IsValid() {
		ti.TraceID = sc.TraceID().String()
		ti.SpanID = sc.SpanID().String()
	}
	return ctx, ToolSpan{span: span}
}

// End sets the span status from the finished invocation and ends the span.
// err, when set, is also recorded as a span event.
func (s ToolSpan) End(ti *ToolInvocation, err error) {
	s.span.SetAttributes(SpanAttrStatus.String(ti.Status()))
	if err != nil {
		s.span.RecordError(err)
	}
	if ti.Failed {
		s.span.SetStatus(codes.Error, ti.Error)
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.End()
}
