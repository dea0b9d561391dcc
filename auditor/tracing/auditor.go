package tracing

import (
	"context"
	"time"

	"github.com/w-h-a/assistant/auditor"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/w-h-a/assistant/auditor/tracing"

type otelAuditor struct {
	options auditor.Options
	tracer  trace.Tracer
}

// Audit records the dispatch as a span ending now and starting Duration ago.
func (a *otelAuditor) Audit(ctx context.Context, entry auditor.Entry) {
	end := time.Now()

	attrs := []attribute.KeyValue{
		attribute.String("tool.name", entry.ToolName),
		attribute.String("tool.call_id", entry.CallId),
		attribute.Bool("tool.ok", entry.Result.Ok()),
	}
	for _, arg := range entry.Arguments.List() {
		attrs = append(attrs, attribute.String("tool.argument."+arg.Name, arg.Value.String()))
	}

	_, span := a.tracer.Start(
		ctx,
		"tool "+entry.ToolName,
		trace.WithTimestamp(end.Add(-entry.Duration)),
		trace.WithAttributes(attrs...),
	)

	if entry.Result.Ok() {
		span.SetStatus(codes.Ok, "")
	} else {
		span.SetAttributes(attribute.String("tool.error_kind", string(entry.Result.Err.Kind)))
		span.SetStatus(codes.Error, entry.Result.Err.Message)
	}

	span.End(trace.WithTimestamp(end))
}

func NewAuditor(opts ...auditor.Option) auditor.Auditor {
	options := auditor.NewOptions(opts...)

	tp := otel.GetTracerProvider()
	if p, ok := TracerProviderFrom(options.Context); ok {
		tp = p
	}

	return &otelAuditor{
		options: options,
		tracer:  tp.Tracer(instrumentationName),
	}
}
