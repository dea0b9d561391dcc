package tracing

import (
	"context"

	"github.com/w-h-a/assistant/auditor"
	"go.opentelemetry.io/otel/trace"
)

type tracerProviderKey struct{}

func WithTracerProvider(tp trace.TracerProvider) auditor.Option {
	return func(o *auditor.Options) {
		o.Context = context.WithValue(o.Context, tracerProviderKey{}, tp)
	}
}

func TracerProviderFrom(ctx context.Context) (trace.TracerProvider, bool) {
	tp, ok := ctx.Value(tracerProviderKey{}).(trace.TracerProvider)
	return tp, ok
}
