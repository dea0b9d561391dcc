package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const serviceName = "assistant"

// TracerProvider exports spans as JSON lines to TraceFile. It returns nil and
// a no-op shutdown when tracing is off.
func (c *Config) TracerProvider() (*sdktrace.TracerProvider, func(context.Context) error, error) {
	if len(strings.TrimSpace(c.TraceFile)) == 0 {
		return nil, func(context.Context) error { return nil }, nil
	}

	f, err := os.OpenFile(c.TraceFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, &StartupConfigError{Message: fmt.Sprintf("failed to open trace file %s: %v", c.TraceFile, err)}
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(f))
	if err != nil {
		f.Close()
		return nil, nil, &StartupConfigError{Message: fmt.Sprintf("failed to create trace exporter: %v", err)}
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
	)

	shutdown := func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), f.Close())
	}

	return tp, shutdown, nil
}
