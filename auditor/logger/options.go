package logger

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/w-h-a/assistant/auditor"
)

type loggerKey struct{}

func WithLogger(l zerolog.Logger) auditor.Option {
	return func(o *auditor.Options) {
		o.Context = context.WithValue(o.Context, loggerKey{}, l)
	}
}

func LoggerFrom(ctx context.Context) (zerolog.Logger, bool) {
	l, ok := ctx.Value(loggerKey{}).(zerolog.Logger)
	return l, ok
}
