package agent

import (
	"github.com/rs/zerolog"
	"github.com/w-h-a/assistant/auditor"
)

const defaultMaxIterations = 8

type Option func(*Options)

type Options struct {
	Logger        zerolog.Logger
	Auditor       auditor.Auditor
	MaxIterations int
}

func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

func WithAuditor(a auditor.Auditor) Option {
	return func(o *Options) {
		o.Auditor = a
	}
}

func WithMaxIterations(n int) Option {
	return func(o *Options) {
		o.MaxIterations = n
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Logger:        zerolog.Nop(),
		Auditor:       auditor.Nop(),
		MaxIterations: defaultMaxIterations,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.MaxIterations <= 0 {
		options.MaxIterations = defaultMaxIterations
	}
	if options.Auditor == nil {
		options.Auditor = auditor.Nop()
	}
	return options
}
