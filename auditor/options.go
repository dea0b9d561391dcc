package auditor

import (
	"context"
	"io"
	"os"
)

type Option func(*Options)

type Options struct {
	Writer  io.Writer
	Context context.Context
}

func WithWriter(w io.Writer) Option {
	return func(o *Options) {
		o.Writer = w
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Writer:  os.Stdout,
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
