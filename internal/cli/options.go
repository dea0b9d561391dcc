package cli

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

type Option func(*Options)

type Options struct {
	Input  io.Reader
	Output io.Writer
	Logger zerolog.Logger
}

func WithInput(r io.Reader) Option {
	return func(o *Options) {
		o.Input = r
	}
}

func WithOutput(w io.Writer) Option {
	return func(o *Options) {
		o.Output = w
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Input:  os.Stdin,
		Output: os.Stdout,
		Logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
