package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

var exitCommands = []string{"quit", "exit", "q"}

type Responder interface {
	Respond(ctx context.Context, input string) (string, error)
}

type ResponderFunc func(ctx context.Context, input string) (string, error)

func (f ResponderFunc) Respond(ctx context.Context, input string) (string, error) {
	return f(ctx, input)
}

// Loop is the blocking read-eval-print loop. One line is one turn.
type Loop struct {
	responder Responder
	reader    *bufio.Reader
	out       io.Writer
	logger    zerolog.Logger
	prompt    *color.Color
	assistant *color.Color
	failure   *color.Color
}

// Run returns nil when the user exits or input ends. Turn failures are
// printed and never stop the loop; only a failing reader or a cancelled
// context does.
func (l *Loop) Run(ctx context.Context) error {
	fmt.Fprint(l.out, "Welcome! Type 'quit' to exit.\n\n")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		l.prompt.Fprint(l.out, "You: ")

		line, err := l.reader.ReadString('\n')
		eof := errors.Is(err, io.EOF)
		if err != nil && !eof {
			return fmt.Errorf("failed to read input: %w", err)
		}

		input := strings.TrimSpace(line)

		if IsExit(input) || (eof && len(input) == 0) {
			if eof && len(input) == 0 {
				fmt.Fprintln(l.out)
			}
			fmt.Fprintln(l.out, "Goodbye!")
			return nil
		}

		if len(input) > 0 {
			l.turn(ctx, input)
		}

		if eof {
			fmt.Fprintln(l.out, "Goodbye!")
			return nil
		}
	}
}

func (l *Loop) turn(ctx context.Context, input string) {
	reply, err := l.respond(ctx, input)
	if err != nil {
		l.logger.Error().Err(err).Msg("turn failed")
		l.failure.Fprintf(l.out, "[Error] %v\n\n", err)
		return
	}

	fmt.Fprint(l.out, "\n")
	l.assistant.Fprint(l.out, "Assistant: ")
	fmt.Fprintf(l.out, "%s\n\n", reply)
}

func (l *Loop) respond(ctx context.Context, input string) (reply string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()
	return l.responder.Respond(ctx, input)
}

// IsExit reports whether input is an exit keyword, ignoring case and
// surrounding whitespace.
func IsExit(input string) bool {
	return slices.Contains(exitCommands, strings.ToLower(strings.TrimSpace(input)))
}

func New(responder Responder, opts ...Option) *Loop {
	if responder == nil {
		panic("responder is required")
	}

	options := NewOptions(opts...)

	return &Loop{
		responder: responder,
		reader:    bufio.NewReader(options.Input),
		out:       options.Output,
		logger:    options.Logger,
		prompt:    color.New(color.FgGreen, color.Bold),
		assistant: color.New(color.FgBlue, color.Bold),
		failure:   color.New(color.FgRed),
	}
}
