package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/w-h-a/assistant/generator"
	"github.com/w-h-a/assistant/internal/service/session"
)

type Service struct {
	generator     generator.Generator
	catalog       *ToolCatalog
	dispatcher    *Dispatcher
	logger        zerolog.Logger
	maxIterations int
}

// Respond runs one full turn. The user message, every assistant reply and
// every tool result of the turn are committed to the session together, and
// only if the turn produces a final answer.
func (s *Service) Respond(ctx context.Context, sess *session.Session, userInput string) (string, error) {
	userInput = strings.TrimSpace(userInput)
	if len(userInput) == 0 {
		return "", ErrEmptyInput
	}

	specs := s.catalog.ListSpecs()
	staged := []generator.Message{generator.UserMessage(userInput)}

	for i := 0; i < s.maxIterations; i++ {
		messages := append(sess.Messages(), staged...)

		reply, err := s.generator.Generate(ctx, messages, specs)
		if err != nil {
			return "", fmt.Errorf("reasoning failed: %w", err)
		}

		if !reply.HasToolCalls() {
			staged = append(staged, generator.AssistantMessage(reply))
			sess.Append(staged...)
			s.logger.Debug().Str("session", sess.ID()).Int("iterations", i+1).Int("transcript", sess.Len()).Msg("turn complete")
			return reply.Content, nil
		}

		for j := range reply.ToolCalls {
			if len(reply.ToolCalls[j].Id) == 0 {
				reply.ToolCalls[j].Id = uuid.New().String()
			}
		}
		staged = append(staged, generator.AssistantMessage(reply))

		for _, call := range reply.ToolCalls {
			result := s.dispatcher.Dispatch(ctx, call)
			staged = append(staged, generator.ToolMessage(call, result))
		}
	}

	s.logger.Warn().Str("session", sess.ID()).Int("max_iterations", s.maxIterations).Msg("turn abandoned")

	return "", fmt.Errorf("%w after %d model calls", ErrMaxIterations, s.maxIterations)
}

func (s *Service) Catalog() *ToolCatalog {
	return s.catalog
}

func New(
	generator generator.Generator,
	catalog *ToolCatalog,
	dispatcher *Dispatcher,
	opts ...Option,
) *Service {
	if generator == nil {
		panic("generator is required")
	}

	if catalog == nil {
		panic("catalog is required")
	}

	if dispatcher == nil {
		panic("dispatcher is required")
	}

	options := NewOptions(opts...)

	return &Service{
		generator:     generator,
		catalog:       catalog,
		dispatcher:    dispatcher,
		logger:        options.Logger,
		maxIterations: options.MaxIterations,
	}
}
