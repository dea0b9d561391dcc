package assistant

import (
	"context"

	"github.com/w-h-a/assistant/generator"
	"github.com/w-h-a/assistant/internal/service/agent"
	"github.com/w-h-a/assistant/internal/service/session"
	toolhandler "github.com/w-h-a/assistant/tool_handler"
)

const DefaultSystemPrompt = "You are a helpful assistant. Use the available tools for arithmetic and for writing greetings instead of working them out yourself, then answer using the tool results."

type Assistant struct {
	agent   *agent.Service
	session *session.Service
}

func (a *Assistant) CreateSession(ctx context.Context, sessionId string) (string, error) {
	session, err := a.session.CreateSession(ctx, sessionId)
	if err != nil {
		return "", err
	}
	return session.ID(), nil
}

func (a *Assistant) ListSessionIds(ctx context.Context) []string {
	return a.session.ListSessionIds(ctx)
}

func (a *Assistant) DeleteSession(ctx context.Context, id string) {
	a.session.DeleteSession(ctx, id)
}

// Generate runs one turn of the session's conversation and returns the final
// assistant text.
func (a *Assistant) Generate(ctx context.Context, sessionId string, userInput string) (string, error) {
	session, err := a.session.GetSession(ctx, sessionId)
	if err != nil {
		return "", err
	}
	return a.agent.Respond(ctx, session, userInput)
}

// Transcript returns a copy of the session's turns so far.
func (a *Assistant) Transcript(ctx context.Context, sessionId string) ([]generator.Message, error) {
	session, err := a.session.GetSession(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	return session.Messages(), nil
}

func (a *Assistant) Tools() []toolhandler.ToolSpec {
	return a.agent.Catalog().ListSpecs()
}

// New registers the tool handlers once; a duplicate name is an error and
// nothing is built.
func New(
	generator generator.Generator,
	toolHandlers []toolhandler.ToolHandler,
	opts ...agent.Option,
) (*Assistant, error) {
	catalog, err := agent.NewToolCatalog(toolHandlers...)
	if err != nil {
		return nil, err
	}

	dispatcher := agent.NewDispatcher(catalog, opts...)

	return &Assistant{
		agent:   agent.New(generator, catalog, dispatcher, opts...),
		session: session.New(),
	}, nil
}
