package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/assistant/generator"
	"github.com/w-h-a/assistant/internal/service/agent"
	toolhandler "github.com/w-h-a/assistant/tool_handler"
	"github.com/w-h-a/assistant/tool_handler/arithmetic"
	"github.com/w-h-a/assistant/tool_handler/greeting"
)

type scriptedGenerator struct {
	replies []generator.Reply
	calls   int
}

func (g *scriptedGenerator) Generate(_ context.Context, _ []generator.Message, _ []toolhandler.ToolSpec) (generator.Reply, error) {
	if g.calls >= len(g.replies) {
		return generator.Reply{}, errors.New("script exhausted")
	}
	reply := g.replies[g.calls]
	g.calls++
	return reply, nil
}

func handlers() []toolhandler.ToolHandler {
	return []toolhandler.ToolHandler{
		arithmetic.NewToolHandler(),
		greeting.NewToolHandler(),
	}
}

func TestNewRejectsDuplicateTools(t *testing.T) {
	_, err := New(&scriptedGenerator{}, []toolhandler.ToolHandler{
		arithmetic.NewToolHandler(),
		arithmetic.NewToolHandler(),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, agent.ErrDuplicateTool))
}

func TestTools(t *testing.T) {
	a, err := New(&scriptedGenerator{}, handlers())
	require.NoError(t, err)

	specs := a.Tools()
	require.Len(t, specs, 2)
	assert.Equal(t, "perform_arithmetic", specs[0].Name)
	assert.Equal(t, "generate_greeting", specs[1].Name)
}

func TestGenerateWithToolCall(t *testing.T) {
	gen := &scriptedGenerator{replies: []generator.Reply{
		{ToolCalls: []toolhandler.ToolRequest{{
			Id:        "call_1",
			Name:      "perform_arithmetic",
			Arguments: json.RawMessage(`{"first_value": 6, "second_value": 3, "operation": "divide"}`),
		}}},
		{Content: "6 divided by 3 is 2."},
	}}

	a, err := New(gen, handlers())
	require.NoError(t, err)

	ctx := context.Background()
	id, err := a.CreateSession(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{id}, a.ListSessionIds(ctx))

	reply, err := a.Generate(ctx, id, "What is 6 divided by 3?")
	require.NoError(t, err)
	assert.Equal(t, "6 divided by 3 is 2.", reply)

	transcript, err := a.Transcript(ctx, id)
	require.NoError(t, err)
	require.Len(t, transcript, 4)
	assert.Equal(t, generator.RoleUser, transcript[0].Role)
	assert.Equal(t, generator.RoleAssistant, transcript[1].Role)
	assert.Equal(t, generator.RoleTool, transcript[2].Role)
	assert.Equal(t, "Result: 2.0", transcript[2].Content)
	assert.Equal(t, "call_1", transcript[2].ToolCallId)
	assert.Equal(t, generator.RoleAssistant, transcript[3].Role)
}

func TestGenerateUnknownSession(t *testing.T) {
	a, err := New(&scriptedGenerator{}, handlers())
	require.NoError(t, err)

	_, err = a.Generate(context.Background(), "missing", "hello")
	require.Error(t, err)

	_, err = a.Transcript(context.Background(), "missing")
	require.Error(t, err)
}

func TestDeleteSession(t *testing.T) {
	a, err := New(&scriptedGenerator{}, handlers())
	require.NoError(t, err)

	ctx := context.Background()
	id, err := a.CreateSession(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, "main", id)

	a.DeleteSession(ctx, id)
	assert.Empty(t, a.ListSessionIds(ctx))
}
