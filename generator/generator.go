package generator

import (
	"context"

	toolhandler "github.com/w-h-a/assistant/tool_handler"
)

// Generator is the reasoning layer. Given the transcript and the advertised
// tools it returns either final text or at least one tool call.
type Generator interface {
	Generate(ctx context.Context, messages []Message, tools []toolhandler.ToolSpec) (Reply, error)
}
