package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/w-h-a/assistant/generator"
	toolhandler "github.com/w-h-a/assistant/tool_handler"
)

const defaultModel = "claude-3-5-haiku-latest"

type anthropicGenerator struct {
	options generator.Options
	client  *anthropic.Client
}

func (g *anthropicGenerator) Generate(ctx context.Context, messages []generator.Message, tools []toolhandler.ToolSpec) (generator.Reply, error) {
	req := anthropic.MessageNewParams{
		Model:       anthropic.Model(g.options.Model),
		MaxTokens:   int64(g.options.MaxTokens),
		Messages:    toMessageParams(messages),
		Tools:       toTools(tools),
		Temperature: anthropic.Float(g.options.Temperature),
	}
	if len(g.options.SystemPrompt) > 0 {
		req.System = []anthropic.TextBlockParam{
			{Text: g.options.SystemPrompt},
		}
	}

	rsp, err := g.client.Messages.New(ctx, req)
	if err != nil {
		return generator.Reply{}, err
	}

	var b strings.Builder
	reply := generator.Reply{}
	for _, content := range rsp.Content {
		switch block := content.AsAny().(type) {
		case anthropic.TextBlock:
			b.WriteString(block.Text)
		case anthropic.ToolUseBlock:
			reply.ToolCalls = append(reply.ToolCalls, toolhandler.ToolRequest{
				Id:        block.ID,
				Name:      block.Name,
				Arguments: json.RawMessage(block.Input),
			})
		}
	}
	reply.Content = b.String()

	if len(reply.Content) == 0 && !reply.HasToolCalls() {
		return generator.Reply{}, errors.New("no response from Anthropic")
	}

	return reply, nil
}

// toMessageParams folds consecutive tool turns into one user message of
// tool_result blocks, which is how the Messages API expects them.
func toMessageParams(messages []generator.Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(messages))

	var results []anthropic.ContentBlockParamUnion
	flush := func() {
		if len(results) > 0 {
			out = append(out, anthropic.NewUserMessage(results...))
			results = nil
		}
	}

	for _, m := range messages {
		switch m.Role {
		case generator.RoleUser:
			flush()
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		case generator.RoleAssistant:
			flush()
			blocks := []anthropic.ContentBlockParamUnion{}
			if len(m.Content) > 0 {
				blocks = append(blocks, anthropic.NewTextBlock(m.Content))
			}
			for _, call := range m.ToolCalls {
				blocks = append(blocks, anthropic.NewToolUseBlock(call.Id, rawInput(call.Arguments), call.Name))
			}
			out = append(out, anthropic.NewAssistantMessage(blocks...))
		case generator.RoleTool:
			results = append(results, anthropic.NewToolResultBlock(m.ToolCallId, m.Content, m.IsError))
		}
	}
	flush()

	return out
}

func toTools(specs []toolhandler.ToolSpec) []anthropic.ToolUnionParam {
	if len(specs) == 0 {
		return nil
	}

	tools := make([]anthropic.ToolUnionParam, 0, len(specs))
	for _, spec := range specs {
		schema := spec.InputSchema()
		tools = append(tools, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        spec.Name,
				Description: anthropic.String(spec.Description),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: schema["properties"],
					Required:   spec.RequiredNames(),
				},
			},
		})
	}

	return tools
}

// rawInput keeps the model's own arguments when echoing a tool_use block
// back; the API rejects anything that is not a JSON object.
func rawInput(raw json.RawMessage) json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || !json.Valid(raw) || raw[0] != '{' {
		return json.RawMessage("{}")
	}
	return raw
}

func NewGenerator(opts ...generator.Option) generator.Generator {
	options := generator.NewOptions(opts...)

	if len(options.Model) == 0 {
		options.Model = defaultModel
	}

	g := &anthropicGenerator{
		options: options,
	}

	clientOpts := []anthropicopt.RequestOption{
		anthropicopt.WithAPIKey(options.ApiKey),
	}
	if len(options.BaseURL) > 0 {
		clientOpts = append(clientOpts, anthropicopt.WithBaseURL(options.BaseURL))
	}

	client := anthropic.NewClient(clientOpts...)

	g.client = &client

	return g
}
