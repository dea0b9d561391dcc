package openai

import (
	"context"
	"encoding/json"
	"errors"
	"math"

	"github.com/sashabaranov/go-openai"
	"github.com/w-h-a/assistant/generator"
	toolhandler "github.com/w-h-a/assistant/tool_handler"
)

const defaultModel = "gpt-4o-mini"

type openAIGenerator struct {
	options generator.Options
	client  *openai.Client
}

func (g *openAIGenerator) Generate(ctx context.Context, messages []generator.Message, tools []toolhandler.ToolSpec) (generator.Reply, error) {
	req := openai.ChatCompletionRequest{
		Model:       g.options.Model,
		Messages:    toChatMessages(g.options.SystemPrompt, messages),
		Tools:       toTools(tools),
		Temperature: temperature(g.options.Temperature),
	}
	if g.options.MaxTokens > 0 {
		req.MaxTokens = g.options.MaxTokens
	}

	rsp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return generator.Reply{}, err
	}

	if len(rsp.Choices) == 0 {
		return generator.Reply{}, errors.New("no response from OpenAI")
	}

	msg := rsp.Choices[0].Message

	reply := generator.Reply{Content: msg.Content}
	for _, call := range msg.ToolCalls {
		reply.ToolCalls = append(reply.ToolCalls, toolhandler.ToolRequest{
			Id:        call.ID,
			Name:      call.Function.Name,
			Arguments: json.RawMessage(call.Function.Arguments),
		})
	}

	if len(reply.Content) == 0 && !reply.HasToolCalls() {
		return generator.Reply{}, errors.New("no response from OpenAI")
	}

	return reply, nil
}

func toChatMessages(systemPrompt string, messages []generator.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages)+1)

	if len(systemPrompt) > 0 {
		out = append(out, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}

	for _, m := range messages {
		switch m.Role {
		case generator.RoleUser:
			out = append(out, openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleUser,
				Content: m.Content,
			})
		case generator.RoleAssistant:
			msg := openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: m.Content,
			}
			for _, call := range m.ToolCalls {
				msg.ToolCalls = append(msg.ToolCalls, openai.ToolCall{
					ID:   call.Id,
					Type: openai.ToolTypeFunction,
					Function: openai.FunctionCall{
						Name:      call.Name,
						Arguments: string(call.Arguments),
					},
				})
			}
			out = append(out, msg)
		case generator.RoleTool:
			out = append(out, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    m.Content,
				ToolCallID: m.ToolCallId,
			})
		}
	}

	return out
}

func toTools(specs []toolhandler.ToolSpec) []openai.Tool {
	if len(specs) == 0 {
		return nil
	}

	tools := make([]openai.Tool, 0, len(specs))
	for _, spec := range specs {
		tools = append(tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        spec.Name,
				Description: spec.Description,
				Parameters:  spec.InputSchema(),
			},
		})
	}

	return tools
}

// temperature maps 0 to the smallest positive float32 because the client
// drops a zero temperature from the request body.
func temperature(t float64) float32 {
	if t <= 0 {
		return math.SmallestNonzeroFloat32
	}
	return float32(t)
}

func NewGenerator(opts ...generator.Option) generator.Generator {
	options := generator.NewOptions(opts...)

	if len(options.Model) == 0 {
		options.Model = defaultModel
	}

	g := &openAIGenerator{
		options: options,
	}

	config := openai.DefaultConfig(options.ApiKey)
	if len(options.BaseURL) > 0 {
		config.BaseURL = options.BaseURL
	}

	g.client = openai.NewClientWithConfig(config)

	return g
}
