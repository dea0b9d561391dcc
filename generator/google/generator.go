package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"github.com/w-h-a/assistant/generator"
	toolhandler "github.com/w-h-a/assistant/tool_handler"
	genaiopt "google.golang.org/api/option"
)

const (
	defaultModel = "gemini-1.5-flash"

	roleUser  = "user"
	roleModel = "model"
)

type googleGenerator struct {
	options generator.Options
	client  *genai.Client
}

func (g *googleGenerator) Generate(ctx context.Context, messages []generator.Message, tools []toolhandler.ToolSpec) (generator.Reply, error) {
	if len(messages) == 0 {
		return generator.Reply{}, errors.New("no messages to send to Google")
	}

	if g.client == nil {
		clientOpts := []genaiopt.ClientOption{genaiopt.WithAPIKey(g.options.ApiKey)}
		if len(g.options.BaseURL) > 0 {
			clientOpts = append(clientOpts, genaiopt.WithEndpoint(g.options.BaseURL))
		}
		client, err := genai.NewClient(ctx, clientOpts...)
		if err != nil {
			return generator.Reply{}, fmt.Errorf("failed to create Google client: %w", err)
		}
		g.client = client
	}

	model := g.client.GenerativeModel(g.options.Model)
	g.configure(model, tools)

	history := toContents(messages)
	last := history[len(history)-1]

	cs := model.StartChat()
	cs.History = history[:len(history)-1]

	rsp, err := cs.SendMessage(ctx, last.Parts...)
	if err != nil {
		return generator.Reply{}, err
	}

	return toReply(rsp)
}

func (g *googleGenerator) configure(model *genai.GenerativeModel, tools []toolhandler.ToolSpec) {
	model.SetTemperature(float32(g.options.Temperature))
	if g.options.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(g.options.MaxTokens))
	}
	if len(g.options.SystemPrompt) > 0 {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(g.options.SystemPrompt)}}
	}
	if decls := toFunctionDeclarations(tools); len(decls) > 0 {
		model.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}
}

// toReply joins the text parts of the first candidate and turns its function
// calls into tool requests. Gemini does not id its calls, so ids are minted.
func toReply(rsp *genai.GenerateContentResponse) (generator.Reply, error) {
	if rsp == nil || len(rsp.Candidates) == 0 || rsp.Candidates[0].Content == nil || len(rsp.Candidates[0].Content.Parts) == 0 {
		return generator.Reply{}, errors.New("no response from Google")
	}

	var b strings.Builder
	reply := generator.Reply{}
	for _, part := range rsp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			b.WriteString(string(p))
		case genai.FunctionCall:
			args, err := json.Marshal(p.Args)
			if err != nil {
				return generator.Reply{}, fmt.Errorf("failed to encode arguments for %s: %w", p.Name, err)
			}
			reply.ToolCalls = append(reply.ToolCalls, toolhandler.ToolRequest{
				Id:        uuid.New().String(),
				Name:      p.Name,
				Arguments: args,
			})
		}
	}
	reply.Content = b.String()

	if len(reply.Content) == 0 && !reply.HasToolCalls() {
		return generator.Reply{}, errors.New("no response from Google")
	}

	return reply, nil
}

// toContents maps the transcript onto Gemini's two roles. Tool results become
// function responses in a user turn, merged when they follow each other.
func toContents(messages []generator.Message) []*genai.Content {
	out := make([]*genai.Content, 0, len(messages))

	for _, m := range messages {
		switch m.Role {
		case generator.RoleUser:
			out = append(out, &genai.Content{Role: roleUser, Parts: []genai.Part{genai.Text(m.Content)}})
		case generator.RoleAssistant:
			parts := []genai.Part{}
			if len(m.Content) > 0 {
				parts = append(parts, genai.Text(m.Content))
			}
			for _, call := range m.ToolCalls {
				args := map[string]any{}
				_ = json.Unmarshal(call.Arguments, &args)
				parts = append(parts, genai.FunctionCall{Name: call.Name, Args: args})
			}
			out = append(out, &genai.Content{Role: roleModel, Parts: parts})
		case generator.RoleTool:
			key := "result"
			if m.IsError {
				key = "error"
			}
			part := genai.FunctionResponse{
				Name:     m.ToolName,
				Response: map[string]any{key: m.Content},
			}
			if n := len(out); n > 0 && out[n-1].Role == roleUser && isFunctionResponse(out[n-1]) {
				out[n-1].Parts = append(out[n-1].Parts, part)
				continue
			}
			out = append(out, &genai.Content{Role: roleUser, Parts: []genai.Part{part}})
		}
	}

	return out
}

func isFunctionResponse(c *genai.Content) bool {
	if len(c.Parts) == 0 {
		return false
	}
	_, ok := c.Parts[0].(genai.FunctionResponse)
	return ok
}

func toFunctionDeclarations(specs []toolhandler.ToolSpec) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(specs))

	for _, spec := range specs {
		schema := &genai.Schema{
			Type:       genai.TypeObject,
			Properties: map[string]*genai.Schema{},
			Required:   spec.RequiredNames(),
		}
		for _, p := range spec.Parameters {
			prop := &genai.Schema{
				Type:        schemaType(p.Type),
				Description: p.Description,
			}
			if len(p.Enum) > 0 {
				prop.Format = "enum"
				prop.Enum = p.Enum
			}
			schema.Properties[p.Name] = prop
		}
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        spec.Name,
			Description: spec.Description,
			Parameters:  schema,
		})
	}

	return decls
}

func schemaType(t toolhandler.ParamType) genai.Type {
	switch t {
	case toolhandler.TypeNumber:
		return genai.TypeNumber
	case toolhandler.TypeInteger:
		return genai.TypeInteger
	case toolhandler.TypeBoolean:
		return genai.TypeBoolean
	}
	return genai.TypeString
}

func NewGenerator(opts ...generator.Option) generator.Generator {
	options := generator.NewOptions(opts...)

	if len(options.Model) == 0 {
		options.Model = defaultModel
	}

	return &googleGenerator{
		options: options,
	}
}
