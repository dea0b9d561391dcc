package greeting

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	toolhandler "github.com/w-h-a/assistant/tool_handler"
)

const Name = "generate_greeting"

var ErrEmptyName = errors.New("Name cannot be empty.")

type input struct {
	Name  string `mapstructure:"name"`
	Style string `mapstructure:"style"`
}

type greetingToolHandler struct {
	options toolhandler.Options
}

func (th *greetingToolHandler) Spec() toolhandler.ToolSpec {
	return toolhandler.ToolSpec{
		Name:        Name,
		Description: "Generate a short greeting for a person in a friendly or professional tone.",
		Parameters: []toolhandler.Parameter{
			{
				Name:        "name",
				Type:        toolhandler.TypeString,
				Description: "Name of the person to greet.",
				Required:    true,
			},
			{
				Name:        "style",
				Type:        toolhandler.TypeString,
				Description: "Tone of the greeting.",
				Default:     "friendly",
				Enum:        []string{"friendly", "professional"},
			},
		},
	}
}

func (th *greetingToolHandler) Invoke(_ context.Context, args toolhandler.Arguments) (string, error) {
	var in input
	if err := args.Decode(&in); err != nil {
		return "", err
	}

	name := capitalize(strings.TrimSpace(in.Name))
	if len(name) == 0 {
		return "", ErrEmptyName
	}

	if in.Style == "professional" {
		return "Good day, " + name + ".", nil
	}

	return "Hello " + name + "! Hope you're doing well.", nil
}

// capitalize upper-cases the first rune only; "mcDonald" becomes "McDonald".
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return strings.ToUpper(string(r)) + s[size:]
}

func NewToolHandler(opts ...toolhandler.Option) toolhandler.ToolHandler {
	return &greetingToolHandler{
		options: toolhandler.NewOptions(opts...),
	}
}
