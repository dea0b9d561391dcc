package arithmetic

import (
	"context"
	"errors"
	"fmt"

	toolhandler "github.com/w-h-a/assistant/tool_handler"
)

const (
	Name = "perform_arithmetic"

	maxRoundTo = 10
)

var (
	ErrDivideByZero = errors.New("Cannot divide by zero.")
	ErrRoundTo      = fmt.Errorf("round_to must be an integer between 0 and %d.", maxRoundTo)
)

type input struct {
	FirstValue  float64 `mapstructure:"first_value"`
	SecondValue float64 `mapstructure:"second_value"`
	Operation   string  `mapstructure:"operation"`
	RoundTo     *int    `mapstructure:"round_to"`
}

type arithmeticToolHandler struct {
	options toolhandler.Options
}

func (th *arithmeticToolHandler) Spec() toolhandler.ToolSpec {
	return toolhandler.ToolSpec{
		Name:        Name,
		Description: "Perform a basic arithmetic calculation (add, subtract, multiply or divide two numbers), optionally rounding the result.",
		Parameters: []toolhandler.Parameter{
			{
				Name:        "first_value",
				Type:        toolhandler.TypeNumber,
				Description: "Left-hand operand.",
				Required:    true,
			},
			{
				Name:        "second_value",
				Type:        toolhandler.TypeNumber,
				Description: "Right-hand operand.",
				Required:    true,
			},
			{
				Name:        "operation",
				Type:        toolhandler.TypeString,
				Description: "Operation to apply.",
				Default:     "add",
				Enum:        []string{"add", "subtract", "multiply", "divide"},
			},
			{
				Name:        "round_to",
				Type:        toolhandler.TypeInteger,
				Description: "Optional number of decimal places (0-10) to round the result to.",
			},
		},
	}
}

func (th *arithmeticToolHandler) Invoke(_ context.Context, args toolhandler.Arguments) (string, error) {
	var in input
	if err := args.Decode(&in); err != nil {
		return "", err
	}

	if in.Operation == "divide" && in.SecondValue == 0 {
		return "", ErrDivideByZero
	}

	var result float64
	switch in.Operation {
	case "add":
		result = in.FirstValue + in.SecondValue
	case "subtract":
		result = in.FirstValue - in.SecondValue
	case "multiply":
		result = in.FirstValue * in.SecondValue
	case "divide":
		result = in.FirstValue / in.SecondValue
	default:
		return "", fmt.Errorf("unsupported operation %q", in.Operation)
	}

	if in.RoundTo != nil {
		if *in.RoundTo < 0 || *in.RoundTo > maxRoundTo {
			return "", ErrRoundTo
		}
		result = toolhandler.RoundFloat(result, *in.RoundTo)
	}

	return "Result: " + toolhandler.FormatFloat(result), nil
}

func NewToolHandler(opts ...toolhandler.Option) toolhandler.ToolHandler {
	return &arithmeticToolHandler{
		options: toolhandler.NewOptions(opts...),
	}
}
