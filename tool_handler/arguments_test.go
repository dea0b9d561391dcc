package toolhandler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSpec = ToolSpec{
	Name:        "sample",
	Description: "sample tool",
	Parameters: []Parameter{
		{Name: "label", Type: TypeString, Required: true},
		{Name: "amount", Type: TypeNumber, Required: true},
		{Name: "mode", Type: TypeString, Default: "fast", Enum: []string{"fast", "slow"}},
		{Name: "precision", Type: TypeInteger},
		{Name: "verbose", Type: TypeBoolean, Default: false},
	},
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantKind  ErrorKind
		wantField string
		wantArgs  map[string]any
	}{
		{
			name:     "all declared values",
			raw:      `{"label":"x","amount":1.5,"mode":"slow","precision":3,"verbose":true}`,
			wantArgs: map[string]any{"label": "x", "amount": 1.5, "mode": "slow", "precision": 3, "verbose": true},
		},
		{
			name:     "defaults applied for omitted optionals",
			raw:      `{"label":"x","amount":2}`,
			wantArgs: map[string]any{"label": "x", "amount": 2.0, "mode": "fast", "verbose": false},
		},
		{
			name:     "null treated as omitted",
			raw:      `{"label":"x","amount":2,"mode":null,"precision":null}`,
			wantArgs: map[string]any{"label": "x", "amount": 2.0, "mode": "fast", "verbose": false},
		},
		{
			name:     "integral float accepted for integer",
			raw:      `{"label":"x","amount":2,"precision":2.0}`,
			wantArgs: map[string]any{"label": "x", "amount": 2.0, "mode": "fast", "precision": 2, "verbose": false},
		},
		{
			name:     "undeclared arguments ignored",
			raw:      `{"label":"x","amount":2,"extra":"y"}`,
			wantArgs: map[string]any{"label": "x", "amount": 2.0, "mode": "fast", "verbose": false},
		},
		{
			name:      "missing required",
			raw:       `{"label":"x"}`,
			wantKind:  KindMissingArgument,
			wantField: "amount",
		},
		{
			name:      "null required",
			raw:       `{"label":null,"amount":1}`,
			wantKind:  KindMissingArgument,
			wantField: "label",
		},
		{
			name:      "empty arguments",
			raw:       ``,
			wantKind:  KindMissingArgument,
			wantField: "label",
		},
		{
			name:      "string where number expected",
			raw:       `{"label":"x","amount":"6"}`,
			wantKind:  KindInvalidArgument,
			wantField: "amount",
		},
		{
			name:      "number where string expected",
			raw:       `{"label":7,"amount":1}`,
			wantKind:  KindInvalidArgument,
			wantField: "label",
		},
		{
			name:      "boolean where number expected",
			raw:       `{"label":"x","amount":true}`,
			wantKind:  KindInvalidArgument,
			wantField: "amount",
		},
		{
			name:      "fractional integer",
			raw:       `{"label":"x","amount":1,"precision":2.5}`,
			wantKind:  KindInvalidArgument,
			wantField: "precision",
		},
		{
			name:      "value outside enum",
			raw:       `{"label":"x","amount":1,"mode":"FAST"}`,
			wantKind:  KindInvalidArgument,
			wantField: "mode",
		},
		{
			name:      "string where boolean expected",
			raw:       `{"label":"x","amount":1,"verbose":"yes"}`,
			wantKind:  KindInvalidArgument,
			wantField: "verbose",
		},
		{
			name:      "malformed json",
			raw:       `{"label":`,
			wantKind:  KindInvalidArgument,
			wantField: "arguments",
		},
		{
			name:      "array instead of object",
			raw:       `[1,2]`,
			wantKind:  KindInvalidArgument,
			wantField: "arguments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := Validate(testSpec, json.RawMessage(tt.raw))

			if len(tt.wantKind) > 0 {
				require.NotNil(t, err)
				assert.Equal(t, tt.wantKind, err.Kind)
				assert.Equal(t, tt.wantField, err.Field)
				assert.Contains(t, err.Message, tt.wantField)
				return
			}

			require.Nil(t, err)
			assert.Equal(t, tt.wantArgs, args.Map())
		})
	}
}

func TestValidateKeepsDeclarationOrder(t *testing.T) {
	args, err := Validate(testSpec, json.RawMessage(`{"verbose":true,"amount":3,"label":"z"}`))
	require.Nil(t, err)

	names := []string{}
	for _, arg := range args.List() {
		names = append(names, arg.Name)
	}

	assert.Equal(t, []string{"label", "amount", "mode", "verbose"}, names)
	assert.Equal(t, "label='z', amount=3.0, mode='fast', verbose=true", args.String())

	mode, ok := args.Get("mode")
	require.True(t, ok)
	assert.Equal(t, "fast", mode.Str)
	assert.True(t, args.List()[2].Defaulted)
}

func TestArgumentsDecode(t *testing.T) {
	args, err := Validate(testSpec, json.RawMessage(`{"label":"x","amount":4.25,"precision":1}`))
	require.Nil(t, err)

	var out struct {
		Label     string  `mapstructure:"label"`
		Amount    float64 `mapstructure:"amount"`
		Mode      string  `mapstructure:"mode"`
		Precision *int    `mapstructure:"precision"`
		Verbose   bool    `mapstructure:"verbose"`
	}
	require.NoError(t, args.Decode(&out))

	assert.Equal(t, "x", out.Label)
	assert.Equal(t, 4.25, out.Amount)
	assert.Equal(t, "fast", out.Mode)
	require.NotNil(t, out.Precision)
	assert.Equal(t, 1, *out.Precision)
	assert.False(t, out.Verbose)
}

func TestUnknown(t *testing.T) {
	assert.Equal(t, []string{"extra"}, Unknown(testSpec, json.RawMessage(`{"label":"x","extra":1}`)))
	assert.Empty(t, Unknown(testSpec, json.RawMessage(`{"label":"x"}`)))
	assert.Empty(t, Unknown(testSpec, json.RawMessage(`not json`)))
}

func TestInputSchema(t *testing.T) {
	schema := testSpec.InputSchema()

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, []string{"label", "amount"}, schema["required"])

	properties, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	require.Len(t, properties, 5)

	mode, ok := properties["mode"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", mode["type"])
	assert.Equal(t, []string{"fast", "slow"}, mode["enum"])
	assert.Equal(t, "fast", mode["default"])

	_, err := json.Marshal(schema)
	require.NoError(t, err)
}

func TestToolResultText(t *testing.T) {
	assert.Equal(t, "Result: 2.0", Success("Result: 2.0").Text())
	assert.True(t, Success("x").Ok())

	failed := Failure(BusinessRule("Cannot divide by zero."))
	assert.False(t, failed.Ok())
	assert.Equal(t, "Error (business_rule_violation): Cannot divide by zero.", failed.Text())
}
