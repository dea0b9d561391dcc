package toolhandler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/gjson"
)

// maxSafeInteger is the largest integer a float64 holds exactly.
const maxSafeInteger = 1 << 53

// Value is a validated argument. Type selects which field is meaningful.
type Value struct {
	Type ParamType
	Str  string
	Num  float64
	Int  int
	Bool bool
}

func (v Value) Any() any {
	switch v.Type {
	case TypeString:
		return v.Str
	case TypeNumber:
		return v.Num
	case TypeInteger:
		return v.Int
	case TypeBoolean:
		return v.Bool
	}
	return nil
}

func (v Value) String() string {
	switch v.Type {
	case TypeString:
		return "'" + v.Str + "'"
	case TypeNumber:
		return FormatFloat(v.Num)
	case TypeInteger:
		return strconv.Itoa(v.Int)
	case TypeBoolean:
		return strconv.FormatBool(v.Bool)
	}
	return "<invalid>"
}

type Argument struct {
	Name      string
	Value     Value
	Defaulted bool
}

// Arguments holds validated values in the order the ToolSpec declares them.
type Arguments struct {
	items []Argument
}

func NewArguments(items ...Argument) Arguments {
	return Arguments{items: slices.Clone(items)}
}

func (a Arguments) List() []Argument {
	return slices.Clone(a.items)
}

func (a Arguments) Len() int {
	return len(a.items)
}

func (a Arguments) Get(name string) (Value, bool) {
	for _, item := range a.items {
		if item.Name == name {
			return item.Value, true
		}
	}
	return Value{}, false
}

func (a Arguments) Map() map[string]any {
	m := make(map[string]any, len(a.items))
	for _, item := range a.items {
		m[item.Name] = item.Value.Any()
	}
	return m
}

// Decode copies the arguments into a struct tagged with `mapstructure`.
func (a Arguments) Decode(out any) error {
	return mapstructure.Decode(a.Map(), out)
}

func (a Arguments) String() string {
	parts := make([]string, 0, len(a.items))
	for _, item := range a.items {
		parts = append(parts, fmt.Sprintf("%s=%s", item.Name, item.Value))
	}
	return strings.Join(parts, ", ")
}

// Validate checks raw JSON arguments against the ToolSpec parameters and applies
// defaults. Every failure is a *ToolError; nothing is coerced across types.
func Validate(spec ToolSpec, raw json.RawMessage) (Arguments, *ToolError) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		raw = []byte("{}")
	}

	if !gjson.ValidBytes(raw) {
		return Arguments{}, InvalidArgument("arguments", "malformed JSON")
	}

	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return Arguments{}, InvalidArgument("arguments", "expected a JSON object, got %s", describe(root))
	}

	fields := root.Map()
	items := make([]Argument, 0, len(spec.Parameters))

	for _, p := range spec.Parameters {
		r, ok := fields[p.Name]
		if !ok || r.Type == gjson.Null {
			if p.Required {
				return Arguments{}, MissingArgument(p.Name)
			}
			if p.Default != nil {
				v, err := defaultValue(p)
				if err != nil {
					return Arguments{}, err
				}
				items = append(items, Argument{Name: p.Name, Value: v, Defaulted: true})
			}
			continue
		}

		v, err := coerce(p, r)
		if err != nil {
			return Arguments{}, err
		}
		items = append(items, Argument{Name: p.Name, Value: v})
	}

	return Arguments{items: items}, nil
}

// Unknown returns the argument names present in raw that the ToolSpec does not declare.
func Unknown(spec ToolSpec, raw json.RawMessage) []string {
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil
	}

	var names []string
	root.ForEach(func(key, _ gjson.Result) bool {
		declared := slices.ContainsFunc(spec.Parameters, func(p Parameter) bool {
			return p.Name == key.String()
		})
		if !declared {
			names = append(names, key.String())
		}
		return true
	})

	return names
}

func coerce(p Parameter, r gjson.Result) (Value, *ToolError) {
	var v Value

	switch p.Type {
	case TypeString:
		if r.Type != gjson.String {
			return v, InvalidArgument(p.Name, "expected string, got %s", describe(r))
		}
		v = Value{Type: TypeString, Str: r.Str}
	case TypeNumber:
		if r.Type != gjson.Number {
			return v, InvalidArgument(p.Name, "expected number, got %s", describe(r))
		}
		if math.IsInf(r.Num, 0) || math.IsNaN(r.Num) {
			return v, InvalidArgument(p.Name, "number out of range")
		}
		v = Value{Type: TypeNumber, Num: r.Num}
	case TypeInteger:
		if r.Type != gjson.Number {
			return v, InvalidArgument(p.Name, "expected integer, got %s", describe(r))
		}
		if r.Num != math.Trunc(r.Num) {
			return v, InvalidArgument(p.Name, "expected integer, got %s", r.Raw)
		}
		if math.Abs(r.Num) > maxSafeInteger {
			return v, InvalidArgument(p.Name, "integer out of range")
		}
		v = Value{Type: TypeInteger, Int: int(r.Num)}
	case TypeBoolean:
		if r.Type != gjson.True && r.Type != gjson.False {
			return v, InvalidArgument(p.Name, "expected boolean, got %s", describe(r))
		}
		v = Value{Type: TypeBoolean, Bool: r.Bool()}
	default:
		return v, InvalidArgument(p.Name, "unsupported parameter type %q", p.Type)
	}

	if len(p.Enum) > 0 && !slices.Contains(p.Enum, v.Str) {
		return v, InvalidArgument(p.Name, "must be one of %s, got %s", strings.Join(p.Enum, ", "), r.Raw)
	}

	return v, nil
}

func defaultValue(p Parameter) (Value, *ToolError) {
	switch d := p.Default.(type) {
	case string:
		if p.Type == TypeString {
			return Value{Type: TypeString, Str: d}, nil
		}
	case float64:
		if p.Type == TypeNumber {
			return Value{Type: TypeNumber, Num: d}, nil
		}
	case int:
		if p.Type == TypeInteger {
			return Value{Type: TypeInteger, Int: d}, nil
		}
		if p.Type == TypeNumber {
			return Value{Type: TypeNumber, Num: float64(d)}, nil
		}
	case bool:
		if p.Type == TypeBoolean {
			return Value{Type: TypeBoolean, Bool: d}, nil
		}
	}
	return Value{}, InvalidArgument(p.Name, "default %v does not match type %s", p.Default, p.Type)
}

func describe(r gjson.Result) string {
	switch r.Type {
	case gjson.Null:
		return "null"
	case gjson.True, gjson.False:
		return "boolean"
	case gjson.Number:
		return "number"
	case gjson.String:
		return "string"
	}
	if r.IsArray() {
		return "array"
	}
	return "object"
}
