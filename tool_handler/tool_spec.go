package toolhandler

type ParamType string

const (
	TypeString  ParamType = "string"
	TypeNumber  ParamType = "number"
	TypeInteger ParamType = "integer"
	TypeBoolean ParamType = "boolean"
)

// Parameter declares one named tool input. Default only applies to optional
// parameters and must already be of the declared type.
type Parameter struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
	Default     any
	Enum        []string
}

type ToolSpec struct {
	Name        string
	Description string
	Parameters  []Parameter
}

// InputSchema renders the parameter list as a JSON schema object, the shape
// every provider expects in its tool definitions.
func (s ToolSpec) InputSchema() map[string]any {
	properties := make(map[string]any, len(s.Parameters))
	required := []string{}

	for _, p := range s.Parameters {
		prop := map[string]any{
			"type": string(p.Type),
		}
		if len(p.Description) > 0 {
			prop["description"] = p.Description
		}
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}
		if p.Default != nil {
			prop["default"] = p.Default
		}
		properties[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}

	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

func (s ToolSpec) RequiredNames() []string {
	names := []string{}
	for _, p := range s.Parameters {
		if p.Required {
			names = append(names, p.Name)
		}
	}
	return names
}
