package toolhandler

import "fmt"

type ErrorKind string

const (
	KindUnknownTool     ErrorKind = "unknown_tool"
	KindMissingArgument ErrorKind = "missing_argument"
	KindInvalidArgument ErrorKind = "invalid_argument"
	KindBusinessRule    ErrorKind = "business_rule_violation"
)

// ToolError is a recoverable dispatch failure. Field names the offending
// argument for missing_argument and invalid_argument.
type ToolError struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func UnknownTool(name string) *ToolError {
	return &ToolError{
		Kind:    KindUnknownTool,
		Message: fmt.Sprintf("unknown tool: %s", name),
	}
}

func MissingArgument(field string) *ToolError {
	return &ToolError{
		Kind:    KindMissingArgument,
		Field:   field,
		Message: fmt.Sprintf("missing required argument %q", field),
	}
}

func InvalidArgument(field string, format string, args ...any) *ToolError {
	return &ToolError{
		Kind:    KindInvalidArgument,
		Field:   field,
		Message: fmt.Sprintf("argument %q: %s", field, fmt.Sprintf(format, args...)),
	}
}

func BusinessRule(message string) *ToolError {
	return &ToolError{
		Kind:    KindBusinessRule,
		Message: message,
	}
}
