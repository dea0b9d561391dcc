package toolhandler

import (
	"encoding/json"
	"fmt"
)

// ToolRequest is a tool call as emitted by the reasoning layer. Arguments are
// untrusted JSON and have not been checked against any spec.
type ToolRequest struct {
	Id        string
	Name      string
	Arguments json.RawMessage
}

type ToolResult struct {
	Content string
	Err     *ToolError
}

func (r ToolResult) Ok() bool {
	return r.Err == nil
}

// Text is what the reasoning layer sees for this result.
func (r ToolResult) Text() string {
	if r.Err != nil {
		return fmt.Sprintf("Error (%s): %s", r.Err.Kind, r.Err.Message)
	}
	return r.Content
}

func Success(content string) ToolResult {
	return ToolResult{Content: content}
}

func Failure(err *ToolError) ToolResult {
	return ToolResult{Err: err}
}
