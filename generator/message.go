package generator

import toolhandler "github.com/w-h-a/assistant/tool_handler"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one transcript turn. Assistant turns may carry ToolCalls; tool
// turns answer exactly one call, identified by ToolCallId.
type Message struct {
	Role       Role
	Content    string
	ToolCalls  []toolhandler.ToolRequest
	ToolCallId string
	ToolName   string
	IsError    bool
}

type Reply struct {
	Content   string
	ToolCalls []toolhandler.ToolRequest
}

func (r Reply) HasToolCalls() bool {
	return len(r.ToolCalls) > 0
}

func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func AssistantMessage(reply Reply) Message {
	return Message{Role: RoleAssistant, Content: reply.Content, ToolCalls: reply.ToolCalls}
}

func ToolMessage(req toolhandler.ToolRequest, result toolhandler.ToolResult) Message {
	return Message{
		Role:       RoleTool,
		Content:    result.Text(),
		ToolCallId: req.Id,
		ToolName:   req.Name,
		IsError:    !result.Ok(),
	}
}
