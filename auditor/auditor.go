package auditor

import (
	"context"
	"encoding/json"
	"time"

	toolhandler "github.com/w-h-a/assistant/tool_handler"
)

// Entry is the trace record of one dispatch. Arguments is empty when
// validation failed; Raw always carries what the reasoning layer sent.
type Entry struct {
	CallId    string
	ToolName  string
	Arguments toolhandler.Arguments
	Raw       json.RawMessage
	Result    toolhandler.ToolResult
	Duration  time.Duration
}

type Auditor interface {
	Audit(ctx context.Context, entry Entry)
}

type multiAuditor []Auditor

func (m multiAuditor) Audit(ctx context.Context, entry Entry) {
	for _, a := range m {
		a.Audit(ctx, entry)
	}
}

// Multi fans an entry out to every non-nil auditor, in order.
func Multi(auditors ...Auditor) Auditor {
	m := make(multiAuditor, 0, len(auditors))
	for _, a := range auditors {
		if a != nil {
			m = append(m, a)
		}
	}
	return m
}

type nopAuditor struct{}

func (nopAuditor) Audit(context.Context, Entry) {}

func Nop() Auditor {
	return nopAuditor{}
}
