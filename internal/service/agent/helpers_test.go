package agent

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/w-h-a/assistant/auditor"
	"github.com/w-h-a/assistant/generator"
	toolhandler "github.com/w-h-a/assistant/tool_handler"
)

type recordingAuditor struct {
	entries []auditor.Entry
	mtx     sync.Mutex
}

func (a *recordingAuditor) Audit(_ context.Context, entry auditor.Entry) {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	a.entries = append(a.entries, entry)
}

// scriptedGenerator replays replies in order and records what it was sent.
type scriptedGenerator struct {
	replies []generator.Reply
	err     error
	calls   [][]generator.Message
	tools   [][]toolhandler.ToolSpec
}

func (g *scriptedGenerator) Generate(_ context.Context, messages []generator.Message, tools []toolhandler.ToolSpec) (generator.Reply, error) {
	g.calls = append(g.calls, messages)
	g.tools = append(g.tools, tools)

	if g.err != nil {
		return generator.Reply{}, g.err
	}

	if len(g.calls) > len(g.replies) {
		return generator.Reply{}, errors.New("script exhausted")
	}

	return g.replies[len(g.calls)-1], nil
}

type stubToolHandler struct {
	spec   toolhandler.ToolSpec
	invoke func(args toolhandler.Arguments) (string, error)
}

func (th *stubToolHandler) Spec() toolhandler.ToolSpec {
	return th.spec
}

func (th *stubToolHandler) Invoke(_ context.Context, args toolhandler.Arguments) (string, error) {
	return th.invoke(args)
}

func newStub(name string, invoke func(args toolhandler.Arguments) (string, error)) *stubToolHandler {
	return &stubToolHandler{
		spec:   toolhandler.ToolSpec{Name: name, Description: name + " tool"},
		invoke: invoke,
	}
}

func call(id string, name string, args string) toolhandler.ToolRequest {
	return toolhandler.ToolRequest{Id: id, Name: name, Arguments: json.RawMessage(args)}
}
