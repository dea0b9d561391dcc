package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/w-h-a/assistant/auditor"
	toolhandler "github.com/w-h-a/assistant/tool_handler"
)

// Dispatcher runs untrusted tool calls against the catalog. It never returns
// an error: every failure is reported inside the ToolResult.
type Dispatcher struct {
	catalog *ToolCatalog
	auditor auditor.Auditor
	logger  zerolog.Logger
}

func (d *Dispatcher) Dispatch(ctx context.Context, req toolhandler.ToolRequest) toolhandler.ToolResult {
	start := time.Now()

	entry := auditor.Entry{
		CallId:   req.Id,
		ToolName: req.Name,
		Raw:      req.Arguments,
	}

	entry.Arguments, entry.Result = d.dispatch(ctx, req)
	entry.Duration = time.Since(start)

	d.auditor.Audit(ctx, entry)

	return entry.Result
}

func (d *Dispatcher) dispatch(ctx context.Context, req toolhandler.ToolRequest) (toolhandler.Arguments, toolhandler.ToolResult) {
	th, spec, err := d.catalog.Get(req.Name)
	if err != nil {
		return toolhandler.Arguments{}, toolhandler.Failure(toolhandler.UnknownTool(req.Name))
	}

	args, verr := toolhandler.Validate(spec, req.Arguments)
	if verr != nil {
		return toolhandler.Arguments{}, toolhandler.Failure(verr)
	}

	if extra := toolhandler.Unknown(spec, req.Arguments); len(extra) > 0 {
		d.logger.Debug().Str("tool", spec.Name).Strs("ignored", extra).Msg("ignoring undeclared arguments")
	}

	content, err := d.invoke(ctx, th, args)
	if err != nil {
		return args, toolhandler.Failure(toolhandler.BusinessRule(err.Error()))
	}

	return args, toolhandler.Success(content)
}

func (d *Dispatcher) invoke(ctx context.Context, th toolhandler.ToolHandler, args toolhandler.Arguments) (content string, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().Interface("panic", r).Str("tool", th.Spec().Name).Msg("tool handler panicked")
			err = fmt.Errorf("tool failed: %v", r)
		}
	}()

	return th.Invoke(ctx, args)
}

func NewDispatcher(catalog *ToolCatalog, opts ...Option) *Dispatcher {
	if catalog == nil {
		panic("catalog is required")
	}

	options := NewOptions(opts...)

	return &Dispatcher{
		catalog: catalog,
		auditor: options.Auditor,
		logger:  options.Logger,
	}
}
