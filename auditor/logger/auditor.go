package logger

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/w-h-a/assistant/auditor"
)

type loggerAuditor struct {
	options auditor.Options
	logger  zerolog.Logger
}

func (a *loggerAuditor) Audit(_ context.Context, entry auditor.Entry) {
	event := a.logger.Info()
	if !entry.Result.Ok() {
		event = a.logger.Warn().
			Str("error_kind", string(entry.Result.Err.Kind)).
			Str("error_field", entry.Result.Err.Field).
			Str("error", entry.Result.Err.Message)
	}

	if entry.Arguments.Len() > 0 {
		event = event.Fields(map[string]any{"arguments": entry.Arguments.Map()})
	} else if raw := rawOrEmpty(entry.Raw); json.Valid(raw) {
		event = event.RawJSON("raw_arguments", raw)
	} else {
		event = event.Str("raw_arguments", string(raw))
	}

	event.
		Str("tool", entry.ToolName).
		Str("call_id", entry.CallId).
		Bool("ok", entry.Result.Ok()).
		Dur("duration", entry.Duration).
		Msg("tool dispatched")
}

func rawOrEmpty(raw []byte) []byte {
	if len(raw) == 0 {
		return []byte("{}")
	}
	return raw
}

func NewAuditor(opts ...auditor.Option) auditor.Auditor {
	options := auditor.NewOptions(opts...)

	a := &loggerAuditor{
		options: options,
		logger:  zerolog.Nop(),
	}

	if l, ok := LoggerFrom(options.Context); ok {
		a.logger = l
	}

	return a
}
