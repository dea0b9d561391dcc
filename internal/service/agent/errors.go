package agent

import "errors"

var (
	ErrDuplicateTool = errors.New("tool already registered")
	ErrUnknownTool   = errors.New("unknown tool")
	ErrInvalidTool   = errors.New("invalid tool")
	ErrEmptyInput    = errors.New("user input is required")
	ErrMaxIterations = errors.New("tool-call iteration limit reached")
)
