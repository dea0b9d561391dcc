package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/w-h-a/assistant/auditor"
)

type consoleAuditor struct {
	options auditor.Options
	header  *color.Color
	failure *color.Color
}

// Audit prints the block operators rely on to see what actually ran:
//
//	--- TOOL CALLED: perform_arithmetic ---
//	Inputs -> first_value=6.0, second_value=3.0, operation='divide'
//	Outcome -> Result: 2.0
//	---------------------------------------
func (a *consoleAuditor) Audit(_ context.Context, entry auditor.Entry) {
	w := a.options.Writer

	title := fmt.Sprintf("--- TOOL CALLED: %s ---", entry.ToolName)
	a.header.Fprintf(w, "\n%s\n", title)

	if entry.Arguments.Len() > 0 {
		fmt.Fprintf(w, "Inputs -> %s\n", entry.Arguments)
	} else if entry.Result.Ok() {
		fmt.Fprintln(w, "Inputs -> (none)")
	} else {
		fmt.Fprintf(w, "Inputs -> (rejected) %s\n", strings.TrimSpace(string(entry.Raw)))
	}

	if entry.Result.Ok() {
		fmt.Fprintf(w, "Outcome -> %s\n", entry.Result.Content)
	} else {
		a.failure.Fprintf(w, "Outcome -> %s\n", entry.Result.Text())
	}

	fmt.Fprintln(w, strings.Repeat("-", len(title)))
}

func NewAuditor(opts ...auditor.Option) auditor.Auditor {
	return &consoleAuditor{
		options: auditor.NewOptions(opts...),
		header:  color.New(color.FgCyan, color.Bold),
		failure: color.New(color.FgRed),
	}
}
