package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/w-h-a/assistant"
	"github.com/w-h-a/assistant/auditor"
	"github.com/w-h-a/assistant/auditor/console"
	"github.com/w-h-a/assistant/auditor/logger"
	"github.com/w-h-a/assistant/auditor/tracing"
	"github.com/w-h-a/assistant/generator"
	"github.com/w-h-a/assistant/generator/anthropic"
	"github.com/w-h-a/assistant/generator/google"
	"github.com/w-h-a/assistant/generator/openai"
	"github.com/w-h-a/assistant/internal/cli"
	"github.com/w-h-a/assistant/internal/config"
	"github.com/w-h-a/assistant/internal/service/agent"
	toolhandler "github.com/w-h-a/assistant/tool_handler"
	"github.com/w-h-a/assistant/tool_handler/arithmetic"
	"github.com/w-h-a/assistant/tool_handler/greeting"
)

var (
	cfg config.Config
)

func main() {
	// Parse inputs
	_ = kong.Parse(
		&cfg,
		kong.Name("assistant"),
		kong.Description("Terminal assistant that answers with the help of local arithmetic and greeting tools."),
	)

	ctx := context.Background()

	// Missing credentials stop us here, before any interaction
	if err := cfg.Load(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := cfg.Logger(os.Stderr)

	// Spans go to --trace-file when it is set
	tp, shutdownTracing, err := cfg.TracerProvider()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	tracingOpts := []auditor.Option{}
	if tp != nil {
		tracingOpts = append(tracingOpts, tracing.WithTracerProvider(tp))
	}

	// Create the reasoning layer
	apiKey, _ := cfg.APIKey()

	systemPrompt := cfg.SystemPrompt
	if len(systemPrompt) == 0 {
		systemPrompt = assistant.DefaultSystemPrompt
	}

	generatorOpts := []generator.Option{
		generator.WithApiKey(apiKey),
		generator.WithModel(cfg.Model),
		generator.WithBaseURL(cfg.BaseURL),
		generator.WithSystemPrompt(systemPrompt),
		generator.WithTemperature(cfg.Temperature),
		generator.WithMaxTokens(cfg.MaxTokens),
	}

	var model generator.Generator
	switch config.Provider(cfg.Provider) {
	case config.ProviderAnthropic:
		model = anthropic.NewGenerator(generatorOpts...)
	case config.ProviderGoogle:
		model = google.NewGenerator(generatorOpts...)
	default:
		model = openai.NewGenerator(generatorOpts...)
	}

	// Create the allow-listed tools
	toolHandlers := []toolhandler.ToolHandler{
		arithmetic.NewToolHandler(),
		greeting.NewToolHandler(),
	}

	audit := auditor.Multi(
		console.NewAuditor(auditor.WithWriter(os.Stdout)),
		logger.NewAuditor(logger.WithLogger(log)),
		tracing.NewAuditor(tracingOpts...),
	)

	a, err := assistant.New(
		model,
		toolHandlers,
		agent.WithLogger(log),
		agent.WithAuditor(audit),
		agent.WithMaxIterations(cfg.MaxIterations),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build assistant: %v\n", err)
		os.Exit(1)
	}

	sessionId, err := a.CreateSession(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start session: %v\n", err)
		os.Exit(1)
	}

	log.Debug().Str("provider", cfg.Provider).Str("session", sessionId).Int("tools", len(a.Tools())).Msg("assistant ready")

	loop := cli.New(
		cli.ResponderFunc(func(ctx context.Context, input string) (string, error) {
			return a.Generate(ctx, sessionId, input)
		}),
		cli.WithLogger(log),
	)

	runErr := loop.Run(ctx)

	if err := shutdownTracing(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to flush traces")
	}

	if runErr != nil {
		log.Error().Err(runErr).Msg("interaction loop stopped")
		os.Exit(1)
	}
}
