package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGoogle    Provider = "google"
)

var keyVariables = map[Provider]string{
	ProviderOpenAI:    "OPENAI_API_KEY",
	ProviderAnthropic: "ANTHROPIC_API_KEY",
	ProviderGoogle:    "GOOGLE_API_KEY",
}

// StartupConfigError is fatal: the process stops before any interaction.
type StartupConfigError struct {
	Variable string
	Message  string
}

func (e *StartupConfigError) Error() string {
	return e.Message
}

// Config is parsed by kong. Keys given neither as flags nor in the process
// environment are looked up again after the env file is loaded.
type Config struct {
	// Generator config
	Provider     string  `help:"Reasoning provider (openai, anthropic, google)" enum:"openai,anthropic,google" default:"openai"`
	Model        string  `help:"Model identifier; empty selects the provider default" default:""`
	BaseURL      string  `name:"base-url" help:"Override the provider API base URL" default:""`
	SystemPrompt string  `help:"System prompt for the assistant; empty selects the built-in prompt" default:""`
	Temperature  float64 `help:"Sampling temperature" default:"0"`
	MaxTokens    int     `help:"Maximum tokens per model reply" default:"1024"`

	// Credentials
	OpenAIKey    string `name:"openai-api-key" help:"API key for OpenAI" env:"OPENAI_API_KEY" default:""`
	AnthropicKey string `name:"anthropic-api-key" help:"API key for Anthropic" env:"ANTHROPIC_API_KEY" default:""`
	GoogleKey    string `name:"google-api-key" help:"API key for Google AI" env:"GOOGLE_API_KEY" default:""`

	// Agent config
	MaxIterations int `help:"Model calls allowed per user turn before the turn fails" default:"8"`

	// Process config
	LogLevel  string `help:"Log level for stderr diagnostics" enum:"debug,info,warn,error,disabled" default:"warn"`
	EnvFile   string `help:"Environment file loaded at startup" default:".env"`
	TraceFile string `help:"Write one OpenTelemetry span per tool call to this file as JSON; empty disables tracing" default:""`
}

// Load reads the env file, fills credentials still missing from the
// environment, and checks the selected provider has a key.
func (c *Config) Load() error {
	if err := LoadEnvFile(c.EnvFile); err != nil {
		return &StartupConfigError{Message: fmt.Sprintf("failed to load %s: %v", c.EnvFile, err)}
	}

	fill := func(dst *string, variable string) {
		if len(strings.TrimSpace(*dst)) == 0 {
			*dst = os.Getenv(variable)
		}
	}
	fill(&c.OpenAIKey, keyVariables[ProviderOpenAI])
	fill(&c.AnthropicKey, keyVariables[ProviderAnthropic])
	fill(&c.GoogleKey, keyVariables[ProviderGoogle])

	_, err := c.APIKey()
	return err
}

func (c *Config) APIKey() (string, error) {
	provider := Provider(c.Provider)

	var key string
	switch provider {
	case ProviderOpenAI:
		key = c.OpenAIKey
	case ProviderAnthropic:
		key = c.AnthropicKey
	case ProviderGoogle:
		key = c.GoogleKey
	default:
		return "", &StartupConfigError{Message: fmt.Sprintf("unknown provider %q", c.Provider)}
	}

	key = strings.TrimSpace(key)
	if len(key) == 0 {
		variable := keyVariables[provider]
		return "", &StartupConfigError{
			Variable: variable,
			Message:  fmt.Sprintf("Missing %s. Add it to your .env file.", variable),
		}
	}

	return key, nil
}

// Logger writes human-readable zerolog output to w at the configured level.
func (c *Config) Logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || len(c.LogLevel) == 0 {
		level = zerolog.WarnLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// LoadEnvFile loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if len(strings.TrimSpace(path)) == 0 {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	return nil
}
