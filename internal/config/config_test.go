package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv clears a variable for the test and restores it afterwards.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMissingKey(t *testing.T) {
	unsetenv(t, "OPENAI_API_KEY")

	cfg := Config{Provider: "openai", EnvFile: filepath.Join(t.TempDir(), "absent.env")}

	err := cfg.Load()
	require.Error(t, err)

	var startupErr *StartupConfigError
	require.ErrorAs(t, err, &startupErr)
	assert.Equal(t, "OPENAI_API_KEY", startupErr.Variable)
	assert.Equal(t, "Missing OPENAI_API_KEY. Add it to your .env file.", err.Error())
}

func TestLoadKeyFromEnvFile(t *testing.T) {
	unsetenv(t, "ANTHROPIC_API_KEY")

	cfg := Config{Provider: "anthropic", EnvFile: writeEnvFile(t, "ANTHROPIC_API_KEY=from-file\n")}

	require.NoError(t, cfg.Load())

	key, err := cfg.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "from-file", key)
}

func TestLoadKeyFromEnvironment(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "from-env")

	cfg := Config{Provider: "google", EnvFile: writeEnvFile(t, "GOOGLE_API_KEY=from-file\n")}

	require.NoError(t, cfg.Load())

	key, err := cfg.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "from-env", key)
}

func TestLoadKeepsFlagValue(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "from-env")

	cfg := Config{Provider: "openai", OpenAIKey: "from-flag"}

	require.NoError(t, cfg.Load())

	key, err := cfg.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "from-flag", key)
}

func TestAPIKeyFollowsProvider(t *testing.T) {
	cfg := Config{Provider: "anthropic", OpenAIKey: "openai-key"}

	_, err := cfg.APIKey()

	var startupErr *StartupConfigError
	require.ErrorAs(t, err, &startupErr)
	assert.Equal(t, "ANTHROPIC_API_KEY", startupErr.Variable)
}

func TestAPIKeyUnknownProvider(t *testing.T) {
	cfg := Config{Provider: "llama", OpenAIKey: "key"}

	_, err := cfg.APIKey()

	var startupErr *StartupConfigError
	require.ErrorAs(t, err, &startupErr)
	assert.Contains(t, err.Error(), "llama")
}

func TestLoadEnvFileMissingIsIgnored(t *testing.T) {
	require.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "nope.env")))
	require.NoError(t, LoadEnvFile(""))
}

func TestLogger(t *testing.T) {
	cfg := Config{LogLevel: "error"}
	assert.Equal(t, zerolog.ErrorLevel, cfg.Logger(os.Stderr).GetLevel())

	cfg = Config{LogLevel: "bogus"}
	assert.Equal(t, zerolog.WarnLevel, cfg.Logger(os.Stderr).GetLevel())

	cfg = Config{LogLevel: "disabled"}
	assert.Equal(t, zerolog.Disabled, cfg.Logger(os.Stderr).GetLevel())
}

func TestTracerProviderDisabled(t *testing.T) {
	cfg := Config{}

	tp, shutdown, err := cfg.TracerProvider()
	require.NoError(t, err)
	assert.Nil(t, tp)
	assert.NoError(t, shutdown(context.Background()))
}

func TestTracerProviderWritesSpans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spans.json")
	cfg := Config{TraceFile: path}

	tp, shutdown, err := cfg.TracerProvider()
	require.NoError(t, err)
	require.NotNil(t, tp)

	_, span := tp.Tracer("test").Start(context.Background(), "tool perform_arithmetic")
	span.End()

	require.NoError(t, shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Name":"tool perform_arithmetic"`)
	assert.Contains(t, string(data), `"Value":"assistant"`)
}

func TestTracerProviderBadPath(t *testing.T) {
	cfg := Config{TraceFile: filepath.Join(t.TempDir(), "missing", "spans.json")}

	_, _, err := cfg.TracerProvider()

	var startupErr *StartupConfigError
	require.ErrorAs(t, err, &startupErr)
}
