package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	settings, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "openai", settings.Provider)
	assert.Equal(t, 2, settings.Retries)
	assert.Equal(t, 60*time.Second, settings.Timeout)
	assert.Equal(t, 8, settings.Concurrency)
	assert.False(t, settings.Reasoning)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "promptfunc.yaml")
	content := `
provider: bedrock
model: anthropic.claude-3-haiku-20240307-v1:0
retries: 5
timeout: 30s
reasoning: true
temperature: 0.2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "bedrock", settings.Provider)
	assert.Equal(t, "anthropic.claude-3-haiku-20240307-v1:0", settings.Model)
	assert.Equal(t, 5, settings.Retries)
	assert.Equal(t, 30*time.Second, settings.Timeout)
	assert.True(t, settings.Reasoning)
	assert.InDelta(t, 0.2, settings.Temperature, 1e-6)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "promptfunc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: gpt-4o-mini\n"), 0o600))

	t.Setenv("PROMPTFUNC_MODEL", "gpt-4o")
	t.Setenv("PROMPTFUNC_API_KEY", "sk-test")

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", settings.Model)
	assert.Equal(t, "sk-test", settings.APIKey)
}

func TestLoadUnknownProvider(t *testing.T) {
	t.Setenv("PROMPTFUNC_PROVIDER", "carrier-pigeon")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
