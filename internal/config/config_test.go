package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "inventory.json", cfg.DataPath)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 9090, cfg.MetricsPort)
	assert.Equal(t, "o3-mini", cfg.Model)
	assert.Equal(t, 15000, cfg.MaxTokens)
}

func TestLoadReadsYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
data_path: /var/lib/fridgeplan/inventory.json
port: 9000
model: gpt-4o-mini
max_tokens: 8000
openai_key: file-key
api:
  openai_key: nested-key
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/fridgeplan/inventory.json", cfg.DataPath)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, 8000, cfg.MaxTokens)
	assert.Equal(t, "file-key", cfg.OpenAIKey)
	assert.Equal(t, "nested-key", cfg.API.OpenAIKey)
}

func TestLoadRejectsBadYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not a port"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestResolveAPIKeyEnvWins(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")

	cfg := Default()
	cfg.OpenAIKey = "file-key"
	cfg.API.OpenAIKey = "nested-key"

	key, err := cfg.ResolveAPIKey(nil)
	require.NoError(t, err)
	assert.Equal(t, "env-key", key)
}

func TestResolveAPIKeyConfigBeforeNested(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg := Default()
	cfg.OpenAIKey = "file-key"
	cfg.API.OpenAIKey = "nested-key"

	key, err := cfg.ResolveAPIKey(nil)
	require.NoError(t, err)
	assert.Equal(t, "file-key", key)
}

func TestResolveAPIKeyNestedSection(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg := Default()
	cfg.API.OpenAIKey = "nested-key"

	key, err := cfg.ResolveAPIKey(nil)
	require.NoError(t, err)
	assert.Equal(t, "nested-key", key)
}

func TestResolveAPIKeyPromptLast(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg := Default()
	prompted := false
	key, err := cfg.ResolveAPIKey(func() (string, error) {
		prompted = true
		return "  typed-key  ", nil
	})
	require.NoError(t, err)
	assert.True(t, prompted)
	assert.Equal(t, "typed-key", key)
}

func TestResolveAPIKeyAllEmpty(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "   ")

	cfg := Default()
	_, err := cfg.ResolveAPIKey(func() (string, error) { return "", nil })
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoCredentials))
}

func TestTerminalPrompt(t *testing.T) {
	var out strings.Builder
	prompt := TerminalPrompt(strings.NewReader("sk-test\n"), &out)

	key, err := prompt()
	require.NoError(t, err)
	assert.Equal(t, "sk-test", key)
	assert.Contains(t, out.String(), "OpenAI API Key")
}
