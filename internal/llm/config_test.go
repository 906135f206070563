package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_Disabled(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, ProviderOllama, cfg.Provider)
	assert.Equal(t, 6000, cfg.TaskTimeout(TaskClarify))
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("LICHHEN_LLM_ENABLED", "true")
	t.Setenv("LICHHEN_LLM_TIMEOUT_MS", "9000")
	t.Setenv("LICHHEN_LLM_CLARIFY_TIMEOUT_MS", "3000")
	t.Setenv("LICHHEN_LLM_MAX_RETRIES", "2")
	t.Setenv("LICHHEN_LLM_MODEL", "qwen2.5")

	cfg := LoadConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 9000, cfg.TimeoutMs)
	assert.Equal(t, 3000, cfg.TaskTimeout(TaskClarify))
	assert.Equal(t, 2, cfg.MaxRetries)
	assert.Equal(t, "qwen2.5", cfg.Model)
	assert.Equal(t, "http://localhost:11434", cfg.Endpoint)
}

func TestLoadConfig_OpenAIProviderDefaults(t *testing.T) {
	t.Setenv("LICHHEN_LLM_PROVIDER", "OpenAI")
	t.Setenv("LICHHEN_LLM_API_KEY", "sk-test")

	cfg := LoadConfig()

	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "https://api.openai.com/v1", cfg.Endpoint)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, "sk-test", cfg.APIKey)
}

func TestLoadConfig_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("LICHHEN_LLM_PROVIDER", "anthropic")
	t.Setenv("LICHHEN_LLM_CLARIFY_TIMEOUT_MS", "not-a-number")
	t.Setenv("LICHHEN_LLM_MAX_RETRIES", "-1")

	cfg := LoadConfig()

	assert.Equal(t, ProviderOllama, cfg.Provider)
	assert.Equal(t, 6000, cfg.TaskTimeout(TaskClarify))
	assert.Equal(t, 1, cfg.MaxRetries)
}
