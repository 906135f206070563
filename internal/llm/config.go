package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskClarify TaskType = "clarify"
)

// Provider selects the backend speaking to the model.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderOpenAI Provider = "openai"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Provider   Provider
	Endpoint   string
	Model      string
	APIKey     string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with the LLM disabled.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    false,
		LogCalls:   false,
		Provider:   ProviderOllama,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  8000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskClarify: {Temperature: 0.3, MaxTokens: 256, TimeoutMs: 6000},
		},
	}
}

// LoadConfig reads LICHHEN_LLM_* environment variables over the defaults.
// Selecting the openai provider without an explicit endpoint or model
// switches those to the OpenAI API defaults.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("LICHHEN_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("LICHHEN_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("LICHHEN_LLM_PROVIDER"); v != "" {
		if p := Provider(strings.ToLower(v)); p == ProviderOllama || p == ProviderOpenAI {
			cfg.Provider = p
		}
	}
	if cfg.Provider == ProviderOpenAI {
		cfg.Endpoint = "https://api.openai.com/v1"
		cfg.Model = "gpt-4o-mini"
	}
	if v := os.Getenv("LICHHEN_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("LICHHEN_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	cfg.APIKey = os.Getenv("LICHHEN_LLM_API_KEY")
	if v := os.Getenv("LICHHEN_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("LICHHEN_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskClarify, "LICHHEN_LLM_CLARIFY_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
