package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "gpt-3.5-turbo", cfg.OpenAIModel)
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAIBaseURL)
	assert.Equal(t, 60*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 30*time.Second, cfg.ExtractTimeout)
	assert.Equal(t, int64(20<<20), cfg.MaxRequestSize)
	assert.Equal(t, 16, cfg.LLMMaxIdleConns)
	assert.False(t, cfg.StrictJSON)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PORT", "9090")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("EXTRACT_TIMEOUT", "2s")
	t.Setenv("MAX_REQUEST_SIZE", "1024")
	t.Setenv("STRICT_JSON", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, 5*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 2*time.Second, cfg.ExtractTimeout)
	assert.Equal(t, int64(1024), cfg.MaxRequestSize)
	assert.True(t, cfg.StrictJSON)
}

func TestFromEnvRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"LLM_TIMEOUT", "soon"},
		{"LLM_TIMEOUT", "-1s"},
		{"EXTRACT_TIMEOUT", "0s"},
		{"MAX_REQUEST_SIZE", "big"},
		{"STRICT_JSON", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", "sk-test")
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
