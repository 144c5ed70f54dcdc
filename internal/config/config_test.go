package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CLEARCLAUSE_LLM_PROVIDER", "")
	t.Setenv("CLEARCLAUSE_GENERATION_RETRIES", "")
	t.Setenv("CLEARCLAUSE_RETRY_BACKOFF", "")
	t.Setenv("CLEARCLAUSE_MAX_UPLOAD_MB", "")
	t.Setenv("CLEARCLAUSE_DOCUMENT_CHAR_LIMIT", "")

	cfg := Load()
	assert.Equal(t, "gemini", cfg.LLMProvider)
	assert.Equal(t, 3, cfg.MaxAttempts())
	assert.Equal(t, time.Second, cfg.RetryBackoff)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes())
	assert.Equal(t, 8000, cfg.DocumentCharLimit)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("CLEARCLAUSE_GENERATION_RETRIES", "lots")
	t.Setenv("CLEARCLAUSE_RETRY_BACKOFF", "soon")

	cfg := Load()
	assert.Equal(t, 2, cfg.GenerationRetries)
	assert.Equal(t, time.Second, cfg.RetryBackoff)
}

func TestValidateRequiresGeminiKey(t *testing.T) {
	cfg := Config{LLMProvider: "gemini", MaxUploadMB: 10, DocumentCharLimit: 8000}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_GEMINI_API_KEY")

	cfg.GeminiAPIKey = "k"
	require.NoError(t, cfg.Validate())
}

func TestValidateSkipsGeminiKeyForOtherProviders(t *testing.T) {
	cfg := Config{LLMProvider: "mock", MaxUploadMB: 10, DocumentCharLimit: 8000}
	require.NoError(t, cfg.Validate())

	cfg.LLMProvider = " Gemini:backup "
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsNegativeRetries(t *testing.T) {
	cfg := Config{LLMProvider: "mock", GenerationRetries: -1, MaxUploadMB: 10, DocumentCharLimit: 8000}
	require.Error(t, cfg.Validate())
}

func TestValidateChecksEveryListedProvider(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg := Config{LLMProvider: "gemini|groq", MaxUploadMB: 10, DocumentCharLimit: 8000}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_GEMINI_API_KEY")

	cfg.GeminiAPIKey = "g"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GROQ_API_KEY")

	t.Setenv("GROQ_API_KEY", "q")
	require.NoError(t, cfg.Validate())

	cfg.LLMProvider = "openai|mock"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")

	cfg.LLMProvider = "mock|ollama:llama3.1"
	require.NoError(t, cfg.Validate())
}

func TestProviderKeyPrefersAlias(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "default")
	t.Setenv("CLEARCLAUSE_OPENAI_KEY_TEAM_A", "team")
	t.Setenv("CLEARCLAUSE_GEMINI_KEY_BACKUP", "alias-gemini")

	cfg := Config{GeminiAPIKey: "main-gemini"}
	assert.Equal(t, "team", cfg.ProviderKey("openai", "team-a"))
	assert.Equal(t, "default", cfg.ProviderKey("openai", "other"))
	assert.Equal(t, "alias-gemini", cfg.ProviderKey("gemini", "backup"))
	assert.Equal(t, "main-gemini", cfg.ProviderKey("gemini", ""))
	assert.Empty(t, cfg.ProviderKey("ollama", "llama3.1"))
	assert.Empty(t, cfg.ProviderKey("mock", ""))
}

func TestProviderEntries(t *testing.T) {
	entries := ProviderEntries(" Gemini | groq:backup ||ollama:llama3.1")
	require.Len(t, entries, 3)
	assert.Equal(t, ProviderEntry{Raw: "Gemini", Name: "gemini"}, entries[0])
	assert.Equal(t, ProviderEntry{Raw: "groq:backup", Name: "groq", Alias: "backup"}, entries[1])
	assert.Equal(t, "llama3.1", entries[2].Alias)

	assert.Equal(t, []ProviderEntry{{Raw: "mock", Name: "mock"}}, ProviderEntries(" | "))
}

func TestLoadReportsUnparsableValues(t *testing.T) {
	t.Setenv("CLEARCLAUSE_RETRY_BACKOFF", "1")
	t.Setenv("CLEARCLAUSE_MAX_UPLOAD_MB", "ten")
	t.Setenv("CLEARCLAUSE_GENERATION_RETRIES", "")
	t.Setenv("CLEARCLAUSE_DOCUMENT_CHAR_LIMIT", "")

	cfg := Load()
	assert.Equal(t, time.Second, cfg.RetryBackoff)
	assert.Equal(t, 10, cfg.MaxUploadMB)
	require.Len(t, cfg.Warnings, 2)
	assert.Contains(t, cfg.Warnings[0], "CLEARCLAUSE_RETRY_BACKOFF")
	assert.Contains(t, cfg.Warnings[1], "CLEARCLAUSE_MAX_UPLOAD_MB")
}
