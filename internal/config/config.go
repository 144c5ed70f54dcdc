package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	APIAddr           string
	LLMProvider       string
	GeminiAPIKey      string
	GeminiModel       string
	GenerationRetries int
	RetryBackoff      time.Duration
	MaxUploadMB       int
	DocumentCharLimit int
	PromptsFile       string
	AuditPostgresURL  string
	LogLevel          string
	LogFormat         string

	// Warnings lists variables that were set but could not be parsed and
	// fell back to their defaults.
	Warnings []string
}

func Load() Config {
	var warn []string
	cfg := Config{
		APIAddr:           getenv("CLEARCLAUSE_API_ADDR", ":8080"),
		LLMProvider:       getenv("CLEARCLAUSE_LLM_PROVIDER", "gemini"),
		GeminiAPIKey:      strings.TrimSpace(os.Getenv("GOOGLE_GEMINI_API_KEY")),
		GeminiModel:       getenv("CLEARCLAUSE_GEMINI_MODEL", "gemini-1.5-flash"),
		GenerationRetries: getenvInt("CLEARCLAUSE_GENERATION_RETRIES", 2, &warn),
		RetryBackoff:      getenvDuration("CLEARCLAUSE_RETRY_BACKOFF", time.Second, &warn),
		MaxUploadMB:       getenvInt("CLEARCLAUSE_MAX_UPLOAD_MB", 10, &warn),
		DocumentCharLimit: getenvInt("CLEARCLAUSE_DOCUMENT_CHAR_LIMIT", 8000, &warn),
		PromptsFile:       os.Getenv("CLEARCLAUSE_PROMPTS_FILE"),
		AuditPostgresURL:  os.Getenv("CLEARCLAUSE_AUDIT_POSTGRES_URL"),
		LogLevel:          getenv("CLEARCLAUSE_LOG_LEVEL", "info"),
		LogFormat:         getenv("CLEARCLAUSE_LOG_FORMAT", "json"),
	}
	cfg.Warnings = warn
	return cfg
}

// Validate reports configuration the server cannot start with. Every
// listed provider that needs an API key must have one.
func (c Config) Validate() error {
	for _, e := range ProviderEntries(c.LLMProvider) {
		env, ok := providerKeyEnv[e.Name]
		if ok && c.ProviderKey(e.Name, e.Alias) == "" {
			return fmt.Errorf("%s is not configured for provider %q", env, e.Raw)
		}
	}
	if c.GenerationRetries < 0 {
		return fmt.Errorf("CLEARCLAUSE_GENERATION_RETRIES must be >= 0, got %d", c.GenerationRetries)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("CLEARCLAUSE_MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}
	if c.DocumentCharLimit <= 0 {
		return fmt.Errorf("CLEARCLAUSE_DOCUMENT_CHAR_LIMIT must be positive, got %d", c.DocumentCharLimit)
	}
	return nil
}

func (c Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// MaxAttempts is the total number of generation tries per request.
func (c Config) MaxAttempts() int {
	return c.GenerationRetries + 1
}

// ProviderEntry is one element of the provider list, written "name[:alias]".
type ProviderEntry struct {
	Raw   string
	Name  string
	Alias string
}

// ProviderEntries splits "gemini|groq:backup" into entries, first one
// primary. An empty list yields the mock provider.
func ProviderEntries(raw string) []ProviderEntry {
	parts := strings.Split(raw, "|")
	out := make([]ProviderEntry, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		name, alias, _ := strings.Cut(p, ":")
		out = append(out, ProviderEntry{
			Raw:   p,
			Name:  strings.ToLower(strings.TrimSpace(name)),
			Alias: strings.TrimSpace(alias),
		})
	}
	if len(out) == 0 {
		out = append(out, ProviderEntry{Raw: "mock", Name: "mock"})
	}
	return out
}

var providerKeyEnv = map[string]string{
	"gemini": "GOOGLE_GEMINI_API_KEY",
	"openai": "OPENAI_API_KEY",
	"groq":   "GROQ_API_KEY",
}

// ProviderKey resolves the API key for a provider. With an alias,
// CLEARCLAUSE_<NAME>_KEY_<ALIAS> wins over the provider's default variable.
// Providers without keys return "".
func (c Config) ProviderKey(name, alias string) string {
	env, ok := providerKeyEnv[name]
	if !ok {
		return ""
	}
	if alias != "" {
		if v := strings.TrimSpace(os.Getenv("CLEARCLAUSE_" + strings.ToUpper(name) + "_KEY_" + EnvToken(alias))); v != "" {
			return v
		}
	}
	if name == "gemini" {
		return strings.TrimSpace(c.GeminiAPIKey)
	}
	return strings.TrimSpace(os.Getenv(env))
}

// EnvToken turns an alias into something usable inside a variable name.
func EnvToken(s string) string {
	return strings.NewReplacer("-", "_", ".", "_", "/", "_").Replace(strings.ToUpper(strings.TrimSpace(s)))
}

func getenv(k, fallback string) string {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	return v
}

func getenvInt(k string, fallback int, warn *[]string) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*warn = append(*warn, fmt.Sprintf("%s=%q is not an integer, using %d", k, v, fallback))
		return fallback
	}
	return n
}

func getenvDuration(k string, fallback time.Duration, warn *[]string) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*warn = append(*warn, fmt.Sprintf("%s=%q is not a duration (e.g. 1s, 500ms), using %s", k, v, fallback))
		return fallback
	}
	return d
}
