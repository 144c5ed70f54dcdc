package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"clearclause/internal/config"
)

// OllamaProvider generates with a local Ollama server.
type OllamaProvider struct {
	alias   string
	baseURL string
	model   string
	client  *http.Client
}

func NewOllamaProvider(alias string) *OllamaProvider {
	baseURL := strings.TrimSpace(os.Getenv("CLEARCLAUSE_OLLAMA_BASE_URL"))
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	return &OllamaProvider{
		alias:   alias,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   resolveOllamaModel(alias),
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (o *OllamaProvider) Generate(ctx context.Context, req GenerateRequest) (Response, ProviderInfo, error) {
	info := ProviderInfo{Name: "ollama", Model: o.model, Key: o.alias}
	s := samplingOrDefault(req.Sampling)
	payload, _ := json.Marshal(map[string]any{
		"model":  o.model,
		"prompt": req.Prompt,
		"stream": false,
		"options": map[string]any{
			"temperature": s.Temperature,
			"top_p":       s.TopP,
			"top_k":       int(s.TopK),
			"num_predict": s.MaxOutputTokens,
		},
	})
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, info, fmt.Errorf("build ollama request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return nil, info, fmt.Errorf("ollama generate request failed: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return nil, info, &StatusError{Provider: "ollama", StatusCode: resp.StatusCode, Body: string(body)}
	}
	var parsed struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, info, fmt.Errorf("decode ollama response: %w", err)
	}
	return TextResponse{Text: parsed.Response}, info, nil
}

func resolveOllamaModel(alias string) string {
	alias = strings.TrimSpace(alias)
	if alias != "" {
		if v := strings.TrimSpace(os.Getenv("CLEARCLAUSE_OLLAMA_MODEL_" + config.EnvToken(alias))); v != "" {
			return v
		}
		// Allow a direct model in the provider ref, e.g. ollama:llama3.1
		if strings.ContainsAny(alias, "-/.:") || strings.IndexFunc(alias, func(r rune) bool { return r >= '0' && r <= '9' }) >= 0 {
			return alias
		}
	}
	if v := strings.TrimSpace(os.Getenv("CLEARCLAUSE_OLLAMA_MODEL")); v != "" {
		return v
	}
	return "llama3.1"
}
