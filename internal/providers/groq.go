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
)

// GroqProvider supports generation via Groq's OpenAI-compatible API.
type GroqProvider struct {
	keyName string
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewGroqProvider(apiKey, keyName string) (*GroqProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("groq key missing for alias %q", keyName)
	}
	model := os.Getenv("CLEARCLAUSE_GROQ_MODEL")
	if strings.TrimSpace(model) == "" {
		model = "llama-3.1-8b-instant"
	}
	return &GroqProvider{
		keyName: keyName,
		apiKey:  strings.TrimSpace(apiKey),
		model:   model,
		baseURL: "https://api.groq.com/openai/v1",
		client:  &http.Client{Timeout: 60 * time.Second},
	}, nil
}

func (g *GroqProvider) Generate(ctx context.Context, req GenerateRequest) (Response, ProviderInfo, error) {
	info := ProviderInfo{Name: "groq", Key: g.keyName, Model: g.model}
	if g.apiKey == "" {
		return nil, info, fmt.Errorf("groq key missing for alias %q", g.keyName)
	}
	s := samplingOrDefault(req.Sampling)
	payload, _ := json.Marshal(map[string]any{
		"model": g.model,
		"messages": []map[string]string{
			{"role": "user", "content": req.Prompt},
		},
		"temperature": s.Temperature,
		"top_p":       s.TopP,
		"max_tokens":  s.MaxOutputTokens,
	})
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, info, fmt.Errorf("build groq request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, info, fmt.Errorf("groq generate request failed: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return nil, info, &StatusError{Provider: "groq", StatusCode: resp.StatusCode, Body: string(body)}
	}
	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, info, fmt.Errorf("decode groq response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, info, nil
	}
	return TextResponse{Text: parsed.Choices[0].Message.Content}, info, nil
}
