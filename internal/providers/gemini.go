package providers

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiProvider calls the Gemini API through the official genai SDK.
type GeminiProvider struct {
	alias  string
	model  string
	models contentGenerator
}

func NewGeminiProvider(ctx context.Context, apiKey, model, alias string) (*GeminiProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini api key missing")
	}
	if strings.TrimSpace(model) == "" {
		model = "gemini-1.5-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiProvider{alias: alias, model: model, models: client.Models}, nil
}

func (g *GeminiProvider) Generate(ctx context.Context, req GenerateRequest) (Response, ProviderInfo, error) {
	info := ProviderInfo{Name: "gemini", Model: g.model, Key: g.alias}
	s := samplingOrDefault(req.Sampling)
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), &genai.GenerateContentConfig{
		Temperature:     ptr(s.Temperature),
		TopP:            ptr(s.TopP),
		TopK:            ptr(s.TopK),
		MaxOutputTokens: s.MaxOutputTokens,
	})
	if err != nil {
		return nil, info, fmt.Errorf("gemini generate request failed: %w", err)
	}
	return candidatesFromGenAI(resp), info, nil
}

func candidatesFromGenAI(resp *genai.GenerateContentResponse) Response {
	if resp == nil {
		return nil
	}
	out := CandidatesResponse{Candidates: make([]Candidate, 0, len(resp.Candidates))}
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			out.Candidates = append(out.Candidates, Candidate{})
			continue
		}
		content := &Content{Parts: make([]Part, 0, len(c.Content.Parts))}
		for _, p := range c.Content.Parts {
			if p == nil {
				content.Parts = append(content.Parts, Part{})
				continue
			}
			content.Parts = append(content.Parts, Part{Text: p.Text})
		}
		out.Candidates = append(out.Candidates, Candidate{Content: content})
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}
