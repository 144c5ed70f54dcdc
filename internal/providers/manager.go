package providers

import (
	"context"
	"fmt"
	"strings"

	"clearclause/internal/config"
)

type NamedLLMProvider struct {
	Ref      ProviderRef
	Provider LLMProvider
}

// Manager holds the configured bindings in list order. The first serves
// generation; the rest are tried in turn when it fails.
type Manager struct {
	llmProviders []NamedLLMProvider
}

func NewManager(ctx context.Context, cfg config.Config) (*Manager, error) {
	m := &Manager{}
	for _, ref := range ParseProviderList(cfg.LLMProvider) {
		p, err := buildProvider(ctx, ref, cfg)
		if err != nil {
			return nil, fmt.Errorf("provider %q: %w", ref.Raw, err)
		}
		m.llmProviders = append(m.llmProviders, NamedLLMProvider{Ref: ref, Provider: p})
	}
	return m, nil
}

func (m *Manager) Primary() (LLMProvider, ProviderRef) {
	if len(m.llmProviders) == 0 {
		return NewMockProvider(), ProviderRef{Raw: "mock", Name: "mock"}
	}
	return m.llmProviders[0].Provider, m.llmProviders[0].Ref
}

// Fallbacks returns every configured provider after the primary, in order.
func (m *Manager) Fallbacks() []LLMProvider {
	if len(m.llmProviders) < 2 {
		return nil
	}
	out := make([]LLMProvider, 0, len(m.llmProviders)-1)
	for _, p := range m.llmProviders[1:] {
		out = append(out, p.Provider)
	}
	return out
}

func (m *Manager) Names() []string {
	out := make([]string, 0, len(m.llmProviders))
	for _, p := range m.llmProviders {
		out = append(out, p.Ref.Name)
	}
	return out
}

func buildProvider(ctx context.Context, ref ProviderRef, cfg config.Config) (LLMProvider, error) {
	key := cfg.ProviderKey(ref.Name, ref.KeyAlias)
	switch strings.ToLower(ref.Name) {
	case "mock":
		return NewMockProvider(), nil
	case "gemini":
		return NewGeminiProvider(ctx, key, cfg.GeminiModel, ref.KeyAlias)
	case "openai":
		return NewOpenAIProvider(ctx, key, ref.KeyAlias)
	case "groq":
		return NewGroqProvider(key, ref.KeyAlias)
	case "ollama":
		return NewOllamaProvider(ref.KeyAlias), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", ref.Name)
	}
}
