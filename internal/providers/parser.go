package providers

import "clearclause/internal/config"

type ProviderRef struct {
	Raw      string
	Name     string
	KeyAlias string
}

// ParseProviderList splits "gemini|openai:team" into refs. An empty list
// yields the mock provider.
func ParseProviderList(raw string) []ProviderRef {
	entries := config.ProviderEntries(raw)
	out := make([]ProviderRef, 0, len(entries))
	for _, e := range entries {
		out = append(out, ProviderRef{Raw: e.Raw, Name: e.Name, KeyAlias: e.Alias})
	}
	return out
}
