package providers

import "testing"

func TestParseProviderList(t *testing.T) {
	refs := ParseProviderList("Gemini|openai:key1|ollama:llama3.1")
	if len(refs) != 3 {
		t.Fatalf("expected 3 providers got %d", len(refs))
	}
	if refs[0].Name != "gemini" {
		t.Fatalf("expected lower-cased name, got %+v", refs[0])
	}
	if refs[1].Name != "openai" || refs[1].KeyAlias != "key1" {
		t.Fatalf("unexpected parse result: %+v", refs[1])
	}
	if refs[2].KeyAlias != "llama3.1" {
		t.Fatalf("unexpected parse result: %+v", refs[2])
	}
}

func TestParseProviderListEmpty(t *testing.T) {
	refs := ParseProviderList(" | ")
	if len(refs) != 1 || refs[0].Name != "mock" {
		t.Fatalf("expected mock fallback, got %+v", refs)
	}
}
