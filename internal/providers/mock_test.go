package providers

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestMockProviderReplaysScript(t *testing.T) {
	boom := errors.New("429 Too Many Requests")
	m := NewMockProvider(
		MockStep{Err: boom},
		MockStep{Response: TextResponse{Text: "ok"}},
	)
	ctx := context.Background()

	if _, _, err := m.Generate(ctx, GenerateRequest{Prompt: "a"}); !errors.Is(err, boom) {
		t.Fatalf("first call should fail with scripted error, got %v", err)
	}
	for i := 0; i < 2; i++ {
		resp, _, err := m.Generate(ctx, GenerateRequest{Prompt: "b"})
		if err != nil || resp != (TextResponse{Text: "ok"}) {
			t.Fatalf("call %d: unexpected %v %v", i+2, resp, err)
		}
	}
	if m.Calls() != 3 {
		t.Fatalf("expected 3 calls got %d", m.Calls())
	}
	if got := m.Prompts(); len(got) != 3 || got[0] != "a" {
		t.Fatalf("unexpected prompts %v", got)
	}
}

func TestMockProviderDefaultAnswers(t *testing.T) {
	m := NewMockProvider()
	resp, _, err := m.Generate(context.Background(), GenerateRequest{Operation: "qa", Prompt: "q"})
	if err != nil {
		t.Fatalf("unexpected err %v", err)
	}
	tr, ok := resp.(TextResponse)
	if !ok || !strings.Contains(tr.Text, "legal advice") {
		t.Fatalf("unexpected qa mock reply %#v", resp)
	}
}
