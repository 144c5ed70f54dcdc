package providers

import (
	"context"
	"strings"
	"sync"
)

// MockStep is one scripted reply of a MockProvider.
type MockStep struct {
	Response Response
	Err      error
}

// MockProvider returns deterministic output. With a script it replays the
// steps in order and repeats the last one once the script runs out; without
// one it answers per operation.
type MockProvider struct {
	mu      sync.Mutex
	script  []MockStep
	calls   int
	prompts []string
}

func NewMockProvider(script ...MockStep) *MockProvider {
	return &MockProvider{script: script}
}

func (m *MockProvider) Generate(ctx context.Context, req GenerateRequest) (Response, ProviderInfo, error) {
	_ = ctx
	info := ProviderInfo{Name: "mock", Model: "mock-llm-v1", Key: "mock"}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.prompts = append(m.prompts, req.Prompt)
	if len(m.script) > 0 {
		idx := m.calls - 1
		if idx >= len(m.script) {
			idx = len(m.script) - 1
		}
		step := m.script[idx]
		return step.Response, info, step.Err
	}

	text := "Mock response."
	switch op := strings.ToLower(req.Operation); {
	case strings.Contains(op, "qa"):
		text = "Mock answer. This is general information and not legal advice."
	case strings.Contains(op, "summar"):
		text = "## Mock Summary\n- Parties: Lessor and Lessee\n- Term: 12 months"
	case strings.Contains(op, "translat"):
		text = "Mock translation."
	}
	return TextResponse{Text: text}, info, nil
}

func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockProvider) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}
