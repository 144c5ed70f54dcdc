package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeContentGenerator struct {
	resp   *genai.GenerateContentResponse
	err    error
	model  string
	config *genai.GenerateContentConfig
	prompt string
}

func (f *fakeContentGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func TestGeminiProviderMapsCandidates(t *testing.T) {
	fake := &fakeContentGenerator{resp: &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: "A lease is a contract."}}},
		}},
	}}
	g := &GeminiProvider{model: "gemini-test", models: fake}

	resp, info, err := g.Generate(context.Background(), GenerateRequest{Prompt: "What is a lease?", Sampling: PreciseSampling})
	require.NoError(t, err)
	assert.Equal(t, "gemini", info.Name)
	assert.Equal(t, "gemini-test", fake.model)
	assert.Equal(t, "What is a lease?", fake.prompt)
	require.NotNil(t, fake.config.Temperature)
	assert.InDelta(t, 0.3, *fake.config.Temperature, 1e-6)
	assert.Equal(t, int32(8192), fake.config.MaxOutputTokens)

	cands, ok := resp.(CandidatesResponse)
	require.True(t, ok, "expected candidates variant, got %T", resp)
	require.Len(t, cands.Candidates, 1)
	assert.Equal(t, "A lease is a contract.", cands.Candidates[0].Content.Parts[0].Text)
}

func TestGeminiProviderDefaultsSampling(t *testing.T) {
	fake := &fakeContentGenerator{resp: &genai.GenerateContentResponse{}}
	g := &GeminiProvider{model: "gemini-test", models: fake}

	_, _, err := g.Generate(context.Background(), GenerateRequest{Prompt: "x"})
	require.NoError(t, err)
	assert.InDelta(t, 0.7, *fake.config.Temperature, 1e-6)
	assert.InDelta(t, 40, *fake.config.TopK, 1e-6)
}

func TestGeminiProviderWrapsErrors(t *testing.T) {
	fake := &fakeContentGenerator{err: genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED", Message: "quota exceeded"}}
	g := &GeminiProvider{model: "gemini-test", models: fake}

	_, _, err := g.Generate(context.Background(), GenerateRequest{Prompt: "x"})
	require.Error(t, err)
	var apiErr genai.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, ErrorQuota, ClassifyError(err))
}

func TestNewGeminiProviderRequiresKey(t *testing.T) {
	_, err := NewGeminiProvider(context.Background(), " ", "", "")
	require.Error(t, err)
}
