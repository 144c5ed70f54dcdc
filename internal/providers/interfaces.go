package providers

import "context"

type ProviderInfo struct {
	Name  string `json:"name"`
	Model string `json:"model"`
	Key   string `json:"key"`
}

// Sampling carries the generation parameters a binding forwards to its model.
type Sampling struct {
	Temperature     float32 `json:"temperature"`
	TopP            float32 `json:"top_p"`
	TopK            float32 `json:"top_k"`
	MaxOutputTokens int32   `json:"max_output_tokens"`
}

var (
	GeneralSampling = Sampling{Temperature: 0.7, TopP: 0.8, TopK: 40, MaxOutputTokens: 8192}
	PreciseSampling = Sampling{Temperature: 0.3, TopP: 0.8, TopK: 40, MaxOutputTokens: 8192}
)

type GenerateRequest struct {
	Operation string   `json:"operation"`
	Prompt    string   `json:"prompt"`
	Sampling  Sampling `json:"sampling"`
}

type LLMProvider interface {
	Generate(ctx context.Context, req GenerateRequest) (Response, ProviderInfo, error)
}

func samplingOrDefault(s Sampling) Sampling {
	if s == (Sampling{}) {
		return GeneralSampling
	}
	return s
}
