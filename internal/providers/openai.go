package providers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

type chatGenerator interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error)
}

// OpenAIProvider talks to OpenAI chat completions through the eino chat model.
type OpenAIProvider struct {
	keyName string
	model   string
	chat    chatGenerator
}

func NewOpenAIProvider(ctx context.Context, apiKey, keyName string) (*OpenAIProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("openai key missing for alias %q", keyName)
	}
	model := strings.TrimSpace(os.Getenv("CLEARCLAUSE_OPENAI_MODEL"))
	if model == "" {
		model = "gpt-4o-mini"
	}
	p := &OpenAIProvider{keyName: keyName, model: model}
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey: apiKey,
		Model:  model,
	})
	if err != nil {
		return nil, fmt.Errorf("create openai chat model: %w", err)
	}
	p.chat = cm
	return p, nil
}

func (o *OpenAIProvider) Generate(ctx context.Context, req GenerateRequest) (Response, ProviderInfo, error) {
	info := ProviderInfo{Name: "openai", Model: o.model, Key: o.keyName}
	if o.chat == nil {
		return nil, info, fmt.Errorf("openai key missing for alias %q", o.keyName)
	}
	s := samplingOrDefault(req.Sampling)
	msg, err := o.chat.Generate(ctx, []*schema.Message{schema.UserMessage(req.Prompt)},
		einomodel.WithTemperature(s.Temperature),
		einomodel.WithTopP(s.TopP),
		einomodel.WithMaxTokens(int(s.MaxOutputTokens)),
	)
	if err != nil {
		return nil, info, fmt.Errorf("openai generate request failed: %w", err)
	}
	if msg == nil {
		return nil, info, nil
	}
	return TextResponse{Text: msg.Content}, info, nil
}
