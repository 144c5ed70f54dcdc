package providers

import (
	"context"
	"errors"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChat struct {
	reply *schema.Message
	err   error
	seen  []*schema.Message
	opts  int
}

func (f *fakeChat) Generate(_ context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	f.seen = input
	f.opts = len(opts)
	return f.reply, f.err
}

func TestOpenAIProviderReturnsText(t *testing.T) {
	chat := &fakeChat{reply: schema.AssistantMessage("Bonjour", nil)}
	p := &OpenAIProvider{model: "gpt-test", chat: chat}

	resp, info, err := p.Generate(context.Background(), GenerateRequest{Prompt: "Translate hello"})
	require.NoError(t, err)
	assert.Equal(t, "openai", info.Name)
	assert.Equal(t, TextResponse{Text: "Bonjour"}, resp)
	require.Len(t, chat.seen, 1)
	assert.Equal(t, schema.User, chat.seen[0].Role)
	assert.Equal(t, 3, chat.opts)
}

func TestOpenAIProviderMissingKey(t *testing.T) {
	_, err := NewOpenAIProvider(context.Background(), "", "team")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key missing")

	_, _, err = (&OpenAIProvider{keyName: "team"}).Generate(context.Background(), GenerateRequest{Prompt: "x"})
	require.Error(t, err)
}

func TestOpenAIProviderWrapsRateLimit(t *testing.T) {
	p := &OpenAIProvider{model: "gpt-test", chat: &fakeChat{err: errors.New("error, status code: 429, message: Rate limit reached")}}

	_, _, err := p.Generate(context.Background(), GenerateRequest{Prompt: "x"})
	require.Error(t, err)
	assert.Equal(t, ErrorRate, ClassifyError(err))
}
