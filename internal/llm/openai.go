package llm

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// openaiProvider implements Provider using the OpenAI chat completions API.
// The prompt is sent as a single user message.
type openaiProvider struct {
	client openai.Client
	model  string
}

func newOpenAIProvider(cfg ProviderConfig) (Provider, error) {
	if err := requireKey(cfg, "OPENAI_API_KEY"); err != nil {
		return nil, err
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	return &openaiProvider{client: openai.NewClient(opts...), model: cfg.Model}, nil
}

func (p *openaiProvider) Complete(
	ctx context.Context,
	prompt string,
	maxTokens int,
	temperature float64,
) (Completion, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(p.model),
		MaxTokens:   openai.Int(int64(maxTokens)),
		Temperature: openai.Float(temperature),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return Completion{}, fmt.Errorf("openai: chat.completions.new: %w", err)
	}

	if len(resp.Choices) == 0 {
		return Completion{}, fmt.Errorf("openai: response contained no choices")
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return Completion{}, fmt.Errorf("openai: response contained no content")
	}
	model := resp.Model
	if model == "" {
		model = p.model
	}
	return Completion{
		Text:       content,
		TokensUsed: int(resp.Usage.TotalTokens),
		Model:      model,
	}, nil
}
