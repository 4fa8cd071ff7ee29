// Package llm is the model gateway: it sends a rendered prompt to the
// configured provider and returns the completion text, the token count and
// the model that served it.
//
// Every provider failure (transport, authentication, quota, malformed or empty
// response, deadline) reaches callers as an *apperr.BackendError.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Provider is the interface for LLM backends.
type Provider interface {
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (Completion, error)
}

// Completion is one successful model response.
type Completion struct {
	Text       string
	TokensUsed int
	Model      string
}

// ProviderConfig selects and configures a provider.
type ProviderConfig struct {
	Name    string
	Model   string
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// DefaultModels maps a provider name to the model used when
// ProviderConfig.Model is empty.
var DefaultModels = map[string]string{
	"openai":    "gpt-4o-mini",
	"anthropic": "claude-3-5-haiku-latest",
	"google":    "gemini-1.5-flash",
}

// NewProvider is the factory for creating LLM providers. It is a package-level
// variable so tests can replace it with a mock without modifying the call site.
// Tests must restore the original value; use t.Cleanup to do so safely.
var NewProvider func(cfg ProviderConfig) (Provider, error) = defaultNewProvider

// defaultNewProvider dispatches to the appropriate provider implementation.
func defaultNewProvider(cfg ProviderConfig) (Provider, error) {
	cfg.Name = strings.ToLower(strings.TrimSpace(cfg.Name))
	if cfg.Name == "" {
		cfg.Name = "openai"
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModels[cfg.Name]
	}
	switch cfg.Name {
	case "openai":
		return newOpenAIProvider(cfg)
	case "anthropic":
		return newAnthropicProvider(cfg)
	case "google":
		return newGoogleProvider(cfg)
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Name)
	}
}

func requireKey(cfg ProviderConfig, env string) error {
	if cfg.APIKey == "" {
		return fmt.Errorf("llm: %s not set", env)
	}
	return nil
}

// ── Anthropic provider ───────────────────────────────────────────────────────

// anthropicProvider implements Provider using the Anthropic SDK.
// anthropic.Client is a value type; the SDK's NewClient returns it by value.
type anthropicProvider struct {
	client anthropic.Client
	model  string
}

func newAnthropicProvider(cfg ProviderConfig) (Provider, error) {
	if err := requireKey(cfg, "ANTHROPIC_API_KEY"); err != nil {
		return nil, err
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	return &anthropicProvider{client: anthropic.NewClient(opts...), model: cfg.Model}, nil
}

func (p *anthropicProvider) Complete(
	ctx context.Context,
	prompt string,
	maxTokens int,
	temperature float64,
) (Completion, error) {
	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(p.model),
		MaxTokens:   int64(maxTokens),
		Temperature: anthropic.Float(temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return Completion{}, fmt.Errorf("anthropic: messages.new: %w", err)
	}

	var parts []string
	for _, block := range msg.Content {
		// "text" is the only content block type carrying assistant output.
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	if len(parts) == 0 {
		return Completion{}, fmt.Errorf("anthropic: response contained no text content blocks")
	}
	model := string(msg.Model)
	if model == "" {
		model = p.model
	}
	return Completion{
		Text:       strings.Join(parts, ""),
		TokensUsed: int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
		Model:      model,
	}, nil
}
