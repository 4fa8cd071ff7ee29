package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	googleoption "google.golang.org/api/option"
)

// googleProvider implements Provider using the Google Generative AI SDK.
// A new genai.Client is created per Complete call so that the caller's
// context governs the connection and the client is always closed after use.
type googleProvider struct {
	apiKey  string
	baseURL string
	model   string
}

func newGoogleProvider(cfg ProviderConfig) (Provider, error) {
	if err := requireKey(cfg, "GOOGLE_API_KEY"); err != nil {
		return nil, err
	}
	return &googleProvider{apiKey: cfg.APIKey, baseURL: cfg.BaseURL, model: cfg.Model}, nil
}

func (p *googleProvider) Complete(
	ctx context.Context,
	prompt string,
	maxTokens int,
	temperature float64,
) (Completion, error) {
	opts := []googleoption.ClientOption{googleoption.WithAPIKey(p.apiKey)}
	if p.baseURL != "" {
		opts = append(opts, googleoption.WithEndpoint(p.baseURL))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return Completion{}, fmt.Errorf("google: genai client: %w", err)
	}
	defer client.Close()

	m := client.GenerativeModel(p.model)
	maxOut := int32(maxTokens)
	m.MaxOutputTokens = &maxOut
	temp32 := float32(temperature)
	m.Temperature = &temp32

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return Completion{}, fmt.Errorf("google: generate content: %w", err)
	}

	var parts []string
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				parts = append(parts, string(t))
			}
		}
	}
	if len(parts) == 0 {
		return Completion{}, fmt.Errorf("google: response contained no text content")
	}
	var tokens int
	if resp.UsageMetadata != nil {
		tokens = int(resp.UsageMetadata.TotalTokenCount)
	}
	return Completion{
		Text:       strings.Join(parts, ""),
		TokensUsed: tokens,
		Model:      p.model,
	}, nil
}
