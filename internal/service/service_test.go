package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonwomen07/prompt-engineering/internal/apperr"
	"github.com/wonwomen07/prompt-engineering/internal/compare"
	"github.com/wonwomen07/prompt-engineering/internal/llm"
	"github.com/wonwomen07/prompt-engineering/internal/prompt"
	"github.com/wonwomen07/prompt-engineering/internal/technique"
)

type stubGateway struct {
	err         error
	prompt      string
	maxTokens   int
	temperature float64
	labels      llm.Labels
	calls       int
}

func (s *stubGateway) Complete(ctx context.Context, p string, maxTokens int, temperature float64) (llm.Completion, error) {
	s.calls++
	s.prompt, s.maxTokens, s.temperature = p, maxTokens, temperature
	s.labels = llm.LabelsFrom(ctx)
	if s.err != nil {
		return llm.Completion{}, s.err
	}
	return llm.Completion{Text: "Bonjour", TokensUsed: 17, Model: "gpt-4o-mini"}, nil
}

func newService(gw compare.Completer) *Service {
	s := New(gw, Options{})
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return s
}

func TestPrompt_ZeroShot(t *testing.T) {
	gw := &stubGateway{}
	s := newService(gw)

	got, err := s.Prompt(context.Background(), Request{
		Family:    technique.General,
		Technique: "zero_shot",
		Spec:      prompt.Spec{Task: "Translate to French", Input: "Hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", got.Text)
	assert.Equal(t, 17, got.TokensUsed)
	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.Equal(t, gw.prompt, got.Prompt)
	assert.Contains(t, got.Prompt, "Translate to French")
	assert.Equal(t, technique.ZeroShot, got.Technique)
	assert.False(t, got.Fallback)
	assert.Equal(t, 500, gw.maxTokens)
	assert.InDelta(t, 0.7, gw.temperature, 1e-9)
	assert.Equal(t, "2026-01-02T03:04:05Z", got.Timestamp.Format(time.RFC3339))
	assert.Equal(t, llm.Labels{Family: "general", Technique: "zero_shot"}, gw.labels)
}

func TestPrompt_Fallback(t *testing.T) {
	gw := &stubGateway{}
	got, err := newService(gw).Prompt(context.Background(), Request{
		Family:    technique.Sentiment,
		Technique: "telepathy",
		Spec:      prompt.Spec{Input: "I love it"},
	})
	require.NoError(t, err)
	assert.True(t, got.Fallback)
	assert.Equal(t, "telepathy", got.Requested)
	assert.Equal(t, technique.ZeroShot, got.Technique)
	assert.Equal(t, prompt.SentimentZeroShot("I love it"), got.Prompt)
}

func TestPrompt_Overrides(t *testing.T) {
	gw := &stubGateway{}
	temp, tokens := 0.1, 64
	_, err := newService(gw).Prompt(context.Background(), Request{
		Family:      technique.Code,
		Technique:   "step_by_step",
		Spec:        prompt.Spec{Task: "reverse a list", Code: prompt.CodeOptions{Language: "Go"}},
		Temperature: &temp,
		MaxTokens:   &tokens,
	})
	require.NoError(t, err)
	assert.Equal(t, 64, gw.maxTokens)
	assert.InDelta(t, 0.1, gw.temperature, 1e-9)
}

func TestPrompt_CodeDefaultCeiling(t *testing.T) {
	gw := &stubGateway{}
	_, err := newService(gw).Prompt(context.Background(), Request{
		Family: technique.Code,
		Spec:   prompt.Spec{Task: "reverse a list", Code: prompt.CodeOptions{Language: "Go"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 800, gw.maxTokens)
}

func TestPrompt_ValidationSkipsGateway(t *testing.T) {
	gw := &stubGateway{}
	_, err := newService(gw).Prompt(context.Background(), Request{
		Family:    technique.General,
		Technique: "few_shot",
		Spec:      prompt.Spec{Task: "t", Input: "i"},
	})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Zero(t, gw.calls)
}

func TestPrompt_BackendErrorPassesThrough(t *testing.T) {
	gw := &stubGateway{err: apperr.Backend("openai", errors.New("rate limit"))}
	_, err := newService(gw).Prompt(context.Background(), Request{
		Family: technique.General,
		Spec:   prompt.Spec{Task: "t", Input: "i"},
	})
	require.Error(t, err)
	assert.True(t, apperr.IsBackend(err))
}

func TestRender_NoModelCall(t *testing.T) {
	gw := &stubGateway{}
	r, err := newService(gw).Render(Request{
		Family:    technique.Summarization,
		Technique: "structured",
		Spec:      prompt.Spec{Input: "text", Summary: prompt.SummaryOptions{Length: prompt.LengthShort}},
	})
	require.NoError(t, err)
	assert.Contains(t, r.Text, "1-2 sentences")
	assert.Zero(t, gw.calls)
}

func TestCompare(t *testing.T) {
	gw := &stubGateway{}
	out, err := newService(gw).Compare(context.Background(), compare.Request{Task: "t", Input: "i"})
	require.NoError(t, err)
	assert.Len(t, out.Entries, 2)
	assert.Equal(t, 2, gw.calls)
}
