package render

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/wonwomen07/prompt-engineering/internal/schema"
)

func sampleComparison() *schema.ComparisonResponse {
	return &schema.ComparisonResponse{
		ID:    "5f1e",
		Task:  "Analyze | feedback",
		Input: "The app crashes\nfrequently",
		ComparisonResults: schema.ComparisonResults{
			{Technique: "zero_shot", Status: schema.StatusOK, Response: "Mixed.", PromptUsed: "p0", TokensUsed: intPtr(21), Model: "gpt-4o-mini"},
			{Technique: "few_shot", Status: schema.StatusError, PromptUsed: "p1",
				Error: &schema.EntryError{Kind: "backend_error", Message: "backend: openai: quota"}},
			{Technique: "chain_of_thought", Status: schema.StatusOK, Response: "Step 1...", PromptUsed: "p2", TokensUsed: intPtr(80), Model: "gpt-4o-mini"},
		},
		Timestamp:          time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		TechniquesCompared: []string{"zero_shot", "few_shot", "chain_of_thought"},
	}
}

func TestRenderJSON_Comparison(t *testing.T) {
	b, err := RenderJSON(sampleComparison())
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	var got schema.ComparisonResponse
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got.ComparisonResults) != 3 || got.ComparisonResults[1].Technique != "few_shot" {
		t.Errorf("unexpected results after decode: %+v", got.ComparisonResults)
	}
	if !strings.Contains(string(b), "\n  \"id\"") {
		t.Error("expected indented output")
	}
}

func TestRenderJSON_Nil(t *testing.T) {
	if _, err := RenderJSON(nil); err == nil {
		t.Error("expected error for nil document")
	}
}

func TestRenderJSON_MarshalErrorKeepsCause(t *testing.T) {
	_, err := RenderJSON(map[string]any{"ch": make(chan int)})
	if err == nil {
		t.Fatal("expected error for unsupported type")
	}
	var ute *json.UnsupportedTypeError
	if !errors.As(err, &ute) {
		t.Errorf("cause lost: %v", err)
	}
	if !strings.HasPrefix(err.Error(), "render: json marshal") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestRenderComparisonMarkdown(t *testing.T) {
	md := RenderComparisonMarkdown(sampleComparison())

	for _, want := range []string{
		"## Technique Comparison",
		"**Task:** Analyze \\| feedback",
		"**Input:** The app crashes frequently",
		"| zero_shot | ok | 21 | gpt-4o-mini |",
		"| few_shot | error | - | - |",
		"**Error (backend_error):** backend: openai: quota",
		"```text\np2\n```",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}

	z := strings.Index(md, "<strong>zero_shot</strong>")
	f := strings.Index(md, "<strong>few_shot</strong>")
	c := strings.Index(md, "<strong>chain_of_thought</strong>")
	if !(z < f && f < c) {
		t.Errorf("details sections out of order: %d %d %d", z, f, c)
	}
}

func TestRenderComparisonMarkdown_Nil(t *testing.T) {
	if got := RenderComparisonMarkdown(nil); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestRenderPromptMarkdown_Fallback(t *testing.T) {
	md := RenderPromptMarkdown(&schema.PromptResponse{
		Response:          "Positive",
		PromptUsed:        "Classify the sentiment",
		TokensUsed:        7,
		Model:             "gpt-4o-mini",
		Family:            "sentiment",
		Technique:         "vibes",
		ResolvedTechnique: "zero_shot",
		Fallback:          true,
	})
	for _, want := range []string{"## sentiment / zero_shot", "`vibes`", "**Tokens:** 7", "Positive"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestRenderTechniques(t *testing.T) {
	md := RenderTechniques([]schema.FamilyInfo{{
		Family: "code",
		Techniques: []schema.TechniqueInfo{
			{ID: "zero_shot", Description: "Write the code directly.", MaxTokens: 800},
		},
	}})
	if !strings.Contains(md, "| code | zero_shot | 800 | Write the code directly. |") {
		t.Errorf("unexpected table:\n%s", md)
	}
}

func TestMdEscape(t *testing.T) {
	if got := mdEscape("a|b\r\nc"); got != "a\\|b c" {
		t.Errorf("mdEscape = %q", got)
	}
}

func intPtr(n int) *int { return &n }
