package schema_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/wonwomen07/prompt-engineering/internal/compare"
	"github.com/wonwomen07/prompt-engineering/internal/llm"
	"github.com/wonwomen07/prompt-engineering/internal/schema"
	"github.com/wonwomen07/prompt-engineering/internal/service"
	"github.com/wonwomen07/prompt-engineering/internal/technique"
)

func sampleOutcome() compare.Outcome {
	return compare.Outcome{
		ID:        "0b6c6f2e-5d0c-4d8e-9a43-3f5b8c1d2e7f",
		Task:      "Analyze this customer feedback",
		Input:     "The app crashes frequently",
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Entries: []compare.Entry{
			{Technique: technique.ZeroShot, Prompt: "p0", Result: &llm.Completion{Text: "r0", TokensUsed: 10, Model: "m"}},
			{Technique: technique.FewShot, Prompt: "p1", Err: &compare.EntryError{Kind: "backend_error", Message: "backend: openai: quota"}},
			{Technique: technique.ChainOfThought, Prompt: "p2", Result: &llm.Completion{Text: "r2", TokensUsed: 30, Model: "m"}},
			{Technique: technique.RoleBased, Prompt: "p3", Result: &llm.Completion{Text: "r3", TokensUsed: 40, Model: "m"}},
		},
	}
}

func TestComparisonResults_KeyOrder(t *testing.T) {
	resp := schema.NewComparisonResponse(sampleOutcome())
	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(b)

	last := -1
	for _, key := range []string{`"zero_shot":`, `"few_shot":`, `"chain_of_thought":`, `"role_based":`} {
		idx := strings.Index(s, key)
		if idx < 0 {
			t.Fatalf("missing key %s in %s", key, s)
		}
		if idx < last {
			t.Errorf("key %s out of order in %s", key, s)
		}
		last = idx
	}

	want := []string{"zero_shot", "few_shot", "chain_of_thought", "role_based"}
	for i, id := range resp.TechniquesCompared {
		if id != want[i] {
			t.Errorf("techniques_compared[%d] = %q, want %q", i, id, want[i])
		}
	}
}

func TestComparisonResults_EntryShapes(t *testing.T) {
	b, err := json.Marshal(schema.NewComparisonResponse(sampleOutcome()))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var doc struct {
		Results map[string]map[string]any `json:"comparison_results"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	ok := doc.Results["zero_shot"]
	if ok["status"] != "ok" || ok["response"] != "r0" || ok["prompt_used"] != "p0" {
		t.Errorf("unexpected ok entry: %v", ok)
	}
	if _, has := ok["error"]; has {
		t.Error("ok entry must not carry an error")
	}

	failed := doc.Results["few_shot"]
	if failed["status"] != "error" {
		t.Errorf("failed entry status = %v", failed["status"])
	}
	if _, has := failed["response"]; has {
		t.Error("failed entry must not carry a response")
	}
	errObj, _ := failed["error"].(map[string]any)
	if errObj["kind"] != "backend_error" || !strings.Contains(errObj["message"].(string), "quota") {
		t.Errorf("unexpected error record: %v", errObj)
	}
}

func TestComparisonResults_ZeroTokensKept(t *testing.T) {
	out := sampleOutcome()
	out.Entries[0].Result.TokensUsed = 0
	b, err := json.Marshal(schema.NewComparisonResponse(out))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var doc struct {
		Results map[string]map[string]any `json:"comparison_results"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got, has := doc.Results["zero_shot"]["tokens_used"]; !has || got != float64(0) {
		t.Errorf("ok entry tokens_used = %v (present %v), want 0", got, has)
	}
	if _, has := doc.Results["few_shot"]["tokens_used"]; has {
		t.Error("failed entry must not carry tokens_used")
	}
}

func TestHealth_TimestampKey(t *testing.T) {
	b, err := json.Marshal(schema.Health{Status: "healthy", Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(b), `"timestamp":"2026-03-01T12:00:00Z"`) {
		t.Errorf("health body %s lacks timestamp", b)
	}
}

func TestComparisonResults_DecodeKeepsOrder(t *testing.T) {
	in := `{"role_based":{"status":"ok","response":"a","prompt_used":"p"},"zero_shot":{"status":"error","prompt_used":"","error":{"kind":"backend_error","message":"x"}}}`
	var r schema.ComparisonResults
	if err := json.Unmarshal([]byte(in), &r); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(r) != 2 || r[0].Technique != "role_based" || r[1].Technique != "zero_shot" {
		t.Fatalf("unexpected decode: %+v", r)
	}
	if r[1].Error == nil || r[1].Error.Kind != "backend_error" {
		t.Errorf("error record lost: %+v", r[1])
	}
	if err := json.Unmarshal([]byte(`[]`), &r); err == nil {
		t.Error("expected error for non-object input")
	}
}

func TestComparisonResults_Empty(t *testing.T) {
	b, err := json.Marshal(schema.ComparisonResults{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != "{}" {
		t.Errorf("got %s, want {}", b)
	}
}

func TestNewPromptResponse(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	got := schema.NewPromptResponse(service.Response{
		Text:       "Positive",
		Prompt:     "Classify...",
		TokensUsed: 9,
		Model:      "gpt-4o-mini",
		Timestamp:  ts,
		Family:     technique.Sentiment,
		Requested:  "vibes",
		Technique:  technique.ZeroShot,
		Fallback:   true,
	})
	b, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, want := range []string{
		`"response":"Positive"`,
		`"technique":"vibes"`,
		`"resolved_technique":"zero_shot"`,
		`"fallback":true`,
		`"timestamp":"2026-03-01T12:00:00Z"`,
	} {
		if !strings.Contains(string(b), want) {
			t.Errorf("missing %s in %s", want, b)
		}
	}
}

func TestPromptRequest_Decode(t *testing.T) {
	in := `{"task":"Extract","input_text":"x","examples":[{"input":"a","output":"b"}],"temperature":0.3}`
	var r schema.PromptRequest
	if err := json.Unmarshal([]byte(in), &r); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(r.Examples) != 1 || r.Examples[0].Output != "b" {
		t.Errorf("examples = %+v", r.Examples)
	}
	if r.Temperature == nil || *r.Temperature != 0.3 {
		t.Errorf("temperature = %v", r.Temperature)
	}
	if r.MaxTokens != nil {
		t.Errorf("max_tokens should stay nil when absent")
	}
}

func TestNewFamilyInfos(t *testing.T) {
	infos := schema.NewFamilyInfos(technique.Default())
	if len(infos) != 5 {
		t.Fatalf("expected 5 families, got %d", len(infos))
	}
	for _, fi := range infos {
		if len(fi.Techniques) == 0 {
			t.Errorf("family %s has no techniques", fi.Family)
			continue
		}
		if fi.Techniques[0].ID != "zero_shot" {
			t.Errorf("family %s: first technique = %s, want zero_shot", fi.Family, fi.Techniques[0].ID)
		}
		if fi.Description == "" {
			t.Errorf("family %s has no description", fi.Family)
		}
	}
}
