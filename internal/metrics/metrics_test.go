package metrics

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/wonwomen07/prompt-engineering/internal/apperr"
	"github.com/wonwomen07/prompt-engineering/internal/llm"
)

func TestMetricsCollector_ObserveCall(t *testing.T) {
	collector := NewCollector()
	ctx := context.Background()
	labels := llm.Labels{Family: "general", Technique: "zero_shot"}

	collector.ObserveCall(ctx, llm.Call{Provider: "openai", Model: "gpt-4o-mini", Labels: labels, TokensUsed: 30, Duration: time.Second})
	collector.ObserveCall(ctx, llm.Call{Provider: "openai", Model: "gpt-4o-mini", Labels: labels, TokensUsed: 12, Duration: time.Second})
	collector.ObserveCall(ctx, llm.Call{Provider: "openai", Labels: labels, Err: apperr.Backend("openai", errors.New("quota"))})

	if got := testutil.ToFloat64(collector.llmCalls.WithLabelValues("openai", "general", "zero_shot", "ok")); got != 2 {
		t.Errorf("expected 2 ok calls, got %f", got)
	}
	if got := testutil.ToFloat64(collector.llmCalls.WithLabelValues("openai", "general", "zero_shot", "backend_error")); got != 1 {
		t.Errorf("expected 1 backend_error call, got %f", got)
	}
	if got := testutil.ToFloat64(collector.llmTokens.WithLabelValues("gpt-4o-mini", "zero_shot")); got != 42 {
		t.Errorf("expected 42 tokens, got %f", got)
	}
	if got := testutil.CollectAndCount(collector.llmDuration); got != 1 {
		t.Errorf("expected 1 histogram series, got %d", got)
	}
}

func TestMetricsCollector_RecordRequest(t *testing.T) {
	collector := NewCollector()
	ctx := context.Background()

	collector.RecordRequest(ctx, "POST", "/zero-shot", 200, 20*time.Millisecond)
	collector.RecordRequest(ctx, "POST", "/zero-shot", 400, time.Millisecond)
	collector.RecordRequest(ctx, "GET", "/health", 200, time.Millisecond)

	if got := testutil.CollectAndCount(collector.httpRequests); got != 3 {
		t.Errorf("expected 3 request series, got %d", got)
	}
	if got := testutil.ToFloat64(collector.httpRequests.WithLabelValues("POST", "/zero-shot", "400")); got != 1 {
		t.Errorf("expected 1 bad request, got %f", got)
	}
}

func TestMetricsCollector_RecordComparisonEntry(t *testing.T) {
	collector := NewCollector()
	ctx := context.Background()

	collector.RecordComparisonEntry(ctx, "few_shot", false)
	collector.RecordComparisonEntry(ctx, "zero_shot", true)

	if got := testutil.ToFloat64(collector.comparisonEntries.WithLabelValues("few_shot", "error")); got != 1 {
		t.Errorf("expected 1 failed few_shot entry, got %f", got)
	}
}

func TestMetricsCollector_Handler(t *testing.T) {
	collector := NewCollector()
	collector.RecordRequest(context.Background(), "GET", "/health", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(string(body), `promptlab_http_requests_total{method="GET",route="/health",status="200"} 1`) {
		t.Errorf("exposition missing request counter:\n%s", body)
	}
}

func TestNoopCollector(t *testing.T) {
	var c Collector = NewNoopCollector()
	c.ObserveCall(context.Background(), llm.Call{})
	c.RecordRequest(context.Background(), "GET", "/", 200, 0)
	c.RecordComparisonEntry(context.Background(), "zero_shot", true)
}

var _ Collector = (*MetricsCollector)(nil)
