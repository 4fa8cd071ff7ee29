package metrics

import (
	"context"
	"time"

	"github.com/wonwomen07/prompt-engineering/internal/llm"
)

// NoopCollector is used when metrics are disabled.
type NoopCollector struct{}

// NewNoopCollector creates a no-op collector
func NewNoopCollector() *NoopCollector {
	return &NoopCollector{}
}

func (n *NoopCollector) ObserveCall(ctx context.Context, c llm.Call) {}

func (n *NoopCollector) RecordRequest(ctx context.Context, method, route string, status int, d time.Duration) {
}

func (n *NoopCollector) RecordComparisonEntry(ctx context.Context, technique string, ok bool) {}
