package metrics

import (
	"context"
	"time"

	"github.com/wonwomen07/prompt-engineering/internal/llm"
)

// Collector is the interface for metrics collection. It is also a model
// gateway observer.
type Collector interface {
	llm.Observer
	RecordRequest(ctx context.Context, method, route string, status int, d time.Duration)
	RecordComparisonEntry(ctx context.Context, technique string, ok bool)
}
