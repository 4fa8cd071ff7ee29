package ctxutil

import (
	"context"
	"testing"
)

func TestTraceData(t *testing.T) {
	ctx := context.Background()
	if GetTraceData(ctx) != nil || RequestID(ctx) != "" {
		t.Fatal("expected no trace data on a bare context")
	}
	ctx = WithTraceData(ctx, &TraceData{TraceID: "t-1", RequestID: "r-1"})
	td := GetTraceData(ctx)
	if td == nil || td.TraceID != "t-1" {
		t.Fatalf("unexpected trace data: %+v", td)
	}
	if got := RequestID(ctx); got != "r-1" {
		t.Errorf("RequestID = %q, want r-1", got)
	}
}
