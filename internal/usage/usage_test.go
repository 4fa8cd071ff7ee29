package usage

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"

	"github.com/wonwomen07/prompt-engineering/internal/apperr"
	"github.com/wonwomen07/prompt-engineering/internal/llm"
)

// setupTestDB creates a migrated in-memory SQLite database for testing
func setupTestDB(t *testing.T) (*Tracker, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	tracker := NewTracker(db, nil)
	if err := tracker.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return tracker, db
}

func TestTrack(t *testing.T) {
	tracker, db := setupTestDB(t)
	ctx := context.Background()

	err := tracker.Track(ctx, CallRecord{
		RequestID:        "req-1",
		Family:           "general",
		Technique:        "zero_shot",
		ModelProvider:    "openai",
		ModelName:        "gpt-4o-mini",
		RequestTimestamp: time.Now(),
		DurationMs:       420,
		TokensUsed:       150,
		Success:          true,
	})
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}

	var (
		count     int
		technique string
		tokens    int
		success   bool
	)
	if err := db.QueryRow("SELECT COUNT(*) FROM llm_calls").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 record, got %d", count)
	}
	err = db.QueryRow("SELECT technique, tokens_used, success FROM llm_calls WHERE id = 1").Scan(&technique, &tokens, &success)
	if err != nil {
		t.Fatalf("Failed to retrieve stored record: %v", err)
	}
	if technique != "zero_shot" || tokens != 150 || !success {
		t.Errorf("unexpected row: %s %d %v", technique, tokens, success)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	tracker, _ := setupTestDB(t)
	if err := tracker.Migrate(context.Background()); err != nil {
		t.Errorf("second Migrate: %v", err)
	}
}

func TestObserveCall_AndStats(t *testing.T) {
	tracker, _ := setupTestDB(t)
	ctx := context.Background()
	since := time.Now().Add(-time.Minute)

	ok := llm.Labels{Family: "general", Technique: "zero_shot", RequestID: "r1"}
	tracker.ObserveCall(ctx, llm.Call{Provider: "openai", Model: "gpt-4o-mini", Labels: ok, TokensUsed: 100, Duration: 200 * time.Millisecond})
	tracker.ObserveCall(ctx, llm.Call{Provider: "openai", Model: "gpt-4o-mini", Labels: ok, TokensUsed: 50, Duration: 400 * time.Millisecond})
	tracker.ObserveCall(ctx, llm.Call{
		Provider: "openai",
		Model:    "gpt-4o-mini",
		Labels:   llm.Labels{Family: "general", Technique: "few_shot", RequestID: "r2"},
		Duration: 600 * time.Millisecond,
		Err:      apperr.Backend("openai", errors.New("quota")),
	})

	stats, err := tracker.Stats(ctx, since)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalCalls != 3 || stats.SuccessfulCalls != 2 || stats.TotalTokens != 150 || stats.UniqueModels != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.SuccessRate < 0.66 || stats.SuccessRate > 0.67 {
		t.Errorf("success rate = %f", stats.SuccessRate)
	}
	if stats.AvgDurationMs != 400 {
		t.Errorf("avg duration = %f, want 400", stats.AvgDurationMs)
	}

	breakdown, err := tracker.Breakdown(ctx, since)
	if err != nil {
		t.Fatalf("Breakdown: %v", err)
	}
	if len(breakdown) != 2 {
		t.Fatalf("expected 2 breakdown rows, got %d", len(breakdown))
	}
	if breakdown[0].Technique != "zero_shot" || breakdown[0].Calls != 2 {
		t.Errorf("busiest technique first, got %+v", breakdown[0])
	}
	if breakdown[1].Technique != "few_shot" || breakdown[1].Failures != 1 {
		t.Errorf("unexpected few_shot row: %+v", breakdown[1])
	}
}

func TestStats_SinceFilters(t *testing.T) {
	tracker, _ := setupTestDB(t)
	ctx := context.Background()

	old := CallRecord{ModelProvider: "openai", ModelName: "m", RequestTimestamp: time.Now().Add(-48 * time.Hour), Success: true, TokensUsed: 10}
	if err := tracker.Track(ctx, old); err != nil {
		t.Fatalf("Track: %v", err)
	}
	stats, err := tracker.Stats(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalCalls != 0 || stats.SuccessRate != 0 {
		t.Errorf("expected empty window, got %+v", stats)
	}
}

func TestOpen_File(t *testing.T) {
	path := t.TempDir() + "/usage.db"
	tracker, db, err := Open(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()
	if err := tracker.Track(context.Background(), CallRecord{ModelProvider: "p", ModelName: "m", RequestTimestamp: time.Now()}); err != nil {
		t.Errorf("Track: %v", err)
	}
}

// Minimal sqlmock tests to verify query structure and error propagation

func TestTrack_Sqlmock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	defer db.Close()

	tracker := NewTracker(db, nil)
	now := time.Now()
	kind, msg := "backend_error", "backend: openai: quota"

	mock.ExpectExec("INSERT INTO llm_calls").
		WithArgs("r1", "general", "few_shot", "openai", "gpt-4o-mini", now.UTC(), int64(12), int64(0), false, kind, msg).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = tracker.Track(context.Background(), CallRecord{
		RequestID: "r1", Family: "general", Technique: "few_shot",
		ModelProvider: "openai", ModelName: "gpt-4o-mini",
		RequestTimestamp: now, DurationMs: 12, Success: false,
		ErrorKind: &kind, ErrorMessage: &msg,
	})
	if err != nil {
		t.Errorf("Track failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func TestStats_SqlmockError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM llm_calls").WillReturnError(errors.New("disk I/O error"))

	_, err = NewTracker(db, nil).Stats(context.Background(), time.Now())
	if err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func TestObserveCall_WriteFailureIsSwallowed(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO llm_calls").WillReturnError(errors.New("database is locked"))
	NewTracker(db, nil).ObserveCall(context.Background(), llm.Call{Provider: "openai", Model: "m"})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}
