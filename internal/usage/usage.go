// Package usage keeps a SQLite ledger of model calls and aggregates it for
// the usage endpoint.
package usage

import (
	"context"
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"
	_ "github.com/mattn/go-sqlite3"

	"github.com/wonwomen07/prompt-engineering/internal/apperr"
	"github.com/wonwomen07/prompt-engineering/internal/llm"
	"github.com/wonwomen07/prompt-engineering/internal/logger"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS llm_calls (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	request_id TEXT NOT NULL DEFAULT '',
	family TEXT NOT NULL DEFAULT '',
	technique TEXT NOT NULL DEFAULT '',
	model_provider TEXT NOT NULL,
	model_name TEXT NOT NULL,
	request_timestamp DATETIME NOT NULL,
	duration_ms INTEGER NOT NULL,
	tokens_used INTEGER NOT NULL DEFAULT 0,
	success BOOLEAN NOT NULL,
	error_kind TEXT,
	error_message TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_llm_calls_request_timestamp ON llm_calls(request_timestamp);`

// CallRecord is one row of the ledger.
type CallRecord struct {
	RequestID        string
	Family           string
	Technique        string
	ModelProvider    string
	ModelName        string
	RequestTimestamp time.Time
	DurationMs       int64
	TokensUsed       int
	Success          bool
	ErrorKind        *string
	ErrorMessage     *string
}

// Stats are aggregated usage figures since a point in time.
type Stats struct {
	Since           time.Time `json:"since"`
	TotalCalls      int       `json:"total_calls"`
	SuccessfulCalls int       `json:"successful_calls"`
	SuccessRate     float64   `json:"success_rate"`
	TotalTokens     int       `json:"total_tokens"`
	UniqueModels    int       `json:"unique_models"`
	AvgDurationMs   float64   `json:"avg_duration_ms"`
}

// TechniqueBreakdown aggregates calls for one (family, technique) pair.
type TechniqueBreakdown struct {
	Family        string  `json:"family"`
	Technique     string  `json:"technique"`
	Calls         int     `json:"calls"`
	Failures      int     `json:"failures"`
	TotalTokens   int     `json:"total_tokens"`
	AvgDurationMs float64 `json:"avg_duration_ms"`
}

// Tracker writes and reads the ledger. It implements llm.Observer.
type Tracker struct {
	db  *sql.DB
	log *logger.Logger
}

// NewTracker creates a tracker over db. Call Migrate before first use on a
// fresh database.
func NewTracker(db *sql.DB, log *logger.Logger) *Tracker {
	if log == nil {
		log = logger.Nop()
	}
	return &Tracker{db: db, log: log}
}

// Open opens (creating if needed) the SQLite database at path and migrates it.
func Open(ctx context.Context, path string, log *logger.Logger) (*Tracker, *sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "usage: open %s", path)
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	t := NewTracker(db, log)
	if err := t.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return t, db, nil
}

// Migrate creates the ledger table if it does not exist.
func (t *Tracker) Migrate(ctx context.Context) error {
	if _, err := t.db.ExecContext(ctx, schemaSQL); err != nil {
		return errors.Wrap(err, "usage: migrate")
	}
	return nil
}

// Track inserts one record.
func (t *Tracker) Track(ctx context.Context, r CallRecord) error {
	query := `
		INSERT INTO llm_calls (
			request_id, family, technique, model_provider, model_name,
			request_timestamp, duration_ms, tokens_used, success,
			error_kind, error_message
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := t.db.ExecContext(ctx, query,
		r.RequestID, r.Family, r.Technique, r.ModelProvider, r.ModelName,
		r.RequestTimestamp.UTC(), r.DurationMs, r.TokensUsed, r.Success,
		r.ErrorKind, r.ErrorMessage,
	)
	if err != nil {
		return errors.Wrap(err, "usage: track")
	}
	return nil
}

// ObserveCall records c. Failures to write are logged, not returned, so the
// ledger never affects a model call's outcome.
func (t *Tracker) ObserveCall(ctx context.Context, c llm.Call) {
	r := CallRecord{
		RequestID:        c.Labels.RequestID,
		Family:           c.Labels.Family,
		Technique:        c.Labels.Technique,
		ModelProvider:    c.Provider,
		ModelName:        c.Model,
		RequestTimestamp: time.Now().Add(-c.Duration),
		DurationMs:       c.Duration.Milliseconds(),
		TokensUsed:       c.TokensUsed,
		Success:          c.Err == nil,
	}
	if c.Err != nil {
		kind, msg := apperr.Code(c.Err), apperr.Message(c.Err)
		r.ErrorKind, r.ErrorMessage = &kind, &msg
	}
	if err := t.Track(ctx, r); err != nil {
		t.log.Warn("usage record dropped", "request_id", r.RequestID, "error", err)
	}
}

// Stats returns usage statistics for calls made at or after since.
func (t *Tracker) Stats(ctx context.Context, since time.Time) (*Stats, error) {
	query := `
		SELECT
			COUNT(*) as total_calls,
			COUNT(CASE WHEN success = 1 THEN 1 END) as successful_calls,
			COALESCE(SUM(tokens_used), 0) as total_tokens,
			COUNT(DISTINCT model_name) as unique_models,
			COALESCE(AVG(duration_ms), 0) as avg_duration_ms
		FROM llm_calls
		WHERE request_timestamp >= ?`

	stats := Stats{Since: since.UTC()}
	err := t.db.QueryRowContext(ctx, query, since.UTC()).Scan(
		&stats.TotalCalls, &stats.SuccessfulCalls,
		&stats.TotalTokens, &stats.UniqueModels, &stats.AvgDurationMs,
	)
	if err != nil {
		return nil, errors.Wrap(err, "usage: stats")
	}
	if stats.TotalCalls > 0 {
		stats.SuccessRate = float64(stats.SuccessfulCalls) / float64(stats.TotalCalls)
	}
	return &stats, nil
}

// Breakdown returns per-technique aggregates since the given time, busiest
// first.
func (t *Tracker) Breakdown(ctx context.Context, since time.Time) ([]TechniqueBreakdown, error) {
	query := `
		SELECT
			family,
			technique,
			COUNT(*) as calls,
			COUNT(CASE WHEN success = 0 THEN 1 END) as failures,
			COALESCE(SUM(tokens_used), 0) as total_tokens,
			COALESCE(AVG(duration_ms), 0) as avg_duration_ms
		FROM llm_calls
		WHERE request_timestamp >= ?
		GROUP BY family, technique
		ORDER BY calls DESC, family, technique`

	rows, err := t.db.QueryContext(ctx, query, since.UTC())
	if err != nil {
		return nil, errors.Wrap(err, "usage: breakdown")
	}
	defer rows.Close()

	breakdown := []TechniqueBreakdown{}
	for rows.Next() {
		var b TechniqueBreakdown
		if err := rows.Scan(&b.Family, &b.Technique, &b.Calls, &b.Failures, &b.TotalTokens, &b.AvgDurationMs); err != nil {
			return nil, errors.Wrap(err, "usage: breakdown scan")
		}
		breakdown = append(breakdown, b)
	}
	return breakdown, errors.Wrap(rows.Err(), "usage: breakdown rows")
}
