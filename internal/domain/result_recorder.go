package domain

import (
	"context"
	"time"
)

// MatchRunRecord summarizes one auto-matching run over a cohort.
type MatchRunRecord struct {
	RunID      string
	StartedAt  time.Time
	CohortSize int
	Proposed   int
	Unmatched  int
	Booked     int
	Duration   time.Duration
}

// BatchOutcomeRecord summarizes one bulk busy-time edit.
type BatchOutcomeRecord struct {
	InterviewerID string
	Kind          string
	Requested     int
	Created       int
	Deleted       int
	Skipped       int
	Failed        int
	Chunks        int
	Duration      time.Duration
}

// ResultRecorder sinks scheduling outcomes for offline analysis. Recording is
// best-effort; implementations log failures instead of surfacing them.
type ResultRecorder interface {
	RecordMatchRun(ctx context.Context, record MatchRunRecord) error
	RecordBatchOutcome(ctx context.Context, record BatchOutcomeRecord) error
	Flush(ctx context.Context) error
	Close() error
}
