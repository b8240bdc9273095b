package recorder

import (
	"context"

	"github.com/campuscrew/interview-scheduling/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.ResultRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordMatchRun(_ context.Context, _ domain.MatchRunRecord) error {
	return nil
}

func (n *noopRecorder) RecordBatchOutcome(_ context.Context, _ domain.BatchOutcomeRecord) error {
	return nil
}

func (n *noopRecorder) Flush(_ context.Context) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
