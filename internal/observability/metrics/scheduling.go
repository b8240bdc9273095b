package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	schedulingMeterName = "scheduling.service"
)

type SchedulingMetrics struct {
	bookingsTotal     metric.Int64Counter
	conflictsTotal    metric.Int64Counter
	matchScore        metric.Float64Histogram
	matchRunDuration  metric.Float64Histogram
	batchItemsTotal   metric.Int64Counter
	batchChunkTimings metric.Float64Histogram
}

func NewSchedulingMetrics() (*SchedulingMetrics, error) {
	meter := otel.Meter(schedulingMeterName)

	bookingsTotal, err := meter.Int64Counter(
		"scheduling_bookings_total",
		metric.WithDescription("Total booking attempts by outcome"),
		metric.WithUnit("{booking}"),
	)
	if err != nil {
		return nil, err
	}

	conflictsTotal, err := meter.Int64Counter(
		"scheduling_conflicts_total",
		metric.WithDescription("Total conflict-check rejections"),
		metric.WithUnit("{conflict}"),
	)
	if err != nil {
		return nil, err
	}

	matchScore, err := meter.Float64Histogram(
		"scheduling_match_score",
		metric.WithDescription("Total score of selected match candidates"),
		metric.WithExplicitBucketBoundaries(10, 20, 30, 40, 50, 60, 70, 80, 90, 100),
	)
	if err != nil {
		return nil, err
	}

	matchRunDuration, err := meter.Float64Histogram(
		"scheduling_match_run_duration_seconds",
		metric.WithDescription("Cohort auto-match run duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10),
	)
	if err != nil {
		return nil, err
	}

	batchItemsTotal, err := meter.Int64Counter(
		"scheduling_busy_batch_items_total",
		metric.WithDescription("Bulk busy-time items by outcome"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, err
	}

	batchChunkTimings, err := meter.Float64Histogram(
		"scheduling_busy_chunk_duration_seconds",
		metric.WithDescription("Bulk busy-time chunk transaction duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulingMetrics{
		bookingsTotal:     bookingsTotal,
		conflictsTotal:    conflictsTotal,
		matchScore:        matchScore,
		matchRunDuration:  matchRunDuration,
		batchItemsTotal:   batchItemsTotal,
		batchChunkTimings: batchChunkTimings,
	}, nil
}

func (m *SchedulingMetrics) RecordBooking(ctx context.Context, kind, outcome string) {
	m.bookingsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	))
}

func (m *SchedulingMetrics) RecordConflict(ctx context.Context, kind string) {
	m.conflictsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
	))
}

func (m *SchedulingMetrics) RecordMatchScore(ctx context.Context, score float64) {
	m.matchScore.Record(ctx, score)
}

func (m *SchedulingMetrics) RecordMatchRunDuration(ctx context.Context, duration time.Duration) {
	m.matchRunDuration.Record(ctx, duration.Seconds())
}

func (m *SchedulingMetrics) RecordBatchItem(ctx context.Context, kind, outcome string) {
	m.batchItemsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	))
}

func (m *SchedulingMetrics) RecordChunkDuration(ctx context.Context, duration time.Duration) {
	m.batchChunkTimings.Record(ctx, duration.Seconds())
}
