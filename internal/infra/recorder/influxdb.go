package recorder

import (
	"context"
	"log/slog"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/campuscrew/interview-scheduling/internal/domain"
)

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
	org      string
}

// NewRecorder selects the result sink from configuration. Missing InfluxDB
// credentials degrade to the noop recorder instead of failing startup.
func NewRecorder(ctx context.Context, cfg *Config) (domain.ResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "scheduling result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, scheduling result recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "scheduling result recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
		bucket:   cfg.InfluxDBBucket,
		org:      cfg.InfluxDBOrg,
	}, nil
}

func (r *influxDBRecorder) RecordMatchRun(ctx context.Context, record domain.MatchRunRecord) error {
	runID := record.RunID
	if runID == "" {
		runID = "default"
	}

	point := influxdb2.NewPoint(
		"match_run",
		map[string]string{
			"run_id": runID,
		},
		map[string]any{
			"cohort_size": record.CohortSize,
			"proposed":    record.Proposed,
			"unmatched":   record.Unmatched,
			"booked":      record.Booked,
			"duration_ms": record.Duration.Milliseconds(),
		},
		time.Now(),
	)

	if err := r.writeAPI.WritePoint(ctx, point); err != nil {
		slog.WarnContext(ctx, "failed to write match run to InfluxDB",
			slog.String("error", err.Error()),
			slog.String("run_id", runID),
		)
	}
	return nil
}

func (r *influxDBRecorder) RecordBatchOutcome(ctx context.Context, record domain.BatchOutcomeRecord) error {
	point := influxdb2.NewPoint(
		"busy_batch",
		map[string]string{
			"interviewer_id": record.InterviewerID,
			"kind":           record.Kind,
		},
		map[string]any{
			"requested":   record.Requested,
			"created":     record.Created,
			"deleted":     record.Deleted,
			"skipped":     record.Skipped,
			"failed":      record.Failed,
			"chunks":      record.Chunks,
			"duration_ms": record.Duration.Milliseconds(),
		},
		time.Now(),
	)

	if err := r.writeAPI.WritePoint(ctx, point); err != nil {
		slog.WarnContext(ctx, "failed to write batch outcome to InfluxDB",
			slog.String("error", err.Error()),
			slog.String("kind", record.Kind),
		)
	}
	return nil
}

func (r *influxDBRecorder) Flush(ctx context.Context) error {
	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
