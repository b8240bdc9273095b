package busytime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/campuscrew/interview-scheduling/internal/domain"
	"github.com/campuscrew/interview-scheduling/internal/observability/metrics"
)

type OperationKind string

const (
	OpCreate OperationKind = "create"
	OpDelete OperationKind = "delete"
)

// Operation is one independent create/delete in a heterogeneous batch.
type Operation struct {
	Kind          OperationKind       `json:"kind"`
	InterviewerID string              `json:"interviewer_id"`
	Interval      domain.TimeInterval `json:"interval,omitempty"`
	Reason        string              `json:"reason,omitempty"`
	BlockID       string              `json:"block_id,omitempty"`
}

type BatchResult struct {
	Created []domain.BusyBlock      `json:"created"`
	Deleted []string                `json:"deleted"`
	Errors  []domain.BatchItemError `json:"errors"`

	// deletedBlocks mirrors Deleted with the removed blocks themselves, so
	// cache invalidation covers the days the deletes freed.
	deletedBlocks []domain.BusyBlock
}

// SlotRef addresses one 15-minute slot by local date, hour and minute.
type SlotRef struct {
	Date   time.Time `json:"date"`
	Hour   int       `json:"hour"`
	Minute int       `json:"minute"`
}

type ToggleResult struct {
	Requested int `json:"requested"`
	Created   int `json:"created"`
	Deleted   int `json:"deleted"`
	Skipped   int `json:"skipped"`
	Chunks    int `json:"chunks"`
}

// Processor performs transactional bulk edits of interviewer busy blocks.
type Processor struct {
	store        domain.ScheduleStore
	cache        domain.Cache
	recorder     domain.ResultRecorder
	metrics      *metrics.SchedulingMetrics
	chunkSize    int
	chunkTimeout time.Duration
}

func NewProcessor(
	store domain.ScheduleStore,
	cache domain.Cache,
	recorder domain.ResultRecorder,
	schedulingMetrics *metrics.SchedulingMetrics,
	chunkSize int,
	chunkTimeout time.Duration,
) *Processor {
	if chunkSize <= 0 {
		chunkSize = 50
	}
	return &Processor{
		store:        store,
		cache:        cache,
		recorder:     recorder,
		metrics:      schedulingMetrics,
		chunkSize:    chunkSize,
		chunkTimeout: chunkTimeout,
	}
}

// ProcessBatch executes a heterogeneous list of create/delete operations in
// one transaction. Per-operation validation and conflict failures are
// collected and that operation skipped; a store-level failure aborts and
// rolls back the whole batch.
func (p *Processor) ProcessBatch(ctx context.Context, ops []Operation) (*BatchResult, error) {
	started := time.Now()
	result := &BatchResult{}

	err := p.store.InTransaction(ctx, func(tx domain.ScheduleStore) error {
		for i, op := range ops {
			var opErr error
			switch op.Kind {
			case OpCreate:
				opErr = p.applyCreate(ctx, tx, op, result)
			case OpDelete:
				opErr = p.applyDelete(ctx, tx, op, result)
			default:
				opErr = &domain.ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown operation kind %q", op.Kind)}
			}

			if opErr == nil {
				continue
			}
			if isSoftFailure(opErr) {
				result.Errors = append(result.Errors, domain.BatchItemError{Index: i, Kind: string(op.Kind), Err: opErr})
				if p.metrics != nil {
					p.metrics.RecordBatchItem(ctx, string(op.Kind), "skipped")
				}
				continue
			}
			// Fatal store failure: roll back everything.
			return opErr
		}
		return nil
	})
	if err != nil {
		return nil, &domain.TransactionAbortError{Err: err}
	}

	if p.metrics != nil {
		for range result.Created {
			p.metrics.RecordBatchItem(ctx, string(OpCreate), "applied")
		}
		for range result.Deleted {
			p.metrics.RecordBatchItem(ctx, string(OpDelete), "applied")
		}
	}
	p.record(ctx, domain.BatchOutcomeRecord{
		Kind:      "heterogeneous",
		Requested: len(ops),
		Created:   len(result.Created),
		Deleted:   len(result.Deleted),
		Failed:    len(result.Errors),
		Chunks:    1,
		Duration:  time.Since(started),
	})
	p.invalidateFor(ctx, result.Created)
	p.invalidateFor(ctx, result.deletedBlocks)

	slog.InfoContext(ctx, "busy-time batch processed",
		slog.Int("operations", len(ops)),
		slog.Int("created", len(result.Created)),
		slog.Int("deleted", len(result.Deleted)),
		slog.Int("soft_failures", len(result.Errors)),
	)
	return result, nil
}

func (p *Processor) applyCreate(ctx context.Context, tx domain.ScheduleStore, op Operation, result *BatchResult) error {
	if err := op.Interval.Validate(); err != nil {
		return err
	}
	if op.InterviewerID == "" {
		return &domain.ValidationError{Field: "interviewer_id", Reason: "required"}
	}
	if _, err := tx.GetInterviewer(ctx, op.InterviewerID); err != nil {
		return err
	}

	interviews, err := tx.ListInterviewerInterviewsOverlapping(ctx, op.InterviewerID, op.Interval)
	if err != nil {
		return err
	}
	if len(interviews) > 0 {
		return &domain.ConflictError{Interviews: interviews}
	}

	// Overlapping pre-existing blocks are superseded, never merged.
	if _, err := tx.DeleteBusyBlocksOverlapping(ctx, op.InterviewerID, op.Interval); err != nil {
		return err
	}

	block := domain.NewBusyBlock(op.InterviewerID, op.Interval, op.Reason)
	if err := tx.CreateBusyBlocks(ctx, []domain.BusyBlock{*block}); err != nil {
		return err
	}
	result.Created = append(result.Created, *block)
	return nil
}

func (p *Processor) applyDelete(ctx context.Context, tx domain.ScheduleStore, op Operation, result *BatchResult) error {
	if op.BlockID == "" {
		return &domain.ValidationError{Field: "block_id", Reason: "required"}
	}
	block, err := tx.GetBusyBlock(ctx, op.BlockID)
	if err != nil {
		return err
	}
	if err := tx.DeleteBusyBlock(ctx, op.BlockID); err != nil {
		return err
	}
	result.Deleted = append(result.Deleted, op.BlockID)
	result.deletedBlocks = append(result.deletedBlocks, *block)
	return nil
}

// ToggleSlots bulk-marks slots busy or available for one interviewer. The
// slot list is chunked to keep each transaction short; each chunk runs under
// its own timeout and aborts whole, never partially.
//
// Marking busy inserts only the slots that do not already have a block
// starting at that instant, so re-running the same toggle is a no-op. This
// path deliberately skips per-slot interview conflict checking for
// throughput.
func (p *Processor) ToggleSlots(ctx context.Context, interviewerID string, loc *time.Location, slots []SlotRef, markBusy bool) (*ToggleResult, error) {
	started := time.Now()
	if loc == nil {
		loc = time.UTC
	}
	if _, err := p.store.GetInterviewer(ctx, interviewerID); err != nil {
		return nil, err
	}

	starts := make([]time.Time, 0, len(slots))
	for _, s := range slots {
		if s.Minute%15 != 0 {
			return nil, &domain.ValidationError{Field: "minute", Reason: "slots must start on a 15-minute boundary"}
		}
		if s.Hour < 0 || s.Hour > 23 {
			return nil, &domain.ValidationError{Field: "hour", Reason: "hour out of range"}
		}
		y, m, d := s.Date.In(loc).Date()
		starts = append(starts, time.Date(y, m, d, s.Hour, s.Minute, 0, 0, loc).UTC())
	}

	result := &ToggleResult{Requested: len(starts)}
	for begin := 0; begin < len(starts); begin += p.chunkSize {
		end := begin + p.chunkSize
		if end > len(starts) {
			end = len(starts)
		}
		chunk := starts[begin:end]
		result.Chunks++

		if err := p.processChunk(ctx, interviewerID, chunk, markBusy, result); err != nil {
			p.record(ctx, p.toggleOutcome(interviewerID, markBusy, result, time.Since(started), 1))
			return result, err
		}
	}

	p.record(ctx, p.toggleOutcome(interviewerID, markBusy, result, time.Since(started), 0))
	p.invalidateStarts(ctx, interviewerID, starts)

	slog.InfoContext(ctx, "busy-time slots toggled",
		slog.String("interviewer_id", interviewerID),
		slog.Bool("mark_busy", markBusy),
		slog.Int("requested", result.Requested),
		slog.Int("created", result.Created),
		slog.Int("deleted", result.Deleted),
		slog.Int("skipped", result.Skipped),
		slog.Int("chunks", result.Chunks),
	)
	return result, nil
}

func (p *Processor) processChunk(ctx context.Context, interviewerID string, chunk []time.Time, markBusy bool, result *ToggleResult) error {
	chunkStarted := time.Now()
	chunkCtx := ctx
	if p.chunkTimeout > 0 {
		var cancel context.CancelFunc
		chunkCtx, cancel = context.WithTimeout(ctx, p.chunkTimeout)
		defer cancel()
	}

	err := p.store.InTransaction(chunkCtx, func(tx domain.ScheduleStore) error {
		if markBusy {
			existing, err := tx.ListBusyBlockStarts(chunkCtx, interviewerID, chunk)
			if err != nil {
				return err
			}
			taken := make(map[time.Time]struct{}, len(existing))
			for _, t := range existing {
				taken[t.UTC()] = struct{}{}
			}

			var blocks []domain.BusyBlock
			for _, start := range chunk {
				if _, ok := taken[start]; ok {
					result.Skipped++
					continue
				}
				blocks = append(blocks, *domain.NewSlotBusyBlock(interviewerID, start, ""))
			}
			if len(blocks) == 0 {
				return nil
			}
			if err := tx.CreateBusyBlocks(chunkCtx, blocks); err != nil {
				return err
			}
			result.Created += len(blocks)
			return nil
		}

		deleted, err := tx.DeleteBusyBlocksByStarts(chunkCtx, interviewerID, chunk)
		if err != nil {
			return err
		}
		result.Deleted += int(deleted)
		return nil
	})
	if p.metrics != nil {
		p.metrics.RecordChunkDuration(ctx, time.Since(chunkStarted))
	}
	if err != nil {
		return &domain.TransactionAbortError{Err: fmt.Errorf("chunk of %d slots: %w", len(chunk), err)}
	}
	return nil
}

func (p *Processor) toggleOutcome(interviewerID string, markBusy bool, result *ToggleResult, elapsed time.Duration, failed int) domain.BatchOutcomeRecord {
	kind := "toggle_available"
	if markBusy {
		kind = "toggle_busy"
	}
	return domain.BatchOutcomeRecord{
		InterviewerID: interviewerID,
		Kind:          kind,
		Requested:     result.Requested,
		Created:       result.Created,
		Deleted:       result.Deleted,
		Skipped:       result.Skipped,
		Failed:        failed,
		Chunks:        result.Chunks,
		Duration:      elapsed,
	}
}

// isSoftFailure classifies per-item failures that skip the item and let the
// rest of the batch proceed. Anything else is a store failure and fatal.
func isSoftFailure(err error) bool {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return true
	}
	return errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrInterviewerNotFound) ||
		errors.Is(err, domain.ErrBusyBlockNotFound)
}

func (p *Processor) record(ctx context.Context, record domain.BatchOutcomeRecord) {
	if p.recorder == nil {
		return
	}
	if err := p.recorder.RecordBatchOutcome(ctx, record); err != nil {
		slog.WarnContext(ctx, "failed to record batch outcome",
			slog.String("error", err.Error()),
		)
	}
}

func (p *Processor) invalidateFor(ctx context.Context, blocks []domain.BusyBlock) {
	if p.cache == nil || len(blocks) == 0 {
		return
	}
	seen := make(map[string]struct{})
	var keys []string
	for _, b := range blocks {
		key := domain.CacheKeySlots(b.InterviewerID, b.Interval.Start)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	if err := p.cache.Invalidate(ctx, keys...); err != nil {
		slog.WarnContext(ctx, "cache invalidation failed",
			slog.String("error", err.Error()),
		)
	}
}

func (p *Processor) invalidateStarts(ctx context.Context, interviewerID string, starts []time.Time) {
	if p.cache == nil || len(starts) == 0 {
		return
	}
	seen := make(map[string]struct{})
	var keys []string
	for _, start := range starts {
		key := domain.CacheKeySlots(interviewerID, start)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	if err := p.cache.Invalidate(ctx, keys...); err != nil {
		slog.WarnContext(ctx, "cache invalidation failed",
			slog.String("error", err.Error()),
		)
	}
}
