package domain

import (
	"context"
	"time"
)

// ScheduleStore is the transactional persistence boundary for the scheduling
// core. Every state-changing scheduling operation must re-run its conflict
// check and commit inside the same transaction; InTransaction hands callers a
// store view scoped to that transaction for exactly this purpose.
type ScheduleStore interface {
	// InTransaction runs fn against a transaction-scoped store. fn returning
	// an error rolls the whole transaction back.
	InTransaction(ctx context.Context, fn func(tx ScheduleStore) error) error

	GetInterviewer(ctx context.Context, id string) (*Interviewer, error)
	ListInterviewers(ctx context.Context) ([]Interviewer, error)

	GetApplication(ctx context.Context, id string) (*Application, error)
	// ListUnassignedInterviewing returns interviewing applications with no
	// interviewer attached, ordered by id for deterministic matching runs.
	ListUnassignedInterviewing(ctx context.Context) ([]Application, error)
	UpdateApplication(ctx context.Context, app *Application) error

	CreateInterview(ctx context.Context, iv *Interview) error
	GetInterview(ctx context.Context, id string) (*Interview, error)
	UpdateInterview(ctx context.Context, iv *Interview) error
	DeleteInterview(ctx context.Context, id string) error
	ListInterviewerInterviewsOverlapping(ctx context.Context, interviewerID string, interval TimeInterval) ([]Interview, error)
	ListApplicantInterviewsOverlapping(ctx context.Context, applicantID string, interval TimeInterval) ([]Interview, error)

	CreateBusyBlocks(ctx context.Context, blocks []BusyBlock) error
	GetBusyBlock(ctx context.Context, id string) (*BusyBlock, error)
	DeleteBusyBlock(ctx context.Context, id string) error
	ListBusyBlocksOverlapping(ctx context.Context, interviewerID string, interval TimeInterval) ([]BusyBlock, error)
	// DeleteBusyBlocksOverlapping removes every block overlapping the interval
	// and reports how many were superseded.
	DeleteBusyBlocksOverlapping(ctx context.Context, interviewerID string, interval TimeInterval) (int64, error)
	// ListBusyBlockStarts returns the subset of the candidate start instants
	// that already have a busy block starting exactly there.
	ListBusyBlockStarts(ctx context.Context, interviewerID string, starts []time.Time) ([]time.Time, error)
	DeleteBusyBlocksByStarts(ctx context.Context, interviewerID string, starts []time.Time) (int64, error)

	ReplaceApplicantAvailability(ctx context.Context, applicantID string, tokens []GridToken) error
	GetApplicantAvailability(ctx context.Context, applicantID string) ([]GridToken, error)
	ReplaceInterviewerAvailability(ctx context.Context, interviewerID string, selections []AvailabilitySelection) error
	GetInterviewerAvailability(ctx context.Context, interviewerID string) ([]AvailabilitySelection, error)
	// ListAllInterviewerAvailability returns every interviewer's token set,
	// keyed by interviewer id. Input to the per-run availability index.
	ListAllInterviewerAvailability(ctx context.Context) (map[string][]GridToken, error)
}
