package conflict

import (
	"context"
	"fmt"
	"time"

	"github.com/campuscrew/interview-scheduling/internal/domain"
)

// Request is one candidate interval to validate for an interviewer, and
// optionally an applicant whose own interviews must also be clear.
type Request struct {
	Interval      domain.TimeInterval
	InterviewerID string
	// ApplicantID is empty for placeholder bookings; placeholders skip the
	// applicant-side check.
	ApplicantID string
}

// Checker is the pure read-side validator gating every scheduling write.
// It holds no store: callers pass the store they are reading from, so the
// same check runs against the transaction that commits the write.
type Checker struct {
	openHour  int
	closeHour int
	grace     time.Duration
	loc       *time.Location
	clock     func() time.Time
}

func NewChecker(openHour, closeHour int, grace time.Duration, loc *time.Location) *Checker {
	if loc == nil {
		loc = time.UTC
	}
	return &Checker{
		openHour:  openHour,
		closeHour: closeHour,
		grace:     grace,
		loc:       loc,
		clock:     time.Now,
	}
}

// Validate returns nil when the candidate interval is bookable, a
// *domain.ValidationError for out-of-window or stale candidates, or a
// *domain.ConflictError carrying the colliding records.
//
// Callers performing a write must call this on the transaction-scoped store
// and commit in the same transaction; validating outside the transaction
// leaves the check-then-act race open.
func (c *Checker) Validate(ctx context.Context, store domain.ScheduleStore, req Request) error {
	if err := req.Interval.Validate(); err != nil {
		return err
	}
	if req.InterviewerID == "" {
		return &domain.ValidationError{Field: "interviewer_id", Reason: "required"}
	}

	now := c.clock()
	if req.Interval.Start.Before(now.Add(-c.grace)) {
		return &domain.ValidationError{Field: "start", Reason: "start is in the past"}
	}

	if err := c.checkOperatingWindow(req.Interval); err != nil {
		return err
	}

	interviews, err := store.ListInterviewerInterviewsOverlapping(ctx, req.InterviewerID, req.Interval)
	if err != nil {
		return fmt.Errorf("listing interviewer interviews: %w", err)
	}
	blocks, err := store.ListBusyBlocksOverlapping(ctx, req.InterviewerID, req.Interval)
	if err != nil {
		return fmt.Errorf("listing busy blocks: %w", err)
	}

	if req.ApplicantID != "" {
		own, err := store.ListApplicantInterviewsOverlapping(ctx, req.ApplicantID, req.Interval)
		if err != nil {
			return fmt.Errorf("listing applicant interviews: %w", err)
		}
		interviews = append(interviews, own...)
	}

	if len(interviews) > 0 || len(blocks) > 0 {
		return &domain.ConflictError{Interviews: interviews, BusyBlocks: blocks}
	}
	return nil
}

// checkOperatingWindow enforces the configured local operating hours. The
// candidate must start at or after opening and end at or before closing;
// an interval running past the close is rejected outright.
func (c *Checker) checkOperatingWindow(interval domain.TimeInterval) error {
	localStart := interval.Start.In(c.loc)
	localEnd := interval.End.In(c.loc)

	openMinutes := c.openHour * 60
	closeMinutes := c.closeHour * 60

	startMinutes := localStart.Hour()*60 + localStart.Minute()
	if startMinutes < openMinutes {
		return &domain.ValidationError{
			Field:  "start",
			Reason: fmt.Sprintf("before operating window opens at %02d:00", c.openHour),
		}
	}

	endMinutes := localEnd.Hour()*60 + localEnd.Minute()
	sameDay := localStart.Year() == localEnd.Year() && localStart.YearDay() == localEnd.YearDay()
	if !sameDay || endMinutes > closeMinutes {
		return &domain.ValidationError{
			Field:  "end",
			Reason: fmt.Sprintf("past operating window close at %02d:00", c.closeHour),
		}
	}
	return nil
}
