package booking

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/campuscrew/interview-scheduling/internal/domain"
	"github.com/campuscrew/interview-scheduling/internal/observability/metrics"
	"github.com/campuscrew/interview-scheduling/internal/service/conflict"
)

// Service realizes manual bookings. Every write re-runs the conflict check
// inside the committing transaction; notification and cache invalidation
// happen strictly after commit and never unwind it.
type Service struct {
	store    domain.ScheduleStore
	checker  *conflict.Checker
	cache    domain.Cache
	notifier domain.BookingNotifier
	metrics  *metrics.SchedulingMetrics
}

func NewService(
	store domain.ScheduleStore,
	checker *conflict.Checker,
	cache domain.Cache,
	notifier domain.BookingNotifier,
	schedulingMetrics *metrics.SchedulingMetrics,
) *Service {
	return &Service{
		store:    store,
		checker:  checker,
		cache:    cache,
		notifier: notifier,
		metrics:  schedulingMetrics,
	}
}

// Request is the booking contract: exactly one of ApplicantID and
// PlaceholderName must be set. Duration is fixed at 45 minutes.
type Request struct {
	InterviewerID   string
	Start           time.Time
	Location        string
	Team            domain.Team
	ApplicantID     string
	PlaceholderName string
}

func (r Request) validate() error {
	if r.InterviewerID == "" {
		return &domain.ValidationError{Field: "interviewer_id", Reason: "required"}
	}
	if r.Start.IsZero() {
		return &domain.ValidationError{Field: "start", Reason: "required"}
	}
	if r.Location == "" {
		return &domain.ValidationError{Field: "location", Reason: "required"}
	}
	if (r.ApplicantID == "") == (r.PlaceholderName == "") {
		return &domain.ValidationError{Field: "applicant_id", Reason: "exactly one of applicant_id and placeholder_name is required"}
	}
	if r.Team != "" && !r.Team.Valid() {
		return &domain.ValidationError{Field: "team", Reason: "unknown team"}
	}
	return nil
}

func (s *Service) Book(ctx context.Context, req Request) (*domain.Interview, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	interval := domain.TimeInterval{
		Start: req.Start.UTC(),
		End:   req.Start.UTC().Add(domain.InterviewDuration),
	}

	var created *domain.Interview
	var interviewer *domain.Interviewer

	err := s.store.InTransaction(ctx, func(tx domain.ScheduleStore) error {
		var err error
		interviewer, err = tx.GetInterviewer(ctx, req.InterviewerID)
		if err != nil {
			return err
		}

		var app *domain.Application
		if req.ApplicantID != "" {
			app, err = tx.GetApplication(ctx, req.ApplicantID)
			if err != nil {
				return err
			}
			if app.Status != domain.StatusInterviewing {
				return &domain.ValidationError{Field: "status", Reason: "application is not in the interviewing stage"}
			}
		}

		if err := s.checker.Validate(ctx, tx, conflict.Request{
			Interval:      interval,
			InterviewerID: req.InterviewerID,
			ApplicantID:   req.ApplicantID,
		}); err != nil {
			return err
		}

		if req.PlaceholderName != "" {
			created = domain.NewPlaceholderInterview(req.PlaceholderName, req.InterviewerID, req.Start, req.Location, req.Team)
		} else {
			created = domain.NewInterview(req.ApplicantID, req.InterviewerID, req.Start, req.Location, req.Team)
		}
		if err := tx.CreateInterview(ctx, created); err != nil {
			return err
		}

		if app != nil {
			if err := app.Book(req.InterviewerID, created.ID); err != nil {
				return err
			}
			return tx.UpdateApplication(ctx, app)
		}
		return nil
	})
	if err != nil {
		if s.metrics != nil {
			if errors.Is(err, domain.ErrConflict) {
				s.metrics.RecordConflict(ctx, "booking")
			}
			s.metrics.RecordBooking(ctx, "manual", "rejected")
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordBooking(ctx, "manual", "booked")
	}

	keys := []string{domain.CacheKeySlots(req.InterviewerID, req.Start)}
	if req.ApplicantID != "" {
		keys = append(keys, domain.CacheKeyApplicant(req.ApplicantID))
	}
	s.invalidate(ctx, keys...)
	s.notify(ctx, domain.BookingNotification{
		InterviewID:     created.ID,
		InterviewerID:   req.InterviewerID,
		InterviewerName: interviewer.Name,
		ApplicantID:     req.ApplicantID,
		PlaceholderName: req.PlaceholderName,
		Time:            created.Interval.Start,
		Location:        created.Location,
		Team:            created.Team,
	})

	slog.InfoContext(ctx, "interview booked",
		slog.String("interview_id", created.ID),
		slog.String("interviewer_id", req.InterviewerID),
		slog.Time("start", created.Interval.Start),
		slog.Bool("placeholder", created.IsPlaceholder),
	)
	return created, nil
}

// Cancel deletes a booked interview and reverts the application's assignment.
func (s *Service) Cancel(ctx context.Context, interviewID string) error {
	var cancelled *domain.Interview
	err := s.store.InTransaction(ctx, func(tx domain.ScheduleStore) error {
		iv, err := tx.GetInterview(ctx, interviewID)
		if err != nil {
			return err
		}
		cancelled = iv

		if iv.ApplicantID != "" {
			app, err := tx.GetApplication(ctx, iv.ApplicantID)
			if err != nil && !errors.Is(err, domain.ErrApplicationNotFound) {
				return err
			}
			if app != nil && app.Assignment.InterviewID == interviewID {
				app.ClearAssignment()
				if err := tx.UpdateApplication(ctx, app); err != nil {
					return err
				}
			}
		}
		return tx.DeleteInterview(ctx, interviewID)
	})
	if err != nil {
		return err
	}

	keys := []string{domain.CacheKeySlots(cancelled.InterviewerID, cancelled.Interval.Start)}
	if cancelled.ApplicantID != "" {
		keys = append(keys, domain.CacheKeyApplicant(cancelled.ApplicantID))
	}
	s.invalidate(ctx, keys...)

	slog.InfoContext(ctx, "interview cancelled",
		slog.String("interview_id", interviewID),
		slog.String("interviewer_id", cancelled.InterviewerID),
	)
	return nil
}

// UpdateDetails edits the admin-mutable fields of a booked interview.
func (s *Service) UpdateDetails(ctx context.Context, interviewID string, location *string, team *domain.Team) (*domain.Interview, error) {
	if location == nil && team == nil {
		return nil, &domain.ValidationError{Field: "body", Reason: "nothing to update"}
	}
	if team != nil && *team != "" && !team.Valid() {
		return nil, &domain.ValidationError{Field: "team", Reason: "unknown team"}
	}

	var updated *domain.Interview
	err := s.store.InTransaction(ctx, func(tx domain.ScheduleStore) error {
		iv, err := tx.GetInterview(ctx, interviewID)
		if err != nil {
			return err
		}
		if location != nil {
			if *location == "" {
				return &domain.ValidationError{Field: "location", Reason: "required"}
			}
			iv.Location = *location
		}
		if team != nil {
			iv.Team = *team
		}
		updated = iv
		return tx.UpdateInterview(ctx, iv)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, domain.CacheKeySlots(updated.InterviewerID, updated.Interval.Start))
	return updated, nil
}

func (s *Service) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		slog.WarnContext(ctx, "cache invalidation failed",
			slog.String("error", err.Error()),
		)
	}
}

func (s *Service) notify(ctx context.Context, n domain.BookingNotification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyBooked(ctx, n); err != nil {
		slog.WarnContext(ctx, "booking notification failed",
			slog.String("interview_id", n.InterviewID),
			slog.String("error", err.Error()),
		)
	}
}
