package availability

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/campuscrew/interview-scheduling/internal/domain"
	"github.com/campuscrew/interview-scheduling/internal/service/grid"
)

// Service stores applicant and interviewer slot selections against the
// season's token universe.
type Service struct {
	store domain.ScheduleStore
	codec *grid.Codec
	cache domain.Cache
}

func NewService(store domain.ScheduleStore, codec *grid.Codec, cache domain.Cache) *Service {
	return &Service{store: store, codec: codec, cache: cache}
}

// SubmitApplicantAvailability replaces the applicant's full token set. The
// submission must stay inside the season universe and contain at least one
// contiguous hour.
func (s *Service) SubmitApplicantAvailability(ctx context.Context, applicantID string, tokens []domain.GridToken) error {
	if applicantID == "" {
		return &domain.ValidationError{Field: "applicant_id", Reason: "required"}
	}
	if len(tokens) == 0 {
		return &domain.ValidationError{Field: "tokens", Reason: "at least one slot is required"}
	}

	deduped, err := s.normalize(tokens)
	if err != nil {
		return err
	}
	if !domain.HasContiguousRun(deduped, domain.MinContiguousTokens) {
		return &domain.ValidationError{
			Field:  "tokens",
			Reason: fmt.Sprintf("must include at least %d contiguous slots", domain.MinContiguousTokens),
		}
	}

	if _, err := s.store.GetApplication(ctx, applicantID); err != nil {
		return err
	}
	if err := s.store.ReplaceApplicantAvailability(ctx, applicantID, deduped); err != nil {
		return err
	}

	s.invalidate(ctx, domain.CacheKeyApplicant(applicantID))
	slog.InfoContext(ctx, "applicant availability replaced",
		slog.String("applicant_id", applicantID),
		slog.Int("tokens", len(deduped)),
	)
	return nil
}

// ReplaceInterviewerAvailability replaces the interviewer's full selection
// set and stamps each selection with the submission time.
func (s *Service) ReplaceInterviewerAvailability(ctx context.Context, interviewerID string, tokens []domain.GridToken) error {
	if interviewerID == "" {
		return &domain.ValidationError{Field: "interviewer_id", Reason: "required"}
	}
	deduped, err := s.normalize(tokens)
	if err != nil {
		return err
	}

	if _, err := s.store.GetInterviewer(ctx, interviewerID); err != nil {
		return err
	}

	now := time.Now().UTC()
	selections := make([]domain.AvailabilitySelection, 0, len(deduped))
	for _, tok := range deduped {
		selections = append(selections, domain.AvailabilitySelection{
			InterviewerID: interviewerID,
			Token:         tok,
			SelectedAt:    now,
		})
	}
	if err := s.store.ReplaceInterviewerAvailability(ctx, interviewerID, selections); err != nil {
		return err
	}

	s.invalidateTokenDays(ctx, interviewerID, deduped)
	slog.InfoContext(ctx, "interviewer availability replaced",
		slog.String("interviewer_id", interviewerID),
		slog.Int("tokens", len(deduped)),
	)
	return nil
}

// GetApplicantAvailability returns the applicant's stored tokens in
// chronological order.
func (s *Service) GetApplicantAvailability(ctx context.Context, applicantID string) ([]domain.GridToken, error) {
	tokens, err := s.store.GetApplicantAvailability(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	domain.SortTokens(tokens)
	return tokens, nil
}

// normalize validates every token against the universe, drops duplicates and
// returns the set sorted.
func (s *Service) normalize(tokens []domain.GridToken) ([]domain.GridToken, error) {
	seen := make(map[domain.GridToken]struct{}, len(tokens))
	deduped := make([]domain.GridToken, 0, len(tokens))
	for _, tok := range tokens {
		if _, err := domain.ParseSlotKey(tok); err != nil {
			return nil, &domain.ValidationError{Field: "tokens", Reason: fmt.Sprintf("malformed slot key %q", tok)}
		}
		if !s.codec.Contains(tok) {
			return nil, &domain.ValidationError{Field: "tokens", Reason: fmt.Sprintf("slot %q is outside the season window", tok)}
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		deduped = append(deduped, tok)
	}
	domain.SortTokens(deduped)
	return deduped, nil
}

func (s *Service) invalidateTokenDays(ctx context.Context, interviewerID string, tokens []domain.GridToken) {
	if s.cache == nil {
		return
	}
	seen := make(map[string]struct{})
	var keys []string
	for _, tok := range tokens {
		start, err := domain.ParseSlotKey(tok)
		if err != nil {
			continue
		}
		key := domain.CacheKeySlots(interviewerID, start)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return
	}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		slog.WarnContext(ctx, "cache invalidation failed",
			slog.String("error", err.Error()),
		)
	}
}

func (s *Service) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil || len(keys) == 0 {
		return
	}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		slog.WarnContext(ctx, "cache invalidation failed",
			slog.String("error", err.Error()),
		)
	}
}
