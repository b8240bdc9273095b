package match

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/campuscrew/interview-scheduling/internal/domain"
	"github.com/campuscrew/interview-scheduling/internal/observability/metrics"
	"github.com/campuscrew/interview-scheduling/internal/service/conflict"
	"github.com/campuscrew/interview-scheduling/internal/service/grid"
)

// AutoScheduler pairs applicants with interviewers. The cohort path writes
// soft matches only; the single-applicant path can realize a conflict-checked
// booking when asked to.
type AutoScheduler struct {
	store         domain.ScheduleStore
	checker       *conflict.Checker
	codec         *grid.Codec
	cache         domain.Cache
	notifier      domain.BookingNotifier
	recorder      domain.ResultRecorder
	metrics       *metrics.SchedulingMetrics
	slotsCacheTTL time.Duration
}

func NewAutoScheduler(
	store domain.ScheduleStore,
	checker *conflict.Checker,
	codec *grid.Codec,
	cache domain.Cache,
	notifier domain.BookingNotifier,
	recorder domain.ResultRecorder,
	schedulingMetrics *metrics.SchedulingMetrics,
	slotsCacheTTL time.Duration,
) *AutoScheduler {
	return &AutoScheduler{
		store:         store,
		checker:       checker,
		codec:         codec,
		cache:         cache,
		notifier:      notifier,
		recorder:      recorder,
		metrics:       schedulingMetrics,
		slotsCacheTTL: slotsCacheTTL,
	}
}

type ProposedMatch struct {
	ApplicantID   string    `json:"applicant_id"`
	InterviewerID string    `json:"interviewer_id"`
	Time          time.Time `json:"time"`
	Score         float64   `json:"score"`
}

type ResetResult struct {
	RunID     string          `json:"run_id"`
	Cohort    int             `json:"cohort"`
	Proposed  int             `json:"proposed"`
	Unmatched int             `json:"unmatched"`
	Matches   []ProposedMatch `json:"matches"`
}

// ResetUnmatched soft-matches every interviewing application that has no
// interviewer yet. Proposals are written to the application record without a
// conflict check and without creating Interview rows; realization happens
// later through the booking path.
func (s *AutoScheduler) ResetUnmatched(ctx context.Context) (*ResetResult, error) {
	started := time.Now()
	result := &ResetResult{RunID: uuid.NewString()}

	apps, err := s.store.ListUnassignedInterviewing(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing unassigned applications: %w", err)
	}
	result.Cohort = len(apps)
	if len(apps) == 0 {
		return result, nil
	}

	availability, err := s.store.ListAllInterviewerAvailability(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing interviewer availability: %w", err)
	}
	interviewers, err := s.store.ListInterviewers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing interviewers: %w", err)
	}
	interviewerByID := make(map[string]domain.Interviewer, len(interviewers))
	for _, iv := range interviewers {
		interviewerByID[iv.ID] = iv
	}

	idx := BuildAvailabilityIndex(availability)
	effective := make(map[string][]domain.GridToken)

	for i := range apps {
		app := &apps[i]

		applicantTokens, err := s.store.GetApplicantAvailability(ctx, app.ID)
		if err != nil {
			return nil, fmt.Errorf("loading availability for applicant %s: %w", app.ID, err)
		}

		best, ok, err := s.pickCandidate(ctx, idx, interviewerByID, effective, applicantTokens, app.PreferredTeams)
		if err != nil {
			return nil, err
		}
		if !ok {
			result.Unmatched++
			slog.DebugContext(ctx, "no candidate for applicant",
				slog.String("applicant_id", app.ID),
			)
			continue
		}

		token, _ := best.EarliestToken()
		proposedAt, err := s.codec.Decode(token)
		if err != nil {
			return nil, err
		}

		if err := app.Propose(best.Interviewer.ID, proposedAt, best.TotalScore); err != nil {
			result.Unmatched++
			continue
		}
		if err := s.store.UpdateApplication(ctx, app); err != nil {
			return nil, fmt.Errorf("saving proposal for applicant %s: %w", app.ID, err)
		}

		// The proposal holds the slot for the rest of the run. Later
		// applicants must not be proposed the same instant.
		hold := domain.TimeInterval{Start: proposedAt, End: proposedAt.Add(domain.ProposalDuration)}
		effective[best.Interviewer.ID] = withoutHeld(effective[best.Interviewer.ID], hold)

		s.invalidate(ctx, domain.CacheKeyApplicant(app.ID))
		if s.metrics != nil {
			s.metrics.RecordMatchScore(ctx, best.TotalScore)
		}

		result.Proposed++
		result.Matches = append(result.Matches, ProposedMatch{
			ApplicantID:   app.ID,
			InterviewerID: best.Interviewer.ID,
			Time:          proposedAt,
			Score:         best.TotalScore,
		})
	}

	elapsed := time.Since(started)
	if s.metrics != nil {
		s.metrics.RecordMatchRunDuration(ctx, elapsed)
	}
	if s.recorder != nil {
		if err := s.recorder.RecordMatchRun(ctx, domain.MatchRunRecord{
			RunID:      result.RunID,
			StartedAt:  started,
			CohortSize: result.Cohort,
			Proposed:   result.Proposed,
			Unmatched:  result.Unmatched,
			Duration:   elapsed,
		}); err != nil {
			slog.WarnContext(ctx, "failed to record match run",
				slog.String("run_id", result.RunID),
				slog.String("error", err.Error()),
			)
		}
	}

	slog.InfoContext(ctx, "auto-match run finished",
		slog.String("run_id", result.RunID),
		slog.Int("cohort", result.Cohort),
		slog.Int("proposed", result.Proposed),
		slog.Int("unmatched", result.Unmatched),
	)
	return result, nil
}

type ScheduleRequest struct {
	ApplicantID    string
	PreferredTeams []domain.TeamPreference
	AvailableSlots []domain.GridToken
	AutoCreate     bool
	Location       string
}

type ScheduleResult struct {
	Candidate Candidate
	Time      time.Time
	// Interview is set only when AutoCreate realized the booking.
	Interview *domain.Interview
}

// ScheduleOne matches a single applicant. With AutoCreate the proposal is
// conflict-checked and committed as a realized Interview in one transaction;
// without it only a soft match is written.
func (s *AutoScheduler) ScheduleOne(ctx context.Context, req ScheduleRequest) (*ScheduleResult, error) {
	app, err := s.store.GetApplication(ctx, req.ApplicantID)
	if err != nil {
		return nil, err
	}
	if app.Status != domain.StatusInterviewing {
		return nil, &domain.ValidationError{Field: "status", Reason: "application is not in the interviewing stage"}
	}

	applicantTokens := req.AvailableSlots
	if len(applicantTokens) == 0 {
		applicantTokens, err = s.store.GetApplicantAvailability(ctx, req.ApplicantID)
		if err != nil {
			return nil, err
		}
	}
	prefs := req.PreferredTeams
	if len(prefs) == 0 {
		prefs = app.PreferredTeams
	}

	availability, err := s.store.ListAllInterviewerAvailability(ctx)
	if err != nil {
		return nil, err
	}
	interviewers, err := s.store.ListInterviewers(ctx)
	if err != nil {
		return nil, err
	}
	interviewerByID := make(map[string]domain.Interviewer, len(interviewers))
	for _, iv := range interviewers {
		interviewerByID[iv.ID] = iv
	}

	idx := BuildAvailabilityIndex(availability)
	best, ok, err := s.pickCandidate(ctx, idx, interviewerByID, make(map[string][]domain.GridToken), applicantTokens, prefs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNoMatch
	}

	token, _ := best.EarliestToken()
	start, err := s.codec.Decode(token)
	if err != nil {
		return nil, err
	}

	result := &ScheduleResult{Candidate: best, Time: start}

	if !req.AutoCreate {
		if err := app.Propose(best.Interviewer.ID, start, best.TotalScore); err != nil {
			return nil, err
		}
		if err := s.store.UpdateApplication(ctx, app); err != nil {
			return nil, err
		}
		s.invalidate(ctx, domain.CacheKeyApplicant(app.ID))
		return result, nil
	}

	team := pickTeam(prefs, best.Interviewer.TargetTeams)
	interval := domain.TimeInterval{Start: start, End: start.Add(domain.InterviewDuration)}

	var created *domain.Interview
	err = s.store.InTransaction(ctx, func(tx domain.ScheduleStore) error {
		if err := s.checker.Validate(ctx, tx, conflict.Request{
			Interval:      interval,
			InterviewerID: best.Interviewer.ID,
			ApplicantID:   app.ID,
		}); err != nil {
			return err
		}

		created = domain.NewInterview(app.ID, best.Interviewer.ID, start, req.Location, team)
		if err := tx.CreateInterview(ctx, created); err != nil {
			return err
		}
		if err := app.Book(best.Interviewer.ID, created.ID); err != nil {
			return err
		}
		return tx.UpdateApplication(ctx, app)
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordBooking(ctx, "auto", "rejected")
		}
		return nil, err
	}

	result.Interview = created
	if s.metrics != nil {
		s.metrics.RecordBooking(ctx, "auto", "booked")
		s.metrics.RecordMatchScore(ctx, best.TotalScore)
	}

	s.invalidate(ctx,
		domain.CacheKeyApplicant(app.ID),
		domain.CacheKeySlots(best.Interviewer.ID, start),
	)
	s.notify(ctx, domain.BookingNotification{
		InterviewID:     created.ID,
		InterviewerID:   best.Interviewer.ID,
		InterviewerName: best.Interviewer.Name,
		ApplicantID:     app.ID,
		Time:            start,
		Location:        created.Location,
		Team:            created.Team,
	})
	return result, nil
}

// FindAvailableSlots enumerates the interviewer's free universe tokens for
// one calendar date in their own timezone, excluding any token whose slot
// overlaps a busy block or existing interview.
func (s *AutoScheduler) FindAvailableSlots(ctx context.Context, interviewerID string, date time.Time) ([]domain.GridToken, error) {
	interviewer, err := s.store.GetInterviewer(ctx, interviewerID)
	if err != nil {
		return nil, err
	}

	cacheKey := domain.CacheKeySlots(interviewerID, date)
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey); err == nil {
			var cached []domain.GridToken
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			slog.WarnContext(ctx, "slot cache read failed",
				slog.String("key", cacheKey),
				slog.String("error", err.Error()),
			)
		}
	}

	loc, err := interviewer.Location()
	if err != nil {
		return nil, &domain.ValidationError{Field: "timezone", Reason: fmt.Sprintf("unknown timezone %q", interviewer.Timezone)}
	}

	tokens := s.codec.DayTokens(date, loc)
	free, err := s.freeTokens(ctx, s.store, interviewerID, tokens)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(free); err == nil {
			if err := s.cache.Set(ctx, cacheKey, raw, s.slotsCacheTTL); err != nil {
				slog.WarnContext(ctx, "slot cache write failed",
					slog.String("key", cacheKey),
					slog.String("error", err.Error()),
				)
			}
		}
	}
	return free, nil
}

// pickCandidate scores every interviewer sharing at least one token with the
// applicant and selects the best. Interviewer tokens already covered by a
// busy block or interview are excluded before scoring, memoized per run in
// effective.
func (s *AutoScheduler) pickCandidate(
	ctx context.Context,
	idx *AvailabilityIndex,
	interviewerByID map[string]domain.Interviewer,
	effective map[string][]domain.GridToken,
	applicantTokens []domain.GridToken,
	prefs []domain.TeamPreference,
) (Candidate, bool, error) {
	var candidates []Candidate
	for _, interviewerID := range idx.InterviewersFor(applicantTokens) {
		interviewer, ok := interviewerByID[interviewerID]
		if !ok {
			continue
		}

		tokens, cached := effective[interviewerID]
		if !cached {
			var err error
			tokens, err = s.freeTokens(ctx, s.store, interviewerID, idx.TokensOf(interviewerID))
			if err != nil {
				return Candidate{}, false, err
			}
			effective[interviewerID] = tokens
		}

		candidates = append(candidates, ScoreCandidate(applicantTokens, prefs, interviewer, tokens))
	}

	best, ok := SelectBest(candidates)
	return best, ok, nil
}

// freeTokens filters out tokens whose 15-minute slot overlaps any busy block
// or interview of the interviewer. One span query per interviewer.
func (s *AutoScheduler) freeTokens(ctx context.Context, store domain.ScheduleStore, interviewerID string, tokens []domain.GridToken) ([]domain.GridToken, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	sorted := make([]domain.GridToken, len(tokens))
	copy(sorted, tokens)
	domain.SortTokens(sorted)

	first, err := domain.ParseSlotKey(sorted[0])
	if err != nil {
		return nil, err
	}
	last, err := domain.ParseSlotKey(sorted[len(sorted)-1])
	if err != nil {
		return nil, err
	}
	span := domain.TimeInterval{Start: first, End: last.Add(domain.SlotWidth)}

	blocks, err := store.ListBusyBlocksOverlapping(ctx, interviewerID, span)
	if err != nil {
		return nil, err
	}
	interviews, err := store.ListInterviewerInterviewsOverlapping(ctx, interviewerID, span)
	if err != nil {
		return nil, err
	}

	var free []domain.GridToken
	for _, token := range sorted {
		slot, err := token.Interval()
		if err != nil {
			return nil, err
		}
		if overlapsAnyBlock(slot, blocks) || overlapsAnyInterview(slot, interviews) {
			continue
		}
		free = append(free, token)
	}
	return free, nil
}

// withoutHeld drops the tokens whose slot overlaps an in-run proposal hold.
func withoutHeld(tokens []domain.GridToken, hold domain.TimeInterval) []domain.GridToken {
	kept := make([]domain.GridToken, 0, len(tokens))
	for _, token := range tokens {
		slot, err := token.Interval()
		if err != nil || slot.Overlaps(hold) {
			continue
		}
		kept = append(kept, token)
	}
	return kept
}

func overlapsAnyBlock(slot domain.TimeInterval, blocks []domain.BusyBlock) bool {
	for _, b := range blocks {
		if slot.Overlaps(b.Interval) {
			return true
		}
	}
	return false
}

func overlapsAnyInterview(slot domain.TimeInterval, interviews []domain.Interview) bool {
	for _, iv := range interviews {
		if slot.Overlaps(iv.Interval) {
			return true
		}
	}
	return false
}

// pickTeam chooses the interview's team tag: the interviewer target team the
// applicant rates highest, or none.
func pickTeam(prefs []domain.TeamPreference, targets []domain.Team) domain.Team {
	var best domain.Team
	var bestWeight float64
	targetSet := make(map[domain.Team]struct{}, len(targets))
	for _, t := range targets {
		targetSet[t] = struct{}{}
	}
	for _, p := range prefs {
		if _, ok := targetSet[p.Team]; !ok {
			continue
		}
		if w := p.Interest.Weight(); w > bestWeight {
			bestWeight = w
			best = p.Team
		}
	}
	return best
}

func (s *AutoScheduler) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		slog.WarnContext(ctx, "cache invalidation failed",
			slog.String("error", err.Error()),
		)
	}
}

func (s *AutoScheduler) notify(ctx context.Context, n domain.BookingNotification) {
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
