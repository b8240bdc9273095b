package match

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/campuscrew/interview-scheduling/internal/domain"
	"github.com/campuscrew/interview-scheduling/internal/infra/store"
	"github.com/campuscrew/interview-scheduling/internal/service/conflict"
	"github.com/campuscrew/interview-scheduling/internal/service/grid"
	"github.com/campuscrew/interview-scheduling/internal/testutil"
)

// The season sits far in the future so the grace-window check never trips.
var seasonDay = time.Date(2030, 3, 14, 0, 0, 0, 0, time.UTC)

func newTestScheduler(t *testing.T) (*AutoScheduler, *store.Store) {
	t.Helper()

	db := testutil.OpenTestDB(t)
	if err := store.Migrate(db); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	s := store.New(db)

	codec, err := grid.NewCodec(seasonDay, seasonDay.AddDate(0, 0, 7), time.UTC)
	if err != nil {
		t.Fatalf("failed to build codec: %v", err)
	}
	checker := conflict.NewChecker(8, 22, 5*time.Minute, time.UTC)

	return NewAutoScheduler(s, checker, codec, nil, nil, nil, nil, 0), s
}

func seedInterviewer(t *testing.T, s *store.Store, id string, teams []domain.Team, tokens []domain.GridToken) {
	t.Helper()
	ctx := context.Background()

	err := s.CreateInterviewer(ctx, &domain.Interviewer{
		ID:          id,
		Name:        "Interviewer " + id,
		Timezone:    "UTC",
		TargetTeams: teams,
	})
	if err != nil {
		t.Fatalf("failed to seed interviewer %s: %v", id, err)
	}

	now := time.Now().UTC()
	selections := make([]domain.AvailabilitySelection, 0, len(tokens))
	for _, tok := range tokens {
		selections = append(selections, domain.AvailabilitySelection{
			InterviewerID: id,
			Token:         tok,
			SelectedAt:    now,
		})
	}
	if err := s.ReplaceInterviewerAvailability(ctx, id, selections); err != nil {
		t.Fatalf("failed to seed availability for %s: %v", id, err)
	}
}

func seedApplicant(t *testing.T, s *store.Store, id string, prefs []domain.TeamPreference, tokens []domain.GridToken) {
	t.Helper()
	ctx := context.Background()

	err := s.CreateApplication(ctx, &domain.Application{
		ID:             id,
		Name:           "Applicant " + id,
		Status:         domain.StatusInterviewing,
		PreferredTeams: prefs,
		Assignment:     domain.Assignment{Phase: domain.AssignmentNone},
	})
	if err != nil {
		t.Fatalf("failed to seed application %s: %v", id, err)
	}
	if err := s.ReplaceApplicantAvailability(ctx, id, tokens); err != nil {
		t.Fatalf("failed to seed availability for %s: %v", id, err)
	}
}

func dayTokens(hour, minute, n int) []domain.GridToken {
	out := make([]domain.GridToken, 0, n)
	cursor := seasonDay.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	for i := 0; i < n; i++ {
		out = append(out, domain.SlotKey(cursor))
		cursor = cursor.Add(domain.SlotWidth)
	}
	return out
}

func TestScheduleOne_BusySlotShiftsTheMatch(t *testing.T) {
	scheduler, s := newTestScheduler(t)
	ctx := context.Background()

	shared := dayTokens(9, 0, 4)
	seedInterviewer(t, s, "iv-1", nil, shared)
	seedApplicant(t, s, "app-1", nil, shared)

	// The interviewer is busy 09:00-09:15, so the earliest shared free slot
	// moves to 09:15.
	busyStart := seasonDay.Add(9 * time.Hour)
	block := domain.NewSlotBusyBlock("iv-1", busyStart, "")
	if err := s.CreateBusyBlocks(ctx, []domain.BusyBlock{*block}); err != nil {
		t.Fatalf("CreateBusyBlocks() error = %v", err)
	}

	result, err := scheduler.ScheduleOne(ctx, ScheduleRequest{ApplicantID: "app-1"})
	if err != nil {
		t.Fatalf("ScheduleOne() error = %v", err)
	}

	want := busyStart.Add(15 * time.Minute)
	if !result.Time.Equal(want) {
		t.Errorf("proposed time = %v, want %v", result.Time, want)
	}
	if result.Interview != nil {
		t.Error("Interview set without AutoCreate")
	}

	app, err := s.GetApplication(ctx, "app-1")
	if err != nil {
		t.Fatalf("GetApplication() error = %v", err)
	}
	if app.Assignment.Phase != domain.AssignmentProposed {
		t.Errorf("Phase = %s, want %s", app.Assignment.Phase, domain.AssignmentProposed)
	}
	if !app.Assignment.ProposedTime.Equal(want) {
		t.Errorf("ProposedTime = %v, want %v", app.Assignment.ProposedTime, want)
	}
}

func TestScheduleOne_AutoCreateRealizesBooking(t *testing.T) {
	scheduler, s := newTestScheduler(t)
	ctx := context.Background()

	shared := dayTokens(9, 0, 4)
	seedInterviewer(t, s, "iv-1", []domain.Team{domain.TeamEngineering}, shared)
	seedApplicant(t, s, "app-1",
		[]domain.TeamPreference{{Team: domain.TeamEngineering, Interest: domain.InterestHigh}},
		shared,
	)

	result, err := scheduler.ScheduleOne(ctx, ScheduleRequest{
		ApplicantID: "app-1",
		AutoCreate:  true,
		Location:    "room 3",
	})
	if err != nil {
		t.Fatalf("ScheduleOne() error = %v", err)
	}
	if result.Interview == nil {
		t.Fatal("Interview = nil with AutoCreate")
	}
	if result.Interview.Team != domain.TeamEngineering {
		t.Errorf("Team = %s, want engineering", result.Interview.Team)
	}
	if got := result.Interview.Interval.Duration(); got != domain.InterviewDuration {
		t.Errorf("interview duration = %v, want %v", got, domain.InterviewDuration)
	}

	stored, err := s.GetInterview(ctx, result.Interview.ID)
	if err != nil {
		t.Fatalf("GetInterview() error = %v", err)
	}
	if stored.Location != "room 3" {
		t.Errorf("Location = %q, want room 3", stored.Location)
	}

	app, err := s.GetApplication(ctx, "app-1")
	if err != nil {
		t.Fatalf("GetApplication() error = %v", err)
	}
	if app.Assignment.Phase != domain.AssignmentBooked {
		t.Errorf("Phase = %s, want %s", app.Assignment.Phase, domain.AssignmentBooked)
	}
	if app.Assignment.InterviewID != result.Interview.ID {
		t.Errorf("InterviewID = %q, want %q", app.Assignment.InterviewID, result.Interview.ID)
	}
}

func TestScheduleOne_NoSharedSlots(t *testing.T) {
	scheduler, s := newTestScheduler(t)

	seedInterviewer(t, s, "iv-1", nil, dayTokens(9, 0, 4))
	seedApplicant(t, s, "app-1", nil, dayTokens(14, 0, 4))

	_, err := scheduler.ScheduleOne(context.Background(), ScheduleRequest{ApplicantID: "app-1"})
	if !errors.Is(err, domain.ErrNoMatch) {
		t.Errorf("ScheduleOne() error = %v, want ErrNoMatch", err)
	}
}

func TestScheduleOne_PreferredTeamWinsTie(t *testing.T) {
	scheduler, s := newTestScheduler(t)

	shared := dayTokens(9, 0, 4)
	seedInterviewer(t, s, "iv-design", []domain.Team{domain.TeamDesign}, shared)
	seedInterviewer(t, s, "iv-eng", []domain.Team{domain.TeamEngineering}, shared)
	seedApplicant(t, s, "app-1",
		[]domain.TeamPreference{{Team: domain.TeamEngineering, Interest: domain.InterestHigh}},
		shared,
	)

	result, err := scheduler.ScheduleOne(context.Background(), ScheduleRequest{ApplicantID: "app-1"})
	if err != nil {
		t.Fatalf("ScheduleOne() error = %v", err)
	}
	if result.Candidate.Interviewer.ID != "iv-eng" {
		t.Errorf("matched interviewer = %q, want iv-eng", result.Candidate.Interviewer.ID)
	}
}

func TestResetUnmatched_ProposesWithoutCreatingInterviews(t *testing.T) {
	scheduler, s := newTestScheduler(t)
	ctx := context.Background()

	shared := dayTokens(9, 0, 4)
	seedInterviewer(t, s, "iv-1", nil, shared)
	seedApplicant(t, s, "app-1", nil, shared)
	seedApplicant(t, s, "app-2", nil, dayTokens(18, 0, 4))

	result, err := scheduler.ResetUnmatched(ctx)
	if err != nil {
		t.Fatalf("ResetUnmatched() error = %v", err)
	}
	if result.Cohort != 2 {
		t.Errorf("Cohort = %d, want 2", result.Cohort)
	}
	if result.Proposed != 1 {
		t.Errorf("Proposed = %d, want 1", result.Proposed)
	}
	if result.Unmatched != 1 {
		t.Errorf("Unmatched = %d, want 1", result.Unmatched)
	}
	if result.RunID == "" {
		t.Error("RunID is empty")
	}

	app, err := s.GetApplication(ctx, "app-1")
	if err != nil {
		t.Fatalf("GetApplication() error = %v", err)
	}
	if app.Assignment.Phase != domain.AssignmentProposed {
		t.Errorf("Phase = %s, want %s", app.Assignment.Phase, domain.AssignmentProposed)
	}
	// Soft matches never create interview rows.
	if app.Assignment.InterviewID != "" {
		t.Errorf("InterviewID = %q, want empty", app.Assignment.InterviewID)
	}

	// A second run leaves the proposed applicant alone.
	again, err := scheduler.ResetUnmatched(ctx)
	if err != nil {
		t.Fatalf("second ResetUnmatched() error = %v", err)
	}
	if again.Cohort != 1 {
		t.Errorf("second run cohort = %d, want 1", again.Cohort)
	}
}

func TestResetUnmatched_ProposalHoldsSlotForRestOfRun(t *testing.T) {
	scheduler, s := newTestScheduler(t)
	ctx := context.Background()

	// One interviewer, one free hour, two applicants wanting all of it.
	shared := dayTokens(9, 0, 4)
	seedInterviewer(t, s, "iv-1", nil, shared)
	seedApplicant(t, s, "app-1", nil, shared)
	seedApplicant(t, s, "app-2", nil, shared)

	result, err := scheduler.ResetUnmatched(ctx)
	if err != nil {
		t.Fatalf("ResetUnmatched() error = %v", err)
	}
	if result.Proposed != 2 {
		t.Fatalf("Proposed = %d, want 2", result.Proposed)
	}

	appA, err := s.GetApplication(ctx, "app-1")
	if err != nil {
		t.Fatalf("GetApplication(app-1) error = %v", err)
	}
	appB, err := s.GetApplication(ctx, "app-2")
	if err != nil {
		t.Fatalf("GetApplication(app-2) error = %v", err)
	}

	first := seasonDay.Add(9 * time.Hour)
	if !appA.Assignment.ProposedTime.Equal(first) {
		t.Errorf("app-1 ProposedTime = %v, want %v", appA.Assignment.ProposedTime, first)
	}
	// app-1's proposal holds 09:00-09:30, so app-2 starts after the hold.
	second := first.Add(domain.ProposalDuration)
	if !appB.Assignment.ProposedTime.Equal(second) {
		t.Errorf("app-2 ProposedTime = %v, want %v", appB.Assignment.ProposedTime, second)
	}
	if appA.Assignment.ProposedTime.Equal(appB.Assignment.ProposedTime) {
		t.Error("both applicants were proposed the same slot")
	}
}

func TestFindAvailableSlots_ExcludesBusyAndBooked(t *testing.T) {
	scheduler, s := newTestScheduler(t)
	ctx := context.Background()

	seedInterviewer(t, s, "iv-1", nil, nil)

	// Busy 09:00-09:15 and an interview 10:00-10:45.
	busyStart := seasonDay.Add(9 * time.Hour)
	if err := s.CreateBusyBlocks(ctx, []domain.BusyBlock{*domain.NewSlotBusyBlock("iv-1", busyStart, "")}); err != nil {
		t.Fatalf("CreateBusyBlocks() error = %v", err)
	}
	iv := domain.NewInterview("app-1", "iv-1", seasonDay.Add(10*time.Hour), "room 3", domain.TeamEngineering)
	if err := s.CreateInterview(ctx, iv); err != nil {
		t.Fatalf("CreateInterview() error = %v", err)
	}

	free, err := scheduler.FindAvailableSlots(ctx, "iv-1", seasonDay)
	if err != nil {
		t.Fatalf("FindAvailableSlots() error = %v", err)
	}

	freeSet := make(map[domain.GridToken]struct{}, len(free))
	for _, tok := range free {
		freeSet[tok] = struct{}{}
	}

	// 96 day slots minus one busy slot minus three interview slots.
	if len(free) != 92 {
		t.Errorf("free tokens = %d, want 92", len(free))
	}
	for _, gone := range []domain.GridToken{
		domain.SlotKey(busyStart),
		domain.SlotKey(seasonDay.Add(10 * time.Hour)),
		domain.SlotKey(seasonDay.Add(10*time.Hour + 30*time.Minute)),
	} {
		if _, ok := freeSet[gone]; ok {
			t.Errorf("token %q should be excluded", gone)
		}
	}
	if _, ok := freeSet[domain.SlotKey(busyStart.Add(15*time.Minute))]; !ok {
		t.Error("token after the busy slot should stay free")
	}
}
