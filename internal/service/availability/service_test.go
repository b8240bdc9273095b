package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/campuscrew/interview-scheduling/internal/domain"
	"github.com/campuscrew/interview-scheduling/internal/infra/store"
	"github.com/campuscrew/interview-scheduling/internal/service/grid"
	"github.com/campuscrew/interview-scheduling/internal/testutil"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()

	db := testutil.OpenTestDB(t)
	if err := store.Migrate(db); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	s := store.New(db)

	codec, err := grid.NewCodec(
		time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC),
		time.UTC,
	)
	if err != nil {
		t.Fatalf("failed to build codec: %v", err)
	}

	return NewService(s, codec, nil), s
}

func seed(t *testing.T, s *store.Store) {
	t.Helper()
	ctx := context.Background()

	err := s.CreateApplication(ctx, &domain.Application{
		ID:         "app-1",
		Name:       "Applicant",
		Status:     domain.StatusInterviewing,
		Assignment: domain.Assignment{Phase: domain.AssignmentNone},
	})
	if err != nil {
		t.Fatalf("failed to seed application: %v", err)
	}
	err = s.CreateInterviewer(ctx, &domain.Interviewer{ID: "iv-1", Name: "Interviewer", Timezone: "UTC"})
	if err != nil {
		t.Fatalf("failed to seed interviewer: %v", err)
	}
}

func TestSubmitApplicantAvailability(t *testing.T) {
	svc, s := newTestService(t)
	seed(t, s)
	ctx := context.Background()

	hour := []domain.GridToken{
		"2026-03-14-09-00", "2026-03-14-09-15", "2026-03-14-09-30", "2026-03-14-09-45",
	}
	if err := svc.SubmitApplicantAvailability(ctx, "app-1", hour); err != nil {
		t.Fatalf("SubmitApplicantAvailability() error = %v", err)
	}

	got, err := svc.GetApplicantAvailability(ctx, "app-1")
	if err != nil {
		t.Fatalf("GetApplicantAvailability() error = %v", err)
	}
	if len(got) != 4 {
		t.Errorf("tokens = %d, want 4", len(got))
	}
}

func TestSubmitApplicantAvailability_RequiresContiguousHour(t *testing.T) {
	svc, s := newTestService(t)
	seed(t, s)

	scattered := []domain.GridToken{
		"2026-03-14-09-00", "2026-03-14-10-00", "2026-03-14-11-00", "2026-03-14-12-00",
	}
	err := svc.SubmitApplicantAvailability(context.Background(), "app-1", scattered)

	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("SubmitApplicantAvailability() error = %v, want *domain.ValidationError", err)
	}
}

func TestSubmitApplicantAvailability_RejectsOutOfSeasonTokens(t *testing.T) {
	svc, s := newTestService(t)
	seed(t, s)

	outside := []domain.GridToken{
		"2027-01-01-09-00", "2027-01-01-09-15", "2027-01-01-09-30", "2027-01-01-09-45",
	}
	err := svc.SubmitApplicantAvailability(context.Background(), "app-1", outside)

	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("SubmitApplicantAvailability() error = %v, want *domain.ValidationError", err)
	}
}

func TestSubmitApplicantAvailability_UnknownApplicant(t *testing.T) {
	svc, _ := newTestService(t)

	hour := []domain.GridToken{
		"2026-03-14-09-00", "2026-03-14-09-15", "2026-03-14-09-30", "2026-03-14-09-45",
	}
	err := svc.SubmitApplicantAvailability(context.Background(), "missing", hour)
	if !errors.Is(err, domain.ErrApplicationNotFound) {
		t.Errorf("SubmitApplicantAvailability() error = %v, want ErrApplicationNotFound", err)
	}
}

func TestReplaceInterviewerAvailability_DedupesAndStamps(t *testing.T) {
	svc, s := newTestService(t)
	seed(t, s)
	ctx := context.Background()

	tokens := []domain.GridToken{
		"2026-03-14-09-00", "2026-03-14-09-00", "2026-03-14-09-15",
	}
	if err := svc.ReplaceInterviewerAvailability(ctx, "iv-1", tokens); err != nil {
		t.Fatalf("ReplaceInterviewerAvailability() error = %v", err)
	}

	selections, err := s.GetInterviewerAvailability(ctx, "iv-1")
	if err != nil {
		t.Fatalf("GetInterviewerAvailability() error = %v", err)
	}
	if len(selections) != 2 {
		t.Fatalf("selections = %d, want 2 after dedupe", len(selections))
	}
	for _, sel := range selections {
		if sel.SelectedAt.IsZero() {
			t.Errorf("selection %q missing SelectedAt stamp", sel.Token)
		}
	}
}

func TestReplaceInterviewerAvailability_FullReplacement(t *testing.T) {
	svc, s := newTestService(t)
	seed(t, s)
	ctx := context.Background()

	if err := svc.ReplaceInterviewerAvailability(ctx, "iv-1", []domain.GridToken{"2026-03-14-09-00"}); err != nil {
		t.Fatalf("first ReplaceInterviewerAvailability() error = %v", err)
	}
	if err := svc.ReplaceInterviewerAvailability(ctx, "iv-1", []domain.GridToken{"2026-03-15-10-00"}); err != nil {
		t.Fatalf("second ReplaceInterviewerAvailability() error = %v", err)
	}

	selections, err := s.GetInterviewerAvailability(ctx, "iv-1")
	if err != nil {
		t.Fatalf("GetInterviewerAvailability() error = %v", err)
	}
	if len(selections) != 1 || selections[0].Token != domain.GridToken("2026-03-15-10-00") {
		t.Errorf("selections = %+v, want only the second submission", selections)
	}
}
