package match

import (
	"testing"

	"github.com/campuscrew/interview-scheduling/internal/domain"
)

func tokens(keys ...string) []domain.GridToken {
	out := make([]domain.GridToken, 0, len(keys))
	for _, k := range keys {
		out = append(out, domain.GridToken(k))
	}
	return out
}

func TestScoreCandidate_AvailabilityScore(t *testing.T) {
	interviewer := domain.Interviewer{ID: "iv-1"}

	tests := []struct {
		name        string
		applicant   []domain.GridToken
		interviewer []domain.GridToken
		want        float64
	}{
		{
			name:        "full overlap",
			applicant:   tokens("2026-03-14-09-00", "2026-03-14-09-15"),
			interviewer: tokens("2026-03-14-09-00", "2026-03-14-09-15"),
			want:        100,
		},
		{
			name:        "half overlap",
			applicant:   tokens("2026-03-14-09-00", "2026-03-14-09-15"),
			interviewer: tokens("2026-03-14-09-00"),
			want:        50,
		},
		{
			name:        "no overlap",
			applicant:   tokens("2026-03-14-09-00"),
			interviewer: tokens("2026-03-14-10-00"),
			want:        0,
		},
		{
			name:      "denominator capped at ten",
			applicant: tokens("2026-03-14-09-00", "2026-03-14-09-15", "2026-03-14-09-30", "2026-03-14-09-45", "2026-03-14-10-00", "2026-03-14-10-15", "2026-03-14-10-30", "2026-03-14-10-45", "2026-03-14-11-00", "2026-03-14-11-15", "2026-03-14-11-30", "2026-03-14-11-45"),
			interviewer: tokens("2026-03-14-09-00", "2026-03-14-09-15", "2026-03-14-09-30",
				"2026-03-14-09-45", "2026-03-14-10-00"),
			want: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ScoreCandidate(tt.applicant, nil, interviewer, tt.interviewer)
			if c.AvailabilityScore != tt.want {
				t.Errorf("AvailabilityScore = %v, want %v", c.AvailabilityScore, tt.want)
			}
		})
	}
}

func TestScoreCandidate_TeamScore(t *testing.T) {
	tests := []struct {
		name    string
		prefs   []domain.TeamPreference
		targets []domain.Team
		want    float64
	}{
		{
			name:    "high interest target",
			prefs:   []domain.TeamPreference{{Team: domain.TeamEngineering, Interest: domain.InterestHigh}},
			targets: []domain.Team{domain.TeamEngineering},
			want:    100,
		},
		{
			name:    "medium interest target",
			prefs:   []domain.TeamPreference{{Team: domain.TeamDesign, Interest: domain.InterestMedium}},
			targets: []domain.Team{domain.TeamDesign},
			want:    70,
		},
		{
			name:    "low interest target",
			prefs:   []domain.TeamPreference{{Team: domain.TeamFinance, Interest: domain.InterestLow}},
			targets: []domain.Team{domain.TeamFinance},
			want:    40,
		},
		{
			name: "multiple targets clamp at one hundred",
			prefs: []domain.TeamPreference{
				{Team: domain.TeamEngineering, Interest: domain.InterestHigh},
				{Team: domain.TeamDesign, Interest: domain.InterestMedium},
			},
			targets: []domain.Team{domain.TeamEngineering, domain.TeamDesign},
			want:    100,
		},
		{
			name:    "no matching target",
			prefs:   []domain.TeamPreference{{Team: domain.TeamEngineering, Interest: domain.InterestHigh}},
			targets: []domain.Team{domain.TeamOutreach},
			want:    0,
		},
	}

	shared := tokens("2026-03-14-09-00")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interviewer := domain.Interviewer{ID: "iv-1", TargetTeams: tt.targets}
			c := ScoreCandidate(shared, tt.prefs, interviewer, shared)
			if c.TeamScore != tt.want {
				t.Errorf("TeamScore = %v, want %v", c.TeamScore, tt.want)
			}
		})
	}
}

func TestScoreCandidate_WeightedTotal(t *testing.T) {
	interviewer := domain.Interviewer{
		ID:          "iv-1",
		TargetTeams: []domain.Team{domain.TeamEngineering},
	}
	prefs := []domain.TeamPreference{{Team: domain.TeamEngineering, Interest: domain.InterestMedium}}

	applicant := tokens("2026-03-14-09-00", "2026-03-14-09-15")
	shared := tokens("2026-03-14-09-00")

	c := ScoreCandidate(applicant, prefs, interviewer, shared)

	// 0.6*50 + 0.4*70
	want := 58.0
	if diff := c.TotalScore - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("TotalScore = %v, want %v", c.TotalScore, want)
	}
}

func TestSelectBest_AvailabilityDominatesOverTeam(t *testing.T) {
	applicant := tokens("2026-03-14-09-00", "2026-03-14-09-15", "2026-03-14-09-30", "2026-03-14-09-45")
	prefs := []domain.TeamPreference{{Team: domain.TeamEngineering, Interest: domain.InterestHigh}}

	// Full schedule overlap, wrong team.
	fullOverlap := ScoreCandidate(applicant, prefs,
		domain.Interviewer{ID: "iv-availability", TargetTeams: []domain.Team{domain.TeamFinance}},
		applicant,
	)
	// Perfect team match, one shared slot.
	teamMatch := ScoreCandidate(applicant, prefs,
		domain.Interviewer{ID: "iv-team", TargetTeams: []domain.Team{domain.TeamEngineering}},
		tokens("2026-03-14-09-00"),
	)

	best, ok := SelectBest([]Candidate{teamMatch, fullOverlap})
	if !ok {
		t.Fatal("SelectBest() ok = false, want true")
	}
	// 0.6*100 + 0.4*0 = 60 beats 0.6*25 + 0.4*100 = 55.
	if best.Interviewer.ID != "iv-availability" {
		t.Errorf("best = %q, want iv-availability", best.Interviewer.ID)
	}
}

func TestSelectBest_TieBreaksOnInterviewerID(t *testing.T) {
	applicant := tokens("2026-03-14-09-00")

	a := ScoreCandidate(applicant, nil, domain.Interviewer{ID: "iv-b"}, applicant)
	b := ScoreCandidate(applicant, nil, domain.Interviewer{ID: "iv-a"}, applicant)

	best, ok := SelectBest([]Candidate{a, b})
	if !ok {
		t.Fatal("SelectBest() ok = false, want true")
	}
	if best.Interviewer.ID != "iv-a" {
		t.Errorf("best = %q, want iv-a (ascending id tie-break)", best.Interviewer.ID)
	}
}

func TestSelectBest_RequiresSharedSlot(t *testing.T) {
	prefs := []domain.TeamPreference{{Team: domain.TeamEngineering, Interest: domain.InterestHigh}}

	// Positive team score but zero shared slots must not match.
	c := ScoreCandidate(
		tokens("2026-03-14-09-00"),
		prefs,
		domain.Interviewer{ID: "iv-1", TargetTeams: []domain.Team{domain.TeamEngineering}},
		tokens("2026-03-14-10-00"),
	)

	if _, ok := SelectBest([]Candidate{c}); ok {
		t.Error("SelectBest() ok = true for candidate with no shared slots")
	}
}

func TestCandidate_EarliestToken(t *testing.T) {
	c := ScoreCandidate(
		tokens("2026-03-14-09-30", "2026-03-14-09-00", "2026-03-14-09-15"),
		nil,
		domain.Interviewer{ID: "iv-1"},
		tokens("2026-03-14-09-30", "2026-03-14-09-00"),
	)

	earliest, ok := c.EarliestToken()
	if !ok {
		t.Fatal("EarliestToken() ok = false, want true")
	}
	if earliest != domain.GridToken("2026-03-14-09-00") {
		t.Errorf("EarliestToken() = %q, want 2026-03-14-09-00", earliest)
	}
}

func TestBuildAvailabilityIndex(t *testing.T) {
	idx := BuildAvailabilityIndex(map[string][]domain.GridToken{
		"iv-b": tokens("2026-03-14-09-00", "2026-03-14-09-15"),
		"iv-a": tokens("2026-03-14-09-00"),
	})

	got := idx.InterviewersFor(tokens("2026-03-14-09-00"))
	if len(got) != 2 || got[0] != "iv-a" || got[1] != "iv-b" {
		t.Errorf("InterviewersFor() = %v, want [iv-a iv-b]", got)
	}

	got = idx.InterviewersFor(tokens("2026-03-14-09-15"))
	if len(got) != 1 || got[0] != "iv-b" {
		t.Errorf("InterviewersFor() = %v, want [iv-b]", got)
	}

	if got := idx.InterviewersFor(tokens("2026-03-14-10-00")); len(got) != 0 {
		t.Errorf("InterviewersFor() = %v, want empty", got)
	}
}
