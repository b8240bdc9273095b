package stub

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/campuscrew/interview-scheduling/internal/domain"
)

type Cohort struct {
	StartDate    time.Time
	Days         int
	Interviewers int
	Applicants   int
	SlotsPerDay  int
	Teams        []string
}

type CohortStorage struct {
	mu      sync.RWMutex
	cohorts map[string][]*Cohort // runID -> cohorts
}

func NewCohortStorage() *CohortStorage {
	return &CohortStorage{
		cohorts: make(map[string][]*Cohort),
	}
}

func (s *CohortStorage) Reset(runID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cohorts, runID)
}

func (s *CohortStorage) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cohorts = make(map[string][]*Cohort)
}

func (s *CohortStorage) AddCohort(runID string, cohort *Cohort) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cohorts[runID] = append(s.cohorts[runID], cohort)
}

func (s *CohortStorage) GetInterviewers(runID string) []InterviewerResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	interviewers := []InterviewerResponse{}
	for _, cohort := range s.cohorts[runID] {
		for i := 0; i < cohort.Interviewers; i++ {
			id := generateParticipantID(runID, "iv", cohort.StartDate, i)
			interviewers = append(interviewers, InterviewerResponse{
				ID:          id,
				Name:        "Interviewer " + id[:8],
				Timezone:    "UTC",
				TargetTeams: teamFor(cohort.Teams, i),
				Slots:       generateSlots(cohort, i),
			})
		}
	}
	return interviewers
}

func (s *CohortStorage) GetApplicants(runID string) []ApplicantResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	applicants := []ApplicantResponse{}
	for _, cohort := range s.cohorts[runID] {
		for i := 0; i < cohort.Applicants; i++ {
			id := generateParticipantID(runID, "app", cohort.StartDate, i)
			applicants = append(applicants, ApplicantResponse{
				ID:             id,
				Name:           "Applicant " + id[:8],
				Status:         string(domain.StatusInterviewing),
				PreferredTeams: teamFor(cohort.Teams, i),
				Slots:          generateSlots(cohort, i+1),
				CreatedAt:      now,
			})
		}
	}
	return applicants
}

// generateSlots spreads slot tokens over the cohort window. The seed offsets
// each participant so populations only partially overlap.
func generateSlots(cohort *Cohort, seed int) []string {
	perDay := cohort.SlotsPerDay
	if perDay <= 0 {
		perDay = 4
	}
	days := cohort.Days
	if days <= 0 {
		days = 1
	}

	slots := make([]string, 0, perDay*days)
	for day := 0; day < days; day++ {
		base := cohort.StartDate.AddDate(0, 0, day).Add(9 * time.Hour)
		offset := time.Duration(seed%4) * domain.SlotWidth
		for i := 0; i < perDay; i++ {
			start := base.Add(offset + time.Duration(i)*domain.SlotWidth)
			slots = append(slots, string(domain.SlotKey(start)))
		}
	}
	return slots
}

func teamFor(teams []string, index int) []string {
	if len(teams) == 0 {
		return nil
	}
	return []string{teams[index%len(teams)]}
}

func generateParticipantID(runID, kind string, startDate time.Time, index int) string {
	input := fmt.Sprintf("%s-%s-%s-%d", runID, kind, startDate.Format("20060102"), index)
	hash := sha256.Sum256([]byte(input))
	hashStr := hex.EncodeToString(hash[:8])
	return fmt.Sprintf("%s-%s", kind, hashStr)
}
