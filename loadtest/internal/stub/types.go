package stub

import "time"

type InterviewerResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Timezone    string   `json:"timezone"`
	TargetTeams []string `json:"target_teams,omitempty"`
	Slots       []string `json:"slots"`
}

type ApplicantResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Status         string    `json:"status"`
	PreferredTeams []string  `json:"preferred_teams,omitempty"`
	Slots          []string  `json:"slots"`
	CreatedAt      time.Time `json:"created_at"`
}

type InterviewersResponse struct {
	Interviewers []InterviewerResponse `json:"interviewers"`
	Count        int                   `json:"count"`
}

type ApplicantsResponse struct {
	Applicants []ApplicantResponse `json:"applicants"`
	Count      int                 `json:"count"`
}

type SeedRequest struct {
	Cohorts []SeedCohort `json:"cohorts"`
}

// SeedCohort describes one synthetic population: participants whose
// availability is spread evenly over the given day window.
type SeedCohort struct {
	StartDate    string   `json:"start_date"`
	Days         int      `json:"days"`
	Interviewers int      `json:"interviewers"`
	Applicants   int      `json:"applicants"`
	SlotsPerDay  int      `json:"slots_per_day"`
	Teams        []string `json:"teams,omitempty"`
}
