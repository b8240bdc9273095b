package domain

import "fmt"

// Team is the closed set of teams applicants can prefer and interviewers
// can recruit for. Values are validated at the boundary; code downstream
// may assume a Team is one of these constants.
type Team string

const (
	TeamEngineering Team = "engineering"
	TeamDesign      Team = "design"
	TeamOperations  Team = "operations"
	TeamOutreach    Team = "outreach"
	TeamFinance     Team = "finance"
)

func ParseTeam(s string) (Team, error) {
	t := Team(s)
	if !t.Valid() {
		return "", &ValidationError{Field: "team", Reason: fmt.Sprintf("unknown team %q", s)}
	}
	return t, nil
}

func (t Team) Valid() bool {
	switch t {
	case TeamEngineering, TeamDesign, TeamOperations, TeamOutreach, TeamFinance:
		return true
	}
	return false
}

func (t Team) String() string {
	return string(t)
}

// InterestLevel is an applicant's stated interest in a preferred team.
type InterestLevel string

const (
	InterestHigh   InterestLevel = "high"
	InterestMedium InterestLevel = "medium"
	InterestLow    InterestLevel = "low"
)

func ParseInterestLevel(s string) (InterestLevel, error) {
	l := InterestLevel(s)
	if !l.Valid() {
		return "", &ValidationError{Field: "interest", Reason: fmt.Sprintf("unknown interest level %q", s)}
	}
	return l, nil
}

func (l InterestLevel) Valid() bool {
	switch l {
	case InterestHigh, InterestMedium, InterestLow:
		return true
	}
	return false
}

// Weight is the team-score contribution for a matching target team.
func (l InterestLevel) Weight() float64 {
	switch l {
	case InterestHigh:
		return 100
	case InterestMedium:
		return 70
	case InterestLow:
		return 40
	}
	return 0
}

// TeamPreference pairs a preferred team with the applicant's interest in it.
type TeamPreference struct {
	Team     Team          `json:"team"`
	Interest InterestLevel `json:"interest"`
}
