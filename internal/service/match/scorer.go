package match

import (
	"sort"

	"github.com/campuscrew/interview-scheduling/internal/domain"
)

const (
	// availabilityCapTokens caps the availability-score denominator so very
	// large applicant availability sets cannot trivially dominate.
	availabilityCapTokens = 10

	availabilityWeight = 0.6
	teamWeight         = 0.4
)

// Candidate is a transient scoring result for one interviewer; never persisted.
type Candidate struct {
	Interviewer       domain.Interviewer
	CommonTokens      []domain.GridToken
	AvailabilityScore float64
	TeamScore         float64
	TotalScore        float64
}

// EarliestToken returns the first shared slot in canonical order.
func (c Candidate) EarliestToken() (domain.GridToken, bool) {
	if len(c.CommonTokens) == 0 {
		return "", false
	}
	return c.CommonTokens[0], true
}

// ScoreCandidate computes the weighted match score of one interviewer against
// an applicant's availability and team preferences.
func ScoreCandidate(applicantTokens []domain.GridToken, prefs []domain.TeamPreference, interviewer domain.Interviewer, interviewerTokens []domain.GridToken) Candidate {
	common := intersectTokens(applicantTokens, interviewerTokens)

	availability := availabilityScore(len(common), len(applicantTokens))
	team := teamScore(prefs, interviewer.TargetTeams)

	return Candidate{
		Interviewer:       interviewer,
		CommonTokens:      common,
		AvailabilityScore: availability,
		TeamScore:         team,
		TotalScore:        availabilityWeight*availability + teamWeight*team,
	}
}

// RankCandidates orders candidates by descending total score, breaking ties
// by ascending interviewer id so runs are deterministic.
func RankCandidates(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].TotalScore != candidates[j].TotalScore {
			return candidates[i].TotalScore > candidates[j].TotalScore
		}
		return candidates[i].Interviewer.ID < candidates[j].Interviewer.ID
	})
}

// SelectBest picks the top-ranked candidate with a positive score and at
// least one shared slot.
func SelectBest(candidates []Candidate) (Candidate, bool) {
	RankCandidates(candidates)
	for _, c := range candidates {
		if c.TotalScore > 0 && len(c.CommonTokens) > 0 {
			return c, true
		}
	}
	return Candidate{}, false
}

func availabilityScore(commonCount, applicantCount int) float64 {
	if applicantCount == 0 || commonCount == 0 {
		return 0
	}
	denominator := applicantCount
	if denominator > availabilityCapTokens {
		denominator = availabilityCapTokens
	}
	ratio := float64(commonCount) / float64(denominator)
	if ratio > 1 {
		ratio = 1
	}
	return 100 * ratio
}

// teamScore sums interest weights for every interviewer target team the
// applicant prefers, clamped to 100.
func teamScore(prefs []domain.TeamPreference, targets []domain.Team) float64 {
	interest := make(map[domain.Team]domain.InterestLevel, len(prefs))
	for _, p := range prefs {
		interest[p.Team] = p.Interest
	}

	var score float64
	for _, target := range targets {
		if level, ok := interest[target]; ok {
			score += level.Weight()
		}
	}
	if score > 100 {
		score = 100
	}
	return score
}

// intersectTokens returns the shared tokens in canonical (chronological) order.
func intersectTokens(a, b []domain.GridToken) []domain.GridToken {
	set := make(map[domain.GridToken]struct{}, len(b))
	for _, t := range b {
		set[t] = struct{}{}
	}

	var common []domain.GridToken
	seen := make(map[domain.GridToken]struct{})
	for _, t := range a {
		if _, ok := set[t]; !ok {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		common = append(common, t)
	}
	domain.SortTokens(common)
	return common
}
