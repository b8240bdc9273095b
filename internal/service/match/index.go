package match

import (
	"sort"

	"github.com/campuscrew/interview-scheduling/internal/domain"
)

// AvailabilityIndex maps each grid token to the interviewers who marked it
// available. Built once per matching run instead of re-scanning every
// interviewer's token set per candidate.
type AvailabilityIndex struct {
	byToken map[domain.GridToken][]string
	tokens  map[string][]domain.GridToken
}

func BuildAvailabilityIndex(availability map[string][]domain.GridToken) *AvailabilityIndex {
	idx := &AvailabilityIndex{
		byToken: make(map[domain.GridToken][]string),
		tokens:  make(map[string][]domain.GridToken, len(availability)),
	}
	for interviewerID, tokens := range availability {
		idx.tokens[interviewerID] = tokens
		for _, token := range tokens {
			idx.byToken[token] = append(idx.byToken[token], interviewerID)
		}
	}
	for token := range idx.byToken {
		sort.Strings(idx.byToken[token])
	}
	return idx
}

// InterviewersFor returns the distinct interviewers sharing at least one of
// the tokens, in ascending id order.
func (idx *AvailabilityIndex) InterviewersFor(tokens []domain.GridToken) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, token := range tokens {
		for _, id := range idx.byToken[token] {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// TokensOf returns an interviewer's availability tokens from the indexed snapshot.
func (idx *AvailabilityIndex) TokensOf(interviewerID string) []domain.GridToken {
	return idx.tokens[interviewerID]
}
