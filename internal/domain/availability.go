package domain

import (
	"sort"
	"time"
)

// MinContiguousTokens is the minimum contiguous run an applicant must submit:
// one full hour of 15-minute slots.
const MinContiguousTokens = 4

// Interviewer is an officer who conducts interviews.
type Interviewer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Timezone    string `json:"timezone"`
	TargetTeams []Team `json:"target_teams"`
}

// Location resolves the interviewer's timezone, defaulting to UTC.
func (iv Interviewer) Location() (*time.Location, error) {
	if iv.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(iv.Timezone)
}

// AvailabilitySelection is one interviewer-chosen slot. Uniqueness is
// enforced per (interviewer, token) pair.
type AvailabilitySelection struct {
	InterviewerID string    `json:"interviewer_id"`
	Token         GridToken `json:"token"`
	SelectedAt    time.Time `json:"selected_at"`
}

// SortTokens orders tokens chronologically (lexicographic on the canonical key).
func SortTokens(tokens []GridToken) {
	sort.Slice(tokens, func(i, j int) bool { return tokens[i] < tokens[j] })
}

// HasContiguousRun reports whether the token set contains at least n tokens
// in a row, each exactly one slot width after the previous.
func HasContiguousRun(tokens []GridToken, n int) bool {
	if n <= 1 {
		return len(tokens) >= n
	}
	sorted := make([]GridToken, len(tokens))
	copy(sorted, tokens)
	SortTokens(sorted)

	run := 1
	var prev time.Time
	for i, tok := range sorted {
		start, err := ParseSlotKey(tok)
		if err != nil {
			return false
		}
		if i > 0 {
			if start.Sub(prev) == SlotWidth {
				run++
				if run >= n {
					return true
				}
			} else if !start.Equal(prev) {
				run = 1
			}
		}
		prev = start
	}
	return run >= n
}
