package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	// InterviewDuration is the fixed length of every realized interview.
	InterviewDuration = 45 * time.Minute
	// ProposalDuration is the length assumed by the soft-match path.
	ProposalDuration = 30 * time.Minute
)

// Interview is a realized, conflict-checked booking. Placeholder interviews
// reserve a slot without an applicant attached.
type Interview struct {
	ID              string       `json:"id"`
	ApplicantID     string       `json:"applicant_id,omitempty"`
	InterviewerID   string       `json:"interviewer_id"`
	Interval        TimeInterval `json:"interval"`
	Location        string       `json:"location"`
	Team            Team         `json:"team,omitempty"`
	IsPlaceholder   bool         `json:"is_placeholder"`
	PlaceholderName string       `json:"placeholder_name,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
}

func NewInterview(applicantID, interviewerID string, start time.Time, location string, team Team) *Interview {
	return &Interview{
		ID:            uuid.NewString(),
		ApplicantID:   applicantID,
		InterviewerID: interviewerID,
		Interval:      TimeInterval{Start: start.UTC(), End: start.UTC().Add(InterviewDuration)},
		Location:      location,
		Team:          team,
		CreatedAt:     time.Now().UTC(),
	}
}

func NewPlaceholderInterview(placeholderName, interviewerID string, start time.Time, location string, team Team) *Interview {
	return &Interview{
		ID:              uuid.NewString(),
		InterviewerID:   interviewerID,
		Interval:        TimeInterval{Start: start.UTC(), End: start.UTC().Add(InterviewDuration)},
		Location:        location,
		Team:            team,
		IsPlaceholder:   true,
		PlaceholderName: placeholderName,
		CreatedAt:       time.Now().UTC(),
	}
}
