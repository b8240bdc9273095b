package domain

import (
	"time"
)

// ApplicationStatus is the admissions state machine. Scheduling only ever
// touches applications in StatusInterviewing.
type ApplicationStatus string

const (
	StatusPending      ApplicationStatus = "pending"
	StatusInterviewing ApplicationStatus = "interviewing"
	StatusAccepted     ApplicationStatus = "accepted"
	StatusRejected     ApplicationStatus = "rejected"
	StatusRejectedApp  ApplicationStatus = "rejected_app"
	StatusRejectedInt  ApplicationStatus = "rejected_int"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInterviewing, StatusAccepted, StatusRejected, StatusRejectedApp, StatusRejectedInt:
		return true
	}
	return false
}

// CanTransitionTo enforces PENDING -> INTERVIEWING -> terminal states.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusInterviewing || next == StatusRejectedApp
	case StatusInterviewing:
		switch next {
		case StatusAccepted, StatusRejected, StatusRejectedApp, StatusRejectedInt:
			return true
		}
	}
	return false
}

// AssignmentPhase distinguishes a soft match from a realized booking.
type AssignmentPhase string

const (
	// AssignmentNone means no interviewer has been attached.
	AssignmentNone AssignmentPhase = "none"
	// AssignmentProposed is a soft match: interviewer and time recorded on
	// the application, not conflict-checked, no Interview row.
	AssignmentProposed AssignmentPhase = "proposed"
	// AssignmentBooked points at a realized, conflict-checked Interview.
	AssignmentBooked AssignmentPhase = "booked"
)

// Assignment is the tagged pairing state of an application. Exactly the
// fields of the active phase are meaningful.
type Assignment struct {
	Phase         AssignmentPhase `json:"phase"`
	InterviewerID string          `json:"interviewer_id,omitempty"`
	ProposedTime  time.Time       `json:"proposed_time,omitempty"`
	ProposedScore float64         `json:"proposed_score,omitempty"`
	InterviewID   string          `json:"interview_id,omitempty"`
}

func ProposedAssignment(interviewerID string, at time.Time, score float64) Assignment {
	return Assignment{
		Phase:         AssignmentProposed,
		InterviewerID: interviewerID,
		ProposedTime:  at.UTC(),
		ProposedScore: score,
	}
}

func BookedAssignment(interviewerID, interviewID string) Assignment {
	return Assignment{
		Phase:         AssignmentBooked,
		InterviewerID: interviewerID,
		InterviewID:   interviewID,
	}
}

type Application struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Status         ApplicationStatus `json:"status"`
	PreferredTeams []TeamPreference  `json:"preferred_teams"`
	Assignment     Assignment        `json:"assignment"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// Propose records a soft match. Only valid while interviewing.
func (a *Application) Propose(interviewerID string, at time.Time, score float64) error {
	if a.Status != StatusInterviewing {
		return &ValidationError{Field: "status", Reason: "application is not in the interviewing stage"}
	}
	a.Assignment = ProposedAssignment(interviewerID, at, score)
	return nil
}

// Book transitions the assignment to a realized interview.
func (a *Application) Book(interviewerID, interviewID string) error {
	if a.Status != StatusInterviewing {
		return &ValidationError{Field: "status", Reason: "application is not in the interviewing stage"}
	}
	a.Assignment = BookedAssignment(interviewerID, interviewID)
	return nil
}

// ClearAssignment reverts to the unassigned state, e.g. after cancellation.
func (a *Application) ClearAssignment() {
	a.Assignment = Assignment{Phase: AssignmentNone}
}

func (a *Application) HasInterviewer() bool {
	return a.Assignment.Phase != AssignmentNone && a.Assignment.InterviewerID != ""
}
