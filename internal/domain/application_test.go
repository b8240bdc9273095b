package domain

import (
	"testing"
	"time"
)

func TestApplicationStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from ApplicationStatus
		to   ApplicationStatus
		want bool
	}{
		{name: "pending to interviewing", from: StatusPending, to: StatusInterviewing, want: true},
		{name: "pending to rejected by application", from: StatusPending, to: StatusRejectedApp, want: true},
		{name: "pending cannot skip to accepted", from: StatusPending, to: StatusAccepted, want: false},
		{name: "interviewing to accepted", from: StatusInterviewing, to: StatusAccepted, want: true},
		{name: "interviewing to rejected", from: StatusInterviewing, to: StatusRejected, want: true},
		{name: "interviewing to rejected by interview", from: StatusInterviewing, to: StatusRejectedInt, want: true},
		{name: "interviewing cannot revert to pending", from: StatusInterviewing, to: StatusPending, want: false},
		{name: "accepted is terminal", from: StatusAccepted, to: StatusInterviewing, want: false},
		{name: "rejected is terminal", from: StatusRejected, to: StatusPending, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestApplication_ProposeAndBook(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 15, 0, 0, time.UTC)

	app := &Application{ID: "app-1", Status: StatusInterviewing}
	if err := app.Propose("iv-1", at, 87.5); err != nil {
		t.Fatalf("Propose() error = %v", err)
	}
	if app.Assignment.Phase != AssignmentProposed {
		t.Errorf("Phase = %s, want %s", app.Assignment.Phase, AssignmentProposed)
	}
	if app.Assignment.InterviewerID != "iv-1" {
		t.Errorf("InterviewerID = %q, want %q", app.Assignment.InterviewerID, "iv-1")
	}
	if app.Assignment.ProposedScore != 87.5 {
		t.Errorf("ProposedScore = %v, want 87.5", app.Assignment.ProposedScore)
	}

	if err := app.Book("iv-1", "interview-1"); err != nil {
		t.Fatalf("Book() error = %v", err)
	}
	if app.Assignment.Phase != AssignmentBooked {
		t.Errorf("Phase = %s, want %s", app.Assignment.Phase, AssignmentBooked)
	}
	if app.Assignment.InterviewID != "interview-1" {
		t.Errorf("InterviewID = %q, want %q", app.Assignment.InterviewID, "interview-1")
	}

	app.ClearAssignment()
	if app.Assignment.Phase != AssignmentNone {
		t.Errorf("Phase after clear = %s, want %s", app.Assignment.Phase, AssignmentNone)
	}
	if app.HasInterviewer() {
		t.Error("HasInterviewer() = true after clear")
	}
}

func TestApplication_ProposeRequiresInterviewingStage(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 15, 0, 0, time.UTC)

	for _, status := range []ApplicationStatus{StatusPending, StatusAccepted, StatusRejected} {
		app := &Application{ID: "app-1", Status: status}
		if err := app.Propose("iv-1", at, 50); err == nil {
			t.Errorf("Propose() with status %s: error = nil, want error", status)
		}
		if err := app.Book("iv-1", "interview-1"); err == nil {
			t.Errorf("Book() with status %s: error = nil, want error", status)
		}
	}
}
