package domain

import (
	"context"
	"time"
)

// BookingNotification is emitted after a realized booking commits.
// Formatting and delivery are entirely external.
type BookingNotification struct {
	InterviewID     string    `json:"interview_id"`
	InterviewerID   string    `json:"interviewer_id"`
	InterviewerName string    `json:"interviewer_name,omitempty"`
	ApplicantID     string    `json:"applicant_id,omitempty"`
	PlaceholderName string    `json:"placeholder_name,omitempty"`
	Time            time.Time `json:"time"`
	Location        string    `json:"location"`
	Team            Team      `json:"team,omitempty"`
}

// BookingNotifier delivers booking notifications. Called strictly after the
// authoritative commit; failures are logged and must never unwind the booking.
type BookingNotifier interface {
	NotifyBooked(ctx context.Context, n BookingNotification) error
}
