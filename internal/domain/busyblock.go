package domain

import (
	"time"

	"github.com/google/uuid"
)

// BusyBlock is an interval during which an interviewer cannot be booked.
// Mutation is owner-exclusive: the interviewer or a bulk edit on their behalf.
type BusyBlock struct {
	ID            string       `json:"id"`
	InterviewerID string       `json:"interviewer_id"`
	Interval      TimeInterval `json:"interval"`
	Reason        string       `json:"reason,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

func NewBusyBlock(interviewerID string, interval TimeInterval, reason string) *BusyBlock {
	return &BusyBlock{
		ID:            uuid.NewString(),
		InterviewerID: interviewerID,
		Interval:      TimeInterval{Start: interval.Start.UTC(), End: interval.End.UTC()},
		Reason:        reason,
		CreatedAt:     time.Now().UTC(),
	}
}

// NewSlotBusyBlock creates the fixed 15-minute block used by bulk slot toggles.
func NewSlotBusyBlock(interviewerID string, start time.Time, reason string) *BusyBlock {
	return NewBusyBlock(interviewerID, TimeInterval{Start: start.UTC(), End: start.UTC().Add(SlotWidth)}, reason)
}
