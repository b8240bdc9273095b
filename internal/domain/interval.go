package domain

import (
	"time"
)

// TimeInterval is a half-open [Start, End) span of wall time.
type TimeInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewTimeInterval(start, end time.Time) (TimeInterval, error) {
	iv := TimeInterval{Start: start, End: end}
	if err := iv.Validate(); err != nil {
		return TimeInterval{}, err
	}
	return iv, nil
}

func (iv TimeInterval) Validate() error {
	if iv.Start.IsZero() || iv.End.IsZero() {
		return &ValidationError{Field: "interval", Reason: "start and end are required"}
	}
	if !iv.Start.Before(iv.End) {
		return &ValidationError{Field: "interval", Reason: "start must be before end"}
	}
	return nil
}

// Overlaps reports whether the two intervals share any instant.
// The predicate is symmetric: a.Overlaps(b) == b.Overlaps(a).
func (iv TimeInterval) Overlaps(other TimeInterval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

func (iv TimeInterval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}
