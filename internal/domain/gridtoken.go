package domain

import (
	"fmt"
	"time"
)

// GridToken is the canonical key for one 15-minute UTC-aligned slot.
// Tokens compare lexicographically in chronological order.
type GridToken string

const (
	// SlotWidth is the fixed width of every grid slot.
	SlotWidth = 15 * time.Minute

	slotKeyLayout = "2006-01-02-15-04"
)

// SlotKey serializes an instant to its slot token. The instant is aligned
// down to the enclosing 15-minute boundary first.
func SlotKey(t time.Time) GridToken {
	return GridToken(AlignSlot(t).Format(slotKeyLayout))
}

// ParseSlotKey is the inverse of SlotKey. It rejects keys whose minute
// component is not a 15-minute boundary.
func ParseSlotKey(key GridToken) (time.Time, error) {
	t, err := time.Parse(slotKeyLayout, string(key))
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed grid token %q: %w", key, err)
	}
	if t.Minute()%15 != 0 {
		return time.Time{}, fmt.Errorf("grid token %q is not aligned to a 15-minute boundary", key)
	}
	return t, nil
}

// AlignSlot truncates an instant to the 15-minute boundary containing it, in UTC.
func AlignSlot(t time.Time) time.Time {
	return t.UTC().Truncate(SlotWidth)
}

// IsSlotAligned reports whether the instant sits exactly on a slot boundary.
func IsSlotAligned(t time.Time) bool {
	return t.UTC().Equal(AlignSlot(t))
}

// Interval returns the half-open interval the token covers.
func (g GridToken) Interval() (TimeInterval, error) {
	start, err := ParseSlotKey(g)
	if err != nil {
		return TimeInterval{}, err
	}
	return TimeInterval{Start: start, End: start.Add(SlotWidth)}, nil
}
