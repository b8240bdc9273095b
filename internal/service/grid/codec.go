package grid

import (
	"fmt"
	"time"

	"github.com/campuscrew/interview-scheduling/internal/domain"
)

// Codec owns the fixed token universe for one interview season. The universe
// is enumerated once at construction and never mutated; regenerating it is a
// configuration change, not live state.
type Codec struct {
	window   domain.TimeInterval
	loc      *time.Location
	universe []domain.GridToken
	members  map[domain.GridToken]struct{}
}

// NewCodec enumerates every 15-minute boundary across the season window.
// The window bounds are interpreted in loc; tokens are always UTC keys.
func NewCodec(seasonStart, seasonEnd time.Time, loc *time.Location) (*Codec, error) {
	if loc == nil {
		loc = time.UTC
	}

	window, err := domain.NewTimeInterval(seasonStart.In(loc), seasonEnd.In(loc))
	if err != nil {
		return nil, fmt.Errorf("invalid season window: %w", err)
	}

	c := &Codec{
		window:  window,
		loc:     loc,
		members: make(map[domain.GridToken]struct{}),
	}

	cursor := domain.AlignSlot(window.Start)
	if cursor.Before(window.Start.UTC()) {
		cursor = cursor.Add(domain.SlotWidth)
	}
	for cursor.Before(window.End.UTC()) {
		token := domain.SlotKey(cursor)
		c.universe = append(c.universe, token)
		c.members[token] = struct{}{}
		cursor = cursor.Add(domain.SlotWidth)
	}

	return c, nil
}

// Universe returns the season's tokens in chronological order. The returned
// slice is a copy; the universe itself is immutable.
func (c *Codec) Universe() []domain.GridToken {
	out := make([]domain.GridToken, len(c.universe))
	copy(out, c.universe)
	return out
}

func (c *Codec) Window() domain.TimeInterval {
	return c.window
}

func (c *Codec) Size() int {
	return len(c.universe)
}

// Contains reports whether the token belongs to the season universe.
func (c *Codec) Contains(token domain.GridToken) bool {
	_, ok := c.members[token]
	return ok
}

// Encode serializes a slot-aligned instant to its token. Unaligned instants
// are rejected rather than silently truncated.
func (c *Codec) Encode(t time.Time) (domain.GridToken, error) {
	if !domain.IsSlotAligned(t) {
		return "", &domain.ValidationError{Field: "time", Reason: fmt.Sprintf("%s is not aligned to a 15-minute boundary", t.Format(time.RFC3339))}
	}
	return domain.SlotKey(t), nil
}

// Decode is the inverse of Encode: decode(encode(t)) == t for aligned t.
func (c *Codec) Decode(token domain.GridToken) (time.Time, error) {
	return domain.ParseSlotKey(token)
}

// DayTokens returns the universe tokens falling on the given calendar date
// in loc, in chronological order.
func (c *Codec) DayTokens(date time.Time, loc *time.Location) []domain.GridToken {
	if loc == nil {
		loc = c.loc
	}
	y, m, d := date.In(loc).Date()

	var out []domain.GridToken
	for _, token := range c.universe {
		start, err := domain.ParseSlotKey(token)
		if err != nil {
			continue
		}
		ty, tm, td := start.In(loc).Date()
		if ty == y && tm == m && td == d {
			out = append(out, token)
		}
	}
	return out
}
