package domain

import (
	"context"
	"fmt"
	"time"
)

const (
	cacheKeySlotsPrefix     = "sched:slots:"
	cacheKeyApplicantPrefix = "sched:applicant:"
	cacheKeyGridPrefix      = "sched:grid:"
)

// Cache is a non-authoritative read accelerator. Callers must treat every
// error as staleness: log and fall through to the store, never fail the
// authoritative path. Reads return ErrCacheMiss when the key is absent.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

// CacheKeySlots keys an interviewer's free slots for one calendar date.
func CacheKeySlots(interviewerID string, date time.Time) string {
	return fmt.Sprintf("%s%s:%s", cacheKeySlotsPrefix, interviewerID, date.Format("2006-01-02"))
}

func CacheKeyApplicant(applicantID string) string {
	return cacheKeyApplicantPrefix + applicantID
}

func CacheKeyGrid(timezone string) string {
	return cacheKeyGridPrefix + timezone
}
