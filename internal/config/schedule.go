package config

import (
	"os"
	"strconv"
	"time"
)

const (
	seasonStartEnv       = "SCHEDULE_SEASON_START"
	seasonEndEnv         = "SCHEDULE_SEASON_END"
	timezoneEnv          = "SCHEDULE_TIMEZONE"
	openHourEnv          = "SCHEDULE_OPEN_HOUR"
	closeHourEnv         = "SCHEDULE_CLOSE_HOUR"
	graceMinutesEnv      = "SCHEDULE_GRACE_MINUTES"
	chunkSizeEnv         = "BUSY_BATCH_CHUNK_SIZE"
	chunkTimeoutSecsEnv  = "BUSY_BATCH_CHUNK_TIMEOUT_SECONDS"
	slotsCacheTTLSecsEnv = "SLOTS_CACHE_TTL_SECONDS"

	defaultTimezone         = "UTC"
	defaultOpenHour         = 8
	defaultCloseHour        = 22
	defaultGraceMinutes     = 5
	defaultChunkSize        = 50
	defaultChunkTimeoutSecs = 10
	defaultSlotsCacheTTL    = 5 * time.Minute
)

// ScheduleConfig holds the season window, the operating-hours window and the
// batch tuning knobs. The season window bounds the immutable token universe.
type ScheduleConfig struct {
	SeasonStart   time.Time
	SeasonEnd     time.Time
	Timezone      string
	OpenHour      int
	CloseHour     int
	Grace         time.Duration
	ChunkSize     int
	ChunkTimeout  time.Duration
	SlotsCacheTTL time.Duration
}

func LoadScheduleConfig() (*ScheduleConfig, error) {
	cfg := &ScheduleConfig{
		Timezone:      defaultTimezone,
		OpenHour:      defaultOpenHour,
		CloseHour:     defaultCloseHour,
		Grace:         defaultGraceMinutes * time.Minute,
		ChunkSize:     defaultChunkSize,
		ChunkTimeout:  defaultChunkTimeoutSecs * time.Second,
		SlotsCacheTTL: defaultSlotsCacheTTL,
	}

	if raw := os.Getenv(seasonStartEnv); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, ErrInvalidSeasonWindow
		}
		cfg.SeasonStart = parsed
	}
	if raw := os.Getenv(seasonEndEnv); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, ErrInvalidSeasonWindow
		}
		cfg.SeasonEnd = parsed
	}

	if tz := os.Getenv(timezoneEnv); tz != "" {
		cfg.Timezone = tz
	}

	if v := os.Getenv(openHourEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed < 24 {
			cfg.OpenHour = parsed
		}
	}
	if v := os.Getenv(closeHourEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 24 {
			cfg.CloseHour = parsed
		}
	}
	if v := os.Getenv(graceMinutesEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			cfg.Grace = time.Duration(parsed) * time.Minute
		}
	}
	if v := os.Getenv(chunkSizeEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			cfg.ChunkSize = parsed
		}
	}
	if v := os.Getenv(chunkTimeoutSecsEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			cfg.ChunkTimeout = time.Duration(parsed) * time.Second
		}
	}
	if v := os.Getenv(slotsCacheTTLSecsEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			cfg.SlotsCacheTTL = time.Duration(parsed) * time.Second
		}
	}

	return cfg, nil
}

func (c *ScheduleConfig) Validate() error {
	if c == nil || c.SeasonStart.IsZero() || c.SeasonEnd.IsZero() {
		return ErrSeasonWindowMissing
	}
	if !c.SeasonStart.Before(c.SeasonEnd) {
		return ErrInvalidSeasonWindow
	}
	if c.OpenHour >= c.CloseHour {
		return ErrInvalidOperatingWindow
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return ErrInvalidTimezone
	}
	return nil
}

// Location resolves the configured operating timezone. Validate must have
// passed before calling.
func (c *ScheduleConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
