package config

import "errors"

var (
	ErrRedisAddrMissing       = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB         = errors.New("REDIS_DB must be a valid integer")
	ErrDBConfigMissing        = errors.New("database host and name are required")
	ErrSeasonWindowMissing    = errors.New("SCHEDULE_SEASON_START and SCHEDULE_SEASON_END are required")
	ErrInvalidSeasonWindow    = errors.New("season window must be a valid RFC3339 range with start before end")
	ErrInvalidOperatingWindow = errors.New("operating window open hour must precede close hour")
	ErrInvalidTimezone        = errors.New("SCHEDULE_TIMEZONE must be a valid IANA timezone")
)
