package config

import (
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	Port             string
	LogLevel         slog.Level
	NotifyWebhookURL string
	DB               *DBConfig
	Redis            *RedisConfig
	Schedule         *ScheduleConfig
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	scheduleConfig, err := LoadScheduleConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:             port,
		LogLevel:         parseLogLevel(os.Getenv("LOG_LEVEL")),
		NotifyWebhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),
		DB:               LoadDBConfig(),
		Redis:            redisConfig,
		Schedule:         scheduleConfig,
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
