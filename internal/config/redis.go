package config

import (
	"os"
	"strconv"
)

const (
	redisAddrEnv     = "REDIS_ADDR"
	redisPasswordEnv = "REDIS_PASSWORD"
	redisDBEnv       = "REDIS_DB"
	redisTLSEnv      = "REDIS_TLS"
	redisPoolSizeEnv = "REDIS_POOL_SIZE"

	defaultRedisAddr     = "localhost:6379"
	defaultRedisDB       = 0
	defaultRedisPoolSize = 10
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TLS      bool
	PoolSize int
}

func LoadRedisConfig() (*RedisConfig, error) {
	cfg := &RedisConfig{
		Addr:     defaultRedisAddr,
		Password: os.Getenv(redisPasswordEnv),
		DB:       defaultRedisDB,
		TLS:      os.Getenv(redisTLSEnv) == "true",
		PoolSize: defaultRedisPoolSize,
	}

	if addr := os.Getenv(redisAddrEnv); addr != "" {
		cfg.Addr = addr
	}

	if raw := os.Getenv(redisDBEnv); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, ErrInvalidRedisDB
		}
		cfg.DB = parsed
	}

	if raw := os.Getenv(redisPoolSizeEnv); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			cfg.PoolSize = parsed
		}
	}

	return cfg, nil
}

func (c *RedisConfig) Validate() error {
	if c == nil || c.Addr == "" {
		return ErrRedisAddrMissing
	}
	return nil
}
