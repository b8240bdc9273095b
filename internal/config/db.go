package config

import (
	"fmt"
	"os"
)

const (
	dbHostEnv     = "DB_HOST"
	dbPortEnv     = "DB_PORT"
	dbUserEnv     = "DB_USER"
	dbPasswordEnv = "DB_PASSWORD"
	dbNameEnv     = "DB_NAME"
	dbSSLModeEnv  = "DB_SSLMODE"

	defaultDBHost    = "localhost"
	defaultDBPort    = "5432"
	defaultDBUser    = "scheduler"
	defaultDBName    = "scheduling"
	defaultDBSSLMode = "disable"
)

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func LoadDBConfig() *DBConfig {
	cfg := &DBConfig{
		Host:     defaultDBHost,
		Port:     defaultDBPort,
		User:     defaultDBUser,
		Password: os.Getenv(dbPasswordEnv),
		Name:     defaultDBName,
		SSLMode:  defaultDBSSLMode,
	}
	if v := os.Getenv(dbHostEnv); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv(dbPortEnv); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv(dbUserEnv); v != "" {
		cfg.User = v
	}
	if v := os.Getenv(dbNameEnv); v != "" {
		cfg.Name = v
	}
	if v := os.Getenv(dbSSLModeEnv); v != "" {
		cfg.SSLMode = v
	}
	return cfg
}

func (c *DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

func (c *DBConfig) Validate() error {
	if c == nil || c.Host == "" || c.Name == "" {
		return ErrDBConfigMissing
	}
	return nil
}
