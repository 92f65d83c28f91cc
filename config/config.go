// Package config reads esdata settings from the environment, after loading
// a .env file from the working directory when there is one.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("esdata.config")

type Config struct {
	Logging  LoggingConfig
	Parser   ParserConfig
	Database DatabaseConfig
}

type LoggingConfig struct {
	Verbosity int
	File      string
}

type ParserConfig struct {
	MaxDepth int
}

type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// Load reads the configuration. A missing .env file is not an error; a
// malformed one, or a malformed number in the environment, is.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() (*Config, error) {
	verbosity, err := getInt("ESDATA_LOG_VERBOSITY", 0)
	if err != nil {
		return nil, err
	}
	maxDepth, err := getInt("ESDATA_MAX_DEPTH", 64)
	if err != nil {
		return nil, err
	}
	maxOpen, err := getInt("ESDATA_DB_MAX_OPEN_CONNS", 4)
	if err != nil {
		return nil, err
	}
	maxIdle, err := getInt("ESDATA_DB_MAX_IDLE_CONNS", 2)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Logging: LoggingConfig{
			Verbosity: verbosity,
			File:      os.Getenv("ESDATA_LOG_FILE"),
		},
		Parser: ParserConfig{
			MaxDepth: maxDepth,
		},
		Database: DatabaseConfig{
			URL:          getEnv("ESDATA_DATABASE_URL", "postgres://localhost:5432/esdata?sslmode=disable"),
			MaxOpenConns: maxOpen,
			MaxIdleConns: maxIdle,
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Parser.MaxDepth < 1 {
		return fmt.Errorf("ESDATA_MAX_DEPTH must be at least 1")
	}
	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("ESDATA_DB_MAX_OPEN_CONNS must be at least 1")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	log.Debugf("%s=%d from environment", key, n)
	return n, nil
}
