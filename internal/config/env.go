package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	cfg := &Config{
		Environment: getString("ENVIRONMENT", "development"),
		Port:        getString("PORT", "8080"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		CORSOrigins: getList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		RateLimit:   getString("RATE_LIMIT", "100-M"),
		Audit: AuditConfig{
			Backend:    getString("AUDIT_BACKEND", AuditBackendMemory),
			MaxRecords: getInt("AUDIT_MAX_RECORDS", 10_000),
			Retention:  getDuration("AUDIT_RETENTION", 7*24*time.Hour),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applies CLI overrides on top of the environment
func (c *Config) Apply(flags Flags) error {
	if flags.Port != "" {
		c.Port = flags.Port
	}

	if flags.AuditBackend != "" {
		c.Audit.Backend = flags.AuditBackend
	}

	return c.validate()
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}

	switch c.Audit.Backend {
	case AuditBackendMemory:
	case AuditBackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required for the postgres audit backend")
		}
	case AuditBackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL environment variable is required for the redis audit backend")
		}
	default:
		return fmt.Errorf("unknown AUDIT_BACKEND %q", c.Audit.Backend)
	}

	return nil
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}

	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}

	return fallback
}

// splits a comma-separated value, dropping blanks
func getList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}

	var out []string

	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	if len(out) == 0 {
		return fallback
	}

	return out
}
