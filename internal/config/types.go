package config

import "time"

type Config struct {
	Environment string
	Port        string
	LogLevel    string
	DatabaseURL string
	RedisURL    string
	JWTSecret   string
	CORSOrigins []string
	RateLimit   string
	Audit       AuditConfig
}

type AuditConfig struct {
	Backend    string
	MaxRecords int
	Retention  time.Duration
}

// audit backends
const (
	AuditBackendMemory   = "memory"
	AuditBackendPostgres = "postgres"
	AuditBackendRedis    = "redis"
)

type Flags struct {
	Port         string
	AuditBackend string
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
