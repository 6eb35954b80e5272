package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"ENVIRONMENT", "PORT", "LOG_LEVEL", "DATABASE_URL", "REDIS_URL", "JWT_SECRET",
		"CORS_ORIGINS", "RATE_LIMIT", "AUDIT_BACKEND", "AUDIT_MAX_RECORDS", "AUDIT_RETENTION",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadEnvironmentVariables_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := LoadEnvironmentVariables()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, "100-M", cfg.RateLimit)
	assert.Equal(t, AuditBackendMemory, cfg.Audit.Backend)
	assert.Equal(t, 10_000, cfg.Audit.MaxRecords)
	assert.Equal(t, 7*24*time.Hour, cfg.Audit.Retention)
	assert.False(t, cfg.IsProduction())
}

func TestLoadEnvironmentVariables_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("AUDIT_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("AUDIT_MAX_RECORDS", "not-a-number")
	t.Setenv("AUDIT_RETENTION", "36h")

	cfg, err := LoadEnvironmentVariables()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, AuditBackendRedis, cfg.Audit.Backend)
	assert.Equal(t, 10_000, cfg.Audit.MaxRecords, "unparsable values fall back")
	assert.Equal(t, 36*time.Hour, cfg.Audit.Retention)
}

func TestLoadEnvironmentVariables_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{}},
		{"postgres without url", map[string]string{"JWT_SECRET": "s", "AUDIT_BACKEND": "postgres"}},
		{"redis without url", map[string]string{"JWT_SECRET": "s", "AUDIT_BACKEND": "redis"}},
		{"unknown backend", map[string]string{"JWT_SECRET": "s", "AUDIT_BACKEND": "sqlite"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadEnvironmentVariables()
			assert.Error(t, err)
		})
	}
}

func TestApply(t *testing.T) {
	cfg := &Config{Port: "8080", JWTSecret: "s", Audit: AuditConfig{Backend: AuditBackendMemory}}

	require.NoError(t, cfg.Apply(Flags{}))
	assert.Equal(t, "8080", cfg.Port)

	require.NoError(t, cfg.Apply(Flags{Port: "9090"}))
	assert.Equal(t, "9090", cfg.Port)

	err := cfg.Apply(Flags{AuditBackend: AuditBackendPostgres})
	assert.Error(t, err, "postgres needs DATABASE_URL")
}

func TestParseServerFlags(t *testing.T) {
	flags := ParseServerFlags([]string{"-port", "7000", "-audit-backend", "redis"})

	assert.Equal(t, Flags{Port: "7000", AuditBackend: "redis"}, flags)
	assert.Equal(t, Flags{}, ParseServerFlags(nil))
}
