package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
app:
  port: 9090
  gin_mode: debug
  env: development
  log_level: debug
database:
  dsn: "host=db user=quezi"
  auto_migrate: true
redis:
  addr: "redis:6379"
  db: 2
jwt:
  secret: "s3cret"
  access_ttl: "5m"
  refresh_ttl: "24h"
otp:
  ttl: "2m"
  length: 4
  max_attempts: 3
  resend_window: "30s"
rabbitmq:
  url: "amqp://guest:guest@mq:5672/"
cache:
  rating_ttl: "1m"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "host=db user=quezi", cfg.DSN)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 5*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 24*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, 2*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 4, cfg.OTPLength)
	assert.Equal(t, 3, cfg.OTPMaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.OTPResendWindow)
	assert.Equal(t, time.Minute, cfg.RatingCacheTTL)
	assert.Equal(t, "amqp://guest:guest@mq:5672/", cfg.RabbitURL)
}

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "jwt:\n  secret: x\n"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "quezi", cfg.JWTIssuer)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 6, cfg.OTPLength)
	assert.Equal(t, 5, cfg.OTPMaxAttempts)
	assert.Equal(t, "config/rbac_model.conf", cfg.CasbinModelPath)
	assert.Equal(t, "quezi.events", cfg.RabbitExchange)
	assert.Equal(t, "quezi.notifications", cfg.RabbitQueue)
	assert.Equal(t, 8, cfg.RabbitPrefetch)
	assert.Equal(t, "quezi-api", cfg.ServiceName)
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	t.Setenv("QUEZI_DATABASE_DSN", "postgres://override")
	t.Setenv("QUEZI_JWT_SECRET", "from-env")
	t.Setenv("QUEZI_APP_PORT", "7000")

	cfg, err := LoadFile(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "postgres://override", cfg.DSN)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "redis:6379", cfg.RedisAddr, "unset variables keep the file value")
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing secret", body: "app:\n  port: 1\n"},
		{name: "bad duration", body: "jwt:\n  secret: x\n  access_ttl: soon\n"},
		{name: "bad yaml", body: "jwt: [unterminated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
