package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const baseYAML = `
app:
  name: buddyfinder-service
  version: 0.1.0
  env: test
  port: 18080

logger:
  level: info
  format: json

postgres:
  host: 127.0.0.1
  port: 5432
  sslmode: disable
  max_conns: 5
  min_conns: 1
`

func setSecrets(t *testing.T) {
	t.Setenv("APP_POSTGRES_USER", "testuser")
	t.Setenv("APP_POSTGRES_PASSWORD", "testpass")
	t.Setenv("APP_POSTGRES_DB", "testdb")
	t.Setenv("APP_AUTH_JWT_SECRET", "s3cret")
}

func TestLoad_FromYAMLAndEnv(t *testing.T) {
	setSecrets(t)
	t.Setenv("APP_AUTH_ISSUER", "https://auth.example.test")

	cfg, err := Load(writeTempConfig(t, baseYAML))
	require.NoError(t, err)

	assert.Equal(t, 18080, cfg.App.Port)
	assert.Equal(t, "testuser", cfg.Postgres.User)
	assert.Equal(t, "testpass", cfg.Postgres.Password)
	assert.Equal(t, "testdb", cfg.Postgres.DBName)
	assert.Equal(t, "127.0.0.1", cfg.Postgres.Host)
	assert.Equal(t, int32(5), cfg.Postgres.MaxConns)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, "https://auth.example.test", cfg.Auth.Issuer)
}

func TestLoad_Defaults(t *testing.T) {
	setSecrets(t)

	cfg, err := Load(writeTempConfig(t, baseYAML))
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.App.ShutdownTimeout)
	assert.True(t, cfg.Postgres.Migrate)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, time.Hour, cfg.Redis.SportsTTL)
}

func TestLoad_MissingSecretsFail(t *testing.T) {
	t.Setenv("APP_POSTGRES_USER", "")
	t.Setenv("APP_POSTGRES_PASSWORD", "")
	t.Setenv("APP_POSTGRES_DB", "")
	t.Setenv("APP_AUTH_JWT_SECRET", "")

	_, err := Load(writeTempConfig(t, baseYAML))
	assert.Error(t, err)
}

func TestLoad_RedisEnabledRequiresAddr(t *testing.T) {
	setSecrets(t)
	t.Setenv("APP_REDIS_ADDR", "")

	_, err := Load(writeTempConfig(t, baseYAML+"\nredis:\n  enabled: true\n"))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
