package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CAMPUS_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "campuscollab", cfg.Database.Database)
	assert.Equal(t, "", cfg.Redis.Address)
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 5*time.Minute, cfg.Membership.CacheTTL)
	assert.Equal(t, uint32(5), cfg.Notification.BreakerMaxFailures)
	assert.Equal(t, 50, cfg.Notification.ListLimit)
	assert.False(t, cfg.Events.KafkaEnabled)
	assert.Equal(t, "campuscollab", cfg.Metrics.Namespace)
	assert.Equal(t, 20, cfg.RateLimit.ApplyLimit)
	assert.Equal(t, time.Hour, cfg.RateLimit.ApplyWindow)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("CAMPUS_JWT_SECRET", "from-env")
	t.Setenv("CAMPUS_DB_PASSWORD", "db-secret")

	yaml := []byte(`
server:
  address: ":9090"
database:
  host: db.internal
redis:
  address: "redis:6379"
membership:
  cache_ttl: 30s
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "db-secret", cfg.Database.Password)
	assert.Equal(t, "redis:6379", cfg.Redis.Address)
	assert.Equal(t, 30*time.Second, cfg.Membership.CacheTTL)
}

func TestValidate(t *testing.T) {
	t.Run("missing jwt secret", func(t *testing.T) {
		cfg := &Config{}
		assert.Error(t, cfg.Validate())
	})

	t.Run("kafka without brokers", func(t *testing.T) {
		cfg := &Config{
			Auth:   AuthConfig{JWTSecret: "s"},
			Events: EventsConfig{KafkaEnabled: true},
		}
		assert.Error(t, cfg.Validate())
	})

	t.Run("valid", func(t *testing.T) {
		cfg := &Config{Auth: AuthConfig{JWTSecret: "s"}}
		assert.NoError(t, cfg.Validate())
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "pw",
		Database: "campuscollab",
		SSLMode:  "disable",
	}
	assert.Equal(t, "host=localhost port=5432 user=postgres password=pw dbname=campuscollab sslmode=disable", cfg.DSN())
}
