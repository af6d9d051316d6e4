package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsAndEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "wsc_meso", cfg.Database.Name)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, 168*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "mesocycles", cfg.AMQP.Exchange)
	assert.Empty(t, cfg.S3.BucketName)
	assert.InDelta(t, 1.0, cfg.RateLimit.RequestsPerSecond, 1e-9)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  address: ":9090"
database:
  uri: "mongodb://db:27017"
  name: "meso_test"
jwt:
  secret: "file-secret"
  expiration: "2h"
log:
  level: "debug"
  development: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("DATABASE_NAME", "from_env")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "mongodb://db:27017", cfg.Database.URI)
	assert.Equal(t, "from_env", cfg.Database.Name)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := LoadConfig(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret")
}

func TestValidate(t *testing.T) {
	cfg := Config{
		Database:  DatabaseConfig{URI: "mongodb://x", Name: "y"},
		JWT:       JWTConfig{Secret: "s", Expiration: time.Hour},
		RateLimit: RateLimitConfig{RequestsPerSecond: 2, Burst: 1},
	}
	require.NoError(t, cfg.Validate())

	cfg.RateLimit.Burst = 0
	cfg.JWT.Expiration = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate_limit")
	assert.Contains(t, err.Error(), "jwt.expiration")
}
