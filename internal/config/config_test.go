package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadFrom_Defaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", "jwt:\n  secret: s3cret\n")

	cfg, err := LoadFrom("local", dir)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "password", cfg.Auth.DemoPassword)
	assert.True(t, cfg.Seed.Demo)
	assert.Empty(t, cfg.MQ.URL)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadFrom_EnvFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", `
server:
  port: ":8080"
  shutdown_timeout: 10s
jwt:
  secret: ${JWT_SECRET_FILE}
  ttl: 2h
seed:
  demo: true
`)
	writeFile(t, dir, "prod.yaml", `
seed:
  demo: false
redis:
  addr: redis:6379
`)
	writeFile(t, dir, "secrets.env", "JWT_SECRET_FILE=from-secrets\n")
	t.Setenv("SERVER_PORT", ":9090")

	cfg, err := LoadFrom("prod", dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "from-secrets", cfg.JWT.Secret)
	assert.Equal(t, 2*time.Hour, cfg.JWT.TTL)
	assert.False(t, cfg.Seed.Demo)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestLoadFrom_Errors(t *testing.T) {
	_, err := LoadFrom("local", t.TempDir())
	assert.Error(t, err)

	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", "server:\n  port: \":8080\"\n")
	t.Setenv("JWT_SECRET", "")
	_, err = LoadFrom("local", dir)
	assert.ErrorContains(t, err, "jwt.secret")

	writeFile(t, dir, "base.yaml", "jwt:\n  secret: ${PORTFOLIOHUB_UNSET_SECRET}\n")
	_, err = LoadFrom("local", dir)
	assert.ErrorContains(t, err, "jwt.secret")
}
