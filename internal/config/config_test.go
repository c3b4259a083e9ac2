package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
database:
  path: "/tmp/test.db"
auth:
  secret_key: "test-secret"
  token_expire_hours: 48
log:
  level: "debug"
  format: "json"
seed:
  enabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.Equal(t, "test-secret", cfg.Auth.SecretKey)
	assert.Equal(t, 48, cfg.Auth.TokenExpireHours)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Seed.Enabled)
	assert.Equal(t, "testdata/contracts.json", cfg.Seed.File)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Auth.TokenExpireHours, cfg.Auth.TokenExpireHours)
	assert.Equal(t, 24, def.Auth.TokenExpireHours)
	assert.Equal(t, DefaultSecretKey, def.Auth.SecretKey)
	assert.Equal(t, "contratos.db", def.Database.Path)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [port")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PORT":       "3000",
		"DB_PATH":    ":memory:",
		"SECRET_KEY": "s3cr3t",
		"LOG_LEVEL":  "warn",
		"LOG_FORMAT": "json",
		"SEED":       "true",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.applyEnv(lookup))
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.Equal(t, "s3cr3t", cfg.Auth.SecretKey)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Seed.Enabled)

	env["PORT"] = "oitenta"
	assert.Error(t, cfg.applyEnv(lookup))
}
