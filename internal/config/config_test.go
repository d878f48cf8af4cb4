package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, BackendNone, cfg.Remote.Backend)
	assert.Equal(t, time.Second, cfg.Sync.Debounce)
	assert.Equal(t, 3, cfg.Sync.Attempts)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeFile(t, "aq.toml", `
db_path = "/tmp/aq-test.db"

[remote]
backend = "Redis"
redis_addr = "cache:6379"

[sync]
debounce = "250ms"

[llm]
model = "gpt-4o-mini"
`)
	t.Setenv("AQ_REDIS_ADDR", "env:6380")
	t.Setenv("AQ_USER_ID", "u-42")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/aq-test.db", cfg.DBPath)
	assert.Equal(t, BackendRedis, cfg.Remote.Backend)
	assert.Equal(t, "env:6380", cfg.Remote.RedisAddr)
	assert.Equal(t, 250*time.Millisecond, cfg.Sync.Debounce)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "u-42", cfg.Identity.UID)
	assert.Equal(t, "aura_quest", cfg.Remote.MongoDatabase, "unset keys keep defaults")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := writeFile(t, "aq.yaml", "remote:\n  backend: dynamo\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dynamo")
}

func TestParseEnvError(t *testing.T) {
	cfg := Default()
	t.Setenv("AQ_REDIS_DB", "not-an-int")

	err := ParseEnv(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}
