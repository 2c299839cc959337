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
	for _, key := range []string{"PORT", "NOTEBOOKLM_BASE_URL", "NOTEBOOK_CACHE_TTL", "UPSTREAM_RATE_LIMIT", "REDIS_URL", "NOTEBOOKLM_AUTH_FILE", "ENVIRONMENT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8787", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.ListTimeout)
	assert.Equal(t, 60*time.Second, cfg.QueryTimeout)
	assert.Equal(t, 5*time.Minute, cfg.NotebookCacheTTL)
	assert.Equal(t, 5.0, cfg.UpstreamRateLimit)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, DefaultAuthFile(), cfg.AuthFile)
	assert.Equal(t, "auth.json", filepath.Base(cfg.AuthFile))
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("NOTEBOOK_CACHE_TTL", "90s")
	t.Setenv("UPSTREAM_RATE_LIMIT", "not-a-number")
	t.Setenv("NOTEBOOKLM_AUTH_FILE", "/tmp/auth.json")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 90*time.Second, cfg.NotebookCacheTTL)
	assert.Equal(t, 5.0, cfg.UpstreamRateLimit)
	assert.Equal(t, "/tmp/auth.json", cfg.AuthFile)
}

func TestLoadFieldAliases_EmptyPath(t *testing.T) {
	aliases, err := LoadFieldAliases("")
	require.NoError(t, err)
	assert.Equal(t, DefaultFieldAliases(), aliases)
}

func TestLoadFieldAliases_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.yaml")
	require.NoError(t, os.WriteFile(path, []byte("answer:\n  - reply\n  - answer\n"), 0o600))

	aliases, err := LoadFieldAliases(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"reply", "answer"}, aliases.Answer)
	assert.Equal(t, []string{"sources", "citations"}, aliases.Sources)
	assert.Equal(t, []string{"notebooks", "result"}, aliases.NotebookList)
}

func TestLoadFieldAliases_Errors(t *testing.T) {
	_, err := LoadFieldAliases(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("answer: [unterminated"), 0o600))
	_, err = LoadFieldAliases(path)
	assert.Error(t, err)
}
