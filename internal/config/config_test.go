// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", "")
	require.NoError(t, err)

	assert.Equal(t, "https://ppubs.uspto.gov", cfg.PPubs.BaseURL)
	assert.Equal(t, "https://api.uspto.gov", cfg.ODP.BaseURL)
	assert.Equal(t, "https://search.patentsview.org", cfg.PatentsView.BaseURL)

	assert.Equal(t, 30*time.Second, cfg.PPubs.Timeout)
	assert.Equal(t, 3, cfg.PPubs.Retry.MaxAttempts)
	assert.Equal(t, 1.0, cfg.PPubs.Retry.Multiplier)
	assert.Equal(t, 2*time.Second, cfg.PPubs.Retry.MinWait)
	assert.Equal(t, 10*time.Second, cfg.PPubs.Retry.MaxWait)

	assert.Equal(t, 30, cfg.PPubs.Session.ExpiryMinutes)
	assert.True(t, cfg.PPubs.Session.CachingEnabled)
	assert.Equal(t, 5*time.Second, cfg.PPubs.RateLimitRetryDelay)
	assert.Equal(t, time.Second, cfg.PPubs.PollInterval)
	assert.Equal(t, 120, cfg.PPubs.MaxPolls)

	assert.Equal(t, 45, cfg.PatentsView.RateLimit)
	assert.Equal(t, 4, cfg.Analytics.MaxWorkers)

	assert.True(t, cfg.Truncation.Enabled)
	assert.Equal(t, 20000, cfg.Truncation.MaxResponseTokens)
	assert.Equal(t, 20, cfg.Truncation.MaxResults)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PPUBS_BASE_URL", "http://localhost:8080")
	t.Setenv("USPTO_API_KEY", "env-key")
	t.Setenv("MAX_RETRIES", "5")
	t.Setenv("ENABLE_CACHING", "false")

	cfg, err := Load("", "")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.PPubs.BaseURL)
	assert.Equal(t, "env-key", cfg.ODP.APIKey)
	assert.Equal(t, 5, cfg.ODP.Retry.MaxAttempts)
	assert.False(t, cfg.PPubs.Session.CachingEnabled)
}

func TestSecretsOverlayFillsMissingKeys(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "uspto-api-key"), []byte("  odp-secret \n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "patentsview-api-key"), []byte("pv-secret"), 0o644))

	cfg, err := Load("", dir)
	require.NoError(t, err)
	assert.Equal(t, "odp-secret", cfg.ODP.APIKey)
	assert.Equal(t, "pv-secret", cfg.PatentsView.APIKey)
}

func TestSecretsDoNotOverrideEnv(t *testing.T) {
	t.Setenv("USPTO_API_KEY", "env-wins")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "uspto-api-key"), []byte("file-loses"), 0o644))

	cfg, err := Load("", dir)
	require.NoError(t, err)
	assert.Equal(t, "env-wins", cfg.ODP.APIKey)
}

func TestSecretsMissingDirIsNotAnError(t *testing.T) {
	cfg, err := Load("", filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, cfg.ODP.APIKey)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "gateway.yaml")
	require.NoError(t, os.WriteFile(file, []byte("PPUBS_BASE_URL: http://portal.test\nPDF_MAX_POLLS: 7\n"), 0o644))

	cfg, err := Load(file, "")
	require.NoError(t, err)
	assert.Equal(t, "http://portal.test", cfg.PPubs.BaseURL)
	assert.Equal(t, 7, cfg.PPubs.MaxPolls)
}
