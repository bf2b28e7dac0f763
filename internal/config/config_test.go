package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
api:
  url: "https://example.com/api/megasena"
  timeout: 10s
  retry_count: 2
  retry_delay: 1s
telegram:
  token: "test-token"
  timeout: 60s
app:
  refresh_interval: 15m
  cache_ttl: 2h
  log_level: "debug"
prediction:
  history_weight: 0.6
  recent_weight: 0.4
  recent_draws: 30
  split_policy: "random"
  train_ratio: 0.75
  forest:
    trees: 50
    max_depth: 8
    min_samples_split: 4
    min_samples_leaf: 2
    seed: 7
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/api/megasena", cfg.API.URL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 2, cfg.API.RetryCount)
	assert.Equal(t, "test-token", cfg.Telegram.Token)
	assert.Equal(t, 15*time.Minute, cfg.App.RefreshInterval)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, 0.6, cfg.Prediction.HistoryWeight)
	assert.Equal(t, SplitRandom, cfg.Prediction.SplitPolicy)
	assert.Equal(t, 50, cfg.Prediction.Forest.Trees)
	assert.Equal(t, int64(7), cfg.Prediction.Forest.Seed)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
api:
  url: "https://example.com/api/megasena"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	defaults := DefaultPrediction()
	assert.Equal(t, defaults, cfg.Prediction)
	assert.Equal(t, 30*time.Minute, cfg.App.RefreshInterval)
	assert.Equal(t, 6*time.Hour, cfg.App.CacheTTL)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
}

func TestLoadConfigMissingURL(t *testing.T) {
	path := writeConfig(t, `
app:
  log_level: "info"
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigInvalidSplitPolicy(t *testing.T) {
	path := writeConfig(t, `
api:
  url: "https://example.com/api/megasena"
prediction:
  split_policy: "alphabetical"
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "split_policy")
}

func TestLoadConfigInvalidTrainRatio(t *testing.T) {
	path := writeConfig(t, `
api:
  url: "https://example.com/api/megasena"
prediction:
  train_ratio: 1.5
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
