package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"synapse/internal/config"

	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	err := os.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err)
	return path
}

func TestLoadConfig_Success(t *testing.T) {
	json := `{
		"listen_addr": ":9090",
		"poll_interval": 10,
		"industry_feeds": {
			"fitness": ["https://example.com/fitness.xml"],
			"beauty": ["https://example.com/beauty.xml", "http://foo.bar/feed"]
		}
	}`
	path := writeTempConfig(t, json)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.ListenAddr)
	require.Equal(t, 10, cfg.PollInterval)
	require.Equal(t, []string{"https://example.com/fitness.xml"}, cfg.IndustryFeeds["fitness"])
	require.Len(t, cfg.IndustryFeeds["beauty"], 2)
}

func TestLoadConfig_Defaults(t *testing.T) {
	json := `{
		"poll_interval": 30,
		"industry_feeds": {"fitness": ["https://example.com/rss"]}
	}`
	path := writeTempConfig(t, json)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.ListenAddr)
	require.Equal(t, "synapse_tasks", cfg.Queue)
	require.Equal(t, "anthropic/claude-3-haiku", cfg.Models.Haiku)
	require.Equal(t, "anthropic/claude-3-opus", cfg.Models.Opus)
	require.Equal(t, 60, cfg.ContextTTL)
	require.Equal(t, 15, cfg.TrendCacheTTL)
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := config.LoadConfig("/nonexistent/config.json")
	require.Error(t, err)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeTempConfig(t, `{ invalid json }`)
	_, err := config.LoadConfig(path)
	require.Error(t, err)
}

func TestValidate_Success(t *testing.T) {
	cfg := &config.Config{
		PollInterval:  5,
		IndustryFeeds: map[string][]string{"fitness": {"https://example.com/rss"}},
	}
	err := cfg.Validate()
	require.NoError(t, err)
}

func TestValidate_InvalidInterval(t *testing.T) {
	cfg := &config.Config{
		PollInterval:  1,
		IndustryFeeds: map[string][]string{"fitness": {"https://example.com/rss"}},
	}
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "poll interval must be at least 5")
}

func TestValidate_NoFeeds(t *testing.T) {
	cfg := &config.Config{PollInterval: 5}
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "at least one industry feed")
}

func TestValidate_InvalidURL(t *testing.T) {
	cfg := &config.Config{
		PollInterval:  5,
		IndustryFeeds: map[string][]string{"fitness": {"not-a-url"}},
	}
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid feed URL")
}
