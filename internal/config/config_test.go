package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHANNEL_ID", "@channel")
	t.Setenv("TELEGRAM_OWNER_CHAT_ID", "42")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "https://www.psgtech.edu/", cfg.TargetURL)
	require.Equal(t, []string{"time limit exceeded", "reappearance"}, cfg.Keywords())
	require.Equal(t, 0.6, cfg.SimilarityThreshold)
	require.Equal(t, 60*time.Minute, cfg.ErrorThrottle())
	require.Equal(t, "state/state.json", cfg.StateFile)
	require.True(t, cfg.MonitoringEnabled)
	require.Equal(t, 30*time.Second, cfg.HTTPTimeout())
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TARGET_URL", "https://example.edu/notices")
	t.Setenv("MATCH_KEYWORDS", "arrear exam , hall ticket,,")
	t.Setenv("SIMILARITY_THRESHOLD", "0.75")
	t.Setenv("ERROR_THROTTLE_MINUTES", "15")
	t.Setenv("MONITORING_ENABLED", "false")
	t.Setenv("STATE_FILE", "/tmp/annwatch/state.json")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "https://example.edu/notices", cfg.TargetURL)
	require.Equal(t, []string{"arrear exam", "hall ticket"}, cfg.Keywords())
	require.Equal(t, 0.75, cfg.SimilarityThreshold)
	require.Equal(t, 15*time.Minute, cfg.ErrorThrottle())
	require.False(t, cfg.MonitoringEnabled)
	require.Equal(t, "/tmp/annwatch/state.json", cfg.StateFile)
}

func TestLoadMissingTelegramCredentials(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHANNEL_ID", "")
	t.Setenv("TELEGRAM_OWNER_CHAT_ID", "")

	_, err := Load("")
	require.Error(t, err)
	require.Contains(t, err.Error(), "TELEGRAM_BOT_TOKEN")
}

func TestLoadConfigFile(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	configYAML := `
target_url: https://example.edu/
match_keywords: "revaluation"
similarity_threshold: 0.8
watch_schedule: "@every 30m"
`
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://example.edu/", cfg.TargetURL)
	require.Equal(t, []string{"revaluation"}, cfg.Keywords())
	require.Equal(t, 0.8, cfg.SimilarityThreshold)
	require.Equal(t, "@every 30m", cfg.WatchSchedule)
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()

	base := Config{
		TargetURL:            "https://example.edu/",
		MatchKeywords:        "arrear exam",
		SimilarityThreshold:  0.6,
		ErrorThrottleMinutes: 60,
		TelegramBotToken:     "123:abc",
		TelegramChannelID:    "@channel",
		TelegramOwnerChatID:  "42",
		StateFile:            "state/state.json",
		MonitoringEnabled:    true,
		HTTPTimeoutSeconds:   30,
		ServerPort:           8080,
		WatchSchedule:        "@every 1h",
	}
	require.NoError(t, base.Validate())

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"relative target url", func(c *Config) { c.TargetURL = "notices.html" }},
		{"empty keywords", func(c *Config) { c.MatchKeywords = " , ," }},
		{"threshold above one", func(c *Config) { c.SimilarityThreshold = 1.5 }},
		{"negative throttle", func(c *Config) { c.ErrorThrottleMinutes = -1 }},
		{"empty state file", func(c *Config) { c.StateFile = "" }},
		{"zero timeout", func(c *Config) { c.HTTPTimeoutSeconds = 0 }},
		{"bad port", func(c *Config) { c.ServerPort = 70000 }},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := base
			tc.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
