// Package config loads and validates monitor configuration via Viper.
//
// Every knob maps to a flat environment variable (TARGET_URL, MATCH_KEYWORDS,
// TELEGRAM_BOT_TOKEN, ...) so the deployment contract stays a plain env
// surface; a YAML file and a local .env file are optional conveniences.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config captures all settings for one process, built once at startup and
// passed down explicitly.
type Config struct {
	TargetURL            string
	MatchKeywords        string
	SimilarityThreshold  float64
	ErrorThrottleMinutes int
	TelegramBotToken     string
	TelegramChannelID    string
	TelegramOwnerChatID  string
	StateFile            string
	MonitoringEnabled    bool
	HTTPTimeoutSeconds   int
	UserAgent            string
	TLSInsecure          bool
	LogDevelopment       bool
	ServerPort           int
	WatchSchedule        string
}

// Load builds a Config from defaults, an optional config file, a local .env
// file, and environment variables. Environment always wins.
func Load(path string) (Config, error) {
	// .env is a local-run convenience; absence is the normal case.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		TargetURL:            v.GetString("target_url"),
		MatchKeywords:        v.GetString("match_keywords"),
		SimilarityThreshold:  v.GetFloat64("similarity_threshold"),
		ErrorThrottleMinutes: v.GetInt("error_throttle_minutes"),
		TelegramBotToken:     v.GetString("telegram_bot_token"),
		TelegramChannelID:    v.GetString("telegram_channel_id"),
		TelegramOwnerChatID:  v.GetString("telegram_owner_chat_id"),
		StateFile:            v.GetString("state_file"),
		MonitoringEnabled:    v.GetBool("monitoring_enabled"),
		HTTPTimeoutSeconds:   v.GetInt("http_timeout_seconds"),
		UserAgent:            v.GetString("user_agent"),
		TLSInsecure:          v.GetBool("tls_insecure"),
		LogDevelopment:       v.GetBool("log_development"),
		ServerPort:           v.GetInt("server_port"),
		WatchSchedule:        v.GetString("watch_schedule"),
	}
	return cfg, cfg.Validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("target_url", "https://www.psgtech.edu/")
	v.SetDefault("match_keywords", "time limit exceeded, reappearance")
	v.SetDefault("similarity_threshold", 0.6)
	v.SetDefault("error_throttle_minutes", 60)
	v.SetDefault("telegram_bot_token", "")
	v.SetDefault("telegram_channel_id", "")
	v.SetDefault("telegram_owner_chat_id", "")
	v.SetDefault("state_file", "state/state.json")
	v.SetDefault("monitoring_enabled", true)
	v.SetDefault("http_timeout_seconds", 30)
	v.SetDefault("user_agent", "annwatch/1.0 (+https://github.com/annwatch)")
	v.SetDefault("tls_insecure", false)
	v.SetDefault("log_development", false)
	v.SetDefault("server_port", 8080)
	v.SetDefault("watch_schedule", "@every 1h")
}

// Validate checks for missing or obviously bad configuration.
func (c Config) Validate() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN must be set")
	}
	if c.TelegramChannelID == "" {
		return fmt.Errorf("TELEGRAM_CHANNEL_ID must be set")
	}
	if c.TelegramOwnerChatID == "" {
		return fmt.Errorf("TELEGRAM_OWNER_CHAT_ID must be set")
	}
	if c.TargetURL == "" {
		return fmt.Errorf("TARGET_URL must be set")
	}
	if u, err := url.Parse(c.TargetURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("TARGET_URL %q is not an absolute URL", c.TargetURL)
	}
	if len(c.Keywords()) == 0 {
		return fmt.Errorf("MATCH_KEYWORDS must include at least one phrase")
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("SIMILARITY_THRESHOLD must be in [0, 1], got %v", c.SimilarityThreshold)
	}
	if c.ErrorThrottleMinutes < 0 {
		return fmt.Errorf("ERROR_THROTTLE_MINUTES must be >= 0")
	}
	if c.StateFile == "" {
		return fmt.Errorf("STATE_FILE must be set")
	}
	if c.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT_SECONDS must be > 0")
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("SERVER_PORT must be a valid port, got %d", c.ServerPort)
	}
	if c.WatchSchedule == "" {
		return fmt.Errorf("WATCH_SCHEDULE must be set")
	}
	return nil
}

// Keywords splits the comma-separated keyword phrases, trimming whitespace
// and dropping empties.
func (c Config) Keywords() []string {
	parts := strings.Split(c.MatchKeywords, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// HTTPTimeout returns the fetch and notification timeout.
func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// ErrorThrottle returns the minimum gap between identical owner alerts.
func (c Config) ErrorThrottle() time.Duration {
	return time.Duration(c.ErrorThrottleMinutes) * time.Minute
}
