// Package notify delivers monitor messages over the Telegram Bot API.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultAPIBaseURL = "https://api.telegram.org"

// ClientConfig controls the Telegram client.
type ClientConfig struct {
	BotToken string
	// APIBaseURL overrides the Bot API host, mainly for tests.
	APIBaseURL string
	Timeout    time.Duration
}

// Client sends messages through the Telegram Bot API sendMessage endpoint.
// The same client serves both the public channel and the private owner chat;
// only the destination differs.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// apiResponse is the envelope Telegram wraps every reply in.
type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

// NewClient builds a Client. The bot token must be set.
func NewClient(cfg ClientConfig, logger *zap.Logger) (*Client, error) {
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("telegram bot token must be set")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	base := cfg.APIBaseURL
	if base == "" {
		base = defaultAPIBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	http := resty.New().
		SetBaseURL(fmt.Sprintf("%s/bot%s", base, cfg.BotToken)).
		SetTimeout(timeout)

	return &Client{http: http, logger: logger}, nil
}

// Send delivers text to chatID using HTML parse mode. It returns an error on
// transport failure, a non-2xx response, or an API-level rejection.
func (c *Client) Send(ctx context.Context, chatID string, text string) error {
	var result apiResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"chat_id":    chatID,
			"text":       text,
			"parse_mode": "HTML",
		}).
		SetResult(&result).
		SetError(&result).
		Post("/sendMessage")
	if err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	if !resp.IsSuccess() || !result.OK {
		return fmt.Errorf("telegram sendMessage rejected: status %d: %s", resp.StatusCode(), result.Description)
	}
	c.logger.Debug("Telegram message delivered", zap.String("chat_id", chatID))
	return nil
}
