package config

import (
	"fmt"
	"net"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/codex-k8s/telegram-bot/telegram/requests"
)

// Connector names accepted by TG_BOT_CONNECTOR.
const (
	ConnectorHTTP     = "http"
	ConnectorFastHTTP = "fasthttp"
)

var knownUpdates = []requests.AllowedUpdate{
	requests.AllowMessage,
	requests.AllowEditedMessage,
	requests.AllowChannelPost,
	requests.AllowEditedChannelPost,
	requests.AllowInlineQuery,
	requests.AllowChosenInlineResult,
	requests.AllowCallbackQuery,
	requests.AllowPoll,
	requests.AllowPollAnswer,
}

// Config describes runtime configuration for telegram-bot.
type Config struct {
	// ServiceName is a human-friendly service name for logs.
	ServiceName string `env:"TG_BOT_SERVICE_NAME" envDefault:"telegram-bot"`
	// Token is the Telegram bot token.
	Token string `env:"TG_BOT_TOKEN,required"`
	// APIURL is the Bot API server base URL.
	APIURL string `env:"TG_BOT_API_URL" envDefault:"https://api.telegram.org/"`
	// LogLevel controls log verbosity (debug, info, warn, error).
	LogLevel string `env:"TG_BOT_LOG_LEVEL" envDefault:"info"`
	// LogFormat selects the log encoding (text or json).
	LogFormat string `env:"TG_BOT_LOG_FORMAT" envDefault:"text"`
	// Lang selects the default i18n language (en or ru).
	Lang string `env:"TG_BOT_LANG" envDefault:"en"`
	// ChatID restricts the bot to one chat. Zero allows every chat.
	ChatID int64 `env:"TG_BOT_CHAT_ID"`
	// PollTimeout is the long-poll timeout sent with getUpdates.
	PollTimeout time.Duration `env:"TG_BOT_POLL_TIMEOUT" envDefault:"5s"`
	// ErrorDelay is the pause after a failed getUpdates call.
	ErrorDelay time.Duration `env:"TG_BOT_ERROR_DELAY" envDefault:"500ms"`
	// PollLimit caps updates per getUpdates call.
	PollLimit int `env:"TG_BOT_POLL_LIMIT" envDefault:"100"`
	// AllowedUpdates filters update types. Empty means all.
	AllowedUpdates []string `env:"TG_BOT_ALLOWED_UPDATES" envSeparator:","`
	// Connector selects the HTTP transport (http or fasthttp).
	Connector string `env:"TG_BOT_CONNECTOR" envDefault:"http"`
	// HTTPHost is the HTTP listen host for health and webhook endpoints.
	HTTPHost string `env:"TG_BOT_HTTP_HOST" envDefault:"0.0.0.0"`
	// HTTPPort is the HTTP listen port.
	HTTPPort int `env:"TG_BOT_HTTP_PORT" envDefault:"8080"`
	// WebhookURL enables webhook mode when set with WebhookSecret.
	WebhookURL string `env:"TG_BOT_WEBHOOK_URL"`
	// WebhookSecret is the Telegram webhook secret token.
	WebhookSecret string `env:"TG_BOT_WEBHOOK_SECRET"`
	// ShutdownTimeout is the graceful shutdown timeout.
	ShutdownTimeout time.Duration `env:"TG_BOT_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}

	cfg.Lang = strings.ToLower(strings.TrimSpace(cfg.Lang))
	if cfg.Lang == "" {
		cfg.Lang = "en"
	}
	cfg.Connector = strings.ToLower(strings.TrimSpace(cfg.Connector))

	if strings.TrimSpace(cfg.Token) == "" {
		return Config{}, fmt.Errorf("bot token is required")
	}
	if cfg.PollTimeout < time.Second {
		return Config{}, fmt.Errorf("poll timeout must be at least 1s")
	}
	if cfg.ErrorDelay < 0 {
		return Config{}, fmt.Errorf("error delay must not be negative")
	}
	if cfg.PollLimit < 1 || cfg.PollLimit > 100 {
		return Config{}, fmt.Errorf("poll limit must be between 1 and 100")
	}
	if cfg.Connector != ConnectorHTTP && cfg.Connector != ConnectorFastHTTP {
		return Config{}, fmt.Errorf("unknown connector %q", cfg.Connector)
	}
	for i, name := range cfg.AllowedUpdates {
		name = strings.TrimSpace(name)
		if !slices.Contains(knownUpdates, requests.AllowedUpdate(name)) {
			return Config{}, fmt.Errorf("unknown update type %q", name)
		}
		cfg.AllowedUpdates[i] = name
	}

	if strings.TrimSpace(cfg.HTTPHost) == "" {
		return Config{}, fmt.Errorf("http host is required")
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return Config{}, fmt.Errorf("http port must be between 1 and 65535")
	}

	if (cfg.WebhookURL == "") != (cfg.WebhookSecret == "") {
		return Config{}, fmt.Errorf("webhook url and secret must be set together")
	}

	return cfg, nil
}

// HTTPAddr returns a listen address for the HTTP server.
func (c Config) HTTPAddr() string {
	return net.JoinHostPort(strings.TrimSpace(c.HTTPHost), fmt.Sprintf("%d", c.HTTPPort))
}

// WebhookEnabled reports whether webhook mode is configured.
func (c Config) WebhookEnabled() bool {
	return c.WebhookURL != "" && c.WebhookSecret != ""
}

// UpdateTypes returns AllowedUpdates as request values.
func (c Config) UpdateTypes() []requests.AllowedUpdate {
	if len(c.AllowedUpdates) == 0 {
		return nil
	}
	out := make([]requests.AllowedUpdate, 0, len(c.AllowedUpdates))
	for _, name := range c.AllowedUpdates {
		out = append(out, requests.AllowedUpdate(name))
	}
	return out
}
