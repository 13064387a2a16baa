package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/codex-k8s/telegram-bot/telegram/requests"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TG_BOT_TOKEN", "123:abc")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Config{
		ServiceName:     "telegram-bot",
		Token:           "123:abc",
		APIURL:          "https://api.telegram.org/",
		LogLevel:        "info",
		LogFormat:       "text",
		Lang:            "en",
		PollTimeout:     5 * time.Second,
		ErrorDelay:      500 * time.Millisecond,
		PollLimit:       100,
		Connector:       ConnectorHTTP,
		HTTPHost:        "0.0.0.0",
		HTTPPort:        8080,
		ShutdownTimeout: 10 * time.Second,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.WebhookEnabled() {
		t.Error("webhook must be disabled by default")
	}
	if got := cfg.HTTPAddr(); got != "0.0.0.0:8080" {
		t.Errorf("HTTPAddr() = %s", got)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TG_BOT_TOKEN", "123:abc")
	t.Setenv("TG_BOT_LANG", " RU ")
	t.Setenv("TG_BOT_CONNECTOR", "FastHTTP")
	t.Setenv("TG_BOT_ALLOWED_UPDATES", "message, callback_query")
	t.Setenv("TG_BOT_POLL_TIMEOUT", "30s")
	t.Setenv("TG_BOT_WEBHOOK_URL", "https://bot.example.com/telegram/webhook")
	t.Setenv("TG_BOT_WEBHOOK_SECRET", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Lang != "ru" || cfg.Connector != ConnectorFastHTTP || cfg.PollTimeout != 30*time.Second {
		t.Errorf("got %+v", cfg)
	}
	if !cfg.WebhookEnabled() {
		t.Error("webhook must be enabled")
	}
	want := []requests.AllowedUpdate{requests.AllowMessage, requests.AllowCallbackQuery}
	if diff := cmp.Diff(want, cfg.UpdateTypes()); diff != "" {
		t.Errorf("update types mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing token", env: map[string]string{}},
		{name: "blank token", env: map[string]string{"TG_BOT_TOKEN": "  "}},
		{name: "limit too high", env: map[string]string{"TG_BOT_TOKEN": "t", "TG_BOT_POLL_LIMIT": "101"}},
		{name: "limit zero", env: map[string]string{"TG_BOT_TOKEN": "t", "TG_BOT_POLL_LIMIT": "0"}},
		{name: "negative timeout", env: map[string]string{"TG_BOT_TOKEN": "t", "TG_BOT_POLL_TIMEOUT": "-1s"}},
		{name: "zero timeout", env: map[string]string{"TG_BOT_TOKEN": "t", "TG_BOT_POLL_TIMEOUT": "0s"}},
		{name: "sub-second timeout", env: map[string]string{"TG_BOT_TOKEN": "t", "TG_BOT_POLL_TIMEOUT": "500ms"}},
		{name: "unknown connector", env: map[string]string{"TG_BOT_TOKEN": "t", "TG_BOT_CONNECTOR": "grpc"}},
		{name: "unknown update", env: map[string]string{"TG_BOT_TOKEN": "t", "TG_BOT_ALLOWED_UPDATES": "message,chat_member"}},
		{name: "bad port", env: map[string]string{"TG_BOT_TOKEN": "t", "TG_BOT_HTTP_PORT": "70000"}},
		{name: "webhook without secret", env: map[string]string{"TG_BOT_TOKEN": "t", "TG_BOT_WEBHOOK_URL": "https://x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TG_BOT_TOKEN", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("expected error")
			}
		})
	}
}
