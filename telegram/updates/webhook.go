package updates

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/codex-k8s/telegram-bot/telegram"
	"github.com/codex-k8s/telegram-bot/telegram/requests"
	"github.com/codex-k8s/telegram-bot/telegram/types"
)

// SecretHeader carries the webhook secret token on every delivery.
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// Webhook delivers Telegram updates via HTTP webhook.
type Webhook struct {
	bot     *telegram.Bot
	url     string
	secret  string
	allowed []requests.AllowedUpdate
	updates chan types.Update
	closed  atomic.Bool
	log     *slog.Logger
}

// NewWebhook creates a new webhook source.
func NewWebhook(bot *telegram.Bot, url, secret string, allowed []requests.AllowedUpdate, log *slog.Logger) *Webhook {
	return &Webhook{
		bot:     bot,
		url:     url,
		secret:  secret,
		allowed: allowed,
		updates: make(chan types.Update, 128),
		log:     log,
	}
}

// Start sets webhook on Telegram side.
func (w *Webhook) Start(ctx context.Context) error {
	req := requests.NewSetWebhook(w.url)
	req.SecretToken = w.secret
	req.AllowedUpdates = w.allowed
	if _, err := telegram.Send(ctx, w.bot, req); err != nil {
		return err
	}
	w.log.Info("Telegram updates started via webhook", "url", w.url)
	return nil
}

// Stop removes the webhook.
func (w *Webhook) Stop(ctx context.Context) error {
	w.closed.Store(true)
	_, err := telegram.Send(ctx, w.bot, &requests.DeleteWebhook{DropPendingUpdates: true})
	return err
}

// Updates returns the updates channel.
func (w *Webhook) Updates() <-chan types.Update {
	return w.updates
}

// Handler returns HTTP handler for Telegram webhook updates.
func (w *Webhook) Handler() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if w.closed.Load() {
			rw.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		if r.Method != http.MethodPost {
			rw.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		secret := r.Header.Get(SecretHeader)
		if subtle.ConstantTimeCompare([]byte(secret), []byte(w.secret)) != 1 {
			w.log.Warn("Webhook secret mismatch")
			rw.WriteHeader(http.StatusUnauthorized)
			return
		}
		defer r.Body.Close()
		var update types.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			w.log.Error("Failed to decode webhook update", "error", err)
			rw.WriteHeader(http.StatusBadRequest)
			return
		}
		select {
		case w.updates <- update:
			rw.WriteHeader(http.StatusOK)
		default:
			w.log.Error("Webhook update dropped: queue full", "update_id", update.ID)
			rw.WriteHeader(http.StatusServiceUnavailable)
		}
	})
}
