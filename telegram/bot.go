// Package telegram is a typed Bot API client.
//
// Requests live in telegram/requests, payload types in telegram/types and the
// long-poll stream in telegram/updates.
package telegram

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/codex-k8s/telegram-bot/telegram/connector"
	"github.com/codex-k8s/telegram-bot/telegram/requests"
	"github.com/codex-k8s/telegram-bot/telegram/types"
	"github.com/codex-k8s/telegram-bot/telegram/wire"
)

// ErrEmptyToken is returned by New when no bot token is given.
var ErrEmptyToken = errors.New("telegram: empty bot token")

// Bot sends requests on behalf of one bot token. It is safe for concurrent use.
type Bot struct {
	token   string
	baseURL string
	conn    connector.Connector
	log     *slog.Logger
}

// Option configures a Bot.
type Option func(*Bot)

// WithBaseURL points the client at a different Bot API server.
func WithBaseURL(baseURL string) Option {
	return func(b *Bot) {
		if baseURL != "" {
			b.baseURL = baseURL
		}
	}
}

// WithConnector replaces the default net/http transport.
func WithConnector(conn connector.Connector) Option {
	return func(b *Bot) {
		if conn != nil {
			b.conn = conn
		}
	}
}

// WithLogger sets the logger used for per-call debug output.
func WithLogger(log *slog.Logger) Option {
	return func(b *Bot) {
		if log != nil {
			b.log = log
		}
	}
}

// New creates a client for token.
func New(token string, opts ...Option) (*Bot, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrEmptyToken
	}
	b := &Bot{
		token:   token,
		baseURL: wire.DefaultBaseURL,
		conn:    connector.NewHTTP(nil),
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Send performs req and decodes its typed result.
func Send[T any](ctx context.Context, b *Bot, req requests.Request[T]) (T, error) {
	var zero T
	httpReq, err := req.Serialize()
	if err != nil {
		return zero, err
	}

	start := time.Now()
	resp, err := b.conn.Request(ctx, httpReq.URL.Resolve(b.baseURL, b.token), httpReq)
	if err != nil {
		b.log.Debug("Telegram request failed", "method", string(httpReq.URL), "duration", time.Since(start), "err", err)
		return zero, err
	}
	result, err := req.Deserialize(resp)
	if err != nil {
		b.log.Debug("Telegram request rejected", "method", string(httpReq.URL), "duration", time.Since(start), "err", err)
		return zero, err
	}
	b.log.Debug("Telegram request done", "method", string(httpReq.URL), "duration", time.Since(start))
	return result, nil
}

// SendTimeout is Send bounded by timeout.
func SendTimeout[T any](ctx context.Context, b *Bot, req requests.Request[T], timeout time.Duration) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return Send(ctx, b, req)
}

// GetUpdates performs a single getUpdates call.
func (b *Bot) GetUpdates(ctx context.Context, req *requests.GetUpdates) ([]types.Update, error) {
	return Send(ctx, b, req)
}

// GetMe returns the bot user.
func (b *Bot) GetMe(ctx context.Context) (types.User, error) {
	return Send(ctx, b, requests.GetMe{})
}

// FileURL returns the download URL of a file returned by getFile.
func (b *Bot) FileURL(file types.File) string {
	base := b.baseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + "file/bot" + b.token + "/" + file.FilePath
}
