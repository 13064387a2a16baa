package updates

import (
	"context"
	"net/http"

	"github.com/codex-k8s/telegram-bot/telegram/types"
)

// Source provides Telegram updates.
type Source interface {
	// Start begins updates processing.
	Start(ctx context.Context) error
	// Stop stops updates processing.
	Stop(ctx context.Context) error
	// Updates returns the updates channel.
	Updates() <-chan types.Update
	// Handler returns HTTP handler for webhook mode (nil for long polling).
	Handler() http.Handler
}

var (
	_ Source = (*LongPolling)(nil)
	_ Source = (*Webhook)(nil)
)
