package updates

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/codex-k8s/telegram-bot/telegram/requests"
	"github.com/codex-k8s/telegram-bot/telegram/types"
)

// ErrStopped is returned by Start once the source has been stopped.
var ErrStopped = errors.New("long polling stopped")

// LongPolling delivers Telegram updates by draining a Stream in the background.
type LongPolling struct {
	stream  *Stream
	updates chan types.Update
	log     *slog.Logger
	after   func(time.Duration) <-chan time.Time

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	stopped bool
}

// NewLongPolling creates a new long polling source.
func NewLongPolling(stream *Stream, log *slog.Logger) *LongPolling {
	return &LongPolling{
		stream:  stream,
		updates: make(chan types.Update),
		log:     log,
		after:   time.After,
	}
}

// Start launches the polling loop. The updates channel is closed when it ends,
// so a stopped source cannot be started again.
func (l *LongPolling) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return ErrStopped
	}
	if l.cancel != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.done = make(chan struct{})
	go l.run(ctx)
	l.log.Info("Telegram updates started via long polling", "offset", l.stream.Offset())
	return nil
}

func (l *LongPolling) run(ctx context.Context) {
	defer close(l.done)
	defer close(l.updates)

	for {
		u, err := l.stream.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if apiErr, ok := requests.AsAPIError(err); ok {
				if wait, ok := apiErr.RetryAfter(); ok {
					l.log.Warn("Telegram asked to back off", "retry_after", wait)
					select {
					case <-ctx.Done():
						return
					case <-l.after(wait):
					}
					continue
				}
			}
			l.log.Error("Failed to fetch Telegram updates", "error", err)
			continue
		}
		select {
		case l.updates <- u:
		case <-ctx.Done():
			return
		}
	}
}

// Updates returns the updates channel.
func (l *LongPolling) Updates() <-chan types.Update {
	return l.updates
}

// Stop cancels the polling loop and waits for it to exit.
func (l *LongPolling) Stop(ctx context.Context) error {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.stopped = true
	l.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Handler is not used for long polling.
func (l *LongPolling) Handler() http.Handler {
	return nil
}
