// Package updates delivers inbound updates by long polling or webhook.
package updates

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/codex-k8s/telegram-bot/telegram/requests"
	"github.com/codex-k8s/telegram-bot/telegram/types"
)

const (
	// DefaultTimeout is the long-poll timeout sent to the server.
	DefaultTimeout = 5 * time.Second
	// DefaultErrorDelay is the pause before refetching after a failed fetch.
	DefaultErrorDelay = 500 * time.Millisecond
	// DefaultLimit is the maximum number of updates requested per fetch.
	DefaultLimit = 100
	// MinTimeout keeps the stream a long poll; zero would refetch without waiting.
	MinTimeout = time.Second

	// fetchGrace is added to the poll timeout to bound a single fetch locally.
	fetchGrace = time.Second
)

// Poller performs a single getUpdates call. *telegram.Bot implements it.
type Poller interface {
	GetUpdates(ctx context.Context, req *requests.GetUpdates) ([]types.Update, error)
}

// Stream is a pull-based sequence of updates backed by repeated getUpdates calls.
//
// Every update with an ID is acknowledged by the next fetch, whose offset is the
// highest ID seen plus one. A failed fetch is returned once from Next, leaves the
// offset unchanged and delays the following fetch by the error delay.
type Stream struct {
	poller Poller
	log    *slog.Logger

	timeout        time.Duration
	errorDelay     time.Duration
	limit          int
	allowedUpdates []requests.AllowedUpdate
	after          func(time.Duration) <-chan time.Time

	mu      sync.Mutex
	buffer  []types.Update
	last    int64
	backoff bool
}

// StreamOption configures a Stream.
type StreamOption func(*Stream)

// WithTimeout sets the long-poll timeout. Sub-second precision is dropped on the wire
// and values below MinTimeout are raised to it.
func WithTimeout(timeout time.Duration) StreamOption {
	return func(s *Stream) { s.timeout = max(timeout, MinTimeout) }
}

// WithErrorDelay sets the pause after a failed fetch.
func WithErrorDelay(delay time.Duration) StreamOption {
	return func(s *Stream) { s.errorDelay = delay }
}

// WithLimit caps the number of updates per fetch.
func WithLimit(limit int) StreamOption {
	return func(s *Stream) { s.limit = limit }
}

// WithAllowedUpdates restricts the update types the server sends.
func WithAllowedUpdates(allowed ...requests.AllowedUpdate) StreamOption {
	return func(s *Stream) { s.allowedUpdates = allowed }
}

// WithLogger sets the stream logger.
func WithLogger(log *slog.Logger) StreamOption {
	return func(s *Stream) {
		if log != nil {
			s.log = log
		}
	}
}

// NewStream creates a stream that polls through poller.
func NewStream(poller Poller, opts ...StreamOption) *Stream {
	s := &Stream{
		poller:     poller,
		log:        slog.New(slog.DiscardHandler),
		timeout:    DefaultTimeout,
		errorDelay: DefaultErrorDelay,
		limit:      DefaultLimit,
		after:      time.After,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next returns the next update, fetching a new batch when the buffer is empty.
// Empty batches and local fetch timeouts are retried without returning.
// Next returns ctx.Err() once ctx is done. Concurrent calls are serialized.
func (s *Stream) Next(ctx context.Context) (types.Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		if len(s.buffer) > 0 {
			u := s.buffer[0]
			s.buffer = s.buffer[1:]
			return u, nil
		}
		if err := ctx.Err(); err != nil {
			return types.Update{}, err
		}

		if s.backoff {
			select {
			case <-ctx.Done():
				return types.Update{}, ctx.Err()
			case <-s.after(s.errorDelay):
			}
			s.backoff = false
		}

		batch, err := s.fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return types.Update{}, ctx.Err()
			}
			if errors.Is(err, context.DeadlineExceeded) {
				s.log.Debug("Telegram getUpdates timed out locally", "offset", s.last+1)
				continue
			}
			s.backoff = true
			return types.Update{}, err
		}

		floor := s.last
		for _, u := range batch {
			// Updates without an id (ID 0) never move the offset, so a server
			// that keeps returning one alone would see it refetched.
			if u.ID != 0 && u.ID <= floor {
				s.log.Debug("Dropping already delivered update", "update_id", u.ID, "offset", floor+1)
				continue
			}
			if u.ID > s.last {
				s.last = u.ID
			}
			s.buffer = append(s.buffer, u)
		}
	}
}

// Offset is the offset the next fetch will send.
func (s *Stream) Offset() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last + 1
}

func (s *Stream) fetch(ctx context.Context) ([]types.Update, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout+fetchGrace)
	defer cancel()

	req := &requests.GetUpdates{
		Offset:         s.last + 1,
		Limit:          s.limit,
		Timeout:        int(s.timeout / time.Second),
		AllowedUpdates: s.allowedUpdates,
	}
	batch, err := s.poller.GetUpdates(fetchCtx, req)
	if err != nil {
		return nil, err
	}
	s.log.Debug("Telegram updates fetched", "count", len(batch), "offset", req.Offset)
	return batch, nil
}
