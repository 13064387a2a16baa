// Package connector performs serialized Bot API calls over HTTP.
package connector

import (
	"context"

	"github.com/codex-k8s/telegram-bot/telegram/wire"
)

// Connector sends one request to a resolved URL and returns the raw reply.
// Non-2xx replies are not errors: the Bot API reports failures in the body.
type Connector interface {
	Request(ctx context.Context, url string, req wire.HTTPRequest) (wire.HTTPResponse, error)
}

// Func adapts a function to Connector.
type Func func(ctx context.Context, url string, req wire.HTTPRequest) (wire.HTTPResponse, error)

// Request calls f.
func (f Func) Request(ctx context.Context, url string, req wire.HTTPRequest) (wire.HTTPResponse, error) {
	return f(ctx, url, req)
}

// TransportError is a failure to reach the server or read its reply.
type TransportError struct {
	Method string
	Err    error
}

func (e *TransportError) Error() string {
	return "telegram transport " + e.Method + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

var (
	_ Connector = (*HTTP)(nil)
	_ Connector = (*FastHTTP)(nil)
	_ Connector = Func(nil)
)
