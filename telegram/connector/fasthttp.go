package connector

import (
	"context"
	"errors"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/codex-k8s/telegram-bot/telegram/wire"
)

// DefaultFastHTTPTimeout bounds a call whose context carries no deadline.
// It must exceed the long-poll timeout of any getUpdates sent without one.
const DefaultFastHTTPTimeout = 2 * time.Minute

// FastHTTP is a Connector backed by a fasthttp client.
type FastHTTP struct {
	client  *fasthttp.Client
	timeout time.Duration
}

// NewFastHTTP wraps client. A nil client uses a fresh fasthttp.Client.
func NewFastHTTP(client *fasthttp.Client) *FastHTTP {
	if client == nil {
		client = &fasthttp.Client{}
	}
	return &FastHTTP{client: client, timeout: DefaultFastHTTPTimeout}
}

// WithTimeout replaces the bound applied when the context has no deadline.
func (c *FastHTTP) WithTimeout(timeout time.Duration) *FastHTTP {
	if timeout > 0 {
		c.timeout = timeout
	}
	return c
}

type fastResult struct {
	body []byte
	err  error
}

func (c *FastHTTP) Request(ctx context.Context, rawURL string, req wire.HTTPRequest) (wire.HTTPResponse, error) {
	method := string(req.URL)
	contentType, payload, err := encodeBody(req.Body)
	if err != nil {
		return wire.HTTPResponse{}, &TransportError{Method: method, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return wire.HTTPResponse{}, &TransportError{Method: method, Err: err}
	}

	httpReq := fasthttp.AcquireRequest()
	httpReq.SetRequestURI(rawURL)
	httpReq.Header.SetMethod(req.Method.String())
	if contentType != "" {
		httpReq.Header.SetContentType(contentType)
		httpReq.SetBody(payload)
	}

	// fasthttp has no context support, so the call runs on its own goroutine
	// which owns and releases the pooled request and response.
	done := make(chan fastResult, 1)
	go func() {
		httpResp := fasthttp.AcquireResponse()
		defer fasthttp.ReleaseRequest(httpReq)
		defer fasthttp.ReleaseResponse(httpResp)

		var err error
		if deadline, ok := ctx.Deadline(); ok {
			err = c.client.DoDeadline(httpReq, httpResp, deadline)
		} else {
			err = c.client.DoTimeout(httpReq, httpResp, c.timeout)
		}
		if err != nil {
			done <- fastResult{err: err}
			return
		}
		done <- fastResult{body: append([]byte(nil), httpResp.Body()...)}
	}()

	select {
	case <-ctx.Done():
		return wire.HTTPResponse{}, &TransportError{Method: method, Err: ctx.Err()}
	case res := <-done:
		if res.err != nil {
			if errors.Is(res.err, fasthttp.ErrTimeout) {
				if deadline, ok := ctx.Deadline(); ok && !time.Now().Before(deadline) {
					res.err = context.DeadlineExceeded
				}
			}
			return wire.HTTPResponse{}, &TransportError{Method: method, Err: res.err}
		}
		return wire.HTTPResponse{Body: res.body}, nil
	}
}
