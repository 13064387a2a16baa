package connector

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/codex-k8s/telegram-bot/telegram/wire"
)

// HTTP is a Connector backed by net/http.
type HTTP struct {
	client *http.Client
}

// NewHTTP wraps client. A nil client uses a fresh http.Client.
func NewHTTP(client *http.Client) *HTTP {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTP{client: client}
}

func (c *HTTP) Request(ctx context.Context, rawURL string, req wire.HTTPRequest) (wire.HTTPResponse, error) {
	method := string(req.URL)
	contentType, payload, err := encodeBody(req.Body)
	if err != nil {
		return wire.HTTPResponse{}, &TransportError{Method: method, Err: err}
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method.String(), rawURL, body)
	if err != nil {
		return wire.HTTPResponse{}, &TransportError{Method: method, Err: stripURL(err)}
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return wire.HTTPResponse{}, &TransportError{Method: method, Err: stripURL(err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return wire.HTTPResponse{}, &TransportError{Method: method, Err: err}
	}
	return wire.HTTPResponse{Body: data}, nil
}

// stripURL drops the request URL, which embeds the bot token, from client errors.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
