// Package requests is the typed protocol layer: it turns requests into wire calls
// and wire responses into typed results.
package requests

import (
	"encoding/json"
	"fmt"

	"github.com/codex-k8s/telegram-bot/telegram/wire"
)

// Request is a Bot API call whose result decodes to T.
// Each implementation fixes both its wire strategy and its result type.
type Request[T any] interface {
	// Serialize builds the wire call.
	Serialize() (wire.HTTPRequest, error)
	// Deserialize unwraps the response envelope into the typed result.
	Deserialize(resp wire.HTTPResponse) (T, error)
}

// SerializeJSON encodes v as the application/json body of a POST to method.
func SerializeJSON(method string, v any) (wire.HTTPRequest, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return wire.HTTPRequest{}, fmt.Errorf("encode %s: %w", method, err)
	}
	return wire.HTTPRequest{
		URL:    wire.RequestURL(method),
		Method: wire.MethodPost,
		Body:   wire.JSONBody(body),
	}, nil
}

// SerializeEmpty builds a body-less GET to method.
func SerializeEmpty(method string) wire.HTTPRequest {
	return wire.HTTPRequest{
		URL:    wire.RequestURL(method),
		Method: wire.MethodGet,
		Body:   wire.EmptyBody{},
	}
}

// DecodeJSON returns the envelope result as-is.
func DecodeJSON[T any](resp wire.HTTPResponse) (T, error) {
	return DecodeMapped(resp, func(v T) T { return v })
}

// DecodeAck accepts a literal true result and discards it.
func DecodeAck(resp wire.HTTPResponse) (struct{}, error) {
	return DecodeMapped(resp, func(True) struct{} { return struct{}{} })
}

// DecodeMapped decodes the envelope result as Raw and converts it with mapFn.
func DecodeMapped[Raw, T any](resp wire.HTTPResponse, mapFn func(Raw) T) (T, error) {
	var zero T
	if len(resp.Body) == 0 {
		return zero, ErrEmptyBody
	}
	env, err := wire.DecodeEnvelope(resp.Body)
	if err != nil {
		return zero, &DecodeError{Err: err}
	}
	if !env.OK() {
		return zero, &APIError{Description: env.Description, Parameters: env.Parameters}
	}
	var raw Raw
	if err := json.Unmarshal(env.Result, &raw); err != nil {
		return zero, &DecodeError{Err: err}
	}
	return mapFn(raw), nil
}

// True is the literal true returned by acknowledgement-only methods.
type True struct{}

// UnmarshalJSON rejects anything but true.
func (*True) UnmarshalJSON(data []byte) error {
	if string(data) != "true" {
		return fmt.Errorf("expected true, got %s", data)
	}
	return nil
}

// MarshalJSON encodes true.
func (True) MarshalJSON() ([]byte, error) {
	return []byte("true"), nil
}
