package wire

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrAmbiguousResponse is returned when an envelope is neither a clean success nor a clean error.
var ErrAmbiguousResponse = errors.New("ambiguous response")

// ResponseParameters explains why a request was unsuccessful.
type ResponseParameters struct {
	// MigrateToChatID is set when a group was migrated to a supergroup.
	MigrateToChatID *int64 `json:"migrate_to_chat_id,omitempty"`
	// RetryAfter is the number of seconds to wait after hitting flood control.
	RetryAfter *int64 `json:"retry_after,omitempty"`
}

// ResponseEnvelope is the outer {ok, result|description} wrapper of every response.
type ResponseEnvelope struct {
	ok          bool
	Result      json.RawMessage
	Description string
	Parameters  *ResponseParameters
}

// OK reports whether the envelope is a success.
func (e ResponseEnvelope) OK() bool {
	return e.ok
}

type rawEnvelope struct {
	OK          bool                `json:"ok"`
	Description *string             `json:"description"`
	Result      json.RawMessage     `json:"result"`
	Parameters  *ResponseParameters `json:"parameters"`
}

// DecodeEnvelope parses the envelope without touching the result payload.
func DecodeEnvelope(body []byte) (ResponseEnvelope, error) {
	var raw rawEnvelope
	if err := json.Unmarshal(body, &raw); err != nil {
		return ResponseEnvelope{}, err
	}
	hasResult := len(raw.Result) > 0 && !bytes.Equal(bytes.TrimSpace(raw.Result), []byte("null"))

	switch {
	case raw.OK && raw.Description == nil && hasResult:
		return ResponseEnvelope{ok: true, Result: raw.Result}, nil
	case !raw.OK && raw.Description != nil && !hasResult:
		return ResponseEnvelope{Description: *raw.Description, Parameters: raw.Parameters}, nil
	default:
		return ResponseEnvelope{}, ErrAmbiguousResponse
	}
}
