package requests

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/codex-k8s/telegram-bot/telegram/types"
	"github.com/codex-k8s/telegram-bot/telegram/wire"
)

var (
	// ErrEmptyBody is returned when the server replied without a body.
	ErrEmptyBody = errors.New("empty body")
	// ErrInvalidMultipartFilename is returned when in-memory upload data has no file name.
	ErrInvalidMultipartFilename = errors.New("invalid multipart filename")
	// ErrEmptyInputFile is returned when a file field was never set.
	ErrEmptyInputFile = errors.New("empty input file")
)

// DecodeError is a response that could not be parsed.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "decode response: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// APIError is an ok:false reply from the Bot API.
type APIError struct {
	Description string
	Parameters  *wire.ResponseParameters
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString(e.Description)
	if e.Parameters != nil {
		if e.Parameters.MigrateToChatID != nil {
			fmt.Fprintf(&b, ", migrate to chat id: %d", *e.Parameters.MigrateToChatID)
		}
		if e.Parameters.RetryAfter != nil {
			fmt.Fprintf(&b, ", retry after: %d", *e.Parameters.RetryAfter)
		}
	}
	return b.String()
}

// RetryAfter reports how long the server asked to back off.
func (e *APIError) RetryAfter() (time.Duration, bool) {
	if e.Parameters == nil || e.Parameters.RetryAfter == nil {
		return 0, false
	}
	return time.Duration(*e.Parameters.RetryAfter) * time.Second, true
}

// MigrateToChatID reports the supergroup a group was migrated to.
func (e *APIError) MigrateToChatID() (types.ChatID, bool) {
	if e.Parameters == nil || e.Parameters.MigrateToChatID == nil {
		return 0, false
	}
	return types.ChatID(*e.Parameters.MigrateToChatID), true
}

// AsAPIError unwraps err to an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
