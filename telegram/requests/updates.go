package requests

import (
	"github.com/codex-k8s/telegram-bot/telegram/types"
	"github.com/codex-k8s/telegram-bot/telegram/wire"
)

// AllowedUpdate names an update type for the allowed_updates filter.
type AllowedUpdate string

const (
	AllowMessage            AllowedUpdate = "message"
	AllowEditedMessage      AllowedUpdate = "edited_message"
	AllowChannelPost        AllowedUpdate = "channel_post"
	AllowEditedChannelPost  AllowedUpdate = "edited_channel_post"
	AllowInlineQuery        AllowedUpdate = "inline_query"
	AllowChosenInlineResult AllowedUpdate = "chosen_inline_result"
	AllowCallbackQuery      AllowedUpdate = "callback_query"
	AllowPoll               AllowedUpdate = "poll"
	AllowPollAnswer         AllowedUpdate = "poll_answer"
)

// GetUpdates fetches pending updates with long polling.
type GetUpdates struct {
	Offset         int64           `json:"offset,omitempty"`
	Limit          int             `json:"limit,omitempty"`
	Timeout        int             `json:"timeout,omitempty"`
	AllowedUpdates []AllowedUpdate `json:"allowed_updates"`
}

// NewGetUpdates returns a request for all update types.
func NewGetUpdates() *GetUpdates {
	return &GetUpdates{}
}

func (r *GetUpdates) Serialize() (wire.HTTPRequest, error) {
	payload := *r
	if payload.AllowedUpdates == nil {
		payload.AllowedUpdates = []AllowedUpdate{}
	}
	return SerializeJSON("getUpdates", payload)
}

func (r *GetUpdates) Deserialize(resp wire.HTTPResponse) ([]types.Update, error) {
	return DecodeJSON[[]types.Update](resp)
}

// SetWebhook registers an outgoing webhook.
type SetWebhook struct {
	URL                string          `json:"url"`
	MaxConnections     int             `json:"max_connections,omitempty"`
	AllowedUpdates     []AllowedUpdate `json:"allowed_updates,omitempty"`
	DropPendingUpdates bool            `json:"drop_pending_updates,omitempty"`
	SecretToken        string          `json:"secret_token,omitempty"`
}

// NewSetWebhook registers url.
func NewSetWebhook(url string) *SetWebhook {
	return &SetWebhook{URL: url}
}

func (r *SetWebhook) Serialize() (wire.HTTPRequest, error) {
	return SerializeJSON("setWebhook", r)
}

func (r *SetWebhook) Deserialize(resp wire.HTTPResponse) (struct{}, error) {
	return DecodeAck(resp)
}

// DeleteWebhook switches the bot back to getUpdates.
type DeleteWebhook struct {
	DropPendingUpdates bool `json:"drop_pending_updates,omitempty"`
}

func (r *DeleteWebhook) Serialize() (wire.HTTPRequest, error) {
	return SerializeJSON("deleteWebhook", r)
}

func (r *DeleteWebhook) Deserialize(resp wire.HTTPResponse) (struct{}, error) {
	return DecodeAck(resp)
}
