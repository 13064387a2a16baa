package types

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// CallbackQuery is a press on an inline keyboard button.
type CallbackQuery struct {
	ID              CallbackQueryID  `json:"id"`
	From            User             `json:"from"`
	Message         *CallbackMessage `json:"message,omitempty"`
	InlineMessageID string           `json:"inline_message_id,omitempty"`
	ChatInstance    string           `json:"chat_instance"`
	Data            string           `json:"data,omitempty"`
	GameShortName   string           `json:"game_short_name,omitempty"`
}

// Update is one inbound event. ID grows monotonically within a polling session.
type Update struct {
	ID   int64
	Kind UpdateKind
}

// UpdateKind is the payload of an update.
type UpdateKind interface {
	isUpdateKind()
}

// MessageUpdate is a new incoming message.
type MessageUpdate struct {
	Message Message
}

// EditedMessageUpdate is a new version of a known message.
type EditedMessageUpdate struct {
	Message Message
}

// ChannelPostUpdate is a new channel post.
type ChannelPostUpdate struct {
	Post ChannelPost
}

// EditedChannelPostUpdate is a new version of a known channel post.
type EditedChannelPostUpdate struct {
	Post ChannelPost
}

// InlineQueryUpdate is a new inline query.
type InlineQueryUpdate struct {
	Query InlineQuery
}

// ChosenInlineResultUpdate is an inline result chosen by a user.
type ChosenInlineResultUpdate struct {
	Result ChosenInlineResult
}

// CallbackQueryUpdate is a new callback query.
type CallbackQueryUpdate struct {
	Query CallbackQuery
}

// PollUpdate is a new poll state.
type PollUpdate struct {
	Poll Poll
}

// PollAnswerUpdate is a changed answer in a non-anonymous poll.
type PollAnswerUpdate struct {
	Answer PollAnswer
}

// UpdateError is an update whose payload failed to decode. Its siblings in the batch are unaffected.
type UpdateError struct {
	Description string
}

// UnknownUpdate is an update carrying none of the recognised payload fields.
type UnknownUpdate struct {
	Raw json.RawMessage
}

func (MessageUpdate) isUpdateKind() {}
func (EditedMessageUpdate) isUpdateKind() {}
func (ChannelPostUpdate) isUpdateKind() {}
func (EditedChannelPostUpdate) isUpdateKind() {}
func (InlineQueryUpdate) isUpdateKind() {}
func (ChosenInlineResultUpdate) isUpdateKind() {}
func (CallbackQueryUpdate) isUpdateKind() {}
func (PollUpdate) isUpdateKind() {}
func (PollAnswerUpdate) isUpdateKind() {}
func (UpdateError) isUpdateKind() {}
func (UnknownUpdate) isUpdateKind() {}

type updateProbe struct {
	field  string
	decode func(raw []byte) (UpdateKind, error)
}

func payload[T any](wrap func(T) UpdateKind) func([]byte) (UpdateKind, error) {
	return func(raw []byte) (UpdateKind, error) {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return wrap(v), nil
	}
}

var updateProbes = []updateProbe{
	{"message", payload(func(m Message) UpdateKind { return MessageUpdate{Message: m} })},
	{"edited_message", payload(func(m Message) UpdateKind { return EditedMessageUpdate{Message: m} })},
	{"channel_post", payload(func(p ChannelPost) UpdateKind { return ChannelPostUpdate{Post: p} })},
	{"edited_channel_post", payload(func(p ChannelPost) UpdateKind { return EditedChannelPostUpdate{Post: p} })},
	{"inline_query", payload(func(q InlineQuery) UpdateKind { return InlineQueryUpdate{Query: q} })},
	{"chosen_inline_result", payload(func(r ChosenInlineResult) UpdateKind { return ChosenInlineResultUpdate{Result: r} })},
	{"callback_query", payload(func(q CallbackQuery) UpdateKind { return CallbackQueryUpdate{Query: q} })},
	{"poll", payload(func(p Poll) UpdateKind { return PollUpdate{Poll: p} })},
	{"poll_answer", payload(func(a PollAnswer) UpdateKind { return PollAnswerUpdate{Answer: a} })},
}

// UnmarshalJSON never fails: a payload that cannot be decoded becomes UpdateError
// so that one bad record does not reject the whole batch.
func (u *Update) UnmarshalJSON(data []byte) error {
	*u = Update{}
	if !gjson.ValidBytes(data) {
		u.Kind = UpdateError{Description: "invalid json"}
		return nil
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		u.Kind = UpdateError{Description: fmt.Sprintf("expected object, got %s", root.Type)}
		return nil
	}
	id := root.Get("update_id")
	// Without an id the update keeps ID 0 and cannot advance the polling offset.
	// The server always numbers updates, so such a record is not expected to repeat.
	if id.Type != gjson.Number {
		u.Kind = UpdateError{Description: "missing field `update_id`"}
		return nil
	}
	u.ID = id.Int()

	for _, p := range updateProbes {
		v, ok := lookup(data, p.field)
		if !ok {
			continue
		}
		kind, err := p.decode([]byte(v.Raw))
		if err != nil {
			u.Kind = UpdateError{Description: fmt.Sprintf("%s: %v", p.field, err)}
			return nil
		}
		u.Kind = kind
		return nil
	}
	u.Kind = UnknownUpdate{Raw: cloneRaw(data)}
	return nil
}

// Message returns the message carried by a MessageUpdate or EditedMessageUpdate.
func (u Update) Message() (Message, bool) {
	switch k := u.Kind.(type) {
	case MessageUpdate:
		return k.Message, true
	case EditedMessageUpdate:
		return k.Message, true
	default:
		return Message{}, false
	}
}
