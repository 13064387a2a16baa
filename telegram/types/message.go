package types

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

var (
	// ErrChannelChatInMessage is returned when a Message carries a channel chat.
	ErrChannelChatInMessage = errors.New("channel chat in message")
	// ErrExpectedChannelChat is returned when a ChannelPost carries a non-channel chat.
	ErrExpectedChannelChat = errors.New("expected channel chat for channel post")
)

// Message is a message sent to a private chat, group or supergroup.
type Message struct {
	ID   MessageID
	From User
	// Date is the Unix send time.
	Date int64
	// Chat is never a Channel.
	Chat           Chat
	Forward        *Forward
	ReplyToMessage *MessageOrChannelPost
	EditDate       *int64
	Kind           MessageKind
}

// ChannelPost is a message posted to a channel.
type ChannelPost struct {
	ID             MessageID
	Date           int64
	Chat           Channel
	Forward        *Forward
	ReplyToMessage *MessageOrChannelPost
	EditDate       *int64
	Kind           MessageKind
}

// CallbackMessage is the message an inline button was attached to. From may be absent.
type CallbackMessage struct {
	ID             MessageID
	From           *User
	Date           int64
	Chat           Chat
	Forward        *Forward
	ReplyToMessage *MessageOrChannelPost
	EditDate       *int64
	Kind           MessageKind
}

// MessageOrChannelPost holds exactly one of Message or ChannelPost, chosen by the chat type.
type MessageOrChannelPost struct {
	Message     *Message
	ChannelPost *ChannelPost
}

// ChatID returns the id of the chat the message belongs to.
func (m MessageOrChannelPost) ChatID() ChatID {
	if m.ChannelPost != nil {
		return m.ChannelPost.Chat.ChatID()
	}
	if m.Message != nil && m.Message.Chat != nil {
		return m.Message.Chat.ChatID()
	}
	return 0
}

// MessageID returns the id of the wrapped message.
func (m MessageOrChannelPost) MessageID() MessageID {
	if m.ChannelPost != nil {
		return m.ChannelPost.ID
	}
	if m.Message != nil {
		return m.Message.ID
	}
	return 0
}

// rawMessage carries the fields every message shape shares.
type rawMessage struct {
	MessageID            MessageID             `json:"message_id"`
	From                 *User                 `json:"from"`
	Date                 int64                 `json:"date"`
	Chat                 json.RawMessage       `json:"chat"`
	ForwardFrom          *User                 `json:"forward_from"`
	ForwardFromChat      json.RawMessage       `json:"forward_from_chat"`
	ForwardFromMessageID *MessageID            `json:"forward_from_message_id"`
	ForwardSenderName    *string               `json:"forward_sender_name"`
	ForwardDate          *int64                `json:"forward_date"`
	ReplyToMessage       *MessageOrChannelPost `json:"reply_to_message"`
	EditDate             *int64                `json:"edit_date"`
	MediaGroupID         string                `json:"media_group_id"`
	Caption              string                `json:"caption"`
	Entities             []MessageEntity       `json:"entities"`
}

type decodedMessage struct {
	raw     rawMessage
	chat    Chat
	forward *Forward
	kind    MessageKind
}

func decodeMessage(data []byte) (decodedMessage, error) {
	var out decodedMessage
	if err := json.Unmarshal(data, &out.raw); err != nil {
		return out, err
	}
	if !present(out.raw.Chat) {
		return out, missingField("chat")
	}
	chat, err := DecodeChat(out.raw.Chat)
	if err != nil {
		return out, fmt.Errorf("decode chat: %w", err)
	}
	out.chat = chat

	if out.forward, err = decodeForward(&out.raw); err != nil {
		return out, err
	}
	if out.kind, err = decodeMessageKind(data, &out.raw); err != nil {
		return out, err
	}
	return out, nil
}

// UnmarshalJSON decodes a message and resolves its kind.
func (m *Message) UnmarshalJSON(data []byte) error {
	d, err := decodeMessage(data)
	if err != nil {
		return err
	}
	if d.raw.From == nil {
		return missingField("from")
	}
	if _, ok := d.chat.(Channel); ok {
		return ErrChannelChatInMessage
	}
	*m = Message{
		ID:             d.raw.MessageID,
		From:           *d.raw.From,
		Date:           d.raw.Date,
		Chat:           d.chat,
		Forward:        d.forward,
		ReplyToMessage: d.raw.ReplyToMessage,
		EditDate:       d.raw.EditDate,
		Kind:           d.kind,
	}
	return nil
}

// UnmarshalJSON decodes a channel post and resolves its kind.
func (p *ChannelPost) UnmarshalJSON(data []byte) error {
	d, err := decodeMessage(data)
	if err != nil {
		return err
	}
	channel, ok := d.chat.(Channel)
	if !ok {
		return ErrExpectedChannelChat
	}
	*p = ChannelPost{
		ID:             d.raw.MessageID,
		Date:           d.raw.Date,
		Chat:           channel,
		Forward:        d.forward,
		ReplyToMessage: d.raw.ReplyToMessage,
		EditDate:       d.raw.EditDate,
		Kind:           d.kind,
	}
	return nil
}

// UnmarshalJSON decodes the message attached to a callback query.
func (m *CallbackMessage) UnmarshalJSON(data []byte) error {
	d, err := decodeMessage(data)
	if err != nil {
		return err
	}
	if _, ok := d.chat.(Channel); ok {
		return ErrChannelChatInMessage
	}
	*m = CallbackMessage{
		ID:             d.raw.MessageID,
		From:           d.raw.From,
		Date:           d.raw.Date,
		Chat:           d.chat,
		Forward:        d.forward,
		ReplyToMessage: d.raw.ReplyToMessage,
		EditDate:       d.raw.EditDate,
		Kind:           d.kind,
	}
	return nil
}

// UnmarshalJSON decodes a channel post when the chat is a channel and a message otherwise.
func (m *MessageOrChannelPost) UnmarshalJSON(data []byte) error {
	if gjson.GetBytes(data, "chat.type").String() == "channel" {
		var post ChannelPost
		if err := json.Unmarshal(data, &post); err != nil {
			return err
		}
		*m = MessageOrChannelPost{ChannelPost: &post}
		return nil
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return err
	}
	*m = MessageOrChannelPost{Message: &msg}
	return nil
}
