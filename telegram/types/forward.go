package types

import "errors"

// ErrInvalidForward is returned when the forward_* fields of a message do not form a known shape.
var ErrInvalidForward = errors.New("invalid forward fields combination")

// Forward describes where a forwarded message came from.
type Forward struct {
	// Date is the Unix time the original message was sent.
	Date int64
	From ForwardFrom
}

// ForwardFrom is one of ForwardFromUser, ForwardFromChannel or ForwardFromHiddenUser.
type ForwardFrom interface {
	isForwardFrom()
}

// ForwardFromUser is a message forwarded from a user.
type ForwardFromUser struct {
	User User
}

// ForwardFromChannel is a post forwarded from a channel.
type ForwardFromChannel struct {
	Channel   Channel
	MessageID MessageID
}

// ForwardFromHiddenUser is a message forwarded from a user who hides their account.
type ForwardFromHiddenUser struct {
	SenderName string
}

func (ForwardFromUser) isForwardFrom() {}
func (ForwardFromChannel) isForwardFrom() {}
func (ForwardFromHiddenUser) isForwardFrom() {}

func decodeForward(raw *rawMessage) (*Forward, error) {
	hasChat := present(raw.ForwardFromChat)
	if raw.ForwardDate == nil {
		if raw.ForwardFrom != nil || hasChat || raw.ForwardFromMessageID != nil || raw.ForwardSenderName != nil {
			return nil, ErrInvalidForward
		}
		return nil, nil
	}
	date := *raw.ForwardDate

	switch {
	case raw.ForwardFrom != nil && !hasChat && raw.ForwardFromMessageID == nil && raw.ForwardSenderName == nil:
		return &Forward{Date: date, From: ForwardFromUser{User: *raw.ForwardFrom}}, nil
	case raw.ForwardFrom == nil && hasChat && raw.ForwardFromMessageID != nil && raw.ForwardSenderName == nil:
		chat, err := DecodeChat(raw.ForwardFromChat)
		if err != nil {
			return nil, err
		}
		channel, ok := chat.(Channel)
		if !ok {
			return nil, ErrInvalidForward
		}
		return &Forward{Date: date, From: ForwardFromChannel{Channel: channel, MessageID: *raw.ForwardFromMessageID}}, nil
	case raw.ForwardFrom == nil && !hasChat && raw.ForwardFromMessageID == nil && raw.ForwardSenderName != nil:
		return &Forward{Date: date, From: ForwardFromHiddenUser{SenderName: *raw.ForwardSenderName}}, nil
	default:
		return nil, ErrInvalidForward
	}
}
