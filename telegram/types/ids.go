// Package types holds the Bot API data model and its tagged-union decoders.
package types

import (
	"encoding/json"
	"strconv"
)

// UserID identifies a user.
type UserID int64

// ChatID identifies any chat.
type ChatID int64

// GroupID identifies a basic group.
type GroupID int64

// SupergroupID identifies a supergroup.
type SupergroupID int64

// ChannelID identifies a channel.
type ChannelID int64

// MessageID identifies a message inside its chat.
type MessageID int64

// CallbackQueryID identifies a callback query.
type CallbackQueryID string

// FileID identifies a file stored on Telegram servers.
type FileID string

func (id UserID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id ChatID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id GroupID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id SupergroupID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id ChannelID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id MessageID) String() string { return strconv.FormatInt(int64(id), 10) }

// ChatRef addresses a chat either by numeric id or by @username.
type ChatRef struct {
	id       ChatID
	username string
}

// ChatRefFromID addresses a chat by id.
func ChatRefFromID(id ChatID) ChatRef {
	return ChatRef{id: id}
}

// ChatRefFromUsername addresses a public chat by its @username.
func ChatRefFromUsername(username string) ChatRef {
	return ChatRef{username: username}
}

// String renders the reference the way the Bot API expects it in form values.
func (r ChatRef) String() string {
	if r.username != "" {
		return r.username
	}
	return r.id.String()
}

// MarshalJSON encodes the reference as a number or a string.
func (r ChatRef) MarshalJSON() ([]byte, error) {
	if r.username != "" {
		return json.Marshal(r.username)
	}
	return json.Marshal(int64(r.id))
}

// ToChatRef is implemented by everything a request can be addressed to.
type ToChatRef interface {
	ChatRef() ChatRef
}

func (r ChatRef) ChatRef() ChatRef { return r }
func (id ChatID) ChatRef() ChatRef { return ChatRefFromID(id) }
func (id UserID) ChatRef() ChatRef { return ChatRefFromID(ChatID(id)) }
func (id GroupID) ChatRef() ChatRef { return ChatRefFromID(ChatID(id)) }
func (id SupergroupID) ChatRef() ChatRef { return ChatRefFromID(ChatID(id)) }
func (id ChannelID) ChatRef() ChatRef { return ChatRefFromID(ChatID(id)) }
