package types

import (
	"encoding/json"
	"fmt"
)

// User is a Telegram user or bot. A User is also the Chat of a private conversation.
type User struct {
	ID           UserID `json:"id"`
	IsBot        bool   `json:"is_bot,omitempty"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// Group is a basic group chat.
type Group struct {
	ID                          GroupID
	Title                       string
	AllMembersAreAdministrators bool
}

// Supergroup is a supergroup chat.
type Supergroup struct {
	ID       SupergroupID
	Title    string
	Username string
}

// Channel is a broadcast channel.
type Channel struct {
	ID       ChannelID
	Title    string
	Username string
}

// UnknownChat keeps a chat whose type this package does not recognise.
type UnknownChat struct {
	Raw RawChat
}

// Chat is one of User, Group, Supergroup, Channel or UnknownChat.
type Chat interface {
	ChatID() ChatID
	isChat()
}

func (u User) ChatID() ChatID { return ChatID(u.ID) }
func (g Group) ChatID() ChatID { return ChatID(g.ID) }
func (s Supergroup) ChatID() ChatID { return ChatID(s.ID) }
func (c Channel) ChatID() ChatID { return ChatID(c.ID) }
func (u UnknownChat) ChatID() ChatID { return u.Raw.ID }

func (User) isChat() {}
func (Group) isChat() {}
func (Supergroup) isChat() {}
func (Channel) isChat() {}
func (UnknownChat) isChat() {}

// RawChat mirrors the wire shape of a chat.
type RawChat struct {
	ID                          ChatID  `json:"id"`
	Type                        string  `json:"type"`
	Title                       *string `json:"title,omitempty"`
	Username                    *string `json:"username,omitempty"`
	FirstName                   *string `json:"first_name,omitempty"`
	LastName                    *string `json:"last_name,omitempty"`
	AllMembersAreAdministrators *bool   `json:"all_members_are_administrators,omitempty"`
}

// DecodeChat selects the chat variant by its "type" field.
func DecodeChat(data []byte) (Chat, error) {
	var raw RawChat
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	switch raw.Type {
	case "private":
		if raw.FirstName == nil {
			return nil, missingField("first_name")
		}
		return User{
			ID:        UserID(raw.ID),
			FirstName: *raw.FirstName,
			LastName:  deref(raw.LastName),
			Username:  deref(raw.Username),
		}, nil
	case "group":
		if raw.Title == nil {
			return nil, missingField("title")
		}
		g := Group{ID: GroupID(raw.ID), Title: *raw.Title}
		if raw.AllMembersAreAdministrators != nil {
			g.AllMembersAreAdministrators = *raw.AllMembersAreAdministrators
		}
		return g, nil
	case "supergroup":
		if raw.Title == nil {
			return nil, missingField("title")
		}
		return Supergroup{ID: SupergroupID(raw.ID), Title: *raw.Title, Username: deref(raw.Username)}, nil
	case "channel":
		if raw.Title == nil {
			return nil, missingField("title")
		}
		return Channel{ID: ChannelID(raw.ID), Title: *raw.Title, Username: deref(raw.Username)}, nil
	default:
		return UnknownChat{Raw: raw}, nil
	}
}

func missingField(name string) error {
	return fmt.Errorf("missing field `%s`", name)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
