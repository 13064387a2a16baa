package types

import (
	"encoding/json"
	"unicode/utf16"
)

// EntityKind is the type of a message entity.
type EntityKind string

const (
	EntityMention     EntityKind = "mention"
	EntityHashtag     EntityKind = "hashtag"
	EntityBotCommand  EntityKind = "bot_command"
	EntityURL         EntityKind = "url"
	EntityEmail       EntityKind = "email"
	EntityBold        EntityKind = "bold"
	EntityItalic      EntityKind = "italic"
	EntityCode        EntityKind = "code"
	EntityPre         EntityKind = "pre"
	EntityTextLink    EntityKind = "text_link"
	EntityTextMention EntityKind = "text_mention"
	// EntityUnknown marks an entity type this package does not model; Type keeps the wire value.
	EntityUnknown EntityKind = ""
)

// MessageEntity marks a special span of a text message.
type MessageEntity struct {
	Offset int64
	Length int64
	Kind   EntityKind
	// Type is the raw wire type, set for every kind including unknown ones.
	Type string
	// URL is set for EntityTextLink.
	URL string
	// User is set for EntityTextMention.
	User *User
}

type rawMessageEntity struct {
	Type   string  `json:"type"`
	Offset int64   `json:"offset"`
	Length int64   `json:"length"`
	URL    *string `json:"url"`
	User   *User   `json:"user"`
}

// UnmarshalJSON decodes an entity and checks the fields its kind requires.
func (e *MessageEntity) UnmarshalJSON(data []byte) error {
	var raw rawMessageEntity
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := MessageEntity{Offset: raw.Offset, Length: raw.Length, Type: raw.Type}
	switch kind := EntityKind(raw.Type); kind {
	case EntityMention, EntityHashtag, EntityBotCommand, EntityURL, EntityEmail,
		EntityBold, EntityItalic, EntityCode, EntityPre:
		out.Kind = kind
	case EntityTextLink:
		if raw.URL == nil {
			return missingField("url")
		}
		out.Kind, out.URL = kind, *raw.URL
	case EntityTextMention:
		if raw.User == nil {
			return missingField("user")
		}
		out.Kind, out.User = kind, raw.User
	default:
		out.Kind = EntityUnknown
	}
	*e = out
	return nil
}

// Span returns the UTF-16 code unit range of the entity inside text.
func (e MessageEntity) Span(text string) string {
	units := utf16.Encode([]rune(text))
	start, end := e.Offset, e.Offset+e.Length
	if start < 0 || end > int64(len(units)) || start > end {
		return ""
	}
	return string(utf16.Decode(units[start:end]))
}
