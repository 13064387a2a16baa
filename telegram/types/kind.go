package types

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// MessageKind is the content of a message. Exactly one variant applies to every message.
type MessageKind interface {
	isMessageKind()
}

// TextKind is a plain text message.
type TextKind struct {
	Data     string
	Entities []MessageEntity
}

// AudioKind is a music file.
type AudioKind struct {
	Data Audio
}

// DocumentKind is a general file.
type DocumentKind struct {
	Data    Document
	Caption string
}

// PhotoKind is a photo in all its available sizes.
type PhotoKind struct {
	Data         []PhotoSize
	Caption      string
	MediaGroupID string
}

// StickerKind is a sticker.
type StickerKind struct {
	Data Sticker
}

// VideoKind is a video.
type VideoKind struct {
	Data         Video
	Caption      string
	MediaGroupID string
}

// VoiceKind is a voice note.
type VoiceKind struct {
	Data Voice
}

// VideoNoteKind is a round video message.
type VideoNoteKind struct {
	Data VideoNote
}

// ContactKind is a shared contact.
type ContactKind struct {
	Data Contact
}

// LocationKind is a shared location.
type LocationKind struct {
	Data Location
}

// PollKind is a native poll.
type PollKind struct {
	Data Poll
}

// VenueKind is a venue.
type VenueKind struct {
	Data Venue
}

// NewChatMembersKind announces users added to the chat.
type NewChatMembersKind struct {
	Data []User
}

// LeftChatMemberKind announces a user removed from the chat.
type LeftChatMemberKind struct {
	Data User
}

// NewChatTitleKind announces a title change.
type NewChatTitleKind struct {
	Data string
}

// NewChatPhotoKind announces a new chat photo.
type NewChatPhotoKind struct {
	Data []PhotoSize
}

// DeleteChatPhotoKind announces the chat photo was removed.
type DeleteChatPhotoKind struct{}

// GroupChatCreatedKind announces a new group.
type GroupChatCreatedKind struct{}

// SupergroupChatCreatedKind announces a new supergroup.
type SupergroupChatCreatedKind struct{}

// ChannelChatCreatedKind announces a new channel.
type ChannelChatCreatedKind struct{}

// MigrateToChatIDKind says the group was migrated to the supergroup with this id.
type MigrateToChatIDKind struct {
	Data ChatID
}

// MigrateFromChatIDKind says the supergroup was migrated from the group with this id.
type MigrateFromChatIDKind struct {
	Data ChatID
}

// PinnedMessageKind announces a pinned message.
type PinnedMessageKind struct {
	Data MessageOrChannelPost
}

// UnknownKind keeps a message none of the known content fields matched.
type UnknownKind struct {
	Raw json.RawMessage
}

func (TextKind) isMessageKind() {}
func (AudioKind) isMessageKind() {}
func (DocumentKind) isMessageKind() {}
func (PhotoKind) isMessageKind() {}
func (StickerKind) isMessageKind() {}
func (VideoKind) isMessageKind() {}
func (VoiceKind) isMessageKind() {}
func (VideoNoteKind) isMessageKind() {}
func (ContactKind) isMessageKind() {}
func (LocationKind) isMessageKind() {}
func (PollKind) isMessageKind() {}
func (VenueKind) isMessageKind() {}
func (NewChatMembersKind) isMessageKind() {}
func (LeftChatMemberKind) isMessageKind() {}
func (NewChatTitleKind) isMessageKind() {}
func (NewChatPhotoKind) isMessageKind() {}
func (DeleteChatPhotoKind) isMessageKind() {}
func (GroupChatCreatedKind) isMessageKind() {}
func (SupergroupChatCreatedKind) isMessageKind() {}
func (ChannelChatCreatedKind) isMessageKind() {}
func (MigrateToChatIDKind) isMessageKind() {}
func (MigrateFromChatIDKind) isMessageKind() {}
func (PinnedMessageKind) isMessageKind() {}
func (UnknownKind) isMessageKind() {}

// kindProbe maps one optional message field to the variant it selects.
// Flag probes match only a literal true.
type kindProbe struct {
	field  string
	flag   bool
	decode func(v gjson.Result, raw *rawMessage) (MessageKind, error)
}

func simple[T any](wrap func(T) MessageKind) func(gjson.Result, *rawMessage) (MessageKind, error) {
	return func(v gjson.Result, _ *rawMessage) (MessageKind, error) {
		data, err := decodeValue[T](v)
		if err != nil {
			return nil, err
		}
		return wrap(data), nil
	}
}

func marker(kind MessageKind) func(gjson.Result, *rawMessage) (MessageKind, error) {
	return func(gjson.Result, *rawMessage) (MessageKind, error) {
		return kind, nil
	}
}

// messageKindProbes is evaluated top to bottom and the first present field wins.
// text must stay ahead of every media field.
var messageKindProbes = []kindProbe{
	{field: "text", decode: func(v gjson.Result, raw *rawMessage) (MessageKind, error) {
		if v.Type != gjson.String {
			return nil, fmt.Errorf("text: expected string, got %s", v.Type)
		}
		entities := raw.Entities
		if entities == nil {
			entities = []MessageEntity{}
		}
		return TextKind{Data: v.String(), Entities: entities}, nil
	}},
	{field: "audio", decode: simple(func(d Audio) MessageKind { return AudioKind{Data: d} })},
	{field: "document", decode: func(v gjson.Result, raw *rawMessage) (MessageKind, error) {
		d, err := decodeValue[Document](v)
		if err != nil {
			return nil, err
		}
		return DocumentKind{Data: d, Caption: raw.Caption}, nil
	}},
	{field: "photo", decode: func(v gjson.Result, raw *rawMessage) (MessageKind, error) {
		d, err := decodeValue[[]PhotoSize](v)
		if err != nil {
			return nil, err
		}
		return PhotoKind{Data: d, Caption: raw.Caption, MediaGroupID: raw.MediaGroupID}, nil
	}},
	{field: "sticker", decode: simple(func(d Sticker) MessageKind { return StickerKind{Data: d} })},
	{field: "video", decode: func(v gjson.Result, raw *rawMessage) (MessageKind, error) {
		d, err := decodeValue[Video](v)
		if err != nil {
			return nil, err
		}
		return VideoKind{Data: d, Caption: raw.Caption, MediaGroupID: raw.MediaGroupID}, nil
	}},
	{field: "voice", decode: simple(func(d Voice) MessageKind { return VoiceKind{Data: d} })},
	{field: "video_note", decode: simple(func(d VideoNote) MessageKind { return VideoNoteKind{Data: d} })},
	{field: "contact", decode: simple(func(d Contact) MessageKind { return ContactKind{Data: d} })},
	{field: "location", decode: simple(func(d Location) MessageKind { return LocationKind{Data: d} })},
	{field: "poll", decode: simple(func(d Poll) MessageKind { return PollKind{Data: d} })},
	{field: "venue", decode: simple(func(d Venue) MessageKind { return VenueKind{Data: d} })},
	{field: "new_chat_members", decode: simple(func(d []User) MessageKind { return NewChatMembersKind{Data: d} })},
	{field: "left_chat_member", decode: simple(func(d User) MessageKind { return LeftChatMemberKind{Data: d} })},
	{field: "new_chat_title", decode: simple(func(d string) MessageKind { return NewChatTitleKind{Data: d} })},
	{field: "new_chat_photo", decode: simple(func(d []PhotoSize) MessageKind { return NewChatPhotoKind{Data: d} })},
	{field: "delete_chat_photo", flag: true, decode: marker(DeleteChatPhotoKind{})},
	{field: "group_chat_created", flag: true, decode: marker(GroupChatCreatedKind{})},
	{field: "supergroup_chat_created", flag: true, decode: marker(SupergroupChatCreatedKind{})},
	{field: "channel_chat_created", flag: true, decode: marker(ChannelChatCreatedKind{})},
	{field: "migrate_to_chat_id", decode: simple(func(d ChatID) MessageKind { return MigrateToChatIDKind{Data: d} })},
	{field: "migrate_from_chat_id", decode: simple(func(d ChatID) MessageKind { return MigrateFromChatIDKind{Data: d} })},
	{field: "pinned_message", decode: simple(func(d MessageOrChannelPost) MessageKind { return PinnedMessageKind{Data: d} })},
}

// decodeMessageKind runs the probe list against a raw message record.
// No matching field yields UnknownKind, never an error.
func decodeMessageKind(data []byte, raw *rawMessage) (MessageKind, error) {
	for _, p := range messageKindProbes {
		v, ok := lookup(data, p.field)
		if !ok {
			continue
		}
		if p.flag && v.Type != gjson.True {
			continue
		}
		kind, err := p.decode(v, raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", p.field, err)
		}
		return kind, nil
	}
	return UnknownKind{Raw: cloneRaw(data)}, nil
}
