package types

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const (
	privateChat = `{"id":42,"type":"private","first_name":"Ann"}`
	fromUser    = `{"id":42,"is_bot":false,"first_name":"Ann"}`
)

func messageJSON(extra string) string {
	base := `"message_id":7,"date":1600000000,"chat":` + privateChat + `,"from":` + fromUser
	if extra == "" {
		return "{" + base + "}"
	}
	return "{" + base + "," + extra + "}"
}

func decodeMessageFixture(t *testing.T, extra string) (Message, error) {
	t.Helper()
	var m Message
	err := json.Unmarshal([]byte(messageJSON(extra)), &m)
	return m, err
}

func TestMessageKindFixtures(t *testing.T) {
	tests := []struct {
		name  string
		extra string
		want  MessageKind
	}{
		{
			name:  "text only",
			extra: `"text":"hello"`,
			want:  TextKind{Data: "hello", Entities: []MessageEntity{}},
		},
		{
			name:  "migrate from chat id only",
			extra: `"migrate_from_chat_id":-1001234`,
			want:  MigrateFromChatIDKind{Data: -1001234},
		},
		{
			name:  "migrate to chat id",
			extra: `"migrate_to_chat_id":-1009999`,
			want:  MigrateToChatIDKind{Data: -1009999},
		},
		{
			name:  "text wins over photo",
			extra: `"photo":[{"file_id":"p","width":1,"height":1}],"text":"caption-like"`,
			want:  TextKind{Data: "caption-like", Entities: []MessageEntity{}},
		},
		{
			name:  "photo with caption and group",
			extra: `"photo":[{"file_id":"p","width":90,"height":60}],"caption":"sunset","media_group_id":"g1"`,
			want: PhotoKind{
				Data:         []PhotoSize{{FileID: "p", Width: 90, Height: 60}},
				Caption:      "sunset",
				MediaGroupID: "g1",
			},
		},
		{
			name:  "document with caption",
			extra: `"document":{"file_id":"d","file_name":"a.txt"},"caption":"notes"`,
			want:  DocumentKind{Data: Document{FileID: "d", FileName: "a.txt"}, Caption: "notes"},
		},
		{
			name:  "audio before document",
			extra: `"document":{"file_id":"d"},"audio":{"file_id":"a","duration":3}`,
			want:  AudioKind{Data: Audio{FileID: "a", Duration: 3}},
		},
		{
			name:  "location",
			extra: `"location":{"longitude":30.5,"latitude":50.4}`,
			want:  LocationKind{Data: Location{Longitude: 30.5, Latitude: 50.4}},
		},
		{
			name:  "new chat members",
			extra: `"new_chat_members":[{"id":5,"first_name":"Bob"}]`,
			want:  NewChatMembersKind{Data: []User{{ID: 5, FirstName: "Bob"}}},
		},
		{
			name:  "group chat created",
			extra: `"group_chat_created":true`,
			want:  GroupChatCreatedKind{},
		},
		{
			name:  "null field is absent",
			extra: `"text":null,"new_chat_title":"Renamed"`,
			want:  NewChatTitleKind{Data: "Renamed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := decodeMessageFixture(t, tt.extra)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, m.Kind); diff != "" {
				t.Errorf("kind mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMessageKindUnknownIsNotAnError(t *testing.T) {
	tests := []struct {
		name  string
		extra string
	}{
		{name: "no content fields", extra: ""},
		{name: "future field", extra: `"dice":{"emoji":"🎲","value":4}`},
		{name: "false flag", extra: `"group_chat_created":false`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := decodeMessageFixture(t, tt.extra)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			unknown, ok := m.Kind.(UnknownKind)
			if !ok {
				t.Fatalf("kind = %T, want UnknownKind", m.Kind)
			}
			if !json.Valid(unknown.Raw) || !strings.Contains(string(unknown.Raw), `"message_id":7`) {
				t.Errorf("raw record not preserved: %s", unknown.Raw)
			}
		})
	}
}

func TestMessageKindProbeOrder(t *testing.T) {
	want := []string{
		"text", "audio", "document", "photo", "sticker", "video", "voice", "video_note",
		"contact", "location", "poll", "venue", "new_chat_members", "left_chat_member",
		"new_chat_title", "new_chat_photo", "delete_chat_photo", "group_chat_created",
		"supergroup_chat_created", "channel_chat_created", "migrate_to_chat_id",
		"migrate_from_chat_id", "pinned_message",
	}
	got := make([]string, 0, len(messageKindProbes))
	for _, p := range messageKindProbes {
		got = append(got, p.field)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("kind order changed (-want +got):\n%s", diff)
	}
}

func TestMessageForward(t *testing.T) {
	channel := `{"id":-100500,"type":"channel","title":"News"}`

	tests := []struct {
		name    string
		extra   string
		want    *Forward
		wantErr error
	}{
		{
			name:  "not forwarded",
			extra: `"text":"x"`,
		},
		{
			name:  "from user",
			extra: `"text":"x","forward_date":10,"forward_from":{"id":9,"first_name":"Eve"}`,
			want:  &Forward{Date: 10, From: ForwardFromUser{User: User{ID: 9, FirstName: "Eve"}}},
		},
		{
			name:  "from channel",
			extra: `"text":"x","forward_date":11,"forward_from_chat":` + channel + `,"forward_from_message_id":77`,
			want: &Forward{Date: 11, From: ForwardFromChannel{
				Channel:   Channel{ID: -100500, Title: "News"},
				MessageID: 77,
			}},
		},
		{
			name:  "from hidden user",
			extra: `"text":"x","forward_date":12,"forward_sender_name":"Anonymous"`,
			want:  &Forward{Date: 12, From: ForwardFromHiddenUser{SenderName: "Anonymous"}},
		},
		{
			name:    "date without origin",
			extra:   `"text":"x","forward_date":13`,
			wantErr: ErrInvalidForward,
		},
		{
			name:    "origin without date",
			extra:   `"text":"x","forward_from":{"id":9,"first_name":"Eve"}`,
			wantErr: ErrInvalidForward,
		},
		{
			name:    "user and chat together",
			extra:   `"text":"x","forward_date":14,"forward_from":{"id":9,"first_name":"Eve"},"forward_from_chat":` + channel,
			wantErr: ErrInvalidForward,
		},
		{
			name:    "channel without message id",
			extra:   `"text":"x","forward_date":15,"forward_from_chat":` + channel,
			wantErr: ErrInvalidForward,
		},
		{
			name:    "non-channel origin chat",
			extra:   `"text":"x","forward_date":16,"forward_from_chat":{"id":-5,"type":"group","title":"G"},"forward_from_message_id":1`,
			wantErr: ErrInvalidForward,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := decodeMessageFixture(t, tt.extra)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, m.Forward); diff != "" {
				t.Errorf("forward mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMessageShapeErrors(t *testing.T) {
	t.Run("channel chat in message", func(t *testing.T) {
		var m Message
		err := json.Unmarshal([]byte(`{"message_id":1,"date":1,"from":`+fromUser+`,"chat":{"id":-1,"type":"channel","title":"C"},"text":"x"}`), &m)
		if !errors.Is(err, ErrChannelChatInMessage) {
			t.Errorf("err = %v, want ErrChannelChatInMessage", err)
		}
	})

	t.Run("missing from", func(t *testing.T) {
		var m Message
		err := json.Unmarshal([]byte(`{"message_id":1,"date":1,"chat":`+privateChat+`,"text":"x"}`), &m)
		if err == nil || !strings.Contains(err.Error(), "from") {
			t.Errorf("err = %v, want missing from", err)
		}
	})

	t.Run("missing chat", func(t *testing.T) {
		var m Message
		err := json.Unmarshal([]byte(`{"message_id":1,"date":1,"from":`+fromUser+`,"text":"x"}`), &m)
		if err == nil || !strings.Contains(err.Error(), "chat") {
			t.Errorf("err = %v, want missing chat", err)
		}
	})

	t.Run("malformed media field", func(t *testing.T) {
		_, err := decodeMessageFixture(t, `"photo":{"file_id":1}`)
		if err == nil || !strings.Contains(err.Error(), "photo") {
			t.Errorf("err = %v, want photo decode error", err)
		}
	})
}

func TestMessageOrChannelPost(t *testing.T) {
	t.Run("channel post", func(t *testing.T) {
		var m MessageOrChannelPost
		err := json.Unmarshal([]byte(`{"message_id":3,"date":5,"chat":{"id":-100,"type":"channel","title":"C"},"text":"post"}`), &m)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.ChannelPost == nil || m.Message != nil {
			t.Fatalf("expected channel post, got %+v", m)
		}
		if m.ChatID() != -100 || m.MessageID() != 3 {
			t.Errorf("ChatID() = %d, MessageID() = %d", m.ChatID(), m.MessageID())
		}
	})

	t.Run("pinned message", func(t *testing.T) {
		pinned := messageJSON(`"text":"pinned text"`)
		m, err := decodeMessageFixture(t, `"pinned_message":`+pinned)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		kind, ok := m.Kind.(PinnedMessageKind)
		if !ok {
			t.Fatalf("kind = %T, want PinnedMessageKind", m.Kind)
		}
		if kind.Data.Message == nil {
			t.Fatal("pinned message missing")
		}
		if text, ok := kind.Data.Message.Kind.(TextKind); !ok || text.Data != "pinned text" {
			t.Errorf("pinned kind = %+v", kind.Data.Message.Kind)
		}
	})

	t.Run("reply to message", func(t *testing.T) {
		m, err := decodeMessageFixture(t, `"text":"reply","reply_to_message":`+messageJSON(`"text":"orig"`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.ReplyToMessage == nil || m.ReplyToMessage.Message == nil || m.ReplyToMessage.MessageID() != 7 {
			t.Errorf("reply = %+v", m.ReplyToMessage)
		}
	})
}

func TestChannelPostRejectsPrivateChat(t *testing.T) {
	var p ChannelPost
	err := json.Unmarshal([]byte(messageJSON(`"text":"x"`)), &p)
	if !errors.Is(err, ErrExpectedChannelChat) {
		t.Errorf("err = %v, want ErrExpectedChannelChat", err)
	}
}

func TestCallbackMessageAllowsMissingFrom(t *testing.T) {
	var m CallbackMessage
	err := json.Unmarshal([]byte(`{"message_id":1,"date":1,"chat":`+privateChat+`,"text":"menu"}`), &m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.From != nil {
		t.Errorf("From = %+v, want nil", m.From)
	}
}
