package requests

import (
	"github.com/codex-k8s/telegram-bot/telegram/types"
	"github.com/codex-k8s/telegram-bot/telegram/wire"
)

// GetFile prepares a file for download.
type GetFile struct {
	FileID types.FileID `json:"file_id"`
}

// NewGetFile looks up id.
func NewGetFile(id types.FileID) *GetFile {
	return &GetFile{FileID: id}
}

func (r *GetFile) Serialize() (wire.HTTPRequest, error) {
	return SerializeJSON("getFile", r)
}

func (r *GetFile) Deserialize(resp wire.HTTPResponse) (types.File, error) {
	return DecodeJSON[types.File](resp)
}

// SendPhoto sends a photo, uploading it when it is not a reference.
type SendPhoto struct {
	ChatID              types.ChatRef
	Photo               InputFile
	Caption             string
	ParseMode           ParseMode
	DisableNotification bool
	ReplyToMessageID    types.MessageID
	ReplyMarkup         ReplyMarkup
}

// NewSendPhoto sends photo to chat.
func NewSendPhoto(chat types.ToChatRef, photo InputFile) *SendPhoto {
	return &SendPhoto{ChatID: chat.ChatRef(), Photo: photo}
}

// WithCaption sets the photo caption.
func (r *SendPhoto) WithCaption(caption string) *SendPhoto {
	r.Caption = caption
	return r
}

func (r *SendPhoto) Serialize() (wire.HTTPRequest, error) {
	form := &Form{}
	form.Text("chat_id", r.ChatID.String()).
		File("photo", r.Photo).
		OptionalText("caption", r.Caption).
		OptionalText("parse_mode", string(r.ParseMode)).
		WhenTrue("disable_notification", r.DisableNotification).
		OptionalInt("reply_to_message_id", int64(r.ReplyToMessageID))
	if r.ReplyMarkup != nil {
		form.JSON("reply_markup", r.ReplyMarkup)
	}
	return form.Build("sendPhoto")
}

func (r *SendPhoto) Deserialize(resp wire.HTTPResponse) (types.MessageOrChannelPost, error) {
	return DecodeJSON[types.MessageOrChannelPost](resp)
}

// SendDocument sends a general file.
type SendDocument struct {
	ChatID              types.ChatRef
	Document            InputFile
	Caption             string
	ParseMode           ParseMode
	DisableNotification bool
	ReplyToMessageID    types.MessageID
	ReplyMarkup         ReplyMarkup
}

// NewSendDocument sends document to chat.
func NewSendDocument(chat types.ToChatRef, document InputFile) *SendDocument {
	return &SendDocument{ChatID: chat.ChatRef(), Document: document}
}

// WithCaption sets the document caption.
func (r *SendDocument) WithCaption(caption string) *SendDocument {
	r.Caption = caption
	return r
}

func (r *SendDocument) Serialize() (wire.HTTPRequest, error) {
	form := &Form{}
	form.Text("chat_id", r.ChatID.String()).
		File("document", r.Document).
		OptionalText("caption", r.Caption).
		OptionalText("parse_mode", string(r.ParseMode)).
		WhenTrue("disable_notification", r.DisableNotification).
		OptionalInt("reply_to_message_id", int64(r.ReplyToMessageID))
	if r.ReplyMarkup != nil {
		form.JSON("reply_markup", r.ReplyMarkup)
	}
	return form.Build("sendDocument")
}

func (r *SendDocument) Deserialize(resp wire.HTTPResponse) (types.MessageOrChannelPost, error) {
	return DecodeJSON[types.MessageOrChannelPost](resp)
}
