package requests

import (
	"github.com/codex-k8s/telegram-bot/telegram/types"
	"github.com/codex-k8s/telegram-bot/telegram/wire"
)

// GetMe returns the bot's own user.
type GetMe struct{}

func (GetMe) Serialize() (wire.HTTPRequest, error) {
	return SerializeEmpty("getMe"), nil
}

func (GetMe) Deserialize(resp wire.HTTPResponse) (types.User, error) {
	return DecodeJSON[types.User](resp)
}

// SendMessage sends a text message.
type SendMessage struct {
	ChatID                types.ChatRef   `json:"chat_id"`
	Text                  string          `json:"text"`
	ParseMode             ParseMode       `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool            `json:"disable_web_page_preview,omitempty"`
	DisableNotification   bool            `json:"disable_notification,omitempty"`
	ReplyToMessageID      types.MessageID `json:"reply_to_message_id,omitempty"`
	ReplyMarkup           ReplyMarkup     `json:"reply_markup,omitempty"`
}

// NewSendMessage sends text to chat.
func NewSendMessage(chat types.ToChatRef, text string) *SendMessage {
	return &SendMessage{ChatID: chat.ChatRef(), Text: text}
}

// WithParseMode sets the text formatting mode.
func (r *SendMessage) WithParseMode(mode ParseMode) *SendMessage {
	r.ParseMode = mode
	return r
}

// WithReplyMarkup attaches a keyboard.
func (r *SendMessage) WithReplyMarkup(markup ReplyMarkup) *SendMessage {
	r.ReplyMarkup = markup
	return r
}

// WithReplyTo makes the message a reply.
func (r *SendMessage) WithReplyTo(id types.MessageID) *SendMessage {
	r.ReplyToMessageID = id
	return r
}

func (r *SendMessage) Serialize() (wire.HTTPRequest, error) {
	return SerializeJSON("sendMessage", r)
}

func (r *SendMessage) Deserialize(resp wire.HTTPResponse) (types.MessageOrChannelPost, error) {
	return DecodeJSON[types.MessageOrChannelPost](resp)
}

// ForwardMessage forwards a message between chats.
type ForwardMessage struct {
	ChatID              types.ChatRef   `json:"chat_id"`
	FromChatID          types.ChatRef   `json:"from_chat_id"`
	MessageID           types.MessageID `json:"message_id"`
	DisableNotification bool            `json:"disable_notification,omitempty"`
}

// NewForwardMessage forwards message id of from to chat.
func NewForwardMessage(chat, from types.ToChatRef, id types.MessageID) *ForwardMessage {
	return &ForwardMessage{ChatID: chat.ChatRef(), FromChatID: from.ChatRef(), MessageID: id}
}

func (r *ForwardMessage) Serialize() (wire.HTTPRequest, error) {
	return SerializeJSON("forwardMessage", r)
}

func (r *ForwardMessage) Deserialize(resp wire.HTTPResponse) (types.MessageOrChannelPost, error) {
	return DecodeJSON[types.MessageOrChannelPost](resp)
}

// EditMessageText replaces the text of a sent message.
type EditMessageText struct {
	ChatID                types.ChatRef   `json:"chat_id"`
	MessageID             types.MessageID `json:"message_id"`
	Text                  string          `json:"text"`
	ParseMode             ParseMode       `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool            `json:"disable_web_page_preview,omitempty"`
	ReplyMarkup           ReplyMarkup     `json:"reply_markup,omitempty"`
}

// NewEditMessageText sets the text of message id in chat.
func NewEditMessageText(chat types.ToChatRef, id types.MessageID, text string) *EditMessageText {
	return &EditMessageText{ChatID: chat.ChatRef(), MessageID: id, Text: text}
}

func (r *EditMessageText) Serialize() (wire.HTTPRequest, error) {
	return SerializeJSON("editMessageText", r)
}

func (r *EditMessageText) Deserialize(resp wire.HTTPResponse) (types.MessageOrChannelPost, error) {
	return DecodeJSON[types.MessageOrChannelPost](resp)
}

// DeleteMessage deletes a message.
type DeleteMessage struct {
	ChatID    types.ChatRef   `json:"chat_id"`
	MessageID types.MessageID `json:"message_id"`
}

// NewDeleteMessage deletes message id in chat.
func NewDeleteMessage(chat types.ToChatRef, id types.MessageID) *DeleteMessage {
	return &DeleteMessage{ChatID: chat.ChatRef(), MessageID: id}
}

func (r *DeleteMessage) Serialize() (wire.HTTPRequest, error) {
	return SerializeJSON("deleteMessage", r)
}

func (r *DeleteMessage) Deserialize(resp wire.HTTPResponse) (struct{}, error) {
	return DecodeAck(resp)
}

// ChatAction is a status shown to the chat while the bot works.
type ChatAction string

const (
	ActionTyping         ChatAction = "typing"
	ActionUploadPhoto    ChatAction = "upload_photo"
	ActionUploadDocument ChatAction = "upload_document"
	ActionRecordVoice    ChatAction = "record_voice"
	ActionFindLocation   ChatAction = "find_location"
)

// SendChatAction shows action in chat for a few seconds.
type SendChatAction struct {
	ChatID types.ChatRef `json:"chat_id"`
	Action ChatAction    `json:"action"`
}

// NewSendChatAction shows action in chat.
func NewSendChatAction(chat types.ToChatRef, action ChatAction) *SendChatAction {
	return &SendChatAction{ChatID: chat.ChatRef(), Action: action}
}

func (r *SendChatAction) Serialize() (wire.HTTPRequest, error) {
	return SerializeJSON("sendChatAction", r)
}

func (r *SendChatAction) Deserialize(resp wire.HTTPResponse) (struct{}, error) {
	return DecodeAck(resp)
}

// AnswerCallbackQuery acknowledges an inline button press.
type AnswerCallbackQuery struct {
	CallbackQueryID types.CallbackQueryID `json:"callback_query_id"`
	Text            string                `json:"text,omitempty"`
	ShowAlert       bool                  `json:"show_alert,omitempty"`
	URL             string                `json:"url,omitempty"`
	CacheTime       int                   `json:"cache_time,omitempty"`
}

// NewAnswerCallbackQuery acknowledges query id.
func NewAnswerCallbackQuery(id types.CallbackQueryID) *AnswerCallbackQuery {
	return &AnswerCallbackQuery{CallbackQueryID: id}
}

// WithText sets the notification shown to the user.
func (r *AnswerCallbackQuery) WithText(text string) *AnswerCallbackQuery {
	r.Text = text
	return r
}

func (r *AnswerCallbackQuery) Serialize() (wire.HTTPRequest, error) {
	return SerializeJSON("answerCallbackQuery", r)
}

func (r *AnswerCallbackQuery) Deserialize(resp wire.HTTPResponse) (struct{}, error) {
	return DecodeAck(resp)
}
