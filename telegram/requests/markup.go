package requests

// ParseMode selects how message text is formatted.
type ParseMode string

const (
	ModeMarkdown   ParseMode = "Markdown"
	ModeMarkdownV2 ParseMode = "MarkdownV2"
	ModeHTML       ParseMode = "HTML"
)

// ReplyMarkup is one of InlineKeyboardMarkup, ReplyKeyboardMarkup, ReplyKeyboardRemove or ForceReply.
type ReplyMarkup interface {
	replyMarkup()
}

// InlineKeyboardButton is a button attached to a message.
type InlineKeyboardButton struct {
	Text                         string `json:"text"`
	URL                          string `json:"url,omitempty"`
	CallbackData                 string `json:"callback_data,omitempty"`
	SwitchInlineQuery            string `json:"switch_inline_query,omitempty"`
	SwitchInlineQueryCurrentChat string `json:"switch_inline_query_current_chat,omitempty"`
}

// InlineKeyboardMarkup is an inline keyboard.
type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

// KeyboardButton is a button of a custom reply keyboard.
type KeyboardButton struct {
	Text            string `json:"text"`
	RequestContact  bool   `json:"request_contact,omitempty"`
	RequestLocation bool   `json:"request_location,omitempty"`
}

// ReplyKeyboardMarkup is a custom reply keyboard.
type ReplyKeyboardMarkup struct {
	Keyboard        [][]KeyboardButton `json:"keyboard"`
	ResizeKeyboard  bool               `json:"resize_keyboard,omitempty"`
	OneTimeKeyboard bool               `json:"one_time_keyboard,omitempty"`
	Selective       bool               `json:"selective,omitempty"`
}

// ReplyKeyboardRemove hides a custom keyboard.
type ReplyKeyboardRemove struct {
	RemoveKeyboard True `json:"remove_keyboard"`
	Selective      bool `json:"selective,omitempty"`
}

// ForceReply asks the client to show a reply interface.
type ForceReply struct {
	ForceReply True `json:"force_reply"`
	Selective  bool `json:"selective,omitempty"`
}

func (*InlineKeyboardMarkup) replyMarkup() {}
func (*ReplyKeyboardMarkup) replyMarkup() {}
func (*ReplyKeyboardRemove) replyMarkup() {}
func (*ForceReply) replyMarkup() {}

// InlineKeyboard builds an inline keyboard from rows.
func InlineKeyboard(rows ...[]InlineKeyboardButton) *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: rows}
}

// InlineKeyboardRow groups buttons into one row.
func InlineKeyboardRow(buttons ...InlineKeyboardButton) []InlineKeyboardButton {
	return buttons
}

// NewInlineKeyboardButton creates a button with the given label.
func NewInlineKeyboardButton(text string) InlineKeyboardButton {
	return InlineKeyboardButton{Text: text}
}

// WithCallbackData sets the data sent back in a callback query.
func (b InlineKeyboardButton) WithCallbackData(data string) InlineKeyboardButton {
	b.CallbackData = data
	return b
}

// WithURL makes the button open url.
func (b InlineKeyboardButton) WithURL(url string) InlineKeyboardButton {
	b.URL = url
	return b
}

// Keyboard builds a custom reply keyboard from rows.
func Keyboard(rows ...[]KeyboardButton) *ReplyKeyboardMarkup {
	return &ReplyKeyboardMarkup{Keyboard: rows}
}

// KeyboardRow groups reply keyboard buttons into one row.
func KeyboardRow(buttons ...KeyboardButton) []KeyboardButton {
	return buttons
}

// RemoveKeyboard hides the current custom keyboard.
func RemoveKeyboard() *ReplyKeyboardRemove {
	return &ReplyKeyboardRemove{}
}

// ForceReplyMarkup asks the client to reply.
func ForceReplyMarkup() *ForceReply {
	return &ForceReply{}
}
