// Package bot is a demo update handler built on the telegram client.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/codex-k8s/telegram-bot/internal/i18n"
	"github.com/codex-k8s/telegram-bot/telegram"
	"github.com/codex-k8s/telegram-bot/telegram/requests"
	"github.com/codex-k8s/telegram-bot/telegram/types"
)

const (
	// ActionPing answers the callback with a notification.
	ActionPing = "ping"
	// ActionAbout replaces the greeting with the about text.
	ActionAbout = "about"
	// ActionDelete deletes the message whose id is the payload.
	ActionDelete = "delete"
)

// Handler echoes messages and serves the /start keyboard.
type Handler struct {
	bot         *telegram.Bot
	messages    map[string]i18n.Messages
	defaultLang string
	chatID      types.ChatID
	log         *slog.Logger
}

// NewHandler creates a new update handler. A zero chatID accepts every chat.
func NewHandler(bot *telegram.Bot, messages map[string]i18n.Messages, defaultLang string, chatID types.ChatID, log *slog.Logger) *Handler {
	return &Handler{
		bot:         bot,
		messages:    messages,
		defaultLang: defaultLang,
		chatID:      chatID,
		log:         log,
	}
}

// Run processes updates until context cancellation or channel close.
func (h *Handler) Run(ctx context.Context, updates <-chan types.Update) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			h.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate processes a single update.
func (h *Handler) HandleUpdate(ctx context.Context, update types.Update) {
	switch kind := update.Kind.(type) {
	case types.MessageUpdate:
		h.handleMessage(ctx, kind.Message)
	case types.CallbackQueryUpdate:
		h.handleCallback(ctx, kind.Query)
	case types.UpdateError:
		h.log.Warn("Skipping malformed update", "update_id", update.ID, "error", kind.Description)
	default:
		h.log.Debug("Ignoring update", "update_id", update.ID, "kind", fmt.Sprintf("%T", kind))
	}
}

func (h *Handler) handleMessage(ctx context.Context, message types.Message) {
	chat := message.Chat.ChatID()
	if !h.allowedChat(chat) {
		return
	}
	msg := h.messageFor(message.From.LanguageCode)

	switch kind := message.Kind.(type) {
	case types.TextKind:
		if isCommand(kind, "start") {
			h.greet(ctx, chat, message.From, msg)
			return
		}
		h.echoText(ctx, message, kind, msg)
	case types.PhotoKind:
		if len(kind.Data) == 0 {
			return
		}
		send(ctx, h, "sendChatAction", requests.NewSendChatAction(chat, requests.ActionUploadPhoto))
		largest := kind.Data[len(kind.Data)-1]
		req := requests.NewSendPhoto(chat, requests.FileRef(string(largest.FileID))).WithCaption(kind.Caption)
		req.ReplyToMessageID = message.ID
		send(ctx, h, "sendPhoto", req)
	case types.DocumentKind:
		send(ctx, h, "sendChatAction", requests.NewSendChatAction(chat, requests.ActionUploadDocument))
		req := requests.NewSendDocument(chat, requests.FileRef(string(kind.Data.FileID))).WithCaption(kind.Caption)
		req.ReplyToMessageID = message.ID
		send(ctx, h, "sendDocument", req)
	default:
		send(ctx, h, "sendMessage", requests.NewSendMessage(chat, msg.UnsupportedMessage).WithReplyTo(message.ID))
	}
}

func (h *Handler) greet(ctx context.Context, chat types.ChatID, from types.User, msg i18n.Messages) {
	text := fmt.Sprintf(msg.StartGreeting, EscapeHTML(from.FirstName))
	keyboard := requests.InlineKeyboard(
		requests.InlineKeyboardRow(
			requests.NewInlineKeyboardButton(msg.PingButton).WithCallbackData(CallbackData(ActionPing, "")),
			requests.NewInlineKeyboardButton(msg.AboutButton).WithCallbackData(CallbackData(ActionAbout, "")),
		),
	)
	send(ctx, h, "sendMessage", requests.NewSendMessage(chat, text).
		WithParseMode(requests.ModeHTML).
		WithReplyMarkup(keyboard))
}

func (h *Handler) echoText(ctx context.Context, message types.Message, kind types.TextKind, msg i18n.Messages) {
	text := EscapeHTML(kind.Data)
	if message.Forward != nil {
		note := fmt.Sprintf(msg.ForwardedNote, forwardSource(message.Forward.From))
		text = "<i>" + EscapeHTML(note) + "</i>\n" + text
	}
	send(ctx, h, "sendMessage", requests.NewSendMessage(message.Chat.ChatID(), text).
		WithParseMode(requests.ModeHTML).
		WithReplyTo(message.ID))
}

func (h *Handler) handleCallback(ctx context.Context, query types.CallbackQuery) {
	msg := h.messageFor(query.From.LanguageCode)
	if query.Message == nil {
		h.answerCallback(ctx, query, "")
		return
	}
	chat := query.Message.Chat.ChatID()
	if !h.allowedChat(chat) {
		h.answerCallback(ctx, query, msg.InvalidChat)
		return
	}

	action, payload := parseCallback(query.Data)
	switch action {
	case ActionPing:
		h.answerCallback(ctx, query, msg.Pong)
	case ActionAbout:
		del := CallbackData(ActionDelete, query.Message.ID.String())
		req := requests.NewEditMessageText(chat, query.Message.ID, EscapeMarkdownV2(msg.AboutText))
		req.ParseMode = requests.ModeMarkdownV2
		req.ReplyMarkup = requests.InlineKeyboard(
			requests.InlineKeyboardRow(
				requests.NewInlineKeyboardButton(msg.DeleteButton).WithCallbackData(del),
			),
		)
		send(ctx, h, "editMessageText", req)
		h.answerCallback(ctx, query, "")
	case ActionDelete:
		id, err := strconv.ParseInt(payload, 10, 64)
		if err != nil || id <= 0 {
			h.answerCallback(ctx, query, msg.InvalidAction)
			return
		}
		send(ctx, h, "deleteMessage", requests.NewDeleteMessage(chat, types.MessageID(id)))
		h.answerCallback(ctx, query, "")
	default:
		h.answerCallback(ctx, query, msg.InvalidAction)
	}
}

func (h *Handler) answerCallback(ctx context.Context, query types.CallbackQuery, text string) {
	req := requests.NewAnswerCallbackQuery(query.ID)
	if strings.TrimSpace(text) != "" {
		req.WithText(text)
	}
	send(ctx, h, "answerCallbackQuery", req)
}

func (h *Handler) allowedChat(chatID types.ChatID) bool {
	return h.chatID == 0 || chatID == h.chatID
}

func (h *Handler) messageFor(lang string) i18n.Messages {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexByte(lang, '-'); i > 0 {
		lang = lang[:i]
	}
	if msg, ok := h.messages[lang]; ok {
		return msg
	}
	if msg, ok := h.messages[h.defaultLang]; ok {
		return msg
	}
	if msg, ok := h.messages["en"]; ok {
		return msg
	}
	return i18n.Messages{}
}

// send performs req and logs failures, reporting whether it succeeded.
func send[T any](ctx context.Context, h *Handler, method string, req requests.Request[T]) (T, bool) {
	result, err := telegram.Send(ctx, h.bot, req)
	if err == nil {
		return result, true
	}
	if apiErr, ok := requests.AsAPIError(err); ok {
		if wait, ok := apiErr.RetryAfter(); ok {
			h.log.Warn("Telegram flood control", "method", method, "retry_after", wait)
			return result, false
		}
		if id, ok := apiErr.MigrateToChatID(); ok {
			h.log.Warn("Chat migrated to supergroup", "method", method, "migrate_to_chat_id", int64(id))
			return result, false
		}
	}
	h.log.Error("Telegram request failed", "method", method, "error", err)
	return result, false
}

func isCommand(text types.TextKind, name string) bool {
	for _, entity := range text.Entities {
		if entity.Kind != types.EntityBotCommand || entity.Offset != 0 {
			continue
		}
		command, _, _ := strings.Cut(entity.Span(text.Data), "@")
		return command == "/"+name
	}
	return false
}

func forwardSource(from types.ForwardFrom) string {
	switch f := from.(type) {
	case types.ForwardFromUser:
		return strings.TrimSpace(f.User.FirstName + " " + f.User.LastName)
	case types.ForwardFromChannel:
		return f.Channel.Title
	case types.ForwardFromHiddenUser:
		return f.SenderName
	default:
		return ""
	}
}
