package bot

import "strings"

// EscapeHTML escapes text for Telegram HTML mode.
func EscapeHTML(value string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return replacer.Replace(value)
}

// EscapeMarkdownV2 escapes text for Telegram MarkdownV2 mode.
func EscapeMarkdownV2(value string) string {
	if value == "" {
		return value
	}
	var builder strings.Builder
	builder.Grow(len(value) * 2)
	for _, r := range value {
		if strings.ContainsRune("_*[]()~`>#+-=|{}.!\\", r) {
			builder.WriteByte('\\')
		}
		builder.WriteRune(r)
	}
	return builder.String()
}

// CallbackData builds callback data for an action.
func CallbackData(action, payload string) string {
	if payload == "" {
		return action
	}
	return action + ":" + payload
}

func parseCallback(data string) (string, string) {
	action, payload, _ := strings.Cut(data, ":")
	return action, payload
}
