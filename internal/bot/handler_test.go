package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/codex-k8s/telegram-bot/internal/i18n"
	"github.com/codex-k8s/telegram-bot/telegram"
	"github.com/codex-k8s/telegram-bot/telegram/types"
)

type apiCall struct {
	Method string
	Fields map[string]any
}

// fakeAPI records Bot API calls and answers them with canned results.
type fakeAPI struct {
	mu     sync.Mutex
	calls  []apiCall
	failed string
}

const sentMessage = `{"ok":true,"result":{"message_id":100,"date":1,"chat":{"id":1,"type":"private","first_name":"Ann"},"from":{"id":9,"is_bot":true,"first_name":"Bot"},"text":"ok"}}`

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
	fields := map[string]any{}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		_ = r.ParseMultipartForm(1 << 20)
		for k, v := range r.MultipartForm.Value {
			fields[k] = v[0]
		}
	} else {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &fields)
	}

	f.mu.Lock()
	f.calls = append(f.calls, apiCall{Method: method, Fields: fields})
	failed := f.failed
	f.mu.Unlock()

	switch {
	case method == failed:
		_, _ = io.WriteString(w, `{"ok":false,"description":"Too Many Requests: retry later","parameters":{"retry_after":7}}`)
	case method == "sendMessage" || method == "sendPhoto" || method == "sendDocument" || method == "editMessageText":
		_, _ = io.WriteString(w, sentMessage)
	default:
		_, _ = io.WriteString(w, `{"ok":true,"result":true}`)
	}
}

func (f *fakeAPI) methods() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.Method)
	}
	return out
}

func (f *fakeAPI) last() apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func newTestHandler(t *testing.T, chatID types.ChatID) (*Handler, *fakeAPI, *bytes.Buffer) {
	t.Helper()
	api := &fakeAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	client, err := telegram.New("T", telegram.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatal(err)
	}
	messages, err := i18n.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewHandler(client, messages, "en", chatID, log), api, &logs
}

func decodeUpdate(t *testing.T, body string) types.Update {
	t.Helper()
	var u types.Update
	if err := json.Unmarshal([]byte(body), &u); err != nil {
		t.Fatal(err)
	}
	return u
}

func TestHandleMessage(t *testing.T) {
	tests := []struct {
		name        string
		update      string
		wantMethods []string
		wantFields  map[string]any
	}{
		{
			name:        "start command",
			update:      `{"update_id":1,"message":{"message_id":5,"date":1,"chat":{"id":1,"type":"private","first_name":"Ann"},"from":{"id":1,"is_bot":false,"first_name":"Ann"},"text":"/start","entities":[{"type":"bot_command","offset":0,"length":6}]}}`,
			wantMethods: []string{"sendMessage"},
			wantFields: map[string]any{
				"chat_id":    float64(1),
				"text":       "Hi, Ann! Send me anything and I will send it back.",
				"parse_mode": "HTML",
				"reply_markup": map[string]any{"inline_keyboard": []any{[]any{
					map[string]any{"text": "Ping", "callback_data": "ping"},
					map[string]any{"text": "About", "callback_data": "about"},
				}}},
			},
		},
		{
			name:        "echo escapes html",
			update:      `{"update_id":2,"message":{"message_id":6,"date":1,"chat":{"id":1,"type":"private","first_name":"Ann"},"from":{"id":1,"is_bot":false,"first_name":"Ann"},"text":"a<b"}}`,
			wantMethods: []string{"sendMessage"},
			wantFields: map[string]any{
				"chat_id":             float64(1),
				"text":                "a&lt;b",
				"parse_mode":          "HTML",
				"reply_to_message_id": float64(6),
			},
		},
		{
			name:        "forwarded from hidden user in russian",
			update:      `{"update_id":3,"message":{"message_id":7,"date":1,"chat":{"id":1,"type":"private","first_name":"Ann"},"from":{"id":1,"is_bot":false,"first_name":"Ann","language_code":"ru-RU"},"forward_date":1,"forward_sender_name":"Secret","text":"hi"}}`,
			wantMethods: []string{"sendMessage"},
			wantFields: map[string]any{
				"chat_id":             float64(1),
				"text":                "<i>Переслано от Secret</i>\nhi",
				"parse_mode":          "HTML",
				"reply_to_message_id": float64(7),
			},
		},
		{
			name:        "photo echoed by file id",
			update:      `{"update_id":4,"message":{"message_id":8,"date":1,"chat":{"id":1,"type":"private","first_name":"Ann"},"from":{"id":1,"is_bot":false,"first_name":"Ann"},"photo":[{"file_id":"small","width":90,"height":90},{"file_id":"big","width":800,"height":800}],"caption":"cat"}}`,
			wantMethods: []string{"sendChatAction", "sendPhoto"},
			wantFields: map[string]any{
				"chat_id":             "1",
				"photo":               "big",
				"caption":             "cat",
				"reply_to_message_id": "8",
			},
		},
		{
			name:        "document echoed by file id",
			update:      `{"update_id":5,"message":{"message_id":9,"date":1,"chat":{"id":1,"type":"private","first_name":"Ann"},"from":{"id":1,"is_bot":false,"first_name":"Ann"},"document":{"file_id":"doc"}}}`,
			wantMethods: []string{"sendChatAction", "sendDocument"},
			wantFields: map[string]any{
				"chat_id":             "1",
				"document":            "doc",
				"reply_to_message_id": "9",
			},
		},
		{
			name:        "unsupported kind",
			update:      `{"update_id":6,"message":{"message_id":10,"date":1,"chat":{"id":1,"type":"private","first_name":"Ann"},"from":{"id":1,"is_bot":false,"first_name":"Ann"},"location":{"latitude":1,"longitude":2}}}`,
			wantMethods: []string{"sendMessage"},
			wantFields: map[string]any{
				"chat_id":             float64(1),
				"text":                "I can only echo text, photos and documents.",
				"reply_to_message_id": float64(10),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, api, _ := newTestHandler(t, 0)
			h.HandleUpdate(context.Background(), decodeUpdate(t, tt.update))

			if diff := cmp.Diff(tt.wantMethods, api.methods()); diff != "" {
				t.Fatalf("methods mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantFields, api.last().Fields); diff != "" {
				t.Errorf("fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandleCallback(t *testing.T) {
	const message = `"message":{"message_id":100,"date":1,"chat":{"id":1,"type":"private","first_name":"Ann"},"text":"Hi"}`
	tests := []struct {
		name        string
		update      string
		wantMethods []string
		check       func(t *testing.T, api *fakeAPI)
	}{
		{
			name:        "ping",
			update:      `{"update_id":1,"callback_query":{"id":"q1","from":{"id":1,"is_bot":false,"first_name":"Ann"},"chat_instance":"c",` + message + `,"data":"ping"}}`,
			wantMethods: []string{"answerCallbackQuery"},
			check: func(t *testing.T, api *fakeAPI) {
				want := map[string]any{"callback_query_id": "q1", "text": "Pong!"}
				if diff := cmp.Diff(want, api.last().Fields); diff != "" {
					t.Errorf("fields mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:        "about",
			update:      `{"update_id":2,"callback_query":{"id":"q2","from":{"id":1,"is_bot":false,"first_name":"Ann"},"chat_instance":"c",` + message + `,"data":"about"}}`,
			wantMethods: []string{"editMessageText", "answerCallbackQuery"},
			check: func(t *testing.T, api *fakeAPI) {
				edit := api.calls[0].Fields
				if edit["message_id"] != float64(100) || edit["parse_mode"] != "MarkdownV2" {
					t.Errorf("edit = %v", edit)
				}
				if text, _ := edit["text"].(string); !strings.HasSuffix(text, `client\.`) {
					t.Errorf("text not escaped: %q", text)
				}
				markup, _ := json.Marshal(edit["reply_markup"])
				if !strings.Contains(string(markup), `"callback_data":"delete:100"`) {
					t.Errorf("markup = %s", markup)
				}
			},
		},
		{
			name:        "delete",
			update:      `{"update_id":3,"callback_query":{"id":"q3","from":{"id":1,"is_bot":false,"first_name":"Ann"},"chat_instance":"c",` + message + `,"data":"delete:100"}}`,
			wantMethods: []string{"deleteMessage", "answerCallbackQuery"},
			check: func(t *testing.T, api *fakeAPI) {
				want := map[string]any{"chat_id": float64(1), "message_id": float64(100)}
				if diff := cmp.Diff(want, api.calls[0].Fields); diff != "" {
					t.Errorf("fields mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:        "invalid delete payload",
			update:      `{"update_id":4,"callback_query":{"id":"q4","from":{"id":1,"is_bot":false,"first_name":"Ann"},"chat_instance":"c",` + message + `,"data":"delete:x"}}`,
			wantMethods: []string{"answerCallbackQuery"},
			check: func(t *testing.T, api *fakeAPI) {
				if api.last().Fields["text"] != "Unknown action" {
					t.Errorf("fields = %v", api.last().Fields)
				}
			},
		},
		{
			name:        "inline message without message",
			update:      `{"update_id":5,"callback_query":{"id":"q5","from":{"id":1,"is_bot":false,"first_name":"Ann"},"chat_instance":"c","inline_message_id":"im","data":"ping"}}`,
			wantMethods: []string{"answerCallbackQuery"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, api, _ := newTestHandler(t, 0)
			h.HandleUpdate(context.Background(), decodeUpdate(t, tt.update))
			if diff := cmp.Diff(tt.wantMethods, api.methods()); diff != "" {
				t.Fatalf("methods mismatch (-want +got):\n%s", diff)
			}
			if tt.check != nil {
				tt.check(t, api)
			}
		})
	}
}

func TestHandlerRestrictsChat(t *testing.T) {
	h, api, _ := newTestHandler(t, 42)

	h.HandleUpdate(context.Background(), decodeUpdate(t, `{"update_id":1,"message":{"message_id":5,"date":1,"chat":{"id":1,"type":"private","first_name":"Ann"},"from":{"id":1,"is_bot":false,"first_name":"Ann"},"text":"hi"}}`))
	if got := api.methods(); len(got) != 0 {
		t.Fatalf("unexpected calls %v", got)
	}

	h.HandleUpdate(context.Background(), decodeUpdate(t, `{"update_id":2,"callback_query":{"id":"q","from":{"id":1,"is_bot":false,"first_name":"Ann"},"chat_instance":"c","message":{"message_id":1,"date":1,"chat":{"id":1,"type":"private","first_name":"Ann"},"text":"x"},"data":"ping"}}`))
	if api.last().Fields["text"] != "This chat is not allowed" {
		t.Errorf("fields = %v", api.last().Fields)
	}
}

func TestHandlerLogsRetryAfter(t *testing.T) {
	h, api, logs := newTestHandler(t, 0)
	api.failed = "sendMessage"

	h.HandleUpdate(context.Background(), decodeUpdate(t, `{"update_id":1,"message":{"message_id":5,"date":1,"chat":{"id":1,"type":"private","first_name":"Ann"},"from":{"id":1,"is_bot":false,"first_name":"Ann"},"text":"hi"}}`))
	if !strings.Contains(logs.String(), "retry_after=7s") {
		t.Errorf("logs = %s", logs.String())
	}
}

func TestHandlerSkipsBadUpdates(t *testing.T) {
	h, api, logs := newTestHandler(t, 0)

	h.HandleUpdate(context.Background(), decodeUpdate(t, `{"update_id":1,"message":{"message_id":5}}`))
	h.HandleUpdate(context.Background(), decodeUpdate(t, `{"update_id":2,"poll":{"id":"p","question":"?","options":[],"is_closed":false}}`))
	if got := api.methods(); len(got) != 0 {
		t.Errorf("unexpected calls %v", got)
	}
	if !strings.Contains(logs.String(), "Skipping malformed update") || !strings.Contains(logs.String(), "types.PollUpdate") {
		t.Errorf("logs = %s", logs.String())
	}
}

func TestRun(t *testing.T) {
	h, api, _ := newTestHandler(t, 0)
	updates := make(chan types.Update, 1)
	updates <- decodeUpdate(t, `{"update_id":1,"callback_query":{"id":"q","from":{"id":1,"is_bot":false,"first_name":"Ann"},"chat_instance":"c","data":"ping"}}`)
	close(updates)

	h.Run(context.Background(), updates)
	if diff := cmp.Diff([]string{"answerCallbackQuery"}, api.methods()); diff != "" {
		t.Errorf("methods mismatch (-want +got):\n%s", diff)
	}
}

func TestEscape(t *testing.T) {
	if got := EscapeHTML(`<a href="x">&</a>`); got != `&lt;a href=&quot;x&quot;&gt;&amp;&lt;/a&gt;` {
		t.Errorf("EscapeHTML() = %s", got)
	}
	if got := EscapeMarkdownV2("1.5-2!"); got != `1\.5\-2\!` {
		t.Errorf("EscapeMarkdownV2() = %s", got)
	}
}
