package telegram_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"productivity-hub/internal/task/delivery/telegram"
	"productivity-hub/internal/task/repository/memory"
	"productivity-hub/internal/task/usecase"
	"productivity-hub/pkg/datemath"
	pkgTelegram "productivity-hub/pkg/telegram"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

// telegramAPI records every sendMessage call.
type telegramAPI struct {
	mu   sync.Mutex
	sent []pkgTelegram.SendMessageRequest
}

func (a *telegramAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req pkgTelegram.SendMessageRequest
	json.NewDecoder(r.Body).Decode(&req)
	a.mu.Lock()
	a.sent = append(a.sent, req)
	a.mu.Unlock()
	w.Write([]byte(`{"ok": true}`))
}

func (a *telegramAPI) last(t *testing.T) pkgTelegram.SendMessageRequest {
	t.Helper()
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.sent) == 0 {
		t.Fatal("no message sent")
	}
	return a.sent[len(a.sent)-1]
}

func (a *telegramAPI) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.sent)
}

func setup(t *testing.T, secret string) (*gin.Engine, *telegramAPI) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := &telegramAPI{}
	ts := httptest.NewServer(api)
	t.Cleanup(ts.Close)

	bot := pkgTelegram.NewBot("test")
	bot.SetAPIURL(ts.URL)

	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	clock, _ := datemath.NewCalendar("UTC", datemath.WithClock(func() time.Time { return now }))
	l := &mockLogger{}
	uc := usecase.New(l, memory.New(l), clock, nil, usecase.Config{})

	r := gin.New()
	r.POST("/webhook/telegram", telegram.New(l, uc, bot, secret).HandleWebhook)
	return r, api
}

func send(r *gin.Engine, text string, headers map[string]string) *httptest.ResponseRecorder {
	update := pkgTelegram.Update{
		UpdateID: 1,
		Message: &pkgTelegram.Message{
			MessageID: 10,
			From:      &pkgTelegram.User{ID: 42, Username: "tester"},
			Chat:      &pkgTelegram.Chat{ID: 42, Type: "private"},
			Text:      text,
		},
	}
	body, _ := json.Marshal(update)
	req := httptest.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleWebhook(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantReply []string
		wantMode  string
	}{
		{name: "Start", text: "/start", wantReply: []string{"Quick add", "/done"}, wantMode: pkgTelegram.ParseModeMarkdown},
		{name: "Help with bot suffix", text: "/help@hub_bot", wantReply: []string{"P1"}, wantMode: pkgTelegram.ParseModeMarkdown},
		{name: "Quick add", text: "Pay rent P1 3/15", wantReply: []string{"Added *Pay rent*", "Priority: high", "Due: Fri Mar 15"}, wantMode: pkgTelegram.ParseModeMarkdown},
		{name: "Quick add escapes markdown", text: "fix my_func", wantReply: []string{`fix my\_func`}},
		{name: "Only directives", text: "P2 4/1", wantReply: []string{"nothing left for a title"}},
		{name: "Empty list", text: "/list", wantReply: []string{"No open tasks"}},
		{name: "Done without id", text: "/done", wantReply: []string{"Usage: /done <id>"}},
		{name: "Done unknown id", text: "/done nope", wantReply: []string{"No task with that ID"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, api := setup(t, "")

			w := send(r, tt.text, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("status got = %d, want 200", w.Code)
			}

			msg := api.last(t)
			if msg.ChatID != 42 {
				t.Errorf("chat_id got = %d", msg.ChatID)
			}
			for _, want := range tt.wantReply {
				if !strings.Contains(msg.Text, want) {
					t.Errorf("reply %q does not contain %q", msg.Text, want)
				}
			}
			if tt.wantMode != "" && msg.ParseMode != tt.wantMode {
				t.Errorf("parse_mode got = %q, want %q", msg.ParseMode, tt.wantMode)
			}
		})
	}
}

func TestHandleWebhookListAndDone(t *testing.T) {
	r, api := setup(t, "")

	send(r, "Buy milk", nil)
	send(r, "Call mom P1", nil)

	send(r, "/list", nil)
	list := api.last(t).Text
	if !strings.Contains(list, "Open tasks* (2)") || !strings.Contains(list, "Buy milk") || !strings.Contains(list, "Call mom") {
		t.Fatalf("unexpected list reply: %q", list)
	}

	// Pull the first ID out of the list reply: IDs are wrapped in backticks.
	start := strings.Index(list, "`")
	end := strings.Index(list[start+1:], "`")
	id := list[start+1 : start+1+end]

	send(r, "/done "+id, nil)
	if reply := api.last(t).Text; !strings.HasPrefix(reply, "Done: ") {
		t.Fatalf("unexpected done reply: %q", reply)
	}

	send(r, "/list", nil)
	if list := api.last(t).Text; !strings.Contains(list, "Open tasks* (1)") {
		t.Errorf("task not completed: %q", list)
	}
}

func TestHandleWebhookSecret(t *testing.T) {
	r, api := setup(t, "s3cret")

	w := send(r, "Buy milk", map[string]string{"X-Telegram-Bot-Api-Secret-Token": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status got = %d, want 401", w.Code)
	}
	if api.count() != 0 {
		t.Errorf("message sent for rejected update")
	}

	w = send(r, "Buy milk", map[string]string{"X-Telegram-Bot-Api-Secret-Token": "s3cret"})
	if w.Code != http.StatusOK || api.count() != 1 {
		t.Errorf("status got = %d, sent %d", w.Code, api.count())
	}
}

func TestHandleWebhookIgnoresNonMessages(t *testing.T) {
	r, api := setup(t, "")

	req := httptest.NewRequest(http.MethodPost, "/webhook/telegram", strings.NewReader(`{"update_id": 7}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "ignored") {
		t.Errorf("got %d %s", w.Code, w.Body.String())
	}
	if api.count() != 0 {
		t.Error("unexpected reply")
	}

	req = httptest.NewRequest(http.MethodPost, "/webhook/telegram", strings.NewReader(`{not json`))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed body status got = %d, want 400", w.Code)
	}
}
