package telegram

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"productivity-hub/internal/model"
	"productivity-hub/internal/task"
	pkgResponse "productivity-hub/pkg/response"
	pkgTelegram "productivity-hub/pkg/telegram"
)

const (
	secretHeader   = "X-Telegram-Bot-Api-Secret-Token"
	listLimit      = 10
	processTimeout = 15 * time.Second
	dueDateLayout  = "Mon Jan 2"

	commandStart = "/start"
	commandHelp  = "/help"
	commandList  = "/list"
	commandDone  = "/done"
)

const helpMessage = "*Quick add*\n\nSend any text to add a task. Inline directives:\n" +
	"• `P1` `P2` `P3` set high, medium or low priority\n" +
	"• `12/25` sets the due date (next occurrence)\n\n" +
	"_Example:_ `Pay rent P1 3/1`\n\n" +
	"*Commands*\n/list shows open tasks\n/done <id> completes a task"

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	if h.secret != "" && subtle.ConstantTimeCompare([]byte(c.GetHeader(secretHeader)), []byte(h.secret)) != 1 {
		h.l.Warnf(ctx, "telegram handler: rejected update with bad secret token")
		pkgResponse.Unauthorized(c)
		return
	}

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Non-message updates (edits, polls, channel posts) are acknowledged and dropped.
	if update.Message == nil || update.Message.Chat == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	pctx, cancel := context.WithTimeout(ctx, processTimeout)
	defer cancel()

	if err := h.processMessage(pctx, update.Message); err != nil {
		h.l.Errorf(ctx, "telegram handler: processMessage failed: %v", err)
	}

	// Always 200 so Telegram does not redeliver the update.
	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}

	sc := scopeFromMessage(msg)
	command, arg := splitCommand(text)

	switch command {
	case commandStart, commandHelp:
		return h.bot.SendMessageWithMode(ctx, msg.Chat.ID, helpMessage, pkgTelegram.ParseModeMarkdown)
	case commandList:
		return h.handleList(ctx, sc, msg.Chat.ID)
	case commandDone:
		return h.handleDone(ctx, sc, msg.Chat.ID, arg)
	}

	return h.handleQuickAdd(ctx, sc, msg.Chat.ID, text)
}

func (h *handler) handleQuickAdd(ctx context.Context, sc model.Scope, chatID int64, text string) error {
	out, err := h.uc.Create(ctx, sc, task.CreateInput{RawText: text})
	if err != nil {
		h.l.Warnf(ctx, "telegram handler: Create failed: %v", err)
		return h.bot.SendMessage(ctx, chatID, errorMessage(err))
	}

	t := out.Task
	var b strings.Builder
	fmt.Fprintf(&b, "Added *%s*\nPriority: %s", escapeMarkdown(t.Title), t.Priority)
	if t.DueDate != nil {
		fmt.Fprintf(&b, "\nDue: %s", t.DueDate.Format(dueDateLayout))
	}
	if t.CalendarLink != "" {
		fmt.Fprintf(&b, "\n[Open in Calendar](%s)", t.CalendarLink)
	}
	fmt.Fprintf(&b, "\nID: `%s`", t.ID)

	return h.bot.SendMessageWithMode(ctx, chatID, b.String(), pkgTelegram.ParseModeMarkdown)
}

func (h *handler) handleList(ctx context.Context, sc model.Scope, chatID int64) error {
	open := false
	out, err := h.uc.List(ctx, sc, task.ListInput{Completed: &open, Limit: listLimit})
	if err != nil {
		h.l.Warnf(ctx, "telegram handler: List failed: %v", err)
		return h.bot.SendMessage(ctx, chatID, errorMessage(err))
	}
	if len(out.Tasks) == 0 {
		return h.bot.SendMessage(ctx, chatID, "No open tasks. Send me some text to add one.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*Open tasks* (%d)\n\n", out.Total)
	for i, t := range out.Tasks {
		fmt.Fprintf(&b, "%d. *%s* [%s]", i+1, escapeMarkdown(t.Title), t.Priority)
		if t.DueDate != nil {
			fmt.Fprintf(&b, " due %s", t.DueDate.Format(dueDateLayout))
		}
		fmt.Fprintf(&b, "\n   `%s`\n", t.ID)
	}
	if out.Total > len(out.Tasks) {
		fmt.Fprintf(&b, "\n…and %d more", out.Total-len(out.Tasks))
	}

	return h.bot.SendMessageWithMode(ctx, chatID, b.String(), pkgTelegram.ParseModeMarkdown)
}

func (h *handler) handleDone(ctx context.Context, sc model.Scope, chatID int64, id string) error {
	if id == "" {
		return h.bot.SendMessage(ctx, chatID, "Usage: /done <id>")
	}

	out, err := h.uc.Toggle(ctx, sc, id, true)
	if err != nil {
		h.l.Warnf(ctx, "telegram handler: Toggle failed: %v", err)
		return h.bot.SendMessage(ctx, chatID, errorMessage(err))
	}
	return h.bot.SendMessageWithMode(ctx, chatID, fmt.Sprintf("Done: *%s*", escapeMarkdown(out.Task.Title)), pkgTelegram.ParseModeMarkdown)
}

// scopeFromMessage identifies the sender; channel posts without From fall back to the chat.
func scopeFromMessage(msg *pkgTelegram.Message) model.Scope {
	if msg.From == nil {
		return model.Scope{UserID: fmt.Sprintf("telegram_chat_%d", msg.Chat.ID)}
	}
	return model.Scope{
		UserID:   fmt.Sprintf("telegram_%d", msg.From.ID),
		Username: msg.From.Username,
	}
}

// splitCommand returns the command (without any @botname suffix) and its argument.
// Plain text yields an empty command.
func splitCommand(text string) (string, string) {
	if !strings.HasPrefix(text, "/") {
		return "", ""
	}
	command, arg, _ := strings.Cut(text, " ")
	command, _, _ = strings.Cut(command, "@")
	return strings.ToLower(command), strings.TrimSpace(arg)
}

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
