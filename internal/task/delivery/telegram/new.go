package telegram

import (
	"github.com/gin-gonic/gin"

	"productivity-hub/internal/task"
	pkgLog "productivity-hub/pkg/log"
	pkgTelegram "productivity-hub/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

type handler struct {
	l      pkgLog.Logger
	uc     task.UseCase
	bot    *pkgTelegram.Bot
	secret string
}

// New creates a new Telegram delivery handler. A non-empty secret must match the
// X-Telegram-Bot-Api-Secret-Token header of each update.
func New(l pkgLog.Logger, uc task.UseCase, bot *pkgTelegram.Bot, secret string) Handler {
	return &handler{
		l:      l,
		uc:     uc,
		bot:    bot,
		secret: secret,
	}
}
