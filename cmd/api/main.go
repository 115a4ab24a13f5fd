package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"productivity-hub/config"
	_ "productivity-hub/docs" // Swagger docs
	"productivity-hub/internal/httpserver"
	"productivity-hub/internal/middleware"
	"productivity-hub/internal/model"
	tgDelivery "productivity-hub/internal/task/delivery/telegram"
	"productivity-hub/internal/task/repository"
	memoryRepo "productivity-hub/internal/task/repository/memory"
	memosRepo "productivity-hub/internal/task/repository/memos"
	"productivity-hub/internal/task/usecase"
	"productivity-hub/pkg/datemath"
	"productivity-hub/pkg/gcalendar"
	"productivity-hub/pkg/log"
	"productivity-hub/pkg/telegram"
)

// @title       Productivity Hub API
// @description Quick-add task service: P1/P2/P3 priorities and M/D due dates parsed from free text.
// @version     1
// @host        localhost:8080
// @schemes     http
// @BasePath    /
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Productivity Hub...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Clock
	clock, err := datemath.NewCalendar(cfg.Task.Timezone)
	if err != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Task.Timezone, err)
		clock, _ = datemath.NewCalendar("UTC")
	}

	// 4. Repository
	var (
		taskRepo repository.Repository
		storage  string
	)
	if cfg.Memos.AccessToken != "" {
		memosClient := memosRepo.NewClient(cfg.Memos.URL, cfg.Memos.AccessToken)
		taskRepo = memosRepo.New(memosClient, clock.Location(), logger)
		storage = "memos"
		logger.Infof(ctx, "Storing tasks in Memos at %s", cfg.Memos.URL)
	} else {
		taskRepo = memoryRepo.New(logger)
		storage = "memory"
		logger.Warn(ctx, "MEMOS_ACCESS_TOKEN is empty, tasks are kept in memory")
	}

	// 5. Google Calendar (optional)
	var calendarClient usecase.CalendarClient
	if cfg.GoogleCalendar.CredentialsPath != "" {
		gcal, gcalErr := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath, cfg.GoogleCalendar.TokenPath)
		if gcalErr != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", gcalErr)
			logger.Warn(ctx, "Run `go run scripts/gcal-auth/main.go` to generate token.json")
		} else {
			calendarClient = gcal
			logger.Info(ctx, "Google Calendar initialized")
		}
	}

	// 6. Task UseCase
	taskUC := usecase.New(logger, taskRepo, clock, calendarClient, usecase.Config{
		DefaultPriority:  model.Priority(cfg.Task.DefaultPriority),
		DefaultProjectID: cfg.Task.DefaultProject,
		CalendarID:       cfg.GoogleCalendar.CalendarID,
	})

	// 7. Telegram (optional)
	var telegramHandler tgDelivery.Handler
	if cfg.Telegram.BotToken != "" {
		bot := telegram.NewBot(cfg.Telegram.BotToken)
		telegramHandler = tgDelivery.New(logger, taskUC, bot, cfg.Telegram.WebhookSecret)
		registerWebhook(ctx, logger, bot, cfg.Telegram)
	} else {
		logger.Warn(ctx, "TELEGRAM_BOT_TOKEN is empty, Telegram webhook disabled")
	}

	// 8. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		Middleware: middleware.New(logger, middleware.Config{
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RequestsPerMin:   cfg.RateLimit.RequestsPerMin,
		}),
		TaskUseCase:     taskUC,
		Location:        clock.Location(),
		TelegramHandler: telegramHandler,
		Storage:         storage,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 9. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// registerWebhook points Telegram at this service: the configured URL, or the ngrok tunnel when none is set.
func registerWebhook(ctx context.Context, logger log.Logger, bot *telegram.Bot, cfg config.TelegramConfig) {
	webhookURL := cfg.WebhookURL
	if webhookURL == "" && cfg.NgrokAPIURL != "" {
		publicURL, err := newNgrokProbe().detect(ctx, cfg.NgrokAPIURL)
		if err != nil {
			logger.Warnf(ctx, "Could not detect ngrok URL: %v", err)
			return
		}
		webhookURL = strings.TrimRight(publicURL, "/") + "/webhook/telegram"
		logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
	}
	if webhookURL == "" {
		logger.Warn(ctx, "Telegram webhook URL not configured, skipping registration")
		return
	}

	if err := bot.SetWebhook(ctx, webhookURL, cfg.WebhookSecret); err != nil {
		logger.Warnf(ctx, "Failed to set Telegram webhook: %v", err)
		return
	}
	logger.Infof(ctx, "Telegram webhook registered at %s", webhookURL)
}
