package httpserver

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"productivity-hub/internal/middleware"
	"productivity-hub/internal/task"
	tgDelivery "productivity-hub/internal/task/delivery/telegram"
	"productivity-hub/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string
	mw          middleware.Middleware

	// Task domain
	taskUC          task.UseCase
	location        *time.Location
	telegramHandler tgDelivery.Handler
	storage         string
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string
	Middleware  middleware.Middleware

	// Task domain
	TaskUseCase     task.UseCase
	Location        *time.Location     // Timezone for due_date strings
	TelegramHandler tgDelivery.Handler // Optional
	Storage         string             // Reported by /ready, e.g. "memos"
}

// New creates a new HTTPServer instance with every route registered.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		mw:              cfg.Middleware,
		taskUC:          cfg.TaskUseCase,
		location:        cfg.Location,
		telegramHandler: cfg.TelegramHandler,
		storage:         cfg.Storage,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}
	if srv.mw == (middleware.Middleware{}) {
		srv.mw = middleware.New(logger, middleware.Config{})
	}
	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.taskUC == nil {
		return errors.New("task use case is required")
	}
	return nil
}
