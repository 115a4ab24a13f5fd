package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	taskHTTP "productivity-hub/internal/task/delivery/http"
)

// setupTaskDomain registers /api/v1/tasks. The use case and its repository are built in main.
func (srv HTTPServer) setupTaskDomain(ctx context.Context, api *gin.RouterGroup) error {
	h := taskHTTP.New(srv.l, srv.taskUC, srv.location)
	taskHTTP.RegisterRoutes(api, h, srv.mw)

	srv.l.Infof(ctx, "Task domain registered")
	return nil
}
