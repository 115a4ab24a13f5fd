package http

import (
	"github.com/gin-gonic/gin"

	"productivity-hub/internal/middleware"
)

// RegisterRoutes maps task routes onto rg. Parse is a stateless preview and skips Scope.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	tasks := rg.Group("/tasks")
	{
		tasks.POST("/parse", h.Parse)
		tasks.POST("", mw.Scope(), h.Create)
		tasks.GET("", mw.Scope(), h.List)
		tasks.GET("/:id", mw.Scope(), h.Detail)
		tasks.PATCH("/:id", mw.Scope(), h.Update)
		tasks.POST("/:id/toggle", mw.Scope(), h.Toggle)
		tasks.DELETE("/:id", mw.Scope(), h.Delete)
	}
}
