package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"productivity-hub/internal/task"
	"productivity-hub/pkg/log"
)

// Handler is the public interface for the task HTTP delivery layer.
type Handler interface {
	Parse(c *gin.Context)
	Create(c *gin.Context)
	List(c *gin.Context)
	Detail(c *gin.Context)
	Update(c *gin.Context)
	Toggle(c *gin.Context)
	Delete(c *gin.Context)
}

type handler struct {
	l   log.Logger
	uc  task.UseCase
	loc *time.Location // due_date strings are read in this timezone
}

// New creates a new HTTP handler for the task domain.
func New(l log.Logger, uc task.UseCase, loc *time.Location) Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &handler{
		l:   l,
		uc:  uc,
		loc: loc,
	}
}
