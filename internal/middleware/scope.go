package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"productivity-hub/internal/model"
	"productivity-hub/pkg/log"
	"productivity-hub/pkg/response"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderUserID    = "X-User-ID"
	HeaderUsername  = "X-Username"

	scopeKey = "scope"
)

// RequestID tags the request context with the incoming X-Request-ID, or a fresh UUID,
// so every log line of the request carries it.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if id == "" {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(log.SetRequestID(c.Request.Context(), id))
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// Scope resolves the caller from X-User-ID. Requests without it are rejected with 401.
func (m Middleware) Scope() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if userID == "" {
			m.l.Warnf(c.Request.Context(), "middleware.Scope: missing %s header", HeaderUserID)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(scopeKey, model.Scope{
			UserID:   userID,
			Username: strings.TrimSpace(c.GetHeader(HeaderUsername)),
		})
		c.Next()
	}
}

// GetScope returns the caller set by Scope. ok is false when the middleware did not run.
func GetScope(c *gin.Context) (model.Scope, bool) {
	v, exists := c.Get(scopeKey)
	if !exists {
		return model.Scope{}, false
	}
	sc, ok := v.(model.Scope)
	return sc, ok
}
