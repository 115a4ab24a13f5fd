package middleware

import (
	"productivity-hub/pkg/log"
)

// Config tunes the request middlewares.
type Config struct {
	RateLimitEnabled bool
	RequestsPerMin   int
}

type Middleware struct {
	l       log.Logger
	limiter *rateLimiter // nil when rate limiting is disabled
}

func New(l log.Logger, cfg Config) Middleware {
	mw := Middleware{l: l}
	if cfg.RateLimitEnabled && cfg.RequestsPerMin > 0 {
		mw.limiter = newRateLimiter(cfg.RequestsPerMin)
	}
	return mw
}
