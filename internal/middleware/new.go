package middleware

import (
	"todo-assistant/config"
	"todo-assistant/pkg/log"
	"todo-assistant/pkg/scope"
)

type Middleware struct {
	l            log.Logger
	jwtManager   scope.Manager
	cookieConfig config.CookieConfig
	corsConfig   config.CORSConfig
	limiter      *rateLimiter
}

func New(l log.Logger, jwtManager scope.Manager, cookieConfig config.CookieConfig, corsConfig config.CORSConfig, rateLimitPerMin int) Middleware {
	return Middleware{
		l:            l,
		jwtManager:   jwtManager,
		cookieConfig: cookieConfig,
		corsConfig:   corsConfig,
		limiter:      newRateLimiter(rateLimitPerMin),
	}
}
