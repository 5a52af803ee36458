package http

import (
	"todo-assistant/config"
	"todo-assistant/internal/user"
	"todo-assistant/pkg/log"
)

type handler struct {
	l      log.Logger
	uc     user.UseCase
	cookie config.CookieConfig
}

// New creates a new HTTP handler for accounts and preferences.
func New(l log.Logger, uc user.UseCase, cookie config.CookieConfig) *handler {
	return &handler{
		l:      l,
		uc:     uc,
		cookie: cookie,
	}
}
