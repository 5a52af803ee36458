package http

import (
	"github.com/gin-gonic/gin"

	"todo-assistant/internal/middleware"
)

// RegisterRoutes maps the auth and user endpoints.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
	}

	me := rg.Group("/users/me", mw.Auth())
	{
		me.GET("", h.Me)
		me.GET("/color", h.GetColor)
		me.PUT("/color", h.SetColor)
	}
}
