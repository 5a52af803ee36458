package http

import (
	"github.com/gin-gonic/gin"

	"todo-assistant/internal/middleware"
)

// RegisterRoutes maps the assistant endpoints. Both are authenticated and
// rate limited per user.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	g := rg.Group("/assistant", mw.Auth(), mw.RateLimit())
	{
		g.POST("/ask", h.Ask)
		g.POST("/speech", h.Speech)
	}
}
