package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"todo-assistant/pkg/response"
	"todo-assistant/pkg/scope"
)

// Auth verifies the session token from the cookie or a Bearer header and
// stores the payload in the request context.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.tokenFromRequest(c)
		if token == "" {
			response.Unauthorized(c)
			return
		}

		payload, err := m.jwtManager.Verify(token)
		if err != nil {
			m.l.Debugf(c.Request.Context(), "middleware.Auth: %v", err)
			response.Unauthorized(c)
			return
		}

		ctx := scope.SetPayloadToContext(c.Request.Context(), payload)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func (m Middleware) tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(m.cookieConfig.Name); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
