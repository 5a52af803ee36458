package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (h *handler) sameSite() http.SameSite {
	switch strings.ToLower(h.cookie.SameSite) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func (h *handler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(h.sameSite())
	c.SetCookie(h.cookie.Name, token, h.cookie.MaxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}

func (h *handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(h.sameSite())
	c.SetCookie(h.cookie.Name, "", -1, "/", h.cookie.Domain, h.cookie.Secure, true)
}
