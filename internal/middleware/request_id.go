package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"todo-assistant/pkg/log"
)

const HeaderRequestID = "X-Request-ID"

// RequestID tags every request with an id, echoes it back and logs the
// request once it completes.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Header(HeaderRequestID, id)

		ctx := log.WithRequestID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		m.l.Infof(ctx, "%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
