package middleware

import (
	"recipe-quota-api/pkg/logging"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID echoes the caller's request id, generating one when absent,
// and logs request completion with it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)

		c.Next()

		logging.Infof("%s %s -> %d (request_id=%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), id)
	}
}
