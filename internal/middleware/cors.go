package middleware

import (
	"net/http"

	"recipe-quota-api/internal/response"

	"github.com/gin-gonic/gin"
)

// Envelope applies the shared request envelope for one endpoint: mirrored
// CORS headers, a 204 short-circuit for preflight, and a 405 for any
// method other than the one the endpoint serves.
//
// Routes using it are registered with router.Any so that every method
// reaches the envelope instead of Gin's default 404.
func Envelope(method string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", method+", OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		if c.Request.Method != method {
			response.MethodNotAllowed(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
