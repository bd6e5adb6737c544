package response

import (
	"net/http"

	"recipe-quota-api/pkg/logging"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the shared error body for every endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// BadRequest sends a 400 with the given error text.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// MethodNotAllowed sends the 405 body used by every endpoint.
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
}

// Internal logs the failure and sends the generic 500 body.
func Internal(c *gin.Context, err error) {
	logging.Errorf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "Internal error",
		Message: err.Error(),
	})
}
