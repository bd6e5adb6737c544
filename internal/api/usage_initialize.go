package api

import (
	"net/http"

	"recipe-quota-api/internal/response"
	"recipe-quota-api/pkg/logging"

	"github.com/gin-gonic/gin"
)

// InitializeUsageRequest represents the initialize request
type InitializeUsageRequest struct {
	DeviceID string `json:"deviceId"`
	Platform string `json:"platform"` // optional, logged only
}

// InitializeUsageResponse represents the initialize response
type InitializeUsageResponse struct {
	Success bool      `json:"success"`
	Usage   UsageInfo `json:"usage"`
	Message string    `json:"message"`
}

// InitializeUsage creates the default usage record for a device on first
// contact. Safe to call on every app launch: repeat calls return the
// existing record unchanged.
// POST /api/usage-initialize
func (a *API) InitializeUsage(c *gin.Context) {
	var req InitializeUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Internal(c, err)
		return
	}

	if req.DeviceID == "" {
		response.BadRequest(c, "deviceId is required")
		return
	}

	ctx := c.Request.Context()

	record, exists, err := a.usage.Get(ctx, req.DeviceID)
	if err != nil {
		response.Internal(c, err)
		return
	}

	message := "Already initialized"
	if !exists {
		record, err = a.usage.GetOrInit(ctx, req.DeviceID)
		if err != nil {
			response.Internal(c, err)
			return
		}
		message = "Initialized successfully"
		logging.Infof("Initialized device %s (platform=%s)", req.DeviceID, req.Platform)
	}

	c.JSON(http.StatusOK, InitializeUsageResponse{
		Success: true,
		Usage: UsageInfo{
			Used:      record.Used,
			Total:     record.Total,
			Remaining: record.Remaining(),
		},
		Message: message,
	})
}
