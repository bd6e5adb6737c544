package api

import (
	"net/http"

	"recipe-quota-api/internal/response"

	"github.com/gin-gonic/gin"
)

// CheckUsageRequest represents the check-and-consume request
type CheckUsageRequest struct {
	DeviceID string `json:"deviceId"`
}

// CheckUsageResponse represents the check-and-consume response
type CheckUsageResponse struct {
	Allowed   bool   `json:"allowed"`
	Remaining int    `json:"remaining"`
	Total     int    `json:"total"`
	Used      int    `json:"used"`
	Message   string `json:"message,omitempty"`
}

// CheckUsage consumes one request from the device's quota. Called by the
// client before every AI request; its only side effect is the increment,
// so callers must check before the AI call, not after. An exhausted quota
// is an expected steady state and answers 200 with allowed=false, not an
// error status.
// POST /api/usage-check
func (a *API) CheckUsage(c *gin.Context) {
	var req CheckUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Internal(c, err)
		return
	}

	if req.DeviceID == "" {
		response.BadRequest(c, "deviceId is required")
		return
	}

	result, err := a.usage.TryConsume(c.Request.Context(), req.DeviceID)
	if err != nil {
		response.Internal(c, err)
		return
	}

	resp := CheckUsageResponse{
		Allowed:   result.Allowed,
		Remaining: result.Remaining,
		Total:     result.Total,
		Used:      result.Used,
	}
	if !result.Allowed {
		resp.Message = "Request limit reached. Purchase more requests to continue."
	}

	c.JSON(http.StatusOK, resp)
}
