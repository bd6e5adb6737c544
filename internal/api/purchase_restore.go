package api

import (
	"net/http"

	"recipe-quota-api/internal/ledger"
	"recipe-quota-api/internal/models"
	"recipe-quota-api/internal/response"
	"recipe-quota-api/pkg/logging"

	"github.com/gin-gonic/gin"
)

// RestorePurchasesRequest represents the restore request
type RestorePurchasesRequest struct {
	DeviceID string `json:"deviceId"`
}

// RestorePurchasesResponse represents the restore response
type RestorePurchasesResponse struct {
	Success       bool                    `json:"success"`
	Restored      bool                    `json:"restored"`
	Purchases     []models.PurchaseRecord `json:"purchases"`
	TotalRequests int                     `json:"totalRequests"`
	Message       string                  `json:"message"`
}

// RestorePurchases rebuilds the usage total from the full purchase
// ledger: total = free allotment + sum of recorded amounts, with used
// left untouched. This is the self-healing path; any drift the
// incremental credit in VerifyPurchase introduced is corrected here.
// POST /api/purchase-restore
func (a *API) RestorePurchases(c *gin.Context) {
	var req RestorePurchasesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Internal(c, err)
		return
	}

	if req.DeviceID == "" {
		response.BadRequest(c, "deviceId is required")
		return
	}

	ctx := c.Request.Context()

	purchases, err := a.purchases.List(ctx, req.DeviceID)
	if err != nil {
		response.Internal(c, err)
		return
	}

	if len(purchases) == 0 {
		c.JSON(http.StatusOK, RestorePurchasesResponse{
			Success:       true,
			Restored:      false,
			Purchases:     purchases,
			TotalRequests: a.usage.FreeRequests(),
			Message:       "No purchases to restore",
		})
		return
	}

	record, err := a.usage.RecomputeTotal(ctx, req.DeviceID, ledger.SumAmounts(purchases))
	if err != nil {
		response.Internal(c, err)
		return
	}

	logging.Infof("Restored %d purchases for device %s (total=%d)", len(purchases), req.DeviceID, record.Total)

	c.JSON(http.StatusOK, RestorePurchasesResponse{
		Success:       true,
		Restored:      true,
		Purchases:     purchases,
		TotalRequests: record.Total,
		Message:       "Purchases restored successfully",
	})
}
