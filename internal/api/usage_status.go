package api

import (
	"net/http"

	"recipe-quota-api/internal/models"
	"recipe-quota-api/internal/response"

	"github.com/gin-gonic/gin"
)

// UsageStatusResponse represents the status response
type UsageStatusResponse struct {
	Success   bool                    `json:"success"`
	Usage     UsageInfo               `json:"usage"`
	Purchases []models.PurchaseRecord `json:"purchases"`
}

// UsageStatus reports the device's quota state and purchase history.
// The two keys are independent, so both reads run in parallel; ordering
// between them does not matter. The only write is the default usage
// record on a device's first-ever call.
// GET /api/usage-status?deviceId=xxx
func (a *API) UsageStatus(c *gin.Context) {
	deviceID := c.Query("deviceId")
	if deviceID == "" {
		response.BadRequest(c, "deviceId is required")
		return
	}

	ctx := c.Request.Context()

	type usageResult struct {
		record *models.UsageRecord
		exists bool
		err    error
	}
	type purchasesResult struct {
		records []models.PurchaseRecord
		err     error
	}

	usageCh := make(chan usageResult, 1)
	purchasesCh := make(chan purchasesResult, 1)

	go func() {
		record, exists, err := a.usage.Get(ctx, deviceID)
		usageCh <- usageResult{record: record, exists: exists, err: err}
	}()
	go func() {
		records, err := a.purchases.List(ctx, deviceID)
		purchasesCh <- purchasesResult{records: records, err: err}
	}()

	usage := <-usageCh
	purchases := <-purchasesCh

	if usage.err != nil {
		response.Internal(c, usage.err)
		return
	}
	if purchases.err != nil {
		response.Internal(c, purchases.err)
		return
	}

	record := usage.record
	if !usage.exists {
		var err error
		record, err = a.usage.GetOrInit(ctx, deviceID)
		if err != nil {
			response.Internal(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, UsageStatusResponse{
		Success: true,
		Usage: UsageInfo{
			Used:      record.Used,
			Total:     record.Total,
			Remaining: record.Remaining(),
		},
		Purchases: purchases.records,
	})
}
