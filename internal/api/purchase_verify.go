package api

import (
	"net/http"
	"time"

	"recipe-quota-api/internal/models"
	"recipe-quota-api/internal/response"
	"recipe-quota-api/pkg/logging"

	"github.com/gin-gonic/gin"
)

// VerifyPurchaseRequest represents the purchase verification request
type VerifyPurchaseRequest struct {
	DeviceID      string `json:"deviceId"`
	PurchaseToken string `json:"purchaseToken"`
	PackageType   string `json:"packageType"`
	OrderID       string `json:"orderId"`
}

// VerifyPurchaseResponse represents the purchase verification response
type VerifyPurchaseResponse struct {
	Success     bool                  `json:"success"`
	NewTotal    int                   `json:"newTotal"`
	AddedAmount int                   `json:"addedAmount"`
	Purchase    models.PurchaseRecord `json:"purchase"`
}

// VerifyPurchase validates and records a quota purchase, then credits the
// purchased amount onto the stored total. Validation order, first failure
// wins: required fields, catalog lookup, billing verification, duplicate
// token. The credit is incremental (stored total + amount), not a
// recomputation from the ledger; restore is the recomputing path.
// POST /api/purchase-verify
func (a *API) VerifyPurchase(c *gin.Context) {
	var req VerifyPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Internal(c, err)
		return
	}

	if req.DeviceID == "" || req.PurchaseToken == "" || req.PackageType == "" || req.OrderID == "" {
		response.BadRequest(c, "deviceId, purchaseToken, packageType and orderId are required")
		return
	}

	amount, ok := a.purchases.Catalog().Amount(req.PackageType)
	if !ok {
		response.BadRequest(c, "Invalid package type")
		return
	}

	ctx := c.Request.Context()

	verified, err := a.verifier.Verify(ctx, req.PurchaseToken)
	if err != nil {
		response.Internal(c, err)
		return
	}
	if !verified {
		response.BadRequest(c, "Purchase verification failed")
		return
	}

	duplicate, err := a.purchases.IsDuplicate(ctx, req.DeviceID, req.PurchaseToken)
	if err != nil {
		response.Internal(c, err)
		return
	}
	if duplicate {
		response.BadRequest(c, "Purchase already processed")
		return
	}

	purchase := models.PurchaseRecord{
		ID:            req.OrderID,
		Package:       req.PackageType,
		PurchaseToken: req.PurchaseToken,
		Amount:        amount,
		Date:          time.Now().UTC().Format(time.RFC3339),
		Verified:      true,
	}

	if _, err := a.purchases.Append(ctx, req.DeviceID, purchase); err != nil {
		response.Internal(c, err)
		return
	}

	record, err := a.usage.AddToTotal(ctx, req.DeviceID, amount)
	if err != nil {
		// The purchase record is already persisted; the total is repaired
		// by the next restore.
		response.Internal(c, err)
		return
	}

	logging.Infof("Device %s purchased %s (+%d requests, order %s)", req.DeviceID, req.PackageType, amount, req.OrderID)

	c.JSON(http.StatusOK, VerifyPurchaseResponse{
		Success:     true,
		NewTotal:    record.Total,
		AddedAmount: amount,
		Purchase:    purchase,
	})
}
