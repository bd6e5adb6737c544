// Package api exposes the usage-metering and purchase-ledger endpoints.
package api

import (
	"recipe-quota-api/internal/billing"
	"recipe-quota-api/internal/ledger"
)

// API bundles the handler dependencies. Handlers are stateless; all
// per-device state lives in the ledgers' backing store.
type API struct {
	usage     *ledger.UsageLedger
	purchases *ledger.PurchaseLedger
	verifier  billing.ReceiptVerifier
}

// New creates the handler set.
func New(usage *ledger.UsageLedger, purchases *ledger.PurchaseLedger, verifier billing.ReceiptVerifier) *API {
	return &API{
		usage:     usage,
		purchases: purchases,
		verifier:  verifier,
	}
}

// UsageInfo is the usage block shared by initialize and status responses.
type UsageInfo struct {
	Used      int `json:"used"`
	Total     int `json:"total"`
	Remaining int `json:"remaining"`
}
