package models

// PurchaseRecord is one verified quota purchase.
// The full per-device list is stored as a JSON array at key
// "purchases:{deviceId}" and is append-only: records are never
// mutated or deleted once written.
type PurchaseRecord struct {
	ID            string `json:"id"`            // originating order id (display/dedup key, not unique-enforced)
	Package       string `json:"package"`       // package SKU from the catalog
	PurchaseToken string `json:"purchaseToken"` // billing-platform token, the true idempotency key
	Amount        int    `json:"amount"`        // quota units granted, resolved from the catalog
	Date          string `json:"date"`          // ISO-8601 purchase time
	Verified      bool   `json:"verified"`      // always true once stored
}
