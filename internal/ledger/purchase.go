package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"recipe-quota-api/internal/models"
	"recipe-quota-api/internal/store"
)

// PurchaseLedger is the append-only record of verified purchases for each
// device, stored as one JSON array per device. The store has no native
// list-append, so Append persists the whole list back on every write.
type PurchaseLedger struct {
	store   store.Store
	catalog Catalog
}

// NewPurchaseLedger creates a purchase ledger owning the given catalog.
func NewPurchaseLedger(s store.Store, catalog Catalog) *PurchaseLedger {
	return &PurchaseLedger{store: s, catalog: catalog}
}

// Catalog returns the package catalog this ledger resolves amounts from.
func (l *PurchaseLedger) Catalog() Catalog {
	return l.catalog
}

func purchasesKey(deviceID string) string {
	return fmt.Sprintf("purchases:%s", deviceID)
}

// List returns every recorded purchase for a device, oldest first.
// Devices with no purchases get an empty list, never nil.
func (l *PurchaseLedger) List(ctx context.Context, deviceID string) ([]models.PurchaseRecord, error) {
	value, ok, err := l.store.Get(ctx, purchasesKey(deviceID))
	if err != nil {
		return nil, fmt.Errorf("failed to read purchase list: %w", err)
	}
	if !ok {
		return []models.PurchaseRecord{}, nil
	}

	var records []models.PurchaseRecord
	if err := json.Unmarshal([]byte(value), &records); err != nil {
		return nil, fmt.Errorf("failed to parse purchase list: %w", err)
	}
	if records == nil {
		records = []models.PurchaseRecord{}
	}
	return records, nil
}

// IsDuplicate reports whether the purchase token already appears in the
// device's ledger. The token is the sole idempotency guard against
// double-crediting a purchase on retry or reinstall replay.
func (l *PurchaseLedger) IsDuplicate(ctx context.Context, deviceID, purchaseToken string) (bool, error) {
	records, err := l.List(ctx, deviceID)
	if err != nil {
		return false, err
	}
	return HasToken(records, purchaseToken), nil
}

// HasToken reports whether any record carries the given purchase token.
func HasToken(records []models.PurchaseRecord, purchaseToken string) bool {
	for _, record := range records {
		if record.PurchaseToken == purchaseToken {
			return true
		}
	}
	return false
}

// Append adds a record to the device's ledger and persists the whole
// list, returning the updated list.
func (l *PurchaseLedger) Append(ctx context.Context, deviceID string, record models.PurchaseRecord) ([]models.PurchaseRecord, error) {
	records, err := l.List(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	records = append(records, record)
	value, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode purchase list: %w", err)
	}
	if err := l.store.Set(ctx, purchasesKey(deviceID), string(value)); err != nil {
		return nil, fmt.Errorf("failed to write purchase list: %w", err)
	}
	return records, nil
}

// SumAmounts totals the quota units across the given records. Restore
// uses it to re-derive the usage total from the ledger alone, independent
// of whatever total is currently stored.
func SumAmounts(records []models.PurchaseRecord) int {
	sum := 0
	for _, record := range records {
		sum += record.Amount
	}
	return sum
}
